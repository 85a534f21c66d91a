package http

import (
	"context"
	"log/slog"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/generated/servers"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type (
	OrderConfirmer interface {
		Handle(ctx context.Context, cmd commands.ConfirmOrderCommand) (kernel.UUID, error)
	}

	OrderCanceler interface {
		Handle(ctx context.Context, cmd commands.CancelOrderCommand) (order.Projection, error)
	}

	DeliveryCompleter interface {
		Handle(ctx context.Context, cmd commands.CompleteDeliveryCommand) error
	}

	VehicleRegistrar interface {
		Handle(ctx context.Context, cmd commands.RegisterVehicleCommand) error
	}

	OrderRouteReader interface {
		Handle(ctx context.Context, query queries.GetOrderRouteQuery) (queries.GetOrderRouteQueryResponse, error)
	}

	OrderHistoryReader interface {
		Handle(ctx context.Context, query queries.ListCustomerOrdersQuery) ([]queries.CustomerOrderResponse, error)
	}
)

// Server implements servers.ServerInterface on top of the application use cases.
type Server struct {
	// Command handlers
	confirmOrderHandler     OrderConfirmer
	cancelOrderHandler      OrderCanceler
	completeDeliveryHandler DeliveryCompleter
	registerVehicleHandler  VehicleRegistrar

	// Query handlers
	getOrderRouteHandler      OrderRouteReader
	listCustomerOrdersHandler OrderHistoryReader

	payments ports.PaymentGateway
	logger   *slog.Logger
}

func NewServer(
	confirmOrderHandler OrderConfirmer,
	cancelOrderHandler OrderCanceler,
	completeDeliveryHandler DeliveryCompleter,
	registerVehicleHandler VehicleRegistrar,
	getOrderRouteHandler OrderRouteReader,
	listCustomerOrdersHandler OrderHistoryReader,
	payments ports.PaymentGateway,
	logger *slog.Logger,
) *Server {
	return &Server{
		confirmOrderHandler:       confirmOrderHandler,
		cancelOrderHandler:        cancelOrderHandler,
		completeDeliveryHandler:   completeDeliveryHandler,
		registerVehicleHandler:    registerVehicleHandler,
		getOrderRouteHandler:      getOrderRouteHandler,
		listCustomerOrdersHandler: listCustomerOrdersHandler,
		payments:                  payments,
		logger:                    logger.With("component", "http"),
	}
}

var _ servers.ServerInterface = (*Server)(nil)

// ListOrders handles GET /api/v1/orders - order history of the caller.
func (s *Server) ListOrders(ctx echo.Context) error {
	identity := identityFrom(ctx)

	query, err := queries.NewListCustomerOrdersQuery(identity.UserID)
	if err != nil {
		return s.fail(ctx, err, "orders")
	}

	orders, err := s.listCustomerOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "orders")
	}

	response := make([]servers.Order, len(orders))
	for i, o := range orders {
		response[i] = customerOrderToResponse(o)
	}

	return ctx.JSON(http.StatusOK, response)
}

// ConfirmOrder handles POST /api/v1/orders - turns a verified payment into an order.
// Repeating the call for the same payment returns the same order id.
func (s *Server) ConfirmOrder(ctx echo.Context) error {
	identity := identityFrom(ctx)

	var body servers.ConfirmOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	location, err := kernel.NewGeoLocation(body.Destination.Latitude, body.Destination.Longitude)
	if err != nil {
		return s.fail(ctx, err, "destination")
	}
	destination, err := kernel.NewDestination(body.Destination.Address, location)
	if err != nil {
		return s.fail(ctx, err, "destination")
	}

	cmd, err := commands.NewConfirmOrderCommand(body.PaymentReference, identity.UserID, destination)
	if err != nil {
		return s.fail(ctx, err, "order")
	}

	reqCtx := ctx.Request().Context()

	status, err := s.payments.VerifyCharge(reqCtx, cmd.PaymentReference(), identity.UserID)
	if err != nil {
		return s.fail(ctx, err, "payment")
	}
	if status != ports.PaymentSucceeded {
		return s.fail(ctx, errs.NewPaymentNotVerifiedError(cmd.PaymentReference(), string(status)), "payment")
	}

	orderID, err := s.confirmOrderHandler.Handle(reqCtx, cmd)
	if err != nil {
		return s.fail(ctx, err, "order")
	}

	return ctx.JSON(http.StatusCreated, servers.ConfirmOrderResponse{OrderId: orderID.Bytes()})
}

// GetOrderRoute handles GET /api/v1/orders/{orderId}/route - owner only.
func (s *Server) GetOrderRoute(ctx echo.Context, orderId servers.OrderId) error {
	identity := identityFrom(ctx)

	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return s.fail(ctx, err, "order")
	}

	query, err := queries.NewGetOrderRouteQuery(orderID, identity.UserID)
	if err != nil {
		return s.fail(ctx, err, "order")
	}

	route, err := s.getOrderRouteHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "order route")
	}

	return ctx.JSON(http.StatusOK, servers.Route{
		OrderId:   route.OrderID.Bytes(),
		VehicleId: route.VehicleID.Bytes(),
		Polyline:  route.Polyline,
	})
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel.
func (s *Server) CancelOrder(ctx echo.Context, orderId servers.OrderId) error {
	identity := identityFrom(ctx)

	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return s.fail(ctx, err, "order")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, identity.UserID)
	if err != nil {
		return s.fail(ctx, err, "order")
	}

	projection, err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "order")
	}

	return ctx.JSON(http.StatusOK, projectionToResponse(projection))
}

// CompleteDelivery handles POST /api/v1/admin/orders/{orderId}/deliver.
func (s *Server) CompleteDelivery(ctx echo.Context, orderId servers.OrderId) error {
	identity := identityFrom(ctx)

	orderID, err := kernel.UUIDFromBytes(orderId[:])
	if err != nil {
		return s.fail(ctx, err, "order")
	}

	cmd, err := commands.NewCompleteDeliveryCommand(orderID, identity.UserID)
	if err != nil {
		return s.fail(ctx, err, "order")
	}

	if err = s.completeDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, "order")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RegisterVehicle handles POST /api/v1/admin/vehicles.
func (s *Server) RegisterVehicle(ctx echo.Context) error {
	var body servers.RegisterVehicleJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	vehicleID := kernel.NewUUID()
	if body.Id != nil {
		id, err := kernel.UUIDFromBytes(body.Id[:])
		if err != nil {
			return s.fail(ctx, err, "vehicle")
		}
		vehicleID = id
	}

	location, err := kernel.NewGeoLocation(body.Location.Latitude, body.Location.Longitude)
	if err != nil {
		return s.fail(ctx, err, "vehicle")
	}

	cmd, err := commands.NewRegisterVehicleCommand(vehicleID, body.Secret, location)
	if err != nil {
		return s.fail(ctx, err, "vehicle")
	}

	if err = s.registerVehicleHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err, "vehicle")
	}

	return ctx.JSON(http.StatusCreated, servers.Vehicle{
		Id:       vehicleID.Bytes(),
		Status:   servers.READY,
		Location: body.Location,
	})
}

func projectionToResponse(p order.Projection) servers.Order {
	items := make([]servers.OrderItem, len(p.Items))
	for i, item := range p.Items {
		items[i] = servers.OrderItem{
			ItemId:         item.ItemID.Bytes(),
			Name:           item.Name,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			UnitWeightOz:   item.UnitWeightOz,
		}
	}

	return servers.Order{
		Id:             p.ID.Bytes(),
		Status:         servers.OrderStatus(p.Status.String()),
		Address:        p.Address,
		Items:          items,
		ItemsCents:     p.Totals.ItemsCents,
		ShippingCents:  p.Totals.ShippingCents,
		TotalCents:     p.Totals.TotalCents,
		ShippingWaived: p.Totals.ShippingWaived,
		WeightOz:       p.Totals.WeightOz,
		CreatedAt:      p.CreatedAt,
		CanceledAt:     p.CanceledAt,
		DeliveredAt:    p.DeliveredAt,
	}
}

func customerOrderToResponse(o queries.CustomerOrderResponse) servers.Order {
	items := make([]servers.OrderItem, len(o.Items))
	for i, item := range o.Items {
		items[i] = servers.OrderItem{
			ItemId:         item.ItemID.Bytes(),
			Name:           item.Name,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			UnitWeightOz:   item.UnitWeightOz,
		}
	}

	return servers.Order{
		Id:             o.ID.Bytes(),
		Status:         servers.OrderStatus(o.Status),
		Address:        o.Address,
		Items:          items,
		ItemsCents:     o.ItemsCents,
		ShippingCents:  o.ShippingCents,
		TotalCents:     o.TotalCents,
		ShippingWaived: o.ShippingWaived,
		WeightOz:       o.WeightOz,
		CreatedAt:      o.CreatedAt,
		CanceledAt:     o.CanceledAt,
		DeliveredAt:    o.DeliveredAt,
	}
}

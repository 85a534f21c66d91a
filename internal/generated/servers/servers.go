// Package servers holds the HTTP contract of the fulfillment API: the request and response
// types, the echo routing glue and the embedded OpenAPI document they are derived from.
package servers

import (
	_ "embed"
	"fmt"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const (
	BearerAuthScopes = "bearerAuth.Scopes"
)

// Defines values for OrderStatus.
const (
	AWAITINGDISPATCH OrderStatus = "AWAITING_DISPATCH"
	CANCELED         OrderStatus = "CANCELED"
	DELIVERED        OrderStatus = "DELIVERED"
	SHIPPED          OrderStatus = "SHIPPED"
)

// Defines values for VehicleStatus.
const (
	DELIVERING VehicleStatus = "DELIVERING"
	READY      VehicleStatus = "READY"
	RETURNING  VehicleStatus = "RETURNING"
)

// ConfirmOrderRequest defines model for ConfirmOrderRequest.
type ConfirmOrderRequest struct {
	Destination      Destination `json:"destination"`
	PaymentReference string      `json:"paymentReference"`
}

// ConfirmOrderResponse defines model for ConfirmOrderResponse.
type ConfirmOrderResponse struct {
	OrderId openapi_types.UUID `json:"orderId"`
}

// Destination defines model for Destination.
type Destination struct {
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Location defines model for Location.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewVehicle defines model for NewVehicle.
type NewVehicle struct {
	Id       *openapi_types.UUID `json:"id,omitempty"`
	Location Location            `json:"location"`
	Secret   string              `json:"secret"`
}

// Order defines model for Order.
type Order struct {
	Address        string             `json:"address"`
	CanceledAt     *time.Time         `json:"canceledAt,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
	DeliveredAt    *time.Time         `json:"deliveredAt,omitempty"`
	Id             openapi_types.UUID `json:"id"`
	Items          []OrderItem        `json:"items"`
	ItemsCents     int64              `json:"itemsCents"`
	ShippingCents  int64              `json:"shippingCents"`
	ShippingWaived bool               `json:"shippingWaived"`
	Status         OrderStatus        `json:"status"`
	TotalCents     int64              `json:"totalCents"`
	WeightOz       int                `json:"weightOz"`
}

// OrderStatus defines model for Order.Status.
type OrderStatus string

// OrderItem defines model for OrderItem.
type OrderItem struct {
	ItemId         openapi_types.UUID `json:"itemId"`
	Name           string             `json:"name"`
	Quantity       int                `json:"quantity"`
	UnitPriceCents int64              `json:"unitPriceCents"`
	UnitWeightOz   int                `json:"unitWeightOz"`
}

// Route defines model for Route.
type Route struct {
	OrderId   openapi_types.UUID `json:"orderId"`
	Polyline  string             `json:"polyline"`
	VehicleId openapi_types.UUID `json:"vehicleId"`
}

// Vehicle defines model for Vehicle.
type Vehicle struct {
	Id       openapi_types.UUID `json:"id"`
	Location Location           `json:"location"`
	Status   VehicleStatus      `json:"status"`
}

// VehicleStatus defines model for Vehicle.Status.
type VehicleStatus string

// OrderId defines model for OrderId.
type OrderId = openapi_types.UUID

// ConfirmOrderJSONRequestBody defines body for ConfirmOrder for application/json ContentType.
type ConfirmOrderJSONRequestBody = ConfirmOrderRequest

// RegisterVehicleJSONRequestBody defines body for RegisterVehicle for application/json ContentType.
type RegisterVehicleJSONRequestBody = NewVehicle

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Mark a shipped order as delivered
	// (POST /api/v1/admin/orders/{orderId}/deliver)
	CompleteDelivery(ctx echo.Context, orderId OrderId) error
	// Register a delivery vehicle and its session secret
	// (POST /api/v1/admin/vehicles)
	RegisterVehicle(ctx echo.Context) error
	// Order history of the calling customer, newest first
	// (GET /api/v1/orders)
	ListOrders(ctx echo.Context) error
	// Turn a verified payment and the customer's cart into an order
	// (POST /api/v1/orders)
	ConfirmOrder(ctx echo.Context) error
	// Cancel an order that has not shipped and restore its stock
	// (POST /api/v1/orders/{orderId}/cancel)
	CancelOrder(ctx echo.Context, orderId OrderId) error
	// Route polyline of a shipped order
	// (GET /api/v1/orders/{orderId}/route)
	GetOrderRoute(ctx echo.Context, orderId OrderId) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// CompleteDelivery converts echo context to params.
func (w *ServerInterfaceWrapper) CompleteDelivery(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.CompleteDelivery(ctx, orderId)
}

// RegisterVehicle converts echo context to params.
func (w *ServerInterfaceWrapper) RegisterVehicle(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.RegisterVehicle(ctx)
}

// ListOrders converts echo context to params.
func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.ListOrders(ctx)
}

// ConfirmOrder converts echo context to params.
func (w *ServerInterfaceWrapper) ConfirmOrder(ctx echo.Context) error {
	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.ConfirmOrder(ctx)
}

// CancelOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CancelOrder(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.CancelOrder(ctx, orderId)
}

// GetOrderRoute converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrderRoute(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	return w.Handler.GetOrderRoute(ctx, orderId)
}

func bindOrderID(ctx echo.Context) (OrderId, error) {
	var orderId OrderId

	err := runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return orderId, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}
	return orderId, nil
}

// EchoRouter is the subset of echo.Echo and echo.Group used for registration.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers handlers, and prepends BaseURL to the paths, so that
// the paths can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/api/v1/admin/orders/:orderId/deliver", wrapper.CompleteDelivery)
	router.POST(baseURL+"/api/v1/admin/vehicles", wrapper.RegisterVehicle)
	router.GET(baseURL+"/api/v1/orders", wrapper.ListOrders)
	router.POST(baseURL+"/api/v1/orders", wrapper.ConfirmOrder)
	router.POST(baseURL+"/api/v1/orders/:orderId/cancel", wrapper.CancelOrder)
	router.GET(baseURL+"/api/v1/orders/:orderId/route", wrapper.GetOrderRoute)
}

//go:embed openapi.yml
var rawSpec []byte

// RawSpec returns the OpenAPI document as YAML.
func RawSpec() []byte {
	return rawSpec
}

// GetSwagger parses the embedded OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	swagger, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("error loading spec: %w", err)
	}
	return swagger, nil
}

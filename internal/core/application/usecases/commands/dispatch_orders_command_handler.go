package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// DispatchResult describes what a dispatch pass changed.
type DispatchResult struct {
	ShippedOrderIDs []kernel.UUID
	// Notified counts customers that received an orderUpdate push.
	Notified int
}

// DispatchOrdersCommandHandler plans routes for all awaiting orders and assigns them to
// a Ready vehicle.
//
// Orders are read and the planner is called outside any transaction. Each assignment is then
// written with a compare-and-set on AWAITING_DISPATCH, so orders canceled or shipped in the
// meantime are skipped. Pushes happen after commit and never undo an assignment.
type DispatchOrdersCommandHandler struct {
	uowFactory  UoWFactory
	planner     ports.RoutePlanner
	notifier    ports.Notifier
	depot       kernel.GeoLocation
	planTimeout time.Duration
	logger      *slog.Logger
}

func NewDispatchOrdersCommandHandler(
	uowFactory UoWFactory,
	planner ports.RoutePlanner,
	notifier ports.Notifier,
	depot kernel.GeoLocation,
	planTimeout time.Duration,
	logger *slog.Logger,
) DispatchOrdersCommandHandler {
	return DispatchOrdersCommandHandler{
		uowFactory:  uowFactory,
		planner:     planner,
		notifier:    notifier,
		depot:       depot,
		planTimeout: planTimeout,
		logger:      logger.With("component", "dispatch"),
	}
}

// Handle is a no-op when the vehicle is not Ready or nothing awaits dispatch.
// Planner failures return an error matching errs.ErrRouteUnavailable with no order changed.
func (h DispatchOrdersCommandHandler) Handle(ctx context.Context, cmd DispatchOrdersCommand) (DispatchResult, error) {
	if err := cmd.Validate(); err != nil {
		return DispatchResult{}, err
	}

	reader := h.uowFactory.Create()

	v, err := reader.VehicleRepository().Get(ctx, cmd.VehicleID())
	if err != nil {
		return DispatchResult{}, err
	}
	if !v.IsReady() {
		return DispatchResult{}, nil
	}

	awaiting, err := reader.OrderRepository().GetAllAwaitingDispatch(ctx)
	if err != nil {
		return DispatchResult{}, err
	}
	if len(awaiting) == 0 {
		return DispatchResult{}, nil
	}

	assigner := services.NewRouteAssigner()
	stops, err := assigner.Stops(awaiting)
	if err != nil {
		return DispatchResult{}, err
	}

	planCtx, cancel := context.WithTimeout(ctx, h.planTimeout)
	routes, err := h.planner.Plan(planCtx, h.depot, stops)
	cancel()
	if err != nil {
		if !errors.Is(err, errs.ErrRouteUnavailable) {
			err = errs.NewRouteUnavailableError(err)
		}
		h.logger.WarnContext(ctx, "route planning failed",
			"vehicle_id", v.ID().String(), "orders", len(stops), "error", err)
		return DispatchResult{}, err
	}

	assignment, err := assigner.Assign(v, awaiting, routes)
	if err != nil {
		return DispatchResult{}, err
	}
	for _, id := range assignment.UnknownOrderIDs {
		h.logger.WarnContext(ctx, "planner returned unknown order label", "order_id", id.String())
	}
	if len(assignment.Shipped) == 0 {
		return DispatchResult{}, nil
	}

	result, owners, err := h.persist(ctx, cmd, assignment.Shipped)
	if err != nil {
		return DispatchResult{}, err
	}

	for _, owner := range owners {
		if h.notifier.NotifyOrderUpdate(ctx, owner) {
			result.Notified++
		}
	}

	h.logger.InfoContext(ctx, "orders dispatched",
		"vehicle_id", cmd.VehicleID().String(),
		"shipped", len(result.ShippedOrderIDs),
		"notified", result.Notified)

	return result, nil
}

// persist writes the assignments in one transaction and returns the distinct owners
// of the orders that were actually shipped, in route order.
func (h DispatchOrdersCommandHandler) persist(
	ctx context.Context,
	cmd DispatchOrdersCommand,
	shipped []*order.Order,
) (DispatchResult, []kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return DispatchResult{}, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	vehicleRepo := uow.VehicleRepository()
	audit := uow.AuditLog()

	// The lock serializes this pass with telemetry and other dispatches for the same vehicle.
	v, err := vehicleRepo.GetForUpdate(ctx, cmd.VehicleID())
	if err != nil {
		return DispatchResult{}, nil, err
	}
	if !v.IsReady() {
		return DispatchResult{}, nil, nil
	}

	var (
		result DispatchResult
		owners []kernel.UUID
		seen   = make(map[kernel.UUID]struct{})
	)

	for _, o := range shipped {
		applied, updErr := orderRepo.UpdateIfStatus(ctx, o, order.AwaitingDispatch)
		if updErr != nil {
			return DispatchResult{}, nil, updErr
		}
		if !applied {
			h.logger.DebugContext(ctx, "order no longer awaiting dispatch", "order_id", o.ID().String())
			continue
		}

		vehicleID := v.ID()
		if err = audit.Record(ctx, ports.AuditRecord{
			Action:     ports.AuditOrderShipped,
			ActorID:    &vehicleID,
			TargetType: ports.AuditTargetOrder,
			TargetID:   o.ID(),
			Details:    map[string]any{"vehicle_id": vehicleID.String(), "polyline": *o.Polyline()},
			CreatedAt:  time.Now().UTC(),
		}); err != nil {
			return DispatchResult{}, nil, err
		}

		result.ShippedOrderIDs = append(result.ShippedOrderIDs, o.ID())
		if _, ok := seen[o.CustomerID()]; !ok {
			seen[o.CustomerID()] = struct{}{}
			owners = append(owners, o.CustomerID())
		}
	}

	if len(result.ShippedOrderIDs) > 0 {
		if err = v.StartDelivering(); err != nil {
			return DispatchResult{}, nil, err
		}
		if err = vehicleRepo.Update(ctx, v); err != nil {
			return DispatchResult{}, nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return DispatchResult{}, nil, err
	}

	return result, owners, nil
}

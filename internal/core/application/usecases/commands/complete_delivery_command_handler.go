package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// CompleteDeliveryCommandHandler moves a shipped order to delivered. The audit record it
// writes is the only record of when the delivery happened.
type CompleteDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

func NewCompleteDeliveryCommandHandler(uowFactory OrderUoWFactory) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

func (h CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.Deliver(); err != nil {
		return err
	}

	applied, err := orderRepo.UpdateIfStatus(ctx, o, order.Shipped)
	if err != nil {
		return err
	}
	if !applied {
		current, getErr := orderRepo.Get(ctx, cmd.OrderID())
		if getErr != nil {
			return getErr
		}
		return errs.NewInvalidTransitionError("order", current.Status().String(), order.Delivered.String())
	}

	actorID := cmd.ActorID()
	if err = uow.AuditLog().Record(ctx, ports.AuditRecord{
		Action:     ports.AuditOrderDelivered,
		ActorID:    &actorID,
		TargetType: ports.AuditTargetOrder,
		TargetID:   o.ID(),
		Details:    map[string]any{"vehicle_id": o.Vehicle().String()},
		CreatedAt:  h.now().UTC(),
	}); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

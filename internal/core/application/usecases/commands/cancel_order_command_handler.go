package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// CancelOrderCommandHandler cancels an order that has not shipped and returns its units
// to the ledger in the same transaction.
//
// Example:
//
//	cmd, _ := NewCancelOrderCommand(orderID, customerID)
//	projection, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrInvalidTransition) {
//	    // already shipped, delivered or canceled
//	}
type CancelOrderCommandHandler struct {
	uowFactory StockUoWFactory
	now        func() time.Time
}

func NewCancelOrderCommandHandler(uowFactory StockUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle returns the canceled order's projection. Orders of other customers are not found.
// A rejected cancellation leaves the ledger untouched.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (order.Projection, error) {
	if err := cmd.Validate(); err != nil {
		return order.Projection{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return order.Projection{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.GetOwned(ctx, cmd.OrderID(), cmd.CustomerID())
	if err != nil {
		return order.Projection{}, err
	}

	if err = o.Cancel(h.now()); err != nil {
		return order.Projection{}, err
	}

	applied, err := orderRepo.UpdateIfStatus(ctx, o, order.AwaitingDispatch)
	if err != nil {
		return order.Projection{}, err
	}
	if !applied {
		return order.Projection{}, h.lostRace(ctx, orderRepo, o)
	}

	ledger := uow.StockLedger()
	restored := make([]map[string]any, 0, len(o.Lines()))
	for _, l := range o.Lines() {
		if err = ledger.Release(ctx, l.ItemID(), l.Quantity()); err != nil {
			return order.Projection{}, err
		}
		restored = append(restored, map[string]any{
			"item_id":  l.ItemID().String(),
			"quantity": l.Quantity(),
		})
	}

	customerID := cmd.CustomerID()
	if err = uow.AuditLog().Record(ctx, ports.AuditRecord{
		Action:     ports.AuditOrderCanceled,
		ActorID:    &customerID,
		TargetType: ports.AuditTargetOrder,
		TargetID:   o.ID(),
		Details:    map[string]any{"restored_items": restored},
		CreatedAt:  *o.CanceledAt(),
	}); err != nil {
		return order.Projection{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.Projection{}, err
	}

	return o.Project(nil), nil
}

// lostRace reports the status a concurrent dispatch or cancellation left behind.
func (h CancelOrderCommandHandler) lostRace(ctx context.Context, repo ports.OrderRepository, o *order.Order) error {
	current, err := repo.Get(ctx, o.ID())
	if err != nil {
		return err
	}
	return errs.NewInvalidTransitionError("order", current.Status().String(), order.Canceled.String())
}

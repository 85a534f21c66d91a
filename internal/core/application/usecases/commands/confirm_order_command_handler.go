package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// ErrEmptyCart is returned when a payment is confirmed for a customer whose cart is empty.
var ErrEmptyCart = errors.New("cart is empty")

// ConfirmOrderCommandHandler reserves stock for every cart line and persists the order,
// all in one transaction. Confirming the same payment reference twice returns the
// first order's id and changes nothing.
type ConfirmOrderCommandHandler struct {
	uowFactory UoWFactory
	now        func() time.Time
}

func NewConfirmOrderCommandHandler(uowFactory UoWFactory) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle returns the id of the order that owns the payment reference.
//
// Errors:
//   - ErrEmptyCart when the cart has no lines
//   - *errs.InsufficientStockError for the first line that cannot be reserved
//   - *errs.WeightExceededError when the shipment is heavier than order.MaxShipmentWeightOz
//   - errs.ErrObjectAlreadyExists when the reference belongs to another customer
func (h ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	existing, err := orderRepo.GetByPaymentReference(ctx, cmd.PaymentReference())
	if err == nil {
		return h.existingOrderID(existing, cmd)
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return kernel.UUID{}, err
	}

	lines, err := h.reserveCart(ctx, uow, cmd.CustomerID())
	if err != nil {
		return kernel.UUID{}, err
	}

	o, err := order.NewOrder(kernel.NewUUID(), cmd.CustomerID(), cmd.PaymentReference(),
		cmd.Destination(), lines, h.now())
	if err != nil {
		return kernel.UUID{}, err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		if errors.Is(err, errs.ErrObjectAlreadyExists) {
			// A concurrent confirmation won the insert; its transaction owns the reservation.
			_ = uow.Rollback(ctx)
			return h.lookupAfterRace(ctx, cmd)
		}
		return kernel.UUID{}, err
	}

	if err = uow.Cart().Clear(ctx, cmd.CustomerID()); err != nil {
		return kernel.UUID{}, err
	}

	customerID := cmd.CustomerID()
	if err = uow.AuditLog().Record(ctx, ports.AuditRecord{
		Action:     ports.AuditOrderConfirmed,
		ActorID:    &customerID,
		TargetType: ports.AuditTargetOrder,
		TargetID:   o.ID(),
		Details:    confirmedDetails(o),
		CreatedAt:  o.CreatedAt(),
	}); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return o.ID(), nil
}

// reserveCart reserves every cart line and snapshots price and weight from the catalog.
// The first failed reservation aborts the whole confirmation.
func (h ConfirmOrderCommandHandler) reserveCart(ctx context.Context, uow UoW, customerID kernel.UUID) ([]order.Line, error) {
	cartLines, err := uow.Cart().Lines(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(cartLines) == 0 {
		return nil, ErrEmptyCart
	}

	ids := make([]kernel.UUID, 0, len(cartLines))
	for _, l := range cartLines {
		ids = append(ids, l.ItemID)
	}
	items, err := uow.Catalog().GetItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	ledger := uow.StockLedger()
	lines := make([]order.Line, 0, len(cartLines))
	for _, cl := range cartLines {
		item, ok := items[cl.ItemID]
		if !ok {
			return nil, errs.NewObjectNotFoundError("item", cl.ItemID.String())
		}

		if err = ledger.Reserve(ctx, cl.ItemID, cl.Quantity); err != nil {
			return nil, err
		}

		line, lineErr := order.NewLine(item.ID, item.Name, cl.Quantity, item.PriceCents, item.WeightOz)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return lines, nil
}

func (h ConfirmOrderCommandHandler) existingOrderID(existing *order.Order, cmd ConfirmOrderCommand) (kernel.UUID, error) {
	if !existing.IsOwnedBy(cmd.CustomerID()) {
		return kernel.UUID{}, errs.NewObjectAlreadyExistsErrorWithCause(
			"payment reference", cmd.PaymentReference(), errors.New("confirmed by another customer"))
	}
	return existing.ID(), nil
}

func (h ConfirmOrderCommandHandler) lookupAfterRace(ctx context.Context, cmd ConfirmOrderCommand) (kernel.UUID, error) {
	existing, err := h.uowFactory.Create().OrderRepository().GetByPaymentReference(ctx, cmd.PaymentReference())
	if err != nil {
		return kernel.UUID{}, err
	}
	return h.existingOrderID(existing, cmd)
}

func confirmedDetails(o *order.Order) map[string]any {
	items := make([]map[string]any, 0, len(o.Lines()))
	for _, l := range o.Lines() {
		items = append(items, map[string]any{
			"item_id":          l.ItemID().String(),
			"quantity":         l.Quantity(),
			"unit_price_cents": l.UnitPriceCents(),
		})
	}
	totals := o.Totals()
	return map[string]any{
		"payment_reference": o.PaymentReference(),
		"items":             items,
		"total_cents":       totals.TotalCents,
		"shipping_waived":   totals.ShippingWaived,
		"charged_cents":     totals.ChargedCents(),
		"weight_oz":         totals.WeightOz,
	}
}

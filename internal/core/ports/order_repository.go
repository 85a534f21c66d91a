// Package ports defines the contracts between the fulfillment core and its adapters:
// persistence, the inventory ledger, external collaborators and session notification.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository persists Order aggregates together with their lines.
type OrderRepository interface {
	// Add inserts a new order and its lines. A second order with the same payment reference
	// fails with errs.ErrObjectAlreadyExists.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get returns errs.ErrObjectNotFound when no order has the id.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetOwned behaves like Get but also requires the order to belong to customerID.
	// Orders of other customers are reported as not found.
	GetOwned(ctx context.Context, id, customerID kernel.UUID) (*order.Order, error)

	GetByPaymentReference(ctx context.Context, paymentReference string) (*order.Order, error)

	// GetAllAwaitingDispatch returns awaiting orders, oldest first.
	GetAllAwaitingDispatch(ctx context.Context) ([]*order.Order, error)

	// ListByCustomer returns the customer's orders, newest first.
	ListByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error)

	// UpdateIfStatus writes the aggregate's status, vehicle, polyline and canceled-at only if
	// the stored status still equals expected. It reports whether the row was updated.
	UpdateIfStatus(ctx context.Context, aggregate *order.Order, expected order.Status) (bool, error)
}

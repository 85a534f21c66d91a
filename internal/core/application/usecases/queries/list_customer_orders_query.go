package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrListCustomerOrdersQueryIsNotConstructed = errors.New(
	"ListCustomerOrdersQuery must be created via NewListCustomerOrdersQuery constructor",
)

// ListCustomerOrdersQuery returns a customer's order history, newest first.
type ListCustomerOrdersQuery struct {
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListCustomerOrdersQuery(customerID kernel.UUID) (ListCustomerOrdersQuery, error) {
	if err := customerID.Validate(); err != nil {
		return ListCustomerOrdersQuery{}, err
	}
	return ListCustomerOrdersQuery{
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q ListCustomerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListCustomerOrdersQueryIsNotConstructed)
}

func (q ListCustomerOrdersQuery) CustomerID() kernel.UUID {
	return q.customerID
}

// CustomerOrderResponse is one order in the history. DeliveredAt comes from the
// order_delivered audit record.
type CustomerOrderResponse struct {
	ID             kernel.UUID
	Status         string
	Address        string
	Items          []CustomerOrderItemResponse
	ItemsCents     int64
	ShippingCents  int64
	TotalCents     int64
	ShippingWaived bool
	WeightOz       int
	CreatedAt      time.Time
	CanceledAt     *time.Time
	DeliveredAt    *time.Time
}

type CustomerOrderItemResponse struct {
	ItemID         kernel.UUID
	Name           string
	Quantity       int
	UnitPriceCents int64
	UnitWeightOz   int
}

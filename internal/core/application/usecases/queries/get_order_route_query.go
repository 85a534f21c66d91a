package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderRouteQueryIsNotConstructed = errors.New(
	"GetOrderRouteQuery must be created via NewGetOrderRouteQuery constructor",
)

// GetOrderRouteQuery asks for the delivery route of an order. Only the owner may see it.
//
// Example:
//
//	query, _ := NewGetOrderRouteQuery(orderID, customerID)
//	route, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // not the owner, or not shipped yet
//	}
type GetOrderRouteQuery struct {
	orderID    kernel.UUID
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderRouteQuery(orderID, customerID kernel.UUID) (GetOrderRouteQuery, error) {
	if err := errors.Join(orderID.Validate(), customerID.Validate()); err != nil {
		return GetOrderRouteQuery{}, err
	}
	return GetOrderRouteQuery{
		orderID:    orderID,
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderRouteQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderRouteQueryIsNotConstructed)
}

func (q GetOrderRouteQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetOrderRouteQuery) CustomerID() kernel.UUID {
	return q.customerID
}

type GetOrderRouteQueryResponse struct {
	OrderID   kernel.UUID
	VehicleID kernel.UUID
	Polyline  string
}

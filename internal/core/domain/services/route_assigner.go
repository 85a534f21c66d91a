package services

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/routing"
	"fulfillment/internal/core/domain/model/vehicle"
)

// ErrVehicleNotReady is returned when routes are assigned to a vehicle that is not Ready.
var ErrVehicleNotReady = errors.New("vehicle is not ready")

// Assignment is the in-memory outcome of matching planned routes to orders.
type Assignment struct {
	// Shipped holds the orders moved to Shipped, in route visit order.
	Shipped []*order.Order
	// UnknownOrderIDs are route labels that match no awaiting order.
	UnknownOrderIDs []kernel.UUID
	// Skipped are awaiting orders the planner left out of every route.
	Skipped []*order.Order
}

// RouteAssigner matches planned routes to awaiting orders by the order id each stop carries,
// never by position in the response.
//
// Example:
//
//	assignment, err := services.NewRouteAssigner().Assign(v, awaiting, routes)
//	for _, o := range assignment.Shipped {
//	    // persist with a compare-and-set on AWAITING_DISPATCH
//	}
type RouteAssigner struct{}

func NewRouteAssigner() RouteAssigner {
	return RouteAssigner{}
}

// Stops builds the planner input for a batch of orders.
func (a RouteAssigner) Stops(orders []*order.Order) ([]routing.Stop, error) {
	stops := make([]routing.Stop, 0, len(orders))
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return nil, err
		}
		stop, err := routing.NewStop(o.ID(), o.Destination().Location())
		if err != nil {
			return nil, err
		}
		stops = append(stops, stop)
	}
	return stops, nil
}

// Assign ships every awaiting order visited by a route to v with that route's polyline.
// Orders no longer awaiting dispatch and repeated labels are ignored.
func (a RouteAssigner) Assign(v *vehicle.Vehicle, orders []*order.Order, routes []routing.Route) (Assignment, error) {
	if err := v.Validate(); err != nil {
		return Assignment{}, err
	}
	if !v.IsReady() {
		return Assignment{}, ErrVehicleNotReady
	}

	byID := make(map[kernel.UUID]*order.Order, len(orders))
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return Assignment{}, err
		}
		if o.Status() == order.AwaitingDispatch {
			byID[o.ID()] = o
		}
	}

	var result Assignment
	shipped := make(map[kernel.UUID]struct{})
	for _, route := range routes {
		for _, id := range route.OrderIDs {
			o, ok := byID[id]
			if !ok {
				if _, done := shipped[id]; !done {
					result.UnknownOrderIDs = append(result.UnknownOrderIDs, id)
				}
				continue
			}
			if err := o.Ship(v.ID(), route.Polyline); err != nil {
				return Assignment{}, err
			}
			delete(byID, id)
			shipped[id] = struct{}{}
			result.Shipped = append(result.Shipped, o)
		}
	}

	for _, o := range orders {
		if _, ok := byID[o.ID()]; ok {
			result.Skipped = append(result.Skipped, o)
		}
	}

	return result, nil
}

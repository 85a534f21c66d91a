// Package routing describes the input and output of route planning: stops tagged with the
// order they serve, and planned routes that visit those stops.
package routing

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Stop is one delivery location, labelled with the order it belongs to.
type Stop struct {
	OrderID  kernel.UUID
	Location kernel.GeoLocation
}

func NewStop(orderID kernel.UUID, location kernel.GeoLocation) (Stop, error) {
	if err := errors.Join(orderID.Validate(), location.Validate()); err != nil {
		return Stop{}, err
	}
	return Stop{OrderID: orderID, Location: location}, nil
}

// Route is an ordered visit sequence plus the encoded polyline of the path.
type Route struct {
	OrderIDs []kernel.UUID
	Polyline string
}

func NewRoute(orderIDs []kernel.UUID, polyline string) (Route, error) {
	if strings.TrimSpace(polyline) == "" {
		return Route{}, errs.NewValueIsRequiredError("polyline")
	}
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return Route{}, err
		}
	}
	ids := make([]kernel.UUID, len(orderIDs))
	copy(ids, orderIDs)
	return Route{OrderIDs: ids, Polyline: polyline}, nil
}

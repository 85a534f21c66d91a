package kernel

import (
	"errors"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrDestinationIsNotConstructed is returned when using a zero Destination.
var ErrDestinationIsNotConstructed = errs.NewValueIsRequiredError(
	"destination must be created via NewDestination")

// Destination is where an order is delivered: a postal address and its coordinates.
type Destination struct { //nolint:recvcheck //using for validation
	address  string
	location GeoLocation
	guard    guard.ConstructorGuard
}

// NewDestination requires a non-blank address and a constructed location.
func NewDestination(address string, location GeoLocation) (Destination, error) {
	d := Destination{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(d.setAddress(address), d.setLocation(location)); err != nil {
		return Destination{}, err
	}

	return d, nil
}

func (d Destination) Validate() error {
	return d.guard.Validate(ErrDestinationIsNotConstructed)
}

func (d Destination) Address() string {
	return d.address
}

func (d Destination) Location() GeoLocation {
	return d.location
}

func (d *Destination) setAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	d.address = address
	return nil
}

func (d *Destination) setLocation(location GeoLocation) error {
	if err := location.Validate(); err != nil {
		return err
	}
	d.location = location
	return nil
}

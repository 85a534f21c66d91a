package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status is the lifecycle state of an order and the single source of truth for delivery progress.
//
// State transitions:
//
//	AwaitingDispatch ──> Shipped ──> Delivered
//	       │
//	       └──> Canceled
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	AwaitingDispatch
	Shipped
	Delivered
	Canceled
)

var statusNames = map[Status]string{
	AwaitingDispatch: "AWAITING_DISPATCH",
	Shipped:          "SHIPPED",
	Delivered:        "DELIVERED",
	Canceled:         "CANCELED",
}

// StatusFromString parses the persisted name of a status.
func StatusFromString(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name, e.g. "AWAITING_DISPATCH".
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// ValidateCanHaveVehicle enforces that a vehicle (and route polyline) is attached
// exactly when the order is Shipped or Delivered.
func (s Status) ValidateCanHaveVehicle(hasVehicle bool) error {
	requiresVehicle := s == Shipped || s == Delivered
	if hasVehicle && !requiresVehicle {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have a vehicle", s),
		)
	}
	if !hasVehicle && requiresVehicle {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no vehicle", s),
		)
	}
	return nil
}

// Ship transitions AwaitingDispatch to Shipped.
func (s Status) Ship() (Status, error) {
	return s.transition(AwaitingDispatch, Shipped)
}

// Cancel transitions AwaitingDispatch to Canceled.
func (s Status) Cancel() (Status, error) {
	return s.transition(AwaitingDispatch, Canceled)
}

// Deliver transitions Shipped to Delivered.
func (s Status) Deliver() (Status, error) {
	return s.transition(Shipped, Delivered)
}

func (s Status) transition(from, to Status) (Status, error) {
	if s != from {
		return Unknown, errs.NewInvalidTransitionError("order", s.String(), to.String())
	}
	return to, nil
}

package vehicle

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status is the operational state a delivery vehicle reports about itself.
type Status int

const (
	Unknown Status = iota
	// Ready means the vehicle is at the depot and can take a route.
	Ready
	Delivering
	Returning
)

var statusNames = map[Status]string{
	Ready:      "READY",
	Delivering: "DELIVERING",
	Returning:  "RETURNING",
}

func StatusFromString(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("vehicle status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("vehicle status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

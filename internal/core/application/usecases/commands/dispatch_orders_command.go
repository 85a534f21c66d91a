package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrDispatchOrdersCommandIsNotConstructed = errors.New(
	"DispatchOrdersCommand must be created via NewDispatchOrdersCommand constructor",
)

// DispatchOrdersCommand asks to hand every awaiting order to the given vehicle.
type DispatchOrdersCommand struct { //nolint:recvcheck //using for validation
	vehicleID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDispatchOrdersCommand(vehicleID kernel.UUID) (DispatchOrdersCommand, error) {
	if err := vehicleID.Validate(); err != nil {
		return DispatchOrdersCommand{}, err
	}
	return DispatchOrdersCommand{
		vehicleID: vehicleID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c DispatchOrdersCommand) Validate() error {
	return c.guard.Validate(ErrDispatchOrdersCommandIsNotConstructed)
}

func (c DispatchOrdersCommand) VehicleID() kernel.UUID {
	return c.vehicleID
}

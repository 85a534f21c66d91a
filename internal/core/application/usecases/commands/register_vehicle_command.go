package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/vehicle"
	"fulfillment/internal/pkg/guard"
)

var ErrRegisterVehicleCommandIsNotConstructed = errors.New(
	"RegisterVehicleCommand must be created via NewRegisterVehicleCommand constructor",
)

// RegisterVehicleCommand adds a vehicle that can later authenticate with secret.
type RegisterVehicleCommand struct { //nolint:recvcheck //using for validation
	vehicleID kernel.UUID
	secret    string
	location  kernel.GeoLocation

	guard guard.ConstructorGuard
}

func NewRegisterVehicleCommand(vehicleID kernel.UUID, secret string, location kernel.GeoLocation) (RegisterVehicleCommand, error) {
	var secretErr error
	if secret == "" {
		secretErr = vehicle.ErrSecretIsRequired
	}
	if err := errors.Join(vehicleID.Validate(), secretErr, location.Validate()); err != nil {
		return RegisterVehicleCommand{}, err
	}
	return RegisterVehicleCommand{
		vehicleID: vehicleID,
		secret:    secret,
		location:  location,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterVehicleCommand) Validate() error {
	return c.guard.Validate(ErrRegisterVehicleCommandIsNotConstructed)
}

func (c RegisterVehicleCommand) VehicleID() kernel.UUID       { return c.vehicleID }
func (c RegisterVehicleCommand) Secret() string               { return c.secret }
func (c RegisterVehicleCommand) Location() kernel.GeoLocation { return c.location }

package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/vehicle"
	"fulfillment/internal/pkg/errs"
)

// AuthenticateVehicleCommandHandler checks the credentials a vehicle presents when it
// opens a session. Unknown vehicles and wrong secrets both yield errs.ErrAuthFailed so the
// caller cannot tell them apart.
type AuthenticateVehicleCommandHandler struct {
	uowFactory VehicleUoWFactory
}

func NewAuthenticateVehicleCommandHandler(uowFactory VehicleUoWFactory) AuthenticateVehicleCommandHandler {
	return AuthenticateVehicleCommandHandler{uowFactory: uowFactory}
}

func (h AuthenticateVehicleCommandHandler) Handle(ctx context.Context, vehicleID kernel.UUID, secret string) error {
	if err := vehicleID.Validate(); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrAuthFailed, err)
	}

	v, err := h.uowFactory.Create().VehicleRepository().Get(ctx, vehicleID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return vehicle.RejectUnknown(vehicleID, secret)
	}
	if err != nil {
		return err
	}

	return v.Authenticate(secret)
}

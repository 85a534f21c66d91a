package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/vehicle"
)

// RegisterVehicleCommandHandler creates a Ready vehicle parked at the given location.
type RegisterVehicleCommandHandler struct {
	uowFactory VehicleUoWFactory
}

func NewRegisterVehicleCommandHandler(uowFactory VehicleUoWFactory) RegisterVehicleCommandHandler {
	return RegisterVehicleCommandHandler{uowFactory: uowFactory}
}

func (h RegisterVehicleCommandHandler) Handle(ctx context.Context, cmd RegisterVehicleCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	v, err := vehicle.NewVehicle(cmd.VehicleID(), cmd.Secret(), cmd.Location())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.VehicleRepository().Add(ctx, v); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

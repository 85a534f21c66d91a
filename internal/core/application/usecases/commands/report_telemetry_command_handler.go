package commands

import (
	"context"
)

// ReportTelemetryCommandHandler stores the latest status and position of a vehicle.
type ReportTelemetryCommandHandler struct {
	uowFactory VehicleUoWFactory
}

func NewReportTelemetryCommandHandler(uowFactory VehicleUoWFactory) ReportTelemetryCommandHandler {
	return ReportTelemetryCommandHandler{uowFactory: uowFactory}
}

func (h ReportTelemetryCommandHandler) Handle(ctx context.Context, cmd ReportTelemetryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	vehicleRepo := uow.VehicleRepository()

	v, err := vehicleRepo.Get(ctx, cmd.VehicleID())
	if err != nil {
		return err
	}

	if err = v.ReportTelemetry(cmd.Status(), cmd.Location()); err != nil {
		return err
	}

	if err = vehicleRepo.Update(ctx, v); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

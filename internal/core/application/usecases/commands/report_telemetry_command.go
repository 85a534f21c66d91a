package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/vehicle"
	"fulfillment/internal/pkg/guard"
)

var ErrReportTelemetryCommandIsNotConstructed = errors.New(
	"ReportTelemetryCommand must be created via NewReportTelemetryCommand constructor",
)

// ReportTelemetryCommand carries a status and position reported by a vehicle.
type ReportTelemetryCommand struct { //nolint:recvcheck //using for validation
	vehicleID kernel.UUID
	status    vehicle.Status
	location  kernel.GeoLocation

	guard guard.ConstructorGuard
}

func NewReportTelemetryCommand(
	vehicleID kernel.UUID,
	status vehicle.Status,
	location kernel.GeoLocation,
) (ReportTelemetryCommand, error) {
	if err := errors.Join(vehicleID.Validate(), status.Validate(), location.Validate()); err != nil {
		return ReportTelemetryCommand{}, err
	}
	return ReportTelemetryCommand{
		vehicleID: vehicleID,
		status:    status,
		location:  location,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ReportTelemetryCommand) Validate() error {
	return c.guard.Validate(ErrReportTelemetryCommandIsNotConstructed)
}

func (c ReportTelemetryCommand) VehicleID() kernel.UUID       { return c.vehicleID }
func (c ReportTelemetryCommand) Status() vehicle.Status       { return c.status }
func (c ReportTelemetryCommand) Location() kernel.GeoLocation { return c.location }

// Package vehiclerepo persists delivery vehicles: their bcrypt secret hash, last known
// position and status.
package vehiclerepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/vehicle"

	"github.com/google/uuid"
)

type VehicleDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	SecretHash []byte    `gorm:"type:bytea"`
	Latitude   float64
	Longitude  float64
	Status     string
}

func (VehicleDTO) TableName() string {
	return "vehicles"
}

func fromDomain(aggregate *vehicle.Vehicle) VehicleDTO {
	return VehicleDTO{
		ID:         aggregate.ID().Bytes(),
		SecretHash: aggregate.SecretHash(),
		Latitude:   aggregate.Location().Latitude(),
		Longitude:  aggregate.Location().Longitude(),
		Status:     aggregate.Status().String(),
	}
}

func toDomain(dto VehicleDTO) (*vehicle.Vehicle, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewGeoLocation(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}

	status, err := vehicle.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return vehicle.RestoreVehicle(id, dto.SecretHash, location, status)
}

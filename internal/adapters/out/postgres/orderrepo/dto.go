// Package orderrepo persists the Order aggregate and its immutable lines with GORM.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO maps the orders table. Lines are stored in order_lines keyed by position.
type OrderDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID       uuid.UUID `gorm:"type:uuid;index"`
	PaymentReference string    `gorm:"uniqueIndex"`
	Address          string
	Latitude         float64
	Longitude        float64
	Status           string
	VehicleID        *uuid.UUID `gorm:"type:uuid"`
	Polyline         *string
	CreatedAt        time.Time
	CanceledAt       *time.Time
	Lines            []LineDTO `gorm:"foreignKey:OrderID;references:ID"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// LineDTO maps one snapshot line of an order.
type LineDTO struct {
	OrderID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position       int       `gorm:"primaryKey"`
	ItemID         uuid.UUID `gorm:"type:uuid"`
	Name           string
	Quantity       int
	UnitPriceCents int64
	UnitWeightOz   int
}

func (LineDTO) TableName() string {
	return "order_lines"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var vehicleID *uuid.UUID
	if id := aggregate.Vehicle(); id != nil {
		raw := id.Bytes()
		vehicleID = &raw
	}

	lines := aggregate.Lines()
	lineDTOs := make([]LineDTO, 0, len(lines))
	for i, l := range lines {
		lineDTOs = append(lineDTOs, LineDTO{
			OrderID:        aggregate.ID().Bytes(),
			Position:       i,
			ItemID:         l.ItemID().Bytes(),
			Name:           l.Name(),
			Quantity:       l.Quantity(),
			UnitPriceCents: l.UnitPriceCents(),
			UnitWeightOz:   l.UnitWeightOz(),
		})
	}

	destination := aggregate.Destination()
	return OrderDTO{
		ID:               aggregate.ID().Bytes(),
		CustomerID:       aggregate.CustomerID().Bytes(),
		PaymentReference: aggregate.PaymentReference(),
		Address:          destination.Address(),
		Latitude:         destination.Location().Latitude(),
		Longitude:        destination.Location().Longitude(),
		Status:           aggregate.Status().String(),
		VehicleID:        vehicleID,
		Polyline:         aggregate.Polyline(),
		CreatedAt:        aggregate.CreatedAt(),
		CanceledAt:       aggregate.CanceledAt(),
		Lines:            lineDTOs,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var vehicleID *kernel.UUID
	if dto.VehicleID != nil {
		vID, vehicleErr := kernel.UUIDFromBytes((*dto.VehicleID)[:])
		if vehicleErr != nil {
			return nil, vehicleErr
		}
		vehicleID = &vID
	}

	location, err := kernel.NewGeoLocation(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}

	destination, err := kernel.NewDestination(dto.Address, location)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	lines := make([]order.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		itemID, itemErr := kernel.UUIDFromBytes(l.ItemID[:])
		if itemErr != nil {
			return nil, itemErr
		}

		line, lineErr := order.NewLine(itemID, l.Name, l.Quantity, l.UnitPriceCents, l.UnitWeightOz)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	var canceledAt *time.Time
	if dto.CanceledAt != nil {
		t := dto.CanceledAt.UTC()
		canceledAt = &t
	}

	return order.RestoreOrder(
		id,
		customerID,
		dto.PaymentReference,
		destination,
		lines,
		status,
		vehicleID,
		dto.Polyline,
		dto.CreatedAt,
		canceledAt,
	)
}

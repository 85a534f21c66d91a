package order

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// Projection is the read view of an order returned to customers.
type Projection struct {
	ID          kernel.UUID
	Status      Status
	Items       []ProjectionItem
	Totals      Totals
	Address     string
	CreatedAt   time.Time
	CanceledAt  *time.Time
	DeliveredAt *time.Time
}

type ProjectionItem struct {
	ItemID         kernel.UUID
	Name           string
	Quantity       int
	UnitPriceCents int64
	UnitWeightOz   int
}

// Project builds the customer view. deliveredAt comes from the audit trail and is
// ignored unless the order is delivered.
func (o *Order) Project(deliveredAt *time.Time) Projection {
	items := make([]ProjectionItem, 0, len(o.lines))
	for _, l := range o.lines {
		items = append(items, ProjectionItem{
			ItemID:         l.itemID,
			Name:           l.name,
			Quantity:       l.quantity,
			UnitPriceCents: l.unitPriceCents,
			UnitWeightOz:   l.unitWeightOz,
		})
	}

	p := Projection{
		ID:         o.id,
		Status:     o.status,
		Items:      items,
		Totals:     o.Totals(),
		Address:    o.destination.Address(),
		CreatedAt:  o.createdAt,
		CanceledAt: o.canceledAt,
	}
	if o.status == Delivered {
		p.DeliveredAt = deliveredAt
	}
	return p
}

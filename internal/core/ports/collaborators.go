package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// CartLine is one entry of a customer's cart.
type CartLine struct {
	ItemID   kernel.UUID
	Quantity int
}

// Cart reads and clears the customer's cart.
type Cart interface {
	Lines(ctx context.Context, customerID kernel.UUID) ([]CartLine, error)
	Clear(ctx context.Context, customerID kernel.UUID) error
}

// CatalogItem carries the price and weight used to snapshot order lines.
type CatalogItem struct {
	ID         kernel.UUID
	Name       string
	PriceCents int64
	WeightOz   int
}

type Catalog interface {
	// GetItems returns the requested items keyed by id; unknown ids are absent from the map.
	GetItems(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]CatalogItem, error)
}

package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// StockLedger tracks available units per item. Available never drops below zero.
type StockLedger interface {
	// Reserve decrements available by quantity atomically, or fails with
	// *errs.InsufficientStockError leaving the item untouched.
	Reserve(ctx context.Context, itemID kernel.UUID, quantity int) error

	// Release increments available by quantity.
	Release(ctx context.Context, itemID kernel.UUID, quantity int) error

	Available(ctx context.Context, itemID kernel.UUID) (int, error)
}

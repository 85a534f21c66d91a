// Package cartrepo reads and clears customer carts stored in cart_items.
// Cart mutation belongs to the storefront; this side only snapshots and empties it.
package cartrepo

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CartItemDTO struct {
	CustomerID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity   int
	AddedAt    time.Time
}

func (CartItemDTO) TableName() string {
	return "cart_items"
}

// GormCart implements ports.Cart.
type GormCart struct {
	db *gorm.DB
}

func NewGormCart(db *gorm.DB) *GormCart {
	return &GormCart{db: db}
}

// Lines returns the cart content in the order items were added.
func (c *GormCart) Lines(ctx context.Context, customerID kernel.UUID) ([]ports.CartLine, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []CartItemDTO
	err := c.db.WithContext(ctx).
		Where("customer_id = ?", customerID.Bytes()).
		Order("added_at, item_id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	lines := make([]ports.CartLine, 0, len(dtos))
	for _, dto := range dtos {
		itemID, err := kernel.UUIDFromBytes(dto.ItemID[:])
		if err != nil {
			return nil, err
		}
		lines = append(lines, ports.CartLine{ItemID: itemID, Quantity: dto.Quantity})
	}

	return lines, nil
}

func (c *GormCart) Clear(ctx context.Context, customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	return c.db.WithContext(ctx).
		Where("customer_id = ?", customerID.Bytes()).
		Delete(&CartItemDTO{}).Error
}

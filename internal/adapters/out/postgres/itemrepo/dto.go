// Package itemrepo reads and mutates the items table: the catalog snapshot used for order
// lines and the stock ledger that guards available units.
package itemrepo

import (
	"github.com/google/uuid"
)

type ItemDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string
	PriceCents int64
	WeightOz   int
	Available  int
}

func (ItemDTO) TableName() string {
	return "items"
}

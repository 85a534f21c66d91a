package itemrepo

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCatalog implements ports.Catalog.
type GormCatalog struct {
	db *gorm.DB
}

func NewGormCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{db: db}
}

func (c *GormCatalog) GetItems(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]ports.CatalogItem, error) {
	items := make(map[kernel.UUID]ports.CatalogItem, len(ids))
	if len(ids) == 0 {
		return items, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []ItemDTO
	if err := c.db.WithContext(ctx).Where("id IN ?", raw).Find(&dtos).Error; err != nil {
		return nil, err
	}

	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		items[id] = ports.CatalogItem{
			ID:         id,
			Name:       dto.Name,
			PriceCents: dto.PriceCents,
			WeightOz:   dto.WeightOz,
		}
	}

	return items, nil
}

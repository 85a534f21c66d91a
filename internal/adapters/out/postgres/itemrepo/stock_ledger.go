package itemrepo

import (
	"context"
	"errors"
	"math"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormStockLedger implements ports.StockLedger on items.available.
// Every change is a single conditional UPDATE so concurrent reservations cannot oversell.
type GormStockLedger struct {
	db *gorm.DB
}

func NewGormStockLedger(db *gorm.DB) *GormStockLedger {
	return &GormStockLedger{db: db}
}

func (l *GormStockLedger) Reserve(ctx context.Context, itemID kernel.UUID, quantity int) error {
	if err := errors.Join(itemID.Validate(), validateQuantity(quantity)); err != nil {
		return err
	}

	result := l.db.WithContext(ctx).
		Model(&ItemDTO{}).
		Where("id = ? AND available >= ?", itemID.Bytes(), quantity).
		UpdateColumn("available", gorm.Expr("available - ?", quantity))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		available, err := l.Available(ctx, itemID)
		if err != nil {
			return err
		}
		return errs.NewInsufficientStockError(itemID.String(), quantity, available)
	}

	return nil
}

func (l *GormStockLedger) Release(ctx context.Context, itemID kernel.UUID, quantity int) error {
	if err := errors.Join(itemID.Validate(), validateQuantity(quantity)); err != nil {
		return err
	}

	result := l.db.WithContext(ctx).
		Model(&ItemDTO{}).
		Where("id = ?", itemID.Bytes()).
		UpdateColumn("available", gorm.Expr("available + ?", quantity))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("item", itemID.String())
	}

	return nil
}

func (l *GormStockLedger) Available(ctx context.Context, itemID kernel.UUID) (int, error) {
	if err := itemID.Validate(); err != nil {
		return 0, err
	}

	var dto ItemDTO
	err := l.db.WithContext(ctx).Select("id", "available").First(&dto, "id = ?", itemID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, errs.NewObjectNotFoundError("item", itemID.String())
		}
		return 0, err
	}

	return dto.Available, nil
}

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, math.MaxInt32)
	}
	return nil
}

package orderrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add inserts the order and its lines. A payment reference that is already stored
// is reported as ObjectAlreadyExistsError.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return errs.NewObjectAlreadyExistsErrorWithCause("payment reference", dto.PaymentReference, err)
		}
		return err
	}

	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return r.first(ctx, "order", id.String(), "id = ?", id.Bytes())
}

func (r *GormOrderRepository) GetOwned(ctx context.Context, id, customerID kernel.UUID) (*order.Order, error) {
	if err := errors.Join(id.Validate(), customerID.Validate()); err != nil {
		return nil, err
	}

	return r.first(ctx, "order", id.String(), "id = ? AND customer_id = ?", id.Bytes(), customerID.Bytes())
}

func (r *GormOrderRepository) GetByPaymentReference(ctx context.Context, paymentReference string) (*order.Order, error) {
	return r.first(ctx, "payment reference", paymentReference, "payment_reference = ?", paymentReference)
}

// GetAllAwaitingDispatch returns every order still waiting for a vehicle, oldest first.
func (r *GormOrderRepository) GetAllAwaitingDispatch(ctx context.Context) ([]*order.Order, error) {
	return r.find(ctx, "created_at, id", "status = ?", order.AwaitingDispatch.String())
}

// ListByCustomer returns the customer's orders, newest first.
func (r *GormOrderRepository) ListByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	return r.find(ctx, "created_at DESC, id", "customer_id = ?", customerID.Bytes())
}

// UpdateIfStatus is a compare-and-set on the order status. Lines are never rewritten.
func (r *GormOrderRepository) UpdateIfStatus(
	ctx context.Context,
	aggregate *order.Order,
	expected order.Status,
) (bool, error) {
	if err := errors.Join(aggregate.Validate(), expected.Validate()); err != nil {
		return false, err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, expected.String()).
		Updates(map[string]any{
			"status":      dto.Status,
			"vehicle_id":  dto.VehicleID,
			"polyline":    dto.Polyline,
			"canceled_at": dto.CanceledAt,
		})
	if result.Error != nil {
		return false, result.Error
	}

	if result.RowsAffected == 0 {
		return false, nil
	}

	return true, nil
}

func (r *GormOrderRepository) first(
	ctx context.Context,
	paramName string,
	value any,
	query string,
	args ...any,
) (*order.Order, error) {
	var dto OrderDTO
	err := r.withLines(ctx).Where(query, args...).First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(paramName, value)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) find(ctx context.Context, orderBy, query string, args ...any) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.withLines(ctx).Where(query, args...).Order(orderBy).Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func (r *GormOrderRepository) withLines(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Lines", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}

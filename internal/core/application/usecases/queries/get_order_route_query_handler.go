package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderRouteQueryHandler reads the polyline assigned at dispatch.
type GetOrderRouteQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderRouteQueryHandler(db *gorm.DB) GetOrderRouteQueryHandler {
	return GetOrderRouteQueryHandler{db: db}
}

// Handle returns errs.ErrObjectNotFound when the order does not exist, belongs to someone
// else, or has no route yet.
func (h GetOrderRouteQueryHandler) Handle(ctx context.Context, query GetOrderRouteQuery) (GetOrderRouteQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderRouteQueryResponse{}, err
	}

	var (
		vehicleID *uuid.UUID
		polyline  sql.NullString
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT vehicle_id, polyline
		FROM orders
		WHERE id = ? AND customer_id = ?
	`, query.OrderID().Bytes(), query.CustomerID().Bytes()).Row()

	if err := row.Scan(&vehicleID, &polyline); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderRouteQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderRouteQueryResponse{}, err
	}

	if vehicleID == nil || !polyline.Valid {
		return GetOrderRouteQueryResponse{}, errs.NewObjectNotFoundErrorWithCause(
			"route", query.OrderID().String(), errors.New("order has not shipped"))
	}

	vID, err := kernel.UUIDFromBytes(vehicleID[:])
	if err != nil {
		return GetOrderRouteQueryResponse{}, err
	}

	return GetOrderRouteQueryResponse{
		OrderID:   query.OrderID(),
		VehicleID: vID,
		Polyline:  polyline.String,
	}, nil
}

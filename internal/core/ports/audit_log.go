package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

type AuditAction string

const (
	AuditOrderConfirmed AuditAction = "order_confirmed"
	AuditOrderShipped   AuditAction = "order_shipped"
	AuditOrderCanceled  AuditAction = "order_canceled"
	AuditOrderDelivered AuditAction = "order_delivered"
)

const AuditTargetOrder = "order"

// AuditRecord is an append-only entry describing a state change.
type AuditRecord struct {
	Action     AuditAction
	ActorID    *kernel.UUID
	TargetType string
	TargetID   kernel.UUID
	Details    map[string]any
	CreatedAt  time.Time
}

// AuditLog stores audit records. It is the only source for when an order was delivered.
type AuditLog interface {
	Record(ctx context.Context, record AuditRecord) error

	// DeliveredAt returns the time of the order_delivered record for each id that has one.
	DeliveredAt(ctx context.Context, orderIDs []kernel.UUID) (map[kernel.UUID]time.Time, error)
}

package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/routing"
)

// RoutePlanner asks the external optimization service for routes from the depot.
// Every failure, including context expiry, is reported as errs.ErrRouteUnavailable.
type RoutePlanner interface {
	Plan(ctx context.Context, depot kernel.GeoLocation, stops []routing.Stop) ([]routing.Route, error)
}

type PaymentStatus string

const (
	PaymentSucceeded PaymentStatus = "SUCCEEDED"
	PaymentPending   PaymentStatus = "PENDING"
	PaymentFailed    PaymentStatus = "FAILED"
)

// PaymentGateway verifies that a charge was captured for the customer.
type PaymentGateway interface {
	VerifyCharge(ctx context.Context, paymentReference string, customerID kernel.UUID) (PaymentStatus, error)
}

// Notifier pushes an "orderUpdate" message to a connected customer.
// Delivery is best effort; it reports false when the customer is not connected.
type Notifier interface {
	NotifyOrderUpdate(ctx context.Context, customerID kernel.UUID) bool
}

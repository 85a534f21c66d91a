package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors for the fulfillment and dispatch workflow.
var (
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrWeightExceeded     = errors.New("weight exceeded")
	ErrInvalidTransition  = errors.New("invalid transition")
	ErrPaymentNotVerified = errors.New("payment not verified")
	// ErrRouteUnavailable is retryable: the caller keeps its state and tries again later.
	ErrRouteUnavailable = errors.New("route unavailable")
	ErrAuthFailed       = errors.New("authentication failed")
)

// InsufficientStockError names the item that could not be reserved and how many units remain.
type InsufficientStockError struct {
	ItemID    string
	Requested int
	Available int
}

// NewInsufficientStockError creates an InsufficientStockError.
func NewInsufficientStockError(itemID string, requested, available int) *InsufficientStockError {
	return &InsufficientStockError{
		ItemID:    itemID,
		Requested: requested,
		Available: available,
	}
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: item %s requested %d, available %d",
		ErrInsufficientStock, e.ItemID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// WeightExceededError reports a shipment heavier than the allowed limit, both in ounces.
type WeightExceededError struct {
	WeightOz int
	LimitOz  int
}

// NewWeightExceededError creates a WeightExceededError.
func NewWeightExceededError(weightOz, limitOz int) *WeightExceededError {
	return &WeightExceededError{
		WeightOz: weightOz,
		LimitOz:  limitOz,
	}
}

func (e *WeightExceededError) Error() string {
	return fmt.Sprintf("%s: %d oz exceeds limit of %d oz", ErrWeightExceeded, e.WeightOz, e.LimitOz)
}

func (e *WeightExceededError) Unwrap() error {
	return ErrWeightExceeded
}

// InvalidTransitionError reports a state change that the current state does not allow.
type InvalidTransitionError struct {
	Entity    string
	Current   string
	Requested string
}

// NewInvalidTransitionError creates an InvalidTransitionError.
func NewInvalidTransitionError(entity, current, requested string) *InvalidTransitionError {
	return &InvalidTransitionError{
		Entity:    entity,
		Current:   current,
		Requested: requested,
	}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s cannot move from %s to %s",
		ErrInvalidTransition, e.Entity, e.Current, e.Requested)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// PaymentNotVerifiedError reports a charge the gateway did not confirm as succeeded.
type PaymentNotVerifiedError struct {
	PaymentReference string
	Status           string
}

// NewPaymentNotVerifiedError creates a PaymentNotVerifiedError.
func NewPaymentNotVerifiedError(paymentReference, status string) *PaymentNotVerifiedError {
	return &PaymentNotVerifiedError{
		PaymentReference: paymentReference,
		Status:           status,
	}
}

func (e *PaymentNotVerifiedError) Error() string {
	return fmt.Sprintf("%s: charge %s is %s", ErrPaymentNotVerified, e.PaymentReference, e.Status)
}

func (e *PaymentNotVerifiedError) Unwrap() error {
	return ErrPaymentNotVerified
}

// NewRouteUnavailableError wraps the planner failure so that both ErrRouteUnavailable
// and the underlying cause match with errors.Is.
func NewRouteUnavailableError(cause error) error {
	if cause == nil {
		return ErrRouteUnavailable
	}
	return fmt.Errorf("%w: %w", ErrRouteUnavailable, cause)
}

package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned for an Order not built by NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrEmptyOrder is returned when confirming an order without lines.
	ErrEmptyOrder = errs.NewValueIsRequiredError("order lines")
)

// Order is the aggregate root of a confirmed purchase. It is created awaiting dispatch,
// shipped by a delivery vehicle, and then delivered; it may be canceled only before shipping.
//
// Invariants:
//   - vehicle and polyline are set iff status is Shipped or Delivered
//   - canceledAt is set iff status is Canceled
//   - lines are immutable snapshots and total weight never exceeds MaxShipmentWeightOz
type Order struct {
	id               kernel.UUID
	customerID       kernel.UUID
	paymentReference string
	destination      kernel.Destination
	lines            []Line
	status           Status
	vehicleID        *kernel.UUID
	polyline         *string
	createdAt        time.Time
	canceledAt       *time.Time

	isConstructed bool
}

// NewOrder creates an order awaiting dispatch.
//
// Example:
//
//	line, _ := order.NewLine(itemID, "Apples", 2, 399, 16)
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, "pi_123", destination, []order.Line{line}, time.Now())
func NewOrder(
	id, customerID kernel.UUID,
	paymentReference string,
	destination kernel.Destination,
	lines []Line,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        AwaitingDispatch,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setPaymentReference(paymentReference),
		o.setDestination(destination),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	if err := ValidateWeight(lines); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from persisted state and re-checks its invariants.
func RestoreOrder(
	id, customerID kernel.UUID,
	paymentReference string,
	destination kernel.Destination,
	lines []Line,
	status Status,
	vehicleID *kernel.UUID,
	polyline *string,
	createdAt time.Time,
	canceledAt *time.Time,
) (*Order, error) {
	o := &Order{
		status:        status,
		vehicleID:     vehicleID,
		polyline:      polyline,
		createdAt:     createdAt.UTC(),
		canceledAt:    canceledAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setPaymentReference(paymentReference),
		o.setDestination(destination),
		o.setLines(lines),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if vehicleID != nil {
		if err := vehicleID.Validate(); err != nil {
			return nil, err
		}
	}
	if (vehicleID == nil) != (polyline == nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"order", fmt.Errorf("vehicle and polyline must be set together"))
	}
	if err := status.ValidateCanHaveVehicle(vehicleID != nil); err != nil {
		return nil, err
	}
	if (status == Canceled) != (canceledAt != nil) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"canceled at", fmt.Errorf("must be set iff status is %s", Canceled))
	}

	return o, nil
}

// ValidateWeight fails with WeightExceededError when the lines weigh more than MaxShipmentWeightOz.
func ValidateWeight(lines []Line) error {
	weight := ComputeTotals(lines).WeightOz
	if weight > MaxShipmentWeightOz {
		return errs.NewWeightExceededError(weight, MaxShipmentWeightOz)
	}
	return nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by id.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID                 { return o.id }
func (o *Order) CustomerID() kernel.UUID         { return o.customerID }
func (o *Order) PaymentReference() string        { return o.paymentReference }
func (o *Order) Destination() kernel.Destination { return o.destination }
func (o *Order) Status() Status                  { return o.status }
func (o *Order) CreatedAt() time.Time            { return o.createdAt }
func (o *Order) CanceledAt() *time.Time          { return o.canceledAt }

// Lines returns a copy of the line snapshots.
func (o *Order) Lines() []Line {
	lines := make([]Line, len(o.lines))
	copy(lines, o.lines)
	return lines
}

// Vehicle returns the assigned vehicle, nil until shipped.
func (o *Order) Vehicle() *kernel.UUID {
	return o.vehicleID
}

// Polyline returns the encoded route polyline, nil until shipped.
func (o *Order) Polyline() *string {
	return o.polyline
}

func (o *Order) Totals() Totals {
	return ComputeTotals(o.lines)
}

// IsOwnedBy reports whether the customer placed this order.
func (o *Order) IsOwnedBy(customerID kernel.UUID) bool {
	return o.customerID.IsEqual(customerID)
}

// Ship assigns the order to a vehicle's route.
func (o *Order) Ship(vehicleID kernel.UUID, polyline string) error {
	if err := vehicleID.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(polyline) == "" {
		return errs.NewValueIsRequiredError("polyline")
	}

	newStatus, err := o.status.Ship()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.vehicleID = &vehicleID
	o.polyline = &polyline
	return nil
}

// Cancel marks an order that has not shipped yet as canceled.
func (o *Order) Cancel(now time.Time) error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	canceledAt := now.UTC()
	o.status = newStatus
	o.canceledAt = &canceledAt
	return nil
}

// Deliver marks a shipped order as delivered.
func (o *Order) Deliver() error {
	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer id", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setPaymentReference(ref string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return errs.NewValueIsRequiredError("payment reference")
	}
	o.paymentReference = ref
	return nil
}

func (o *Order) setDestination(d kernel.Destination) error {
	if err := d.Validate(); err != nil {
		return err
	}
	o.destination = d
	return nil
}

func (o *Order) setLines(lines []Line) error {
	if len(lines) == 0 {
		return ErrEmptyOrder
	}
	o.lines = make([]Line, len(lines))
	copy(o.lines, lines)
	return nil
}

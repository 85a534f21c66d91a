package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrConfirmOrderCommandIsNotConstructed = errors.New(
		"ConfirmOrderCommand must be created via NewConfirmOrderCommand constructor",
	)
	ErrPaymentReferenceIsRequired = errs.NewValueIsRequiredError("payment reference")
)

// ConfirmOrderCommand turns a verified payment into an order for the customer's cart.
// The payment reference is the idempotency key.
//
// Example:
//
//	cmd, err := NewConfirmOrderCommand("pi_3Nf...", customerID, destination)
//	orderID, err := handler.Handle(ctx, cmd)
type ConfirmOrderCommand struct { //nolint:recvcheck //using for validation
	paymentReference string
	customerID       kernel.UUID
	destination      kernel.Destination

	guard guard.ConstructorGuard
}

func NewConfirmOrderCommand(
	paymentReference string,
	customerID kernel.UUID,
	destination kernel.Destination,
) (ConfirmOrderCommand, error) {
	cmd := ConfirmOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPaymentReference(paymentReference),
		cmd.setCustomerID(customerID),
		cmd.setDestination(destination),
	); err != nil {
		return ConfirmOrderCommand{}, err
	}

	return cmd, nil
}

func (c ConfirmOrderCommand) Validate() error {
	return c.guard.Validate(ErrConfirmOrderCommandIsNotConstructed)
}

func (c ConfirmOrderCommand) PaymentReference() string {
	return c.paymentReference
}

func (c ConfirmOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c ConfirmOrderCommand) Destination() kernel.Destination {
	return c.destination
}

func (c *ConfirmOrderCommand) setPaymentReference(ref string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ErrPaymentReferenceIsRequired
	}
	c.paymentReference = ref
	return nil
}

func (c *ConfirmOrderCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.customerID = id
	return nil
}

func (c *ConfirmOrderCommand) setDestination(d kernel.Destination) error {
	if err := d.Validate(); err != nil {
		return err
	}
	c.destination = d
	return nil
}

package order

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Line is an immutable snapshot of one purchased item: quantity, unit price and unit weight
// as they were at confirmation time.
type Line struct {
	itemID         kernel.UUID
	name           string
	quantity       int
	unitPriceCents int64
	unitWeightOz   int
}

// NewLine validates quantity > 0 and non-negative price and weight.
func NewLine(itemID kernel.UUID, name string, quantity int, unitPriceCents int64, unitWeightOz int) (Line, error) {
	var errList []error
	if err := itemID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if quantity <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity)))
	}
	if unitPriceCents < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"unit price", fmt.Errorf("%d is negative", unitPriceCents)))
	}
	if unitWeightOz < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"unit weight", fmt.Errorf("%d is negative", unitWeightOz)))
	}
	if err := errors.Join(errList...); err != nil {
		return Line{}, err
	}

	return Line{
		itemID:         itemID,
		name:           strings.TrimSpace(name),
		quantity:       quantity,
		unitPriceCents: unitPriceCents,
		unitWeightOz:   unitWeightOz,
	}, nil
}

func (l Line) ItemID() kernel.UUID   { return l.itemID }
func (l Line) Name() string          { return l.name }
func (l Line) Quantity() int         { return l.quantity }
func (l Line) UnitPriceCents() int64 { return l.unitPriceCents }
func (l Line) UnitWeightOz() int     { return l.unitWeightOz }

// SubtotalCents is unit price times quantity.
func (l Line) SubtotalCents() int64 {
	return l.unitPriceCents * int64(l.quantity)
}

// WeightOz is unit weight times quantity.
func (l Line) WeightOz() int {
	return l.unitWeightOz * l.quantity
}

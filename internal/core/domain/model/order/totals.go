package order

const (
	// MaxShipmentWeightOz is the heaviest shipment a vehicle accepts (200 lb).
	MaxShipmentWeightOz = 3200

	// FlatShippingCents is the shipping fee quoted on every shipment.
	FlatShippingCents int64 = 1000

	// FreeShippingBelowOz is the weight (20 lb) under which the quoted fee is waived.
	FreeShippingBelowOz = 320
)

// Totals summarizes the money and weight of a set of lines. ShippingCents is the quoted
// fee and is kept even when ShippingWaived is set; TotalCents includes it.
type Totals struct {
	ItemsCents     int64
	ShippingCents  int64
	TotalCents     int64
	WeightOz       int
	ShippingWaived bool
}

// ChargedCents is what the customer pays: the items alone when shipping is waived.
func (t Totals) ChargedCents() int64 {
	if t.ShippingWaived {
		return t.ItemsCents
	}
	return t.TotalCents
}

// ComputeTotals sums line subtotals and weights and applies the shipping rule.
func ComputeTotals(lines []Line) Totals {
	var t Totals
	for _, l := range lines {
		t.ItemsCents += l.SubtotalCents()
		t.WeightOz += l.WeightOz()
	}
	if len(lines) > 0 {
		t.ShippingCents = FlatShippingCents
		t.ShippingWaived = t.WeightOz < FreeShippingBelowOz
	}
	t.TotalCents = t.ItemsCents + t.ShippingCents
	return t
}

package pricing

import "math"

// Rates holds the configured pricing knobs. Percentages are whole numbers
// (18 means 18%).
type Rates struct {
	TaxPercentage        float64
	ConvenienceFee       float64
	ChildPricePercentage float64
}

// Breakdown is a priced booking. Only Total is rounded (to the nearest whole
// currency unit); the sub-totals keep their fractional parts.
type Breakdown struct {
	AdultTotal     float64 `json:"adultTotal"`
	ChildTotal     float64 `json:"childTotal"`
	Subtotal       float64 `json:"subtotal"`
	Tax            float64 `json:"tax"`
	ConvenienceFee float64 `json:"convenienceFee"`
	Total          float64 `json:"total"`
}

// Calculate prices a booking from the pass unit price and guest counts.
// Children pay a configured percentage of the adult price. Callers guarantee
// adults >= 1 and children >= 0; there are no error conditions.
func Calculate(unitPrice float64, adults, children int, r Rates) Breakdown {
	adultTotal := unitPrice * float64(adults)
	childTotal := unitPrice * (r.ChildPricePercentage / 100) * float64(children)
	subtotal := adultTotal + childTotal
	tax := subtotal * (r.TaxPercentage / 100)

	return Breakdown{
		AdultTotal:     adultTotal,
		ChildTotal:     childTotal,
		Subtotal:       subtotal,
		Tax:            tax,
		ConvenienceFee: r.ConvenienceFee,
		Total:          math.Round(subtotal + tax + r.ConvenienceFee),
	}
}

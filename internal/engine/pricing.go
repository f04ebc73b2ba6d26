package engine

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// isODASurcharge reports whether a surcharge name marks it as conditional on
// an out-of-delivery-area destination.
func isODASurcharge(name string) bool {
	return strings.Contains(strings.ToLower(name), "oda")
}

// PriceCandidate applies a candidate's surcharges on top of the seeded base
// price and returns the final price.
//
// The base price is baseRate times the chargeable weight rounded up to whole
// kg (minimum 1). Surcharges are applied sequentially in the order gathered:
// percent is computed against the running price, so surcharges compound
// rather than all applying to the original base. ODA-named surcharges apply
// only when the destination is ODA; matching one marks the candidate as ODA
// handled even if it carries neither percent nor flat. When the destination
// is ODA and no carrier surcharge handled it, the warehouse odaFee (when
// present) is added once as a fallback.
func PriceCandidate(c RateCandidate, chargeableKg float64, isODADestination bool, odaFee decimal.Decimal) decimal.Decimal {
	price := c.BaseRate.Mul(decimal.NewFromInt(BillableUnits(chargeableKg)))

	odaHandled := false
	for _, s := range c.Surcharges {
		if isODASurcharge(s.Name) {
			if !isODADestination {
				continue
			}
			odaHandled = true
		}
		if s.Percent != nil {
			price = price.Add(price.Mul(*s.Percent).Div(hundred))
		}
		if s.Flat != nil {
			price = price.Add(*s.Flat)
		}
	}

	if isODADestination && !odaHandled && odaFee.IsPositive() {
		price = price.Add(odaFee)
	}
	return price
}

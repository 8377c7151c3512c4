package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/wealthlab/wealth-calculator/pkg/rounding"
)

// RATE AND TAX ROUNDING POLICY:
//
// 1. Returns (ApplyRate) round half away from zero to a whole unit.
// 2. Withheld tax always rounds down (floor). Net amounts are gross minus the
//    floored tax, so the holder keeps any fractional unit.
// 3. Rounding happens where a figure is computed. Later steps consume the
//    rounded figure.

// ApplyRate returns round(principal × ratePct / 100).
func ApplyRate(principal, ratePct decimal.Decimal) decimal.Decimal {
	return rounding.Unit(rounding.OfPercent(principal, ratePct))
}

// FlatWithholding returns floor(base × ratePct / 100), the tax withheld on base.
func FlatWithholding(base, ratePct decimal.Decimal) decimal.Decimal {
	return rounding.Floor(rounding.OfPercent(base, ratePct))
}

// ApplyFlatTax returns amount − floor(amount × ratePct / 100).
func ApplyFlatTax(amount, ratePct decimal.Decimal) decimal.Decimal {
	return amount.Sub(FlatWithholding(amount, ratePct))
}

// BracketWithholding returns the tax due on the part of taxableBase above
// exemptThreshold. A base at or below the threshold is fully exempt.
func BracketWithholding(taxableBase, exemptThreshold, ratePct decimal.Decimal) decimal.Decimal {
	if taxableBase.LessThanOrEqual(exemptThreshold) {
		return decimal.Zero
	}
	return FlatWithholding(taxableBase.Sub(exemptThreshold), ratePct)
}

// ApplyBracketExemption returns grossAmount less the tax on the excess of
// taxableBase over exemptThreshold. The tax is measured on the taxable base,
// which may differ from the gross amount distributed.
func ApplyBracketExemption(taxableBase, exemptThreshold, ratePct, grossAmount decimal.Decimal) decimal.Decimal {
	return grossAmount.Sub(BracketWithholding(taxableBase, exemptThreshold, ratePct))
}

// Package rounding holds the whole-currency-unit rounding policies used by the
// projection engine. Each policy is applied at the point a figure is computed,
// never deferred to display time.
package rounding

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Unit rounds to the nearest whole unit, half away from zero.
func Unit(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

// Floor rounds down to a whole unit.
func Floor(d decimal.Decimal) decimal.Decimal {
	return d.Floor()
}

// Ceil rounds up to a whole unit.
func Ceil(d decimal.Decimal) decimal.Decimal {
	return d.Ceil()
}

// Percent converts a percentage (15.4) into a fraction (0.154).
func Percent(pct decimal.Decimal) decimal.Decimal {
	return pct.Div(hundred)
}

// OfPercent returns amount × pct / 100 without rounding.
func OfPercent(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(hundred)
}

// GrowthFactor returns 1 + pct/100.
func GrowthFactor(pct decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(1).Add(Percent(pct))
}

// Max returns the larger of two amounts.
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, got.Equal(d(want)), append([]interface{}{"want %s got %s", want, got.String()}, msgAndArgs...)...)
}

func TestApplyRate(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		rate      string
		want      string
	}{
		{"whole result", "200000000", "20", "40000000"},
		{"half rounds up", "5", "10", "1"},       // 0.5
		{"below half rounds down", "4", "10", "0"}, // 0.4
		{"negative half rounds away", "-5", "10", "-1"},
		{"fractional rate", "1000", "2.5", "25"},
		{"zero rate", "123456", "0", "0"},
		{"negative rate", "1000", "-10", "-100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDec(t, tt.want, ApplyRate(d(tt.principal), d(tt.rate)))
		})
	}
}

func TestApplyFlatTaxFloorsTheTax(t *testing.T) {
	// 999 × 15.4% = 153.846 → tax 153, never 154
	assertDec(t, "846", ApplyFlatTax(d("999"), d("15.4")))
	assertDec(t, "84600", ApplyFlatTax(d("100000"), d("15.4")))
	assertDec(t, "0", ApplyFlatTax(d("0"), d("15.4")))
}

func TestFlatWithholding(t *testing.T) {
	assertDec(t, "15400", FlatWithholding(d("100000"), d("15.4")))
	assertDec(t, "153", FlatWithholding(d("999"), d("15.4")))
}

func TestApplyBracketExemption(t *testing.T) {
	threshold := d("2000000")
	rate := d("9.9")

	t.Run("below threshold is exempt", func(t *testing.T) {
		assertDec(t, "1500000", ApplyBracketExemption(d("1500000"), threshold, rate, d("1500000")))
	})
	t.Run("exactly at threshold is exempt", func(t *testing.T) {
		assertDec(t, "2100000", ApplyBracketExemption(d("2000000"), threshold, rate, d("2100000")))
	})
	t.Run("excess taxed on taxable base", func(t *testing.T) {
		// excess base 1,000,001 × 9.9% = 99,000.099 → 99,000
		assertDec(t, "2901000", ApplyBracketExemption(d("3000001"), threshold, rate, d("3000000")))
	})
	t.Run("taxable base differs from gross", func(t *testing.T) {
		// tax on (2,500,000 − 2,000,000) × 9.9% = 49,500 taken from a gross of 3,000,000
		assertDec(t, "2950500", ApplyBracketExemption(d("2500000"), threshold, rate, d("3000000")))
	})
}

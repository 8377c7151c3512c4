package calculation

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wealthlab/wealth-calculator/internal/domain"
)

func history(amounts ...string) []domain.DividendHistoryEntry {
	out := make([]domain.DividendHistoryEntry, 0, len(amounts))
	for i, a := range amounts {
		out = append(out, domain.DividendHistoryEntry{
			RecordDate:            time.Date(2025, time.Month(12-i), 1, 0, 0, 0, 0, time.UTC),
			PerShareAmount:        d(a),
			PerShareTaxableAmount: d(a),
		})
	}
	return out
}

func TestDividendIncome_DomesticGeneral(t *testing.T) {
	r, err := DividendIncome(history("1000"), 100, domain.RegimeDomesticGeneral)
	require.NoError(t, err)
	assertDec(t, "100000", r.GrossIncome)
	assertDec(t, "100000", r.TaxableBase)
	assertDec(t, "15400", r.Tax)
	assertDec(t, "84600", r.NetIncome)
}

func TestDividendIncome_ZeroQuantityOrHistory(t *testing.T) {
	for _, regime := range []domain.TaxRegime{domain.RegimeDomesticGeneral, domain.RegimeISAGeneral, domain.RegimeISALowIncome, domain.RegimeForeign} {
		r, err := DividendIncome(history("100", "200"), 0, regime)
		require.NoError(t, err)
		assert.True(t, r.GrossIncome.IsZero())
		assert.True(t, r.NetIncome.IsZero())
		assert.True(t, r.Tax.IsZero())

		r, err = DividendIncome(nil, 10, regime)
		require.NoError(t, err)
		assert.True(t, r.NetIncome.IsZero())
	}
}

func TestDividendIncome_TaxableBaseDiffersFromGross(t *testing.T) {
	h := []domain.DividendHistoryEntry{
		{PerShareAmount: d("300"), PerShareTaxableAmount: d("100")},
		{PerShareAmount: d("200"), PerShareTaxableAmount: d("150")},
	}
	r, err := DividendIncome(h, 10, domain.RegimeDomesticGeneral)
	require.NoError(t, err)
	assertDec(t, "5000", r.GrossIncome)
	assertDec(t, "2500", r.TaxableBase)
	assertDec(t, "385", r.Tax)
	assertDec(t, "4615", r.NetIncome)
}

func TestDividendIncome_ISABrackets(t *testing.T) {
	tests := []struct {
		name     string
		regime   domain.TaxRegime
		perShare string
		quantity int64
		wantTax  string
	}{
		{"general exactly at threshold", domain.RegimeISAGeneral, "20000", 100, "0"},
		{"general above threshold", domain.RegimeISAGeneral, "30000", 100, "99000"},
		{"low income exactly at threshold", domain.RegimeISALowIncome, "40000", 100, "0"},
		{"low income below threshold", domain.RegimeISALowIncome, "30000", 100, "0"},
		{"low income above threshold", domain.RegimeISALowIncome, "50001", 100, "99009"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := DividendIncome(history(tt.perShare), tt.quantity, tt.regime)
			require.NoError(t, err)
			assertDec(t, tt.wantTax, r.Tax)
			assert.True(t, r.NetIncome.Equal(r.GrossIncome.Sub(r.Tax)))
		})
	}
}

func TestDividendIncome_ForeignKeepsCents(t *testing.T) {
	r, err := DividendIncome(history("0.2512", "0.2488"), 7, domain.RegimeForeign)
	require.NoError(t, err)
	assertDec(t, "3.5", r.GrossIncome)
	assertDec(t, "3.5", r.TaxableBase)
	assertDec(t, "0.525", r.Tax)
	assertDec(t, "2.975", r.NetIncome)
}

func TestDividendIncome_UnknownRegime(t *testing.T) {
	_, err := DividendIncome(history("1"), 1, domain.TaxRegime("offshore"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownRegime))
}

func TestDividendIncomes_DefaultsToDomesticRegimes(t *testing.T) {
	results, err := DividendIncomes(history("30000"), 100)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, domain.RegimeDomesticGeneral, results[0].Regime)
	assertDec(t, "2538000", results[0].NetIncome)
	assertDec(t, "2901000", results[1].NetIncome)
	assertDec(t, "3000000", results[2].NetIncome)
}

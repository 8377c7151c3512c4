package calculation

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/wealthlab/wealth-calculator/internal/domain"
	"github.com/wealthlab/wealth-calculator/pkg/rounding"
)

// ErrUnknownRegime is returned for a tax regime the calculator does not know.
var ErrUnknownRegime = errors.New("unknown dividend tax regime")

// Dividend tax parameters. Rates are percentages.
var (
	DomesticDividendTaxRate = decimal.RequireFromString("15.4")
	ISAExcessTaxRate        = decimal.RequireFromString("9.9")
	ISAGeneralExemption     = decimal.NewFromInt(2_000_000)
	ISALowIncomeExemption   = decimal.NewFromInt(4_000_000)
	ForeignWithholdingRate  = decimal.NewFromInt(15)
)

// DividendIncome totals the dividends paid to quantity shares over history and
// applies the regime's tax. A zero quantity or empty history yields zeros.
func DividendIncome(history []domain.DividendHistoryEntry, quantity int64, regime domain.TaxRegime) (domain.DividendIncomeResult, error) {
	result := domain.DividendIncomeResult{
		Regime:      regime,
		GrossIncome: decimal.Zero,
		TaxableBase: decimal.Zero,
		Tax:         decimal.Zero,
		NetIncome:   decimal.Zero,
	}
	if !isKnownRegime(regime) {
		return result, fmt.Errorf("%w: %q", ErrUnknownRegime, regime)
	}
	if quantity == 0 || len(history) == 0 {
		return result, nil
	}

	q := decimal.NewFromInt(quantity)
	perShare, perShareTaxable := decimal.Zero, decimal.Zero
	for _, entry := range history {
		perShare = perShare.Add(entry.PerShareAmount)
		perShareTaxable = perShareTaxable.Add(entry.PerShareTaxableAmount)
	}
	gross := perShare.Mul(q)
	taxable := perShareTaxable.Mul(q)

	switch regime {
	case domain.RegimeDomesticGeneral:
		result.Tax = FlatWithholding(taxable, DomesticDividendTaxRate)
	case domain.RegimeISAGeneral:
		result.Tax = BracketWithholding(taxable, ISAGeneralExemption, ISAExcessTaxRate)
	case domain.RegimeISALowIncome:
		result.Tax = BracketWithholding(taxable, ISALowIncomeExemption, ISAExcessTaxRate)
	case domain.RegimeForeign:
		// Foreign amounts carry cents; the withholding is not floored.
		taxable = gross
		result.Tax = rounding.OfPercent(gross, ForeignWithholdingRate)
	}

	result.GrossIncome = gross
	result.TaxableBase = taxable
	result.NetIncome = gross.Sub(result.Tax)
	return result, nil
}

// DividendIncomes computes DividendIncome for each regime in order. With no
// regimes it uses domain.DomesticRegimes.
func DividendIncomes(history []domain.DividendHistoryEntry, quantity int64, regimes ...domain.TaxRegime) ([]domain.DividendIncomeResult, error) {
	if len(regimes) == 0 {
		regimes = domain.DomesticRegimes
	}
	results := make([]domain.DividendIncomeResult, 0, len(regimes))
	for _, regime := range regimes {
		r, err := DividendIncome(history, quantity, regime)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

func isKnownRegime(r domain.TaxRegime) bool {
	switch r {
	case domain.RegimeDomesticGeneral, domain.RegimeISAGeneral, domain.RegimeISALowIncome, domain.RegimeForeign:
		return true
	}
	return false
}

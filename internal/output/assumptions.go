package output

import (
	"fmt"

	"github.com/wealthlab/wealth-calculator/internal/calculation"
	"github.com/wealthlab/wealth-calculator/internal/domain"
)

// GenerateAssumptions lists the tax and rate constants the calculators apply.
func GenerateAssumptions() []string {
	return []string{
		fmt.Sprintf("Domestic dividend withholding: %s of the taxable amount, floored to the unit", FormatPercentage(calculation.DomesticDividendTaxRate)),
		fmt.Sprintf("ISA general: dividends up to %s exempt, %s on the excess", FormatLocal(calculation.ISAGeneralExemption), FormatPercentage(calculation.ISAExcessTaxRate)),
		fmt.Sprintf("ISA low income: dividends up to %s exempt, %s on the excess", FormatLocal(calculation.ISALowIncomeExemption), FormatPercentage(calculation.ISAExcessTaxRate)),
		fmt.Sprintf("Foreign dividends: %s withheld at source", FormatPercentage(calculation.ForeignWithholdingRate)),
		fmt.Sprintf("Domestic sale profit tax (tax type %s): %s", calculation.SaleTaxType, FormatPercentage(calculation.SaleProfitTaxRate)),
		fmt.Sprintf("Early retirement goal seek compounds at %s a month", FormatPercentage(calculation.SignalMonthlyReturn.Shift(2))),
		"Required asset is the annual expense divided by the dividend tier rate",
		fmt.Sprintf("Dividend tiers: medium %s, high %s, ultra high %s",
			FormatPercentage(domain.TierMedium.Rate().Shift(2)),
			FormatPercentage(domain.TierHigh.Rate().Shift(2)),
			FormatPercentage(domain.TierUltraHigh.Rate().Shift(2))),
	}
}

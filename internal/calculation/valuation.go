package calculation

import (
	"github.com/shopspring/decimal"
	"github.com/wealthlab/wealth-calculator/internal/domain"
	"github.com/wealthlab/wealth-calculator/pkg/rounding"
)

// SaleTaxType marks domestic funds whose realized sale profit is taxed.
const SaleTaxType = "A"

// SaleProfitTaxRate is the percentage withheld from a taxable sale profit.
var SaleProfitTaxRate = decimal.RequireFromString("15.4")

// ValueForeign values a local-currency purchase of a foreign-priced
// instrument. The quantity rounds up so the whole amount is deployed, and
// profit is measured in foreign units. Local figures use the current rate and
// are for display only.
//
// A non-positive price or rate values to zero. Without a current price the
// quantity and cost are still reported, with zero evaluation and profit.
func ValueForeign(p domain.ForeignPurchase) domain.ForeignValuation {
	v := domain.ForeignValuation{
		Quantity:              decimal.Zero,
		Evaluation:            decimal.Zero,
		Cost:                  decimal.Zero,
		UnrealizedProfit:      decimal.Zero,
		EvaluationLocal:       decimal.Zero,
		UnrealizedProfitLocal: decimal.Zero,
	}
	if !p.PurchasePrice.IsPositive() || !p.PurchaseRate.IsPositive() {
		return v
	}

	v.Quantity = rounding.Ceil(p.Amount.Div(p.PurchasePrice.Mul(p.PurchaseRate)))
	v.Cost = rounding.Floor(p.Amount.Div(p.PurchaseRate))
	if !p.CurrentPrice.IsPositive() {
		return v
	}
	v.Evaluation = rounding.Floor(v.Quantity.Mul(p.CurrentPrice))
	v.UnrealizedProfit = v.Evaluation.Sub(v.Cost)
	v.EvaluationLocal = v.Evaluation.Mul(p.CurrentRate)
	v.UnrealizedProfitLocal = v.UnrealizedProfit.Mul(p.CurrentRate)
	return v
}

// ValueDomestic values a purchase of a domestically priced instrument. The
// quantity rounds down to whole shares. Funds of SaleTaxType withhold tax on a
// positive unrealized profit.
//
// A non-positive purchase price values to zero. Without a current price the
// quantity is still reported, with zero evaluation and profit.
func ValueDomestic(p domain.DomesticPurchase) domain.DomesticValuation {
	v := domain.DomesticValuation{
		Quantity:         decimal.Zero,
		Evaluation:       decimal.Zero,
		UnrealizedProfit: decimal.Zero,
		SaleTax:          decimal.Zero,
		SaleProfit:       decimal.Zero,
	}
	if !p.PurchasePrice.IsPositive() {
		return v
	}

	v.Quantity = rounding.Floor(p.Amount.Div(p.PurchasePrice))
	if !p.CurrentPrice.IsPositive() {
		return v
	}
	v.Evaluation = v.Quantity.Mul(p.CurrentPrice)
	v.UnrealizedProfit = v.Evaluation.Sub(p.PurchasePrice.Mul(v.Quantity))
	if p.TaxType == SaleTaxType && v.UnrealizedProfit.IsPositive() {
		v.SaleTax = FlatWithholding(v.UnrealizedProfit, SaleProfitTaxRate)
	}
	v.SaleProfit = v.UnrealizedProfit.Sub(v.SaleTax)
	return v
}

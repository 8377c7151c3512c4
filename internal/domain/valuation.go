package domain

import "github.com/shopspring/decimal"

// ForeignPurchase describes a local-currency purchase of a foreign-priced instrument.
type ForeignPurchase struct {
	Amount        decimal.Decimal `yaml:"amount" json:"amount"`                 // local currency spent
	PurchasePrice decimal.Decimal `yaml:"purchase_price" json:"purchase_price"` // foreign unit price at purchase
	PurchaseRate  decimal.Decimal `yaml:"purchase_rate" json:"purchase_rate"`   // local per foreign unit at purchase
	CurrentPrice  decimal.Decimal `yaml:"current_price" json:"current_price"`
	CurrentRate   decimal.Decimal `yaml:"current_rate" json:"current_rate"`
}

// ForeignValuation is the position resulting from a ForeignPurchase. Profit is
// computed in foreign units; the *Local fields are display conversions at the
// current rate.
type ForeignValuation struct {
	Quantity              decimal.Decimal `json:"quantity"`
	Evaluation            decimal.Decimal `json:"evaluation"`
	Cost                  decimal.Decimal `json:"cost"`
	UnrealizedProfit      decimal.Decimal `json:"unrealized_profit"`
	EvaluationLocal       decimal.Decimal `json:"evaluation_local"`
	UnrealizedProfitLocal decimal.Decimal `json:"unrealized_profit_local"`
}

// DomesticPurchase describes a purchase of a domestically priced instrument.
type DomesticPurchase struct {
	Amount        decimal.Decimal `yaml:"amount" json:"amount"`
	PurchasePrice decimal.Decimal `yaml:"purchase_price" json:"purchase_price"`
	CurrentPrice  decimal.Decimal `yaml:"current_price" json:"current_price"`
	TaxType       string          `yaml:"tax_type,omitempty" json:"tax_type,omitempty"`
}

// DomesticValuation is the position resulting from a DomesticPurchase.
type DomesticValuation struct {
	Quantity         decimal.Decimal `json:"quantity"`
	Evaluation       decimal.Decimal `json:"evaluation"`
	UnrealizedProfit decimal.Decimal `json:"unrealized_profit"`
	SaleTax          decimal.Decimal `json:"sale_tax"`
	SaleProfit       decimal.Decimal `json:"sale_profit"`
}

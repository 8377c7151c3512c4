package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxRegime identifies the account-tax treatment applied to dividend income.
type TaxRegime string

const (
	// RegimeDomesticGeneral is a domestic general brokerage account (15.4% on the taxable base).
	RegimeDomesticGeneral TaxRegime = "domestic_general"
	// RegimeISAGeneral is a tax-advantaged account with a 2,000,000 exemption.
	RegimeISAGeneral TaxRegime = "isa_general"
	// RegimeISALowIncome is a tax-advantaged account with a 4,000,000 exemption.
	RegimeISALowIncome TaxRegime = "isa_low_income"
	// RegimeForeign withholds 15% of the gross foreign dividend.
	RegimeForeign TaxRegime = "foreign"
)

// DomesticRegimes lists the regimes computed side by side for domestic instruments.
var DomesticRegimes = []TaxRegime{RegimeDomesticGeneral, RegimeISAGeneral, RegimeISALowIncome}

// DividendHistoryEntry is one per-share dividend distribution.
type DividendHistoryEntry struct {
	RecordDate            time.Time       `json:"record_date" yaml:"record_date"`
	PaymentDate           time.Time       `json:"payment_date" yaml:"payment_date"`
	PerShareAmount        decimal.Decimal `json:"per_share_amount" yaml:"per_share_amount"`
	PerShareTaxableAmount decimal.Decimal `json:"per_share_taxable_amount" yaml:"per_share_taxable_amount"`
}

// DividendIncomeResult is the income earned from a dividend history under one regime.
type DividendIncomeResult struct {
	Regime      TaxRegime       `json:"regime"`
	GrossIncome decimal.Decimal `json:"gross_income"`
	TaxableBase decimal.Decimal `json:"taxable_base"`
	Tax         decimal.Decimal `json:"tax"`
	NetIncome   decimal.Decimal `json:"net_income"`
}

// ExchangeQuote is a point-in-time exchange rate in local currency per foreign unit.
type ExchangeQuote struct {
	Date time.Time       `json:"date"`
	Rate decimal.Decimal `json:"rate"`
}

// PriceQuote is a closing price observed on a date.
type PriceQuote struct {
	Date  time.Time       `json:"date"`
	Close decimal.Decimal `json:"close"`
}

// Market distinguishes domestic instruments from foreign (USD) instruments.
type Market string

const (
	MarketDomestic Market = "domestic"
	MarketUSA      Market = "usa"
)

// ETF is the master record of an exchange-traded fund.
type ETF struct {
	ID      int64  `json:"id"`
	Ticker  string `json:"ticker"`
	Name    string `json:"name"`
	ETFType string `json:"etf_type"`
	// TaxType "A" marks domestic funds whose sale profit is taxed on the holding period.
	TaxType string `json:"etf_tax_type"`
}

package refdata

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/wealthlab/wealth-calculator/internal/domain"
	"github.com/wealthlab/wealth-calculator/pkg/dateutil"
)

// wireDate is a calendar date as the backend sends it ("2025-05-30" or a
// full timestamp).
type wireDate string

type chartPoint struct {
	Date  wireDate            `json:"date"`
	Close decimal.NullDecimal `json:"close"`
}

type dividendRecord struct {
	RecordDate  wireDate            `json:"record_date"`
	PaymentDate wireDate            `json:"payment_date"`
	DividendAmt decimal.Decimal     `json:"dividend_amt"`
	TaxableAmt  decimal.NullDecimal `json:"taxable_amt"`
}

type exchangeRecord struct {
	Date         wireDate        `json:"date"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
}

type codeMaster struct {
	ID       int64  `json:"id"`
	Code     string `json:"code"`
	CodeName string `json:"code_name"`
}

type codeDetail struct {
	ID             int64  `json:"id"`
	MasterID       int64  `json:"master_id"`
	Code           string `json:"code"`
	DetailCode     string `json:"detail_code"`
	DetailCodeName string `json:"detail_code_name"`
}

func (d codeDetail) code() string {
	if d.DetailCode != "" {
		return d.DetailCode
	}
	return d.Code
}

// PeriodOption is one selectable look-back period from the common-code tables.
type PeriodOption struct {
	Code   string        `json:"code"`
	Name   string        `json:"name"`
	Period domain.Period `json:"period"`
}

// isDividendPeriodMaster matches the master holding dividend period options,
// by code or by a name mentioning both "dividend" and "period".
func isDividendPeriodMaster(m codeMaster) bool {
	if strings.EqualFold(m.Code, "DIVIDEND_PERIOD") {
		return true
	}
	name := strings.ToLower(m.CodeName)
	return (strings.Contains(name, "dividend") && strings.Contains(name, "period")) ||
		(strings.Contains(name, "배당") && strings.Contains(name, "기간"))
}

// toHistoryEntry maps a backend record. A missing taxable amount is taken as
// the full dividend when taxableDefaultsToGross is set, otherwise as zero.
func (r dividendRecord) toHistoryEntry(taxableDefaultsToGross bool) (domain.DividendHistoryEntry, error) {
	record, err := dateutil.ParseISODate(string(r.RecordDate))
	if err != nil {
		return domain.DividendHistoryEntry{}, err
	}
	entry := domain.DividendHistoryEntry{
		RecordDate:            record,
		PerShareAmount:        r.DividendAmt,
		PerShareTaxableAmount: decimal.Zero,
	}
	if r.PaymentDate != "" {
		if paid, err := dateutil.ParseISODate(string(r.PaymentDate)); err == nil {
			entry.PaymentDate = paid
		}
	}
	switch {
	case r.TaxableAmt.Valid:
		entry.PerShareTaxableAmount = r.TaxableAmt.Decimal
	case taxableDefaultsToGross:
		entry.PerShareTaxableAmount = r.DividendAmt
	}
	return entry, nil
}

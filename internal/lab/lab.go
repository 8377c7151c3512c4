// Package lab runs the experience-lab simulations: a purchase of a high
// dividend fund a period ago, valued today, with the dividends it would have
// paid. Reference data comes from a ReferenceData source.
package lab

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wealthlab/wealth-calculator/internal/calculation"
	"github.com/wealthlab/wealth-calculator/internal/domain"
	"github.com/wealthlab/wealth-calculator/pkg/dateutil"
)

// ReferenceData is the data the simulations need. *refdata.Client implements it.
type ReferenceData interface {
	PurchaseQuote(ctx context.Context, market domain.Market, etfID int64, period domain.Period) (domain.PriceQuote, error)
	LatestQuote(ctx context.Context, market domain.Market, etfID int64) (domain.PriceQuote, error)
	DividendHistory(ctx context.Context, market domain.Market, etfID int64, period domain.Period) ([]domain.DividendHistoryEntry, error)
	ExchangeRate(ctx context.Context, date time.Time) (domain.ExchangeQuote, error)
	ExchangeRates(ctx context.Context, dates []time.Time) (map[string]decimal.Decimal, error)
}

// DomesticResult is the outcome of a domestic high-dividend simulation.
type DomesticResult struct {
	ETF       domain.ETF                    `json:"etf"`
	Period    domain.Period                 `json:"period"`
	Amount    decimal.Decimal               `json:"amount"`
	Purchase  domain.PriceQuote             `json:"purchase"`
	Current   domain.PriceQuote             `json:"current"`
	Valuation domain.DomesticValuation      `json:"valuation"`
	Held      int                           `json:"held_months"`
	History   []domain.DividendHistoryEntry `json:"history"`
	Incomes   []domain.DividendIncomeResult `json:"incomes"`
}

// DomesticHighDividend buys amount of a domestic fund at the close at the
// start of period and values it at the latest close. Dividend income is
// computed for the general and ISA regimes.
func DomesticHighDividend(ctx context.Context, src ReferenceData, etf domain.ETF, period domain.Period, amount decimal.Decimal) (*DomesticResult, error) {
	purchase, err := src.PurchaseQuote(ctx, domain.MarketDomestic, etf.ID, period)
	if err != nil {
		return nil, fmt.Errorf("purchase price of %s: %w", etf.Ticker, err)
	}
	current, err := src.LatestQuote(ctx, domain.MarketDomestic, etf.ID)
	if err != nil {
		return nil, fmt.Errorf("current price of %s: %w", etf.Ticker, err)
	}
	history, err := src.DividendHistory(ctx, domain.MarketDomestic, etf.ID, period)
	if err != nil {
		return nil, fmt.Errorf("dividends of %s: %w", etf.Ticker, err)
	}

	valuation := calculation.ValueDomestic(domain.DomesticPurchase{
		Amount:        amount,
		PurchasePrice: purchase.Close,
		CurrentPrice:  current.Close,
		TaxType:       etf.TaxType,
	})
	incomes, err := calculation.DividendIncomes(history, valuation.Quantity.IntPart(), domain.DomesticRegimes...)
	if err != nil {
		return nil, err
	}

	return &DomesticResult{
		ETF:       etf,
		Period:    period,
		Amount:    amount,
		Purchase:  purchase,
		Current:   current,
		Valuation: valuation,
		Held:      heldMonths(period, purchase, current),
		History:   history,
		Incomes:   incomes,
	}, nil
}

// ForeignDividendRow is one dividend record converted at the rate of its
// record date, or at the current rate when that rate is unavailable.
type ForeignDividendRow struct {
	Entry        domain.DividendHistoryEntry `json:"entry"`
	Rate         decimal.Decimal             `json:"rate"`
	Gross        decimal.Decimal             `json:"gross"`
	GrossLocal   decimal.Decimal             `json:"gross_local"`
	RateFallback bool                        `json:"rate_fallback"`
}

// USAResult is the outcome of a US high-dividend simulation.
type USAResult struct {
	ETF          domain.ETF                  `json:"etf"`
	Period       domain.Period               `json:"period"`
	Amount       decimal.Decimal             `json:"amount"`
	Purchase     domain.PriceQuote           `json:"purchase"`
	PurchaseRate decimal.Decimal             `json:"purchase_rate"`
	Current      domain.PriceQuote           `json:"current"`
	CurrentRate  decimal.Decimal             `json:"current_rate"`
	Valuation    domain.ForeignValuation     `json:"valuation"`
	Held         int                         `json:"held_months"`
	Dividends    []ForeignDividendRow        `json:"dividends"`
	Income       domain.DividendIncomeResult `json:"income"`
	GrossLocal   decimal.Decimal             `json:"gross_local"`
	NetLocal     decimal.Decimal             `json:"net_local"`
}

// USAHighDividend buys amount (local currency) of a US fund at the close and
// exchange rate at the start of period. The position is valued at the latest
// close; local-currency figures use the rate nearest to now.
func USAHighDividend(ctx context.Context, src ReferenceData, etf domain.ETF, period domain.Period, amount decimal.Decimal, now time.Time) (*USAResult, error) {
	purchase, err := src.PurchaseQuote(ctx, domain.MarketUSA, etf.ID, period)
	if err != nil {
		return nil, fmt.Errorf("purchase price of %s: %w", etf.Ticker, err)
	}
	purchaseRate, err := src.ExchangeRate(ctx, purchase.Date)
	if err != nil {
		return nil, fmt.Errorf("exchange rate on %s: %w", dateutil.FormatISODate(purchase.Date), err)
	}
	current, err := src.LatestQuote(ctx, domain.MarketUSA, etf.ID)
	if err != nil {
		return nil, fmt.Errorf("current price of %s: %w", etf.Ticker, err)
	}
	currentRate, err := src.ExchangeRate(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("current exchange rate: %w", err)
	}
	history, err := src.DividendHistory(ctx, domain.MarketUSA, etf.ID, period)
	if err != nil {
		return nil, fmt.Errorf("dividends of %s: %w", etf.Ticker, err)
	}

	valuation := calculation.ValueForeign(domain.ForeignPurchase{
		Amount:        amount,
		PurchasePrice: purchase.Close,
		PurchaseRate:  purchaseRate.Rate,
		CurrentPrice:  current.Close,
		CurrentRate:   currentRate.Rate,
	})
	quantity := valuation.Quantity.IntPart()

	dates := make([]time.Time, 0, len(history))
	for _, h := range history {
		dates = append(dates, h.RecordDate)
	}
	rates, err := src.ExchangeRates(ctx, dates)
	if err != nil {
		return nil, fmt.Errorf("dividend exchange rates: %w", err)
	}

	q := decimal.NewFromInt(quantity)
	rows := make([]ForeignDividendRow, 0, len(history))
	for _, h := range history {
		rate, ok := rates[dateutil.FormatISODate(h.RecordDate)]
		if !ok {
			rate = currentRate.Rate
		}
		gross := h.PerShareAmount.Mul(q)
		rows = append(rows, ForeignDividendRow{
			Entry:        h,
			Rate:         rate,
			Gross:        gross,
			GrossLocal:   gross.Mul(rate),
			RateFallback: !ok,
		})
	}

	income, err := calculation.DividendIncome(history, quantity, domain.RegimeForeign)
	if err != nil {
		return nil, err
	}

	return &USAResult{
		ETF:          etf,
		Period:       period,
		Amount:       amount,
		Purchase:     purchase,
		PurchaseRate: purchaseRate.Rate,
		Current:      current,
		CurrentRate:  currentRate.Rate,
		Valuation:    valuation,
		Held:         heldMonths(period, purchase, current),
		Dividends:    rows,
		Income:       income,
		GrossLocal:   income.GrossIncome.Mul(currentRate.Rate),
		NetLocal:     income.NetIncome.Mul(currentRate.Rate),
	}, nil
}

// heldMonths counts the whole months between purchase and the current quote.
// A purchase quote without a date is taken to open the period window.
func heldMonths(period domain.Period, purchase, current domain.PriceQuote) int {
	start := purchase.Date
	if start.IsZero() {
		start = period.Since(current.Date)
	}
	return dateutil.MonthsUntilDate(start, current.Date)
}

package server

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/wealthlab/wealth-calculator/internal/domain"
	"github.com/wealthlab/wealth-calculator/pkg/dateutil"
)

// dividendRequest accepts plain YYYY-MM-DD dates as well as RFC 3339 timestamps.
type dividendRequest struct {
	Quantity int64              `json:"quantity"`
	Regimes  []domain.TaxRegime `json:"regimes"`
	History  []struct {
		RecordDate            string              `json:"record_date"`
		PaymentDate           string              `json:"payment_date"`
		PerShareAmount        decimal.Decimal     `json:"per_share_amount"`
		PerShareTaxableAmount decimal.NullDecimal `json:"per_share_taxable_amount"`
	} `json:"history"`
}

// decodeDividend builds the dividend block. A missing taxable amount counts
// as the full per-share amount.
func decodeDividend(body []byte, s *domain.Scenario) error {
	var req dividendRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return err
	}
	block := &domain.DividendScenario{Quantity: req.Quantity, Regimes: req.Regimes}
	for i, h := range req.History {
		entry := domain.DividendHistoryEntry{PerShareAmount: h.PerShareAmount, PerShareTaxableAmount: h.PerShareAmount}
		if h.PerShareTaxableAmount.Valid {
			entry.PerShareTaxableAmount = h.PerShareTaxableAmount.Decimal
		}
		var err error
		if h.RecordDate != "" {
			if entry.RecordDate, err = dateutil.ParseISODate(h.RecordDate); err != nil {
				return fmt.Errorf("history[%d].record_date: %w", i, err)
			}
		}
		if h.PaymentDate != "" {
			if entry.PaymentDate, err = dateutil.ParseISODate(h.PaymentDate); err != nil {
				return fmt.Errorf("history[%d].payment_date: %w", i, err)
			}
		}
		block.History = append(block.History, entry)
	}
	s.Dividend = block
	return nil
}

package cli

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wealthlab/wealth-calculator/internal/domain"
	"github.com/wealthlab/wealth-calculator/pkg/dateutil"
)

// decimalValue is a flag value backed by a decimal. Thousands separators and
// underscores are accepted: 1,000,000 and 1_000_000 both parse.
type decimalValue struct{ d *decimal.Decimal }

func decimalFlag(d *decimal.Decimal) *decimalValue { return &decimalValue{d: d} }

func (v *decimalValue) String() string {
	if v.d == nil {
		return "0"
	}
	return v.d.String()
}

func (v *decimalValue) Set(s string) error {
	parsed, err := decimal.NewFromString(strings.NewReplacer(",", "", "_", "").Replace(strings.TrimSpace(s)))
	if err != nil {
		return fmt.Errorf("not a decimal: %q", s)
	}
	*v.d = parsed
	return nil
}

func (v *decimalValue) Type() string { return "decimal" }

// parseDividendFlag parses DATE:AMOUNT[:TAXABLE]. A missing taxable amount
// equals the per-share amount.
func parseDividendFlag(raw string) (domain.DividendHistoryEntry, error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return domain.DividendHistoryEntry{}, fmt.Errorf("dividend %q: want DATE:AMOUNT[:TAXABLE]", raw)
	}
	date, err := dateutil.ParseISODate(parts[0])
	if err != nil {
		return domain.DividendHistoryEntry{}, fmt.Errorf("dividend %q: %w", raw, err)
	}
	var amount decimal.Decimal
	if err := decimalFlag(&amount).Set(parts[1]); err != nil {
		return domain.DividendHistoryEntry{}, fmt.Errorf("dividend %q: %w", raw, err)
	}
	taxable := amount
	if len(parts) == 3 {
		if err := decimalFlag(&taxable).Set(parts[2]); err != nil {
			return domain.DividendHistoryEntry{}, fmt.Errorf("dividend %q: %w", raw, err)
		}
	}
	return domain.DividendHistoryEntry{RecordDate: date, PerShareAmount: amount, PerShareTaxableAmount: taxable}, nil
}

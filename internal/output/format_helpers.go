package output

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currencies used by the reports. Projections and domestic tax figures are in
// the local currency; foreign valuations quote the fund's own currency.
const (
	LocalCurrency   = money.KRW
	ForeignCurrency = money.USD
)

// FormatCurrency formats amount in the ISO currency code, rounded half away
// from zero to the currency's minor unit.
func FormatCurrency(amount decimal.Decimal, code string) string {
	cur := money.New(0, strings.ToUpper(code)).Currency()
	if cur.Template == "" {
		return FormatNumber(amount, 2) + " " + cur.Code
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return cur.Formatter().Format(minor)
}

// FormatLocal formats amount in LocalCurrency.
func FormatLocal(amount decimal.Decimal) string { return FormatCurrency(amount, LocalCurrency) }

// FormatForeign formats amount in ForeignCurrency.
func FormatForeign(amount decimal.Decimal) string { return FormatCurrency(amount, ForeignCurrency) }

// FormatNumber formats d with thousands separators and a fixed number of decimals.
func FormatNumber(d decimal.Decimal, places int32) string {
	f := money.NewFormatter(int(places), ".", ",", "", "1")
	return f.Format(d.Shift(places).Round(0).IntPart())
}

// FormatPercentage formats a percentage figure with one decimal.
func FormatPercentage(pct decimal.Decimal) string { return pct.StringFixed(1) + "%" }

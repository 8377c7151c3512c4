package output

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/wealthlab/wealth-calculator/internal/domain"
	"github.com/wealthlab/wealth-calculator/internal/lab"
	"github.com/wealthlab/wealth-calculator/pkg/dateutil"
)

// RenderLab renders a lab simulation result (*lab.DomesticResult or
// *lab.USAResult) in the named format. The csv formats are not available for
// lab results.
func RenderLab(result any, format string) ([]byte, error) {
	var md []byte
	switch r := result.(type) {
	case *lab.DomesticResult:
		md = domesticLabMarkdown(r)
	case *lab.USAResult:
		md = usaLabMarkdown(r)
	default:
		return nil, fmt.Errorf("unsupported lab result %T", result)
	}

	switch n := NormalizeFormatName(format); n {
	case "json":
		return json.MarshalIndent(result, "", "  ")
	case "markdown", "console":
		return md, nil
	case "html":
		return markdownToHTML(md, "Dividend lab")
	case "terminal":
		return renderTerminal(md, "", 0)
	default:
		return nil, unsupported(format)
	}
}

func domesticLabMarkdown(r *lab.DomesticResult) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s %s\n\n", mdEscape(r.ETF.Ticker), mdEscape(r.ETF.Name))
	fmt.Fprintf(&buf, "Bought %s on %s at %s, valued at %s on %s.\n\n",
		FormatLocal(r.Amount), dateutil.FormatISODate(r.Purchase.Date), FormatLocal(r.Purchase.Close),
		FormatLocal(r.Current.Close), dateutil.FormatISODate(r.Current.Date))

	writeMetricTable(&buf, []metric{
		text("Period", r.Period.Code()),
		count("Months held", r.Held),
		figure("Quantity", r.Valuation.Quantity, unitCount),
		figure("Evaluation", r.Valuation.Evaluation, unitLocal),
		figure("Unrealized profit", r.Valuation.UnrealizedProfit, unitLocal),
		figure("Sale tax", r.Valuation.SaleTax, unitLocal),
		figure("Sale profit", r.Valuation.SaleProfit, unitLocal),
	})

	fmt.Fprintln(&buf, "## Dividend income")
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "| Regime | Gross | Taxable | Tax | Net |")
	fmt.Fprintln(&buf, "| --- | ---: | ---: | ---: | ---: |")
	for _, inc := range r.Incomes {
		fmt.Fprintf(&buf, "| %s | %s | %s | %s | %s |\n", mdEscape(string(inc.Regime)),
			FormatLocal(inc.GrossIncome), FormatLocal(inc.TaxableBase), FormatLocal(inc.Tax), FormatLocal(inc.NetIncome))
	}
	fmt.Fprintln(&buf)
	writeHistory(&buf, r.History)
	return buf.Bytes()
}

func usaLabMarkdown(r *lab.USAResult) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s %s\n\n", mdEscape(r.ETF.Ticker), mdEscape(r.ETF.Name))
	fmt.Fprintf(&buf, "Bought %s on %s at %s (rate %s), valued at %s (rate %s).\n\n",
		FormatLocal(r.Amount), dateutil.FormatISODate(r.Purchase.Date), FormatForeign(r.Purchase.Close),
		FormatNumber(r.PurchaseRate, 2), FormatForeign(r.Current.Close), FormatNumber(r.CurrentRate, 2))

	writeMetricTable(&buf, []metric{
		text("Period", r.Period.Code()),
		count("Months held", r.Held),
		figure("Quantity", r.Valuation.Quantity, unitCount),
		figure("Evaluation", r.Valuation.Evaluation, unitForeign),
		figure("Cost", r.Valuation.Cost, unitForeign),
		figure("Unrealized profit", r.Valuation.UnrealizedProfit, unitForeign),
		figure("Evaluation (local)", r.Valuation.EvaluationLocal, unitLocal),
		figure("Unrealized profit (local)", r.Valuation.UnrealizedProfitLocal, unitLocal),
		figure("Dividend gross", r.Income.GrossIncome, unitForeign),
		figure("Withholding", r.Income.Tax, unitForeign),
		figure("Dividend net", r.Income.NetIncome, unitForeign),
		figure("Dividend gross (local)", r.GrossLocal, unitLocal),
		figure("Dividend net (local)", r.NetLocal, unitLocal),
	})

	if len(r.Dividends) > 0 {
		fmt.Fprintln(&buf, "## Dividends received")
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "| Record date | Per share | Gross | Rate | Gross (local) |")
		fmt.Fprintln(&buf, "| --- | ---: | ---: | ---: | ---: |")
		for _, d := range r.Dividends {
			rate := FormatNumber(d.Rate, 2)
			if d.RateFallback {
				rate += " (current)"
			}
			fmt.Fprintf(&buf, "| %s | %s | %s | %s | %s |\n",
				dateutil.FormatISODate(d.Entry.RecordDate), d.Entry.PerShareAmount.String(),
				FormatForeign(d.Gross), rate, FormatLocal(d.GrossLocal))
		}
		fmt.Fprintln(&buf)
	}
	return buf.Bytes()
}

func writeHistory(buf *bytes.Buffer, history []domain.DividendHistoryEntry) {
	if len(history) == 0 {
		fmt.Fprintln(buf, "_No dividends in the period._")
		return
	}
	fmt.Fprintln(buf, "## Dividend history")
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "| Record date | Payment date | Per share | Taxable per share |")
	fmt.Fprintln(buf, "| --- | --- | ---: | ---: |")
	for _, h := range history {
		payment := ""
		if !h.PaymentDate.IsZero() {
			payment = dateutil.FormatISODate(h.PaymentDate)
		}
		fmt.Fprintf(buf, "| %s | %s | %s | %s |\n", dateutil.FormatISODate(h.RecordDate), payment,
			h.PerShareAmount.String(), h.PerShareTaxableAmount.String())
	}
	fmt.Fprintln(buf)
}

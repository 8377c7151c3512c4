package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/wealthlab/wealth-calculator/internal/domain"
)

// MarkdownFormatter renders the report as a GitHub-flavoured markdown document.
// The HTML and terminal formatters render this document.
type MarkdownFormatter struct{}

func (m MarkdownFormatter) Name() string { return "markdown" }

func (m MarkdownFormatter) Format(report *domain.Report) ([]byte, error) {
	return reportMarkdown(report), nil
}

func reportMarkdown(report *domain.Report) []byte {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# Wealth projection report")
	fmt.Fprintln(&buf)
	if !report.GeneratedAt.IsZero() {
		fmt.Fprintf(&buf, "_Generated %s_\n\n", report.GeneratedAt.Format("2006-01-02 15:04 MST"))
	}

	for i := range report.Results {
		r := &report.Results[i]
		fmt.Fprintf(&buf, "## %s\n\n", mdEscape(r.Name))
		fmt.Fprintf(&buf, "Kind: `%s`\n\n", r.Kind)
		writeMetricTable(&buf, scenarioMetrics(r))
		if rows := resultSeries(r); len(rows) > 0 {
			fmt.Fprintln(&buf, "### Yearly balances")
			fmt.Fprintln(&buf)
			writeRowTable(&buf, rows)
		}
	}

	if rec := AnalyzeScenarios(report); rec.Found {
		fmt.Fprintf(&buf, "**Fastest to goal:** %s in %d months (closing %s)\n\n", mdEscape(rec.ScenarioName), rec.Months, FormatLocal(rec.ClosingBalance))
	}

	writeAssumptions(&buf)
	return buf.Bytes()
}

func writeMetricTable(buf *bytes.Buffer, metrics []metric) {
	fmt.Fprintln(buf, "| Metric | Value |")
	fmt.Fprintln(buf, "| --- | ---: |")
	for _, m := range metrics {
		fmt.Fprintf(buf, "| %s | %s |\n", mdEscape(m.Label), m.display())
	}
	fmt.Fprintln(buf)
}

func writeRowTable(buf *bytes.Buffer, rows []domain.ProjectionRow) {
	fmt.Fprintln(buf, "| Year | Age | Opening | Return | Contribution | Contribution return | Closing | Shortfall |")
	fmt.Fprintln(buf, "| ---: | ---: | ---: | ---: | ---: | ---: | ---: | ---: |")
	for _, row := range rows {
		fmt.Fprintf(buf, "| %d | %d | %s | %s | %s | %s | %s | %s |\n",
			row.Year, row.Age,
			FormatNumber(row.OpeningBalance, 0),
			FormatNumber(row.OpeningReturn, 0),
			FormatNumber(row.Contribution, 0),
			FormatNumber(row.ContributionReturn, 0),
			FormatNumber(row.ClosingBalance, 0),
			FormatNumber(row.Shortfall, 0),
		)
	}
	fmt.Fprintln(buf)
}

func writeAssumptions(buf *bytes.Buffer) {
	fmt.Fprintln(buf, "## Assumptions")
	fmt.Fprintln(buf)
	for _, a := range GenerateAssumptions() {
		fmt.Fprintf(buf, "- %s\n", a)
	}
}

var mdReplacer = strings.NewReplacer("|", `\|`, "*", `\*`, "_", `\_`, "`", "\\`")

func mdEscape(s string) string { return mdReplacer.Replace(s) }

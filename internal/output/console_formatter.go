package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/wealthlab/wealth-calculator/internal/domain"
)

// ConsoleFormatter renders a plain-text report: a summary block per scenario
// followed by its yearly balances.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "WEALTH PROJECTION REPORT")
	fmt.Fprintln(&buf, "================================")
	if !report.GeneratedAt.IsZero() {
		fmt.Fprintf(&buf, "Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(&buf)

	for i := range report.Results {
		r := &report.Results[i]
		fmt.Fprintf(&buf, "SCENARIO %d: %s (%s)\n", i+1, r.Name, r.Kind)
		fmt.Fprintln(&buf, strings.Repeat("-", 50))
		for _, m := range scenarioMetrics(r) {
			fmt.Fprintf(&buf, "  %-28s %s\n", m.Label+":", m.display())
		}
		if rows := resultSeries(r); len(rows) > 0 {
			fmt.Fprintln(&buf)
			writeConsoleRows(&buf, rows)
		}
		fmt.Fprintln(&buf)
	}

	if rec := AnalyzeScenarios(report); rec.Found {
		fmt.Fprintf(&buf, "Fastest to goal: %s (%d months, closing %s)\n", rec.ScenarioName, rec.Months, FormatLocal(rec.ClosingBalance))
		fmt.Fprintln(&buf)
	}

	fmt.Fprintln(&buf, "ASSUMPTIONS:")
	for _, a := range GenerateAssumptions() {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	return buf.Bytes(), nil
}

func writeConsoleRows(buf *bytes.Buffer, rows []domain.ProjectionRow) {
	fmt.Fprintf(buf, "  %-6s %-4s %18s %16s %16s %16s %18s %18s\n",
		"Year", "Age", "Opening", "Return", "Contribution", "Contrib. return", "Closing", "Shortfall")
	for _, row := range rows {
		fmt.Fprintf(buf, "  %-6d %-4d %18s %16s %16s %16s %18s %18s\n",
			row.Year, row.Age,
			FormatNumber(row.OpeningBalance, 0),
			FormatNumber(row.OpeningReturn, 0),
			FormatNumber(row.Contribution, 0),
			FormatNumber(row.ContributionReturn, 0),
			FormatNumber(row.ClosingBalance, 0),
			FormatNumber(row.Shortfall, 0),
		)
	}
}

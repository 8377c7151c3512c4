package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/wealthlab/wealth-calculator/internal/domain"
)

// CSVDetailedExporter provides the raw yearly rows per scenario. Scenarios
// without a series (dividend and valuation kinds) contribute no rows.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Scenario", "Year", "Age",
		"OpeningBalance", "OpeningReturn", "OpeningPlusProfit",
		"Contribution", "ContributionReturn", "ContributionPlusProfit",
		"ClosingBalance", "Shortfall", "GoalReached",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	results := sortedResults(report)
	for i := range results {
		for _, row := range resultSeries(&results[i]) {
			record := []string{
				results[i].Name,
				strconv.Itoa(row.Year),
				strconv.Itoa(row.Age),
				row.OpeningBalance.String(),
				row.OpeningReturn.String(),
				row.OpeningPlusProfit.String(),
				row.Contribution.String(),
				row.ContributionReturn.String(),
				row.ContributionPlusProfit.String(),
				row.ClosingBalance.String(),
				row.Shortfall.String(),
				strconv.FormatBool(row.GoalReached()),
			}
			if err := w.Write(record); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

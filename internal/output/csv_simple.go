package output

import (
	"bytes"
	"encoding/csv"
	"sort"

	"github.com/wealthlab/wealth-calculator/internal/domain"
)

// CSVSummarizer writes the summary figures in long form: one row per
// scenario and metric, values unformatted.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Scenario", "Kind", "Metric", "Value"}); err != nil {
		return nil, err
	}
	results := sortedResults(report)
	for i := range results {
		r := &results[i]
		for _, m := range scenarioMetrics(r) {
			if err := w.Write([]string{r.Name, string(r.Kind), m.Label, m.raw()}); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// sortedResults returns the results ordered by scenario name.
func sortedResults(report *domain.Report) []domain.ScenarioResult {
	results := append([]domain.ScenarioResult(nil), report.Results...)
	sort.SliceStable(results, func(i, j int) bool { return results[i].Name < results[j].Name })
	return results
}

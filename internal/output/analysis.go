package output

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/wealthlab/wealth-calculator/internal/calculation"
	"github.com/wealthlab/wealth-calculator/internal/domain"
)

// Recommendation names the series scenario that reaches its goal soonest.
type Recommendation struct {
	ScenarioName   string
	Months         int
	ClosingBalance decimal.Decimal
	Found          bool
}

// Years returns the time to goal in whole years, rounded up.
func (r Recommendation) Years() int {
	return (r.Months + 11) / 12
}

// AnalyzeScenarios picks the projection or goal-seek scenario that reaches its
// target in the fewest months. Ties go to the name that sorts first.
func AnalyzeScenarios(report *domain.Report) Recommendation {
	type ranked struct {
		name    string
		months  int
		closing decimal.Decimal
	}
	var ranks []ranked
	for _, r := range report.Results {
		if r.Series == nil || r.Series.Outcome != domain.OutcomeGoalReached {
			continue
		}
		months := r.Series.Months
		if months == 0 {
			months = r.Series.Len() * 12
		}
		var closing decimal.Decimal
		if last, ok := r.Series.Final(); ok {
			closing = last.ClosingBalance
		}
		ranks = append(ranks, ranked{r.Name, months, closing})
	}
	if len(ranks) == 0 {
		return Recommendation{}
	}
	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].months != ranks[j].months {
			return ranks[i].months < ranks[j].months
		}
		return ranks[i].name < ranks[j].name
	})
	best := ranks[0]
	return Recommendation{ScenarioName: best.name, Months: best.months, ClosingBalance: best.closing, Found: true}
}

type unit int

const (
	unitText unit = iota
	unitLocal
	unitForeign
	unitPercent
	unitOneDecimal
	unitCount
)

// metric is one labelled figure of a scenario summary.
type metric struct {
	Label string
	Value decimal.Decimal
	Text  string
	Unit  unit
}

func (m metric) display() string {
	switch m.Unit {
	case unitLocal:
		return FormatLocal(m.Value)
	case unitForeign:
		return FormatForeign(m.Value)
	case unitPercent:
		return FormatPercentage(m.Value)
	case unitOneDecimal:
		return FormatNumber(m.Value, 1)
	case unitCount:
		return FormatNumber(m.Value, 0)
	default:
		return m.Text
	}
}

func (m metric) raw() string {
	if m.Unit == unitText {
		return m.Text
	}
	return m.Value.String()
}

func text(label, value string) metric { return metric{Label: label, Text: value} }

func figure(label string, value decimal.Decimal, u unit) metric {
	return metric{Label: label, Value: value, Unit: u}
}

func count(label string, n int) metric {
	return metric{Label: label, Value: decimal.NewFromInt(int64(n)), Unit: unitCount}
}

// scenarioMetrics flattens a result into the summary figures every formatter shares.
func scenarioMetrics(r *domain.ScenarioResult) []metric {
	var out []metric
	if r.Series != nil {
		out = append(out, seriesMetrics(*r.Series)...)
	}
	if p := r.Plan; p != nil {
		out = append(out,
			figure("Monthly expense", p.MonthlyExpense, unitLocal),
			figure("Depletion age", p.DepletionAge, unitOneDecimal),
			figure("Years of work needed", p.YearsNeedWork, unitOneDecimal),
			figure("Income still needed", p.TotalWorkNeeded, unitLocal),
			figure("Dividend rate", p.DividendRate, unitPercent),
			figure("Required asset", p.RequiredAsset, unitLocal),
			figure("Shortfall", p.Shortfall, unitLocal),
			figure("Coverage", p.CoveragePercent, unitPercent),
			figure("Monthly contribution", p.MonthlyContribution, unitLocal),
			count("Months to goal", p.MonthsToGoal),
			figure("Years to goal", p.YearsToGoal, unitOneDecimal),
			figure("Goal age", p.GoalAge, unitOneDecimal),
			figure("Surplus", p.Surplus, unitLocal),
			figure("Years saved", p.YearsSaved, unitOneDecimal),
		)
	}
	for _, d := range r.Dividends {
		u := unitLocal
		if d.Regime == domain.RegimeForeign {
			u = unitForeign
		}
		out = append(out,
			figure(fmt.Sprintf("%s gross", d.Regime), d.GrossIncome, u),
			figure(fmt.Sprintf("%s taxable", d.Regime), d.TaxableBase, u),
			figure(fmt.Sprintf("%s tax", d.Regime), d.Tax, u),
			figure(fmt.Sprintf("%s net", d.Regime), d.NetIncome, u),
		)
	}
	if f := r.Foreign; f != nil {
		out = append(out,
			figure("Quantity", f.Quantity, unitCount),
			figure("Evaluation", f.Evaluation, unitForeign),
			figure("Cost", f.Cost, unitForeign),
			figure("Unrealized profit", f.UnrealizedProfit, unitForeign),
			figure("Evaluation (local)", f.EvaluationLocal, unitLocal),
			figure("Unrealized profit (local)", f.UnrealizedProfitLocal, unitLocal),
		)
	}
	if d := r.Domestic; d != nil {
		out = append(out,
			figure("Quantity", d.Quantity, unitCount),
			figure("Evaluation", d.Evaluation, unitLocal),
			figure("Unrealized profit", d.UnrealizedProfit, unitLocal),
			figure("Sale tax", d.SaleTax, unitLocal),
			figure("Sale profit", d.SaleProfit, unitLocal),
		)
	}
	return out
}

func seriesMetrics(s domain.ProjectionSeries) []metric {
	out := []metric{
		text("Outcome", string(s.Outcome)),
		count("Years", s.Len()),
	}
	if s.Months > 0 {
		out = append(out, count("Months", s.Months))
	}
	if last, ok := s.Final(); ok {
		out = append(out,
			figure("Final closing balance", last.ClosingBalance, unitLocal),
			figure("Final shortfall", last.Shortfall, unitLocal),
		)
	}
	out = append(out, figure("Total contributed", calculation.TotalContributed(s), unitLocal))
	return out
}

// resultSeries returns the yearly rows a result carries, if any.
func resultSeries(r *domain.ScenarioResult) []domain.ProjectionRow {
	switch {
	case r.Series != nil:
		return r.Series.Rows
	case r.Plan != nil:
		return r.Plan.Simulation.Rows
	default:
		return nil
	}
}

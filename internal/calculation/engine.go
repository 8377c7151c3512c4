package calculation

import (
	"context"
	"errors"
	"fmt"

	"github.com/wealthlab/wealth-calculator/internal/domain"
)

var (
	// ErrUnknownKind is returned for a scenario kind the engine cannot run.
	ErrUnknownKind = errors.New("unknown scenario kind")
	// ErrMissingInput is returned when the input block matching the kind is absent.
	ErrMissingInput = errors.New("missing scenario input")
)

// CalculationEngine dispatches scenarios to the calculators
type CalculationEngine struct {
	Debug  bool // Log per-row detail
	Logger Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// RunScenario runs one scenario and returns its result
func (ce *CalculationEngine) RunScenario(ctx context.Context, scenario *domain.Scenario) (*domain.ScenarioResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result := &domain.ScenarioResult{Name: scenario.Name, Kind: scenario.Kind}

	switch scenario.Kind {
	case domain.KindProjection:
		if scenario.Projection == nil {
			return nil, missing(scenario)
		}
		series := Project(*scenario.Projection)
		ce.logSeries(scenario.Name, series)
		result.Series = &series

	case domain.KindGoalSeek:
		if scenario.GoalSeek == nil {
			return nil, missing(scenario)
		}
		series, _ := SimulateToGoal(*scenario.GoalSeek)
		ce.logSeries(scenario.Name, series)
		result.Series = &series

	case domain.KindEarlyRetirement:
		if scenario.EarlyRetirement == nil {
			return nil, missing(scenario)
		}
		plan, err := PlanEarlyRetirement(*scenario.EarlyRetirement)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}
		ce.logSeries(scenario.Name, plan.Simulation)
		result.Plan = &plan

	case domain.KindDividend:
		if scenario.Dividend == nil {
			return nil, missing(scenario)
		}
		incomes, err := DividendIncomes(scenario.Dividend.History, scenario.Dividend.Quantity, scenario.Dividend.Regimes...)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}
		for _, r := range incomes {
			ce.Logger.Debugf("%s: %s gross=%s tax=%s net=%s", scenario.Name, r.Regime, r.GrossIncome, r.Tax, r.NetIncome)
		}
		result.Dividends = incomes

	case domain.KindForeignValuation:
		if scenario.ForeignValuation == nil {
			return nil, missing(scenario)
		}
		v := ValueForeign(*scenario.ForeignValuation)
		result.Foreign = &v

	case domain.KindDomesticValuation:
		if scenario.DomesticValuation == nil {
			return nil, missing(scenario)
		}
		v := ValueDomestic(*scenario.DomesticValuation)
		result.Domestic = &v

	default:
		return nil, fmt.Errorf("scenario %q: %w %q", scenario.Name, ErrUnknownKind, scenario.Kind)
	}

	ce.Logger.Infof("scenario %q (%s) complete", scenario.Name, scenario.Kind)
	return result, nil
}

// RunScenarios runs all scenarios of a configuration in order
func (ce *CalculationEngine) RunScenarios(config *domain.Configuration) (*domain.Report, error) {
	ctx := context.Background()
	report := &domain.Report{
		GeneratedAt: nowFunc(),
		Results:     make([]domain.ScenarioResult, 0, len(config.Scenarios)),
	}

	for i := range config.Scenarios {
		result, err := ce.RunScenario(ctx, &config.Scenarios[i])
		if err != nil {
			return nil, fmt.Errorf("RunScenario failed: %w", err)
		}
		report.Results = append(report.Results, *result)
	}
	return report, nil
}

func (ce *CalculationEngine) logSeries(name string, s domain.ProjectionSeries) {
	ce.Logger.Debugf("%s: %d rows, outcome %s", name, s.Len(), s.Outcome)
	if !ce.Debug {
		return
	}
	for _, r := range s.Rows {
		ce.Logger.Debugf("%s: %d age %d opening=%s closing=%s shortfall=%s",
			name, r.Year, r.Age, r.OpeningBalance, r.ClosingBalance, r.Shortfall)
	}
}

func missing(s *domain.Scenario) error {
	return fmt.Errorf("scenario %q: %w for kind %s", s.Name, ErrMissingInput, s.Kind)
}

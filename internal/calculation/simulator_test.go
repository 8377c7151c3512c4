package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wealthlab/wealth-calculator/internal/domain"
	"github.com/wealthlab/wealth-calculator/pkg/rounding"
)

func TestSimulateToGoal_DoublingAtTwoPercent(t *testing.T) {
	in := domain.GoalSeekInput{
		CurrentAsset:      d("1000000"),
		MonthlyReturnRate: d("0.02"),
		RequiredAsset:     d("2000000"),
		StartYear:         2025,
		StartAge:          40,
	}
	s, months := SimulateToGoal(in)

	assert.Equal(t, 36, months)
	assert.Equal(t, 36, s.Months)
	assert.Equal(t, domain.OutcomeGoalReached, s.Outcome)
	require.Len(t, s.Rows, 3)

	want := d("1000000")
	for m := 1; m <= 36; m++ {
		want = want.Mul(d("1.02"))
		if m%12 == 0 {
			row := s.Rows[m/12-1]
			assert.True(t, row.ClosingBalance.Equal(rounding.Unit(want)), "month %d: got %s want %s", m, row.ClosingBalance, rounding.Unit(want))
		}
	}

	assertDec(t, "1268242", s.Rows[0].ClosingBalance)
	assertDec(t, "1000000", s.Rows[0].OpeningBalance)
	assertDec(t, "268242", s.Rows[0].OpeningReturn)
	assertDec(t, "1268242", s.Rows[0].OpeningPlusProfit)
	assert.Equal(t, 2027, s.Rows[2].Year)
	assert.Equal(t, 42, s.Rows[2].Age)
	assert.True(t, s.Rows[2].GoalReached())
	assert.True(t, s.Rows[1].Shortfall.IsPositive())
}

func TestSimulateToGoal_AlreadyAtGoal(t *testing.T) {
	s, months := SimulateToGoal(domain.GoalSeekInput{
		CurrentAsset:      d("5000"),
		MonthlyReturnRate: d("0.02"),
		RequiredAsset:     d("5000"),
	})
	assert.Equal(t, 0, months)
	assert.Empty(t, s.Rows)
	assert.Equal(t, domain.OutcomeGoalReached, s.Outcome)
}

func TestSimulateToGoal_Depletion(t *testing.T) {
	s, months := SimulateToGoal(domain.GoalSeekInput{
		CurrentAsset:   d("1000"),
		MonthlyExpense: d("300"),
		RequiredAsset:  d("1000000"),
		StartYear:      2030,
		StartAge:       60,
	})
	assert.Equal(t, 4, months)
	assert.Equal(t, domain.OutcomeDepleted, s.Outcome)
	require.Len(t, s.Rows, 1)
	assertDec(t, "-200", s.Rows[0].ClosingBalance)
	assertDec(t, "1000200", s.Rows[0].Shortfall)
	assert.Equal(t, 2030, s.Rows[0].Year)
}

func TestSimulateToGoal_ExactZeroIsDepleted(t *testing.T) {
	s, months := SimulateToGoal(domain.GoalSeekInput{
		CurrentAsset:   d("900"),
		MonthlyExpense: d("300"),
		RequiredAsset:  d("1000"),
	})
	assert.Equal(t, 3, months)
	assert.Equal(t, domain.OutcomeDepleted, s.Outcome)
	require.Len(t, s.Rows, 1)
	assertDec(t, "0", s.Rows[0].ClosingBalance)
}

func TestSimulateToGoal_HorizonFlushesPartialYear(t *testing.T) {
	s, months := SimulateToGoal(domain.GoalSeekInput{
		CurrentAsset:        d("100"),
		MonthlyContribution: d("1"),
		RequiredAsset:       d("1000000"),
		MaxMonths:           30,
		StartYear:           2025,
		StartAge:            30,
	})
	assert.Equal(t, 30, months)
	assert.Equal(t, domain.OutcomeHorizonExhausted, s.Outcome)
	require.Len(t, s.Rows, 3)
	assertDec(t, "112", s.Rows[0].ClosingBalance)
	assertDec(t, "112", s.Rows[1].OpeningBalance)
	assertDec(t, "124", s.Rows[1].ClosingBalance)
	assertDec(t, "6", s.Rows[2].Contribution)
	assertDec(t, "130", s.Rows[2].ClosingBalance)
	assert.Equal(t, 2027, s.Rows[2].Year)
}

func TestSimulateToGoal_DefaultHorizon(t *testing.T) {
	s, months := SimulateToGoal(domain.GoalSeekInput{
		CurrentAsset:  d("1"),
		RequiredAsset: d("2"),
	})
	assert.Equal(t, DefaultMaxMonths, months)
	assert.Len(t, s.Rows, DefaultMaxMonths/12)
	assert.Equal(t, domain.OutcomeHorizonExhausted, s.Outcome)
}

func TestSimulateToGoal_HorizonIsCapped(t *testing.T) {
	s, months := SimulateToGoal(domain.GoalSeekInput{
		CurrentAsset:  d("1"),
		RequiredAsset: d("2"),
		MaxMonths:     100_000,
	})
	assert.Equal(t, DefaultMaxMonths, months)
	assert.LessOrEqual(t, s.Len(), 50)
	assert.Equal(t, domain.OutcomeHorizonExhausted, s.Outcome)
}

func TestSimulateToGoal_ContributionReturnIsReported(t *testing.T) {
	s, _ := SimulateToGoal(domain.GoalSeekInput{
		CurrentAsset:        d("1000"),
		MonthlyContribution: d("100"),
		MonthlyReturnRate:   d("0.01"),
		RequiredAsset:       d("100000000"),
		MaxMonths:           12,
	})
	require.Len(t, s.Rows, 1)
	row := s.Rows[0]
	assertDec(t, "1200", row.Contribution)
	assertDec(t, "12", row.ContributionReturn)
	assertDec(t, "1212", row.ContributionPlusProfit)
	// the reported contribution return is not added to the asset twice
	drift := row.ClosingBalance.Sub(row.OpeningBalance.Add(row.OpeningReturn).Add(row.Contribution)).Abs()
	assert.True(t, drift.LessThanOrEqual(d("1")), "drift %s", drift)
}

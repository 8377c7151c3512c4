package main

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	calc "github.com/wealthlab/wealth-calculator/internal/calculation"
	"github.com/wealthlab/wealth-calculator/internal/config"
	"github.com/wealthlab/wealth-calculator/internal/domain"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug_crossover <config-file>")
		return
	}
	f := os.Args[1]
	p := config.NewInputParser()
	cfg, err := p.LoadFromFile(f)
	if err != nil {
		panic(err)
	}
	engine := calc.NewCalculationEngine()
	res, err := engine.RunScenarios(cfg)
	if err != nil {
		panic(err)
	}

	var named []string
	var series [][]domain.ProjectionRow
	for _, r := range res.Results {
		switch {
		case r.Series != nil:
			named = append(named, r.Name)
			series = append(series, r.Series.Rows)
		case r.Plan != nil:
			named = append(named, r.Name)
			series = append(series, r.Plan.Simulation.Rows)
		}
	}
	if len(series) < 1 {
		fmt.Println("no series")
		return
	}

	// Longest series sets the row count; shorter ones leave blanks
	maxLen := 0
	for _, rows := range series {
		if len(rows) > maxLen {
			maxLen = len(rows)
		}
	}

	header := "Index"
	for i := range series {
		header += fmt.Sprintf(",S%d_Year,S%d_Age,S%d_Closing,S%d_Shortfall", i+1, i+1, i+1, i+1)
	}
	fmt.Println(header)
	for i, name := range named {
		fmt.Fprintf(os.Stderr, "S%d = %s\n", i+1, name)
	}

	for idx := 0; idx < maxLen; idx++ {
		row := fmt.Sprintf("%d", idx)
		for _, rows := range series {
			if idx >= len(rows) {
				row += ",,,,"
				continue
			}
			r := rows[idx]
			row += fmt.Sprintf(",%d,%d,%s,%s", r.Year, r.Age, r.ClosingBalance.StringFixed(0), r.Shortfall.StringFixed(0))
		}
		fmt.Println(row)
	}

	// With two series, report where the first overtakes the second
	if len(series) >= 2 {
		a, b := series[0], series[1]
		for i := 0; i < len(a) && i < len(b); i++ {
			diff := a[i].ClosingBalance.Sub(b[i].ClosingBalance)
			fmt.Printf("Year %d: S1=%s S2=%s diff=%s\n", a[i].Year, a[i].ClosingBalance.StringFixed(0), b[i].ClosingBalance.StringFixed(0), diff.StringFixed(0))
		}
		idx := crossover(a, b)
		if idx < 0 {
			fmt.Println("\nCrossover: none")
		} else {
			fmt.Printf("\nCrossover: S1 leads S2 from year %d\n", a[idx].Year)
		}
	}
}

// crossover returns the first index from which a's closing balance stays at
// or above b's, or -1.
func crossover(a, b []domain.ProjectionRow) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	found := -1
	for i := 0; i < n; i++ {
		if a[i].ClosingBalance.Sub(b[i].ClosingBalance).GreaterThanOrEqual(decimal.Zero) {
			if found < 0 {
				found = i
			}
		} else {
			found = -1
		}
	}
	return found
}

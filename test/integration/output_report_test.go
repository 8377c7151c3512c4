package integration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wealthlab/wealth-calculator/internal/config"
	"github.com/wealthlab/wealth-calculator/internal/output"
)

func TestOutputGeneration(t *testing.T) {
	report := runExample(t)
	t.Chdir(t.TempDir())

	for _, format := range []string{"console", "csv", "detailed-csv", "json", "markdown", "html"} {
		t.Run(format, func(t *testing.T) {
			filename, err := output.GenerateReport(report, format)
			require.NoError(t, err)
			info, err := os.Stat(filename)
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		})
	}
}

func TestFastestScenario(t *testing.T) {
	report := runExample(t)

	rec := output.AnalyzeScenarios(report)
	require.True(t, rec.Found)
	assert.Equal(t, "Monthly saver", rec.ScenarioName)
	assert.Less(t, rec.Months, 24)

	data, err := output.ConsoleFormatter{}.Format(report)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "SCENARIO 1: Fast compounding (projection)")
	assert.Contains(t, content, "Fastest to goal: Monthly saver")
}

func TestDetailedCSVCoversEveryRow(t *testing.T) {
	report := runExample(t)

	data, err := output.CSVDetailedExporter{}.Format(report)
	require.NoError(t, err)

	var fast, slow int
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		switch {
		case strings.HasPrefix(line, "Fast compounding,"):
			fast++
		case strings.HasPrefix(line, "Slow compounding,"):
			slow++
		}
	}
	assert.Equal(t, 2, fast)
	assert.Equal(t, 4, slow)
}

func TestSaveConfigurationRoundTrip(t *testing.T) {
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(exampleConfig)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "saved.yaml")
	require.NoError(t, output.SaveConfiguration(cfg, path))

	reloaded, err := parser.LoadFromFile(path)
	require.NoError(t, err)
	require.Len(t, reloaded.Scenarios, len(cfg.Scenarios))
	for i := range cfg.Scenarios {
		assert.Equal(t, cfg.Scenarios[i].Name, reloaded.Scenarios[i].Name)
		assert.Equal(t, cfg.Scenarios[i].Kind, reloaded.Scenarios[i].Kind)
	}
	assert.True(t, cfg.Scenarios[4].ForeignValuation.PurchaseRate.Equal(reloaded.Scenarios[4].ForeignValuation.PurchaseRate))
}

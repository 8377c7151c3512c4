package output

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wealthlab/wealth-calculator/internal/domain"
)

// GenerateReport writes the report to a timestamped file in the working
// directory and returns its name. "all" writes the console, detailed CSV and
// JSON renditions and returns the last file written.
func GenerateReport(report *domain.Report, format string) (string, error) {
	if NormalizeFormatName(format) == "all" {
		var last string
		for _, name := range []string{"console", "detailed-csv", "json"} {
			filename, err := WriteFormatted(GetFormatterByName(name), report, ExtensionFor(name))
			if err != nil {
				return "", err
			}
			last = filename
		}
		return last, nil
	}
	f := GetFormatterByName(format)
	if f == nil {
		return "", unsupported(format)
	}
	return WriteFormatted(f, report, ExtensionFor(format))
}

// SaveConfiguration writes the configuration as YAML.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}

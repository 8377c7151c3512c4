package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/wealthlab/wealth-calculator/pkg/dateutil"
)

// Period is the look-back window used to pick a purchase price and the
// dividend history of an instrument.
type Period int

const (
	OneYear Period = iota
	SixMonths
	ThreeMonths
)

// MonthsAgo returns the length of the window in months.
func (p Period) MonthsAgo() int {
	switch p {
	case ThreeMonths:
		return 3
	case SixMonths:
		return 6
	default:
		return 12
	}
}

// Code returns the common-code identifier of the period.
func (p Period) Code() string {
	switch p {
	case ThreeMonths:
		return "three_month"
	case SixMonths:
		return "six_month"
	default:
		return "one_year"
	}
}

func (p Period) String() string { return p.Code() }

// Since returns the start of the window ending at now.
func (p Period) Since(now time.Time) time.Time {
	return dateutil.AddMonths(now, -p.MonthsAgo())
}

// ParsePeriod resolves a period from a common-code value and its display
// name. Codes are matched exactly, names by substring. Anything unrecognised
// falls back to OneYear.
func ParsePeriod(code, name string) Period {
	code = strings.ToLower(strings.TrimSpace(code))
	name = strings.ToLower(strings.TrimSpace(name))

	switch code {
	case "one_year", "1y", "1_year":
		return OneYear
	case "six_month", "6m", "6_month":
		return SixMonths
	case "three_month", "3m", "3_month":
		return ThreeMonths
	}

	switch {
	case containsAny(name, "1y", "1년", "one"):
		return OneYear
	case containsAny(name, "6m", "6개월", "six"):
		return SixMonths
	case containsAny(name, "3m", "3개월", "three"):
		return ThreeMonths
	}
	return OneYear
}

// ParsePeriodStrict is ParsePeriod for user-supplied flags: unknown codes are
// an error instead of a silent default.
func ParsePeriodStrict(code string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "one_year", "1y", "1_year", "":
		return OneYear, nil
	case "six_month", "6m", "6_month":
		return SixMonths, nil
	case "three_month", "3m", "3_month":
		return ThreeMonths, nil
	default:
		return OneYear, fmt.Errorf("unknown period %q", code)
	}
}

// UnmarshalText lets periods appear as strings in YAML and JSON documents.
func (p *Period) UnmarshalText(text []byte) error {
	parsed, err := ParsePeriodStrict(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalText renders the period code.
func (p Period) MarshalText() ([]byte, error) {
	return []byte(p.Code()), nil
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

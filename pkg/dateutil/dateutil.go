package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// ISODate is the calendar-date layout used on the wire and in URLs.
const ISODate = "2006-01-02"

// Age calculates the age at a given date
func Age(birthDate, atDate time.Time) int {
	age := atDate.Year() - birthDate.Year()
	if atDate.Month() < birthDate.Month() ||
		(atDate.Month() == birthDate.Month() && atDate.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// FormatISODate renders the calendar date of t as YYYY-MM-DD
func FormatISODate(t time.Time) string {
	return t.Format(ISODate)
}

// ParseISODate parses a YYYY-MM-DD date. Full RFC 3339 timestamps are also
// accepted and truncated to their calendar date.
func ParseISODate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(ISODate, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return StartOfDay(t), nil
	}
	if len(s) > len(ISODate) {
		if t, err := time.Parse(ISODate, s[:len(ISODate)]); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
}

// StartOfDay truncates t to midnight in its own location
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// MonthsUntilDate counts the whole calendar months from fromDate to toDate
func MonthsUntilDate(fromDate, toDate time.Time) int {
	months := (toDate.Year()-fromDate.Year())*12 + int(toDate.Month()-fromDate.Month())
	if toDate.Day() < fromDate.Day() {
		months--
	}
	return months
}

// AddMonths adds a specified number of months to a date
func AddMonths(date time.Time, months int) time.Time {
	return date.AddDate(0, months, 0)
}


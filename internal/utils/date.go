package utils

import (
	"fmt"
	"time"
)

// DateLayout is the ISO 8601 calendar date format used for query parameters and ledger keys.
const DateLayout = "2006-01-02"

// DateOf truncates t to its calendar date, expressed as midnight UTC.
// Dates are compared by year/month/day only, so the location of t is kept for the date part.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	date, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return date, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DaysBetween returns every calendar date in [from, to], both inclusive.
// A reversed range yields nil.
func DaysBetween(from, to time.Time) []time.Time {
	from, to = DateOf(from), DateOf(to)
	if to.Before(from) {
		return nil
	}
	days := make([]time.Time, 0, int(to.Sub(from).Hours()/24)+1)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

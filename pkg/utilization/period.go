package utilization

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/timeplan/timeplan/internal/utils"
)

var ErrInvalidPeriod = errors.New("invalid period")

type PeriodKind string

const (
	Week  PeriodKind = "week"
	Month PeriodKind = "month"
)

func ParsePeriodKind(s string) (PeriodKind, error) {
	switch PeriodKind(strings.ToLower(strings.TrimSpace(s))) {
	case Week:
		return Week, nil
	case Month:
		return Month, nil
	}
	return "", fmt.Errorf("%w: %q, expected week or month", ErrInvalidPeriod, s)
}

// Period is an inclusive date range.
type Period struct {
	Kind  PeriodKind
	Start time.Time
	End   time.Time
}

// WeekPeriod covers Monday to Friday of the ISO week containing today.
func WeekPeriod(today time.Time) Period {
	today = utils.DateOf(today)
	offset := (int(today.Weekday()) + 6) % 7
	monday := today.AddDate(0, 0, -offset)
	return Period{Kind: Week, Start: monday, End: monday.AddDate(0, 0, 4)}
}

// MonthPeriod covers the first to the last day of today's month.
func MonthPeriod(today time.Time) Period {
	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Period{Kind: Month, Start: first, End: first.AddDate(0, 1, -1)}
}

func PeriodFor(kind PeriodKind, today time.Time) Period {
	if kind == Month {
		return MonthPeriod(today)
	}
	return WeekPeriod(today)
}

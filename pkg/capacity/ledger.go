package capacity

import (
	"math"
	"sort"
	"time"

	"github.com/timeplan/timeplan/internal/utils"
	"github.com/timeplan/timeplan/pkg/holiday"
	"github.com/timeplan/timeplan/pkg/time_entry"
)

// BaseHours is the nominal capacity of a working day.
const BaseHours = 8.0

type DayLedger struct {
	Date      time.Time
	Capacity  float64
	Used      float64
	Remaining float64
}

// Ledger maps YYYY-MM-DD to the day's ledger, one key per calendar day of the requested range.
type Ledger map[string]DayLedger

type Totals struct {
	Days      int
	Capacity  float64
	Used      float64
	Remaining float64
}

// Resolve builds the ledger for [start, end] from the entries overlapping that range.
//
// Each entry's hours are spread evenly over the days of the entry that fall inside
// the window. When the window clips an entry the per-day rate is therefore higher
// than hours divided by the entry's full length. Leave entries reduce capacity by at
// most BaseHours per day; every other entry adds to the used hours.
func Resolve(cal holiday.Calendar, start, end time.Time, entries []time_entry.TimeEntry) Ledger {
	start, end = utils.DateOf(start), utils.DateOf(end)
	days := utils.DaysBetween(start, end)
	ledger := make(Ledger, len(days))

	for _, d := range days {
		capacity := 0.0
		if working, _ := cal.IsWorkingDay(d); working {
			capacity = BaseHours
		}
		ledger[utils.FormatDate(d)] = DayLedger{Date: d, Capacity: capacity}
	}
	if len(days) == 0 {
		return ledger
	}

	for _, entry := range entries {
		if entry.Hours <= 0 {
			continue
		}
		activeDays := utils.DaysBetween(laterOf(start, entry.StartDate), earlierOf(end, entry.EndDate))
		if len(activeDays) == 0 {
			continue
		}
		hoursPerDay := entry.Hours / float64(len(activeDays))
		for _, d := range activeDays {
			key := utils.FormatDate(d)
			day := ledger[key]
			if entry.IsLeave() {
				day.Capacity -= math.Min(hoursPerDay, BaseHours)
			} else {
				day.Used += hoursPerDay
			}
			ledger[key] = day
		}
	}

	for key, day := range ledger {
		day.Capacity = math.Max(day.Capacity, 0)
		day.Remaining = math.Max(day.Capacity-day.Used, 0)
		ledger[key] = day
	}
	return ledger
}

// Dates returns the ledger keys in chronological order.
func (l Ledger) Dates() []string {
	dates := make([]string, 0, len(l))
	for date := range l {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

func (l Ledger) Totals() Totals {
	totals := Totals{Days: len(l)}
	for _, day := range l {
		totals.Capacity += day.Capacity
		totals.Used += day.Used
		totals.Remaining += day.Remaining
	}
	return totals
}

func laterOf(a, b time.Time) time.Time {
	a, b = utils.DateOf(a), utils.DateOf(b)
	if b.After(a) {
		return b
	}
	return a
}

func earlierOf(a, b time.Time) time.Time {
	a, b = utils.DateOf(a), utils.DateOf(b)
	if b.Before(a) {
		return b
	}
	return a
}

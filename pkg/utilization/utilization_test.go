package utilization

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timeplan/timeplan/pkg/holiday"
	"github.com/timeplan/timeplan/pkg/time_entry"
)

var calendar = holiday.NewCalendar(holiday.Poland, 4)

func june(d int) time.Time {
	return time.Date(2025, time.June, d, 0, 0, 0, 0, time.UTC)
}

func entry(category time_entry.Category, start, end time.Time, hours float64) time_entry.TimeEntry {
	return time_entry.TimeEntry{Category: category, StartDate: start, EndDate: end, Hours: hours}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		percentage float64
		expected   Status
	}{
		{100.0, Optimal},
		{100.1, Overworked},
		{60.0, Optimal},
		{59.9, Underutilized},
		{0, Underutilized},
		{250, Overworked},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Classify(tt.percentage), "%.1f%%", tt.percentage)
	}
}

func TestAggregate_FullWeek(t *testing.T) {
	entries := []time_entry.TimeEntry{entry(time_entry.CategoryProject, june(9), june(13), 40)}

	result := Aggregate(calendar, WeekPeriod(june(11)), entries, false)

	assert.Equal(t, 40.0, result.TargetHours)
	assert.Equal(t, 40.0, result.TotalHours)
	assert.Equal(t, 100.0, result.UtilizationPercentage)
	assert.Equal(t, Optimal, result.Status)
	assert.Equal(t, 5, result.WorkingDays)
	assert.Equal(t, 5, result.EffectiveWorkingDays)
	assert.Equal(t, 0, result.LeaveDaysTaken)
}

func TestAggregate_ZeroTarget(t *testing.T) {
	weekend := Period{Kind: Week, Start: june(14), End: june(15)}
	entries := []time_entry.TimeEntry{entry(time_entry.CategoryProject, june(14), june(14), 5)}

	result := Aggregate(calendar, weekend, entries, false)

	assert.Equal(t, 0.0, result.TargetHours)
	assert.Equal(t, 0.0, result.UtilizationPercentage)
	assert.Equal(t, Optimal, result.Status)
	assert.Equal(t, 5.0, result.TotalHours)
}

func TestAggregate_LeaveReducesTarget(t *testing.T) {
	t.Run("full leave days are removed from the target", func(t *testing.T) {
		entries := []time_entry.TimeEntry{
			entry(time_entry.LeaveCategory, june(9), june(10), 16),
			entry(time_entry.CategoryProject, june(11), june(13), 24),
		}

		result := Aggregate(calendar, WeekPeriod(june(9)), entries, false)

		assert.Equal(t, 2, result.LeaveDaysTaken)
		assert.Equal(t, 3, result.EffectiveWorkingDays)
		assert.Equal(t, 24.0, result.TargetHours)
		assert.Equal(t, 24.0, result.TotalHours)
		assert.Equal(t, 100.0, result.UtilizationPercentage)
	})

	t.Run("partial leave keeps the day", func(t *testing.T) {
		entries := []time_entry.TimeEntry{entry(time_entry.LeaveCategory, june(9), june(9), 4)}

		result := Aggregate(calendar, WeekPeriod(june(9)), entries, false)

		assert.Equal(t, 0, result.LeaveDaysTaken)
		assert.Equal(t, 40.0, result.TargetHours)
		assert.Equal(t, 0.0, result.TotalHours)
	})

	t.Run("leave is spread over the days visible in the period", func(t *testing.T) {
		// Friday to Monday: only Friday is inside the week, so it takes all 16h
		entries := []time_entry.TimeEntry{entry(time_entry.LeaveCategory, june(13), june(16), 16)}

		result := Aggregate(calendar, WeekPeriod(june(9)), entries, false)

		assert.Equal(t, 1, result.LeaveDaysTaken)
		assert.Equal(t, 32.0, result.TargetHours)
	})

	t.Run("leave over a whole calendar week includes the weekend", func(t *testing.T) {
		// 40h over Monday..Sunday is 5.71h per day, no day is fully consumed
		entries := []time_entry.TimeEntry{
			entry(time_entry.LeaveCategory, june(9), june(15), 40),
			entry(time_entry.CategoryProject, june(2), june(3), 16),
		}

		result := Aggregate(calendar, MonthPeriod(june(9)), entries, false)

		assert.Equal(t, 20, result.WorkingDays)
		assert.Equal(t, 0, result.LeaveDaysTaken)
		assert.Equal(t, 160.0, result.TargetHours)
		assert.Equal(t, 10.0, result.UtilizationPercentage)
		assert.Equal(t, Underutilized, result.Status)
	})

	t.Run("leave counts weekend days of its range", func(t *testing.T) {
		// 80h over June 2..13 is 12 calendar days, 6.67h each
		entries := []time_entry.TimeEntry{entry(time_entry.LeaveCategory, june(2), june(13), 80)}

		result := Aggregate(calendar, MonthPeriod(june(20)), entries, false)

		assert.Equal(t, 0, result.LeaveDaysTaken)
		assert.Equal(t, 160.0, result.TargetHours)
	})

	t.Run("period clips the leave range before spreading", func(t *testing.T) {
		// the week ends on Friday, so Monday..Sunday leave is spread over five days
		entries := []time_entry.TimeEntry{entry(time_entry.LeaveCategory, june(9), june(15), 40)}

		result := Aggregate(calendar, WeekPeriod(june(9)), entries, false)

		assert.Equal(t, 5, result.LeaveDaysTaken)
		assert.Equal(t, 0.0, result.TargetHours)
	})

	t.Run("whole week of leave gives zero target", func(t *testing.T) {
		entries := []time_entry.TimeEntry{entry(time_entry.LeaveCategory, june(9), june(13), 40)}

		result := Aggregate(calendar, WeekPeriod(june(9)), entries, false)

		assert.Equal(t, 5, result.LeaveDaysTaken)
		assert.Equal(t, 0.0, result.TargetHours)
		assert.Equal(t, Optimal, result.Status)
	})
}

func TestAggregate_HolidaysReduceWorkingDays(t *testing.T) {
	result := Aggregate(calendar, WeekPeriod(june(18)), nil, false)

	assert.Equal(t, 4, result.WorkingDays)
	assert.Equal(t, 1, result.Holidays)
	assert.Equal(t, 32.0, result.TargetHours)
	assert.Equal(t, Underutilized, result.Status)
}

func TestAggregate_CountsWholeEntryOverlappingPeriod(t *testing.T) {
	// starts the previous week, counted in full
	entries := []time_entry.TimeEntry{entry(time_entry.CategoryProject, june(5), june(10), 40)}

	result := Aggregate(calendar, WeekPeriod(june(9)), entries, false)

	assert.Equal(t, 40.0, result.TotalHours)
	assert.Equal(t, 100.0, result.UtilizationPercentage)
}

func TestAggregate_StatusBoundaries(t *testing.T) {
	tests := []struct {
		name       string
		hours      float64
		percentage float64
		status     Status
	}{
		{"exactly 100", 40, 100.0, Optimal},
		{"just above 100", 40.04, 100.1, Overworked},
		{"exactly 60", 24, 60.0, Optimal},
		{"just below 60", 23.96, 59.9, Underutilized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := []time_entry.TimeEntry{entry(time_entry.CategoryProject, june(9), june(13), tt.hours)}

			result := Aggregate(calendar, WeekPeriod(june(9)), entries, false)

			assert.Equal(t, tt.percentage, result.UtilizationPercentage)
			assert.Equal(t, tt.status, result.Status)
		})
	}
}

func TestAggregate_CapAt100(t *testing.T) {
	entries := []time_entry.TimeEntry{entry(time_entry.CategoryProject, june(9), june(13), 48)}

	uncapped := Aggregate(calendar, WeekPeriod(june(9)), entries, false)
	capped := Aggregate(calendar, WeekPeriod(june(9)), entries, true)

	assert.Equal(t, 120.0, uncapped.UtilizationPercentage)
	assert.Equal(t, Overworked, uncapped.Status)
	assert.Equal(t, 100.0, capped.UtilizationPercentage)
	assert.Equal(t, Overworked, capped.Status)
}

func TestPeriods(t *testing.T) {
	t.Run("week runs monday to friday", func(t *testing.T) {
		for _, today := range []time.Time{june(9), june(11), june(13), june(15)} {
			period := WeekPeriod(today)
			assert.Equal(t, june(9), period.Start)
			assert.Equal(t, june(13), period.End)
		}
	})

	t.Run("month covers all days", func(t *testing.T) {
		period := MonthPeriod(time.Date(2024, time.February, 10, 18, 0, 0, 0, time.UTC))

		assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), period.Start)
		assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), period.End)
	})

	t.Run("parse period kind", func(t *testing.T) {
		kind, err := ParsePeriodKind(" Month ")
		require.NoError(t, err)
		assert.Equal(t, Month, kind)

		_, err = ParsePeriodKind("year")
		assert.ErrorIs(t, err, ErrInvalidPeriod)
	})
}

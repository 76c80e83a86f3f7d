package capacity

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

func TestResolve_FullWeekProjectEntry(t *testing.T) {
	// 2025-06-09 is a Monday, no holidays that week
	entries := []time_entry.TimeEntry{entry(time_entry.CategoryProject, june(9), june(13), 40)}

	ledger := Resolve(calendar, june(9), june(15), entries)

	require.Len(t, ledger, 7)
	for d := 9; d <= 13; d++ {
		day := ledger[june(d).Format("2006-01-02")]
		assert.Equal(t, 8.0, day.Capacity, "capacity %d", d)
		assert.Equal(t, 8.0, day.Used, "used %d", d)
		assert.Equal(t, 0.0, day.Remaining, "remaining %d", d)
	}
	assert.Equal(t, 0.0, ledger["2025-06-14"].Capacity)
	assert.Equal(t, 0.0, ledger["2025-06-15"].Capacity)
}

func TestResolve_NonWorkingDaysStartAtZero(t *testing.T) {
	ledger := Resolve(calendar, june(16), june(22), nil)

	assert.Equal(t, 8.0, ledger["2025-06-16"].Capacity)
	assert.Equal(t, 0.0, ledger["2025-06-19"].Capacity, "corpus christi")
	assert.Equal(t, 0.0, ledger["2025-06-21"].Capacity)
	assert.Equal(t, 0.0, ledger["2025-06-22"].Capacity)
	assert.Equal(t, 8.0, ledger["2025-06-20"].Remaining)
}

func TestResolve_Clamping(t *testing.T) {
	entries := []time_entry.TimeEntry{
		entry(time_entry.LeaveCategory, june(10), june(10), 100),
		entry(time_entry.LeaveCategory, june(10), june(10), 100),
		entry(time_entry.CategoryProject, june(11), june(11), 20),
		entry(time_entry.LeaveCategory, june(14), june(14), 8),
	}

	ledger := Resolve(calendar, june(9), june(15), entries)

	for date, day := range ledger {
		assert.GreaterOrEqual(t, day.Capacity, 0.0, date)
		assert.GreaterOrEqual(t, day.Remaining, 0.0, date)
	}
	assert.Equal(t, 0.0, ledger["2025-06-10"].Capacity)
	assert.Equal(t, 20.0, ledger["2025-06-11"].Used)
	assert.Equal(t, 0.0, ledger["2025-06-11"].Remaining)
	assert.Equal(t, 0.0, ledger["2025-06-14"].Capacity)
}

func TestResolve_ProrationWithinWindow(t *testing.T) {
	entries := []time_entry.TimeEntry{entry(time_entry.CategoryMeeting, june(10), june(12), 10)}

	ledger := Resolve(calendar, june(9), june(15), entries)

	assert.InDelta(t, 10.0, ledger.Totals().Used, 1e-9)
	assert.InDelta(t, 10.0/3, ledger["2025-06-11"].Used, 1e-9)
	assert.Equal(t, 0.0, ledger["2025-06-09"].Used)
}

func TestResolve_ClippedEntryUsesVisibleDays(t *testing.T) {
	entries := []time_entry.TimeEntry{entry(time_entry.CategoryProject, june(9), june(13), 40)}

	ledger := Resolve(calendar, june(12), june(13), entries)

	require.Len(t, ledger, 2)
	assert.Equal(t, 20.0, ledger["2025-06-12"].Used)
	assert.Equal(t, 20.0, ledger["2025-06-13"].Used)
}

func TestResolve_LeaveOnlyReducesCapacity(t *testing.T) {
	entries := []time_entry.TimeEntry{
		entry(time_entry.LeaveCategory, june(10), june(10), 4),
		entry(time_entry.CategoryTraining, june(11), june(11), 3),
	}

	ledger := Resolve(calendar, june(9), june(13), entries)

	leaveDay := ledger["2025-06-10"]
	assert.Equal(t, 4.0, leaveDay.Capacity)
	assert.Equal(t, 0.0, leaveDay.Used)
	assert.Equal(t, 4.0, leaveDay.Remaining)

	workDay := ledger["2025-06-11"]
	assert.Equal(t, 8.0, workDay.Capacity)
	assert.Equal(t, 3.0, workDay.Used)
	assert.Equal(t, 5.0, workDay.Remaining)
}

func TestResolve_LeaveIsCappedAtBasePerDay(t *testing.T) {
	entries := []time_entry.TimeEntry{
		entry(time_entry.LeaveCategory, june(10), june(11), 24),
		entry(time_entry.CategoryProject, june(10), june(10), 2),
	}

	ledger := Resolve(calendar, june(9), june(13), entries)

	assert.Equal(t, 0.0, ledger["2025-06-10"].Capacity)
	assert.Equal(t, 2.0, ledger["2025-06-10"].Used)
	assert.Equal(t, 0.0, ledger["2025-06-10"].Remaining)
}

func TestResolve_DegenerateInput(t *testing.T) {
	t.Run("reversed range yields empty ledger", func(t *testing.T) {
		ledger := Resolve(calendar, june(15), june(9), []time_entry.TimeEntry{
			entry(time_entry.CategoryProject, june(9), june(15), 40),
		})

		assert.Empty(t, ledger)
	})

	t.Run("entries without hours or outside the window are ignored", func(t *testing.T) {
		ledger := Resolve(calendar, june(9), june(13), []time_entry.TimeEntry{
			entry(time_entry.CategoryProject, june(9), june(9), 0),
			entry(time_entry.LeaveCategory, june(10), june(10), -4),
			entry(time_entry.CategoryProject, june(2), june(6), 40),
		})

		totals := ledger.Totals()
		assert.Equal(t, 40.0, totals.Capacity)
		assert.Equal(t, 0.0, totals.Used)
	})

	t.Run("single day range", func(t *testing.T) {
		ledger := Resolve(calendar, time.Date(2025, time.June, 9, 15, 0, 0, 0, time.UTC), june(9), nil)

		require.Len(t, ledger, 1)
		assert.Equal(t, june(9), ledger["2025-06-09"].Date)
	})
}

func TestLedger_DatesAndTotals(t *testing.T) {
	entries := []time_entry.TimeEntry{
		entry(time_entry.CategoryProject, june(9), june(9), 6),
		entry(time_entry.LeaveCategory, june(10), june(10), 8),
	}

	ledger := Resolve(calendar, june(9), june(15), entries)

	assert.Equal(t, []string{
		"2025-06-09", "2025-06-10", "2025-06-11", "2025-06-12", "2025-06-13", "2025-06-14", "2025-06-15",
	}, ledger.Dates())
	assert.Equal(t, Totals{Days: 7, Capacity: 32, Used: 6, Remaining: 26}, ledger.Totals())
}

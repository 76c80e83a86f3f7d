package utilization

import (
	"math"

	"github.com/timeplan/timeplan/internal/utils"
	"github.com/timeplan/timeplan/pkg/holiday"
	"github.com/timeplan/timeplan/pkg/time_entry"
)

const (
	BaseHours = 8.0

	overworkedAbove    = 100.0
	underutilizedBelow = 60.0
)

type Status string

const (
	Overworked    Status = "Overworked"
	Optimal       Status = "Optimal"
	Underutilized Status = "Underutilized"
)

type Result struct {
	Period                Period
	TotalHours            float64
	TargetHours           float64
	UtilizationPercentage float64
	Status                Status
	WorkingDays           int
	EffectiveWorkingDays  int
	LeaveDaysTaken        int
	Holidays              int
}

// Classify maps a utilization percentage to its status band. Bounds are exclusive,
// so exactly 100 and exactly 60 are Optimal.
func Classify(percentage float64) Status {
	if percentage > overworkedAbove {
		return Overworked
	}
	if percentage < underutilizedBelow {
		return Underutilized
	}
	return Optimal
}

// Aggregate computes utilization of the period from the entries overlapping it.
//
// Logged hours are the full hours of every non-leave entry touching the period,
// without spreading them over days. Leave hours are spread over the entry's calendar
// days inside the period, and a working day whose leave reaches BaseHours is not
// counted in the target. When capAt100 is set the reported percentage is capped at 100;
// the status is decided before capping.
func Aggregate(cal holiday.Calendar, period Period, entries []time_entry.TimeEntry, capAt100 bool) Result {
	result := Result{Period: period}
	days := utils.DaysBetween(period.Start, period.End)

	working := make(map[string]bool, len(days))
	for _, d := range days {
		isWorking, reason := cal.IsWorkingDay(d)
		if isWorking {
			working[utils.FormatDate(d)] = true
			result.WorkingDays++
		} else if reason == holiday.ReasonPublicHoliday {
			result.Holidays++
		}
	}

	leaveHours := make(map[string]float64)
	for _, entry := range entries {
		if !entry.Overlaps(period.Start, period.End) {
			continue
		}
		if !entry.IsLeave() {
			result.TotalHours += entry.Hours
			continue
		}
		spreadLeave(period, entry, working, leaveHours)
	}
	for _, hours := range leaveHours {
		if hours >= BaseHours-1e-9 {
			result.LeaveDaysTaken++
		}
	}

	result.EffectiveWorkingDays = result.WorkingDays - result.LeaveDaysTaken
	result.TargetHours = float64(result.EffectiveWorkingDays) * BaseHours
	if result.TargetHours > 0 {
		result.UtilizationPercentage = roundOneDecimal(result.TotalHours / result.TargetHours * 100)
	}
	result.Status = Classify(result.UtilizationPercentage)
	if result.TargetHours <= 0 {
		result.Status = Optimal
	}
	if capAt100 && result.UtilizationPercentage > 100 {
		result.UtilizationPercentage = 100
	}
	return result
}

// spreadLeave spreads the entry's hours evenly over its calendar days inside the period,
// the same way the capacity ledger does, and adds them to the working days among them.
func spreadLeave(period Period, entry time_entry.TimeEntry, periodWorking map[string]bool, leaveHours map[string]float64) {
	if entry.Hours <= 0 {
		return
	}
	from, to := entry.StartDate, entry.EndDate
	if period.Start.After(from) {
		from = period.Start
	}
	if period.End.Before(to) {
		to = period.End
	}
	visible := utils.DaysBetween(from, to)
	if len(visible) == 0 {
		return
	}
	perDay := entry.Hours / float64(len(visible))
	for _, d := range visible {
		key := utils.FormatDate(d)
		if periodWorking[key] {
			leaveHours[key] += perDay
		}
	}
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}

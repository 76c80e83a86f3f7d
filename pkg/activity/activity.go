package activity

import (
	"errors"
	"math"
	"time"

	"github.com/timeplan/timeplan/pkg/capacity"
)

var (
	ErrNotConfigured    = errors.New("activity tracker integration is not configured")
	ErrTrackerIdMissing = errors.New("user has no activity tracker id")
)

// DailyActivity is the time the desktop monitor saw a user active on one day.
type DailyActivity struct {
	UserId       int
	Date         time.Time
	TrackedHours float64
}

type Status string

const (
	StatusMatch       Status = "match"
	StatusUnderLogged Status = "under_logged"
	StatusOverLogged  Status = "over_logged"
	StatusUntracked   Status = "untracked"
)

type Reconciliation struct {
	Date         string
	TrackedHours float64
	LoggedHours  float64
	// Difference is tracked minus logged hours.
	Difference float64
	Status     Status
}

// Reconcile compares tracked hours with the ledger's used hours for every day of the ledger.
// Differences within tolerance are a match. A day with logged hours but no tracked
// activity is untracked.
func Reconcile(ledger capacity.Ledger, tracked map[string]float64, tolerance float64) []Reconciliation {
	result := make([]Reconciliation, 0, len(ledger))
	for _, date := range ledger.Dates() {
		logged := ledger[date].Used
		trackedHours := tracked[date]
		diff := trackedHours - logged

		var status Status
		switch {
		case math.Abs(diff) <= tolerance:
			status = StatusMatch
		case trackedHours == 0:
			status = StatusUntracked
		case diff > 0:
			status = StatusUnderLogged
		default:
			status = StatusOverLogged
		}
		result = append(result, Reconciliation{
			Date:         date,
			TrackedHours: trackedHours,
			LoggedHours:  logged,
			Difference:   diff,
			Status:       status,
		})
	}
	return result
}

package time_entry

import (
	"errors"
	"fmt"
	"time"

	"github.com/timeplan/timeplan/internal/utils"
)

var (
	ErrEntryNotFound = errors.New("time entry not found")
	ErrInvalidEntry  = errors.New("invalid time entry")
)

type Category string

const (
	CategoryProject    Category = "Project"
	CategoryOperations Category = "Operations"
	CategoryMeeting    Category = "Meeting"
	CategoryTraining   Category = "Training"
	// LeaveCategory marks leave and other non-project time. It reduces capacity instead of using it.
	LeaveCategory Category = "Admin/Others"
)

var categories = []Category{CategoryProject, CategoryOperations, CategoryMeeting, CategoryTraining, LeaveCategory}

func Categories() []Category {
	return append([]Category(nil), categories...)
}

func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// TimeEntry is a number of hours logged against a category over an inclusive date range.
// The hours are a total for the whole range.
type TimeEntry struct {
	Id          int
	UserId      int
	Category    Category
	Project     *string
	StartDate   time.Time
	EndDate     time.Time
	Hours       float64
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (e TimeEntry) IsLeave() bool {
	return e.Category == LeaveCategory
}

// Overlaps reports whether the entry shares at least one calendar day with [from, to].
func (e TimeEntry) Overlaps(from, to time.Time) bool {
	return !(utils.DateOf(e.EndDate).Before(utils.DateOf(from)) || utils.DateOf(e.StartDate).After(utils.DateOf(to)))
}

func (e TimeEntry) Validate() error {
	if !e.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidEntry, e.Category)
	}
	if e.StartDate.IsZero() || e.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidEntry)
	}
	if utils.DateOf(e.EndDate).Before(utils.DateOf(e.StartDate)) {
		return fmt.Errorf("%w: end date %s is before start date %s", ErrInvalidEntry,
			utils.FormatDate(e.EndDate), utils.FormatDate(e.StartDate))
	}
	if e.Hours < 0 {
		return fmt.Errorf("%w: hours must not be negative", ErrInvalidEntry)
	}
	return nil
}

type HistoryAction string

const (
	ActionCreated HistoryAction = "created"
	ActionUpdated HistoryAction = "updated"
	ActionDeleted HistoryAction = "deleted"
)

// HistoryRecord is a snapshot of an entry taken when it was changed.
type HistoryRecord struct {
	Id         int
	EntryId    int
	UserId     int
	Action     HistoryAction
	Category   Category
	Project    *string
	StartDate  time.Time
	EndDate    time.Time
	Hours      float64
	RecordedAt time.Time
}

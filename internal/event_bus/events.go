package event_bus

import "time"

const (
	TimeEntryCreatedEvent EventType = "time_entry.created"
	TimeEntryUpdatedEvent EventType = "time_entry.updated"
	TimeEntryDeletedEvent EventType = "time_entry.deleted"
)

// TimeEntryChanged carries a snapshot of a time entry after a create or update,
// or before a delete.
type TimeEntryChanged struct {
	Id        int
	UserId    int
	Category  string
	Project   *string
	StartDate time.Time
	EndDate   time.Time
	// Hours is the total for the whole date range, not per day.
	Hours float64
}

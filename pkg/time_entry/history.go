package time_entry

import (
	"github.com/timeplan/timeplan/internal/event_bus"
	"github.com/timeplan/timeplan/internal/utils"
)

// HistoryRecorder writes a history row for every time entry lifecycle event.
type HistoryRecorder struct {
	repo  Repository
	clock utils.Clock
}

func NewHistoryRecorder(repo Repository, clock utils.Clock) *HistoryRecorder {
	return &HistoryRecorder{repo: repo, clock: clock}
}

// Register subscribes the recorder to the bus and returns a function undoing that.
func (h *HistoryRecorder) Register(bus *event_bus.EventBus) (unsubscribe func()) {
	actions := map[event_bus.EventType]HistoryAction{
		event_bus.TimeEntryCreatedEvent: ActionCreated,
		event_bus.TimeEntryUpdatedEvent: ActionUpdated,
		event_bus.TimeEntryDeletedEvent: ActionDeleted,
	}
	unsubscribers := make([]func(), 0, len(actions))
	for eventType, action := range actions {
		unsubscribers = append(unsubscribers, event_bus.SubscribeTyped(bus, eventType,
			func(e event_bus.EventT[event_bus.TimeEntryChanged]) error {
				return h.record(e, action)
			}))
	}
	return func() {
		for _, unsubscribe := range unsubscribers {
			unsubscribe()
		}
	}
}

func (h *HistoryRecorder) record(e event_bus.EventT[event_bus.TimeEntryChanged], action HistoryAction) error {
	return h.repo.StoreHistory(e.Context(), HistoryRecord{
		EntryId:    e.Data.Id,
		UserId:     e.Data.UserId,
		Action:     action,
		Category:   Category(e.Data.Category),
		Project:    e.Data.Project,
		StartDate:  e.Data.StartDate,
		EndDate:    e.Data.EndDate,
		Hours:      e.Data.Hours,
		RecordedAt: h.clock.Now(),
	})
}

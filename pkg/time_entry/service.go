package time_entry

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/timeplan/timeplan/internal/event_bus"
	"github.com/timeplan/timeplan/internal/utils"
	"github.com/timeplan/timeplan/pkg/user"
)

type Service interface {
	CreateEntry(ctx context.Context, entry TimeEntry) (TimeEntry, error)
	GetEntry(ctx context.Context, entryId int) (TimeEntry, error)
	UpdateEntry(ctx context.Context, entry TimeEntry) (TimeEntry, error)
	DeleteEntry(ctx context.Context, entryId int) error
	// ListEntries returns the current user's entries overlapping [from, to].
	ListEntries(ctx context.Context, from time.Time, to time.Time) ([]TimeEntry, error)
	// ListUserEntries is ListEntries for any user. It backs the fleet reports.
	ListUserEntries(ctx context.Context, userId int, from time.Time, to time.Time) ([]TimeEntry, error)
	GetHistory(ctx context.Context, entryId int) ([]HistoryRecord, error)
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func normalize(entry TimeEntry) TimeEntry {
	entry.StartDate = utils.DateOf(entry.StartDate)
	entry.EndDate = utils.DateOf(entry.EndDate)
	if entry.Project != nil && *entry.Project == "" {
		entry.Project = nil
	}
	return entry
}

func (s *ServiceImpl) CreateEntry(ctx context.Context, entry TimeEntry) (TimeEntry, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return TimeEntry{}, fmt.Errorf("failed to get current user: %w", err)
	}
	entry = normalize(entry)
	if err := entry.Validate(); err != nil {
		return TimeEntry{}, err
	}

	stored, err := s.repo.StoreEntry(ctx, userId, entry)
	if err != nil {
		return TimeEntry{}, err
	}
	s.publish(ctx, event_bus.TimeEntryCreatedEvent, stored)
	return stored, nil
}

func (s *ServiceImpl) GetEntry(ctx context.Context, entryId int) (TimeEntry, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return TimeEntry{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetEntry(ctx, userId, entryId)
}

func (s *ServiceImpl) UpdateEntry(ctx context.Context, entry TimeEntry) (TimeEntry, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return TimeEntry{}, fmt.Errorf("failed to get current user: %w", err)
	}
	entry = normalize(entry)
	if err := entry.Validate(); err != nil {
		return TimeEntry{}, err
	}

	updated, err := s.repo.UpdateEntry(ctx, userId, entry)
	if err != nil {
		return TimeEntry{}, err
	}
	s.publish(ctx, event_bus.TimeEntryUpdatedEvent, updated)
	return updated, nil
}

func (s *ServiceImpl) DeleteEntry(ctx context.Context, entryId int) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	deleted, err := s.repo.DeleteEntry(ctx, userId, entryId)
	if err != nil {
		return err
	}
	s.publish(ctx, event_bus.TimeEntryDeletedEvent, deleted)
	return nil
}

func (s *ServiceImpl) ListEntries(ctx context.Context, from time.Time, to time.Time) ([]TimeEntry, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.ListUserEntries(ctx, userId, from, to)
}

func (s *ServiceImpl) ListUserEntries(ctx context.Context, userId int, from time.Time, to time.Time) ([]TimeEntry, error) {
	from, to = utils.DateOf(from), utils.DateOf(to)
	if to.Before(from) {
		return []TimeEntry{}, nil
	}
	return s.repo.FindOverlapping(ctx, userId, from, to)
}

func (s *ServiceImpl) GetHistory(ctx context.Context, entryId int) ([]HistoryRecord, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetHistory(ctx, userId, entryId)
}

// publish notifies subscribers. The entry change is already committed, so
// subscriber failures are logged and not returned to the caller.
func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, entry TimeEntry) {
	if s.eventBus == nil {
		return
	}
	err := s.eventBus.Publish(event_bus.NewEvent(ctx, eventType, toEvent(entry)))
	if err != nil {
		log.Errorf("failed to publish %s for time entry %d: %v", eventType, entry.Id, err)
	}
}

func toEvent(entry TimeEntry) event_bus.TimeEntryChanged {
	return event_bus.TimeEntryChanged{
		Id:        entry.Id,
		UserId:    entry.UserId,
		Category:  string(entry.Category),
		Project:   entry.Project,
		StartDate: entry.StartDate,
		EndDate:   entry.EndDate,
		Hours:     entry.Hours,
	}
}

package time_entry

import (
	"context"
	"sort"
	"time"
)

type RepositoryStub struct {
	nextId  int
	entries map[int]TimeEntry
	history []HistoryRecord
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{entries: map[int]TimeEntry{}}
}

func (s *RepositoryStub) StoreEntry(ctx context.Context, userId int, entry TimeEntry) (TimeEntry, error) {
	s.nextId++
	entry.Id = s.nextId
	entry.UserId = userId
	s.entries[entry.Id] = entry
	return entry, nil
}

func (s *RepositoryStub) GetEntry(ctx context.Context, userId int, entryId int) (TimeEntry, error) {
	entry, ok := s.entries[entryId]
	if !ok || entry.UserId != userId {
		return TimeEntry{}, ErrEntryNotFound
	}
	return entry, nil
}

func (s *RepositoryStub) UpdateEntry(ctx context.Context, userId int, entry TimeEntry) (TimeEntry, error) {
	existing, ok := s.entries[entry.Id]
	if !ok || existing.UserId != userId {
		return TimeEntry{}, ErrEntryNotFound
	}
	entry.UserId = userId
	entry.CreatedAt = existing.CreatedAt
	s.entries[entry.Id] = entry
	return entry, nil
}

func (s *RepositoryStub) DeleteEntry(ctx context.Context, userId int, entryId int) (TimeEntry, error) {
	entry, ok := s.entries[entryId]
	if !ok || entry.UserId != userId {
		return TimeEntry{}, ErrEntryNotFound
	}
	delete(s.entries, entryId)
	return entry, nil
}

func (s *RepositoryStub) FindOverlapping(ctx context.Context, userId int, from time.Time, to time.Time) ([]TimeEntry, error) {
	entries := make([]TimeEntry, 0)
	for _, entry := range s.entries {
		if entry.UserId == userId && entry.Overlaps(from, to) {
			entries = append(entries, entry)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].StartDate.Equal(entries[j].StartDate) {
			return entries[i].Id < entries[j].Id
		}
		return entries[i].StartDate.Before(entries[j].StartDate)
	})
	return entries, nil
}

func (s *RepositoryStub) StoreHistory(ctx context.Context, record HistoryRecord) error {
	record.Id = len(s.history) + 1
	s.history = append(s.history, record)
	return nil
}

func (s *RepositoryStub) GetHistory(ctx context.Context, userId int, entryId int) ([]HistoryRecord, error) {
	records := make([]HistoryRecord, 0)
	for _, record := range s.history {
		if record.UserId == userId && record.EntryId == entryId {
			records = append(records, record)
		}
	}
	return records, nil
}

func (s *RepositoryStub) Cleanup() {
	s.nextId = 0
	s.entries = map[int]TimeEntry{}
	s.history = nil
}

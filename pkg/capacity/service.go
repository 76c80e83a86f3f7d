package capacity

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/timeplan/timeplan/pkg/holiday"
	"github.com/timeplan/timeplan/pkg/time_entry"
	"github.com/timeplan/timeplan/pkg/user"
	"golang.org/x/sync/errgroup"
)

// EntryReader provides the time entries overlapping a date range.
type EntryReader interface {
	ListUserEntries(ctx context.Context, userId int, from time.Time, to time.Time) ([]time_entry.TimeEntry, error)
}

type UserLister interface {
	GetAllUsers(ctx context.Context) ([]user.User, error)
}

type UserLedger struct {
	User   user.User
	Ledger Ledger
}

type Service interface {
	GetLedger(ctx context.Context, start time.Time, end time.Time) (Ledger, error)
	GetUserLedger(ctx context.Context, userId int, start time.Time, end time.Time) (Ledger, error)
	// GetFleetLedgers resolves the ledger of every user, in the order the users are listed.
	GetFleetLedgers(ctx context.Context, start time.Time, end time.Time) ([]UserLedger, error)
}

type ServiceImpl struct {
	calendar holiday.Calendar
	entries  EntryReader
	users    UserLister
	workers  int
}

func NewService(calendar holiday.Calendar, entries EntryReader, users UserLister, workers int) *ServiceImpl {
	if workers <= 0 {
		workers = 1
	}
	return &ServiceImpl{calendar: calendar, entries: entries, users: users, workers: workers}
}

func (s *ServiceImpl) GetLedger(ctx context.Context, start time.Time, end time.Time) (Ledger, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.GetUserLedger(ctx, userId, start, end)
}

func (s *ServiceImpl) GetUserLedger(ctx context.Context, userId int, start time.Time, end time.Time) (Ledger, error) {
	entries, err := s.entries.ListUserEntries(ctx, userId, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load time entries of user %d: %w", userId, err)
	}
	log.Tracef("Resolving capacity of user %d from %d entries", userId, len(entries))
	return Resolve(s.calendar, start, end, entries), nil
}

func (s *ServiceImpl) GetFleetLedgers(ctx context.Context, start time.Time, end time.Time) ([]UserLedger, error) {
	users, err := s.users.GetAllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	results := make([]UserLedger, len(users))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, u := range users {
		g.Go(func() error {
			ledger, err := s.GetUserLedger(gctx, u.Id, start, end)
			if err != nil {
				return err
			}
			results[i] = UserLedger{User: u, Ledger: ledger}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Errorf("failed to resolve fleet capacity: %v", err)
		return nil, err
	}
	return results, nil
}

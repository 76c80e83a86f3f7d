package utilization

import (
	"context"
	"fmt"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/timeplan/timeplan/internal/utils"
	"github.com/timeplan/timeplan/pkg/holiday"
	"github.com/timeplan/timeplan/pkg/time_entry"
	"github.com/timeplan/timeplan/pkg/user"
	"golang.org/x/sync/errgroup"
)

type EntryReader interface {
	ListUserEntries(ctx context.Context, userId int, from time.Time, to time.Time) ([]time_entry.TimeEntry, error)
}

type UserLister interface {
	GetAllUsers(ctx context.Context) ([]user.User, error)
}

type UserResult struct {
	User   user.User
	Result Result
}

type Service interface {
	// GetUserUtilization returns the current user's utilization for the period containing
	// reference, or today when reference is zero. The percentage is not capped.
	GetUserUtilization(ctx context.Context, kind PeriodKind, reference time.Time) (Result, error)
	// GetReport returns every user's utilization sorted by username, percentages capped at 100.
	GetReport(ctx context.Context, kind PeriodKind, reference time.Time) ([]UserResult, error)
}

type ServiceImpl struct {
	calendar holiday.Calendar
	entries  EntryReader
	users    UserLister
	clock    utils.Clock
	workers  int
}

func NewService(calendar holiday.Calendar, entries EntryReader, users UserLister, clock utils.Clock, workers int) *ServiceImpl {
	if workers <= 0 {
		workers = 1
	}
	return &ServiceImpl{calendar: calendar, entries: entries, users: users, clock: clock, workers: workers}
}

func (s *ServiceImpl) period(kind PeriodKind, reference time.Time) Period {
	if reference.IsZero() {
		reference = utils.Today(s.clock)
	}
	return PeriodFor(kind, reference)
}

func (s *ServiceImpl) GetUserUtilization(ctx context.Context, kind PeriodKind, reference time.Time) (Result, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.userUtilization(ctx, userId, s.period(kind, reference), false)
}

func (s *ServiceImpl) GetReport(ctx context.Context, kind PeriodKind, reference time.Time) ([]UserResult, error) {
	period := s.period(kind, reference)
	users, err := s.users.GetAllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	results := make([]UserResult, len(users))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, u := range users {
		g.Go(func() error {
			result, err := s.userUtilization(gctx, u.Id, period, true)
			if err != nil {
				return err
			}
			results[i] = UserResult{User: u, Result: result}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Errorf("failed to compute utilization report: %v", err)
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].User.Username < results[j].User.Username
	})
	return results, nil
}

func (s *ServiceImpl) userUtilization(ctx context.Context, userId int, period Period, capAt100 bool) (Result, error) {
	entries, err := s.entries.ListUserEntries(ctx, userId, period.Start, period.End)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load time entries of user %d: %w", userId, err)
	}
	return Aggregate(s.calendar, period, entries, capAt100), nil
}

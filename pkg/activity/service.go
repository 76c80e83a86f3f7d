package activity

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/timeplan/timeplan/internal/utils"
	"github.com/timeplan/timeplan/pkg/capacity"
	"github.com/timeplan/timeplan/pkg/user"
)

type LedgerProvider interface {
	GetLedger(ctx context.Context, start time.Time, end time.Time) (capacity.Ledger, error)
}

type Service interface {
	// Sync pulls tracked activity of the current user for [start, end] and stores it.
	// It returns the number of stored days.
	Sync(ctx context.Context, start time.Time, end time.Time) (int, error)
	Reconcile(ctx context.Context, start time.Time, end time.Time) ([]Reconciliation, error)
}

type ServiceImpl struct {
	client    Client
	repo      Repository
	ledgers   LedgerProvider
	tolerance float64
}

// NewService returns a service for the configured tracker. A nil client disables the integration.
func NewService(client Client, repo Repository, ledgers LedgerProvider, tolerance float64) *ServiceImpl {
	return &ServiceImpl{client: client, repo: repo, ledgers: ledgers, tolerance: tolerance}
}

func (s *ServiceImpl) Sync(ctx context.Context, start time.Time, end time.Time) (int, error) {
	if s.client == nil {
		return 0, ErrNotConfigured
	}
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get current user: %w", err)
	}
	trackerId, err := user.CurrentTrackerId(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get current user: %w", err)
	}
	if trackerId == "" {
		return 0, ErrTrackerIdMissing
	}

	trackedDays, err := s.client.GetDailyActivity(ctx, trackerId, start, end)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch activity for %s: %w", trackerId, err)
	}

	days := make([]DailyActivity, 0, len(trackedDays))
	for _, tracked := range trackedDays {
		date, err := utils.ParseDate(tracked.Date)
		if err != nil {
			log.Warnf("Skipping activity day with malformed date %q", tracked.Date)
			continue
		}
		if date.Before(utils.DateOf(start)) || date.After(utils.DateOf(end)) {
			continue
		}
		days = append(days, DailyActivity{
			UserId:       userId,
			Date:         date,
			TrackedHours: float64(tracked.ActiveSeconds) / 3600,
		})
	}
	if err := s.repo.StoreDaily(ctx, days); err != nil {
		return 0, err
	}
	log.Infof("Synced %d days of activity for user %d", len(days), userId)
	return len(days), nil
}

func (s *ServiceImpl) Reconcile(ctx context.Context, start time.Time, end time.Time) ([]Reconciliation, error) {
	if s.client == nil {
		return nil, ErrNotConfigured
	}
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	ledger, err := s.ledgers.GetLedger(ctx, start, end)
	if err != nil {
		return nil, err
	}
	stored, err := s.repo.GetDaily(ctx, userId, utils.DateOf(start), utils.DateOf(end))
	if err != nil {
		return nil, err
	}
	tracked := make(map[string]float64, len(stored))
	for _, day := range stored {
		tracked[utils.FormatDate(day.Date)] = day.TrackedHours
	}
	return Reconcile(ledger, tracked, s.tolerance), nil
}

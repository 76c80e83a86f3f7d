package activity

import (
	"context"
	"sort"
	"time"

	"github.com/timeplan/timeplan/internal/utils"
)

type RepositoryStub struct {
	days map[int]map[string]DailyActivity
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{days: make(map[int]map[string]DailyActivity)}
}

func (s *RepositoryStub) StoreDaily(ctx context.Context, days []DailyActivity) error {
	for _, day := range days {
		if s.days[day.UserId] == nil {
			s.days[day.UserId] = make(map[string]DailyActivity)
		}
		s.days[day.UserId][utils.FormatDate(day.Date)] = day
	}
	return nil
}

func (s *RepositoryStub) GetDaily(ctx context.Context, userId int, from time.Time, to time.Time) ([]DailyActivity, error) {
	days := make([]DailyActivity, 0)
	for _, day := range s.days[userId] {
		if !day.Date.Before(from) && !day.Date.After(to) {
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	return days, nil
}

package activity

import (
	"context"
	"sync"
	"time"
)

type ClientStub struct {
	mu    sync.RWMutex
	days  map[string][]TrackedDay // trackerUserId -> days
	err   error
	calls int
}

func NewClientStub() *ClientStub {
	return &ClientStub{days: make(map[string][]TrackedDay)}
}

func (s *ClientStub) SetDays(trackerUserId string, days []TrackedDay) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.days[trackerUserId] = days
}

func (s *ClientStub) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *ClientStub) Calls() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calls
}

func (s *ClientStub) GetDailyActivity(ctx context.Context, trackerUserId string, from time.Time, to time.Time) ([]TrackedDay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.days[trackerUserId], nil
}

package goal

import (
	"context"
	"sync"

	"github.com/grafytimes/grafytimes/pkg/worklog"
)

type StubRepository struct {
	mu    sync.Mutex
	goals map[int]map[worklog.YearMonth]string
}

func NewStubRepository() *StubRepository {
	return &StubRepository{goals: map[int]map[worklog.YearMonth]string{}}
}

func (s *StubRepository) Save(ctx context.Context, userId int, month worklog.YearMonth, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.goals[userId] == nil {
		s.goals[userId] = map[worklog.YearMonth]string{}
	}
	s.goals[userId][month] = value
	return nil
}

func (s *StubRepository) Get(ctx context.Context, userId int, month worklog.YearMonth) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest worklog.YearMonth
	found := false
	for m := range s.goals[userId] {
		if m.After(month) {
			continue
		}
		if !found || m.After(latest) {
			latest = m
			found = true
		}
	}
	if !found {
		return "", false, nil
	}
	return s.goals[userId][latest], true, nil
}

func (s *StubRepository) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals = map[int]map[worklog.YearMonth]string{}
}

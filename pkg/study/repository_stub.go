package study

import (
	"context"
	"sort"
	"sync"
	"time"
)

type StubRepository struct {
	mu      sync.Mutex
	studies map[int]map[string]BibleStudy
}

func NewStubRepository() *StubRepository {
	return &StubRepository{studies: map[int]map[string]BibleStudy{}}
}

func (s *StubRepository) Upsert(ctx context.Context, userId int, study BibleStudy) (BibleStudy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.studies[userId] == nil {
		s.studies[userId] = map[string]BibleStudy{}
	}
	if existing, ok := s.studies[userId][study.Id]; ok {
		study.CreatedAt = existing.CreatedAt
	}
	s.studies[userId][study.Id] = study
	return study, nil
}

func (s *StubRepository) Get(ctx context.Context, userId int, id string) (BibleStudy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	study, ok := s.studies[userId][id]
	if !ok {
		return BibleStudy{}, ErrStudyNotFound
	}
	return study, nil
}

func (s *StubRepository) List(ctx context.Context, userId int) ([]BibleStudy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	studies := make([]BibleStudy, 0, len(s.studies[userId]))
	for _, study := range s.studies[userId] {
		studies = append(studies, study)
	}
	sort.Slice(studies, func(i, j int) bool {
		if studies[i].IsActive != studies[j].IsActive {
			return studies[i].IsActive
		}
		return studies[i].Name < studies[j].Name
	})
	return studies, nil
}

func (s *StubRepository) Delete(ctx context.Context, userId int, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.studies[userId][id]; !ok {
		return false, nil
	}
	delete(s.studies[userId], id)
	return true, nil
}

func (s *StubRepository) AdvanceLastVisit(ctx context.Context, userId int, id string, date time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	study, ok := s.studies[userId][id]
	if !ok {
		return false, nil
	}
	if study.LastVisitDate != nil && !study.LastVisitDate.Before(date) {
		return false, nil
	}
	study.LastVisitDate = &date
	s.studies[userId][id] = study
	return true, nil
}

func (s *StubRepository) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.studies = map[int]map[string]BibleStudy{}
}

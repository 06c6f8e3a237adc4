package worklog

import (
	"context"
	"sync"
)

type StubRepository struct {
	mu      sync.Mutex
	records map[int][]WorkRecord
}

func NewStubRepository() *StubRepository {
	return &StubRepository{records: map[int][]WorkRecord{}}
}

func (s *StubRepository) Upsert(ctx context.Context, userId int, record WorkRecord) (WorkRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.records[userId] {
		if r.Id == record.Id {
			s.records[userId][i] = record
			return record, nil
		}
	}
	s.records[userId] = append(s.records[userId], record)
	return record, nil
}

func (s *StubRepository) Delete(ctx context.Context, userId int, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.records[userId] {
		if r.Id == id {
			s.records[userId] = append(s.records[userId][:i], s.records[userId][i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *StubRepository) ListByMonth(ctx context.Context, userId int, month YearMonth) ([]WorkRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]WorkRecord, 0)
	for _, r := range s.records[userId] {
		if month.Contains(r.Date) {
			result = append(result, r)
		}
	}
	return result, nil
}

func (s *StubRepository) ListAll(ctx context.Context, userId int) ([]WorkRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]WorkRecord, len(s.records[userId]))
	copy(result, s.records[userId])
	return result, nil
}

func (s *StubRepository) DeleteByStudy(ctx context.Context, userId int, studyId string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]WorkRecord, 0, len(s.records[userId]))
	for _, r := range s.records[userId] {
		if r.StudyId != studyId {
			kept = append(kept, r)
		}
	}
	deleted := len(s.records[userId]) - len(kept)
	s.records[userId] = kept
	return deleted, nil
}

func (s *StubRepository) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = map[int][]WorkRecord{}
}

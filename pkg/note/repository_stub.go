package note

import (
	"context"
	"sort"
	"sync"
)

type StubRepository struct {
	mu    sync.Mutex
	notes map[int]map[string]Note
}

func NewStubRepository() *StubRepository {
	return &StubRepository{notes: map[int]map[string]Note{}}
}

func (s *StubRepository) Upsert(ctx context.Context, userId int, note Note) (Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notes[userId] == nil {
		s.notes[userId] = map[string]Note{}
	}
	if existing, ok := s.notes[userId][note.Id]; ok {
		note.CreatedAt = existing.CreatedAt
	}
	s.notes[userId][note.Id] = note
	return note, nil
}

func (s *StubRepository) List(ctx context.Context, userId int, activityType string) ([]Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	notes := make([]Note, 0)
	for _, n := range s.notes[userId] {
		if activityType == "" || n.ActivityType == activityType {
			notes = append(notes, n)
		}
	}
	sort.Slice(notes, func(i, j int) bool {
		if !notes[i].UpdatedAt.Equal(notes[j].UpdatedAt) {
			return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
		}
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})
	return notes, nil
}

func (s *StubRepository) Delete(ctx context.Context, userId int, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notes[userId][id]; !ok {
		return false, nil
	}
	delete(s.notes[userId], id)
	return true, nil
}

func (s *StubRepository) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = map[int]map[string]Note{}
}

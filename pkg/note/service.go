package note

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/grafytimes/grafytimes/internal/utils"
	"github.com/grafytimes/grafytimes/pkg/user"
)

type Service interface {
	List(ctx context.Context, activityType string) ([]Note, error)
	Save(ctx context.Context, note Note) (Note, error)
	Delete(ctx context.Context, id string) error
}

type ServiceImpl struct {
	repo  Repository
	clock utils.Clock
}

func NewService(repo Repository, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, clock: clock}
}

func (s *ServiceImpl) List(ctx context.Context, activityType string) ([]Note, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.List(ctx, userId, strings.TrimSpace(activityType))
}

// Save stamps UpdatedAt on every write and CreatedAt on the first one.
func (s *ServiceImpl) Save(ctx context.Context, note Note) (Note, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Note{}, fmt.Errorf("failed to get current user: %w", err)
	}
	note.Title = strings.TrimSpace(note.Title)
	note.ActivityType = strings.TrimSpace(note.ActivityType)
	if note.IsEmpty() {
		return Note{}, fmt.Errorf("%w: title or content is required", ErrInvalidNote)
	}

	now := s.clock.Now()
	if note.Id == "" {
		note.Id = uuid.NewString()
	} else if _, err := uuid.Parse(note.Id); err != nil {
		return Note{}, fmt.Errorf("%w: malformed id %q", ErrInvalidNote, note.Id)
	}
	note.CreatedAt = now
	note.UpdatedAt = now
	return s.repo.Upsert(ctx, userId, note)
}

func (s *ServiceImpl) Delete(ctx context.Context, id string) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		return ErrNoteNotFound
	}
	deleted, err := s.repo.Delete(ctx, userId, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNoteNotFound
	}
	return nil
}

package worklog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/grafytimes/grafytimes/internal/event_bus"
	"github.com/grafytimes/grafytimes/internal/utils"
	"github.com/grafytimes/grafytimes/pkg/user"
	log "github.com/sirupsen/logrus"
)

// Reader gives read access to the current user's records.
type Reader interface {
	GetMonth(ctx context.Context, month YearMonth) ([]WorkRecord, error)
}

type Service interface {
	Reader
	SaveRecord(ctx context.Context, record WorkRecord) (WorkRecord, error)
	DeleteRecord(ctx context.Context, id string) error
	GetAll(ctx context.Context) ([]WorkRecord, error)
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	s := &ServiceImpl{repo: repo, eventBus: eventBus}
	event_bus.SubscribeTyped(eventBus, event_bus.StudyDeletedType, s.handleStudyDeleted)
	return s
}

// SaveRecord creates the record when it has no id yet and replaces the stored one otherwise.
func (s *ServiceImpl) SaveRecord(ctx context.Context, record WorkRecord) (WorkRecord, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return WorkRecord{}, fmt.Errorf("failed to get current user: %w", err)
	}

	record.ActivityType = strings.TrimSpace(record.ActivityType)
	record.StudyId = strings.TrimSpace(record.StudyId)
	if !record.Date.IsZero() {
		record.Date = utils.DateOf(record.Date)
	}
	if err := record.Validate(); err != nil {
		return WorkRecord{}, err
	}
	if record.Id == "" {
		record.Id = uuid.NewString()
	} else if _, err := uuid.Parse(record.Id); err != nil {
		return WorkRecord{}, fmt.Errorf("%w: malformed id %q", ErrInvalidRecord, record.Id)
	}

	saved, err := s.repo.Upsert(ctx, userId, record)
	if err != nil {
		return WorkRecord{}, err
	}

	err = s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.WorkRecordSavedType, event_bus.WorkRecordSaved{
		Id:           saved.Id,
		Date:         saved.Date,
		Hours:        saved.Hours,
		ActivityType: saved.ActivityType,
		StudyId:      saved.StudyId,
	}))
	if err != nil {
		log.Warnf("work record %s saved but not every subscriber handled it: %v", saved.Id, err)
	}
	return saved, nil
}

func (s *ServiceImpl) DeleteRecord(ctx context.Context, id string) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		return ErrRecordNotFound
	}
	deleted, err := s.repo.Delete(ctx, userId, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrRecordNotFound
	}
	return nil
}

func (s *ServiceImpl) GetMonth(ctx context.Context, month YearMonth) ([]WorkRecord, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.ListByMonth(ctx, userId, month)
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]WorkRecord, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.ListAll(ctx, userId)
}

func (s *ServiceImpl) handleStudyDeleted(e event_bus.EventT[event_bus.StudyDeleted]) error {
	ctx := e.Context()
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	deleted, err := s.repo.DeleteByStudy(ctx, userId, e.Data.Id)
	if err != nil {
		return err
	}
	log.Debugf("removed %d work record(s) of deleted study %s", deleted, e.Data.Id)
	return nil
}

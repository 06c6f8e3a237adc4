package study

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/grafytimes/grafytimes/internal/event_bus"
	"github.com/grafytimes/grafytimes/internal/utils"
	"github.com/grafytimes/grafytimes/pkg/stats"
	"github.com/grafytimes/grafytimes/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	List(ctx context.Context) ([]BibleStudy, error)
	Save(ctx context.Context, study BibleStudy) (BibleStudy, error)
	Delete(ctx context.Context, id string) error
	StudyNames(ctx context.Context) (stats.StudyNames, error)
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
	clock    utils.Clock
}

func NewService(repo Repository, eventBus *event_bus.EventBus, clock utils.Clock) *ServiceImpl {
	s := &ServiceImpl{repo: repo, eventBus: eventBus, clock: clock}
	event_bus.SubscribeTyped(eventBus, event_bus.WorkRecordSavedType, s.handleWorkRecordSaved)
	return s
}

func (s *ServiceImpl) List(ctx context.Context) ([]BibleStudy, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.List(ctx, userId)
}

// Save creates the study when it has no id yet and updates the stored one otherwise.
func (s *ServiceImpl) Save(ctx context.Context, study BibleStudy) (BibleStudy, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return BibleStudy{}, fmt.Errorf("failed to get current user: %w", err)
	}
	study.Name = strings.TrimSpace(study.Name)
	study.ContactInfo = strings.TrimSpace(study.ContactInfo)
	if study.Name == "" {
		return BibleStudy{}, fmt.Errorf("%w: name is required", ErrInvalidStudy)
	}

	if study.Id == "" {
		study.Id = uuid.NewString()
		study.CreatedAt = s.clock.Now()
	} else {
		if _, err := uuid.Parse(study.Id); err != nil {
			return BibleStudy{}, fmt.Errorf("%w: malformed id %q", ErrInvalidStudy, study.Id)
		}
		if study.CreatedAt.IsZero() {
			study.CreatedAt = s.clock.Now()
		}
	}
	if study.LastVisitDate != nil {
		date := utils.DateOf(*study.LastVisitDate)
		study.LastVisitDate = &date
	}
	return s.repo.Upsert(ctx, userId, study)
}

// Delete removes the study and announces it, so that its work records go with it.
func (s *ServiceImpl) Delete(ctx context.Context, id string) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		return ErrStudyNotFound
	}
	deleted, err := s.repo.Delete(ctx, userId, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrStudyNotFound
	}
	err = s.eventBus.Publish(event_bus.NewEvent(ctx, event_bus.StudyDeletedType, event_bus.StudyDeleted{Id: id}))
	if err != nil {
		log.Errorf("bible study %s deleted but its records were not cleaned up: %v", id, err)
		return err
	}
	return nil
}

func (s *ServiceImpl) StudyNames(ctx context.Context) (stats.StudyNames, error) {
	studies, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(stats.StudyNames, len(studies))
	for _, study := range studies {
		names[study.Id] = study.Name
	}
	return names, nil
}

func (s *ServiceImpl) handleWorkRecordSaved(e event_bus.EventT[event_bus.WorkRecordSaved]) error {
	if e.Data.StudyId == "" {
		return nil
	}
	ctx := e.Context()
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	if _, err := uuid.Parse(e.Data.StudyId); err != nil {
		log.Warnf("work record %s references malformed study id %q", e.Data.Id, e.Data.StudyId)
		return nil
	}
	updated, err := s.repo.AdvanceLastVisit(ctx, userId, e.Data.StudyId, utils.DateOf(e.Data.Date))
	if err != nil && !errors.Is(err, ErrStudyNotFound) {
		return err
	}
	log.Tracef("last visit of study %s updated: %v", e.Data.StudyId, updated)
	return nil
}

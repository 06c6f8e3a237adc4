package stats

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/grafytimes/grafytimes/internal/config"
	"github.com/grafytimes/grafytimes/internal/utils"
	"github.com/grafytimes/grafytimes/pkg/goal"
	"github.com/grafytimes/grafytimes/pkg/user"
	"github.com/grafytimes/grafytimes/pkg/worklog"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var ErrHistoryTooLong = errors.New("historical window too long")

const defaultMaxHistoryMonths = 24

// StudyNameSource provides the current user's study names for report rendering.
type StudyNameSource interface {
	StudyNames(ctx context.Context) (StudyNames, error)
}

type Service interface {
	GetMonthly(ctx context.Context, month worklog.YearMonth) (MonthlyStatistics, error)
	// GetHistorical returns monthCount months ending at endingAt, newest first. Non-positive
	// monthCount uses the configured history window and a zero endingAt the current month.
	// A monthCount above the configured maximum fails with ErrHistoryTooLong.
	GetHistorical(ctx context.Context, monthCount int, endingAt worklog.YearMonth) ([]MonthlyStatistics, error)
	GetCalendar(ctx context.Context, month worklog.YearMonth) ([]CalendarEntry, error)
	GetReport(ctx context.Context, month worklog.YearMonth) (MonthlyReport, StudyNames, error)
	CurrentMonth(ctx context.Context) (worklog.YearMonth, error)
}

type ServiceImpl struct {
	records worklog.Reader
	goals   goal.Reader
	studies StudyNameSource
	clock   utils.Clock
	cfg     config.Stats
}

func NewService(records worklog.Reader, goals goal.Reader, studies StudyNameSource, clock utils.Clock, cfg config.Stats) *ServiceImpl {
	return &ServiceImpl{records: records, goals: goals, studies: studies, clock: clock, cfg: cfg}
}

func (s *ServiceImpl) GetMonthly(ctx context.Context, month worklog.YearMonth) (MonthlyStatistics, error) {
	data, err := s.loadMonth(ctx, month)
	if err != nil {
		return MonthlyStatistics{}, err
	}
	return AggregateMonth(month, data.Records, data.GoalHours), nil
}

func (s *ServiceImpl) GetHistorical(ctx context.Context, monthCount int, endingAt worklog.YearMonth) ([]MonthlyStatistics, error) {
	maxMonths := s.maxHistoryMonths()
	if monthCount <= 0 {
		monthCount = min(s.cfg.HistoryMonths, maxMonths)
	}
	if monthCount > maxMonths {
		return nil, fmt.Errorf("%w: %d months requested, at most %d allowed", ErrHistoryTooLong, monthCount, maxMonths)
	}
	if endingAt.IsZero() {
		current, err := s.CurrentMonth(ctx)
		if err != nil {
			return nil, err
		}
		endingAt = current
	}

	var mu sync.Mutex
	data := make(map[worklog.YearMonth]MonthData, monthCount)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.cfg.LoadConcurrency, 1))
	for i := 0; i < monthCount; i++ {
		month := endingAt.AddMonths(-i)
		g.Go(func() error {
			monthData, err := s.loadMonth(gctx, month)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				log.Warnf("failed to load %s, reporting it as empty: %v", month, err)
				return nil
			}
			mu.Lock()
			data[month] = monthData
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return AggregateHistorical(monthCount, endingAt, data), nil
}

// MaxHistoryMonths is the longest window GetHistorical accepts.
func (s *ServiceImpl) MaxHistoryMonths() int {
	return s.maxHistoryMonths()
}

func (s *ServiceImpl) maxHistoryMonths() int {
	if s.cfg.MaxHistoryMonths <= 0 {
		return defaultMaxHistoryMonths
	}
	return s.cfg.MaxHistoryMonths
}

func (s *ServiceImpl) GetCalendar(ctx context.Context, month worklog.YearMonth) ([]CalendarEntry, error) {
	records, err := s.records.GetMonth(ctx, month)
	if err != nil {
		return nil, err
	}
	return CalendarEntries(month, records), nil
}

func (s *ServiceImpl) GetReport(ctx context.Context, month worklog.YearMonth) (MonthlyReport, StudyNames, error) {
	data, err := s.loadMonth(ctx, month)
	if err != nil {
		return MonthlyReport{}, nil, err
	}
	names, err := s.studies.StudyNames(ctx)
	if err != nil {
		return MonthlyReport{}, nil, err
	}
	return BuildReport(month, data), names, nil
}

// CurrentMonth is the month of today in the current user's timezone.
func (s *ServiceImpl) CurrentMonth(ctx context.Context) (worklog.YearMonth, error) {
	currentUser, err := user.CurrentUser(ctx)
	if err != nil {
		return worklog.YearMonth{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return worklog.YearMonthOf(utils.Today(s.clock, currentUser.Settings.Location())), nil
}

func (s *ServiceImpl) loadMonth(ctx context.Context, month worklog.YearMonth) (MonthData, error) {
	records, err := s.records.GetMonth(ctx, month)
	if err != nil {
		return MonthData{}, fmt.Errorf("failed to load records of %s: %w", month, err)
	}
	monthlyGoal, err := s.goals.GetGoal(ctx, month)
	if err != nil {
		return MonthData{}, fmt.Errorf("failed to load goal of %s: %w", month, err)
	}
	return MonthData{Records: records, GoalHours: monthlyGoal.HoursOrZero()}, nil
}

package goal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/grafytimes/grafytimes/internal/utils"
	"github.com/grafytimes/grafytimes/pkg/user"
	"github.com/grafytimes/grafytimes/pkg/worklog"
	log "github.com/sirupsen/logrus"
)

// Reader gives read access to the goal in effect for a month.
type Reader interface {
	GetGoal(ctx context.Context, month worklog.YearMonth) (MonthlyGoal, error)
}

type Service interface {
	Reader
	SaveGoal(ctx context.Context, month worklog.YearMonth, raw string) (MonthlyGoal, error)
	// GetProgress evaluates the goal of date's month as of date. A zero date means today in
	// the user's timezone.
	GetProgress(ctx context.Context, date time.Time) (DailyProgress, error)
}

// DailyProgress is the progress of a month evaluated on a specific day.
type DailyProgress struct {
	Date        time.Time
	Goal        MonthlyGoal
	WorkedHours float64
	Progress
}

type ServiceImpl struct {
	repo    Repository
	records worklog.Reader
	clock   utils.Clock
}

func NewService(repo Repository, records worklog.Reader, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, records: records, clock: clock}
}

func (s *ServiceImpl) SaveGoal(ctx context.Context, month worklog.YearMonth, raw string) (MonthlyGoal, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return MonthlyGoal{}, fmt.Errorf("failed to get current user: %w", err)
	}
	raw = strings.TrimSpace(raw)
	parsed := ParseGoal(raw)
	if raw != "" && !parsed.Valid {
		log.Warnf("storing unusable goal %q for %s, it will be treated as not set", raw, month)
	}
	if err := s.repo.Save(ctx, userId, month, raw); err != nil {
		return MonthlyGoal{}, err
	}
	return MonthlyGoal{YearMonth: month, Raw: raw, Goal: parsed}, nil
}

func (s *ServiceImpl) GetGoal(ctx context.Context, month worklog.YearMonth) (MonthlyGoal, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return MonthlyGoal{}, fmt.Errorf("failed to get current user: %w", err)
	}
	raw, _, err := s.repo.Get(ctx, userId, month)
	if err != nil {
		return MonthlyGoal{}, err
	}
	return MonthlyGoal{YearMonth: month, Raw: raw, Goal: ParseGoal(raw)}, nil
}

func (s *ServiceImpl) GetProgress(ctx context.Context, date time.Time) (DailyProgress, error) {
	currentUser, err := user.CurrentUser(ctx)
	if err != nil {
		return DailyProgress{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if date.IsZero() {
		date = utils.Today(s.clock, currentUser.Settings.Location())
	} else {
		date = utils.DateOf(date)
	}
	month := worklog.YearMonthOf(date)

	monthlyGoal, err := s.GetGoal(ctx, month)
	if err != nil {
		return DailyProgress{}, err
	}
	records, err := s.records.GetMonth(ctx, month)
	if err != nil {
		return DailyProgress{}, err
	}
	worked := worklog.TotalHours(records)

	return DailyProgress{
		Date:        date,
		Goal:        monthlyGoal,
		WorkedHours: worked,
		Progress: Evaluate(ProgressInput{
			Goal:        monthlyGoal.Goal,
			WorkedHours: worked,
			Today:       date,
			DaysInMonth: month.DaysIn(),
		}),
	}, nil
}

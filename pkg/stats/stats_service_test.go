package stats

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/grafytimes/grafytimes/internal/config"
	"github.com/grafytimes/grafytimes/internal/utils"
	"github.com/grafytimes/grafytimes/pkg/goal"
	"github.com/grafytimes/grafytimes/pkg/user"
	"github.com/grafytimes/grafytimes/pkg/worklog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = user.WithUser(context.Background(), user.User{Id: 1, Settings: user.Settings{Timezone: "UTC"}})

type recordsStub struct {
	mu      sync.Mutex
	byMonth map[worklog.YearMonth][]worklog.WorkRecord
	failing map[worklog.YearMonth]bool
	calls   int
}

func (r *recordsStub) GetMonth(ctx context.Context, month worklog.YearMonth) ([]worklog.WorkRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.failing[month] {
		return nil, errors.New("connection reset")
	}
	return r.byMonth[month], nil
}

type goalsStub map[worklog.YearMonth]string

func (g goalsStub) GetGoal(ctx context.Context, month worklog.YearMonth) (goal.MonthlyGoal, error) {
	raw := g[month]
	return goal.MonthlyGoal{YearMonth: month, Raw: raw, Goal: goal.ParseGoal(raw)}, nil
}

type studiesStub StudyNames

func (s studiesStub) StudyNames(ctx context.Context) (StudyNames, error) {
	return StudyNames(s), nil
}

func setupService(t *testing.T, records *recordsStub, goals goalsStub) *ServiceImpl {
	clock := &utils.MockClock{FixedNow: time.Date(2024, 6, 20, 10, 0, 0, 0, time.UTC)}
	return NewService(records, goals, studiesStub{"s1": "Maria"}, clock, config.Stats{HistoryMonths: 4, MaxHistoryMonths: 12, LoadConcurrency: 2})
}

func TestServiceImpl_GetMonthly(t *testing.T) {
	// given
	records := &recordsStub{byMonth: map[worklog.YearMonth][]worklog.WorkRecord{
		may2024: {
			{Date: mayDay(1), Hours: 2, ActivityType: "A"},
			{Date: mayDay(2), Hours: 3, ActivityType: "A", StudyId: "s1"},
		},
	}}
	service := setupService(t, records, goalsStub{may2024: "10"})

	// when
	stats, err := service.GetMonthly(ctx, may2024)

	// then
	require.NoError(t, err)
	assert.Equal(t, 5.0, stats.TotalHours)
	assert.Equal(t, 50.0, stats.GoalPercentage)
	assert.Equal(t, 1, stats.DistinctStudyCount)
}

func TestServiceImpl_GetMonthly_UnparseableGoal(t *testing.T) {
	records := &recordsStub{byMonth: map[worklog.YearMonth][]worklog.WorkRecord{
		may2024: {{Date: mayDay(1), Hours: 2}},
	}}
	service := setupService(t, records, goalsStub{may2024: "a lot"})

	stats, err := service.GetMonthly(ctx, may2024)

	require.NoError(t, err)
	assert.Equal(t, 0.0, stats.GoalHours)
	assert.Equal(t, 0.0, stats.GoalPercentage)
}

func TestServiceImpl_GetHistorical(t *testing.T) {
	june := worklog.YearMonth{Year: 2024, Month: time.June}

	t.Run("should return months newest first and zero a failing month", func(t *testing.T) {
		// given
		records := &recordsStub{
			byMonth: map[worklog.YearMonth][]worklog.WorkRecord{
				june:              {{Date: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), Hours: 4}},
				june.AddMonths(-2): {{Date: time.Date(2024, 4, 3, 0, 0, 0, 0, time.UTC), Hours: 6}},
			},
			failing: map[worklog.YearMonth]bool{june.AddMonths(-1): true},
		}
		service := setupService(t, records, goalsStub{})

		// when
		history, err := service.GetHistorical(ctx, 3, june)

		// then
		require.NoError(t, err)
		require.Len(t, history, 3)
		assert.Equal(t, june, history[0].YearMonth)
		assert.Equal(t, 4.0, history[0].TotalHours)
		assert.Equal(t, june.AddMonths(-1), history[1].YearMonth)
		assert.Equal(t, 0.0, history[1].TotalHours)
		assert.Equal(t, 6.0, history[2].TotalHours)
		assert.Equal(t, 3, records.calls)
	})

	t.Run("should refuse a window above the maximum without loading anything", func(t *testing.T) {
		// given
		records := &recordsStub{}
		service := setupService(t, records, goalsStub{})

		// when
		history, err := service.GetHistorical(ctx, 13, june)

		// then
		assert.ErrorIs(t, err, ErrHistoryTooLong)
		assert.Nil(t, history)
		assert.Equal(t, 0, records.calls)
		assert.Equal(t, 12, service.MaxHistoryMonths())
	})

	t.Run("should default to configured window ending at current month", func(t *testing.T) {
		service := setupService(t, &recordsStub{}, goalsStub{})

		history, err := service.GetHistorical(ctx, 0, worklog.YearMonth{})

		require.NoError(t, err)
		require.Len(t, history, 4)
		assert.Equal(t, june, history[0].YearMonth)
		assert.Equal(t, worklog.YearMonth{Year: 2024, Month: time.March}, history[3].YearMonth)
	})

	t.Run("should stop on cancelled context", func(t *testing.T) {
		records := &recordsStub{failing: map[worklog.YearMonth]bool{june: true}}
		service := setupService(t, records, goalsStub{})
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := service.GetHistorical(cancelled, 2, june)

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestServiceImpl_GetReport(t *testing.T) {
	// given
	records := &recordsStub{byMonth: map[worklog.YearMonth][]worklog.WorkRecord{
		may2024: {
			{Date: mayDay(2), Hours: 1},
			{Date: mayDay(2), Hours: 2, StudyId: "s1"},
		},
	}}
	service := setupService(t, records, goalsStub{may2024: "20"})

	// when
	report, names, err := service.GetReport(ctx, may2024)

	// then
	require.NoError(t, err)
	assert.Equal(t, 15.0, report.Statistics.GoalPercentage)
	assert.Len(t, report.Entries, 2)
	name, ok := names.StudyName("s1")
	assert.True(t, ok)
	assert.Equal(t, "Maria", name)
}

func TestServiceImpl_CurrentMonth(t *testing.T) {
	service := setupService(t, &recordsStub{}, goalsStub{})

	month, err := service.CurrentMonth(ctx)
	require.NoError(t, err)
	assert.Equal(t, worklog.YearMonth{Year: 2024, Month: time.June}, month)

	_, err = service.CurrentMonth(context.Background())
	assert.ErrorIs(t, err, user.ErrNoUser)
}

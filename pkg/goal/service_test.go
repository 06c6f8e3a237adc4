package goal

import (
	"context"
	"testing"
	"time"

	"github.com/grafytimes/grafytimes/internal/event_bus"
	"github.com/grafytimes/grafytimes/internal/utils"
	"github.com/grafytimes/grafytimes/pkg/user"
	"github.com/grafytimes/grafytimes/pkg/worklog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = user.WithUser(context.Background(), user.User{Id: 1, Settings: user.Settings{Timezone: "America/Lima"}})

var june = worklog.YearMonth{Year: 2024, Month: time.June}

type fixture struct {
	service *ServiceImpl
	records *worklog.ServiceImpl
	clock   *utils.MockClock
}

func setup(t *testing.T) fixture {
	records := worklog.NewService(worklog.NewStubRepository(), event_bus.NewEventBus())
	clock := &utils.MockClock{FixedNow: time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)}
	return fixture{
		service: NewService(NewStubRepository(), records, clock),
		records: records,
		clock:   clock,
	}
}

func TestServiceImpl_SaveAndGetGoal(t *testing.T) {
	t.Run("should fall back to the latest earlier goal", func(t *testing.T) {
		f := setup(t)
		_, err := f.service.SaveGoal(ctx, june.AddMonths(-2), "50")
		require.NoError(t, err)

		// when
		got, err := f.service.GetGoal(ctx, june)

		// then
		require.NoError(t, err)
		assert.Equal(t, june, got.YearMonth)
		assert.Equal(t, "50", got.Raw)
		assert.Equal(t, Goal{Hours: 50, Valid: true}, got.Goal)
	})

	t.Run("should not use goals of later months", func(t *testing.T) {
		f := setup(t)
		_, err := f.service.SaveGoal(ctx, june.AddMonths(1), "50")
		require.NoError(t, err)

		got, err := f.service.GetGoal(ctx, june)

		require.NoError(t, err)
		assert.False(t, got.Goal.Valid)
		assert.Equal(t, 0.0, got.HoursOrZero())
	})

	t.Run("should keep unparseable goal as not set", func(t *testing.T) {
		f := setup(t)

		saved, err := f.service.SaveGoal(ctx, june, " lots ")

		require.NoError(t, err)
		assert.Equal(t, "lots", saved.Raw)
		assert.False(t, saved.Goal.Valid)
	})

	t.Run("should clear goal with blank value", func(t *testing.T) {
		f := setup(t)
		_, err := f.service.SaveGoal(ctx, june.AddMonths(-1), "50")
		require.NoError(t, err)
		_, err = f.service.SaveGoal(ctx, june, "")
		require.NoError(t, err)

		got, err := f.service.GetGoal(ctx, june)

		require.NoError(t, err)
		assert.False(t, got.Goal.Valid)
	})
}

func TestServiceImpl_GetProgress(t *testing.T) {
	t.Run("should evaluate given date", func(t *testing.T) {
		// given
		f := setup(t)
		_, err := f.service.SaveGoal(ctx, june, "70")
		require.NoError(t, err)
		for _, hours := range []float64{8, 12} {
			_, err := f.records.SaveRecord(ctx, worklog.WorkRecord{Date: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), Hours: hours})
			require.NoError(t, err)
		}
		_, err = f.records.SaveRecord(ctx, worklog.WorkRecord{Date: time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC), Hours: 30})
		require.NoError(t, err)

		// when
		progress, err := f.service.GetProgress(ctx, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))

		// then
		require.NoError(t, err)
		assert.Equal(t, 20.0, progress.WorkedHours)
		assert.Equal(t, Behind, progress.Status)
		assert.Equal(t, 3.2, progress.DailyRequired)
		assert.Equal(t, 16, progress.RemainingDays)
	})

	t.Run("should use today in the user's timezone", func(t *testing.T) {
		// given
		f := setup(t)
		f.clock.SetNow(time.Date(2024, 7, 1, 3, 0, 0, 0, time.UTC))
		_, err := f.service.SaveGoal(ctx, june, "30")
		require.NoError(t, err)

		// when
		progress, err := f.service.GetProgress(ctx, time.Time{})

		// then
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), progress.Date)
		assert.Equal(t, june, progress.Goal.YearMonth)
		assert.Equal(t, Behind, progress.Status)
		assert.Equal(t, 30.0, progress.DailyRequired)
	})

	t.Run("should report not set without goal", func(t *testing.T) {
		f := setup(t)

		progress, err := f.service.GetProgress(ctx, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))

		require.NoError(t, err)
		assert.Equal(t, NotSet, progress.Status)
	})

	t.Run("should fail without user", func(t *testing.T) {
		f := setup(t)

		_, err := f.service.GetProgress(context.Background(), time.Time{})

		assert.ErrorIs(t, err, user.ErrNoUser)
	})
}

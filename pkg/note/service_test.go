package note

import (
	"context"
	"testing"
	"time"

	"github.com/grafytimes/grafytimes/internal/utils"
	"github.com/grafytimes/grafytimes/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = user.WithUser(context.Background(), user.User{Id: 1})

var created = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*ServiceImpl, *utils.MockClock) {
	clock := &utils.MockClock{FixedNow: created}
	return NewService(NewStubRepository(), clock), clock
}

func TestServiceImpl_Save(t *testing.T) {
	t.Run("should stamp timestamps", func(t *testing.T) {
		// given
		service, clock := setup(t)
		saved, err := service.Save(ctx, Note{Title: " Return visit ", Content: "Bring the brochure", ActivityType: "Preaching"})
		require.NoError(t, err)

		// when
		updated := created.Add(3 * time.Hour)
		clock.SetNow(updated)
		saved.Content = "Brochure delivered"
		resaved, err := service.Save(ctx, saved)

		// then
		require.NoError(t, err)
		assert.Equal(t, "Return visit", resaved.Title)
		assert.Equal(t, created, resaved.CreatedAt)
		assert.Equal(t, updated, resaved.UpdatedAt)
		assert.Equal(t, saved.Id, resaved.Id)
	})

	t.Run("should reject empty note", func(t *testing.T) {
		service, _ := setup(t)

		_, err := service.Save(ctx, Note{Title: "  ", ActivityType: "Preaching"})

		assert.ErrorIs(t, err, ErrInvalidNote)
	})

	t.Run("should reject malformed id", func(t *testing.T) {
		service, _ := setup(t)

		_, err := service.Save(ctx, Note{Id: "abc", Title: "x"})

		assert.ErrorIs(t, err, ErrInvalidNote)
	})

	t.Run("should require user", func(t *testing.T) {
		service, _ := setup(t)

		_, err := service.Save(context.Background(), Note{Title: "x"})

		assert.ErrorIs(t, err, user.ErrNoUser)
	})
}

func TestServiceImpl_List(t *testing.T) {
	// given
	service, clock := setup(t)
	_, err := service.Save(ctx, Note{Title: "first", ActivityType: "Preaching"})
	require.NoError(t, err)
	clock.SetNow(created.Add(time.Hour))
	_, err = service.Save(ctx, Note{Title: "second", ActivityType: "Cart"})
	require.NoError(t, err)
	clock.SetNow(created.Add(2 * time.Hour))
	_, err = service.Save(ctx, Note{Title: "third", ActivityType: "Preaching"})
	require.NoError(t, err)

	// when
	all, err := service.List(ctx, "")
	require.NoError(t, err)
	preaching, err := service.List(ctx, " Preaching ")
	require.NoError(t, err)

	// then
	require.Len(t, all, 3)
	assert.Equal(t, "third", all[0].Title)
	assert.Equal(t, "first", all[2].Title)
	require.Len(t, preaching, 2)
	assert.Equal(t, "third", preaching[0].Title)
	assert.Equal(t, "first", preaching[1].Title)
}

func TestServiceImpl_Delete(t *testing.T) {
	service, _ := setup(t)
	saved, err := service.Save(ctx, Note{Title: "x"})
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, saved.Id))
	assert.ErrorIs(t, service.Delete(ctx, saved.Id), ErrNoteNotFound)
	assert.ErrorIs(t, service.Delete(ctx, "not-a-uuid"), ErrNoteNotFound)
}

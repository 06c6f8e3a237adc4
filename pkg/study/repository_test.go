package study_test

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/grafytimes/grafytimes/internal/test_utils"
	"github.com/grafytimes/grafytimes/pkg/study"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var db *pgxpool.Pool

func TestMain(m *testing.M) {
	flag.Parse()
	cleanup := func() {}
	if !testing.Short() {
		db, cleanup = test_utils.TestWithDB()
	}
	code := m.Run()
	cleanup()
	os.Exit(code)
}

func TestRepositoryImpl_UpsertAndList(t *testing.T) {
	test_utils.RequireDB(t, db)

	// given
	ctx, u := test_utils.CreateTestUser(t, db)
	repo := study.NewRepository(db)
	createdAt := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	maria := study.BibleStudy{Id: uuid.NewString(), Name: "Maria", CreatedAt: createdAt, IsActive: true}
	juan := study.BibleStudy{Id: uuid.NewString(), Name: "Juan", CreatedAt: createdAt, IsActive: false}

	// when
	_, err := repo.Upsert(ctx, u.Id, maria)
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, u.Id, juan)
	require.NoError(t, err)
	maria.ContactInfo = "Calle 1"
	maria.CreatedAt = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	updated, err := repo.Upsert(ctx, u.Id, maria)
	require.NoError(t, err)

	// then
	assert.True(t, createdAt.Equal(updated.CreatedAt))
	studies, err := repo.List(ctx, u.Id)
	require.NoError(t, err)
	require.Len(t, studies, 2)
	assert.Equal(t, "Maria", studies[0].Name)
	assert.Equal(t, "Calle 1", studies[0].ContactInfo)
	assert.Equal(t, "Juan", studies[1].Name)
}

func TestRepositoryImpl_AdvanceLastVisit(t *testing.T) {
	test_utils.RequireDB(t, db)

	// given
	ctx, u := test_utils.CreateTestUser(t, db)
	repo := study.NewRepository(db)
	maria := study.BibleStudy{Id: uuid.NewString(), Name: "Maria", CreatedAt: time.Now(), IsActive: true}
	_, err := repo.Upsert(ctx, u.Id, maria)
	require.NoError(t, err)

	// when
	first, err := repo.AdvanceLastVisit(ctx, u.Id, maria.Id, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	earlier, err := repo.AdvanceLastVisit(ctx, u.Id, maria.Id, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	// then
	assert.True(t, first)
	assert.False(t, earlier)
	stored, err := repo.Get(ctx, u.Id, maria.Id)
	require.NoError(t, err)
	require.NotNil(t, stored.LastVisitDate)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), *stored.LastVisitDate)
}

func TestRepositoryImpl_Delete(t *testing.T) {
	test_utils.RequireDB(t, db)

	ctx, u := test_utils.CreateTestUser(t, db)
	repo := study.NewRepository(db)
	maria := study.BibleStudy{Id: uuid.NewString(), Name: "Maria", CreatedAt: time.Now(), IsActive: true}
	_, err := repo.Upsert(ctx, u.Id, maria)
	require.NoError(t, err)

	deleted, err := repo.Delete(ctx, u.Id, maria.Id)
	require.NoError(t, err)
	assert.True(t, deleted)
	_, err = repo.Get(ctx, u.Id, maria.Id)
	assert.ErrorIs(t, err, study.ErrStudyNotFound)
}

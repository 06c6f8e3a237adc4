package goal_test

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/grafytimes/grafytimes/internal/test_utils"
	"github.com/grafytimes/grafytimes/pkg/goal"
	"github.com/grafytimes/grafytimes/pkg/worklog"
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

func TestRepositoryImpl_SaveAndGet(t *testing.T) {
	test_utils.RequireDB(t, db)

	// given
	ctx, u := test_utils.CreateTestUser(t, db)
	repo := goal.NewRepository(db)
	march := worklog.YearMonth{Year: 2024, Month: time.March}
	require.NoError(t, repo.Save(ctx, u.Id, march, "40"))
	require.NoError(t, repo.Save(ctx, u.Id, march.AddMonths(2), "50"))
	require.NoError(t, repo.Save(ctx, u.Id, march.AddMonths(2), "55"))

	// when
	before, foundBefore, err := repo.Get(ctx, u.Id, march.AddMonths(-1))
	require.NoError(t, err)
	april, _, err := repo.Get(ctx, u.Id, march.AddMonths(1))
	require.NoError(t, err)
	may, _, err := repo.Get(ctx, u.Id, march.AddMonths(2))
	require.NoError(t, err)
	december, _, err := repo.Get(ctx, u.Id, march.AddMonths(9))
	require.NoError(t, err)

	// then
	assert.False(t, foundBefore)
	assert.Equal(t, "", before)
	assert.Equal(t, "40", april)
	assert.Equal(t, "55", may)
	assert.Equal(t, "55", december)
}

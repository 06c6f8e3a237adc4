package test_utils

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/grafytimes/grafytimes/pkg/user"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// CreateTestUser inserts a fresh user so that rows referencing users(id) can be stored.
// The returned context carries that user.
func CreateTestUser(t *testing.T, db *pgxpool.Pool) (context.Context, user.User) {
	t.Helper()
	ctx := context.Background()
	u := user.User{
		Uid:         uuid.NewString(),
		Username:    "test_" + uuid.NewString(),
		DisplayName: "Test User",
		Settings: user.Settings{
			Timezone:         "Europe/Madrid",
			ServicePrivilege: user.RegularPioneer,
			Activities:       []string{"Preaching"},
		},
	}
	id, err := user.NewUserRepo(db).CreateUser(ctx, u)
	require.NoError(t, err)
	u.Id = id
	return user.WithUser(ctx, u), u
}

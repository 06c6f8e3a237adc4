package goal

import (
	"context"
	"errors"
	"fmt"

	"github.com/grafytimes/grafytimes/pkg/worklog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	Save(ctx context.Context, userId int, month worklog.YearMonth, value string) error
	// Get returns the value saved for the latest month not after month, and false when there is none.
	Get(ctx context.Context, userId int, month worklog.YearMonth) (string, bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Save(ctx context.Context, userId int, month worklog.YearMonth, value string) error {
	query := `INSERT INTO monthly_goal (user_id, year_month, value)
				VALUES ($1, $2, $3)
				ON CONFLICT (user_id, year_month) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	_, err := r.db.Exec(ctx, query, userId, month.String(), value)
	if err != nil {
		log.Errorf("failed to save goal for %s: %v", month, err)
		return fmt.Errorf("could not save goal: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) Get(ctx context.Context, userId int, month worklog.YearMonth) (string, bool, error) {
	query := `SELECT value FROM monthly_goal
				WHERE user_id = $1 AND year_month <= $2
				ORDER BY year_month DESC
				LIMIT 1`
	var value string
	err := r.db.QueryRow(ctx, query, userId, month.String()).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		log.Errorf("failed to get goal for %s: %v", month, err)
		return "", false, fmt.Errorf("could not get goal: %w", err)
	}
	return value, true, nil
}

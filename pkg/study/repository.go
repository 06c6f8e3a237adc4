package study

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	Upsert(ctx context.Context, userId int, study BibleStudy) (BibleStudy, error)
	Get(ctx context.Context, userId int, id string) (BibleStudy, error)
	List(ctx context.Context, userId int) ([]BibleStudy, error)
	Delete(ctx context.Context, userId int, id string) (bool, error)
	// AdvanceLastVisit sets the last visit date unless a later one is already stored.
	AdvanceLastVisit(ctx context.Context, userId int, id string, date time.Time) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const selectStudy = `SELECT id, name, contact_info, created_at, last_visit_date, is_active FROM bible_study`

func (r *RepositoryImpl) Upsert(ctx context.Context, userId int, study BibleStudy) (BibleStudy, error) {
	query := `INSERT INTO bible_study (id, user_id, name, contact_info, created_at, last_visit_date, is_active)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				ON CONFLICT (id) DO UPDATE SET
					name = EXCLUDED.name,
					contact_info = EXCLUDED.contact_info,
					last_visit_date = EXCLUDED.last_visit_date,
					is_active = EXCLUDED.is_active
				WHERE bible_study.user_id = EXCLUDED.user_id
				RETURNING created_at`
	err := r.db.QueryRow(ctx, query,
		study.Id,
		userId,
		study.Name,
		study.ContactInfo,
		study.CreatedAt,
		study.LastVisitDate,
		study.IsActive,
	).Scan(&study.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return BibleStudy{}, ErrStudyNotFound
	}
	if err != nil {
		log.Errorf("failed to upsert bible study %s: %v", study.Id, err)
		return BibleStudy{}, fmt.Errorf("could not store bible study: %w", err)
	}
	return study, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, userId int, id string) (BibleStudy, error) {
	row := r.db.QueryRow(ctx, selectStudy+` WHERE id = $1 AND user_id = $2`, id, userId)
	study, err := scanStudy(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return BibleStudy{}, ErrStudyNotFound
	}
	if err != nil {
		log.Errorf("failed to get bible study %s: %v", id, err)
		return BibleStudy{}, err
	}
	return study, nil
}

func (r *RepositoryImpl) List(ctx context.Context, userId int) ([]BibleStudy, error) {
	rows, err := r.db.Query(ctx, selectStudy+` WHERE user_id = $1 ORDER BY is_active DESC, name, created_at`, userId)
	if err != nil {
		log.Errorf("failed to list bible studies: %v", err)
		return nil, fmt.Errorf("could not list bible studies: %w", err)
	}
	defer rows.Close()

	studies := make([]BibleStudy, 0)
	for rows.Next() {
		study, err := scanStudy(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan bible study: %w", err)
		}
		studies = append(studies, study)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return studies, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, userId int, id string) (bool, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM bible_study WHERE id = $1 AND user_id = $2`, id, userId)
	if err != nil {
		log.Errorf("failed to delete bible study %s: %v", id, err)
		return false, fmt.Errorf("could not delete bible study: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

func (r *RepositoryImpl) AdvanceLastVisit(ctx context.Context, userId int, id string, date time.Time) (bool, error) {
	query := `UPDATE bible_study SET last_visit_date = $3
				WHERE id = $1 AND user_id = $2 AND (last_visit_date IS NULL OR last_visit_date < $3)`
	result, err := r.db.Exec(ctx, query, id, userId, date)
	if err != nil {
		log.Errorf("failed to update last visit of bible study %s: %v", id, err)
		return false, fmt.Errorf("could not update bible study: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

func scanStudy(row pgx.Row) (BibleStudy, error) {
	var study BibleStudy
	err := row.Scan(
		&study.Id,
		&study.Name,
		&study.ContactInfo,
		&study.CreatedAt,
		&study.LastVisitDate,
		&study.IsActive,
	)
	return study, err
}

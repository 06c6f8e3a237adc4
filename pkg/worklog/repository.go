package worklog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	Upsert(ctx context.Context, userId int, record WorkRecord) (WorkRecord, error)
	Delete(ctx context.Context, userId int, id string) (bool, error)
	ListByMonth(ctx context.Context, userId int, month YearMonth) ([]WorkRecord, error)
	ListAll(ctx context.Context, userId int) ([]WorkRecord, error)
	DeleteByStudy(ctx context.Context, userId int, studyId string) (int, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

// Upsert stores the record under its id. An existing record keeps its original position.
func (r *RepositoryImpl) Upsert(ctx context.Context, userId int, record WorkRecord) (WorkRecord, error) {
	query := `INSERT INTO work_record (id, user_id, record_date, hours, activity_type, study_id)
				VALUES ($1, $2, $3, $4, $5, $6)
				ON CONFLICT (id) DO UPDATE SET
					record_date = EXCLUDED.record_date,
					hours = EXCLUDED.hours,
					activity_type = EXCLUDED.activity_type,
					study_id = EXCLUDED.study_id
				WHERE work_record.user_id = EXCLUDED.user_id
				RETURNING id`

	var id string
	err := r.db.QueryRow(ctx, query,
		record.Id,
		userId,
		record.Date,
		record.Hours,
		record.ActivityType,
		record.StudyId,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return WorkRecord{}, ErrRecordNotFound
	}
	if err != nil {
		log.Errorf("failed to upsert work record %s: %v", record.Id, err)
		return WorkRecord{}, fmt.Errorf("could not store work record: %w", err)
	}
	record.Id = id
	return record, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, userId int, id string) (bool, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM work_record WHERE id = $1 AND user_id = $2`, id, userId)
	if err != nil {
		log.Errorf("failed to delete work record %s: %v", id, err)
		return false, fmt.Errorf("could not delete work record: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

func (r *RepositoryImpl) ListByMonth(ctx context.Context, userId int, month YearMonth) ([]WorkRecord, error) {
	query := `SELECT id, record_date, hours, activity_type, study_id FROM work_record
				WHERE user_id = $1 AND record_date >= $2 AND record_date <= $3
				ORDER BY seq`
	return r.list(ctx, query, userId, month.FirstDay(), month.LastDay())
}

func (r *RepositoryImpl) ListAll(ctx context.Context, userId int) ([]WorkRecord, error) {
	query := `SELECT id, record_date, hours, activity_type, study_id FROM work_record
				WHERE user_id = $1
				ORDER BY seq`
	return r.list(ctx, query, userId)
}

func (r *RepositoryImpl) list(ctx context.Context, query string, args ...any) ([]WorkRecord, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Errorf("failed to query work records: %v", err)
		return nil, fmt.Errorf("could not list work records: %w", err)
	}
	defer rows.Close()

	records := make([]WorkRecord, 0)
	for rows.Next() {
		var record WorkRecord
		err := rows.Scan(&record.Id, &record.Date, &record.Hours, &record.ActivityType, &record.StudyId)
		if err != nil {
			return nil, fmt.Errorf("could not scan work record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *RepositoryImpl) DeleteByStudy(ctx context.Context, userId int, studyId string) (int, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM work_record WHERE user_id = $1 AND study_id = $2`, userId, studyId)
	if err != nil {
		log.Errorf("failed to delete work records of study %s: %v", studyId, err)
		return 0, fmt.Errorf("could not delete work records: %w", err)
	}
	return int(result.RowsAffected()), nil
}

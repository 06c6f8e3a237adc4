package note

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	Upsert(ctx context.Context, userId int, note Note) (Note, error)
	// List returns notes most recently updated first. A blank activityType matches every note.
	List(ctx context.Context, userId int, activityType string) ([]Note, error)
	Delete(ctx context.Context, userId int, id string) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Upsert(ctx context.Context, userId int, note Note) (Note, error) {
	query := `INSERT INTO note (id, user_id, title, content, activity_type, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				ON CONFLICT (id) DO UPDATE SET
					title = EXCLUDED.title,
					content = EXCLUDED.content,
					activity_type = EXCLUDED.activity_type,
					updated_at = EXCLUDED.updated_at
				WHERE note.user_id = EXCLUDED.user_id
				RETURNING created_at, updated_at`
	err := r.db.QueryRow(ctx, query,
		note.Id,
		userId,
		note.Title,
		note.Content,
		note.ActivityType,
		note.CreatedAt,
		note.UpdatedAt,
	).Scan(&note.CreatedAt, &note.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Note{}, ErrNoteNotFound
	}
	if err != nil {
		log.Errorf("failed to upsert note %s: %v", note.Id, err)
		return Note{}, fmt.Errorf("could not store note: %w", err)
	}
	return note, nil
}

func (r *RepositoryImpl) List(ctx context.Context, userId int, activityType string) ([]Note, error) {
	query := `SELECT id, title, content, activity_type, created_at, updated_at FROM note
				WHERE user_id = $1 AND ($2::text = '' OR activity_type = $2)
				ORDER BY updated_at DESC, created_at DESC`
	rows, err := r.db.Query(ctx, query, userId, activityType)
	if err != nil {
		log.Errorf("failed to list notes: %v", err)
		return nil, fmt.Errorf("could not list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]Note, 0)
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.Id, &n.Title, &n.Content, &n.ActivityType, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("could not scan note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, userId int, id string) (bool, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM note WHERE id = $1 AND user_id = $2`, id, userId)
	if err != nil {
		log.Errorf("failed to delete note %s: %v", id, err)
		return false, fmt.Errorf("could not delete note: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"finsight/internal/domain"
	"finsight/internal/port"
)

type noteRepo struct {
	db *sqlx.DB
}

// NewNoteRepo creates a new PostgreSQL-backed NoteRepository.
func NewNoteRepo(db *sqlx.DB) port.NoteRepository {
	return &noteRepo{db: db}
}

func (r *noteRepo) Create(ctx context.Context, note *domain.Note) error {
	query := `INSERT INTO notes (id, author, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query,
		note.ID, note.Author, note.Content, note.CreatedAt, note.UpdatedAt)
	if err != nil {
		return fmt.Errorf("noteRepo.Create: %w", err)
	}
	return nil
}

func (r *noteRepo) List(ctx context.Context, offset, limit int) ([]domain.Note, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM notes"); err != nil {
		return nil, 0, fmt.Errorf("noteRepo.List count: %w", err)
	}

	var notes []domain.Note
	err := r.db.SelectContext(ctx, &notes,
		`SELECT * FROM notes ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("noteRepo.List: %w", err)
	}
	return notes, total, nil
}

// Update rewrites the note content and fills the passed struct with the
// complete stored row, so callers get author and creation time back too.
func (r *noteRepo) Update(ctx context.Context, note *domain.Note) error {
	query := `UPDATE notes SET content = $1, updated_at = $2 WHERE id = $3
		RETURNING id, author, content, created_at, updated_at`

	err := r.db.GetContext(ctx, note, query, note.Content, note.UpdatedAt, note.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("noteRepo.Update: %w", err)
	}
	return nil
}

func (r *noteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM notes WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("noteRepo.Delete: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("noteRepo.Delete rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

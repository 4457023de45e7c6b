package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"finsight/internal/domain"
	"finsight/internal/port"
)

type archiveRepo struct {
	db *sqlx.DB
}

// NewArchiveRepo creates a new PostgreSQL-backed ArchiveRepository.
func NewArchiveRepo(db *sqlx.DB) port.ArchiveRepository {
	return &archiveRepo{db: db}
}

func (r *archiveRepo) Create(ctx context.Context, entry *domain.SavedAnalysis) error {
	query := `INSERT INTO saved_analyses (id, company, analysis, chart_data, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.Company, entry.Analysis, entry.ChartData, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("archiveRepo.Create: %w", err)
	}
	return nil
}

func (r *archiveRepo) List(ctx context.Context, offset, limit int) ([]domain.SavedAnalysis, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM saved_analyses"); err != nil {
		return nil, 0, fmt.Errorf("archiveRepo.List count: %w", err)
	}

	var entries []domain.SavedAnalysis
	err := r.db.SelectContext(ctx, &entries,
		`SELECT * FROM saved_analyses ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("archiveRepo.List: %w", err)
	}
	return entries, total, nil
}

func (r *archiveRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM saved_analyses WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("archiveRepo.Delete: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("archiveRepo.Delete rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *archiveRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM saved_analyses"); err != nil {
		return fmt.Errorf("archiveRepo.Clear: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"finsight/internal/domain"
	"finsight/internal/port"
)

type ratingRepo struct {
	db *sqlx.DB
}

// NewRatingRepo creates a new PostgreSQL-backed RatingRepository.
func NewRatingRepo(db *sqlx.DB) port.RatingRepository {
	return &ratingRepo{db: db}
}

func (r *ratingRepo) Create(ctx context.Context, rating *domain.Rating) error {
	query := `INSERT INTO ratings (id, company, score, comment, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query,
		rating.ID, rating.Company, rating.Score, rating.Comment, rating.CreatedAt)
	if err != nil {
		return fmt.Errorf("ratingRepo.Create: %w", err)
	}
	return nil
}

func (r *ratingRepo) List(ctx context.Context, offset, limit int) ([]domain.Rating, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM ratings"); err != nil {
		return nil, 0, fmt.Errorf("ratingRepo.List count: %w", err)
	}

	var ratings []domain.Rating
	err := r.db.SelectContext(ctx, &ratings,
		`SELECT * FROM ratings ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("ratingRepo.List: %w", err)
	}
	return ratings, total, nil
}

type companyAverage struct {
	Company string  `db:"company"`
	Average float64 `db:"average"`
}

func (r *ratingRepo) CompanyAverages(ctx context.Context) (map[string]float64, error) {
	var rows []companyAverage
	err := r.db.SelectContext(ctx, &rows,
		`SELECT company, AVG(score)::float8 AS average FROM ratings GROUP BY company`)
	if err != nil {
		return nil, fmt.Errorf("ratingRepo.CompanyAverages: %w", err)
	}

	averages := make(map[string]float64, len(rows))
	for _, row := range rows {
		averages[row.Company] = row.Average
	}
	return averages, nil
}

func (r *ratingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM ratings WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("ratingRepo.Delete: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("ratingRepo.Delete rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

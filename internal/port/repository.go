package port

import (
	"context"

	"github.com/google/uuid"

	"finsight/internal/domain"
)

// ArchiveRepository defines the contract for saved-analysis persistence.
type ArchiveRepository interface {
	Create(ctx context.Context, entry *domain.SavedAnalysis) error
	List(ctx context.Context, offset, limit int) ([]domain.SavedAnalysis, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Clear(ctx context.Context) error
}

// NoteRepository defines the contract for reviewer note persistence.
type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) error
	List(ctx context.Context, offset, limit int) ([]domain.Note, int, error)
	Update(ctx context.Context, note *domain.Note) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RatingRepository defines the contract for company rating persistence.
type RatingRepository interface {
	Create(ctx context.Context, rating *domain.Rating) error
	List(ctx context.Context, offset, limit int) ([]domain.Rating, int, error)
	CompanyAverages(ctx context.Context) (map[string]float64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

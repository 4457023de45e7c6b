package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"finsight/internal/domain"
	"finsight/internal/port"
)

// RatingService defines the five-point company rating contract.
type RatingService interface {
	Create(ctx context.Context, company string, score int, comment string) (*domain.Rating, error)
	List(ctx context.Context, offset, limit int) ([]domain.Rating, int, error)
	Averages(ctx context.Context) (map[string]float64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ratingService struct {
	repo port.RatingRepository
}

// NewRatingService creates a new RatingService implementation.
func NewRatingService(repo port.RatingRepository) RatingService {
	return &ratingService{repo: repo}
}

func (s *ratingService) Create(ctx context.Context, company string, score int, comment string) (*domain.Rating, error) {
	if company == "" {
		return nil, domain.ErrMissingCompany
	}
	if score < 1 || score > 5 {
		return nil, errors.New("score must be between 1 and 5")
	}
	rating := &domain.Rating{
		ID:        uuid.New(),
		Company:   company,
		Score:     score,
		Comment:   comment,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, rating); err != nil {
		return nil, err
	}
	return rating, nil
}

func (s *ratingService) List(ctx context.Context, offset, limit int) ([]domain.Rating, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, offset, limit)
}

// Averages returns the mean score per rated company.
func (s *ratingService) Averages(ctx context.Context) (map[string]float64, error) {
	return s.repo.CompanyAverages(ctx)
}

func (s *ratingService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

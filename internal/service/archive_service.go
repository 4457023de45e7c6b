package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"finsight/internal/domain"
	"finsight/internal/port"
)

// SaveAnalysisInput is the DTO for archiving an analysis.
type SaveAnalysisInput struct {
	Company   string
	Analysis  string
	ChartData json.RawMessage
}

// ArchiveService defines the saved-analysis archive contract.
type ArchiveService interface {
	Save(ctx context.Context, input SaveAnalysisInput) (*domain.SavedAnalysis, error)
	List(ctx context.Context, offset, limit int) ([]domain.SavedAnalysis, int, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Clear(ctx context.Context) error
}

type archiveService struct {
	repo port.ArchiveRepository
}

// NewArchiveService creates a new ArchiveService implementation.
func NewArchiveService(repo port.ArchiveRepository) ArchiveService {
	return &archiveService{repo: repo}
}

func (s *archiveService) Save(ctx context.Context, input SaveAnalysisInput) (*domain.SavedAnalysis, error) {
	if input.Company == "" {
		return nil, domain.ErrMissingCompany
	}
	if input.Analysis == "" {
		return nil, domain.ErrMissingDocument
	}

	entry := &domain.SavedAnalysis{
		ID:        uuid.New(),
		Company:   input.Company,
		Analysis:  input.Analysis,
		ChartData: input.ChartData,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *archiveService) List(ctx context.Context, offset, limit int) ([]domain.SavedAnalysis, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, offset, limit)
}

func (s *archiveService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *archiveService) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}

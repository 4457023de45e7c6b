package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"finsight/internal/domain"
	"finsight/internal/port"
)

// NoteService defines the reviewer notes contract.
type NoteService interface {
	Create(ctx context.Context, author, content string) (*domain.Note, error)
	List(ctx context.Context, offset, limit int) ([]domain.Note, int, error)
	Update(ctx context.Context, id uuid.UUID, content string) (*domain.Note, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type noteService struct {
	repo port.NoteRepository
}

// NewNoteService creates a new NoteService implementation.
func NewNoteService(repo port.NoteRepository) NoteService {
	return &noteService{repo: repo}
}

func (s *noteService) Create(ctx context.Context, author, content string) (*domain.Note, error) {
	if content == "" {
		return nil, errors.New("note content is required")
	}
	now := time.Now().UTC()
	note := &domain.Note{
		ID:        uuid.New(),
		Author:    author,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *noteService) List(ctx context.Context, offset, limit int) ([]domain.Note, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, offset, limit)
}

func (s *noteService) Update(ctx context.Context, id uuid.UUID, content string) (*domain.Note, error) {
	if content == "" {
		return nil, errors.New("note content is required")
	}
	note := &domain.Note{
		ID:        id,
		Content:   content,
		UpdatedAt: time.Now().UTC(),
	}
	// The repository fills the remaining fields from the stored row.
	if err := s.repo.Update(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *noteService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

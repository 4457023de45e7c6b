package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"finsight/internal/domain"
)

// MockArchiveRepo is a mock implementation of port.ArchiveRepository.
type MockArchiveRepo struct {
	mock.Mock
}

func (m *MockArchiveRepo) Create(ctx context.Context, entry *domain.SavedAnalysis) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockArchiveRepo) List(ctx context.Context, offset, limit int) ([]domain.SavedAnalysis, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.SavedAnalysis), args.Int(1), args.Error(2)
}

func (m *MockArchiveRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockArchiveRepo) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

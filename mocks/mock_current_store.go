package mocks

import (
	"github.com/stretchr/testify/mock"

	"finsight/internal/domain"
)

// MockCurrentStore is a mock implementation of port.CurrentStore.
type MockCurrentStore struct {
	mock.Mock
}

func (m *MockCurrentStore) Load(key string) (*domain.CurrentAnalysis, bool) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*domain.CurrentAnalysis), args.Bool(1)
}

func (m *MockCurrentStore) Save(key string, cur domain.CurrentAnalysis) {
	m.Called(key, cur)
}

func (m *MockCurrentStore) Clear(key string) {
	m.Called(key)
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"finsight/internal/port"
)

// MockInferenceClient is a mock implementation of port.InferenceClient.
type MockInferenceClient struct {
	mock.Mock
}

func (m *MockInferenceClient) Complete(ctx context.Context, req port.CompletionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

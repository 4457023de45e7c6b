package port

import (
	"context"

	"finsight/internal/domain"
)

// CompletionRequest carries a single outbound chat-completion call.
type CompletionRequest struct {
	SystemPrompt string
	Messages     []domain.ChatMessage
	Temperature  float64
}

// InferenceClient abstracts the remote LLM chat-completion service.
// Implementations return *domain.UpstreamError for non-2xx responses so
// callers can distinguish transient from permanent failures.
type InferenceClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

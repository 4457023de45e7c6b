package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finsight/internal/config"
	"finsight/internal/domain"
	"finsight/internal/port"
	"finsight/internal/prompt"
	"finsight/internal/report"
)

// AnalyzeInput is the DTO for one-shot analysis requests.
type AnalyzeInput struct {
	DocumentText string
	Company      string
	Language     domain.Language
}

// AnalysisService defines the one-shot document analysis contract.
type AnalysisService interface {
	Analyze(ctx context.Context, input AnalyzeInput) (*domain.AnalysisResult, error)
}

type analysisService struct {
	llm       port.InferenceClient
	analysis  *config.AnalysisConfig
	inference *config.InferenceConfig
}

// NewAnalysisService creates a new AnalysisService implementation.
func NewAnalysisService(llm port.InferenceClient, analysis *config.AnalysisConfig, inference *config.InferenceConfig) AnalysisService {
	return &analysisService{
		llm:       llm,
		analysis:  analysis,
		inference: inference,
	}
}

// Truncate hard-cuts text to at most cap runes. No summarization: the result
// is always a prefix of the input.
func Truncate(text string, cap int) string {
	if cap <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= cap {
		return text
	}
	return string(runes[:cap])
}

func (s *analysisService) Analyze(ctx context.Context, input AnalyzeInput) (*domain.AnalysisResult, error) {
	if input.DocumentText == "" {
		return nil, domain.ErrMissingDocument
	}
	if input.Company == "" {
		return nil, domain.ErrMissingCompany
	}

	lang := domain.ParseLanguage(string(input.Language), domain.Language(s.analysis.DefaultLanguage))
	truncated := Truncate(input.DocumentText, s.analysis.ContextCap)

	req := port.CompletionRequest{
		SystemPrompt: prompt.Compose(lang, domain.TaskAnalysis),
		Messages: []domain.ChatMessage{
			{
				Role:    domain.RoleUser,
				Content: fmt.Sprintf("Analyze this report for %s: %s", input.Company, truncated),
			},
		},
		Temperature: s.analysis.Temperature,
	}

	raw, err := s.complete(ctx, req)
	if err != nil {
		return nil, err
	}

	// Parse degradation is non-fatal: an empty section list still returns.
	parsed := report.Parse(raw, lang)

	return &domain.AnalysisResult{
		Sections:  parsed.Sections,
		Analysis:  parsed.CleanText,
		ChartData: parsed.ChartData,
		RawText:   input.DocumentText,
		Language:  lang,
	}, nil
}

// complete invokes the inference client, retrying transient failures up to
// the configured limit with a short backoff. Permanent upstream failures
// (4xx other than 429) are surfaced immediately.
func (s *analysisService) complete(ctx context.Context, req port.CompletionRequest) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= s.inference.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(s.inference.RetryBackoff()):
			}
		}

		raw, err := s.llm.Complete(ctx, req)
		if err == nil {
			return raw, nil
		}
		lastErr = err

		var upstream *domain.UpstreamError
		if errors.As(err, &upstream) && !upstream.Transient() {
			break
		}
	}
	return "", fmt.Errorf("analysis inference call failed: %w", lastErr)
}

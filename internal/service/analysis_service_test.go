package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"finsight/internal/config"
	"finsight/internal/domain"
	"finsight/internal/port"
	"finsight/internal/service"
	"finsight/mocks"
)

func testAnalysisConfig() config.AnalysisConfig {
	return config.AnalysisConfig{
		ContextCap:      15000,
		DefaultLanguage: "fr",
		Temperature:     0.1,
	}
}

func testInferenceConfig() config.InferenceConfig {
	return config.InferenceConfig{
		MaxRetries:     1,
		RetryBackoffMS: 1,
	}
}

func newAnalysisService(llm port.InferenceClient) service.AnalysisService {
	analysisCfg := testAnalysisConfig()
	inferenceCfg := testInferenceConfig()
	return service.NewAnalysisService(llm, &analysisCfg, &inferenceCfg)
}

func TestAnalyze_MissingDocumentText(t *testing.T) {
	llm := new(mocks.MockInferenceClient)
	svc := newAnalysisService(llm)

	_, err := svc.Analyze(context.Background(), service.AnalyzeInput{Company: "Acme"})

	assert.ErrorIs(t, err, domain.ErrMissingDocument)
	llm.AssertNotCalled(t, "Complete")
}

func TestAnalyze_MissingCompany(t *testing.T) {
	llm := new(mocks.MockInferenceClient)
	svc := newAnalysisService(llm)

	_, err := svc.Analyze(context.Background(), service.AnalyzeInput{DocumentText: "rapport"})

	assert.ErrorIs(t, err, domain.ErrMissingCompany)
	llm.AssertNotCalled(t, "Complete")
}

func TestAnalyze_Success(t *testing.T) {
	llm := new(mocks.MockInferenceClient)
	svc := newAnalysisService(llm)

	reply := "1. NATURE ET CONTEXTE\nContexte.\n[CHART_DATA]{\"years\":[2022],\"revenue\":[5],\"netIncome\":[1]}[/CHART_DATA]"
	llm.On("Complete", mock.Anything, mock.MatchedBy(func(req port.CompletionRequest) bool {
		return req.Temperature == 0.1 &&
			strings.Contains(req.SystemPrompt, "NATURE ET CONTEXTE") &&
			len(req.Messages) == 1 &&
			strings.Contains(req.Messages[0].Content, "Acme")
	})).Return(reply, nil).Once()

	result, err := svc.Analyze(context.Background(), service.AnalyzeInput{
		DocumentText: "texte du rapport",
		Company:      "Acme",
		Language:     domain.LanguageFrench,
	})

	require.NoError(t, err)
	require.Len(t, result.Sections, 1)
	assert.Equal(t, "NATURE ET CONTEXTE", result.Sections[0].Title)
	assert.NotNil(t, result.ChartData)
	assert.Equal(t, "texte du rapport", result.RawText)
	llm.AssertExpectations(t)
}

func TestAnalyze_TruncatesContextButKeepsFullRawText(t *testing.T) {
	llm := new(mocks.MockInferenceClient)
	svc := newAnalysisService(llm)

	long := strings.Repeat("x", 20000)
	llm.On("Complete", mock.Anything, mock.MatchedBy(func(req port.CompletionRequest) bool {
		return !strings.Contains(req.Messages[0].Content, strings.Repeat("x", 15001))
	})).Return("analyse", nil).Once()

	result, err := svc.Analyze(context.Background(), service.AnalyzeInput{
		DocumentText: long,
		Company:      "Acme",
	})

	require.NoError(t, err)
	assert.Equal(t, long, result.RawText)
	llm.AssertExpectations(t)
}

func TestAnalyze_RetriesTransientFailureOnce(t *testing.T) {
	llm := new(mocks.MockInferenceClient)
	svc := newAnalysisService(llm)

	llm.On("Complete", mock.Anything, mock.Anything).
		Return("", &domain.UpstreamError{Status: 503, Body: "unavailable"}).Once()
	llm.On("Complete", mock.Anything, mock.Anything).
		Return("1. CONCLUSION\nFin.", nil).Once()

	result, err := svc.Analyze(context.Background(), service.AnalyzeInput{
		DocumentText: "rapport",
		Company:      "Acme",
	})

	require.NoError(t, err)
	require.Len(t, result.Sections, 1)
	llm.AssertExpectations(t)
}

func TestAnalyze_DoesNotRetryPermanentFailure(t *testing.T) {
	llm := new(mocks.MockInferenceClient)
	svc := newAnalysisService(llm)

	llm.On("Complete", mock.Anything, mock.Anything).
		Return("", &domain.UpstreamError{Status: 401, Body: "bad key"}).Once()

	_, err := svc.Analyze(context.Background(), service.AnalyzeInput{
		DocumentText: "rapport",
		Company:      "Acme",
	})

	var upstream *domain.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, 401, upstream.Status)
	llm.AssertNumberOfCalls(t, "Complete", 1)
}

func TestAnalyze_ExhaustedRetriesSurfaceUpstreamError(t *testing.T) {
	llm := new(mocks.MockInferenceClient)
	svc := newAnalysisService(llm)

	llm.On("Complete", mock.Anything, mock.Anything).
		Return("", &domain.UpstreamError{Status: 500, Body: "boom"}).Twice()

	_, err := svc.Analyze(context.Background(), service.AnalyzeInput{
		DocumentText: "rapport",
		Company:      "Acme",
	})

	var upstream *domain.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, "boom", upstream.Body)
	llm.AssertNumberOfCalls(t, "Complete", 2)
}

func TestAnalyze_NetworkErrorIsRetried(t *testing.T) {
	llm := new(mocks.MockInferenceClient)
	svc := newAnalysisService(llm)

	llm.On("Complete", mock.Anything, mock.Anything).
		Return("", errors.New("connection refused")).Once()
	llm.On("Complete", mock.Anything, mock.Anything).
		Return("analyse", nil).Once()

	_, err := svc.Analyze(context.Background(), service.AnalyzeInput{
		DocumentText: "rapport",
		Company:      "Acme",
	})

	require.NoError(t, err)
	llm.AssertExpectations(t)
}

func TestAnalyze_ParseDegradationIsNonFatal(t *testing.T) {
	llm := new(mocks.MockInferenceClient)
	svc := newAnalysisService(llm)

	llm.On("Complete", mock.Anything, mock.Anything).
		Return("réponse sans aucune structure", nil).Once()

	result, err := svc.Analyze(context.Background(), service.AnalyzeInput{
		DocumentText: "rapport",
		Company:      "Acme",
	})

	require.NoError(t, err)
	assert.Empty(t, result.Sections)
	assert.Nil(t, result.ChartData)
	assert.Equal(t, "réponse sans aucune structure", result.Analysis)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", service.Truncate("abc", 10))
	assert.Equal(t, "abc", service.Truncate("abcdef", 3))
	assert.Equal(t, "éàü", service.Truncate("éàüxyz", 3))

	long := strings.Repeat("a", 200)
	got := service.Truncate(long, 150)
	assert.Len(t, []rune(got), 150)
	assert.True(t, strings.HasPrefix(long, got))
}

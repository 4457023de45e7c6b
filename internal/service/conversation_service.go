package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"finsight/internal/config"
	"finsight/internal/domain"
	"finsight/internal/port"
	"finsight/internal/prompt"
	"finsight/internal/report"
)

// Session is one grounded conversation over an analyzed document. Turns are
// append-only and appended strictly in causal order: the in-flight mutex
// guarantees a user turn is never interleaved with a second concurrent
// request.
type Session struct {
	ID       uuid.UUID
	Context  string
	Language domain.Language

	inFlight sync.Mutex // held for the duration of one Ask
	histMu   sync.Mutex // guards turns
	turns    []domain.ChatMessage
}

// Turns returns a copy of the session's turn history.
func (s *Session) Turns() []domain.ChatMessage {
	s.histMu.Lock()
	defer s.histMu.Unlock()
	out := make([]domain.ChatMessage, len(s.turns))
	copy(out, s.turns)
	return out
}

func (s *Session) append(turn domain.ChatMessage) {
	s.histMu.Lock()
	defer s.histMu.Unlock()
	s.turns = append(s.turns, turn)
}

// ConversationService manages grounded follow-up conversations.
type ConversationService interface {
	Begin(context string, lang domain.Language) *Session
	Get(id uuid.UUID) (*Session, error)
	Ask(ctx context.Context, id uuid.UUID, question string) (string, error)
	Reset(id uuid.UUID) error
	ChatOnce(ctx context.Context, docContext string, lang domain.Language, history []domain.ChatMessage) (string, error)
}

type conversationService struct {
	llm      port.InferenceClient
	analysis *config.AnalysisConfig
	chat     *config.ChatConfig

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewConversationService creates a new ConversationService implementation.
func NewConversationService(llm port.InferenceClient, analysis *config.AnalysisConfig, chat *config.ChatConfig) ConversationService {
	return &conversationService{
		llm:      llm,
		analysis: analysis,
		chat:     chat,
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Begin creates a fresh session bound to one document's truncated context.
func (c *conversationService) Begin(docContext string, lang domain.Language) *Session {
	sess := &Session{
		ID:       uuid.New(),
		Context:  Truncate(docContext, c.analysis.ContextCap),
		Language: domain.ParseLanguage(string(lang), domain.Language(c.analysis.DefaultLanguage)),
	}
	c.mu.Lock()
	c.sessions[sess.ID] = sess
	c.mu.Unlock()
	return sess
}

func (c *conversationService) Get(id uuid.UUID) (*Session, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	sess, ok := c.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

// Ask appends a user turn, sends the grounding prompt plus the full history,
// and appends the assistant reply. At most one request may be outstanding per
// session; a concurrent Ask fails fast without touching the history.
//
// On a remote failure the user turn is kept: the session deliberately records
// the unanswered question instead of rolling back.
func (c *conversationService) Ask(ctx context.Context, id uuid.UUID, question string) (string, error) {
	sess, err := c.Get(id)
	if err != nil {
		return "", err
	}

	if !sess.inFlight.TryLock() {
		return "", domain.ErrSessionBusy
	}
	defer sess.inFlight.Unlock()

	if sess.Context == "" {
		return "", domain.ErrEmptyContext
	}

	sess.append(domain.ChatMessage{Role: domain.RoleUser, Content: question})

	answer, err := c.completeChat(ctx, sess.Context, sess.Language, sess.Turns())
	if err != nil {
		return "", fmt.Errorf("chat inference call failed: %w", err)
	}

	sess.append(domain.ChatMessage{Role: domain.RoleAssistant, Content: answer})
	return answer, nil
}

// Reset discards the session's turns and context.
func (c *conversationService) Reset(id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(c.sessions, id)
	return nil
}

// ChatOnce answers a single stateless chat request: the caller supplies the
// grounding context and the full message history on every call.
func (c *conversationService) ChatOnce(ctx context.Context, docContext string, lang domain.Language, history []domain.ChatMessage) (string, error) {
	if docContext == "" {
		return "", domain.ErrEmptyContext
	}
	answer, err := c.completeChat(ctx, Truncate(docContext, c.analysis.ContextCap), lang, history)
	if err != nil {
		return "", fmt.Errorf("chat inference call failed: %w", err)
	}
	return answer, nil
}

func (c *conversationService) completeChat(ctx context.Context, docContext string, lang domain.Language, history []domain.ChatMessage) (string, error) {
	answer, err := c.llm.Complete(ctx, port.CompletionRequest{
		SystemPrompt: prompt.ChatPrompt(lang, docContext),
		Messages:     history,
		Temperature:  c.chat.Temperature,
	})
	if err != nil {
		return "", err
	}
	return report.StripMarkup(answer), nil
}

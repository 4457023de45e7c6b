package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"finsight/internal/config"
	"finsight/internal/domain"
	"finsight/internal/service"
)

// SessionHandler handles stateful conversation sessions.
type SessionHandler struct {
	conversations service.ConversationService
	cfg           *config.AnalysisConfig
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(conversations service.ConversationService, cfg *config.AnalysisConfig) *SessionHandler {
	return &SessionHandler{conversations: conversations, cfg: cfg}
}

type beginSessionRequest struct {
	Context string `json:"context"`
	Lang    string `json:"lang"`
}

type askRequest struct {
	Question string `json:"question"`
}

// Begin handles POST /api/v1/sessions.
func (h *SessionHandler) Begin(c *gin.Context) {
	var req beginSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON")
		return
	}
	if req.Context == "" {
		HandleError(c, domain.ErrEmptyContext)
		return
	}

	lang := domain.ParseLanguage(req.Lang, domain.Language(h.cfg.DefaultLanguage))
	sess := h.conversations.Begin(req.Context, lang)

	RespondCreated(c, gin.H{"session_id": sess.ID})
}

// Ask handles POST /api/v1/sessions/:id/ask.
func (h *SessionHandler) Ask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_SESSION_ID", "session id must be a UUID")
		return
	}

	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Question == "" {
		RespondError(c, http.StatusBadRequest, "MISSING_QUESTION", "question field is required")
		return
	}

	answer, err := h.conversations.Ask(c.Request.Context(), id, req.Question)
	if err != nil {
		HandleError(c, err)
		return
	}

	sess, err := h.conversations.Get(id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{
		"answer": answer,
		"turns":  sess.Turns(),
	})
}

// Reset handles DELETE /api/v1/sessions/:id.
func (h *SessionHandler) Reset(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_SESSION_ID", "session id must be a UUID")
		return
	}

	if err := h.conversations.Reset(id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"reset": true})
}

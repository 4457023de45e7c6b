package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finsight/internal/config"
	"finsight/internal/domain"
	"finsight/internal/service"
)

// ChatHandler handles the stateless grounded chat endpoint: the client posts
// the full message history and the document context on every call.
type ChatHandler struct {
	conversations service.ConversationService
	cfg           *config.AnalysisConfig
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(conversations service.ConversationService, cfg *config.AnalysisConfig) *ChatHandler {
	return &ChatHandler{conversations: conversations, cfg: cfg}
}

type chatRequest struct {
	Messages []domain.ChatMessage `json:"messages"`
	Context  string               `json:"context"`
	Lang     string               `json:"lang"`
}

type chatResponse struct {
	Answer string `json:"answer"`
}

// Chat handles POST /api/v1/chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON")
		return
	}
	if req.Context == "" {
		HandleError(c, domain.ErrEmptyContext)
		return
	}
	for _, m := range req.Messages {
		if !m.Role.IsValid() {
			RespondError(c, http.StatusBadRequest, "INVALID_ROLE", "message roles must be user or assistant")
			return
		}
	}

	lang := domain.ParseLanguage(req.Lang, domain.Language(h.cfg.DefaultLanguage))

	answer, err := h.conversations.ChatOnce(c.Request.Context(), req.Context, lang, req.Messages)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, chatResponse{Answer: answer})
}

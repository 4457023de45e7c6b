package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finsight/internal/domain"
	"finsight/internal/port"
)

// CurrentHandler exposes the ephemeral current-analysis cache. The client
// identifies its slot with an X-Session-Key header.
type CurrentHandler struct {
	store port.CurrentStore
}

// NewCurrentHandler creates a new CurrentHandler.
func NewCurrentHandler(store port.CurrentStore) *CurrentHandler {
	return &CurrentHandler{store: store}
}

func sessionKey(c *gin.Context) (string, bool) {
	key := c.GetHeader("X-Session-Key")
	if key == "" {
		HandleError(c, domain.ErrMissingSession)
		return "", false
	}
	return key, true
}

// Get handles GET /api/v1/current.
func (h *CurrentHandler) Get(c *gin.Context) {
	key, ok := sessionKey(c)
	if !ok {
		return
	}
	cur, ok := h.store.Load(key)
	if !ok {
		HandleError(c, domain.ErrNotFound)
		return
	}
	RespondOK(c, cur)
}

// Put handles PUT /api/v1/current.
func (h *CurrentHandler) Put(c *gin.Context) {
	key, ok := sessionKey(c)
	if !ok {
		return
	}

	var cur domain.CurrentAnalysis
	if err := c.ShouldBindJSON(&cur); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON")
		return
	}

	h.store.Save(key, cur)
	RespondOK(c, cur)
}

// Delete handles DELETE /api/v1/current.
func (h *CurrentHandler) Delete(c *gin.Context) {
	key, ok := sessionKey(c)
	if !ok {
		return
	}
	h.store.Clear(key)
	RespondOK(c, gin.H{"cleared": true})
}

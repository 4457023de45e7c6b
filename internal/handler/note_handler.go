package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"finsight/internal/service"
)

// NoteHandler handles reviewer note endpoints.
type NoteHandler struct {
	noteService service.NoteService
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(noteService service.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

type noteRequest struct {
	Author  string `json:"author"`
	Content string `json:"content"`
}

// Create handles POST /api/v1/notes.
func (h *NoteHandler) Create(c *gin.Context) {
	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Content == "" {
		RespondError(c, http.StatusBadRequest, "MISSING_CONTENT", "content field is required")
		return
	}

	note, err := h.noteService.Create(c.Request.Context(), req.Author, req.Content)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, note)
}

// List handles GET /api/v1/notes.
func (h *NoteHandler) List(c *gin.Context) {
	offset, limit := pagination(c)

	notes, total, err := h.noteService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, notes, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Update handles PUT /api/v1/notes/:id.
func (h *NoteHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "note id must be a UUID")
		return
	}

	var req noteRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Content == "" {
		RespondError(c, http.StatusBadRequest, "MISSING_CONTENT", "content field is required")
		return
	}

	note, err := h.noteService.Update(c.Request.Context(), id, req.Content)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, note)
}

// Delete handles DELETE /api/v1/notes/:id.
func (h *NoteHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "note id must be a UUID")
		return
	}

	if err := h.noteService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": true})
}

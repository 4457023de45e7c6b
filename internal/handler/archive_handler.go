package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"finsight/internal/export"
	"finsight/internal/service"
)

// ArchiveHandler handles the durable saved-analysis archive.
type ArchiveHandler struct {
	archiveService service.ArchiveService
}

// NewArchiveHandler creates a new ArchiveHandler.
func NewArchiveHandler(archiveService service.ArchiveService) *ArchiveHandler {
	return &ArchiveHandler{archiveService: archiveService}
}

type saveAnalysisRequest struct {
	Company   string          `json:"company"`
	Analysis  string          `json:"analysis"`
	ChartData json.RawMessage `json:"chart_data"`
}

func pagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	return offset, limit
}

// Save handles POST /api/v1/archive.
func (h *ArchiveHandler) Save(c *gin.Context) {
	var req saveAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON")
		return
	}

	entry, err := h.archiveService.Save(c.Request.Context(), service.SaveAnalysisInput{
		Company:   req.Company,
		Analysis:  req.Analysis,
		ChartData: req.ChartData,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, entry)
}

// List handles GET /api/v1/archive.
func (h *ArchiveHandler) List(c *gin.Context) {
	offset, limit := pagination(c)

	entries, total, err := h.archiveService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, entries, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Delete handles DELETE /api/v1/archive/:id.
func (h *ArchiveHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "archive id must be a UUID")
		return
	}

	if err := h.archiveService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": true})
}

// Clear handles DELETE /api/v1/archive.
func (h *ArchiveHandler) Clear(c *gin.Context) {
	if err := h.archiveService.Clear(c.Request.Context()); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"cleared": true})
}

// Export handles GET /api/v1/archive/export, streaming the archive as an
// xlsx workbook.
func (h *ArchiveHandler) Export(c *gin.Context) {
	entries, _, err := h.archiveService.List(c.Request.Context(), 0, 100)
	if err != nil {
		HandleError(c, err)
		return
	}

	workbook, err := export.BuildArchiveWorkbook(entries)
	if err != nil {
		HandleError(c, err)
		return
	}
	defer func() { _ = workbook.Close() }()

	c.Header("Content-Disposition", `attachment; filename="analyses.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := workbook.Write(c.Writer); err != nil {
		requestIDLog(c, "archive export write failed", err)
	}
}

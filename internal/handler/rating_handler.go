package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"finsight/internal/service"
)

// RatingHandler handles company rating endpoints.
type RatingHandler struct {
	ratingService service.RatingService
}

// NewRatingHandler creates a new RatingHandler.
func NewRatingHandler(ratingService service.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

type ratingRequest struct {
	Company string `json:"company"`
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}

// Create handles POST /api/v1/ratings.
func (h *RatingHandler) Create(c *gin.Context) {
	var req ratingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON")
		return
	}
	if req.Score < 1 || req.Score > 5 {
		RespondError(c, http.StatusBadRequest, "INVALID_SCORE", "score must be between 1 and 5")
		return
	}

	rating, err := h.ratingService.Create(c.Request.Context(), req.Company, req.Score, req.Comment)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, rating)
}

// List handles GET /api/v1/ratings. The meta block carries the mean score
// per company alongside the paginated entries.
func (h *RatingHandler) List(c *gin.Context) {
	offset, limit := pagination(c)

	ratings, total, err := h.ratingService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	averages, err := h.ratingService.Averages(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, ratings, PagMeta{Total: total, Offset: offset, Limit: limit, Averages: averages})
}

// Delete handles DELETE /api/v1/ratings/:id.
func (h *RatingHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "rating id must be a UUID")
		return
	}

	if err := h.ratingService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": true})
}

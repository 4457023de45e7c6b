package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"finsight/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// PagMeta holds pagination metadata. Averages is only populated by the
// ratings list, which reports the mean score per rated company.
type PagMeta struct {
	Total    int                `json:"total"`
	Offset   int                `json:"offset"`
	Limit    int                `json:"limit"`
	Averages map[string]float64 `json:"averages,omitempty"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// requestIDLog logs an error with the request ID prefix.
func requestIDLog(c *gin.Context, msg string, err error) {
	requestID, _ := c.Get("request_id")
	log.Printf("[%s] %s: %v", requestID, msg, err)
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	var upstream *domain.UpstreamError
	switch {
	case errors.Is(err, domain.ErrMissingDocument):
		return http.StatusBadRequest, "MISSING_DOCUMENT", "document text is required"
	case errors.Is(err, domain.ErrMissingCompany):
		return http.StatusBadRequest, "MISSING_COMPANY", "company name is required"
	case errors.Is(err, domain.ErrExtractionFailed):
		return http.StatusBadRequest, "EXTRACTION_FAILED", "could not extract text from the uploaded document"
	case errors.Is(err, domain.ErrEmptyContext):
		return http.StatusBadRequest, "EMPTY_CONTEXT", "no document context bound; run an analysis first"
	case errors.Is(err, domain.ErrSessionBusy):
		return http.StatusConflict, "SESSION_BUSY", "a request is already in flight for this session"
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, "SESSION_NOT_FOUND", "conversation session not found"
	case errors.Is(err, domain.ErrMissingSession):
		return http.StatusBadRequest, "MISSING_SESSION_KEY", "X-Session-Key header is required"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.As(err, &upstream):
		return http.StatusBadGateway, "UPSTREAM_ERROR", "inference service request failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
// Upstream failures keep their diagnostic payload in the response detail.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] %s: %v", requestID, code, err)
	}

	apiErr := &APIError{Code: code, Message: msg}
	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) {
		apiErr.Detail = upstream.Body
	}
	c.JSON(status, APIResponse{Success: false, Error: apiErr})
}

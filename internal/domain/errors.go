package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("resource not found")
	ErrMissingDocument  = errors.New("document text is required")
	ErrMissingCompany   = errors.New("company name is required")
	ErrExtractionFailed = errors.New("document text extraction failed")
	ErrEmptyContext     = errors.New("no document context bound to session")
	ErrSessionBusy      = errors.New("a request is already in flight for this session")
	ErrSessionNotFound  = errors.New("conversation session not found")
	ErrMissingSession   = errors.New("session key is required")
)

// UpstreamError carries the diagnostic payload of a failed inference call.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("inference service error (status %d): %s", e.Status, e.Body)
}

// Transient reports whether the failure is worth retrying. Rate limits and
// server-side errors are transient; other 4xx responses are not.
func (e *UpstreamError) Transient() bool {
	return e.Status >= 500 || e.Status == 429
}

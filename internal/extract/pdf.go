// Package extract converts uploaded document bytes into plain text.
package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"finsight/internal/domain"
	"finsight/internal/port"
)

// PDFExtractor extracts text from PDF payloads.
type PDFExtractor struct{}

// NewPDFExtractor creates a PDF-backed TextExtractor.
func NewPDFExtractor() port.TextExtractor {
	return &PDFExtractor{}
}

// ExtractText returns the plain text of all pages, in order. The pdf library
// panics on some corrupt streams, so extraction recovers and reports those as
// extraction failures.
func (e *PDFExtractor) ExtractText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: panic during extraction: %v", domain.ErrExtractionFailed, r)
		}
	}()

	if len(data) < 4 || string(data[:4]) != "%PDF" {
		return "", fmt.Errorf("%w: payload is not a PDF", domain.ErrExtractionFailed)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, pageErr := page.GetPlainText(nil)
		if pageErr != nil {
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

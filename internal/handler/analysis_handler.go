package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"finsight/internal/config"
	"finsight/internal/domain"
	"finsight/internal/port"
	"finsight/internal/service"
)

// AnalysisHandler handles one-shot document analysis requests.
type AnalysisHandler struct {
	analysisService service.AnalysisService
	extractor       port.TextExtractor
	currentStore    port.CurrentStore
	cfg             *config.AnalysisConfig
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(
	analysisService service.AnalysisService,
	extractor port.TextExtractor,
	currentStore port.CurrentStore,
	cfg *config.AnalysisConfig,
) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		extractor:       extractor,
		currentStore:    currentStore,
		cfg:             cfg,
	}
}

// Analyze handles POST /api/v1/analysis.
// Multipart form: file (PDF report), company, lang ("fr" or "en").
// When an X-Session-Key header is present the result is also cached as that
// session's current analysis.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	company := c.PostForm("company")
	if company == "" {
		RespondError(c, http.StatusBadRequest, "MISSING_COMPANY", "company field is required")
		return
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_DOCUMENT", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_DOCUMENT", "could not read uploaded file")
		return
	}

	text, err := h.extractor.ExtractText(data)
	if err != nil {
		HandleError(c, err)
		return
	}

	lang := domain.ParseLanguage(c.PostForm("lang"), domain.Language(h.cfg.DefaultLanguage))

	result, err := h.analysisService.Analyze(c.Request.Context(), service.AnalyzeInput{
		DocumentText: text,
		Company:      company,
		Language:     lang,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	if key := c.GetHeader("X-Session-Key"); key != "" {
		h.currentStore.Save(key, domain.CurrentAnalysis{
			Company:   company,
			Analysis:  result.Analysis,
			RawText:   result.RawText,
			ChartData: result.ChartData,
		})
	}

	RespondOK(c, result)
}

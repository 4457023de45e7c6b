package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"finsight/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testAnalysisConfig() config.AnalysisConfig {
	return config.AnalysisConfig{ContextCap: 15000, DefaultLanguage: "fr", Temperature: 0.1}
}

func newRequest(t *testing.T, method, path, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	return serve(r, newRequest(t, http.MethodPost, path, body))
}

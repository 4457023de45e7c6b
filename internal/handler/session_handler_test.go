package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"finsight/internal/config"
	"finsight/internal/domain"
	"finsight/internal/handler"
	"finsight/internal/service"
	"finsight/mocks"
)

func newSessionRouter(llm *mocks.MockInferenceClient) *gin.Engine {
	analysisCfg := testAnalysisConfig()
	chatCfg := config.ChatConfig{Temperature: 0.2}
	svc := service.NewConversationService(llm, &analysisCfg, &chatCfg)
	h := handler.NewSessionHandler(svc, &analysisCfg)

	r := gin.New()
	r.POST("/api/v1/sessions", h.Begin)
	r.POST("/api/v1/sessions/:id/ask", h.Ask)
	r.DELETE("/api/v1/sessions/:id", h.Reset)
	return r
}

func beginSession(t *testing.T, r *gin.Engine) uuid.UUID {
	t.Helper()
	w := postJSON(t, r, "/api/v1/sessions", `{"context": "rapport annuel", "lang": "fr"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data struct {
			SessionID uuid.UUID `json:"session_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEqual(t, uuid.Nil, resp.Data.SessionID)
	return resp.Data.SessionID
}

func TestSession_BeginAndAsk(t *testing.T) {
	llm := new(mocks.MockInferenceClient)
	llm.On("Complete", mock.Anything, mock.Anything).
		Return("Le chiffre d'affaires progresse.", nil).Once()

	r := newSessionRouter(llm)
	id := beginSession(t, r)

	w := postJSON(t, r, fmt.Sprintf("/api/v1/sessions/%s/ask", id), `{"question": "Et le CA ?"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Answer string               `json:"answer"`
			Turns  []domain.ChatMessage `json:"turns"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Le chiffre d'affaires progresse.", resp.Data.Answer)
	require.Len(t, resp.Data.Turns, 2)
	assert.Equal(t, domain.RoleUser, resp.Data.Turns[0].Role)
	assert.Equal(t, domain.RoleAssistant, resp.Data.Turns[1].Role)
}

func TestSession_BeginRequiresContext(t *testing.T) {
	r := newSessionRouter(new(mocks.MockInferenceClient))

	w := postJSON(t, r, "/api/v1/sessions", `{"context": ""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "EMPTY_CONTEXT")
}

func TestSession_AskUnknownSession(t *testing.T) {
	r := newSessionRouter(new(mocks.MockInferenceClient))

	w := postJSON(t, r, fmt.Sprintf("/api/v1/sessions/%s/ask", uuid.New()), `{"question": "Bonjour"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "SESSION_NOT_FOUND")
}

func TestSession_AskInvalidID(t *testing.T) {
	r := newSessionRouter(new(mocks.MockInferenceClient))

	w := postJSON(t, r, "/api/v1/sessions/not-a-uuid/ask", `{"question": "Bonjour"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_SESSION_ID")
}

func TestSession_Reset(t *testing.T) {
	llm := new(mocks.MockInferenceClient)
	r := newSessionRouter(llm)
	id := beginSession(t, r)

	req := newRequest(t, http.MethodDelete, fmt.Sprintf("/api/v1/sessions/%s", id), "")
	w := serve(r, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, r, fmt.Sprintf("/api/v1/sessions/%s/ask", id), `{"question": "Bonjour"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

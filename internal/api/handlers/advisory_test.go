package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustguard/internal/domain/models"
	"trustguard/internal/domain/services/ai"
	"trustguard/pkg/logger"
)

// openAIReply wraps content in the chat-completion response shape.
func openAIReply(t *testing.T, content string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	require.NoError(t, err)
	return body
}

func newAdvisoryHandler(t *testing.T, status int, content string) *AdvisoryHandler {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write(openAIReply(t, content))
	}))
	t.Cleanup(srv.Close)

	log := logger.NewDefault()
	client := ai.NewClient(ai.Config{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
	}, log)
	return NewAdvisoryHandler(client, nil, nil, time.Minute, log)
}

func TestAdviseReturnsJudgment(t *testing.T) {
	h := newAdvisoryHandler(t, http.StatusOK,
		`{"score": 85, "verdict": "High Risk", "reasons": ["impersonates a bank"], "advice": ["do not reply"], "confidence": 0.9}`)

	w := postJSON(h.Advise, "/api/v1/advice", `{"text":"Your account is suspended"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp AdvisoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "llm", resp.Source)
	assert.False(t, resp.Degraded)
	assert.Empty(t, resp.Reason)
	require.NotNil(t, resp.Judgment)
	assert.Equal(t, 85, resp.Judgment.Score)
	assert.Equal(t, models.VerdictHighRisk, resp.Judgment.Verdict)
	assert.InDelta(t, 0.9, resp.Judgment.Confidence, 1e-9)
}

func TestAdviseFallbackOnServiceError(t *testing.T) {
	h := newAdvisoryHandler(t, http.StatusInternalServerError, "")

	w := postJSON(h.Advise, "/api/v1/advice", `{"text":"Your account is suspended"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp AdvisoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "fallback", resp.Source)
	assert.True(t, resp.Degraded)
	assert.NotEmpty(t, resp.Reason)
	require.NotNil(t, resp.Judgment)
	assert.Equal(t, 50, resp.Judgment.Score)
	assert.Equal(t, models.VerdictCaution, resp.Judgment.Verdict)
	require.NotEmpty(t, resp.Judgment.Reasons)
	assert.Contains(t, resp.Judgment.Reasons[0], "LLM error:")
}

func TestAdviseFallbackOnNonJSON(t *testing.T) {
	h := newAdvisoryHandler(t, http.StatusOK, "I cannot answer in JSON, sorry.")

	w := postJSON(h.Advise, "/api/v1/advice", `{"text":"Your account is suspended"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var resp AdvisoryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "fallback", resp.Source)
	assert.True(t, resp.Degraded)
	require.NotNil(t, resp.Judgment)
	assert.Equal(t, []string{"LLM returned non-JSON content."}, resp.Judgment.Reasons)
	assert.InDelta(t, 0.5, resp.Judgment.Confidence, 1e-9)
}

func TestAdviseUnavailableWithoutCredentials(t *testing.T) {
	log := logger.NewDefault()

	testCases := []struct {
		name    string
		handler *AdvisoryHandler
	}{
		{
			name:    "nil advisor",
			handler: NewAdvisoryHandler(nil, nil, nil, 0, log),
		},
		{
			name:    "missing api key",
			handler: NewAdvisoryHandler(ai.NewClient(ai.Config{}, log), nil, nil, 0, log),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(tc.handler.Advise, "/api/v1/advice", `{"text":"hello"}`)
			assert.Equal(t, http.StatusServiceUnavailable, w.Code)
			assert.Contains(t, w.Body.String(), "advisory service is not configured")
		})
	}
}

func TestAdviseValidation(t *testing.T) {
	h := newAdvisoryHandler(t, http.StatusOK, `{"score": 10}`)

	testCases := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: `not json`},
		{name: "missing text", body: `{"sender":"x"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(h.Advise, "/api/v1/advice", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustguard/internal/infrastructure/storage"
	"trustguard/pkg/logger"
)

func getRequest(h http.HandlerFunc, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	log := logger.NewDefault()
	h := NewHealthHandler(nil, nil, "1.2.3", log)

	w := getRequest(h.Check, "/health")

	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
	assert.NotEmpty(t, resp.Uptime)
	assert.NotEmpty(t, resp.Timestamp)
	assert.Empty(t, resp.Checks)
}

func TestReadinessWithoutBackends(t *testing.T) {
	log := logger.NewDefault()
	store := storage.NewContactStore(filepath.Join(t.TempDir(), "contacts.json"), log)
	h := NewHealthHandler(nil, store, "1.2.3", log)

	w := getRequest(h.Ready, "/ready")

	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ready", resp.Status)
	assert.Equal(t, "not configured", resp.Checks["redis"])
	assert.Equal(t, "healthy", resp.Checks["contacts"])
	assert.Equal(t, "healthy", resp.Checks["analyzer"])
}

func TestReadinessFailsOnBrokenContactStore(t *testing.T) {
	log := logger.NewDefault()
	// A directory path makes every read fail
	store := storage.NewContactStore(t.TempDir(), log)
	h := NewHealthHandler(nil, store, "1.2.3", log)

	w := getRequest(h.Ready, "/ready")

	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "not ready", resp.Status)
	assert.Contains(t, resp.Checks["contacts"], "unhealthy")
}

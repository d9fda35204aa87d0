package api

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trustguard/internal/api/handlers"
	"trustguard/internal/config"
	"trustguard/internal/domain/services"
	"trustguard/internal/infrastructure/storage"
	"trustguard/pkg/logger"
)

func newTestRouter(t *testing.T, cfg config.Config) http.Handler {
	t.Helper()
	log := logger.NewDefault()
	h := handlers.NewHandlers(handlers.Dependencies{
		Analyzer: services.NewAnalyzer(nil, log),
		Contacts: storage.NewContactStore(filepath.Join(t.TempDir(), "contacts.json"), log),
		Version:  "test",
		Logger:   log,
	})
	return NewRouter(cfg, h, nil, nil, log).Setup()
}

func testConfig() config.Config {
	var cfg config.Config
	cfg.CORS = config.CORSConfig{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}
	return cfg
}

func serve(r http.Handler, method, target, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPublicRoutesSkipAuth(t *testing.T) {
	cfg := testConfig()
	cfg.API.Keys = []string{"secret"}
	r := newTestRouter(t, cfg)

	testCases := []struct {
		name   string
		target string
	}{
		{name: "health", target: "/health"},
		{name: "ready", target: "/ready"},
		{name: "patterns", target: "/api/v1/patterns"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(r, http.MethodGet, tc.target, "", nil)
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestAPIKeyGuardsVersionedRoutes(t *testing.T) {
	cfg := testConfig()
	cfg.API.Keys = []string{"secret"}
	r := newTestRouter(t, cfg)

	body := `{"text":"URGENT: verify your password now"}`

	w := serve(r, http.MethodPost, "/api/v1/analysis", body, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(r, http.MethodPost, "/api/v1/analysis", body,
		map[string]string{"Authorization": "Bearer wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(r, http.MethodPost, "/api/v1/analysis", body,
		map[string]string{"Authorization": "Bearer secret"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOpenModeWithoutKeys(t *testing.T) {
	r := newTestRouter(t, testConfig())

	w := serve(r, http.MethodPost, "/api/v1/analysis", `{"text":"hello"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(r, http.MethodGet, "/api/v1/stats", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminRouteRequiresToken(t *testing.T) {
	t.Run("disabled without configured token", func(t *testing.T) {
		r := newTestRouter(t, testConfig())
		w := serve(r, http.MethodDelete, "/api/v1/admin/stats", "", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("token checked when configured", func(t *testing.T) {
		cfg := testConfig()
		cfg.API.AdminToken = "admin-token"
		r := newTestRouter(t, cfg)

		w := serve(r, http.MethodDelete, "/api/v1/admin/stats", "", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = serve(r, http.MethodDelete, "/api/v1/admin/stats", "",
			map[string]string{"X-Admin-Token": "wrong"})
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = serve(r, http.MethodDelete, "/api/v1/admin/stats", "",
			map[string]string{"X-Admin-Token": "admin-token"})
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter(t, testConfig())

	w := serve(r, http.MethodGet, "/api/v1/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

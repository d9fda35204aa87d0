package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"trustguard/internal/domain/services"
	"trustguard/internal/infrastructure/cache"
	"trustguard/pkg/logger"
)

// ReportsHandler handles incident report generation
type ReportsHandler struct {
	cache  *cache.RedisCache
	logger *logger.Logger
}

// NewReportsHandler creates a new ReportsHandler
func NewReportsHandler(c *cache.RedisCache, log *logger.Logger) *ReportsHandler {
	return &ReportsHandler{
		cache:  c,
		logger: log.WithComponent("reports_handler"),
	}
}

type generateReportRequest struct {
	Reporter string `json:"reporter"`
	Channel  string `json:"channel"`
	Summary  string `json:"summary"`
}

// Generate handles POST /api/v1/reports
func (h *ReportsHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Reporter) == "" || strings.TrimSpace(req.Summary) == "" {
		http.Error(w, "Reporter and summary are required", http.StatusBadRequest)
		return
	}

	report := services.GenerateReport(req.Reporter, req.Channel, req.Summary)

	if h.cache != nil {
		if err := h.cache.CountReport(r.Context()); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to update usage counters")
		}
	}

	h.logger.Info().Str("reporter", req.Reporter).Msg("Incident report generated")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"report": report})
}

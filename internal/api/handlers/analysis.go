package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"trustguard/internal/domain/models"
	"trustguard/internal/domain/services"
	"trustguard/internal/infrastructure/cache"
	"trustguard/internal/streaming"
	"trustguard/pkg/logger"
)

// AnalysisHandler handles message risk analysis
type AnalysisHandler struct {
	analyzer  *services.Analyzer
	publisher *streaming.VerdictPublisher
	cache     *cache.RedisCache
	logger    *logger.Logger
}

// NewAnalysisHandler creates a new AnalysisHandler
func NewAnalysisHandler(analyzer *services.Analyzer, publisher *streaming.VerdictPublisher, c *cache.RedisCache, log *logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analyzer:  analyzer,
		publisher: publisher,
		cache:     c,
		logger:    log.WithComponent("analysis_handler"),
	}
}

// AnalysisResponse wraps one analysis result with request metadata
type AnalysisResponse struct {
	ID         string                `json:"id"`
	Result     models.AnalysisResult `json:"result"`
	AnalyzedAt time.Time             `json:"analyzed_at"`
}

// Analyze handles POST /api/v1/analysis
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req models.Message
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		http.Error(w, "Message text is required", http.StatusBadRequest)
		return
	}

	result := h.analyzer.AnalyzeWith(req.Text, req.Allowlist)

	h.logger.Info().
		Str("verdict", string(result.Verdict)).
		Int("score", result.Score).
		Int("flags", len(result.Flags)).
		Str("channel", string(req.Channel)).
		Msg("Message analyzed")

	// Counters and events are best effort; analysis itself never
	// depends on them
	if h.cache != nil {
		if err := h.cache.CountAnalysis(r.Context(), result.Verdict); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to update usage counters")
		}
	}
	if h.publisher != nil {
		if err := h.publisher.PublishVerdict(r.Context(), result, req.Channel, "api"); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to publish verdict event")
		}
	}

	response := AnalysisResponse{
		ID:         uuid.New().String(),
		Result:     result,
		AnalyzedAt: time.Now().UTC(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

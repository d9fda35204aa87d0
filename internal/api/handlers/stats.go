package handlers

import (
	"encoding/json"
	"net/http"

	"trustguard/internal/domain/models"
	"trustguard/internal/infrastructure/cache"
	"trustguard/pkg/logger"
)

// StatsHandler serves usage counters
type StatsHandler struct {
	cache  *cache.RedisCache
	logger *logger.Logger
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(c *cache.RedisCache, log *logger.Logger) *StatsHandler {
	return &StatsHandler{
		cache:  c,
		logger: log.WithComponent("stats_handler"),
	}
}

// Get handles GET /api/v1/stats. Without Redis every counter reads
// zero.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats := &models.UsageStats{Verdicts: map[string]int64{}}

	if h.cache != nil {
		s, err := h.cache.GetStats(r.Context())
		if err != nil {
			h.logger.Warn().Err(err).Msg("Failed to read usage counters")
		} else {
			stats = s
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

// Reset handles DELETE /api/v1/admin/stats
func (h *StatsHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if h.cache != nil {
		if err := h.cache.ResetStats(r.Context()); err != nil {
			h.logger.Error().Err(err).Msg("Failed to reset usage counters")
			http.Error(w, "Failed to reset usage counters", http.StatusInternalServerError)
			return
		}
	}

	h.logger.Info().Msg("Usage counters reset")
	w.WriteHeader(http.StatusNoContent)
}

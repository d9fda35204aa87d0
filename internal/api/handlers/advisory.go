package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"trustguard/internal/domain/models"
	"trustguard/internal/domain/services/ai"
	"trustguard/internal/infrastructure/cache"
	"trustguard/internal/streaming"
	"trustguard/pkg/logger"
)

// AdvisoryHandler handles the AI second-opinion endpoint
type AdvisoryHandler struct {
	advisor   *ai.Client
	publisher *streaming.VerdictPublisher
	cache     *cache.RedisCache
	cacheTTL  time.Duration
	logger    *logger.Logger
}

// NewAdvisoryHandler creates a new AdvisoryHandler
func NewAdvisoryHandler(advisor *ai.Client, publisher *streaming.VerdictPublisher, c *cache.RedisCache, cacheTTL time.Duration, log *logger.Logger) *AdvisoryHandler {
	return &AdvisoryHandler{
		advisor:   advisor,
		publisher: publisher,
		cache:     c,
		cacheTTL:  cacheTTL,
		logger:    log.WithComponent("advisory_handler"),
	}
}

// AdvisoryResponse wraps a judgment with its provenance. Degraded
// judgments are local fallbacks produced after a service or parse
// failure.
type AdvisoryResponse struct {
	Judgment *models.Judgment `json:"judgment"`
	Source   string           `json:"source"`
	Degraded bool             `json:"degraded"`
	Reason   string           `json:"reason,omitempty"`
}

// Advise handles POST /api/v1/advice
func (h *AdvisoryHandler) Advise(w http.ResponseWriter, r *http.Request) {
	var req models.Message
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		http.Error(w, "Message text is required", http.StatusBadRequest)
		return
	}

	if h.advisor == nil {
		h.unavailable(w, "advisory service is not configured")
		return
	}

	fingerprint := cache.AdvisoryFingerprint(req.Text, req.Sender, req.Allowlist)

	// Identical requests within the TTL share one judgment
	if h.cache != nil {
		judgment, err := h.cache.GetCachedAdvisory(r.Context(), fingerprint)
		if err != nil {
			h.logger.Warn().Err(err).Msg("Advisory cache lookup failed")
		} else if judgment != nil {
			h.respond(w, AdvisoryResponse{Judgment: judgment, Source: "cache"})
			return
		}
	}

	outcome := h.advisor.Assess(r.Context(), req.Text, req.Sender, req.Allowlist)

	if outcome.Failed() {
		h.logger.Error().Err(outcome.Err).Msg("Advisory service not configured")
		h.unavailable(w, "advisory service is not configured")
		return
	}

	source := "llm"
	reason := ""
	if outcome.Degraded() {
		source = "fallback"
		reason = string(outcome.Status)
		if outcome.Err != nil {
			reason = outcome.Err.Error()
		}
	} else if h.cache != nil {
		if err := h.cache.CacheAdvisory(r.Context(), fingerprint, outcome.Judgment, h.cacheTTL); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to cache advisory judgment")
		}
	}

	h.logger.Info().
		Str("status", string(outcome.Status)).
		Int("score", outcome.Judgment.Score).
		Str("verdict", string(outcome.Judgment.Verdict)).
		Msg("Advisory judgment produced")

	if h.cache != nil {
		if err := h.cache.CountAdvisory(r.Context()); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to update usage counters")
		}
	}
	if h.publisher != nil {
		if err := h.publisher.PublishAdvisory(r.Context(), outcome, req.Channel, source); err != nil {
			h.logger.Warn().Err(err).Msg("Failed to publish advisory event")
		}
	}

	h.respond(w, AdvisoryResponse{
		Judgment: outcome.Judgment,
		Source:   source,
		Degraded: outcome.Degraded(),
		Reason:   reason,
	})
}

func (h *AdvisoryHandler) respond(w http.ResponseWriter, resp AdvisoryResponse) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *AdvisoryHandler) unavailable(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusServiceUnavailable)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

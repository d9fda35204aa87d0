package handlers

import (
	"time"

	"trustguard/internal/domain/services"
	"trustguard/internal/domain/services/ai"
	"trustguard/internal/infrastructure/cache"
	"trustguard/internal/infrastructure/storage"
	"trustguard/internal/streaming"
	"trustguard/pkg/logger"
)

// Handlers holds all API handlers
type Handlers struct {
	Health   *HealthHandler
	Analysis *AnalysisHandler
	Advisory *AdvisoryHandler
	Contacts *ContactsHandler
	Reports  *ReportsHandler
	Stats    *StatsHandler
	Patterns *PatternsHandler
}

// Dependencies holds dependencies for handlers. Cache, Advisor, and
// Publisher may be nil; handlers degrade rather than fail.
type Dependencies struct {
	Analyzer         *services.Analyzer
	Advisor          *ai.Client
	Contacts         *storage.ContactStore
	Publisher        *streaming.VerdictPublisher
	Cache            *cache.RedisCache
	Version          string
	AdvisoryCacheTTL time.Duration
	Logger           *logger.Logger
}

// NewHandlers creates all handlers
func NewHandlers(deps Dependencies) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(deps.Cache, deps.Contacts, deps.Version, deps.Logger),
		Analysis: NewAnalysisHandler(deps.Analyzer, deps.Publisher, deps.Cache, deps.Logger),
		Advisory: NewAdvisoryHandler(deps.Advisor, deps.Publisher, deps.Cache, deps.AdvisoryCacheTTL, deps.Logger),
		Contacts: NewContactsHandler(deps.Contacts, deps.Logger),
		Reports:  NewReportsHandler(deps.Cache, deps.Logger),
		Stats:    NewStatsHandler(deps.Cache, deps.Logger),
		Patterns: NewPatternsHandler(deps.Version),
	}
}

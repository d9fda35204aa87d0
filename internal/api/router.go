package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"trustguard/internal/api/handlers"
	apimiddleware "trustguard/internal/api/middleware"
	"trustguard/internal/config"
	"trustguard/internal/infrastructure/cache"
	"trustguard/internal/streaming"
	"trustguard/pkg/logger"
)

// Router holds dependencies for the API router
type Router struct {
	config   config.Config
	handlers *handlers.Handlers
	cache    *cache.RedisCache
	wsHub    *streaming.WebSocketHub
	logger   *logger.Logger
}

// NewRouter creates a new Router instance
func NewRouter(cfg config.Config, h *handlers.Handlers, c *cache.RedisCache, wsHub *streaming.WebSocketHub, log *logger.Logger) *Router {
	return &Router{
		config:   cfg,
		handlers: h,
		cache:    c,
		wsHub:    wsHub,
		logger:   log.WithComponent("router"),
	}
}

// Setup sets up the Chi router with all routes and middleware
func (r *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Core middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(apimiddleware.Logger(r.logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// CORS
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   r.config.CORS.AllowedOrigins,
		AllowedMethods:   r.config.CORS.AllowedMethods,
		AllowedHeaders:   r.config.CORS.AllowedHeaders,
		AllowCredentials: r.config.CORS.AllowCredentials,
		MaxAge:           r.config.CORS.MaxAge,
	}))

	// Rate limiting needs Redis; without it requests pass through
	if r.config.RateLimit.Enabled && r.cache != nil {
		router.Use(apimiddleware.RateLimiter(r.cache, r.config.RateLimit))
	}

	// Public routes
	router.Group(func(pub chi.Router) {
		// Health checks
		pub.Get("/health", r.handlers.Health.Check)
		pub.Get("/ready", r.handlers.Health.Ready)

		// Reference tables for offline client-side checks
		pub.Get("/api/v1/patterns", r.handlers.Patterns.Get)
	})

	// API v1 routes (authenticated when keys are configured)
	router.Route("/api/v1", func(api chi.Router) {
		api.Use(apimiddleware.APIKeyAuth(r.config.API.Keys))

		// Message screening
		api.Post("/analysis", r.handlers.Analysis.Analyze)

		// AI second opinion
		api.Post("/advice", r.handlers.Advisory.Advise)

		// Trusted contacts and safe word verification
		api.Route("/contacts", func(contacts chi.Router) {
			contacts.Get("/", r.handlers.Contacts.List)
			contacts.Post("/", r.handlers.Contacts.Add)
			contacts.Delete("/{name}", r.handlers.Contacts.Remove)
			contacts.Post("/{name}/verify", r.handlers.Contacts.Verify)
		})

		// Incident reports
		api.Post("/reports", r.handlers.Reports.Generate)

		// Usage counters
		api.Get("/stats", r.handlers.Stats.Get)

		// Live verdict feed (real-time updates for caregiver dashboards)
		if r.wsHub != nil {
			api.Get("/stream", r.wsHub.ServeWebSocket)
		}

		// Admin endpoints
		api.Route("/admin", func(admin chi.Router) {
			admin.Use(apimiddleware.AdminAuth(r.config.API.AdminToken))
			admin.Delete("/stats", r.handlers.Stats.Reset)
		})
	})

	return router
}

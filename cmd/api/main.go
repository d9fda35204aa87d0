package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"

	"trustguard/internal/api"
	"trustguard/internal/api/handlers"
	"trustguard/internal/config"
	"trustguard/internal/domain/services"
	"trustguard/internal/domain/services/ai"
	"trustguard/internal/grpc/healthcheck"
	"trustguard/internal/infrastructure/cache"
	"trustguard/internal/infrastructure/storage"
	"trustguard/internal/streaming"
	"trustguard/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var log *logger.Logger
	if cfg.IsProduction() {
		log = logger.NewProduction()
	} else {
		log = logger.NewDevelopment()
	}
	logger.SetGlobal(log)

	log.Info().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Environment).
		Str("version", cfg.App.Version).
		Msg("starting TrustGuard")

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis is optional: without it there is no advisory cache, no rate
	// limiting, and stats read zero, but screening still works
	var redisCache *cache.RedisCache
	if cfg.Redis.Enabled {
		redisCache, err = cache.NewRedis(ctx, cfg.Redis, log)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without cache")
			redisCache = nil
		}
	}
	defer func() {
		if redisCache != nil {
			redisCache.Close()
		}
	}()

	// NATS is optional too; verdict events then stay process-local
	var natsPublisher *streaming.NATSPublisher
	if cfg.NATS.Enabled {
		natsPublisher, err = streaming.NewNATSPublisher(ctx, cfg.NATS, log)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to NATS, continuing without stream publishing")
		} else {
			log.Info().Str("url", cfg.NATS.URL).Msg("connected to NATS")
		}
	}

	// Event bus and WebSocket hub for the live verdict feed
	eventBus := streaming.NewEventBus(natsPublisher, log)
	wsHub := streaming.NewWebSocketHub(natsPublisher, log)
	go wsHub.Run(ctx)

	publisher := streaming.NewVerdictPublisher(eventBus, wsHub)

	// Core services
	analyzer := services.NewAnalyzer(cfg.Analysis.Brands, log)

	advisor := ai.NewClient(ai.Config{
		APIKey:      cfg.Advisory.APIKey,
		BaseURL:     cfg.Advisory.BaseURL,
		Model:       cfg.Advisory.Model,
		Temperature: cfg.Advisory.Temperature,
		Timeout:     cfg.Advisory.Timeout,
	}, log)
	log.Info().Bool("advisor_enabled", advisor.Enabled()).Msg("advisory client initialized")

	contacts := storage.NewContactStore(cfg.Contacts.Path, log)

	// Initialize handlers
	deps := handlers.Dependencies{
		Analyzer:         analyzer,
		Advisor:          advisor,
		Contacts:         contacts,
		Publisher:        publisher,
		Cache:            redisCache,
		Version:          cfg.App.Version,
		AdvisoryCacheTTL: cfg.Advisory.CacheTTL,
		Logger:           log,
	}
	h := handlers.NewHandlers(deps)

	// Create router
	router := api.NewRouter(*cfg, h, redisCache, wsHub, log)
	httpHandler := router.Setup()

	// Start HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort),
		Handler:      httpHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().
			Str("addr", httpServer.Addr).
			Msg("starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Start gRPC health server
	grpcListener, err := net.Listen("tcp", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.GRPCPort))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create gRPC listener")
	}

	grpcServer := grpc.NewServer()
	healthcheck.RegisterHealthServer(ctx, grpcServer, redisCache)

	go func() {
		log.Info().
			Str("addr", grpcListener.Addr().String()).
			Msg("starting gRPC health server")
		if err := grpcServer.Serve(grpcListener); err != nil {
			log.Fatal().Err(err).Msg("gRPC server failed")
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down...")

	// Cancel context to stop the hub and health probes
	cancel()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	grpcServer.GracefulStop()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	eventBus.Close()
	if natsPublisher != nil {
		natsPublisher.Close()
	}

	log.Info().Msg("shutdown complete")
}

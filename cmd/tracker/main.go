package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/outofband/tracker-bfa-go/internal/config"
	"github.com/outofband/tracker-bfa-go/internal/domain"
	"github.com/outofband/tracker-bfa-go/internal/handler"
	"github.com/outofband/tracker-bfa-go/internal/infra/cache"
	"github.com/outofband/tracker-bfa-go/internal/infra/memstore"
	"github.com/outofband/tracker-bfa-go/internal/infra/observability"
	"github.com/outofband/tracker-bfa-go/internal/infra/resilience"
	"github.com/outofband/tracker-bfa-go/internal/infra/supabase"
	"github.com/outofband/tracker-bfa-go/internal/port"
	"github.com/outofband/tracker-bfa-go/internal/service"

	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.Bool("use_supabase", cfg.UseSupabase),
		zap.Bool("dev_auth", cfg.DevAuth),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
		zap.Duration("jwt_access_ttl", cfg.JWTAccessTTL),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "tracker-bfa")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Cache ---
	projectCache := cache.New[[]domain.Project](cfg.CacheTTL)

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	cb := resilience.NewCircuitBreaker("supabase")

	// --- Data stores ---
	var (
		businesses  port.BusinessStore
		profiles    port.ProfileStore
		projects    port.ProjectStore
		assignments port.AssignmentStore
	)

	if cfg.UseSupabase && cfg.SupabaseURL != "" {
		logger.Info("using Supabase as data backend",
			zap.String("supabase_url", cfg.SupabaseURL),
		)
		sb := supabase.NewClient(
			&http.Client{Timeout: cfg.HTTPTimeout},
			cfg.SupabaseURL,
			cfg.SupabaseAnonKey,
			cfg.SupabaseServiceKey,
			cb,
			resilienceCfg,
			logger,
		)
		businesses, profiles, projects, assignments = sb, sb, sb, sb
	} else {
		logger.Warn("Supabase not configured, using in-memory store")
		mem := memstore.New()
		businesses, profiles, projects, assignments = mem, mem, mem, mem
	}

	// --- Services ---
	authSvc := service.NewAuthService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.DevAuth, cfg.DevAuthPassword, logger)
	sessionSvc := service.NewSessionService(businesses, profiles, projects, projectCache, metrics, logger, cfg.DefaultBusinessName)
	projectSvc := service.NewProjectService(projects, projectCache, metrics, logger)
	assignmentSvc := service.NewAssignmentService(assignments, projects, logger)
	adminSvc := service.NewAdminService(businesses, profiles, projects, logger)

	// --- Router ---
	router := handler.NewRouter(handler.Deps{
		Auth:        authSvc,
		Session:     sessionSvc,
		Projects:    projectSvc,
		Assignments: assignmentSvc,
		Admin:       adminSvc,
		Profiles:    profiles,
		Businesses:  businesses,
		Metrics:     metrics,
		Logger:      logger,
	})

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}

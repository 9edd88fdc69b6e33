// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// AgriBridge localization service: a locale-aware transformer for
// marketplace records plus a model-backed translation pipeline with a
// persistent, content-hash-keyed cache.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/agribridge/agribridge-go/internal/cache"
	"github.com/agribridge/agribridge-go/internal/config"
	"github.com/agribridge/agribridge-go/internal/handler"
	"github.com/agribridge/agribridge-go/internal/locale"
	"github.com/agribridge/agribridge-go/internal/logging"
	"github.com/agribridge/agribridge-go/internal/middleware"
	"github.com/agribridge/agribridge-go/internal/scheduler"
	"github.com/agribridge/agribridge-go/internal/store"
	"github.com/agribridge/agribridge-go/internal/translate"
	"github.com/agribridge/agribridge-go/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "AgriBridge localization service\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: agribridge [options]\n\nOptions:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AGB_DB_PATH               SQLite database path (default: ./data/agribridge.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AGB_SERVER_PORT           Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AGB_ENV                   Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AGB_REDIS_URL             Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AGB_AI_PROVIDER           Translation model provider: openai|ollama (default: openai)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AGB_AI_API_KEY            API key for the openai provider\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AGB_TRANSLATION_TTL_DAYS  Cached translation retention in days (default: 30)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		info := version.Get()
		_, _ = fmt.Printf("agribridge %s (commit: %s, built: %s)\n", info.Version, info.GitCommit, info.BuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the event log
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	eventLogHandler := logging.NewEventLogHandler(textHandler, db)
	logger = slog.New(eventLogHandler)
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	// Cache layer: Redis when configured, in-memory otherwise
	cacheCfg := cache.DefaultConfig()
	cacheCfg.RedisURL = cfg.RedisURL
	cacheCfg.Prefix = cfg.CachePrefix
	cacheCfg.DefaultTTL = time.Duration(cfg.CacheTTL) * time.Second
	cacheCfg.MaxSize = cfg.CacheMaxSize
	appCache, err := cache.New(cacheCfg)
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer func() {
		if err := appCache.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()
	if cfg.UseRedisCache() {
		slog.Info("cache initialized", "backend", "redis")
	} else {
		slog.Info("cache initialized", "backend", "memory")
	}

	// Locale configuration with the embedded Myanmar glossary
	localeCfg, err := locale.NewMyanmarConfig()
	if err != nil {
		return fmt.Errorf("loading locale config: %w", err)
	}
	if len(cfg.CDNPrefixes) > 0 {
		localeCfg.AddCDNPrefixes(cfg.CDNPrefixes)
	}

	// Translation provider
	var provider translate.Provider
	if cfg.AIConfigured() {
		switch cfg.AIProvider {
		case config.ProviderOllama:
			provider = translate.NewOllamaProvider(cfg.AIBaseURL, cfg.AIModel)
		case config.ProviderOpenAI:
			provider = translate.NewOpenAIProvider(cfg.AIAPIKey, cfg.AIModel)
		}
		slog.Info("translation provider configured", "provider", cfg.AIProvider, "model", cfg.AIModel)
	} else {
		slog.Warn("no translation provider configured, translations served from cache and glossary only")
	}

	queries := store.New(db)
	translateSvc := translate.NewService(queries, appCache, provider, localeCfg,
		cfg.AIRateRPS, cfg.AIRateBurst, logger)

	retention := time.Duration(cfg.TranslationTTLDays) * 24 * time.Hour

	// Daily translation purge
	sched := scheduler.New(db, retention, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	// Handlers
	localizeHandler := handler.NewLocalizeHandler(localeCfg)
	translateHandler := handler.NewTranslateHandler(translateSvc)
	cacheHandler := handler.NewCacheHandler(queries, appCache, retention)
	healthHandler := handler.NewHealthHandler(db)

	// Router
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	rateLimiter := middleware.NewRateLimiter(20, 40)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rateLimiter.Middleware())
		r.Use(middleware.Locale)

		r.Post("/localize", localizeHandler.Localize)
		r.Get("/glossary", localizeHandler.Glossary)
		r.Post("/translate", translateHandler.Translate)

		r.Get("/cache/stats", cacheHandler.Stats)
		r.Delete("/cache", cacheHandler.Clear)
		r.Post("/cache/purge", cacheHandler.Purge)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		handler.WriteNotFound(w, "Resource not found")
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

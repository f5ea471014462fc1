package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/quantfolio/stratdex/internal/config"
	"github.com/quantfolio/stratdex/internal/enrich"
	logpkg "github.com/quantfolio/stratdex/internal/logger"
	"github.com/quantfolio/stratdex/internal/metrics"
	"github.com/quantfolio/stratdex/internal/modelconf"
	catalogrepo "github.com/quantfolio/stratdex/internal/repository/catalog"
	contentrepo "github.com/quantfolio/stratdex/internal/repository/content"
	chiTransport "github.com/quantfolio/stratdex/internal/transport/chi"
	openaiCompl "github.com/quantfolio/stratdex/internal/transport/openai"
	cataloguc "github.com/quantfolio/stratdex/internal/usecase/catalog"
	summarizeuc "github.com/quantfolio/stratdex/internal/usecase/summarize"
	"github.com/quantfolio/stratdex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting stratdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("metadata_dir", cfg.Catalog.MetadataDir),
		zap.String("html_dir", cfg.Catalog.HTMLDir),
	)

	if cfg.Summarize.APIKey == "" {
		logger.Warn("summarization API key not set; summaries will return errors")
	}

	// Data source directories are created if absent so a fresh checkout
	// starts with an empty catalog instead of warnings on every query.
	ensureDir(cfg.Catalog.MetadataDir, logger)
	ensureDir(cfg.Catalog.HTMLDir, logger)

	// Register catalog/summary metrics explicitly (no init())
	metrics.RegisterCatalogMetrics()

	enricher, err := enrich.New(cfg.Catalog.HTMLDir, cfg.Catalog.EnrichCacheSize, logger)
	if err != nil {
		logger.Fatal("Failed to create enricher", zap.Error(err))
	}

	catalogStore := catalogrepo.New(cfg.Catalog.MetadataDir, enricher, logger)
	contentStore := contentrepo.New(cfg.Catalog.HTMLDir)
	modelLoader := modelconf.NewLoader(cfg.Summarize.ModelsFile, logger)

	completer := openaiCompl.NewCompleter(&openaiCompl.Config{
		APIKey:  cfg.Summarize.APIKey,
		BaseURL: cfg.Summarize.BaseURL,
		Logger:  logger,
	})

	// Use case services
	catalogSvc := cataloguc.New(catalogStore)
	summarizeSvc := summarizeuc.New(completer, modelLoader, cfg.Summarize.MaxChars)

	// Warm the catalog cache so the first query does not pay for the
	// full enrichment pass.
	warmCtx := context.Background()
	warmed := catalogStore.Load(warmCtx, false)
	logger.Info("Catalog loaded", zap.Int("strategies", len(warmed)))

	server := chiTransport.NewServer(
		catalogSvc, contentStore, summarizeSvc, modelLoader, catalogStore, logger,
	)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

func ensureDir(dir string, logger *zap.Logger) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Warn("failed to create data directory", zap.String("dir", dir), zap.Error(err))
	}
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}

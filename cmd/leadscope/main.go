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

	"github.com/signalworks/leadscope/internal/config"
	logpkg "github.com/signalworks/leadscope/internal/logger"
	"github.com/signalworks/leadscope/internal/metrics"
	companyrepo "github.com/signalworks/leadscope/internal/repository/company"
	leadrepo "github.com/signalworks/leadscope/internal/repository/lead"
	mongostore "github.com/signalworks/leadscope/internal/store/mongo"
	chiTransport "github.com/signalworks/leadscope/internal/transport/chi"
	companyuc "github.com/signalworks/leadscope/internal/usecase/company"
	healthuc "github.com/signalworks/leadscope/internal/usecase/health"
	leaduc "github.com/signalworks/leadscope/internal/usecase/lead"
	"github.com/signalworks/leadscope/internal/version"
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

	logger.Info("Starting leadscope API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_name", cfg.Store.Database),
		zap.String("leads_collection", cfg.Store.LeadsCollection),
		zap.String("companies_collection", cfg.Store.CompaniesCollection),
	)

	store, err := mongostore.NewStore(mongostore.Config{
		URI:      cfg.Store.URI,
		Database: cfg.Store.Database,
	})
	if err != nil {
		logger.Fatal("Failed to create record store", zap.Error(err))
	}

	// The connection itself is lazy; fail fast here so a bad URI kills the
	// process at startup instead of on the first request.
	connectCtx, cancelConnect := context.WithTimeout(
		context.Background(), time.Duration(cfg.Store.ReadinessTimeoutSec)*time.Second,
	)
	if err := store.Connect(connectCtx); err != nil {
		cancelConnect()
		logger.Fatal("Record store not ready", zap.Error(err))
	}
	cancelConnect()
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logger.Error("Error closing record store", zap.Error(err))
		}
	}()
	logger.Info("Connected to record store")

	// Repositories and use case services
	leadRepo := leadrepo.New(store, cfg.Store.LeadsCollection)
	companyRepo := companyrepo.New(store, cfg.Store.CompaniesCollection)

	leadSvc := leaduc.New(leadRepo)
	companySvc := companyuc.New(companyRepo)
	healthSvc := healthuc.New(store)

	server := chiTransport.NewServer(leadSvc, companySvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Register(r)

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
						"error": "internal error",
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
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}

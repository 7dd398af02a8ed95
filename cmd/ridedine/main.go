package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ridedine/ridedine/internal/config"
	dbRedis "github.com/ridedine/ridedine/internal/db/redis"
	"github.com/ridedine/ridedine/internal/domain/geo"
	logpkg "github.com/ridedine/ridedine/internal/logger"
	"github.com/ridedine/ridedine/internal/metrics"
	agentrepo "github.com/ridedine/ridedine/internal/repository/agent"
	foodrepo "github.com/ridedine/ridedine/internal/repository/food"
	chiTransport "github.com/ridedine/ridedine/internal/transport/chi"
	cataloguc "github.com/ridedine/ridedine/internal/usecase/catalog"
	dispatchuc "github.com/ridedine/ridedine/internal/usecase/dispatch"
	healthuc "github.com/ridedine/ridedine/internal/usecase/health"
	recommenduc "github.com/ridedine/ridedine/internal/usecase/recommend"
	"github.com/ridedine/ridedine/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()
	if *showVersion {
		fmt.Println(version.String())
		return
	}

	// .env is optional; real environment variables win.
	_ = godotenv.Load()

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

	logger.Info("Starting ridedine API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("vendor_source", cfg.Catalog.VendorSource),
		zap.String("agent_source", cfg.Catalog.AgentSource),
	)

	ctx := context.Background()
	depot := geo.NewPoint(*cfg.Depot.Latitude, *cfg.Depot.Longitude)

	// Database is only needed for redis-backed sources.
	var store *dbRedis.Store
	if cfg.UsesRedis() {
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:     cfg.Database.Addrs,
			Username:  cfg.Database.Username,
			Password:  cfg.Database.Password,
			DB:        cfg.Database.DB,
			KeyPrefix: cfg.Storage.KeyPrefix,
		})
		if err != nil {
			logger.Fatal("Failed to create database store", zap.Error(err))
		}
		defer store.Close()

		if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Database not ready", zap.Error(err))
		}
		logger.Info("Connected to database",
			zap.String("driver", cfg.Database.Driver),
			zap.Strings("addrs", cfg.Database.Addrs),
		)
	}

	metrics.RegisterDomainMetrics()

	vendorSource, err := buildVendorSource(cfg, store)
	if err != nil {
		logger.Fatal("Failed to create vendor source", zap.Error(err))
	}
	agentSource := buildAgentSource(cfg, store, depot)

	catalogSvc := cataloguc.New(vendorSource, logger)
	if _, err := catalogSvc.Reload(ctx); err != nil {
		logger.Fatal("Failed to load vendor catalog", zap.Error(err))
	}

	recommendSvc := recommenduc.New(catalogSvc)
	dispatchSvc := dispatchuc.New(agentSource)

	// Pass nil interface (not typed nil pointer) when no database is configured.
	var pinger healthuc.DBPinger
	if store != nil {
		pinger = store
	}
	healthSvc := healthuc.New(catalogSvc, pinger)

	server := chiTransport.NewServer(recommendSvc, dispatchSvc, catalogSvc, healthSvc, depot, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	if cfg.RateLimit.RequestsPerSec > 0 {
		limiter := chiTransport.NewRateLimiter(cfg.RateLimit.RequestsPerSec, cfg.RateLimit.Burst)
		defer limiter.Stop()
		r.Use(limiter.Middleware())
	}
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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

func buildVendorSource(cfg config.Config, store *dbRedis.Store) (cataloguc.Source, error) {
	if cfg.Catalog.VendorSource == config.SourceRedis {
		return foodrepo.NewRedisSource(store), nil
	}
	src, err := foodrepo.NewFileSource(cfg.Catalog.VendorsPath)
	if err != nil {
		return nil, fmt.Errorf("vendor file source: %w", err)
	}
	return src, nil
}

func buildAgentSource(cfg config.Config, store *dbRedis.Store, depot geo.Point) dispatchuc.AgentSource {
	if cfg.Catalog.AgentSource == config.SourceRedis {
		return agentrepo.NewRedisRepo(store, depot)
	}
	return agentrepo.NewFileSource(cfg.Catalog.AgentsPath, depot)
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
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

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

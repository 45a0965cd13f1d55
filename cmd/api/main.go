package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"gqlblog/cmd/app"
	"gqlblog/internal/config"
	"gqlblog/internal/graph"
	handlers "gqlblog/internal/handler"
	"gqlblog/internal/middleware"
	"gqlblog/internal/server"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	ctx := context.Background()

	// setting up config
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	deps, err := app.App(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize dependencies", "error", err)
		os.Exit(1)
	}

	r := setupRouter(cfg, deps, logger)

	srv := server.New(
		r,
		cfg.ServerPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	if deps.DB != nil {
		srv.OnShutdown("database", func(context.Context) error { return deps.DB.CloseDB() })
	}
	if deps.Cache != nil {
		srv.OnShutdown("redis", func(context.Context) error { return deps.Cache.Close() })
	}

	logger.Info("starting server",
		"port", cfg.ServerPort,
		"env", cfg.AppEnv,
		"db_driver", cfg.DB.Driver,
		"upload_backend", cfg.Upload.Backend,
	)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func initLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func setupRouter(cfg *config.Config, deps *app.Deps, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.GetCORSAllowedOrigins(),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	// health endpoints skip rate limiting
	health := newHealthHandler(deps, logger)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	rateLimitCfg := middleware.RateLimitConfig{
		Logger: logger,
		RPS:    cfg.RateLimit.RPS,
		Burst:  cfg.RateLimit.Burst,
	}
	if deps.Cache != nil {
		rateLimitCfg.Limiter = deps.Cache
	}

	h := handlers.NewHandlers(deps.Services, deps.Storage, logger, cfg.Upload.MaxSize)

	r.Group(func(r chi.Router) {
		r.Use(chimiddleware.Timeout(cfg.RequestTimeout))
		r.Use(middleware.RateLimitIP(rateLimitCfg))

		r.Method(http.MethodPost, "/graphql", middleware.Chain(
			graph.NewHandler(deps.Schema),
			middleware.Auth(deps.Tokens, logger),
		))
		r.Post("/api/upload/blog-image", h.UploadBlogImage)
		r.Get("/uploads/*", h.ServeUpload)
		r.Head("/uploads/*", h.ServeUpload)
	})

	return r
}

// newHealthHandler avoids handing typed nil pointers to the health checks.
func newHealthHandler(deps *app.Deps, logger *slog.Logger) *handlers.HealthHandler {
	var db, cache, store handlers.HealthChecker
	if deps.DB != nil {
		db = deps.DB
	}
	if deps.Cache != nil {
		cache = deps.Cache
	}
	if c, ok := deps.Storage.(handlers.HealthChecker); ok {
		store = c
	}
	return handlers.NewHealthHandler(logger, db, deps.Services.Tables, cache, store)
}

package app

import (
	"context"
	"fmt"
	"log/slog"

	"gqlblog/internal/auth"
	"gqlblog/internal/cache"
	"gqlblog/internal/config"
	"gqlblog/internal/database"
	"gqlblog/internal/graph"
	"gqlblog/internal/repository"
	"gqlblog/internal/repository/memory"
	"gqlblog/internal/service"
	"gqlblog/internal/storage"

	graphql "github.com/graph-gophers/graphql-go"
)

// Deps holds everything main needs to build the router. DB and Cache are nil
// when not configured.
type Deps struct {
	DB       *database.DB
	Cache    *cache.Cache
	Storage  storage.Storage
	Repo     *repository.Repository
	Services *service.Service
	Tokens   *auth.TokenManager
	Schema   *graphql.Schema
}

func App(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Deps, error) {
	deps := &Deps{}

	// connection DB
	if cfg.DB.Driver == "memory" {
		logger.Warn("using in-memory repositories, data is lost on restart")
		deps.Repo = memory.NewRepository()
	} else {
		db, err := database.ConnectDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		deps.DB = db
		deps.Repo = repository.NewRepository(db.DB)
	}

	// file storage
	store, err := newStorage(ctx, cfg)
	if err != nil {
		deps.Close()
		return nil, err
	}
	deps.Storage = store

	// optional rate limiter backend
	if cfg.RateLimit.RedisURL != "" {
		c, err := cache.New(ctx, cfg.RateLimit.RedisURL)
		if err != nil {
			deps.Close()
			return nil, err
		}
		deps.Cache = c
		logger.Info("connected to Redis")
	}

	deps.Tokens = auth.NewTokenManager(cfg.JWTSecretKey)
	deps.Services = service.NewService(service.Deps{
		Repo:    deps.Repo,
		Tokens:  deps.Tokens,
		Hasher:  auth.NewBcryptHasher(),
		Storage: deps.Storage,
		Logger:  logger,
	})

	schema, err := graph.NewSchema(
		graph.NewResolver(deps.Services, cfg.PublicBaseURL),
		logger,
		graph.Options{DisableIntrospection: cfg.IsProduction()},
	)
	if err != nil {
		deps.Close()
		return nil, err
	}
	deps.Schema = schema

	return deps, nil
}

func newStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	switch cfg.Upload.Backend {
	case "minio":
		client, err := storage.NewMinIOClient(ctx, cfg.MinIO)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize MinIO: %w", err)
		}
		return client, nil
	default:
		return storage.NewDiskStorage(cfg.Upload.Dir)
	}
}

// Close releases the connections App opened. It is safe on a partial Deps.
func (d *Deps) Close() {
	if d.Cache != nil {
		_ = d.Cache.Close()
	}
	if d.DB != nil {
		_ = d.DB.CloseDB()
	}
}

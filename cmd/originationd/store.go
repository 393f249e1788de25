package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/bibbank/loan-origination/internal/domain/port"
	"github.com/bibbank/loan-origination/internal/infrastructure/config"
	"github.com/bibbank/loan-origination/internal/infrastructure/persistence/memory"
	"github.com/bibbank/loan-origination/internal/infrastructure/persistence/postgres"
	"github.com/bibbank/loan-origination/internal/infrastructure/persistence/redis"
	"github.com/bibbank/loan-origination/internal/presentation/rest"
	pkgpostgres "github.com/bibbank/loan-origination/pkg/postgres"
)

// applicationStore is the configured repository with its readiness probe
// and teardown.
type applicationStore struct {
	repo   port.ApplicationRepository
	pinger rest.Pinger
	close  func()
}

func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (applicationStore, error) {
	switch cfg.Store {
	case config.StoreRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		repo := redis.NewApplicationRepo(client, cfg.Redis.SessionTTL)
		if err := repo.Ping(ctx); err != nil {
			_ = client.Close()
			return applicationStore{}, fmt.Errorf("redis ping: %w", err)
		}
		logStoreReady(logger, config.StoreRedis)
		return applicationStore{repo: repo, pinger: repo, close: func() { _ = client.Close() }}, nil

	case config.StorePostgres:
		pgCfg := pkgpostgres.Config{
			Host:     cfg.DB.Host,
			Port:     cfg.DB.Port,
			User:     cfg.DB.User,
			Password: cfg.DB.Password,
			Database: cfg.DB.Name,
			SSLMode:  cfg.DB.SSLMode,
			MaxConns: int32(cfg.DB.MaxConns),
		}
		dbCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		pool, err := pkgpostgres.NewPool(dbCtx, pgCfg)
		if err != nil {
			return applicationStore{}, err
		}
		if err := pkgpostgres.RunMigrations(pgCfg.DSN(), postgres.Migrations, postgres.MigrationsDir); err != nil {
			pool.Close()
			return applicationStore{}, err
		}
		repo := postgres.NewApplicationRepo(pool)
		logStoreReady(logger, config.StorePostgres)
		return applicationStore{repo: repo, pinger: repo, close: pool.Close}, nil

	default:
		repo := memory.NewApplicationRepo()
		logStoreReady(logger, config.StoreMemory)
		return applicationStore{repo: repo, pinger: repo, close: func() {}}, nil
	}
}

func logStoreReady(logger *slog.Logger, kind string) {
	logger.Info("application store ready", "store", kind)
}

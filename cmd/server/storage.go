package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	ports "post-board-service/internal/domain/ports/output"
	post_repository "post-board-service/internal/domain/ports/output/post"
	"post-board-service/internal/infrastructure/config"
	"post-board-service/internal/infrastructure/logger"
	prometheus_metrics "post-board-service/internal/infrastructure/outbound/metrics/prometheus"
	"post-board-service/internal/infrastructure/outbound/repository/migrator"
	"post-board-service/internal/infrastructure/outbound/repository/post/memory"
	post_postgres "post-board-service/internal/infrastructure/outbound/repository/post/postgres"
	post_sqlite "post-board-service/internal/infrastructure/outbound/repository/post/sqlite"
	"post-board-service/internal/infrastructure/outbound/repository/postgres"
)

type storage struct {
	uow      ports.UnitOfWork
	postRepo post_repository.Repository
	close    func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger, metrics ports.MetricsProvider) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		if cfg.Database.AutoMigrate {
			if err := runMigrations(cfg, log, migrator.Up); err != nil {
				return nil, err
			}
		}
		poolConfig, err := pgxpool.ParseConfig(cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("parse postgres pool config: %w", err)
		}
		if cfg.Database.MaxConns > 0 {
			poolConfig.MaxConns = int32(cfg.Database.MaxConns)
		}
		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return nil, fmt.Errorf("create postgres pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		log.Info("Connected to postgres", slog.String("host", cfg.Database.Host), slog.String("db", cfg.Database.DbName))
		return &storage{
			uow:      postgres.NewPostgresUOW(pool, log, metrics),
			postRepo: post_postgres.NewPostRepository(pool, log, metrics),
			close:    pool.Close,
		}, nil

	case config.StorageDriverSQLite:
		store, err := post_sqlite.Open(cfg.SQLite.Path, log, metrics)
		if err != nil {
			return nil, err
		}
		if err := migrateSQLite(store, log, migrator.Up); err != nil {
			_ = store.Close()
			return nil, err
		}
		log.Info("Opened sqlite store", slog.String("path", cfg.SQLite.Path))
		return &storage{
			uow:      store,
			postRepo: store.PostRepository(),
			close: func() {
				if err := store.Close(); err != nil {
					log.Error("Failed to close sqlite store", slog.String("error", err.Error()))
				}
			},
		}, nil

	case config.StorageDriverMemory:
		log.Warn("Using in-memory storage; posts are lost on restart")
		store := memory.NewStore(log)
		return &storage{uow: store, postRepo: store.PostRepository(), close: func() {}}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func runMigrations(cfg *config.Config, log *logger.Logger, direction migrator.Direction) error {
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		m, err := migrator.NewPostgres(cfg.Database.DSN(), log)
		if err != nil {
			return err
		}
		defer func() {
			if err := m.Close(); err != nil {
				log.Warn("Failed to close migrator", slog.String("error", err.Error()))
			}
		}()
		return m.Run(direction)
	case config.StorageDriverSQLite:
		store, err := post_sqlite.Open(cfg.SQLite.Path, log, prometheus_metrics.NewPrometheusMetricsProvider())
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		return migrateSQLite(store, log, direction)
	default:
		return fmt.Errorf("storage driver %q has no schema to migrate", cfg.Storage.Driver)
	}
}

func migrateSQLite(store *post_sqlite.Store, log *logger.Logger, direction migrator.Direction) error {
	m, err := migrator.NewSQLite(store.DB(), log)
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()
	return m.Run(direction)
}

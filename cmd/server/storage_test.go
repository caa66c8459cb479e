package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "post-board-service/internal/domain/models"
	ports "post-board-service/internal/domain/ports/output"
	"post-board-service/internal/infrastructure/config"
	"post-board-service/internal/infrastructure/logger"
	prometheus_metrics "post-board-service/internal/infrastructure/outbound/metrics/prometheus"
	"post-board-service/internal/infrastructure/outbound/repository/migrator"
)

func TestOpenStorage(t *testing.T) {
	log := logger.New("test")
	metrics := prometheus_metrics.NewPrometheusMetricsProvider()

	tests := []struct {
		name string
		cfg  *config.Config
	}{
		{
			name: "memory",
			cfg:  &config.Config{Storage: config.Storage{Driver: config.StorageDriverMemory}},
		},
		{
			name: "sqlite",
			cfg: &config.Config{
				Storage: config.Storage{Driver: config.StorageDriverSQLite},
				SQLite:  config.SQLite{Path: filepath.Join(t.TempDir(), "posts.db")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store, err := openStorage(ctx, tt.cfg, log, metrics)
			require.NoError(t, err)
			defer store.close()

			tx, err := store.uow.Begin(ctx, ports.TxOptions{})
			require.NoError(t, err)
			created, err := tx.PostRepository().Create(ctx, &model.Post{Title: "t", Content: "c", Author: "a"})
			require.NoError(t, err)
			require.NoError(t, tx.Commit(ctx))

			got, err := store.postRepo.GetByID(ctx, created.ID)
			require.NoError(t, err)
			assert.Equal(t, "a", got.Author)
		})
	}
}

func TestOpenStorage_UnknownDriver(t *testing.T) {
	cfg := &config.Config{Storage: config.Storage{Driver: "mongo"}}
	_, err := openStorage(context.Background(), cfg, logger.New("test"), prometheus_metrics.NewPrometheusMetricsProvider())
	assert.Error(t, err)
}

func TestRunMigrations_MemoryHasNoSchema(t *testing.T) {
	cfg := &config.Config{Storage: config.Storage{Driver: config.StorageDriverMemory}}
	assert.Error(t, runMigrations(cfg, logger.New("test"), migrator.Up))
}

func TestRunMigrations_SQLiteUpDown(t *testing.T) {
	cfg := &config.Config{
		Storage: config.Storage{Driver: config.StorageDriverSQLite},
		SQLite:  config.SQLite{Path: filepath.Join(t.TempDir(), "posts.db")},
	}
	log := logger.New("test")

	require.NoError(t, runMigrations(cfg, log, migrator.Up))
	require.NoError(t, runMigrations(cfg, log, migrator.Up))
	require.NoError(t, runMigrations(cfg, log, migrator.Down))
}

package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/storefront/internal/health"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
	"github.com/vladislavdragonenkov/storefront/internal/storage/postgres"
	"github.com/vladislavdragonenkov/storefront/internal/storage/sqlite"
)

type storageDependencies struct {
	kv             domain.KeyValueStore
	storageChecker healthcheck.Checker
	closeFn        func() error
}

// initStorage открывает хранилище, выбранное в cfg.StorageDriver.
func initStorage(ctx context.Context, cfg Config, logger *log.Entry) (*storageDependencies, error) {
	switch cfg.StorageDriver {
	case StorageDriverMemory:
		logger.Info("используется in-memory хранилище, состояние не сохранится после выхода")
		return &storageDependencies{
			kv:             memory.NewKVStore(),
			storageChecker: healthcheck.NewSimpleChecker("storage", func() error { return nil }),
		}, nil

	case StorageDriverSQLite:
		if cfg.SQLitePath == "" {
			return nil, fmt.Errorf("sqlite path is required for sqlite storage")
		}
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.WithField("path", cfg.SQLitePath).Debug("sqlite storage opened")
		return &storageDependencies{
			kv:             store,
			storageChecker: healthcheck.NewSimpleChecker("storage", store.Ping),
			closeFn:        store.Close,
		}, nil

	case StorageDriverPostgres:
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres dsn is required for postgres storage")
		}
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if cfg.PostgresAutoMigrate {
			if err := store.MigrateUp(ctx, 0); err != nil {
				_ = store.Close()
				return nil, fmt.Errorf("apply postgres migrations: %w", err)
			}
		}
		namespace := cfg.PostgresNamespace
		if namespace == "" {
			namespace = postgres.DefaultNamespace
		}
		logger.WithField("namespace", namespace).Info("postgres storage opened")
		return &storageDependencies{
			kv:             postgres.NewKVStore(store, namespace),
			storageChecker: healthcheck.NewPingChecker("storage", store.Ping, 0),
			closeFn:        store.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

// Package persistence selects the store implementation named by the configuration.
package persistence

import (
	"context"
	"fmt"

	"project_billing/internal/adapter/persistence/gormstore"
	"project_billing/internal/adapter/persistence/memory"
	"project_billing/internal/adapter/persistence/repository"
	"project_billing/internal/infrastructure/config"
	"project_billing/internal/infrastructure/database"
	"project_billing/internal/infrastructure/logger"
	"project_billing/internal/usecase/interfaces"
)

// Open connects the store for cfg.StoreDriver. The returned close func releases the
// underlying connection and is never nil.
func Open(ctx context.Context, cfg config.Config, log *logger.Logger) (interfaces.IStore, func(), error) {
	noop := func() {}
	switch cfg.StoreDriver {
	case config.StoreMemory:
		log.Warn("using in-memory store; data is lost on restart")
		return memory.New(), noop, nil

	case config.StoreDynamoDB:
		client, err := database.ConnectDynamoDB(ctx, cfg)
		if err != nil {
			return nil, noop, err
		}
		log.Info("dynamodb store ready", "region", cfg.AWSRegion, "endpoint", cfg.DynamoDBEndpoint)
		return repository.NewStore(client, cfg.Tables), noop, nil

	case config.StorePostgres:
		db, err := database.ConnectPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		store := gormstore.New(db)
		if err := store.AutoMigrate(ctx); err != nil {
			return nil, noop, fmt.Errorf("migrate postgres schema: %w", err)
		}
		closeDB := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		log.Info("postgres store ready")
		return store, closeDB, nil

	default:
		return nil, noop, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

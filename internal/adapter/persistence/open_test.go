package persistence

import (
	"context"
	"testing"

	"project_billing/internal/adapter/persistence/memory"
	"project_billing/internal/infrastructure/config"
	"project_billing/internal/infrastructure/logger"
)

func TestOpen(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		store, closeFn, err := Open(context.Background(), config.Config{StoreDriver: config.StoreMemory}, logger.NewNop())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer closeFn()
		if _, ok := store.(*memory.Store); !ok {
			t.Fatalf("expected memory store, got %T", store)
		}
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, closeFn, err := Open(context.Background(), config.Config{StoreDriver: "mongo"}, logger.NewNop())
		if err == nil {
			t.Fatalf("expected error for unknown driver")
		}
		closeFn()
	})

	t.Run("postgres requires a dsn", func(t *testing.T) {
		_, _, err := Open(context.Background(), config.Config{StoreDriver: config.StorePostgres}, logger.NewNop())
		if err == nil {
			t.Fatalf("expected error without DB_URL")
		}
	})
}

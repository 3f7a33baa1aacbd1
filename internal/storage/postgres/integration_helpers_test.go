package postgres

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"
)

// openStoreForIntegrationTest подключается к STOREFRONT_TEST_POSTGRES_DSN или пропускает тест.
func openStoreForIntegrationTest(t *testing.T) *Store {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("STOREFRONT_TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("STOREFRONT_TEST_POSTGRES_DSN is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store, err := Open(ctx, dsn)
	if err != nil {
		t.Skipf("postgres is not available for integration tests: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.MigrateUp(ctx, 0); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
	if _, err := store.db.ExecContext(ctx, `TRUNCATE TABLE kv_entries`); err != nil {
		t.Fatalf("truncate kv_entries: %v", err)
	}
	return store
}

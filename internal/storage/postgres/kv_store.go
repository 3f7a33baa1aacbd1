package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

const opTimeout = 5 * time.Second

// DefaultNamespace используется, если профиль не задан.
const DefaultNamespace = "default"

type kvStore struct {
	db        *sql.DB
	namespace string
}

// NewKVStore создаёт KeyValueStore поверх таблицы kv_entries.
// namespace изолирует ключи разных профилей в общей базе.
func NewKVStore(store *Store, namespace string) domain.KeyValueStore {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &kvStore{db: store.db, namespace: namespace}
}

func (s *kvStore) Get(key string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var value string
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM kv_entries WHERE namespace = $1 AND key = $2
	`, s.namespace, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("select kv entry %q: %w", key, err)
	}
	return value, nil
}

func (s *kvStore) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_entries (namespace, key, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (namespace, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`, s.namespace, key, value)
	if err != nil {
		return fmt.Errorf("upsert kv entry %q: %w", key, err)
	}
	return nil
}

func (s *kvStore) Delete(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	for _, key := range keys {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM kv_entries WHERE namespace = $1 AND key = $2
		`, s.namespace, key); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("delete kv entry %q: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}
	return nil
}

var _ domain.KeyValueStore = (*kvStore)(nil)

// Package sqlite хранит локальное состояние клиента (токены, корзину) в файле SQLite.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv_entries (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// Store — файловое KV-хранилище на SQLite.
type Store struct {
	db *sqlx.DB
}

// Open открывает (или создаёт) базу по пути path и готовит схему.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create state dir: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Один писатель: SQLite всё равно сериализует запись.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure sqlite schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Ping проверяет, что файл базы доступен.
func (s *Store) Ping() error {
	if s == nil || s.db == nil {
		return errors.New("sqlite store is not initialized")
	}
	return s.db.Ping()
}

// Close закрывает базу.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Get(key string) (string, error) {
	var value string
	err := s.db.Get(&value, `SELECT value FROM kv_entries WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("select kv entry %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) Set(key, value string) error {
	_, err := s.db.NamedExec(`
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES (:key, :value, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, map[string]interface{}{"key": key, "value": value})
	if err != nil {
		return fmt.Errorf("upsert kv entry %q: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM kv_entries WHERE key IN (?)`, keys)
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}
	if _, err := s.db.Exec(s.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("delete kv entries: %w", err)
	}
	return nil
}

var _ domain.KeyValueStore = (*Store)(nil)

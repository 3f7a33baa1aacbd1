package memory

import (
	"sync"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// kvStoreInMemory — in-memory реализация KeyValueStore для тестов и режима driver=memory.
type kvStoreInMemory struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewKVStore возвращает пустое in-memory хранилище.
func NewKVStore() domain.KeyValueStore {
	return &kvStoreInMemory{
		items: make(map[string]string),
	}
}

// Get возвращает значение или ErrKeyNotFound.
func (s *kvStoreInMemory) Get(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.items[key]
	if !ok {
		return "", domain.ErrKeyNotFound
	}
	return value, nil
}

// Set перезаписывает значение ключа.
func (s *kvStoreInMemory) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = value
	return nil
}

// Delete удаляет ключи, отсутствующие пропускает.
func (s *kvStoreInMemory) Delete(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		delete(s.items, key)
	}
	return nil
}

var _ domain.KeyValueStore = (*kvStoreInMemory)(nil)

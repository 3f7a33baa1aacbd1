package cart

import (
	"encoding/json"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// Persister сохраняет корзину целиком в KeyValueStore под ключом domain.KeyCart.
type Persister struct {
	kv domain.KeyValueStore
}

// NewPersister создаёт наблюдателя, сохраняющего корзину.
func NewPersister(kv domain.KeyValueStore) *Persister {
	return &Persister{kv: kv}
}

// CartChanged сериализует позиции в JSON и записывает их.
func (p *Persister) CartChanged(items []domain.CartItem) error {
	if items == nil {
		items = []domain.CartItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := p.kv.Set(domain.KeyCart, string(raw)); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}

// ErrCorruptCart — сохранённая корзина не разбирается как JSON.
var ErrCorruptCart = errors.New("persisted cart is corrupt")

// Load читает сохранённую корзину и нормализует её. Отсутствие ключа — пустая корзина
// без ошибки; ошибка чтения и повреждённый JSON возвращаются вызывающему.
func Load(kv domain.KeyValueStore) ([]domain.CartItem, error) {
	raw, err := kv.Get(domain.KeyCart)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read persisted cart: %w", err)
	}

	var items []domain.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCart, err)
	}
	return normalize(items), nil
}

// Restore читает сохранённую корзину. Отсутствие ключа, ошибка чтения или
// повреждённый JSON дают пустую корзину: это никогда не фатально.
func Restore(kv domain.KeyValueStore, logger *log.Entry) []domain.CartItem {
	if logger == nil {
		logger = log.WithField("component", "cart")
	}

	items, err := Load(kv)
	if err != nil {
		logger.WithError(err).Warn("persisted cart is unavailable, starting empty")
		return nil
	}
	return items
}

// StoredCart — корзина, которую видят другие процессы: каждое чтение идёт в хранилище.
// Агент читает через неё изменения, сделанные командами CLI.
type StoredCart struct {
	kv domain.KeyValueStore
}

// NewStoredCart создаёт чтение корзины из kv.
func NewStoredCart(kv domain.KeyValueStore) *StoredCart {
	return &StoredCart{kv: kv}
}

// Items возвращает текущее сохранённое содержимое корзины.
func (c *StoredCart) Items() ([]domain.CartItem, error) {
	return Load(c.kv)
}

// Open восстанавливает корзину из kv и подписывает Persister, так что каждое
// следующее изменение сохраняется до возврата из метода Store.
func Open(kv domain.KeyValueStore, opts ...Option) *Store {
	s := NewStore(opts...)
	s.hydrate(Restore(kv, s.logger))
	s.Subscribe(NewPersister(kv))
	return s
}

var _ Observer = (*Persister)(nil)

// Package cart реализует локальную корзину покупателя: список позиций, производные
// итоги и уведомление наблюдателей (сохранение, события) после каждого изменения.
package cart

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
)

// Observer получает полный снимок корзины после каждого изменения.
// Вызывается под блокировкой Store и не должен обращаться к Store.
type Observer interface {
	CartChanged(items []domain.CartItem) error
}

// ObserverFunc позволяет использовать функцию как Observer.
type ObserverFunc func(items []domain.CartItem) error

func (f ObserverFunc) CartChanged(items []domain.CartItem) error { return f(items) }

// Option настраивает Store.
type Option func(*Store)

// WithObserver подписывает наблюдателя при создании.
func WithObserver(o Observer) Option {
	return func(s *Store) {
		s.observers = append(s.observers, o)
	}
}

// WithMetrics включает учёт изменений корзины.
func WithMetrics(m *metrics.ClientMetrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// WithLogger задаёт logger.
func WithLogger(logger *log.Entry) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// Store — корзина. Все изменения проходят через методы Store; итоги вычисляются
// из текущего списка при каждом чтении.
type Store struct {
	mu        sync.Mutex
	items     []domain.CartItem
	observers []Observer
	metrics   *metrics.ClientMetrics
	logger    *log.Entry
}

// NewStore создаёт пустую корзину.
func NewStore(opts ...Option) *Store {
	s := &Store{}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.WithField("component", "cart")
	}
	return s
}

// Subscribe добавляет наблюдателя.
func (s *Store) Subscribe(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// AddToCart увеличивает количество существующей позиции на 1 (позиция не меняет места)
// или добавляет товар в конец с количеством 1.
func (s *Store) AddToCart(p domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexOf(p.ID); idx >= 0 {
		s.items[idx].Quantity++
	} else {
		s.items = append(s.items, domain.CartItemFromProduct(p))
	}
	return s.changed("add")
}

// RemoveFromCart удаляет позицию. Отсутствующий id — не ошибка.
func (s *Store) RemoveFromCart(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}
	s.items = append(s.items[:idx:idx], s.items[idx+1:]...)
	return s.changed("remove")
}

// UpdateQuantity выставляет количество max(1, quantity). Отсутствующий id — не ошибка.
func (s *Store) UpdateQuantity(id int64, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil
	}
	s.items[idx].Quantity = max(1, quantity)
	return s.changed("update")
}

// ClearCart очищает корзину.
func (s *Store) ClearCart() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	return s.changed("clear")
}

// LoadCart заменяет содержимое целиком. Дубликаты id сливаются, количество
// приводится к >= 1.
func (s *Store) LoadCart(items []domain.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = normalize(items)
	return s.changed("load")
}

// hydrate загружает восстановленное состояние без уведомления наблюдателей.
func (s *Store) hydrate(items []domain.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = normalize(items)
}

// Items возвращает копию позиций в порядке добавления.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Len возвращает число позиций (а не единиц товара).
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Total возвращает Σ price*quantity.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return total(s.items)
}

// Count возвращает Σ quantity.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return count(s.items)
}

func (s *Store) indexOf(id int64) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) snapshot() []domain.CartItem {
	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// changed уведомляет наблюдателей. Изменение в памяти остаётся применённым,
// даже если кто-то из наблюдателей вернул ошибку.
func (s *Store) changed(op string) error {
	s.metrics.RecordCartMutation(op, count(s.items))

	items := s.snapshot()
	var errs []error
	for _, o := range s.observers {
		if err := o.CartChanged(items); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		err := errors.Join(errs...)
		s.logger.WithError(err).WithField("op", op).Warn("cart observer failed")
		return err
	}
	return nil
}

func total(items []domain.CartItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.LineTotal())
	}
	return sum
}

func count(items []domain.CartItem) int {
	n := 0
	for _, item := range items {
		n += item.Quantity
	}
	return n
}

func normalize(items []domain.CartItem) []domain.CartItem {
	if len(items) == 0 {
		return nil
	}
	out := make([]domain.CartItem, 0, len(items))
	pos := make(map[int64]int, len(items))
	for _, item := range items {
		item.Quantity = max(1, item.Quantity)
		if idx, ok := pos[item.ID]; ok {
			out[idx].Quantity += item.Quantity
			continue
		}
		pos[item.ID] = len(out)
		out = append(out, item)
	}
	return out
}

// Package cartsync переносит локальную корзину в серверную копию, чтобы корзина
// была доступна на других устройствах пользователя.
package cartsync

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
)

const defaultPollInterval = 30 * time.Second

// Результаты прогона.
const (
	ResultSynced  = "synced"
	ResultSkipped = "skipped"
	ResultFailed  = "failed"
)

// CartSource — локальная корзина. Агент читает её из общего хранилища на каждом
// прогоне (cart.StoredCart), потому что меняют её другие процессы.
type CartSource interface {
	Items() ([]domain.CartItem, error)
}

// RemoteCart — серверная копия корзины.
type RemoteCart interface {
	Get(ctx context.Context) (domain.ServerCart, error)
	Clear(ctx context.Context) error
	AddItem(ctx context.Context, productID int64, quantity int) (domain.ServerCart, error)
}

// Session сообщает, вошёл ли пользователь.
type Session interface {
	LoggedIn() bool
}

// WorkerOptions задаёт параметры воркера синхронизации.
type WorkerOptions struct {
	Logger       *log.Entry
	Metrics      *metrics.ClientMetrics
	PollInterval time.Duration
	Retry        RetryConfig
}

// Option настраивает Worker.
type Option func(*WorkerOptions)

// WithLogger задаёт logger для воркера.
func WithLogger(logger *log.Entry) Option {
	return func(opts *WorkerOptions) {
		opts.Logger = logger
	}
}

// WithMetrics включает счётчик storefront_cart_sync_total.
func WithMetrics(m *metrics.ClientMetrics) Option {
	return func(opts *WorkerOptions) {
		opts.Metrics = m
	}
}

// WithPollInterval задаёт частоту проверки корзины.
func WithPollInterval(interval time.Duration) Option {
	return func(opts *WorkerOptions) {
		opts.PollInterval = interval
	}
}

// WithRetry задаёт политику повторов.
func WithRetry(cfg RetryConfig) Option {
	return func(opts *WorkerOptions) {
		opts.Retry = cfg
	}
}

// Worker периодически сравнивает отпечаток локальной корзины с последним
// синхронизированным и, если они разошлись, перезаписывает серверную корзину.
type Worker struct {
	cart         CartSource
	remote       RemoteCart
	session      Session
	logger       *log.Entry
	metrics      *metrics.ClientMetrics
	pollInterval time.Duration
	retry        RetryConfig

	mu     sync.Mutex
	synced string
}

// NewWorker создаёт воркер синхронизации.
func NewWorker(cart CartSource, remote RemoteCart, session Session, options ...Option) *Worker {
	opts := WorkerOptions{
		PollInterval: defaultPollInterval,
		Retry:        DefaultRetryConfig(),
	}
	for _, option := range options {
		option(&opts)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.WithField("component", "cart-sync")
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	if opts.Retry.MaxAttempts <= 0 {
		opts.Retry.MaxAttempts = 1
	}

	return &Worker{
		cart:         cart,
		remote:       remote,
		session:      session,
		logger:       logger,
		metrics:      opts.Metrics,
		pollInterval: opts.PollInterval,
		retry:        opts.Retry,
	}
}

// Run запускает периодическую синхронизацию до отмены ctx.
func (w *Worker) Run(ctx context.Context) {
	if w.cart == nil || w.remote == nil || w.session == nil {
		w.logger.Warn("cart sync worker is disabled: cart, remote or session is nil")
		return
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.ProcessOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.ProcessOnce(ctx)
		}
	}
}

// ProcessOnce выполняет один цикл и возвращает его результат.
func (w *Worker) ProcessOnce(ctx context.Context) string {
	if ctx.Err() != nil {
		return ResultSkipped
	}
	result := w.process(ctx)
	w.metrics.RecordCartSync(result)
	return result
}

func (w *Worker) process(ctx context.Context) string {
	if !w.session.LoggedIn() {
		return ResultSkipped
	}

	items, err := w.cart.Items()
	if err != nil {
		w.logger.WithError(err).Warn("local cart is unreadable, server cart left as is")
		return ResultFailed
	}
	fingerprint := Fingerprint(items)

	w.mu.Lock()
	unchanged := fingerprint == w.synced
	neverSynced := w.synced == ""
	w.mu.Unlock()
	if unchanged {
		return ResultSkipped
	}
	// Пустая корзина до первой синхронизации не затирает серверную,
	// собранную на другом устройстве.
	if neverSynced && len(items) == 0 {
		return ResultSkipped
	}

	if err := w.pushWithRetry(ctx, items); err != nil {
		w.logger.WithError(err).WithField("lines", len(items)).Warn("cart sync failed")
		return ResultFailed
	}

	w.mu.Lock()
	w.synced = fingerprint
	w.mu.Unlock()

	w.logger.WithFields(log.Fields{
		"lines":       len(items),
		"fingerprint": fingerprint[:12],
	}).Info("cart synced to server")
	return ResultSynced
}

func (w *Worker) pushWithRetry(ctx context.Context, items []domain.CartItem) error {
	var lastErr error

	for attempt := 1; attempt <= w.retry.MaxAttempts; attempt++ {
		err := w.push(ctx, items)
		if err == nil {
			if attempt > 1 {
				w.logger.WithField("attempt", attempt).Info("cart sync succeeded after retry")
			}
			return nil
		}
		lastErr = err

		if !shouldRetry(err) || attempt >= w.retry.MaxAttempts {
			break
		}

		delay := w.retry.Delay(attempt)
		w.logger.WithError(err).WithFields(log.Fields{
			"attempt": attempt,
			"delay":   delay,
		}).Debug("cart sync failed, retrying")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return fmt.Errorf("sync cart: %w", lastErr)
}

// push перезаписывает серверную корзину, если её содержимое отличается от локального.
func (w *Worker) push(ctx context.Context, items []domain.CartItem) error {
	current, err := w.remote.Get(ctx)
	if err != nil {
		return fmt.Errorf("get server cart: %w", err)
	}
	if serverFingerprint(current) == Fingerprint(items) {
		return nil
	}

	if err := w.remote.Clear(ctx); err != nil {
		return fmt.Errorf("clear server cart: %w", err)
	}
	for _, item := range items {
		if _, err := w.remote.AddItem(ctx, item.ID, item.Quantity); err != nil {
			return fmt.Errorf("add product %d: %w", item.ID, err)
		}
	}
	return nil
}

// Fingerprint — отпечаток состава корзины: набор пар товар/количество без учёта порядка.
func Fingerprint(items []domain.CartItem) string {
	pairs := make(map[int64]int, len(items))
	for _, item := range items {
		pairs[item.ID] += item.Quantity
	}
	return fingerprint(pairs)
}

func serverFingerprint(c domain.ServerCart) string {
	pairs := make(map[int64]int, len(c.Items))
	for _, item := range c.Items {
		pairs[item.Product.ID] += item.Quantity
	}
	return fingerprint(pairs)
}

func fingerprint(pairs map[int64]int) string {
	ids := make([]int64, 0, len(pairs))
	for id := range pairs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var b strings.Builder
	for _, id := range ids {
		b.WriteString(strconv.FormatInt(id, 10))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(pairs[id]))
		b.WriteByte(';')
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

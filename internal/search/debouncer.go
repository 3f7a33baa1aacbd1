// Package search откладывает поиск по каталогу, пока пользователь печатает.
package search

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// DefaultDelay — пауза ввода, после которой запрос действительно отправляется.
const DefaultDelay = 300 * time.Millisecond

// SearchFunc выполняет поиск.
type SearchFunc func(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)

// ResultFunc получает результат последнего актуального поиска.
type ResultFunc func(filter domain.ProductFilter, products []domain.Product, err error)

// Debouncer выполняет только последний из запросов, между которыми прошло меньше delay.
// Ответы устаревших запросов, уже ушедших в сеть, отбрасываются по номеру запроса.
type Debouncer struct {
	search   SearchFunc
	onResult ResultFunc
	delay    time.Duration
	logger   *log.Entry

	mu     sync.Mutex
	seq    uint64
	timer  *time.Timer
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewDebouncer создаёт Debouncer; delay <= 0 означает DefaultDelay.
func NewDebouncer(search SearchFunc, onResult ResultFunc, delay time.Duration, logger *log.Entry) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	if logger == nil {
		logger = log.WithField("component", "search")
	}
	return &Debouncer{search: search, onResult: onResult, delay: delay, logger: logger}
}

// Trigger планирует поиск, отменяя предыдущий запланированный или идущий.
func (d *Debouncer) Trigger(ctx context.Context, filter domain.ProductFilter) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	seq := d.seq
	if d.timer != nil && d.timer.Stop() {
		d.wg.Done()
	}
	if d.cancel != nil {
		d.cancel()
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.wg.Add(1)
	d.timer = time.AfterFunc(d.delay, func() {
		defer d.wg.Done()
		d.run(runCtx, seq, filter)
	})
}

// Wait дожидается запланированного поиска и доставки его результата.
func (d *Debouncer) Wait() {
	d.wg.Wait()
}

// Stop отменяет запланированный и идущий поиск.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.seq++
	if d.timer != nil && d.timer.Stop() {
		d.wg.Done()
	}
	if d.cancel != nil {
		d.cancel()
	}
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Debouncer) run(ctx context.Context, seq uint64, filter domain.ProductFilter) {
	products, err := d.search(ctx, filter)

	d.mu.Lock()
	stale := seq != d.seq
	d.mu.Unlock()
	if stale {
		d.logger.WithField("search", filter.Search).Debug("discarding stale search result")
		return
	}
	d.onResult(filter, products, err)
}

package search

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

type collector struct {
	mu      sync.Mutex
	queries []string
}

func (c *collector) onResult(filter domain.ProductFilter, _ []domain.Product, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err == nil {
		c.queries = append(c.queries, filter.Search)
	}
}

func (c *collector) got() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.queries...)
}

func TestDebouncer_LastCallWins(t *testing.T) {
	var calls atomic.Int32
	search := func(_ context.Context, f domain.ProductFilter) ([]domain.Product, error) {
		calls.Add(1)
		return []domain.Product{{Name: f.Search}}, nil
	}
	c := &collector{}
	d := NewDebouncer(search, c.onResult, 30*time.Millisecond, nil)

	for _, q := range []string{"m", "mu", "mug"} {
		d.Trigger(context.Background(), domain.ProductFilter{Search: q})
		time.Sleep(5 * time.Millisecond)
	}
	d.Wait()

	if calls.Load() != 1 {
		t.Fatalf("expected one search, got %d", calls.Load())
	}
	if got := c.got(); len(got) != 1 || got[0] != "mug" {
		t.Fatalf("unexpected results %v", got)
	}
}

func TestDebouncer_StaleInFlightResultDiscarded(t *testing.T) {
	started := make(chan struct{})
	search := func(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error) {
		if f.Search == "slow" {
			close(started)
			<-ctx.Done()
			return nil, nil
		}
		return nil, nil
	}
	c := &collector{}
	d := NewDebouncer(search, c.onResult, time.Millisecond, nil)

	d.Trigger(context.Background(), domain.ProductFilter{Search: "slow"})
	<-started
	d.Trigger(context.Background(), domain.ProductFilter{Search: "fast"})
	d.Wait()

	if got := c.got(); len(got) != 1 || got[0] != "fast" {
		t.Fatalf("unexpected results %v", got)
	}
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	var calls atomic.Int32
	search := func(context.Context, domain.ProductFilter) ([]domain.Product, error) {
		calls.Add(1)
		return nil, nil
	}
	d := NewDebouncer(search, func(domain.ProductFilter, []domain.Product, error) {}, 20*time.Millisecond, nil)

	d.Trigger(context.Background(), domain.ProductFilter{Search: "x"})
	d.Stop()
	time.Sleep(40 * time.Millisecond)

	if calls.Load() != 0 {
		t.Fatalf("stopped debouncer must not search, got %d calls", calls.Load())
	}
}

func TestNewDebouncer_DefaultDelay(t *testing.T) {
	d := NewDebouncer(nil, nil, 0, nil)
	if d.delay != DefaultDelay {
		t.Fatalf("expected %v, got %v", DefaultDelay, d.delay)
	}
}

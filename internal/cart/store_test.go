package cart_test

import (
	"errors"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/storefront/internal/cart"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func product(id int64, price string) domain.Product {
	return domain.Product{ID: id, Name: "p", Price: decimal.RequireFromString(price), Image: "📦"}
}

func TestStore_AddSameProductTwice(t *testing.T) {
	s := cart.NewStore()

	if err := s.AddToCart(product(1, "10")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.AddToCart(product(1, "10")); err != nil {
		t.Fatalf("add: %v", err)
	}

	items := s.Items()
	if len(items) != 1 {
		t.Fatalf("expected one line, got %d", len(items))
	}
	if items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", items[0].Quantity)
	}
	if !s.Total().Equal(decimal.NewFromInt(20)) {
		t.Fatalf("expected total 20, got %s", s.Total())
	}
	if s.Count() != 2 {
		t.Fatalf("expected count 2, got %d", s.Count())
	}
}

func TestStore_AddKeepsInsertionOrder(t *testing.T) {
	s := cart.NewStore()
	_ = s.AddToCart(product(1, "1"))
	_ = s.AddToCart(product(2, "2"))
	_ = s.AddToCart(product(3, "3"))
	_ = s.AddToCart(product(1, "1"))

	var ids []int64
	for _, item := range s.Items() {
		ids = append(ids, item.ID)
	}
	if diff := cmp.Diff([]int64{1, 2, 3}, ids); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestStore_UpdateQuantityClampsToOne(t *testing.T) {
	s := cart.NewStore()
	_ = s.AddToCart(product(1, "5"))

	for _, q := range []int{0, -3} {
		if err := s.UpdateQuantity(1, q); err != nil {
			t.Fatalf("update: %v", err)
		}
		if got := s.Items()[0].Quantity; got != 1 {
			t.Fatalf("UpdateQuantity(1, %d) gave %d, want 1", q, got)
		}
	}

	_ = s.UpdateQuantity(1, 7)
	if got := s.Items()[0].Quantity; got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
}

func TestStore_AbsentIDIsNoop(t *testing.T) {
	var calls int
	s := cart.NewStore(cart.WithObserver(cart.ObserverFunc(func([]domain.CartItem) error {
		calls++
		return nil
	})))
	_ = s.AddToCart(product(1, "5"))
	before := s.Items()

	if err := s.RemoveFromCart(42); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := s.UpdateQuantity(42, 3); err != nil {
		t.Fatalf("update: %v", err)
	}

	if diff := cmp.Diff(before, s.Items()); diff != "" {
		t.Fatalf("cart changed (-before +after):\n%s", diff)
	}
	if calls != 1 {
		t.Fatalf("no-op operations must not notify observers, got %d calls", calls)
	}
}

func TestStore_RemoveAndClear(t *testing.T) {
	s := cart.NewStore()
	_ = s.AddToCart(product(1, "1"))
	_ = s.AddToCart(product(2, "2"))

	_ = s.RemoveFromCart(1)
	if items := s.Items(); len(items) != 1 || items[0].ID != 2 {
		t.Fatalf("unexpected items after remove: %+v", items)
	}

	_ = s.ClearCart()
	if s.Len() != 0 || s.Count() != 0 || !s.Total().IsZero() {
		t.Fatalf("expected empty cart, got %+v", s.Items())
	}
}

func TestStore_LoadCartNormalizes(t *testing.T) {
	s := cart.NewStore()
	err := s.LoadCart([]domain.CartItem{
		{ID: 1, Price: decimal.NewFromInt(2), Quantity: 2},
		{ID: 2, Price: decimal.NewFromInt(3), Quantity: 0},
		{ID: 1, Price: decimal.NewFromInt(2), Quantity: 1},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	items := s.Items()
	if len(items) != 2 || items[0].ID != 1 || items[0].Quantity != 3 || items[1].Quantity != 1 {
		t.Fatalf("unexpected normalized items: %+v", items)
	}
}

func TestStore_ItemsIsACopy(t *testing.T) {
	s := cart.NewStore()
	_ = s.AddToCart(product(1, "1"))

	items := s.Items()
	items[0].Quantity = 100

	if s.Count() != 1 {
		t.Fatalf("external mutation leaked into store: %d", s.Count())
	}
}

func TestStore_ObserverErrorKeepsMutation(t *testing.T) {
	boom := errors.New("disk full")
	s := cart.NewStore(cart.WithObserver(cart.ObserverFunc(func([]domain.CartItem) error { return boom })))

	err := s.AddToCart(product(1, "1"))
	if !errors.Is(err, boom) {
		t.Fatalf("expected observer error, got %v", err)
	}
	if s.Count() != 1 {
		t.Fatalf("mutation must stay applied, count=%d", s.Count())
	}
}

// Модель корзины для сравнения: карта id -> (цена, количество) плюс порядок.
type model struct {
	order []int64
	qty   map[int64]int
	price map[int64]decimal.Decimal
}

func (m *model) total() decimal.Decimal {
	sum := decimal.Zero
	for _, id := range m.order {
		sum = sum.Add(m.price[id].Mul(decimal.NewFromInt(int64(m.qty[id]))))
	}
	return sum
}

func TestStore_TotalMatchesRandomOperations(t *testing.T) {
	for seed := uint64(1); seed <= 50; seed++ {
		rng := rand.New(rand.NewPCG(seed, seed*7))
		s := cart.NewStore()
		m := &model{qty: map[int64]int{}, price: map[int64]decimal.Decimal{}}

		for step := 0; step < 200; step++ {
			id := rng.Int64N(8) + 1
			switch rng.IntN(5) {
			case 0, 1:
				price := decimal.New(int64(id)*137+3, -2)
				_ = s.AddToCart(domain.Product{ID: id, Price: price})
				if _, ok := m.qty[id]; !ok {
					m.order = append(m.order, id)
					m.price[id] = price
				}
				m.qty[id]++
			case 2:
				_ = s.RemoveFromCart(id)
				if _, ok := m.qty[id]; ok {
					delete(m.qty, id)
					for i, v := range m.order {
						if v == id {
							m.order = append(m.order[:i], m.order[i+1:]...)
							break
						}
					}
				}
			case 3:
				q := rng.IntN(10) - 3
				_ = s.UpdateQuantity(id, q)
				if _, ok := m.qty[id]; ok {
					m.qty[id] = max(1, q)
				}
			case 4:
				if rng.IntN(20) == 0 {
					_ = s.ClearCart()
					m = &model{qty: map[int64]int{}, price: map[int64]decimal.Decimal{}}
				}
			}

			if !s.Total().Equal(m.total()) {
				t.Fatalf("seed %d step %d: total %s, model %s", seed, step, s.Total(), m.total())
			}
			wantCount := 0
			for _, q := range m.qty {
				wantCount += q
			}
			if s.Count() != wantCount {
				t.Fatalf("seed %d step %d: count %d, model %d", seed, step, s.Count(), wantCount)
			}
			for _, item := range s.Items() {
				if item.Quantity < 1 {
					t.Fatalf("seed %d step %d: quantity below one: %+v", seed, step, item)
				}
			}
		}
	}
}

func TestStore_ConcurrentAddsDoNotLoseUpdates(t *testing.T) {
	s := cart.NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.AddToCart(product(1, "1.10"))
		}()
	}
	wg.Wait()

	if s.Len() != 1 || s.Count() != 100 {
		t.Fatalf("expected one line with 100 units, got %+v", s.Items())
	}
	if !s.Total().Equal(decimal.RequireFromString("110")) {
		t.Fatalf("unexpected total %s", s.Total())
	}
}

package checkout_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/cart"
	"github.com/vladislavdragonenkov/storefront/internal/checkout"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

var validAddress = domain.Address{Street: "1 Main St", City: "Springfield", Zip: "12345", Country: "US"}

type countingObserver struct {
	clears atomic.Int32
}

func (o *countingObserver) CartChanged(items []domain.CartItem) error {
	if len(items) == 0 {
		o.clears.Add(1)
	}
	return nil
}

func newCart(t *testing.T, opts ...cart.Option) *cart.Store {
	t.Helper()
	s := cart.NewStore(opts...)
	require.NoError(t, s.AddToCart(domain.Product{ID: 1, Name: "Mug", Price: decimal.NewFromInt(10)}))
	return s
}

func toPayment(t *testing.T, f *checkout.Flow) {
	t.Helper()
	require.NoError(t, f.ProceedToCheckout())
	require.NoError(t, f.SubmitAddress(validAddress))
	require.Equal(t, domain.CheckoutStepPayment, f.Step())
}

func TestFlow_EmptyCartCannotProceed(t *testing.T) {
	f := checkout.NewFlow(cart.NewStore())

	err := f.ProceedToCheckout()
	require.ErrorIs(t, err, domain.ErrEmptyCart)
	require.Equal(t, domain.CheckoutStepCart, f.Step())
}

func TestFlow_IncompleteAddressIsRefused(t *testing.T) {
	f := checkout.NewFlow(newCart(t))
	require.NoError(t, f.ProceedToCheckout())

	cases := []domain.Address{
		{},
		{Street: "1 Main St", City: "Springfield", Zip: "12345"},
		{Street: "   ", City: "Springfield", Zip: "12345", Country: "US"},
	}
	for _, addr := range cases {
		err := f.SubmitAddress(addr)
		require.ErrorIs(t, err, domain.ErrAddressIncomplete)
		require.Equal(t, domain.CheckoutStepAddress, f.Step())
	}

	err := f.SubmitAddress(domain.Address{City: "Springfield", Zip: "12345"})
	require.ErrorContains(t, err, "street, country")
}

func TestFlow_IllegalTransitionsChangeNothing(t *testing.T) {
	f := checkout.NewFlow(newCart(t), checkout.WithPaymentDelay(0))

	require.ErrorIs(t, f.SubmitAddress(validAddress), domain.ErrInvalidTransition)
	require.ErrorIs(t, f.Pay(context.Background()), domain.ErrInvalidTransition)
	require.ErrorIs(t, f.BackToAddress(), domain.ErrInvalidTransition)
	require.ErrorIs(t, f.ContinueShopping(), domain.ErrInvalidTransition)
	require.Equal(t, domain.CheckoutStepCart, f.Step())

	require.NoError(t, f.ProceedToCheckout())
	require.ErrorIs(t, f.ProceedToCheckout(), domain.ErrInvalidTransition)
	require.ErrorIs(t, f.Pay(context.Background()), domain.ErrInvalidTransition)
	require.Equal(t, domain.CheckoutStepAddress, f.Step())
}

func TestFlow_BackNavigationKeepsCart(t *testing.T) {
	store := newCart(t)
	f := checkout.NewFlow(store)
	toPayment(t, f)

	require.NoError(t, f.BackToAddress())
	require.Equal(t, validAddress, f.Session().Address)
	require.NoError(t, f.BackToCart())
	require.Equal(t, domain.CheckoutStepCart, f.Step())
	require.Equal(t, 1, store.Count())
}

func TestFlow_PayClearsCartAndConfirms(t *testing.T) {
	obs := &countingObserver{}
	store := newCart(t, cart.WithObserver(obs))
	f := checkout.NewFlow(store, checkout.WithPaymentDelay(time.Millisecond))
	toPayment(t, f)

	require.NoError(t, f.Pay(context.Background()))

	s := f.Session()
	require.Equal(t, domain.CheckoutStepConfirmation, s.Step)
	require.False(t, s.PaymentProcessing)
	require.Nil(t, s.Order)
	require.Equal(t, 0, store.Len())
	require.EqualValues(t, 1, obs.clears.Load())

	firstSession := s.ID
	require.NoError(t, f.ContinueShopping())
	s = f.Session()
	require.Equal(t, domain.CheckoutStepCart, s.Step)
	require.Equal(t, domain.Address{}, s.Address)
	require.NotEqual(t, firstSession, s.ID)
}

func TestFlow_DoubleSubmitHasNoEffect(t *testing.T) {
	obs := &countingObserver{}
	store := newCart(t, cart.WithObserver(obs))
	f := checkout.NewFlow(store, checkout.WithPaymentDelay(50*time.Millisecond))
	toPayment(t, f)

	const attempts = 10
	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
		rejected  atomic.Int32
	)
	start := make(chan struct{})
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			err := f.Pay(context.Background())
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, domain.ErrPaymentInProgress), errors.Is(err, domain.ErrInvalidTransition):
				rejected.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	require.EqualValues(t, 1, succeeded.Load())
	require.EqualValues(t, attempts-1, rejected.Load())
	require.EqualValues(t, 1, obs.clears.Load())
	require.Equal(t, domain.CheckoutStepConfirmation, f.Step())
}

func TestFlow_MutationsRejectedWhileProcessing(t *testing.T) {
	f := checkout.NewFlow(newCart(t), checkout.WithPaymentDelay(time.Second))
	toPayment(t, f)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.Pay(ctx) }()

	require.Eventually(t, func() bool { return f.Session().PaymentProcessing }, time.Second, time.Millisecond)
	require.ErrorIs(t, f.BackToAddress(), domain.ErrPaymentInProgress)
	require.ErrorIs(t, f.Reset(), domain.ErrPaymentInProgress)

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

func TestFlow_CancelledPaymentStaysInPayment(t *testing.T) {
	store := newCart(t)
	f := checkout.NewFlow(store, checkout.WithPaymentDelay(time.Minute))
	toPayment(t, f)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	require.ErrorIs(t, f.Pay(ctx), context.DeadlineExceeded)
	s := f.Session()
	require.Equal(t, domain.CheckoutStepPayment, s.Step)
	require.False(t, s.PaymentProcessing)
	require.Equal(t, 1, store.Count())
}

type fakePlacer struct {
	order domain.Order
	err   error
	calls int
	items []domain.CartItem
	addr  domain.Address
}

func (p *fakePlacer) PlaceOrder(_ context.Context, items []domain.CartItem, addr domain.Address) (domain.Order, error) {
	p.calls++
	p.items = items
	p.addr = addr
	return p.order, p.err
}

func TestFlow_PlacedOrderReachesConfirmation(t *testing.T) {
	placer := &fakePlacer{order: domain.Order{ID: 42, TotalAmount: decimal.RequireFromString("11.00")}}
	f := checkout.NewFlow(newCart(t), checkout.WithPaymentDelay(0), checkout.WithOrderPlacer(placer))
	toPayment(t, f)

	require.NoError(t, f.Pay(context.Background()))
	require.Equal(t, 1, placer.calls)
	require.Len(t, placer.items, 1)
	require.Equal(t, validAddress, placer.addr)

	s := f.Session()
	require.NotNil(t, s.Order)
	require.EqualValues(t, 42, s.Order.ID)
}

func TestFlow_PlacementFailureKeepsCart(t *testing.T) {
	store := newCart(t)
	placer := &fakePlacer{err: errors.New("gateway timeout")}
	f := checkout.NewFlow(store, checkout.WithPaymentDelay(0), checkout.WithOrderPlacer(placer))
	toPayment(t, f)

	err := f.Pay(context.Background())
	require.ErrorContains(t, err, "gateway timeout")

	s := f.Session()
	require.Equal(t, domain.CheckoutStepPayment, s.Step)
	require.False(t, s.PaymentProcessing)
	require.Equal(t, 1, store.Count())

	placer.err = nil
	require.NoError(t, f.Pay(context.Background()))
	require.Equal(t, 0, store.Len())
}

func TestFlow_ResetDiscardsSession(t *testing.T) {
	f := checkout.NewFlow(newCart(t))
	toPayment(t, f)

	require.NoError(t, f.Reset())
	s := f.Session()
	require.Equal(t, domain.CheckoutStepCart, s.Step)
	require.Equal(t, domain.Address{}, s.Address)
	require.NoError(t, f.Reset())
}

func TestFlow_TaxScenario(t *testing.T) {
	store := cart.NewStore()
	mug := domain.Product{ID: 1, Name: "Mug", Price: decimal.NewFromInt(10)}
	require.NoError(t, store.AddToCart(mug))
	require.NoError(t, store.AddToCart(mug))

	items := store.Items()
	require.Len(t, items, 1)
	require.Equal(t, 2, items[0].Quantity)
	require.True(t, store.Total().Equal(decimal.NewFromInt(20)))

	summary := checkout.NewFlow(store).Summary()
	require.Equal(t, "22.00", summary.Total.StringFixed(2))
	require.Equal(t, "2.00", summary.Tax.StringFixed(2))
}

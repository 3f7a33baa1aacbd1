// Package checkout реализует мастер оформления заказа поверх корзины:
// cart → address → payment → confirmation.
package checkout

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/cart"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
)

// DefaultPaymentDelay — имитация задержки платёжного шлюза.
const DefaultPaymentDelay = 2 * time.Second

// Session — снимок состояния мастера.
type Session struct {
	ID                string
	Step              domain.CheckoutStep
	Address           domain.Address
	PaymentProcessing bool
	Order             *domain.Order
}

// Option настраивает Flow.
type Option func(*Flow)

// WithPaymentDelay задаёт задержку оплаты; 0 отключает её.
func WithPaymentDelay(d time.Duration) Option {
	return func(f *Flow) {
		if d >= 0 {
			f.paymentDelay = d
		}
	}
}

// WithOrderPlacer подключает оформление заказа во внешней системе.
func WithOrderPlacer(p OrderPlacer) Option {
	return func(f *Flow) {
		f.placer = p
	}
}

// WithEventPublisher подключает публикацию событий оформления.
func WithEventPublisher(p domain.EventPublisher) Option {
	return func(f *Flow) {
		if p != nil {
			f.publisher = p
		}
	}
}

// WithMetrics включает учёт переходов.
func WithMetrics(m *metrics.ClientMetrics) Option {
	return func(f *Flow) {
		f.metrics = m
	}
}

// WithLogger задаёт logger.
func WithLogger(logger *log.Entry) Option {
	return func(f *Flow) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// Flow — конечный автомат оформления. Каждая операция действует только из своего
// исходного шага, иначе возвращает domain.ErrInvalidTransition и ничего не меняет.
type Flow struct {
	mu         sync.Mutex
	cart       *cart.Store
	sessionID  string
	step       domain.CheckoutStep
	address    domain.Address
	processing bool
	order      *domain.Order

	paymentDelay time.Duration
	placer       OrderPlacer
	publisher    domain.EventPublisher
	metrics      *metrics.ClientMetrics
	logger       *log.Entry
}

// NewFlow создаёт мастер в шаге cart.
func NewFlow(store *cart.Store, opts ...Option) *Flow {
	f := &Flow{
		cart:         store,
		sessionID:    uuid.NewString(),
		step:         domain.CheckoutStepCart,
		paymentDelay: DefaultPaymentDelay,
		publisher:    kafka.NopPublisher{},
		logger:       log.WithField("component", "checkout"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Session возвращает текущее состояние.
func (f *Flow) Session() Session {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := Session{
		ID:                f.sessionID,
		Step:              f.step,
		Address:           f.address,
		PaymentProcessing: f.processing,
	}
	if f.order != nil {
		order := *f.order
		s.Order = &order
	}
	return s
}

// Step возвращает текущий шаг.
func (f *Flow) Step() domain.CheckoutStep {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// Summary считает итоги по текущей корзине.
func (f *Flow) Summary() Summary {
	return Summarize(f.cart.Total())
}

// ProceedToCheckout: cart → address. Пустая корзина — domain.ErrEmptyCart.
func (f *Flow) ProceedToCheckout() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.expect(domain.CheckoutStepCart); err != nil {
		return err
	}
	if f.cart.Len() == 0 {
		return domain.ErrEmptyCart
	}
	f.moveTo(domain.CheckoutStepAddress)
	return nil
}

// SubmitAddress: address → payment. Все четыре поля обязательны.
func (f *Flow) SubmitAddress(addr domain.Address) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.expect(domain.CheckoutStepAddress); err != nil {
		return err
	}
	if missing := addr.MissingFields(); len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", domain.ErrAddressIncomplete, strings.Join(missing, ", "))
	}
	f.address = addr
	f.moveTo(domain.CheckoutStepPayment)
	return nil
}

// BackToCart: address → cart. Корзина и введённый адрес не теряются.
func (f *Flow) BackToCart() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.expect(domain.CheckoutStepAddress); err != nil {
		return err
	}
	f.moveTo(domain.CheckoutStepCart)
	return nil
}

// BackToAddress: payment → address.
func (f *Flow) BackToAddress() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.expect(domain.CheckoutStepPayment); err != nil {
		return err
	}
	f.moveTo(domain.CheckoutStepAddress)
	return nil
}

// Pay: payment → confirmation. Во время обработки повторный вызов отклоняется
// с domain.ErrPaymentInProgress. Отмена ctx или ошибка оформления оставляют мастер
// в шаге payment, корзина не меняется.
func (f *Flow) Pay(ctx context.Context) error {
	f.mu.Lock()
	if err := f.expect(domain.CheckoutStepPayment); err != nil {
		f.mu.Unlock()
		return err
	}
	f.processing = true
	address := f.address
	sessionID := f.sessionID
	f.mu.Unlock()

	logger := f.logger.WithField("session_id", sessionID)
	logger.Info("processing payment")

	if err := f.wait(ctx); err != nil {
		f.abortPayment(sessionID, "cancelled")
		logger.WithError(err).Warn("payment cancelled")
		return err
	}

	var placed *domain.Order
	if f.placer != nil {
		order, err := f.placer.PlaceOrder(ctx, f.cart.Items(), address)
		if err != nil {
			f.abortPayment(sessionID, err.Error())
			logger.WithError(err).Error("order placement failed")
			return fmt.Errorf("place order: %w", err)
		}
		placed = &order
	}

	f.mu.Lock()
	f.processing = false
	if err := f.cart.ClearCart(); err != nil {
		logger.WithError(err).Warn("cart cleared in memory but not persisted")
	}
	f.order = placed
	f.moveTo(domain.CheckoutStepConfirmation)
	f.mu.Unlock()

	event := kafka.NewCheckoutEvent(kafka.EventTypeCheckoutCompleted, sessionID, string(domain.CheckoutStepConfirmation), nil)
	if placed != nil {
		event.OrderID = placed.ID
		logger = logger.WithField("order_id", placed.ID)
	}
	f.publish(event)
	logger.Info("payment completed")
	return nil
}

// ContinueShopping: confirmation → cart. Адрес и заказ сбрасываются, начинается новая сессия.
func (f *Flow) ContinueShopping() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.expect(domain.CheckoutStepConfirmation); err != nil {
		return err
	}
	f.restart()
	return nil
}

// Reset — уход со страницы оформления из любого шага, кроме идущей оплаты.
func (f *Flow) Reset() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.processing {
		return domain.ErrPaymentInProgress
	}
	if f.step == domain.CheckoutStepCart {
		return nil
	}
	f.restart()
	return nil
}

func (f *Flow) expect(step domain.CheckoutStep) error {
	if f.processing {
		return domain.ErrPaymentInProgress
	}
	if f.step != step {
		return fmt.Errorf("%w: at %s, need %s", domain.ErrInvalidTransition, f.step, step)
	}
	return nil
}

func (f *Flow) restart() {
	f.address = domain.Address{}
	f.order = nil
	f.sessionID = uuid.NewString()
	f.moveTo(domain.CheckoutStepCart)
}

// moveTo вызывается под f.mu.
func (f *Flow) moveTo(step domain.CheckoutStep) {
	f.step = step
	f.metrics.RecordCheckoutTransition(string(step))
	f.logger.WithFields(log.Fields{"session_id": f.sessionID, "step": step}).Debug("checkout step")
	if step != domain.CheckoutStepConfirmation {
		f.publish(kafka.NewCheckoutEvent(kafka.EventTypeCheckoutStep, f.sessionID, string(step), nil))
	}
}

func (f *Flow) abortPayment(sessionID, reason string) {
	f.mu.Lock()
	f.processing = false
	f.mu.Unlock()

	f.publish(kafka.NewCheckoutEvent(kafka.EventTypeCheckoutFailed, sessionID, string(domain.CheckoutStepPayment),
		map[string]interface{}{"reason": reason}))
}

func (f *Flow) wait(ctx context.Context) error {
	if f.paymentDelay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(f.paymentDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *Flow) publish(event *kafka.CheckoutEvent) {
	if err := f.publisher.PublishEvent(kafka.TopicCheckoutEvents, event.SessionID, event); err != nil {
		f.logger.WithError(err).WithField("event_type", event.EventType).Warn("failed to publish checkout event")
	}
}

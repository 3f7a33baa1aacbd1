package checkout

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// OrderPlacer оформляет заказ во внешней системе до перехода к подтверждению.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, items []domain.CartItem, address domain.Address) (domain.Order, error)
}

// ServerCartAPI — операции серверной копии корзины, нужные для оформления.
type ServerCartAPI interface {
	Clear(ctx context.Context) error
	AddItem(ctx context.Context, productID int64, quantity int) (domain.ServerCart, error)
}

// OrdersAPI — операции заказов, нужные для оформления.
type OrdersAPI interface {
	Create(ctx context.Context, req domain.CreateOrderRequest) (domain.Order, error)
	ConfirmPayment(ctx context.Context, orderID int64) (domain.PaymentConfirmation, error)
}

// APIOrderPlacer оформляет заказ через REST API: сервер строит заказ из своей корзины,
// поэтому локальная корзина сначала переносится на сервер.
type APIOrderPlacer struct {
	cart   ServerCartAPI
	orders OrdersAPI
	logger *log.Entry
}

// NewAPIOrderPlacer создаёт placer поверх сервисов API.
func NewAPIOrderPlacer(cart ServerCartAPI, orders OrdersAPI, logger *log.Entry) *APIOrderPlacer {
	if logger == nil {
		logger = log.WithField("component", "order-placer")
	}
	return &APIOrderPlacer{cart: cart, orders: orders, logger: logger}
}

// PlaceOrder: очистить серверную корзину → добавить позиции → POST /orders/ →
// подтвердить оплату. Любая ошибка прерывает оформление.
func (p *APIOrderPlacer) PlaceOrder(ctx context.Context, items []domain.CartItem, address domain.Address) (domain.Order, error) {
	if len(items) == 0 {
		return domain.Order{}, domain.ErrEmptyCart
	}

	if err := p.cart.Clear(ctx); err != nil {
		return domain.Order{}, fmt.Errorf("clear server cart: %w", err)
	}
	for _, item := range items {
		if _, err := p.cart.AddItem(ctx, item.ID, item.Quantity); err != nil {
			return domain.Order{}, fmt.Errorf("sync item %d to server cart: %w", item.ID, err)
		}
	}

	order, err := p.orders.Create(ctx, domain.NewCreateOrderRequest(address))
	if err != nil {
		return domain.Order{}, fmt.Errorf("create order: %w", err)
	}

	confirmation, err := p.orders.ConfirmPayment(ctx, order.ID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("confirm payment for order %d: %w", order.ID, err)
	}

	order.PaymentStatus = domain.PaymentStatusCompleted
	order.Status = domain.OrderStatusProcessing
	p.logger.WithFields(log.Fields{
		"order_id": order.ID,
		"total":    order.TotalAmount.StringFixed(2),
		"message":  confirmation.Message,
	}).Info("order placed")
	return order, nil
}

var _ OrderPlacer = (*APIOrderPlacer)(nil)

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// OrderService — заказы. Администратор видит все заказы, покупатель — только свои.
type OrderService struct {
	client *Client
}

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	return getList[domain.Order](ctx, s.client, "/orders/", nil)
}

func (s *OrderService) Get(ctx context.Context, id int64) (domain.Order, error) {
	var o domain.Order
	err := s.client.Do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", id), nil, nil, &o)
	return o, err
}

// Create оформляет заказ из серверной корзины пользователя; сервер очищает её.
func (s *OrderService) Create(ctx context.Context, req domain.CreateOrderRequest) (domain.Order, error) {
	var o domain.Order
	err := s.client.Do(ctx, http.MethodPost, "/orders/", nil, req, &o)
	return o, err
}

// UpdateStatus меняет статус заказа (только для администратора).
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (domain.Order, error) {
	if !status.Valid() {
		return domain.Order{}, fmt.Errorf("%w: %q", domain.ErrInvalidOrderStatus, status)
	}
	var o domain.Order
	body := map[string]domain.OrderStatus{"status": status}
	err := s.client.Do(ctx, http.MethodPatch, fmt.Sprintf("/orders/%d/update_status/", id), nil, body, &o)
	return o, err
}

// Analytics возвращает сводку продаж (только для администратора).
func (s *OrderService) Analytics(ctx context.Context) (domain.Analytics, error) {
	var a domain.Analytics
	err := s.client.Do(ctx, http.MethodGet, "/orders/analytics/", nil, nil, &a)
	return a, err
}

// ConfirmPayment помечает заказ оплаченным и списывает остатки.
func (s *OrderService) ConfirmPayment(ctx context.Context, id int64) (domain.PaymentConfirmation, error) {
	var pc domain.PaymentConfirmation
	err := s.client.Do(ctx, http.MethodPost, fmt.Sprintf("/orders/%d/confirm_payment/", id), nil, nil, &pc)
	return pc, err
}

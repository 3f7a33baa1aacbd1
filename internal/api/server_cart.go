package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// ServerCartService — серверная копия корзины, из которой API строит заказ.
type ServerCartService struct {
	client *Client
}

func (s *ServerCartService) Get(ctx context.Context) (domain.ServerCart, error) {
	var c domain.ServerCart
	err := s.client.Do(ctx, http.MethodGet, "/cart/", nil, nil, &c)
	return c, err
}

// AddItem добавляет товар; сервер проверяет остаток.
func (s *ServerCartService) AddItem(ctx context.Context, productID int64, quantity int) (domain.ServerCart, error) {
	if quantity < 1 {
		return domain.ServerCart{}, domain.ErrInvalidQuantity
	}
	var c domain.ServerCart
	body := map[string]int64{"product_id": productID, "quantity": int64(quantity)}
	err := s.client.Do(ctx, http.MethodPost, "/cart/add_item/", nil, body, &c)
	return c, err
}

// UpdateItem выставляет количество позиции серверной корзины (itemID — id позиции, не товара).
func (s *ServerCartService) UpdateItem(ctx context.Context, itemID int64, quantity int) (domain.ServerCart, error) {
	if quantity < 1 {
		return domain.ServerCart{}, domain.ErrInvalidQuantity
	}
	var c domain.ServerCart
	body := map[string]int64{"item_id": itemID, "quantity": int64(quantity)}
	err := s.client.Do(ctx, http.MethodPatch, "/cart/update_item/", nil, body, &c)
	return c, err
}

func (s *ServerCartService) RemoveItem(ctx context.Context, itemID int64) (domain.ServerCart, error) {
	var c domain.ServerCart
	query := url.Values{"item_id": {strconv.FormatInt(itemID, 10)}}
	err := s.client.Do(ctx, http.MethodDelete, "/cart/remove_item/", query, nil, &c)
	return c, err
}

// Clear очищает серверную корзину.
func (s *ServerCartService) Clear(ctx context.Context) error {
	return s.client.Do(ctx, http.MethodPost, "/cart/clear/", nil, nil, nil)
}

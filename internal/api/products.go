package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// ProductService — каталог товаров.
type ProductService struct {
	client *Client
}

// List возвращает активные товары с фильтром по названию и категории.
func (s *ProductService) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	query := url.Values{}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.CategoryID > 0 {
		query.Set("category", strconv.FormatInt(filter.CategoryID, 10))
	}
	return getList[domain.Product](ctx, s.client, "/products/", query)
}

func (s *ProductService) Get(ctx context.Context, id int64) (domain.Product, error) {
	var p domain.Product
	err := s.client.Do(ctx, http.MethodGet, fmt.Sprintf("/products/%d/", id), nil, nil, &p)
	return p, err
}

func (s *ProductService) Create(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	var p domain.Product
	err := s.client.Do(ctx, http.MethodPost, "/products/", nil, in, &p)
	return p, err
}

func (s *ProductService) Update(ctx context.Context, id int64, in domain.ProductInput) (domain.Product, error) {
	var p domain.Product
	err := s.client.Do(ctx, http.MethodPatch, fmt.Sprintf("/products/%d/", id), nil, in, &p)
	return p, err
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	return s.client.Do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d/", id), nil, nil, nil)
}

// LowStock возвращает товары с остатком <= 10 (только для администратора).
func (s *ProductService) LowStock(ctx context.Context) ([]domain.Product, error) {
	return getList[domain.Product](ctx, s.client, "/products/low_stock/", nil)
}

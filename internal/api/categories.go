package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// CategoryService — категории каталога.
type CategoryService struct {
	client *Client
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	return getList[domain.Category](ctx, s.client, "/categories/", nil)
}

func (s *CategoryService) Get(ctx context.Context, id int64) (domain.Category, error) {
	var c domain.Category
	err := s.client.Do(ctx, http.MethodGet, fmt.Sprintf("/categories/%d/", id), nil, nil, &c)
	return c, err
}

func (s *CategoryService) Create(ctx context.Context, in domain.CategoryInput) (domain.Category, error) {
	var c domain.Category
	err := s.client.Do(ctx, http.MethodPost, "/categories/", nil, in, &c)
	return c, err
}

func (s *CategoryService) Update(ctx context.Context, id int64, in domain.CategoryInput) (domain.Category, error) {
	var c domain.Category
	err := s.client.Do(ctx, http.MethodPatch, fmt.Sprintf("/categories/%d/", id), nil, in, &c)
	return c, err
}

func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	return s.client.Do(ctx, http.MethodDelete, fmt.Sprintf("/categories/%d/", id), nil, nil, nil)
}

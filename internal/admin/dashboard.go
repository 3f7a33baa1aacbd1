// Package admin собирает данные панели администратора.
package admin

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

// LowStockThreshold — остаток, начиная с которого товар считается заканчивающимся.
const LowStockThreshold = 10

// AnalyticsSource отдаёт сводку продаж.
type AnalyticsSource interface {
	Analytics(ctx context.Context) (domain.Analytics, error)
}

// ProductSource отдаёт каталог.
type ProductSource interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
}

// OrderSource отдаёт заказы.
type OrderSource interface {
	List(ctx context.Context) ([]domain.Order, error)
}

// Dashboard — содержимое панели.
type Dashboard struct {
	Analytics domain.Analytics
	Products  []domain.Product
	Orders    []domain.Order
}

// LowStock возвращает товары с остатком не выше LowStockThreshold.
func (d Dashboard) LowStock() []domain.Product {
	var out []domain.Product
	for _, p := range d.Products {
		if p.Stock <= LowStockThreshold {
			out = append(out, p)
		}
	}
	return out
}

// CountByStatus считает заказы по статусам.
func (d Dashboard) CountByStatus() map[domain.OrderStatus]int {
	out := make(map[domain.OrderStatus]int)
	for _, o := range d.Orders {
		out[o.Status]++
	}
	return out
}

// Loader загружает панель.
type Loader struct {
	analytics AnalyticsSource
	products  ProductSource
	orders    OrderSource
}

// NewLoader создаёт Loader.
func NewLoader(analytics AnalyticsSource, products ProductSource, orders OrderSource) *Loader {
	return &Loader{analytics: analytics, products: products, orders: orders}
}

// LoadDashboard запрашивает аналитику, товары и заказы параллельно. Нужны все три
// ответа: первая ошибка отменяет остальные запросы.
func (l *Loader) LoadDashboard(ctx context.Context) (Dashboard, error) {
	var d Dashboard
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a, err := l.analytics.Analytics(gctx)
		if err != nil {
			return fmt.Errorf("load analytics: %w", err)
		}
		d.Analytics = a
		return nil
	})
	g.Go(func() error {
		products, err := l.products.List(gctx, domain.ProductFilter{})
		if err != nil {
			return fmt.Errorf("load products: %w", err)
		}
		d.Products = products
		return nil
	})
	g.Go(func() error {
		orders, err := l.orders.List(gctx)
		if err != nil {
			return fmt.Errorf("load orders: %w", err)
		}
		d.Orders = orders
		return nil
	})

	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}
	return d, nil
}

package domain_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

func TestOrderStatusValid(t *testing.T) {
	for _, s := range []domain.OrderStatus{"pending", "processing", "shipped", "delivered", "cancelled"} {
		if !s.Valid() {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	for _, s := range []domain.OrderStatus{"", "paid", "PENDING"} {
		if s.Valid() {
			t.Fatalf("expected %q to be invalid", s)
		}
	}
}

func TestNewCreateOrderRequest(t *testing.T) {
	req := domain.NewCreateOrderRequest(domain.Address{Street: "s", City: "c", Zip: "z", Country: "k"})
	raw, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"shipping_address":"s","shipping_city":"c","shipping_zip":"z","shipping_country":"k"}`
	if string(raw) != want {
		t.Fatalf("unexpected body: %s", raw)
	}
}

func TestAnalyticsDecode(t *testing.T) {
	body := `{"total_revenue":"1234.50","total_orders":10,"pending_orders":2,
		"daily_sales":[{"date":"2026-10-18","revenue":"100.00","orders":1}]}`
	var a domain.Analytics
	if err := json.Unmarshal([]byte(body), &a); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !a.TotalRevenue.Equal(decimal.RequireFromString("1234.5")) || a.TotalOrders != 10 || a.PendingOrders != 2 {
		t.Fatalf("unexpected analytics: %+v", a)
	}
	if len(a.DailySales) != 1 || a.DailySales[0].Orders != 1 {
		t.Fatalf("unexpected daily sales: %+v", a.DailySales)
	}
}

func TestIsValidation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "empty cart", err: domain.ErrEmptyCart, want: true},
		{name: "wrapped address", err: fmt.Errorf("%w: street", domain.ErrAddressIncomplete), want: true},
		{name: "transition", err: domain.ErrInvalidTransition, want: false},
		{name: "other", err: errors.New("boom"), want: false},
		{name: "nil", err: nil, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := domain.IsValidation(tt.err); got != tt.want {
				t.Fatalf("IsValidation() = %v, want %v", got, tt.want)
			}
		})
	}
}

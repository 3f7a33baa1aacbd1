package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product — товар каталога.
type Product struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Category     int64           `json:"category"`
	CategoryName string          `json:"category_name"`
	Stock        int             `json:"stock"`
	Image        string          `json:"image"`
	IsActive     bool            `json:"is_active"`
	IsInStock    bool            `json:"is_in_stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductInput — изменяемые поля товара для create/update (admin).
// Нулевые указатели не сериализуются, поэтому структура годится и для PATCH.
type ProductInput struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Category    *int64           `json:"category,omitempty"`
	Stock       *int             `json:"stock,omitempty"`
	Image       *string          `json:"image,omitempty"`
	IsActive    *bool            `json:"is_active,omitempty"`
}

// ProductFilter задаёт параметры выборки GET /products/.
type ProductFilter struct {
	Search     string
	CategoryID int64
}

// Category — категория каталога.
type Category struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	ProductCount int       `json:"product_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// CategoryInput — поля категории для create/update.
type CategoryInput struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus описывает статус исполнения заказа на стороне магазина.
type OrderStatus string

const (
	// OrderStatusPending — заказ создан, оплата ещё не подтверждена.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusProcessing — заказ оплачен и собирается.
	OrderStatusProcessing OrderStatus = "processing"
	// OrderStatusShipped — заказ передан в доставку.
	OrderStatusShipped OrderStatus = "shipped"
	// OrderStatusDelivered — заказ получен покупателем.
	OrderStatusDelivered OrderStatus = "delivered"
	// OrderStatusCancelled — заказ отменён.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid сообщает, принимает ли сервер такой статус в update_status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// PaymentStatus описывает состояние оплаты заказа.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// OrderItem представляет одну позицию оформленного заказа.
type OrderItem struct {
	ID          int64           `json:"id"`
	Product     int64           `json:"product"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// Order — заказ в том виде, в котором его возвращает API.
type Order struct {
	ID              int64           `json:"id"`
	User            int64           `json:"user"`
	UserEmail       string          `json:"user_email"`
	Status          OrderStatus     `json:"status"`
	PaymentStatus   PaymentStatus   `json:"payment_status"`
	ShippingAddress string          `json:"shipping_address"`
	ShippingCity    string          `json:"shipping_city"`
	ShippingZip     string          `json:"shipping_zip"`
	ShippingCountry string          `json:"shipping_country"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	Items           []OrderItem     `json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CreateOrderRequest — тело POST /orders/. Позиции сервер берёт из своей корзины.
type CreateOrderRequest struct {
	ShippingAddress string `json:"shipping_address"`
	ShippingCity    string `json:"shipping_city"`
	ShippingZip     string `json:"shipping_zip"`
	ShippingCountry string `json:"shipping_country"`
}

// NewCreateOrderRequest переносит адрес доставки в формат API.
func NewCreateOrderRequest(addr Address) CreateOrderRequest {
	return CreateOrderRequest{
		ShippingAddress: addr.Street,
		ShippingCity:    addr.City,
		ShippingZip:     addr.Zip,
		ShippingCountry: addr.Country,
	}
}

// PaymentConfirmation — ответ POST /orders/{id}/confirm_payment/.
type PaymentConfirmation struct {
	Message string `json:"message"`
	OrderID int64  `json:"order_id"`
}

// DailySales — агрегат продаж за один день.
type DailySales struct {
	Date    string          `json:"date"`
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int             `json:"orders"`
}

// Analytics — сводка для админской панели, считается на сервере.
type Analytics struct {
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalOrders   int             `json:"total_orders"`
	PendingOrders int             `json:"pending_orders"`
	DailySales    []DailySales    `json:"daily_sales"`
}

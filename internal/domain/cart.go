package domain

import "github.com/shopspring/decimal"

// CartItem — позиция локальной корзины. На один товар приходится не более одной позиции,
// количество всегда >= 1.
type CartItem struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Quantity int             `json:"quantity"`
}

// LineTotal возвращает price * quantity.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CartItemFromProduct строит позицию корзины из карточки товара.
func CartItemFromProduct(p Product) CartItem {
	return CartItem{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Image:    p.Image,
		Quantity: 1,
	}
}

// ServerCartItem — позиция серверной копии корзины.
type ServerCartItem struct {
	ID       int64           `json:"id"`
	Product  Product         `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// ServerCart — корзина пользователя на стороне API (GET /cart/).
type ServerCart struct {
	ID         int64            `json:"id"`
	User       int64            `json:"user"`
	Items      []ServerCartItem `json:"items"`
	TotalPrice decimal.Decimal  `json:"total_price"`
}

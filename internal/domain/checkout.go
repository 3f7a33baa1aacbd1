package domain

import "strings"

// CheckoutStep — шаг мастера оформления заказа.
type CheckoutStep string

const (
	CheckoutStepCart         CheckoutStep = "cart"
	CheckoutStepAddress      CheckoutStep = "address"
	CheckoutStepPayment      CheckoutStep = "payment"
	CheckoutStepConfirmation CheckoutStep = "confirmation"
)

// Address — адрес доставки. Все четыре поля обязательны.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

// MissingFields возвращает имена незаполненных полей (пробелы не считаются значением).
func (a Address) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(a.Street) == "" {
		missing = append(missing, "street")
	}
	if strings.TrimSpace(a.City) == "" {
		missing = append(missing, "city")
	}
	if strings.TrimSpace(a.Zip) == "" {
		missing = append(missing, "zip")
	}
	if strings.TrimSpace(a.Country) == "" {
		missing = append(missing, "country")
	}
	return missing
}

// Complete сообщает, заполнены ли все поля адреса.
func (a Address) Complete() bool {
	return len(a.MissingFields()) == 0
}

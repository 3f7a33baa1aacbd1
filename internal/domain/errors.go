package domain

import "errors"

var (
	// ErrKeyNotFound возвращается хранилищем, если ключ ни разу не сохранялся.
	ErrKeyNotFound = errors.New("key not found")
	// ErrEmptyCart — переход к оформлению с пустой корзиной.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrAddressIncomplete — не заполнены обязательные поля адреса.
	ErrAddressIncomplete = errors.New("shipping address is incomplete")
	// ErrInvalidTransition — операция вызвана не из своего шага мастера.
	ErrInvalidTransition = errors.New("checkout transition is not allowed from current step")
	// ErrPaymentInProgress — оплата уже выполняется, повторная отправка отклонена.
	ErrPaymentInProgress = errors.New("payment is already in progress")
	// ErrNotAuthenticated — нет сохранённых токенов.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrInvalidOrderStatus — статус заказа не из списка допустимых.
	ErrInvalidOrderStatus = errors.New("invalid order status")
	// ErrInvalidQuantity — количество в серверной корзине должно быть положительным.
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
)

// IsValidation сообщает, является ли ошибка локальной ошибкой валидации,
// которую нужно показать пользователю рядом с формой.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyCart) ||
		errors.Is(err, ErrAddressIncomplete) ||
		errors.Is(err, ErrInvalidOrderStatus) ||
		errors.Is(err, ErrInvalidQuantity)
}

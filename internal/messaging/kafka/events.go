package kafka

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventType определяет тип события клиента.
type EventType string

const (
	EventTypeCartUpdated EventType = "cart.updated"
	EventTypeCartCleared EventType = "cart.cleared"

	EventTypeCheckoutStep      EventType = "checkout.step"
	EventTypeCheckoutCompleted EventType = "checkout.completed"
	EventTypeCheckoutFailed    EventType = "checkout.failed"
)

// Topics для событий клиента.
const (
	TopicCartEvents     = "storefront.cart.events"
	TopicCheckoutEvents = "storefront.checkout.events"
)

// CartEvent — снимок корзины после изменения.
type CartEvent struct {
	EventType EventType       `json:"event_type"`
	Items     int             `json:"items"`
	Lines     int             `json:"lines"`
	Total     decimal.Decimal `json:"total"`
	Timestamp time.Time       `json:"timestamp"`
}

// CheckoutEvent — переход мастера оформления или итог оплаты.
type CheckoutEvent struct {
	EventType EventType              `json:"event_type"`
	SessionID string                 `json:"session_id"`
	Step      string                 `json:"step"`
	OrderID   int64                  `json:"order_id,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// NewCartEvent создаёт событие корзины.
func NewCartEvent(eventType EventType, items, lines int, total decimal.Decimal) *CartEvent {
	return &CartEvent{
		EventType: eventType,
		Items:     items,
		Lines:     lines,
		Total:     total,
		Timestamp: time.Now().UTC(),
	}
}

// NewCheckoutEvent создаёт событие оформления заказа.
func NewCheckoutEvent(eventType EventType, sessionID, step string, metadata map[string]interface{}) *CheckoutEvent {
	return &CheckoutEvent{
		EventType: eventType,
		SessionID: sessionID,
		Step:      step,
		Timestamp: time.Now().UTC(),
		Metadata:  metadata,
	}
}

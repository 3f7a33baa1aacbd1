package cart

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/messaging/kafka"
)

// EventObserver публикует событие cart.updated (или cart.cleared) после изменения.
// Ошибка брокера только логируется: аналитика не должна ломать корзину.
type EventObserver struct {
	publisher domain.EventPublisher
	key       string
	logger    *log.Entry
}

// NewEventObserver создаёт наблюдателя; key — ключ партиционирования (обычно профиль).
func NewEventObserver(publisher domain.EventPublisher, key string, logger *log.Entry) *EventObserver {
	if logger == nil {
		logger = log.WithField("component", "cart-events")
	}
	return &EventObserver{publisher: publisher, key: key, logger: logger}
}

func (o *EventObserver) CartChanged(items []domain.CartItem) error {
	eventType := kafka.EventTypeCartUpdated
	if len(items) == 0 {
		eventType = kafka.EventTypeCartCleared
	}

	event := kafka.NewCartEvent(eventType, count(items), len(items), total(items))
	if err := o.publisher.PublishEvent(kafka.TopicCartEvents, o.key, event); err != nil {
		o.logger.WithError(err).WithField("event_type", eventType).Warn("failed to publish cart event")
	}
	return nil
}

var _ Observer = (*EventObserver)(nil)

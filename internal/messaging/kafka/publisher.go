package kafka

import (
	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
)

// NopPublisher отбрасывает события; используется, когда брокер не настроен.
type NopPublisher struct{}

func (NopPublisher) PublishEvent(string, string, interface{}) error { return nil }

// meteredPublisher считает результат каждой публикации.
type meteredPublisher struct {
	next    domain.EventPublisher
	metrics *metrics.ClientMetrics
}

// WithMetrics оборачивает publisher счётчиком storefront_events_published_total.
func WithMetrics(next domain.EventPublisher, m *metrics.ClientMetrics) domain.EventPublisher {
	if m == nil {
		return next
	}
	return &meteredPublisher{next: next, metrics: m}
}

func (p *meteredPublisher) PublishEvent(topic string, key string, event interface{}) error {
	err := p.next.PublishEvent(topic, key, event)
	p.metrics.RecordEventPublished(topic, err)
	return err
}

var (
	_ domain.EventPublisher = NopPublisher{}
	_ domain.EventPublisher = (*meteredPublisher)(nil)
)

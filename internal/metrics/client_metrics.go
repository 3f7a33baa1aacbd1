package metrics

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ClientMetrics собирает метрики клиента магазина: HTTP-вызовы API, обновления токена,
// изменения корзины, шаги оформления заказа и фоновую синхронизацию корзины.
// Все методы безопасны для nil-получателя, чтобы метрики можно было не подключать.
type ClientMetrics struct {
	apiRequests         *prometheus.CounterVec
	apiDuration         *prometheus.HistogramVec
	authRefresh         *prometheus.CounterVec
	cartMutations       *prometheus.CounterVec
	cartItems           prometheus.Gauge
	checkoutTransitions *prometheus.CounterVec
	cartSync            *prometheus.CounterVec
	eventsPublished     *prometheus.CounterVec
}

// NewClientMetrics регистрирует метрики в DefaultRegisterer.
func NewClientMetrics() *ClientMetrics {
	return NewClientMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewClientMetricsWithRegisterer регистрирует метрики в переданном registerer.
// Повторная регистрация возвращает уже существующие коллекторы.
func NewClientMetricsWithRegisterer(registerer prometheus.Registerer) *ClientMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &ClientMetrics{
		apiRequests: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_api_requests_total",
			Help: "Total number of REST API requests grouped by method and status code.",
		}, []string{"method", "code"})),
		apiDuration: register(registerer, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storefront_api_request_duration_seconds",
			Help:    "Duration of REST API requests in seconds.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"method"})),
		authRefresh: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_auth_refresh_total",
			Help: "Total number of access token refresh attempts grouped by result.",
		}, []string{"result"})),
		cartMutations: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_cart_mutations_total",
			Help: "Total number of local cart mutations grouped by operation.",
		}, []string{"op"})),
		cartItems: register(registerer, prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "storefront_cart_items",
			Help: "Current number of units in the local cart.",
		})),
		checkoutTransitions: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_checkout_transitions_total",
			Help: "Total number of checkout step transitions grouped by target step.",
		}, []string{"to"})),
		cartSync: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_cart_sync_total",
			Help: "Total number of server cart mirror sync runs grouped by result.",
		}, []string{"result"})),
		eventsPublished: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_events_published_total",
			Help: "Total number of client events published grouped by topic and result.",
		}, []string{"topic", "result"})),
	}
}

func register[T prometheus.Collector](registerer prometheus.Registerer, collector T) T {
	if err := registerer.Register(collector); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			existing, ok := already.ExistingCollector.(T)
			if !ok {
				panic(fmt.Sprintf("collector already registered with unexpected type %T", already.ExistingCollector))
			}
			return existing
		}
		panic(fmt.Sprintf("register collector: %v", err))
	}
	return collector
}

// ObserveAPIRequest учитывает завершённый HTTP-вызов. code=0 означает сетевую ошибку.
func (m *ClientMetrics) ObserveAPIRequest(method string, code int, duration time.Duration) {
	if m == nil {
		return
	}
	label := "error"
	if code > 0 {
		label = strconv.Itoa(code)
	}
	m.apiRequests.WithLabelValues(method, label).Inc()
	m.apiDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordRefresh учитывает попытку обновления токена: result = success|failure.
func (m *ClientMetrics) RecordRefresh(result string) {
	if m == nil {
		return
	}
	m.authRefresh.WithLabelValues(result).Inc()
}

// RecordCartMutation учитывает изменение корзины и выставляет текущее количество единиц.
func (m *ClientMetrics) RecordCartMutation(op string, count int) {
	if m == nil {
		return
	}
	m.cartMutations.WithLabelValues(op).Inc()
	m.cartItems.Set(float64(count))
}

// RecordCheckoutTransition учитывает переход мастера оформления в шаг to.
func (m *ClientMetrics) RecordCheckoutTransition(to string) {
	if m == nil {
		return
	}
	m.checkoutTransitions.WithLabelValues(to).Inc()
}

// RecordCartSync учитывает прогон синхронизации: result = synced|skipped|failed.
func (m *ClientMetrics) RecordCartSync(result string) {
	if m == nil {
		return
	}
	m.cartSync.WithLabelValues(result).Inc()
}

// RecordEventPublished учитывает публикацию события.
func (m *ClientMetrics) RecordEventPublished(topic string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "failed"
	}
	m.eventsPublished.WithLabelValues(topic, result).Inc()
}

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Collector) float64 {
	t.Helper()

	ch := make(chan prometheus.Metric, 1)
	c.Collect(ch)
	close(ch)

	var sum float64
	for m := range ch {
		var out dto.Metric
		if err := m.Write(&out); err != nil {
			t.Fatalf("write metric: %v", err)
		}
		switch {
		case out.Counter != nil:
			sum += out.Counter.GetValue()
		case out.Gauge != nil:
			sum += out.Gauge.GetValue()
		}
	}
	return sum
}

func TestNewClientMetricsWithRegisterer(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewClientMetricsWithRegisterer(reg)

	if m.apiRequests == nil || m.apiDuration == nil || m.authRefresh == nil || m.cartMutations == nil ||
		m.cartItems == nil || m.checkoutTransitions == nil || m.cartSync == nil || m.eventsPublished == nil {
		t.Fatalf("expected all collectors to be initialized: %+v", m)
	}
}

func TestNewClientMetrics_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := NewClientMetricsWithRegisterer(reg)
	second := NewClientMetricsWithRegisterer(reg)

	first.RecordRefresh("success")
	second.RecordRefresh("success")

	if got := counterValue(t, first.authRefresh.WithLabelValues("success")); got != 2 {
		t.Fatalf("expected shared counter value 2, got %v", got)
	}
}

func TestClientMetrics_Record(t *testing.T) {
	m := NewClientMetricsWithRegisterer(prometheus.NewRegistry())

	m.ObserveAPIRequest("GET", 200, 10*time.Millisecond)
	m.ObserveAPIRequest("GET", 0, time.Millisecond)
	m.RecordCartMutation("add", 3)
	m.RecordCartMutation("remove", 1)
	m.RecordCheckoutTransition("address")
	m.RecordCartSync("synced")
	m.RecordEventPublished("storefront.cart.events", errors.New("down"))

	if got := counterValue(t, m.apiRequests.WithLabelValues("GET", "200")); got != 1 {
		t.Fatalf("unexpected 200 counter: %v", got)
	}
	if got := counterValue(t, m.apiRequests.WithLabelValues("GET", "error")); got != 1 {
		t.Fatalf("unexpected error counter: %v", got)
	}
	if got := counterValue(t, m.cartItems); got != 1 {
		t.Fatalf("expected cart gauge to hold last count 1, got %v", got)
	}
	if got := counterValue(t, m.eventsPublished.WithLabelValues("storefront.cart.events", "failed")); got != 1 {
		t.Fatalf("unexpected events counter: %v", got)
	}
}

func TestClientMetrics_NilReceiver(t *testing.T) {
	var m *ClientMetrics

	m.ObserveAPIRequest("GET", 200, time.Millisecond)
	m.RecordRefresh("failure")
	m.RecordCartMutation("clear", 0)
	m.RecordCheckoutTransition("cart")
	m.RecordCartSync("failed")
	m.RecordEventPublished("t", nil)
}

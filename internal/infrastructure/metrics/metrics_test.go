package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := New(registry)

	if m.MoneyOperations == nil || m.HTTPRequests == nil || m.DBRetries == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.MoneyOperations.WithLabelValues("send").Inc()
	m.RateLimitHits.Inc()

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}
}

func TestNewTwiceOnSeparateRegistries(t *testing.T) {
	first := New(prometheus.NewRegistry())
	second := New(prometheus.NewRegistry())

	first.MoneyOperations.WithLabelValues("add_money").Inc()

	if got := testutil.ToFloat64(first.MoneyOperations.WithLabelValues("add_money")); got != 1 {
		t.Fatalf("first counter = %v, want 1", got)
	}
	if got := testutil.ToFloat64(second.MoneyOperations.WithLabelValues("add_money")); got != 0 {
		t.Fatalf("second counter = %v, want 0", got)
	}
}

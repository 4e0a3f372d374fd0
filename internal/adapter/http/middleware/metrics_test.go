package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/iho/gowallet/internal/infrastructure/metrics"
)

func TestMetricsMiddlewareRecordsRoutePattern(t *testing.T) {
	testCases := []struct {
		name        string
		method      string
		path        string
		wantPattern string
		statusCode  int
	}{
		{
			name:        "uses route pattern for ids",
			method:      http.MethodDelete,
			path:        "/api/payment-methods/42",
			wantPattern: "/api/payment-methods/{id}",
			statusCode:  http.StatusTeapot,
		},
		{
			name:        "static path",
			method:      http.MethodGet,
			path:        "/health",
			wantPattern: "/health",
			statusCode:  http.StatusOK,
		},
		{
			name:        "unknown path",
			method:      http.MethodGet,
			path:        "/nope",
			wantPattern: "unmatched",
			statusCode:  http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := metrics.New(prometheus.NewRegistry())

			r := chi.NewRouter()
			r.Use(Metrics(m))
			r.Get("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
			r.Delete("/api/payment-methods/{id}", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTeapot)
			})

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))

			if rec.Code != tc.statusCode {
				t.Fatalf("expected status %d, got %d", tc.statusCode, rec.Code)
			}

			got := testutil.ToFloat64(m.HTTPRequests.WithLabelValues(tc.method, tc.wantPattern, strconv.Itoa(tc.statusCode)))
			if got != 1 {
				t.Fatalf("expected request counter for %s, got %v", tc.wantPattern, got)
			}
			if inFlight := testutil.ToFloat64(m.HTTPInFlight); inFlight != 0 {
				t.Fatalf("expected in-flight gauge back at 0, got %v", inFlight)
			}
		})
	}
}

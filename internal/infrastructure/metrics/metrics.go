package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Money movement metrics
	MoneyOperations   *prometheus.CounterVec
	MoneyDuration     *prometheus.HistogramVec
	MoneyAmount       *prometheus.HistogramVec
	MoneyErrors       *prometheus.CounterVec
	MoneyRequestsSent prometheus.Counter

	// Payment method metrics
	PaymentMethodsCreated     prometheus.Counter
	PaymentMethodsDeactivated prometheus.Counter

	// Lock metrics
	LockWaitDuration prometheus.Histogram
	LockErrors       prometheus.Counter

	// Notifier metrics
	NotificationsPublished *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	HTTPInFlight prometheus.Gauge

	// Database metrics
	DBRetries *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits prometheus.Counter
}

// New creates all Prometheus metrics and registers them with reg.
// A nil reg falls back to the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		// Money movement metrics
		MoneyOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gowallet_money_operations_total",
				Help: "Total completed money operations by type",
			},
			[]string{"operation"},
		),
		MoneyDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gowallet_money_operation_duration_seconds",
				Help:    "Duration of money operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		MoneyAmount: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gowallet_money_amount",
				Help:    "Amounts moved by operation",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
			},
			[]string{"operation"},
		),
		MoneyErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gowallet_money_errors_total",
				Help: "Total money operation errors by type",
			},
			[]string{"operation", "error_type"},
		),
		MoneyRequestsSent: factory.NewCounter(prometheus.CounterOpts{
			Name: "gowallet_money_requests_total",
			Help: "Total money requests acknowledged",
		}),

		// Payment method metrics
		PaymentMethodsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "gowallet_payment_methods_created_total",
			Help: "Total payment methods created",
		}),
		PaymentMethodsDeactivated: factory.NewCounter(prometheus.CounterOpts{
			Name: "gowallet_payment_methods_deactivated_total",
			Help: "Total payment methods deactivated",
		}),

		// Lock metrics
		LockWaitDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "gowallet_user_lock_wait_seconds",
			Help:    "Time spent waiting for the per-user write lock",
			Buckets: prometheus.DefBuckets,
		}),
		LockErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "gowallet_user_lock_errors_total",
			Help: "Total failures to acquire the per-user write lock",
		}),

		// Notifier metrics
		NotificationsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gowallet_notifications_total",
				Help: "Total money request notifications by result",
			},
			[]string{"status"},
		),

		// API metrics
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gowallet_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gowallet_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "gowallet_http_in_flight_requests",
			Help: "Current number of HTTP requests being served",
		}),

		// Database metrics
		DBRetries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gowallet_db_retries_total",
				Help: "Total retried database operations by pg error code",
			},
			[]string{"code"},
		),

		// Rate limiting metrics
		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "gowallet_rate_limit_hits_total",
			Help: "Total requests rejected by the rate limiter",
		}),
	}
}

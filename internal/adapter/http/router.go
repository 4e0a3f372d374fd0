package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/gowallet/internal/adapter/http/handler"
	"github.com/iho/gowallet/internal/adapter/http/middleware"
	"github.com/iho/gowallet/internal/infrastructure/metrics"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	WalletHandler        *handler.WalletHandler
	MoneyHandler         *handler.MoneyHandler
	PaymentMethodHandler *handler.PaymentMethodHandler
	HealthHandler        *handler.HealthHandler

	Logger      zerolog.Logger
	Metrics     *metrics.Metrics
	Gatherer    prometheus.Gatherer
	RateLimiter *middleware.RateLimiter
	CORSOrigin  string
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	if cfg.CORSOrigin != "" {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:       []string{cfg.CORSOrigin},
			AllowedMethods:       []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:       []string{"Accept", "Content-Type", middleware.RequestIDHeader},
			ExposedHeaders:       []string{middleware.RequestIDHeader},
			MaxAge:               300,
			OptionsSuccessStatus: http.StatusNoContent,
		}))
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Limit)
		}

		r.Get("/user", cfg.WalletHandler.GetUser)
		r.Get("/transactions", cfg.WalletHandler.ListTransactions)

		r.Route("/payment-methods", func(r chi.Router) {
			r.Get("/", cfg.WalletHandler.ListPaymentMethods)
			r.Post("/", cfg.PaymentMethodHandler.Create)
			r.Delete("/{id}", cfg.PaymentMethodHandler.Deactivate)
		})

		r.Post("/send-money", cfg.MoneyHandler.SendMoney)
		r.Post("/add-money", cfg.MoneyHandler.AddMoney)
		r.Post("/request-money", cfg.MoneyHandler.RequestMoney)
	})

	return r
}

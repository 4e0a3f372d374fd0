package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/gowallet/internal/adapter/http"
	"github.com/iho/gowallet/internal/adapter/http/handler"
	"github.com/iho/gowallet/internal/adapter/http/middleware"
	"github.com/iho/gowallet/internal/adapter/notifier"
	"github.com/iho/gowallet/internal/adapter/repository/memory"
	postgresRepo "github.com/iho/gowallet/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/gowallet/internal/adapter/repository/redis"
	"github.com/iho/gowallet/internal/domain"
	"github.com/iho/gowallet/internal/infrastructure/config"
	"github.com/iho/gowallet/internal/infrastructure/logger"
	"github.com/iho/gowallet/internal/infrastructure/metrics"
	"github.com/iho/gowallet/internal/infrastructure/postgres"
	"github.com/iho/gowallet/internal/infrastructure/redis"
	"github.com/iho/gowallet/internal/usecase"
)

// seeder loads the demo dataset into a store.
type seeder interface {
	Seed(ctx context.Context, data domain.DemoDataset) error
}

// app is the wired server plus everything that must be closed on shutdown.
type app struct {
	handler     http.Handler
	rateLimiter *middleware.RateLimiter
	closers     []func()
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	zerolog.TimeFieldFormat = time.RFC3339Nano
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	zerolog.SetGlobalLevel(logger.ParseLevel(cfg.LogLevel))
	log.Logger = appLogger

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLogger); err != nil {
		appLogger.Fatal().Err(err).Msg("server failed")
	}
}

func run(ctx context.Context, cfg *config.Config, appLogger zerolog.Logger) error {
	ctx = appLogger.WithContext(ctx)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	a, err := buildApp(ctx, cfg, appLogger, reg)
	if err != nil {
		return err
	}
	defer a.close()

	go a.rateLimiter.RunCleanup(ctx, 10*time.Minute)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      a.handler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info().Str("port", cfg.HTTPPort).Str("storage", cfg.StorageDriver).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	appLogger.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	appLogger.Info().Msg("server stopped")

	return nil
}

// buildApp wires storage, locking, notification and HTTP for cfg.
func buildApp(ctx context.Context, cfg *config.Config, appLogger zerolog.Logger, reg *prometheus.Registry) (_ *app, err error) {
	a := &app{}
	defer func() {
		if err != nil {
			a.close()
		}
	}()

	m := metrics.New(reg)

	var (
		accounts usecase.AccountStore
		ledger   usecase.TransactionLedger
		seeders  []seeder
		checks   []handler.HealthCheck
	)

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}

		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		appLogger.Info().Msg("connected to postgres")

		retrier := postgresRepo.NewRetrier().WithMetrics(m)
		accounts = postgresRepo.NewAccountStore(pool, retrier)
		ledger = postgresRepo.NewLedger(pool, retrier)
		seeders = []seeder{postgresRepo.NewSeeder(pool)}
		checks = append(checks, handler.HealthCheck{Name: "postgres", Check: pool.Ping})

	default:
		store := memory.NewAccountStore()
		memLedger := memory.NewLedger()
		accounts, ledger = store, memLedger
		seeders = []seeder{store, memLedger}
	}

	if cfg.SeedDemoData {
		data := domain.Demo(time.Now().UTC())
		for _, s := range seeders {
			if err := s.Seed(ctx, data); err != nil {
				return nil, fmt.Errorf("failed to seed demo data: %w", err)
			}
		}
		appLogger.Info().Int64("user_id", data.User.ID).Msg("demo data seeded")
	}

	var locker usecase.UserLocker
	switch {
	case !cfg.SerializeWrites:
		appLogger.Warn().Msg("per-user write serialization disabled")
	case cfg.RedisURL != "":
		client, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.closers = append(a.closers, func() { client.Close() })

		locker = redisRepo.NewUserLocker(client, cfg.LockTTL)
		checks = append(checks, handler.HealthCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return client.Ping(ctx).Err() },
		})
	default:
		locker = memory.NewUserLocker()
	}

	var moneyNotifier usecase.Notifier
	if len(cfg.KafkaBrokers) > 0 {
		kn := notifier.NewKafkaNotifier(cfg.KafkaBrokers, cfg.KafkaTopic, m)
		a.closers = append(a.closers, func() {
			if err := kn.Close(); err != nil {
				appLogger.Warn().Err(err).Msg("failed to close kafka writer")
			}
		})
		moneyNotifier = kn
	} else {
		moneyNotifier = notifier.NewLogNotifier(m)
	}

	moneyUC := usecase.NewMoneyUseCase(accounts, ledger, locker, moneyNotifier, m)
	walletUC := usecase.NewWalletUseCase(accounts, ledger, m)

	a.rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, m)
	a.handler = httpAdapter.NewRouter(httpAdapter.RouterConfig{
		WalletHandler:        handler.NewWalletHandler(walletUC, cfg.DemoUserID),
		MoneyHandler:         handler.NewMoneyHandler(moneyUC, cfg.DemoUserID),
		PaymentMethodHandler: handler.NewPaymentMethodHandler(walletUC, cfg.DemoUserID),
		HealthHandler:        handler.NewHealthHandler(checks...),
		Logger:               appLogger,
		Metrics:              m,
		Gatherer:             reg,
		RateLimiter:          a.rateLimiter,
		CORSOrigin:           cfg.CORSAllowedOrigin,
	})

	return a, nil
}

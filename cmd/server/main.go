package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"github.com/harshman7/insight-agent-idp/internal/adapter/export"
	"github.com/harshman7/insight-agent-idp/internal/adapter/gcs"
	httpAdapter "github.com/harshman7/insight-agent-idp/internal/adapter/http"
	"github.com/harshman7/insight-agent-idp/internal/adapter/http/handler"
	"github.com/harshman7/insight-agent-idp/internal/adapter/http/middleware"
	"github.com/harshman7/insight-agent-idp/internal/adapter/repository/memory"
	postgresRepo "github.com/harshman7/insight-agent-idp/internal/adapter/repository/postgres"
	redisRepo "github.com/harshman7/insight-agent-idp/internal/adapter/repository/redis"
	"github.com/harshman7/insight-agent-idp/internal/infrastructure/config"
	"github.com/harshman7/insight-agent-idp/internal/infrastructure/logger"
	"github.com/harshman7/insight-agent-idp/internal/infrastructure/metrics"
	"github.com/harshman7/insight-agent-idp/internal/infrastructure/postgres"
	"github.com/harshman7/insight-agent-idp/internal/infrastructure/redis"
	"github.com/harshman7/insight-agent-idp/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx := context.Background()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	health := handler.NewHealthHandler()

	// Snapshot source
	reader, closeReader, err := newSnapshotSource(ctx, cfg, log, m, health)
	if err != nil {
		return err
	}
	defer closeReader()

	idGen := postgresRepo.NewULIDGenerator()
	reportOpts := []usecase.ReportOption{
		usecase.WithObserver(m),
		usecase.WithWorkers(cfg.Workers),
	}

	// Redis report cache (optional)
	if cfg.RedisURL != "" {
		redisClient, err := redis.NewClient(ctx, cfg.RedisURL,
			redis.WithPoolSize(cfg.RedisPoolSize),
			redis.WithTimeouts(cfg.RedisTimeout, cfg.RedisTimeout),
		)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer redisClient.Close()
		log.Info().Msg("connected to redis")

		cache := redisRepo.NewCache(redisClient)
		health.WithCheck("redis", cache)
		reportOpts = append(reportOpts, usecase.WithCache(cache, cfg.ReportCacheTTL))
	}

	// Export sink (optional)
	var sink usecase.ExportSink
	if cfg.ExportBucket != "" {
		client, err := storage.NewClient(ctx)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}
		defer client.Close()
		sink = gcs.NewGCSSink(client, cfg.ExportBucket, cfg.ExportPrefix, m, log)
		log.Info().Str("bucket", cfg.ExportBucket).Msg("exports will be uploaded")
	}

	// Initialize use cases
	reportUC := usecase.NewReportUseCase(reader, idGen, usecase.SystemClock{}, cfg.Analysis, log, reportOpts...)
	matchUC := usecase.NewMatchUseCase(reader, cfg.Analysis)
	forecastUC := usecase.NewForecastUseCase(reader, cfg.Analysis)
	transactionUC := usecase.NewTransactionUseCase(reader)
	insightsUC := usecase.NewInsightsUseCase(reader)
	exportUC := usecase.NewExportUseCase(reportUC, reader, export.NewWorkbookRenderer(), export.NewSummaryRenderer(), sink)

	// Create router
	rl := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		ReportHandler:      handler.NewReportHandler(reportUC),
		MatchHandler:       handler.NewMatchHandler(matchUC),
		ForecastHandler:    handler.NewForecastHandler(forecastUC),
		TransactionHandler: handler.NewTransactionHandler(transactionUC),
		InsightsHandler:    handler.NewInsightsHandler(insightsUC),
		ExportHandler:      handler.NewExportHandler(exportUC),
		HealthHandler:      health,
		RateLimiter:        rl,
		Logger:             &log,
		Timeout:            cfg.ReportTimeout,
		Gatherer:           reg,
	})

	// Create server
	server := &http.Server{
		Addr:         serverAddr(cfg),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	stopCleanup := startLimiterCleanup(rl, time.Minute, 10*time.Minute, log)
	defer stopCleanup()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}

// newSnapshotSource picks the JSON snapshot file when configured and
// PostgreSQL otherwise. The returned func releases the source.
func newSnapshotSource(
	ctx context.Context,
	cfg *config.Config,
	log zerolog.Logger,
	observer postgresRepo.ReadObserver,
	health *handler.HealthHandler,
) (usecase.SnapshotReader, func(), error) {
	if cfg.SnapshotPath != "" {
		store, err := memory.LoadFile(cfg.SnapshotPath)
		if err != nil {
			return nil, nil, err
		}
		log.Info().
			Str("path", cfg.SnapshotPath).
			Int("transactions", len(store.Snapshot().Transactions)).
			Msg("loaded snapshot file")
		return store, func() {}, nil
	}

	if cfg.MigrationsPath != "" {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
			return nil, nil, err
		}
	}

	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	log.Info().Msg("connected to postgres")
	health.WithCheck("postgres", pool)

	return postgresRepo.NewSnapshotRepository(pool, log, observer), pool.Close, nil
}

func serverAddr(cfg *config.Config) string {
	return fmt.Sprintf(":%s", cfg.HTTPPort)
}

// startLimiterCleanup periodically forgets idle rate limiter visitors.
func startLimiterCleanup(rl *middleware.RateLimiter, every, maxIdle time.Duration, log zerolog.Logger) func() {
	ticker := time.NewTicker(every)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ticker.C:
				if n := rl.CleanupLimiters(maxIdle); n > 0 {
					log.Debug().Int("removed", n).Msg("rate limiter cleanup")
				}
			case <-done:
				return
			}
		}
	}()
	return func() {
		ticker.Stop()
		close(done)
	}
}

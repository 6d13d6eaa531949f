package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/harshman7/insight-agent-idp/internal/adapter/http/handler"
	"github.com/harshman7/insight-agent-idp/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	ReportHandler      *handler.ReportHandler
	MatchHandler       *handler.MatchHandler
	ForecastHandler    *handler.ForecastHandler
	TransactionHandler *handler.TransactionHandler
	InsightsHandler    *handler.InsightsHandler
	ExportHandler      *handler.ExportHandler
	HealthHandler      *handler.HealthHandler

	RateLimiter *middleware.RateLimiter
	Logger      *zerolog.Logger

	// Timeout bounds each API request. Zero disables it.
	Timeout time.Duration

	// Gatherer serves /metrics when set.
	Gatherer prometheus.Gatherer
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	if cfg.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(*cfg.Logger).Wrap)
		r.Use(middleware.Recovery(*cfg.Logger))
	} else {
		r.Use(chimiddleware.Recoverer)
	}
	r.Use(middleware.Metrics)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	if cfg.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.Timeout > 0 {
			r.Use(chimiddleware.Timeout(cfg.Timeout))
		}

		if cfg.ReportHandler != nil {
			r.Post("/reports", cfg.ReportHandler.Generate)
		}

		if cfg.MatchHandler != nil {
			r.Post("/matches", cfg.MatchHandler.Match)
			r.Route("/receipts", func(r chi.Router) {
				r.Get("/unmatched", cfg.MatchHandler.Unmatched)
				r.Get("/{id}/candidates", cfg.MatchHandler.Candidates)
			})
		}

		if cfg.ForecastHandler != nil {
			r.Post("/forecasts", cfg.ForecastHandler.Create)
		}

		if cfg.TransactionHandler != nil {
			r.Route("/transactions", func(r chi.Router) {
				r.Get("/{left}/compare/{right}", cfg.TransactionHandler.Compare)
				r.Get("/{id}/similar", cfg.TransactionHandler.Similar)
			})
			r.Get("/vendors/{vendor}/prices", cfg.TransactionHandler.PriceHistory)
		}

		if cfg.InsightsHandler != nil {
			r.Route("/insights", func(r chi.Router) {
				r.Get("/vendors", cfg.InsightsHandler.Vendors)
				r.Get("/categories", cfg.InsightsHandler.Categories)
				r.Get("/monthly", cfg.InsightsHandler.Monthly)
			})
		}

		if cfg.ExportHandler != nil {
			r.Route("/exports", func(r chi.Router) {
				r.Post("/xlsx", cfg.ExportHandler.Workbook)
				r.Get("/summary", cfg.ExportHandler.Summary)
			})
		}
	})

	return r
}

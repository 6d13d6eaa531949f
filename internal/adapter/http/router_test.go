package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/harshman7/insight-agent-idp/internal/adapter/export"
	"github.com/harshman7/insight-agent-idp/internal/adapter/http/handler"
	apimiddleware "github.com/harshman7/insight-agent-idp/internal/adapter/http/middleware"
	"github.com/harshman7/insight-agent-idp/internal/adapter/repository/memory"
	"github.com/harshman7/insight-agent-idp/internal/analysis"
	"github.com/harshman7/insight-agent-idp/internal/domain"
	"github.com/harshman7/insight-agent-idp/internal/usecase"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type seqIDs struct{ n int }

func (g *seqIDs) Generate() string {
	g.n++
	return fmt.Sprintf("rpt-%d", g.n)
}

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"GET /metrics",
		"POST /api/v1/reports",
		"POST /api/v1/matches",
		"GET /api/v1/receipts/unmatched",
		"GET /api/v1/receipts/{id}/candidates",
		"POST /api/v1/forecasts",
		"GET /api/v1/transactions/{left}/compare/{right}",
		"GET /api/v1/transactions/{id}/similar",
		"GET /api/v1/vendors/{vendor}/prices",
		"GET /api/v1/insights/vendors",
		"GET /api/v1/insights/categories",
		"GET /api/v1/insights/monthly",
		"POST /api/v1/exports/xlsx",
		"GET /api/v1/exports/summary",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func TestNewRouter_ReportEndToEnd(t *testing.T) {
	router := NewRouter(newRouterConfig())

	body := `{"as_of":"2024-04-01"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["transaction_count"] != float64(3) {
		t.Fatalf("expected 3 transactions, got %v", resp["transaction_count"])
	}
	if resp["degraded"] != false {
		t.Fatalf("expected a complete report, got %v", resp["errors"])
	}
}

func TestNewRouter_VendorPricesUnknownVendor(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/vendors/Initech/prices", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestNewRouter_MetricsEndpoint(t *testing.T) {
	router := NewRouter(newRouterConfig())

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Fatalf("expected registry output, got %q", rec.Body.String())
	}
}

func TestNewRouter_LogsRequests(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.Logger = &logger
	}))

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	if !strings.Contains(buf.String(), `"path":"/health"`) {
		t.Fatalf("expected request log line, got %q", buf.String())
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	d1 := civil.Date{Year: 2024, Month: time.March, Day: 10}
	d2 := civil.Date{Year: 2024, Month: time.March, Day: 12}
	store := memory.NewSnapshotStore(domain.Snapshot{
		Transactions: []domain.Transaction{
			{ID: "t1", Vendor: "Acme Corp", Amount: decimal.RequireFromString("120.50"), Date: &d1, Type: domain.DocumentTypeInvoice},
			{ID: "t2", Vendor: "ACME Corp.", Amount: decimal.RequireFromString("120.50"), Date: &d2, Type: domain.DocumentTypeReceipt},
			{ID: "t3", Vendor: "Globex", AmountMissing: true, Type: domain.DocumentTypeReceipt},
		},
	})

	cfg := analysis.DefaultConfig()
	clock := fixedClock{now: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)}
	reportUC := usecase.NewReportUseCase(store, &seqIDs{}, clock, cfg, zerolog.Nop())
	exportUC := usecase.NewExportUseCase(reportUC, store, export.NewWorkbookRenderer(), export.NewSummaryRenderer(), nil)

	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector())

	rc := RouterConfig{
		ReportHandler:      handler.NewReportHandler(reportUC),
		MatchHandler:       handler.NewMatchHandler(usecase.NewMatchUseCase(store, cfg)),
		ForecastHandler:    handler.NewForecastHandler(usecase.NewForecastUseCase(store, cfg)),
		TransactionHandler: handler.NewTransactionHandler(usecase.NewTransactionUseCase(store)),
		InsightsHandler:    handler.NewInsightsHandler(usecase.NewInsightsUseCase(store)),
		ExportHandler:      handler.NewExportHandler(exportUC),
		HealthHandler:      handler.NewHealthHandler(),
		Gatherer:           reg,
	}

	for _, opt := range opts {
		opt(&rc)
	}

	return rc
}

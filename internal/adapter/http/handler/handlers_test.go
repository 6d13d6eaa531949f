package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/harshman7/insight-agent-idp/internal/adapter/http/dto"
	"github.com/harshman7/insight-agent-idp/internal/domain"
	"github.com/harshman7/insight-agent-idp/internal/usecase"
)

func setChiURLParams(req *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

type reportServiceStub struct {
	generateFn func(ctx context.Context, req usecase.ReportRequest) (*domain.Report, error)
}

func (s *reportServiceStub) GenerateReport(ctx context.Context, req usecase.ReportRequest) (*domain.Report, error) {
	return s.generateFn(ctx, req)
}

type matchServiceStub struct {
	matchFn      func(ctx context.Context, req usecase.MatchRequest) (*domain.MatchResult, error)
	candidatesFn func(ctx context.Context, id string) ([]domain.Match, error)
	unmatchedFn  func(ctx context.Context, req usecase.MatchRequest) ([]domain.Transaction, error)
}

func (s *matchServiceStub) MatchReceipts(ctx context.Context, req usecase.MatchRequest) (*domain.MatchResult, error) {
	return s.matchFn(ctx, req)
}

func (s *matchServiceStub) CandidatesForReceipt(ctx context.Context, id string) ([]domain.Match, error) {
	return s.candidatesFn(ctx, id)
}

func (s *matchServiceStub) UnmatchedReceipts(ctx context.Context, req usecase.MatchRequest) ([]domain.Transaction, error) {
	return s.unmatchedFn(ctx, req)
}

type forecastServiceStub struct {
	forecastFn func(ctx context.Context, req usecase.ForecastRequest) (*domain.Forecast, error)
}

func (s *forecastServiceStub) Forecast(ctx context.Context, req usecase.ForecastRequest) (*domain.Forecast, error) {
	return s.forecastFn(ctx, req)
}

type transactionServiceStub struct {
	compareFn func(ctx context.Context, left, right string) (*domain.Comparison, error)
	historyFn func(ctx context.Context, vendor string, rng domain.DateRange) (*domain.PriceHistory, error)
	similarFn func(ctx context.Context, id string, limit int) ([]domain.SimilarTransaction, error)
}

func (s *transactionServiceStub) CompareTransactions(ctx context.Context, left, right string) (*domain.Comparison, error) {
	return s.compareFn(ctx, left, right)
}

func (s *transactionServiceStub) PriceHistory(ctx context.Context, vendor string, rng domain.DateRange) (*domain.PriceHistory, error) {
	return s.historyFn(ctx, vendor, rng)
}

func (s *transactionServiceStub) SimilarTransactions(ctx context.Context, id string, limit int) ([]domain.SimilarTransaction, error) {
	return s.similarFn(ctx, id, limit)
}

type insightsServiceStub struct {
	vendorsFn func(ctx context.Context, rng domain.DateRange, limit int) ([]domain.VendorStat, error)
}

func (s *insightsServiceStub) VendorStats(ctx context.Context, rng domain.DateRange, limit int) ([]domain.VendorStat, error) {
	return s.vendorsFn(ctx, rng, limit)
}

func (s *insightsServiceStub) CategoryBreakdown(context.Context, domain.DateRange) ([]domain.CategoryTotal, error) {
	return []domain.CategoryTotal{{Category: domain.UncategorizedLabel, Total: decimal.NewFromInt(5), TransactionCount: 1}}, nil
}

func (s *insightsServiceStub) MonthlySpend(context.Context, domain.DateRange) ([]domain.MonthlyTotal, error) {
	return nil, nil
}

type exportServiceStub struct {
	workbookFn func(ctx context.Context, req usecase.ReportRequest) (*usecase.ExportResult, error)
	summaryFn  func(ctx context.Context, req usecase.ReportRequest) (string, error)
}

func (s *exportServiceStub) ExportWorkbook(ctx context.Context, req usecase.ReportRequest) (*usecase.ExportResult, error) {
	return s.workbookFn(ctx, req)
}

func (s *exportServiceStub) SummaryMarkdown(ctx context.Context, req usecase.ReportRequest) (string, error) {
	return s.summaryFn(ctx, req)
}

func TestReportHandler_Generate_Success(t *testing.T) {
	var captured usecase.ReportRequest
	h := NewReportHandler(&reportServiceStub{
		generateFn: func(ctx context.Context, req usecase.ReportRequest) (*domain.Report, error) {
			captured = req
			return &domain.Report{
				ID: "rpt-1",
				Findings: []domain.Finding{{
					TransactionIDs: []string{"t2", "t1"},
					Kind:           domain.FindingKindDuplicate,
					Severity:       domain.SeverityHigh,
					Section:        domain.SectionDuplicates,
				}},
				Errors: []domain.SectionError{{Section: domain.SectionForecast, Kind: domain.ErrorKindComputation, Message: "boom"}},
			}, nil
		},
	})

	body, _ := json.Marshal(dto.ReportRequest{
		RangeRequest: dto.RangeRequest{From: "2024-01-01", Vendor: "acme"},
		Sections:     []string{"duplicates", "forecast"},
	})
	req := httptest.NewRequest(http.MethodPost, "/reports", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Generate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.Vendor != "acme" || len(captured.Sections) != 2 || captured.Range.From == nil {
		t.Fatalf("request not converted, got %+v", captured)
	}

	var resp dto.ReportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "rpt-1" || !resp.Degraded || len(resp.Findings) != 1 {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestReportHandler_Generate_EmptyBody(t *testing.T) {
	called := false
	h := NewReportHandler(&reportServiceStub{
		generateFn: func(ctx context.Context, req usecase.ReportRequest) (*domain.Report, error) {
			called = true
			if len(req.Sections) != 0 || !req.Range.IsZero() {
				t.Fatalf("expected default request, got %+v", req)
			}
			return &domain.Report{ID: "r"}, nil
		},
	})

	rec := httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/reports", nil))

	if rec.Code != http.StatusOK || !called {
		t.Fatalf("expected 200 with service call, got %d", rec.Code)
	}
}

func TestReportHandler_Generate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		err      error
		expected int
	}{
		{"invalid json", "{invalid", nil, http.StatusBadRequest},
		{"bad date", `{"from": "01-01-2024"}`, nil, http.StatusBadRequest},
		{"input error from service", `{}`, fmt.Errorf("%w: unknown section", domain.ErrInput), http.StatusBadRequest},
		{"timeout", `{}`, context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"snapshot failure", `{}`, errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			h := NewReportHandler(&reportServiceStub{
				generateFn: func(ctx context.Context, req usecase.ReportRequest) (*domain.Report, error) {
					if tt.err == nil {
						t.Fatal("GenerateReport should not be called")
					}
					return nil, tt.err
				},
			})

			rec := httptest.NewRecorder()
			h.Generate(rec, httptest.NewRequest(http.MethodPost, "/reports", strings.NewReader(tt.body)))

			if rec.Code != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, rec.Code)
			}
		})
	}
}

func TestMatchHandler_Match(t *testing.T) {
	h := NewMatchHandler(&matchServiceStub{
		matchFn: func(ctx context.Context, req usecase.MatchRequest) (*domain.MatchResult, error) {
			if req.Threshold == nil || *req.Threshold != 0.9 {
				t.Fatalf("threshold override not passed: %+v", req)
			}
			return &domain.MatchResult{
				Matches:           []domain.Match{{ReceiptID: "r1", InvoiceID: "i1", Confidence: 0.97}},
				UnmatchedReceipts: []string{"r2"},
			}, nil
		},
	})

	rec := httptest.NewRecorder()
	h.Match(rec, httptest.NewRequest(http.MethodPost, "/matches", strings.NewReader(`{"threshold": 0.9}`)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp dto.MatchResultResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Matches) != 1 || resp.Matches[0].InvoiceID != "i1" || resp.UnmatchedInvoices == nil {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestMatchHandler_Candidates_NotFound(t *testing.T) {
	h := NewMatchHandler(&matchServiceStub{
		candidatesFn: func(ctx context.Context, id string) ([]domain.Match, error) {
			if id != "r9" {
				t.Fatalf("expected id r9, got %s", id)
			}
			return nil, domain.ErrTransactionNotFound
		},
	})

	req := setChiURLParams(httptest.NewRequest(http.MethodGet, "/receipts/r9/candidates", nil), "id", "r9")
	rec := httptest.NewRecorder()
	h.Candidates(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestMatchHandler_Unmatched(t *testing.T) {
	h := NewMatchHandler(&matchServiceStub{
		unmatchedFn: func(ctx context.Context, req usecase.MatchRequest) ([]domain.Transaction, error) {
			if req.Vendor != "acme" {
				t.Fatalf("expected vendor filter, got %+v", req)
			}
			return []domain.Transaction{{ID: "r2", Type: domain.DocumentTypeReceipt, AmountMissing: true}}, nil
		},
	})

	rec := httptest.NewRecorder()
	h.Unmatched(rec, httptest.NewRequest(http.MethodGet, "/receipts/unmatched?vendor=acme", nil))

	var resp dto.ListResponse[dto.TransactionResponse]
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 1 || resp.Items[0].Amount != nil {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestForecastHandler_Unavailable(t *testing.T) {
	h := NewForecastHandler(&forecastServiceStub{
		forecastFn: func(ctx context.Context, req usecase.ForecastRequest) (*domain.Forecast, error) {
			return &domain.Forecast{Available: false, Reason: "insufficient data", Horizon: req.Horizon}, nil
		},
	})

	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/forecasts", strings.NewReader(`{"horizon": 3}`)))

	if rec.Code != http.StatusOK {
		t.Fatalf("insufficient data must not be an HTTP error, got %d", rec.Code)
	}
	var resp dto.ForecastResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Available || resp.Reason == "" || resp.Horizon != 3 {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestForecastHandler_RejectsHorizonAboveLimit(t *testing.T) {
	called := false
	h := NewForecastHandler(&forecastServiceStub{
		forecastFn: func(ctx context.Context, req usecase.ForecastRequest) (*domain.Forecast, error) {
			called = true
			return &domain.Forecast{}, nil
		},
	})

	for _, body := range []string{`{"horizon": 1000000000}`, `{"horizon": 121}`, `{"horizon": -1}`} {
		rec := httptest.NewRecorder()
		h.Create(rec, httptest.NewRequest(http.MethodPost, "/forecasts", strings.NewReader(body)))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
	}
	if called {
		t.Fatalf("service must not be called for an out-of-range horizon")
	}
}

func TestTransactionHandler_Compare(t *testing.T) {
	delta := decimal.NewFromInt(30)
	h := NewTransactionHandler(&transactionServiceStub{
		compareFn: func(ctx context.Context, left, right string) (*domain.Comparison, error) {
			return &domain.Comparison{
				LeftID:      left,
				RightID:     right,
				Differences: []domain.FieldDiff{{Field: domain.ComparedFieldAmount, Old: "100", New: "130"}},
				AmountDelta: &delta,
			}, nil
		},
	})

	req := setChiURLParams(httptest.NewRequest(http.MethodGet, "/transactions/a/compare/b", nil), "left", "a", "right", "b")
	rec := httptest.NewRecorder()
	h.Compare(rec, req)

	var resp dto.ComparisonResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.LeftID != "a" || resp.RightID != "b" || resp.Identical || !resp.AmountDelta.Equal(delta) {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestTransactionHandler_PriceHistory(t *testing.T) {
	h := NewTransactionHandler(&transactionServiceStub{
		historyFn: func(ctx context.Context, vendor string, rng domain.DateRange) (*domain.PriceHistory, error) {
			if vendor != "Acme Corp" {
				return nil, domain.ErrVendorNotFound
			}
			return &domain.PriceHistory{Vendor: vendor, Points: []domain.PricePoint{{
				TransactionID: "t1",
				Date:          civil.Date{Year: 2024, Month: time.January, Day: 5},
				Amount:        decimal.NewFromInt(100),
			}}}, nil
		},
	})

	req := setChiURLParams(httptest.NewRequest(http.MethodGet, "/vendors/Acme%20Corp/prices", nil), "vendor", "Acme%20Corp")
	rec := httptest.NewRecorder()
	h.PriceHistory(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	req = setChiURLParams(httptest.NewRequest(http.MethodGet, "/vendors/Nobody/prices", nil), "vendor", "Nobody")
	rec = httptest.NewRecorder()
	h.PriceHistory(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestTransactionHandler_Similar_PassesLimit(t *testing.T) {
	h := NewTransactionHandler(&transactionServiceStub{
		similarFn: func(ctx context.Context, id string, limit int) ([]domain.SimilarTransaction, error) {
			if id != "t1" || limit != 3 {
				t.Fatalf("unexpected args id=%s limit=%d", id, limit)
			}
			return []domain.SimilarTransaction{{TransactionID: "t2", Score: 0.8}}, nil
		},
	})

	req := setChiURLParams(httptest.NewRequest(http.MethodGet, "/transactions/t1/similar?limit=3", nil), "id", "t1")
	rec := httptest.NewRecorder()
	h.Similar(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestInsightsHandler_Vendors_DefaultLimit(t *testing.T) {
	h := NewInsightsHandler(&insightsServiceStub{
		vendorsFn: func(ctx context.Context, rng domain.DateRange, limit int) ([]domain.VendorStat, error) {
			if limit != domain.DefaultListLimit {
				t.Fatalf("expected default limit, got %d", limit)
			}
			return nil, nil
		},
	})

	rec := httptest.NewRecorder()
	h.Vendors(rec, httptest.NewRequest(http.MethodGet, "/insights/vendors", nil))

	var resp dto.ListResponse[dto.VendorStatResponse]
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Items == nil || resp.Count != 0 {
		t.Fatalf("expected empty list, got %+v", resp)
	}
}

func TestInsightsHandler_Categories_BadRange(t *testing.T) {
	h := NewInsightsHandler(&insightsServiceStub{})

	rec := httptest.NewRecorder()
	h.Categories(rec, httptest.NewRequest(http.MethodGet, "/insights/categories?to=nope", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestExportHandler_Workbook(t *testing.T) {
	t.Run("streams file without sink", func(t *testing.T) {
		h := NewExportHandler(&exportServiceStub{
			workbookFn: func(ctx context.Context, req usecase.ReportRequest) (*usecase.ExportResult, error) {
				return &usecase.ExportResult{Name: "insights-r1.xlsx", ContentType: usecase.XLSXContentType, Data: []byte("xlsx")}, nil
			},
		})

		rec := httptest.NewRecorder()
		h.Workbook(rec, httptest.NewRequest(http.MethodPost, "/exports/xlsx", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != usecase.XLSXContentType {
			t.Fatalf("unexpected content type %s", ct)
		}
		if !strings.Contains(rec.Header().Get("Content-Disposition"), "insights-r1.xlsx") {
			t.Fatalf("missing filename in %q", rec.Header().Get("Content-Disposition"))
		}
		if rec.Body.String() != "xlsx" {
			t.Fatalf("unexpected body %q", rec.Body.String())
		}
	})

	t.Run("returns location when stored", func(t *testing.T) {
		h := NewExportHandler(&exportServiceStub{
			workbookFn: func(ctx context.Context, req usecase.ReportRequest) (*usecase.ExportResult, error) {
				return &usecase.ExportResult{Name: "insights-r1.xlsx", Data: []byte("xlsx"), Location: "gs://b/insights-r1.xlsx"}, nil
			},
		})

		rec := httptest.NewRecorder()
		h.Workbook(rec, httptest.NewRequest(http.MethodPost, "/exports/xlsx", nil))

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
		var resp dto.ExportResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Location != "gs://b/insights-r1.xlsx" || resp.Bytes != 4 {
			t.Fatalf("unexpected response %+v", resp)
		}
	})
}

func TestExportHandler_Summary(t *testing.T) {
	h := NewExportHandler(&exportServiceStub{
		summaryFn: func(ctx context.Context, req usecase.ReportRequest) (string, error) {
			if req.AsOf == nil {
				t.Fatalf("expected as_of to be parsed")
			}
			return "# Insights report r1\n", nil
		},
	})

	rec := httptest.NewRecorder()
	h.Summary(rec, httptest.NewRequest(http.MethodGet, "/exports/summary?as_of=2024-06-30", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/markdown") {
		t.Fatalf("unexpected content type %s", rec.Header().Get("Content-Type"))
	}
}

type pingerStub struct{ err error }

func (p pingerStub) Ping(context.Context) error { return p.err }

func TestHealthHandler(t *testing.T) {
	h := NewHealthHandler().
		WithCheck("postgres", pingerStub{}).
		WithCheck("redis", nil)

	rec := httptest.NewRecorder()
	h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected ready, got %d", rec.Code)
	}
	var status map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &status)
	if status["postgres"] != "ok" {
		t.Fatalf("expected postgres check, got %v", status)
	}
	if _, ok := status["redis"]; ok {
		t.Fatalf("nil checks must be skipped")
	}

	h.WithCheck("redis", pingerStub{err: errors.New("down")})
	rec = httptest.NewRecorder()
	h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

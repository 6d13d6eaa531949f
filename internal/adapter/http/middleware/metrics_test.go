package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsMiddlewareRecordsRequest(t *testing.T) {
	testCases := []struct {
		name       string
		method     string
		path       string
		statusCode int
	}{
		{
			name:       "normalizes transaction path",
			method:     http.MethodGet,
			path:       "/api/v1/transactions/ABC123/similar",
			statusCode: http.StatusTeapot,
		},
		{
			name:       "keeps non-matching path as-is",
			method:     http.MethodPost,
			path:       "/health",
			statusCode: http.StatusCreated,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			httpRequestsTotal.Reset()
			httpRequestDuration.Reset()
			httpRequestsInFlight.Set(0)

			handlerCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				w.WriteHeader(tc.statusCode)
			})

			req := httptest.NewRequest(tc.method, tc.path, nil)
			rr := httptest.NewRecorder()

			Metrics(next).ServeHTTP(rr, req)

			if !handlerCalled {
				t.Fatalf("next handler was not invoked")
			}

			if got := testutil.ToFloat64(httpRequestsInFlight); got != 0 {
				t.Fatalf("expected in-flight gauge to return to 0, got %v", got)
			}

			normalized := normalizePath(tc.path)
			counter := httpRequestsTotal.WithLabelValues(tc.method, normalized, strconv.Itoa(tc.statusCode))
			if got := testutil.ToFloat64(counter); got != 1 {
				t.Fatalf("expected counter to be 1, got %v", got)
			}
		})
	}
}

func TestMetricsMiddlewareUsesRoutePattern(t *testing.T) {
	httpRequestsTotal.Reset()

	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/api/v1/vendors/{vendor}/prices", func(w http.ResponseWriter, r *http.Request) {})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/vendors/Acme/prices", nil))

	counter := httpRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/vendors/{vendor}/prices", "200")
	if got := testutil.ToFloat64(counter); got != 1 {
		t.Fatalf("expected route pattern label, got %v", got)
	}
}

func TestNormalizePath(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "similar transactions",
			input:    "/api/v1/transactions/ABC123/similar",
			expected: "/api/v1/transactions/:id/similar",
		},
		{
			name:     "comparison",
			input:    "/api/v1/transactions/A/compare/B",
			expected: "/api/v1/transactions/:id/compare/:id",
		},
		{
			name:     "vendor prices",
			input:    "/api/v1/vendors/Acme%20Corp/prices",
			expected: "/api/v1/vendors/:id/prices",
		},
		{
			name:     "unmatched receipts keep their name",
			input:    "/api/v1/receipts/unmatched",
			expected: "/api/v1/receipts/unmatched",
		},
		{
			name:     "non-matching path",
			input:    "/api/v1/reports",
			expected: "/api/v1/reports",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := normalizePath(tc.input); got != tc.expected {
				t.Fatalf("normalizePath(%q) = %q, expected %q", tc.input, got, tc.expected)
			}
		})
	}
}

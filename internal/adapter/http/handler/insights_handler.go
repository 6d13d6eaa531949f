package handler

import (
	"context"
	"net/http"

	"github.com/harshman7/insight-agent-idp/internal/adapter/http/dto"
	"github.com/harshman7/insight-agent-idp/internal/domain"
)

// InsightsService defines the behavior needed by InsightsHandler.
type InsightsService interface {
	VendorStats(ctx context.Context, rng domain.DateRange, limit int) ([]domain.VendorStat, error)
	CategoryBreakdown(ctx context.Context, rng domain.DateRange) ([]domain.CategoryTotal, error)
	MonthlySpend(ctx context.Context, rng domain.DateRange) ([]domain.MonthlyTotal, error)
}

// InsightsHandler handles spend aggregate requests.
type InsightsHandler struct {
	insightsUC InsightsService
}

// NewInsightsHandler creates a new InsightsHandler.
func NewInsightsHandler(insightsUC InsightsService) *InsightsHandler {
	return &InsightsHandler{insightsUC: insightsUC}
}

// Vendors returns the top vendors by total spend.
func (h *InsightsHandler) Vendors(w http.ResponseWriter, r *http.Request) {
	rng, err := parseRangeQuery(r)
	if err != nil {
		writeDomainError(w, "invalid range", err)
		return
	}

	stats, err := h.insightsUC.VendorStats(r.Context(), rng, parseIntQuery(r, "limit", domain.DefaultListLimit))
	if err != nil {
		writeDomainError(w, "failed to compute vendor stats", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(dto.VendorStatsFromDomain(stats)))
}

// Categories returns spend per category.
func (h *InsightsHandler) Categories(w http.ResponseWriter, r *http.Request) {
	rng, err := parseRangeQuery(r)
	if err != nil {
		writeDomainError(w, "invalid range", err)
		return
	}

	totals, err := h.insightsUC.CategoryBreakdown(r.Context(), rng)
	if err != nil {
		writeDomainError(w, "failed to compute categories", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(dto.CategoriesFromDomain(totals)))
}

// Monthly returns the monthly spend series.
func (h *InsightsHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	rng, err := parseRangeQuery(r)
	if err != nil {
		writeDomainError(w, "invalid range", err)
		return
	}

	totals, err := h.insightsUC.MonthlySpend(r.Context(), rng)
	if err != nil {
		writeDomainError(w, "failed to compute monthly spend", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(dto.MonthlyTotalsFromDomain(totals)))
}

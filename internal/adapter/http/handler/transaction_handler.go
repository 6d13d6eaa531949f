package handler

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/harshman7/insight-agent-idp/internal/adapter/http/dto"
	"github.com/harshman7/insight-agent-idp/internal/domain"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	CompareTransactions(ctx context.Context, leftID, rightID string) (*domain.Comparison, error)
	PriceHistory(ctx context.Context, vendor string, rng domain.DateRange) (*domain.PriceHistory, error)
	SimilarTransactions(ctx context.Context, id string, limit int) ([]domain.SimilarTransaction, error)
}

// TransactionHandler handles per-transaction lookups.
type TransactionHandler struct {
	transactionUC TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionUC TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionUC: transactionUC}
}

// Compare diffs two transactions field by field.
func (h *TransactionHandler) Compare(w http.ResponseWriter, r *http.Request) {
	left := chi.URLParam(r, "left")
	right := chi.URLParam(r, "right")
	if left == "" || right == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	cmp, err := h.transactionUC.CompareTransactions(r.Context(), left, right)
	if err != nil {
		writeDomainError(w, "failed to compare transactions", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ComparisonFromDomain(cmp))
}

// Similar ranks transactions resembling the given one.
func (h *TransactionHandler) Similar(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	items, err := h.transactionUC.SimilarTransactions(r.Context(), id, parseIntQuery(r, "limit", 0))
	if err != nil {
		writeDomainError(w, "failed to find similar transactions", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(dto.SimilarFromDomain(items)))
}

// PriceHistory returns a vendor's chronological amounts.
func (h *TransactionHandler) PriceHistory(w http.ResponseWriter, r *http.Request) {
	vendor, err := url.PathUnescape(chi.URLParam(r, "vendor"))
	if err != nil || vendor == "" {
		writeError(w, http.StatusBadRequest, "missing vendor", "")
		return
	}

	rng, err := parseRangeQuery(r)
	if err != nil {
		writeDomainError(w, "invalid range", err)
		return
	}

	history, err := h.transactionUC.PriceHistory(r.Context(), vendor, rng)
	if err != nil {
		writeDomainError(w, "failed to load price history", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.PriceHistoryFromDomain(history))
}

package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/harshman7/insight-agent-idp/internal/adapter/http/dto"
	"github.com/harshman7/insight-agent-idp/internal/domain"
	"github.com/harshman7/insight-agent-idp/internal/usecase"
)

// MatchService defines the behavior needed by MatchHandler.
type MatchService interface {
	MatchReceipts(ctx context.Context, req usecase.MatchRequest) (*domain.MatchResult, error)
	CandidatesForReceipt(ctx context.Context, receiptID string) ([]domain.Match, error)
	UnmatchedReceipts(ctx context.Context, req usecase.MatchRequest) ([]domain.Transaction, error)
}

// MatchHandler handles receipt matching requests.
type MatchHandler struct {
	matchUC MatchService
}

// NewMatchHandler creates a new MatchHandler.
func NewMatchHandler(matchUC MatchService) *MatchHandler {
	return &MatchHandler{matchUC: matchUC}
}

// Match runs one-to-one receipt matching.
func (h *MatchHandler) Match(w http.ResponseWriter, r *http.Request) {
	var req dto.MatchRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, "invalid match request", err)
		return
	}

	res, err := h.matchUC.MatchReceipts(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to match receipts", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MatchResultFromDomain(res))
}

// Candidates lists every invoice that could settle a receipt.
func (h *MatchHandler) Candidates(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing receipt ID", "")
		return
	}

	matches, err := h.matchUC.CandidatesForReceipt(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to list candidates", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(dto.MatchesFromDomain(matches)))
}

// Unmatched lists receipts without an accepted invoice.
func (h *MatchHandler) Unmatched(w http.ResponseWriter, r *http.Request) {
	rng, err := parseRangeQuery(r)
	if err != nil {
		writeDomainError(w, "invalid range", err)
		return
	}

	txs, err := h.matchUC.UnmatchedReceipts(r.Context(), usecase.MatchRequest{
		Range:  rng,
		Vendor: r.URL.Query().Get("vendor"),
	})
	if err != nil {
		writeDomainError(w, "failed to list unmatched receipts", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(dto.TransactionsFromDomain(txs)))
}

package usecase

import (
	"context"
	"fmt"

	"github.com/harshman7/insight-agent-idp/internal/analysis"
	"github.com/harshman7/insight-agent-idp/internal/domain"
)

// MatchRequest scopes a standalone receipt-invoice matching run. Nil
// overrides fall back to the configured defaults.
type MatchRequest struct {
	Range      domain.DateRange
	Vendor     string
	Threshold  *float64
	WindowDays *int
}

// MatchUseCase handles receipt-invoice reconciliation.
type MatchUseCase struct {
	reader SnapshotReader
	cfg    analysis.Config
}

// NewMatchUseCase creates a new match use case.
func NewMatchUseCase(reader SnapshotReader, cfg analysis.Config) *MatchUseCase {
	return &MatchUseCase{reader: reader, cfg: cfg}
}

func (uc *MatchUseCase) config(req MatchRequest) (analysis.Config, error) {
	cfg := uc.cfg
	if req.Threshold != nil {
		cfg.MatchThreshold = *req.Threshold
	}
	if req.WindowDays != nil {
		cfg.MatchWindowDays = *req.WindowDays
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%w: %v", domain.ErrInput, err)
	}
	return cfg, nil
}

// MatchReceipts links receipts to invoices one-to-one.
func (uc *MatchUseCase) MatchReceipts(ctx context.Context, req MatchRequest) (*domain.MatchResult, error) {
	cfg, err := uc.config(req)
	if err != nil {
		return nil, err
	}
	snap, err := loadSnapshot(ctx, uc.reader, scope{Range: req.Range, Vendor: req.Vendor})
	if err != nil {
		return nil, err
	}
	res, err := analysis.MatchReceipts(snap.Transactions, cfg)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// CandidatesForReceipt lists every invoice that could settle the receipt.
func (uc *MatchUseCase) CandidatesForReceipt(ctx context.Context, receiptID string) ([]domain.Match, error) {
	snap, err := loadSnapshot(ctx, uc.reader, scope{})
	if err != nil {
		return nil, err
	}
	return analysis.CandidatesForReceipt(snap.Transactions, receiptID, uc.cfg)
}

// UnmatchedReceipts returns the receipts no invoice was accepted for.
func (uc *MatchUseCase) UnmatchedReceipts(ctx context.Context, req MatchRequest) ([]domain.Transaction, error) {
	cfg, err := uc.config(req)
	if err != nil {
		return nil, err
	}
	snap, err := loadSnapshot(ctx, uc.reader, scope{Range: req.Range, Vendor: req.Vendor})
	if err != nil {
		return nil, err
	}
	res, err := analysis.MatchReceipts(snap.Transactions, cfg)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Transaction, 0, len(res.UnmatchedReceipts))
	for _, id := range res.UnmatchedReceipts {
		tx, err := snap.TransactionByID(id)
		if err != nil {
			return nil, err
		}
		out = append(out, *tx)
	}
	return out, nil
}

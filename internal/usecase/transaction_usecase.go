package usecase

import (
	"context"
	"fmt"

	"github.com/harshman7/insight-agent-idp/internal/analysis"
	"github.com/harshman7/insight-agent-idp/internal/domain"
)

// TransactionUseCase handles per-transaction inspection.
type TransactionUseCase struct {
	reader SnapshotReader
}

// NewTransactionUseCase creates a new transaction use case.
func NewTransactionUseCase(reader SnapshotReader) *TransactionUseCase {
	return &TransactionUseCase{reader: reader}
}

// CompareTransactions diffs two transactions side by side.
func (uc *TransactionUseCase) CompareTransactions(ctx context.Context, leftID, rightID string) (*domain.Comparison, error) {
	snap, err := loadSnapshot(ctx, uc.reader, scope{})
	if err != nil {
		return nil, err
	}
	left, err := snap.TransactionByID(leftID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, leftID)
	}
	right, err := snap.TransactionByID(rightID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, rightID)
	}
	c := analysis.Compare(left, right)
	return &c, nil
}

// PriceHistory returns one vendor's chronological amounts.
func (uc *TransactionUseCase) PriceHistory(ctx context.Context, vendor string, rng domain.DateRange) (*domain.PriceHistory, error) {
	snap, err := loadSnapshot(ctx, uc.reader, scope{Range: rng})
	if err != nil {
		return nil, err
	}
	h, err := analysis.VendorPriceHistory(snap.Transactions, vendor)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// SimilarTransactions ranks transactions resembling the given one.
func (uc *TransactionUseCase) SimilarTransactions(ctx context.Context, id string, limit int) ([]domain.SimilarTransaction, error) {
	snap, err := loadSnapshot(ctx, uc.reader, scope{})
	if err != nil {
		return nil, err
	}
	ref, err := snap.TransactionByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, id)
	}
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}
	return analysis.SimilarTransactions(snap.Transactions, ref, domain.ValidateLimit(limit)), nil
}

package usecase

import (
	"context"

	"github.com/harshman7/insight-agent-idp/internal/analysis"
	"github.com/harshman7/insight-agent-idp/internal/domain"
)

// InsightsUseCase serves spend aggregates.
type InsightsUseCase struct {
	reader SnapshotReader
}

// NewInsightsUseCase creates a new insights use case.
func NewInsightsUseCase(reader SnapshotReader) *InsightsUseCase {
	return &InsightsUseCase{reader: reader}
}

// VendorStats returns the top vendors by total spend.
func (uc *InsightsUseCase) VendorStats(ctx context.Context, rng domain.DateRange, limit int) ([]domain.VendorStat, error) {
	snap, err := loadSnapshot(ctx, uc.reader, scope{Range: rng})
	if err != nil {
		return nil, err
	}
	return analysis.VendorStats(snap.Transactions, domain.ValidateLimit(limit)), nil
}

// CategoryBreakdown returns spend per category.
func (uc *InsightsUseCase) CategoryBreakdown(ctx context.Context, rng domain.DateRange) ([]domain.CategoryTotal, error) {
	snap, err := loadSnapshot(ctx, uc.reader, scope{Range: rng})
	if err != nil {
		return nil, err
	}
	return analysis.CategoryBreakdown(snap.Transactions), nil
}

// MonthlySpend returns the monthly spend series.
func (uc *InsightsUseCase) MonthlySpend(ctx context.Context, rng domain.DateRange) ([]domain.MonthlyTotal, error) {
	snap, err := loadSnapshot(ctx, uc.reader, scope{Range: rng})
	if err != nil {
		return nil, err
	}
	return analysis.MonthlyTotals(snap.Transactions, rng), nil
}

package usecase

import (
	"context"

	"github.com/harshman7/insight-agent-idp/internal/analysis"
	"github.com/harshman7/insight-agent-idp/internal/domain"
)

// ForecastRequest scopes a standalone forecast. Horizon 0 uses the default.
type ForecastRequest struct {
	Range   domain.DateRange
	Vendor  string
	Horizon int
}

// ForecastUseCase projects monthly spend.
type ForecastUseCase struct {
	reader SnapshotReader
	cfg    analysis.Config
}

// NewForecastUseCase creates a new forecast use case.
func NewForecastUseCase(reader SnapshotReader, cfg analysis.Config) *ForecastUseCase {
	return &ForecastUseCase{reader: reader, cfg: cfg}
}

// Forecast returns the projection, or an unavailable forecast when fewer
// than two months carry spend.
func (uc *ForecastUseCase) Forecast(ctx context.Context, req ForecastRequest) (*domain.Forecast, error) {
	snap, err := loadSnapshot(ctx, uc.reader, scope{Range: req.Range, Vendor: req.Vendor})
	if err != nil {
		return nil, err
	}
	opts := analysis.ForecastOptionsFrom(uc.cfg, req.Range)
	if req.Horizon != 0 {
		opts.Horizon = req.Horizon
	}
	fc, err := analysis.BuildForecast(snap.Transactions, opts)
	if err != nil {
		return nil, err
	}
	return &fc, nil
}

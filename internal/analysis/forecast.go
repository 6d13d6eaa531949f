package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/harshman7/insight-agent-idp/internal/domain"
)

// ReasonInsufficientData is reported when fewer than two months have spend.
const ReasonInsufficientData = "insufficient data"

// ForecastOptions parameterizes one projection.
type ForecastOptions struct {
	Horizon       int
	Range         domain.DateRange
	Epsilon       float64
	ClampNegative bool
}

// ForecastOptionsFrom derives options from the analysis config.
func ForecastOptionsFrom(cfg Config, rng domain.DateRange) ForecastOptions {
	return ForecastOptions{
		Horizon:       cfg.ForecastHorizon,
		Range:         rng,
		Epsilon:       cfg.TrendEpsilon,
		ClampNegative: cfg.ClampNegative,
	}
}

// spendable excludes statements, whose lines restate receipts and invoices.
func spendable(tx *domain.Transaction) bool {
	return tx.Type != domain.DocumentTypeStatement && tx.HasDate() && tx.HasAmount()
}

// MonthlyTotals sums spend per calendar month within rng, oldest first.
func MonthlyTotals(txs []domain.Transaction, rng domain.DateRange) []domain.MonthlyTotal {
	byMonth := make(map[domain.Month]*domain.MonthlyTotal)
	for i := range txs {
		tx := &txs[i]
		if !spendable(tx) || !rng.Contains(*tx.Date) {
			continue
		}
		m := domain.MonthOf(*tx.Date)
		mt, ok := byMonth[m]
		if !ok {
			mt = &domain.MonthlyTotal{Month: m}
			byMonth[m] = mt
		}
		mt.Total = mt.Total.Add(tx.Amount)
		mt.TransactionCount++
	}

	out := make([]domain.MonthlyTotal, 0, len(byMonth))
	for _, mt := range byMonth {
		out = append(out, *mt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month.Index() < out[j].Month.Index() })
	return out
}

// linearRegression fits y = slope*x + intercept by ordinary least squares.
func linearRegression(xs, ys []float64) (slope, intercept float64, err error) {
	n := float64(len(xs))
	var sumX, sumY, sumXY, sumXX float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumXX += xs[i] * xs[i]
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, 0, fmt.Errorf("%w: degenerate regression input", domain.ErrComputation)
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	if math.IsNaN(slope) || math.IsInf(slope, 0) {
		return 0, 0, fmt.Errorf("%w: non-finite slope", domain.ErrComputation)
	}
	return slope, intercept, nil
}

// BuildForecast projects monthly spend opts.Horizon months past the last
// observed month. Fewer than two distinct months yields an unavailable
// forecast rather than an error.
func BuildForecast(txs []domain.Transaction, opts ForecastOptions) (domain.Forecast, error) {
	if opts.Horizon < 1 || opts.Horizon > MaxForecastHorizon {
		return domain.Forecast{}, fmt.Errorf("%w: horizon must be between 1 and %d", domain.ErrInput, MaxForecastHorizon)
	}
	if err := opts.Range.Validate(); err != nil {
		return domain.Forecast{}, err
	}

	history := MonthlyTotals(txs, opts.Range)
	fc := domain.Forecast{Horizon: opts.Horizon, History: history}
	if len(history) < 2 {
		fc.Reason = ReasonInsufficientData
		return fc, nil
	}

	first := history[0].Month.Index()
	xs := make([]float64, len(history))
	ys := make([]float64, len(history))
	var sum float64
	for i, mt := range history {
		xs[i] = float64(mt.Month.Index() - first)
		ys[i] = mt.Total.InexactFloat64()
		sum += ys[i]
	}
	slope, intercept, err := linearRegression(xs, ys)
	if err != nil {
		return domain.Forecast{}, err
	}
	mean := sum / float64(len(ys))

	fc.Available = true
	fc.Slope = slope
	fc.Intercept = intercept
	switch {
	case slope == 0 || math.Abs(slope) < opts.Epsilon*math.Abs(mean):
		fc.Trend = domain.TrendStable
	case slope > 0:
		fc.Trend = domain.TrendIncreasing
	default:
		fc.Trend = domain.TrendDecreasing
	}

	last := history[len(history)-1].Month
	for step := 1; step <= opts.Horizon; step++ {
		m := last.Add(step)
		predicted := slope*float64(m.Index()-first) + intercept
		if opts.ClampNegative && predicted < 0 {
			predicted = 0
		}
		fc.Points = append(fc.Points, domain.ForecastPoint{
			Month:           m,
			PredictedAmount: decimal.NewFromFloat(predicted).Round(2),
		})
	}
	return fc, nil
}

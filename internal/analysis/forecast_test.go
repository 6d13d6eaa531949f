package analysis

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harshman7/insight-agent-idp/internal/domain"
)

func TestBuildForecast_SingleMonthUnavailable(t *testing.T) {
	t.Parallel()

	txs := []domain.Transaction{
		tx("a", "V", "100", "2024-01-01", domain.DocumentTypeReceipt),
		tx("b", "V", "200", "2024-01-20", domain.DocumentTypeReceipt),
	}
	fc, err := BuildForecast(txs, ForecastOptionsFrom(DefaultConfig(), domain.DateRange{}))
	require.NoError(t, err)
	assert.False(t, fc.Available)
	assert.Equal(t, ReasonInsufficientData, fc.Reason)
	assert.Empty(t, fc.Points)
	require.Len(t, fc.History, 1)
	assert.Equal(t, "300", fc.History[0].Total.String())
}

func TestBuildForecast_Projection(t *testing.T) {
	t.Parallel()

	txs := []domain.Transaction{
		tx("a", "V", "100", "2024-01-10", domain.DocumentTypeReceipt),
		tx("b", "V", "200", "2024-02-10", domain.DocumentTypeReceipt),
		tx("s", "V", "9999", "2024-02-11", domain.DocumentTypeStatement),
	}
	fc, err := BuildForecast(txs, ForecastOptionsFrom(DefaultConfig(), domain.DateRange{}))
	require.NoError(t, err)
	require.True(t, fc.Available)
	require.Len(t, fc.Points, 3)

	assert.Equal(t, domain.TrendIncreasing, fc.Trend)
	assert.InDelta(t, 100.0, fc.Slope, 1e-9)
	assert.Equal(t, "2024-03", fc.Points[0].Month.String())
	assert.Equal(t, "300", fc.Points[0].PredictedAmount.String())
	assert.Equal(t, "2024-05", fc.Points[2].Month.String())
	assert.Equal(t, "500", fc.Points[2].PredictedAmount.String())
}

func TestBuildForecast_GapsAndTrend(t *testing.T) {
	t.Parallel()

	// Months 0 and 3 with a gap; slope is measured per calendar month.
	txs := []domain.Transaction{
		tx("a", "V", "400", "2024-01-10", domain.DocumentTypeReceipt),
		tx("b", "V", "100", "2024-04-10", domain.DocumentTypeReceipt),
	}
	fc, err := BuildForecast(txs, ForecastOptionsFrom(DefaultConfig(), domain.DateRange{}))
	require.NoError(t, err)
	assert.InDelta(t, -100.0, fc.Slope, 1e-9)
	assert.Equal(t, domain.TrendDecreasing, fc.Trend)
	assert.Equal(t, "2024-05", fc.Points[0].Month.String())
	assert.Equal(t, "0", fc.Points[1].PredictedAmount.String(), "negative projections clamp to zero")

	opts := ForecastOptionsFrom(DefaultConfig(), domain.DateRange{})
	opts.ClampNegative = false
	fc, err = BuildForecast(txs, opts)
	require.NoError(t, err)
	assert.Equal(t, "-100", fc.Points[1].PredictedAmount.String())
}

func TestBuildForecast_StableWithinEpsilon(t *testing.T) {
	t.Parallel()

	txs := []domain.Transaction{
		tx("a", "V", "1000", "2024-01-10", domain.DocumentTypeReceipt),
		tx("b", "V", "1010", "2024-02-10", domain.DocumentTypeReceipt),
		tx("c", "V", "1000", "2024-03-10", domain.DocumentTypeReceipt),
	}
	fc, err := BuildForecast(txs, ForecastOptionsFrom(DefaultConfig(), domain.DateRange{}))
	require.NoError(t, err)
	assert.Equal(t, domain.TrendStable, fc.Trend)
}

func TestBuildForecast_RangeFilterAndErrors(t *testing.T) {
	t.Parallel()

	txs := []domain.Transaction{
		tx("a", "V", "100", "2023-12-10", domain.DocumentTypeReceipt),
		tx("b", "V", "100", "2024-01-10", domain.DocumentTypeReceipt),
		tx("c", "V", "200", "2024-02-10", domain.DocumentTypeReceipt),
	}
	rng := domain.DateRange{From: date("2024-01-01")}
	fc, err := BuildForecast(txs, ForecastOptionsFrom(DefaultConfig(), rng))
	require.NoError(t, err)
	assert.Len(t, fc.History, 2)

	bad := domain.DateRange{From: date("2024-02-01"), To: date("2024-01-01")}
	_, err = BuildForecast(txs, ForecastOptionsFrom(DefaultConfig(), bad))
	assert.True(t, errors.Is(err, domain.ErrInput))

	opts := ForecastOptionsFrom(DefaultConfig(), domain.DateRange{})
	opts.Horizon = 0
	_, err = BuildForecast(txs, opts)
	assert.True(t, errors.Is(err, domain.ErrInput))

	opts.Horizon = MaxForecastHorizon + 1
	_, err = BuildForecast(txs, opts)
	assert.True(t, errors.Is(err, domain.ErrInput))

	opts.Horizon = MaxForecastHorizon
	fc, err = BuildForecast(txs, opts)
	require.NoError(t, err)
	assert.Len(t, fc.Points, MaxForecastHorizon)
}

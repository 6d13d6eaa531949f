// Package analysis holds the pure detection, matching, trend and forecast
// functions that run over an immutable transaction snapshot.
package analysis

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a threshold is out of range.
var ErrInvalidConfig = errors.New("invalid analysis config")

// MaxForecastHorizon is the longest projection, in months, that is accepted.
const MaxForecastHorizon = 120

// Config carries every tunable threshold. Duplicate grouping is always exact
// and has no knob.
type Config struct {
	ZMedium         float64 `yaml:"z_medium" env:"Z_MEDIUM" envDefault:"2.0"`
	ZHigh           float64 `yaml:"z_high" env:"Z_HIGH" envDefault:"3.0"`
	MinSamples      int     `yaml:"min_samples" env:"MIN_SAMPLES" envDefault:"3"`
	StalenessYears  int     `yaml:"staleness_years" env:"STALENESS_YEARS" envDefault:"5"`
	MatchThreshold  float64 `yaml:"match_threshold" env:"MATCH_THRESHOLD" envDefault:"0.75"`
	MatchWindowDays int     `yaml:"match_window_days" env:"MATCH_WINDOW_DAYS" envDefault:"30"`
	PriceChangePct  float64 `yaml:"price_change_pct" env:"PRICE_CHANGE_PCT" envDefault:"15"`
	ForecastHorizon int     `yaml:"forecast_horizon" env:"FORECAST_HORIZON" envDefault:"3"`
	TrendEpsilon    float64 `yaml:"trend_epsilon" env:"TREND_EPSILON" envDefault:"0.05"`
	ClampNegative   bool    `yaml:"clamp_negative" env:"CLAMP_NEGATIVE" envDefault:"true"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		ZMedium:         2.0,
		ZHigh:           3.0,
		MinSamples:      3,
		StalenessYears:  5,
		MatchThreshold:  0.75,
		MatchWindowDays: 30,
		PriceChangePct:  15,
		ForecastHorizon: 3,
		TrendEpsilon:    0.05,
		ClampNegative:   true,
	}
}

// Validate checks that every threshold is usable.
func (c Config) Validate() error {
	switch {
	case c.ZMedium <= 0:
		return fmt.Errorf("%w: z_medium must be positive", ErrInvalidConfig)
	case c.ZHigh < c.ZMedium:
		return fmt.Errorf("%w: z_high must be >= z_medium", ErrInvalidConfig)
	case c.MinSamples < 2:
		return fmt.Errorf("%w: min_samples must be at least 2", ErrInvalidConfig)
	case c.StalenessYears < 1:
		return fmt.Errorf("%w: staleness_years must be at least 1", ErrInvalidConfig)
	case c.MatchThreshold < 0 || c.MatchThreshold > 1:
		return fmt.Errorf("%w: match_threshold must be within [0,1]", ErrInvalidConfig)
	case c.MatchWindowDays < 0:
		return fmt.Errorf("%w: match_window_days must not be negative", ErrInvalidConfig)
	case c.PriceChangePct < 0:
		return fmt.Errorf("%w: price_change_pct must not be negative", ErrInvalidConfig)
	case c.ForecastHorizon < 1:
		return fmt.Errorf("%w: forecast_horizon must be at least 1", ErrInvalidConfig)
	case c.ForecastHorizon > MaxForecastHorizon:
		return fmt.Errorf("%w: forecast_horizon must be at most %d", ErrInvalidConfig, MaxForecastHorizon)
	case c.TrendEpsilon < 0:
		return fmt.Errorf("%w: trend_epsilon must not be negative", ErrInvalidConfig)
	}
	return nil
}

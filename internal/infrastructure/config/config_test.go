package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harshman7/insight-agent-idp/internal/analysis"
	"github.com/harshman7/insight-agent-idp/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("REDIS_URL", "")
	t.Setenv("ANALYSIS_CONFIG_PATH", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL == "" {
		t.Fatalf("expected default database URL to be set")
	}
	if cfg.RedisURL != "" {
		t.Fatalf("expected redis to be disabled by default, got %q", cfg.RedisURL)
	}
	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}
	if cfg.Analysis != analysis.DefaultConfig() {
		t.Fatalf("expected default analysis thresholds, got %+v", cfg.Analysis)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("REPORT_CACHE_TTL", "1m")
	t.Setenv("ANALYSIS_Z_MEDIUM", "2.5")
	t.Setenv("ANALYSIS_MATCH_WINDOW_DAYS", "45")
	t.Setenv("ANALYSIS_CONFIG_PATH", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL != "postgres://example" {
		t.Fatalf("expected custom database URL, got %s", cfg.DatabaseURL)
	}
	if cfg.ReportCacheTTL != time.Minute {
		t.Fatalf("expected cache TTL override, got %s", cfg.ReportCacheTTL)
	}
	if cfg.Analysis.ZMedium != 2.5 || cfg.Analysis.MatchWindowDays != 45 {
		t.Fatalf("expected analysis overrides, got %+v", cfg.Analysis)
	}
}

func TestLoadRejectsInvalidThresholds(t *testing.T) {
	t.Setenv("ANALYSIS_CONFIG_PATH", "")
	t.Setenv("ANALYSIS_MATCH_THRESHOLD", "1.5")

	if _, err := config.Load(); !errors.Is(err, analysis.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadAnalysisFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "analysis.yaml")
	content := "price_change_pct: 20\nforecast_horizon: 6\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := config.LoadAnalysisFile(path, analysis.DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.PriceChangePct != 20 || cfg.ForecastHorizon != 6 {
		t.Fatalf("expected file overrides, got %+v", cfg)
	}
	if cfg.MatchThreshold != 0.75 {
		t.Fatalf("expected untouched keys to keep defaults, got %v", cfg.MatchThreshold)
	}

	if _, err := config.LoadAnalysisFile(filepath.Join(dir, "missing.yaml"), analysis.DefaultConfig()); err == nil {
		t.Fatal("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("z_medium: -1\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := config.LoadAnalysisFile(bad, analysis.DefaultConfig()); !errors.Is(err, analysis.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

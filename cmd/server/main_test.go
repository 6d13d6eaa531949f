package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/harshman7/insight-agent-idp/internal/adapter/http/handler"
	"github.com/harshman7/insight-agent-idp/internal/adapter/http/middleware"
	"github.com/harshman7/insight-agent-idp/internal/infrastructure/config"
	"github.com/harshman7/insight-agent-idp/internal/usecase"
)

func TestServerAddr(t *testing.T) {
	if got := serverAddr(&config.Config{HTTPPort: "9090"}); got != ":9090" {
		t.Fatalf("expected :9090, got %s", got)
	}
}

func TestNewSnapshotSourceFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	body := `{"transactions":[{"id":"t1","vendor":"Acme","amount":"10.00","date":"2024-01-02","type":"invoice"}]}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}

	reader, closeFn, err := newSnapshotSource(context.Background(), &config.Config{SnapshotPath: path}, zerolog.Nop(), nil, handler.NewHealthHandler())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer closeFn()

	snap, err := reader.ReadSnapshot(context.Background(), usecase.SnapshotFilter{})
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if len(snap.Transactions) != 1 || snap.Transactions[0].ID != "t1" {
		t.Fatalf("unexpected snapshot %+v", snap.Transactions)
	}
}

func TestNewSnapshotSourceMissingFile(t *testing.T) {
	cfg := &config.Config{SnapshotPath: filepath.Join(t.TempDir(), "missing.json")}
	if _, _, err := newSnapshotSource(context.Background(), cfg, zerolog.Nop(), nil, handler.NewHealthHandler()); err == nil {
		t.Fatalf("expected error for missing snapshot file")
	}
}

func TestStartLimiterCleanupStops(t *testing.T) {
	rl := middleware.NewRateLimiter(1, 1)
	stop := startLimiterCleanup(rl, time.Millisecond, time.Hour, zerolog.Nop())
	time.Sleep(5 * time.Millisecond)
	stop()
}

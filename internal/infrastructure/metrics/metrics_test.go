package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/harshman7/insight-agent-idp/internal/domain"
)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	if m.ReportsGenerated == nil || m.SectionDuration == nil || m.CacheLookups == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.ObserveCache(true)
	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}
}

func TestObserveReport(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveReport(&domain.Report{
		Findings: []domain.Finding{
			{Kind: domain.FindingKindDuplicate, Severity: domain.SeverityHigh},
			{Kind: domain.FindingKindDuplicate, Severity: domain.SeverityHigh},
			{Kind: domain.FindingKindMissingField, Severity: domain.SeverityMedium},
		},
		Matches:      &domain.MatchResult{Matches: []domain.Match{{ReceiptID: "r", InvoiceID: "i"}}},
		PriceChanges: []domain.PriceChange{{Vendor: "v"}},
		Errors:       []domain.SectionError{{Section: domain.SectionOutliers}},
	})

	if got := testutil.ToFloat64(m.ReportsGenerated); got != 1 {
		t.Fatalf("expected 1 report, got %v", got)
	}
	if got := testutil.ToFloat64(m.ReportsDegraded); got != 1 {
		t.Fatalf("expected 1 degraded report, got %v", got)
	}
	if got := testutil.ToFloat64(m.Findings.WithLabelValues("duplicate", "high")); got != 2 {
		t.Fatalf("expected 2 duplicate findings, got %v", got)
	}
	if got := testutil.ToFloat64(m.MatchesAccepted); got != 1 {
		t.Fatalf("expected 1 match, got %v", got)
	}
}

func TestObserveSection(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveSection(domain.SectionMatches, time.Millisecond, nil)
	m.ObserveSection(domain.SectionMatches, time.Millisecond, fmt.Errorf("%w: bad", domain.ErrInput))

	if got := testutil.ToFloat64(m.SectionFailures.WithLabelValues("matches", "input")); got != 1 {
		t.Fatalf("expected 1 input failure, got %v", got)
	}
	if got := testutil.CollectAndCount(m.SectionDuration); got != 1 {
		t.Fatalf("expected one duration series, got %d", got)
	}
}

func TestObserveCacheAndSnapshot(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveCache(true)
	m.ObserveCache(false)
	m.ObserveCache(false)
	m.ObserveSnapshotRead(time.Millisecond, fmt.Errorf("boom"))
	m.ObserveUpload(nil)

	if got := testutil.ToFloat64(m.CacheLookups.WithLabelValues("miss")); got != 2 {
		t.Fatalf("expected 2 misses, got %v", got)
	}
	if got := testutil.ToFloat64(m.DBErrors.WithLabelValues("read_snapshot")); got != 1 {
		t.Fatalf("expected 1 db error, got %v", got)
	}
	if got := testutil.ToFloat64(m.ExportsUploaded.WithLabelValues("ok")); got != 1 {
		t.Fatalf("expected 1 upload, got %v", got)
	}
}

package usecase

import (
	"context"
	"io"
	"time"

	"github.com/harshman7/insight-agent-idp/internal/domain"
)

// SnapshotFilter narrows the records a snapshot read returns.
type SnapshotFilter struct {
	Range domain.DateRange
}

// SnapshotReader provides a stable, read-only view of transactions and
// documents. No write may become visible while one snapshot is in use.
type SnapshotReader interface {
	ReadSnapshot(ctx context.Context, filter SnapshotFilter) (*domain.Snapshot, error)
}

// Cache stores serialized results. A miss returns (nil, false, nil).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Clock supplies the processing date.
type Clock interface {
	Now() time.Time
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// ReportObserver receives per-section timings and report outcomes.
type ReportObserver interface {
	ObserveSection(section domain.Section, elapsed time.Duration, err error)
	ObserveReport(report *domain.Report)
	ObserveCache(hit bool)
}

// WorkbookRenderer writes an export bundle as a spreadsheet.
type WorkbookRenderer interface {
	RenderWorkbook(w io.Writer, data *ExportData) error
}

// SummaryRenderer writes an export bundle as a markdown summary.
type SummaryRenderer interface {
	RenderSummary(w io.Writer, data *ExportData) error
}

// ExportSink stores rendered exports and returns their location.
type ExportSink interface {
	Put(ctx context.Context, name, contentType string, data []byte) (string, error)
}

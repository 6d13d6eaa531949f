package usecase

import (
	"bytes"
	"context"
	"fmt"

	"github.com/harshman7/insight-agent-idp/internal/analysis"
	"github.com/harshman7/insight-agent-idp/internal/domain"
)

// XLSXContentType is the media type of rendered workbooks.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// exportVendorLimit caps the vendor table in exports.
const exportVendorLimit = 20

// ReportGenerator produces reports for exports.
type ReportGenerator interface {
	GenerateReportFrom(ctx context.Context, req ReportRequest, snap *domain.Snapshot) (*domain.Report, error)
}

// ExportData is everything an export renders.
type ExportData struct {
	Report       *domain.Report
	Transactions []domain.Transaction
	VendorStats  []domain.VendorStat
	Categories   []domain.CategoryTotal
	Monthly      []domain.MonthlyTotal
}

// ExportResult describes one rendered export. Location is empty when no
// sink is configured.
type ExportResult struct {
	Name        string
	ContentType string
	Data        []byte
	Location    string
}

// ExportUseCase renders reports for download or archival.
type ExportUseCase struct {
	reports  ReportGenerator
	reader   SnapshotReader
	workbook WorkbookRenderer
	summary  SummaryRenderer
	sink     ExportSink
}

// NewExportUseCase creates a new export use case. sink may be nil.
func NewExportUseCase(
	reports ReportGenerator,
	reader SnapshotReader,
	workbook WorkbookRenderer,
	summary SummaryRenderer,
	sink ExportSink,
) *ExportUseCase {
	return &ExportUseCase{
		reports:  reports,
		reader:   reader,
		workbook: workbook,
		summary:  summary,
		sink:     sink,
	}
}

func (uc *ExportUseCase) collect(ctx context.Context, req ReportRequest) (*ExportData, error) {
	if _, err := req.enabled(); err != nil {
		return nil, err
	}
	snap, err := loadSnapshot(ctx, uc.reader, scope{Range: req.Range, Vendor: req.Vendor})
	if err != nil {
		return nil, err
	}
	report, err := uc.reports.GenerateReportFrom(ctx, req, snap)
	if err != nil {
		return nil, err
	}
	return &ExportData{
		Report:       report,
		Transactions: snap.Transactions,
		VendorStats:  analysis.VendorStats(snap.Transactions, exportVendorLimit),
		Categories:   analysis.CategoryBreakdown(snap.Transactions),
		Monthly:      analysis.MonthlyTotals(snap.Transactions, req.Range),
	}, nil
}

// ExportWorkbook renders the report as a spreadsheet and uploads it when a
// sink is configured.
func (uc *ExportUseCase) ExportWorkbook(ctx context.Context, req ReportRequest) (*ExportResult, error) {
	data, err := uc.collect(ctx, req)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := uc.workbook.RenderWorkbook(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	res := &ExportResult{
		Name:        fmt.Sprintf("insights-%s.xlsx", data.Report.ID),
		ContentType: XLSXContentType,
		Data:        buf.Bytes(),
	}
	if uc.sink != nil {
		loc, err := uc.sink.Put(ctx, res.Name, res.ContentType, res.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to store export: %w", err)
		}
		res.Location = loc
	}
	return res, nil
}

// SummaryMarkdown renders a short markdown digest of the report.
func (uc *ExportUseCase) SummaryMarkdown(ctx context.Context, req ReportRequest) (string, error) {
	data, err := uc.collect(ctx, req)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := uc.summary.RenderSummary(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render summary: %w", err)
	}
	return buf.String(), nil
}

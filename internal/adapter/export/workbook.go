package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/harshman7/insight-agent-idp/internal/domain"
	"github.com/harshman7/insight-agent-idp/internal/usecase"
)

// Sheet names in workbook order.
const (
	SheetSummary      = "Summary"
	SheetTransactions = "Transactions"
	SheetFindings     = "Findings"
	SheetMatches      = "Matches"
	SheetPriceChanges = "Price Changes"
	SheetForecast     = "Forecast"
	SheetVendors      = "Vendors"
	SheetCategories   = "Categories"
)

// builtin excelize number format "#,##0.00"
const amountNumFmt = 4

// WorkbookRenderer renders export data as an xlsx workbook.
type WorkbookRenderer struct{}

// NewWorkbookRenderer creates a new WorkbookRenderer.
func NewWorkbookRenderer() *WorkbookRenderer {
	return &WorkbookRenderer{}
}

type sheetWriter struct {
	f      *excelize.File
	header int
	amount int
}

// RenderWorkbook implements usecase.WorkbookRenderer.
func (r *WorkbookRenderer) RenderWorkbook(w io.Writer, data *usecase.ExportData) error {
	if data == nil || data.Report == nil {
		return fmt.Errorf("%w: nothing to export", domain.ErrInput)
	}

	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		return err
	}
	amount, err := f.NewStyle(&excelize.Style{NumFmt: amountNumFmt})
	if err != nil {
		return err
	}
	sw := &sheetWriter{f: f, header: header, amount: amount}

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return err
	}

	steps := []func(*usecase.ExportData) error{
		sw.summary,
		sw.transactions,
		sw.findings,
		sw.matches,
		sw.priceChanges,
		sw.forecast,
		sw.vendors,
		sw.categories,
	}
	for _, step := range steps {
		if err := step(data); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	_, err = f.WriteTo(w)
	return err
}

// table writes a header row followed by rows. Columns listed in amountCols
// get the amount number format.
func (sw *sheetWriter) table(sheet string, headers []string, rows [][]interface{}, amountCols ...int) error {
	if sheet != SheetSummary {
		if _, err := sw.f.NewSheet(sheet); err != nil {
			return err
		}
	}

	hdr := make([]interface{}, len(headers))
	for i, h := range headers {
		hdr[i] = h
	}
	if err := sw.f.SetSheetRow(sheet, "A1", &hdr); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := sw.f.SetCellStyle(sheet, "A1", last, sw.header); err != nil {
		return err
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	if len(rows) > 0 {
		for _, col := range amountCols {
			top, _ := excelize.CoordinatesToCellName(col, 2)
			bottom, _ := excelize.CoordinatesToCellName(col, len(rows)+1)
			if err := sw.f.SetCellStyle(sheet, top, bottom, sw.amount); err != nil {
				return err
			}
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	if err := sw.f.SetColWidth(sheet, "A", lastCol, 18); err != nil {
		return err
	}
	return sw.f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func (sw *sheetWriter) summary(data *usecase.ExportData) error {
	rep := data.Report
	counts := rep.CountBySeverity()
	rows := [][]interface{}{
		{"Report ID", rep.ID},
		{"Generated at", rep.GeneratedAt.UTC().Format("2006-01-02 15:04:05")},
		{"As of", rep.AsOf},
		{"Transactions", rep.TransactionCount},
		{"High findings", counts[domain.SeverityHigh]},
		{"Medium findings", counts[domain.SeverityMedium]},
		{"Low findings", counts[domain.SeverityLow]},
	}
	if rep.Matches != nil {
		rows = append(rows,
			[]interface{}{"Matches", len(rep.Matches.Matches)},
			[]interface{}{"Unmatched receipts", len(rep.Matches.UnmatchedReceipts)},
		)
	}
	for _, e := range rep.Errors {
		rows = append(rows, []interface{}{"Degraded: " + string(e.Section), fmt.Sprintf("%s: %s", e.Kind, e.Message)})
	}
	return sw.table(SheetSummary, []string{"Metric", "Value"}, rows)
}

func (sw *sheetWriter) transactions(data *usecase.ExportData) error {
	rows := make([][]interface{}, 0, len(data.Transactions))
	for _, tx := range data.Transactions {
		var date, category, invoice string
		if tx.Date != nil {
			date = tx.Date.String()
		}
		if tx.Category != nil {
			category = string(*tx.Category)
		}
		if tx.InvoiceNumber != nil {
			invoice = *tx.InvoiceNumber
		}
		var amount interface{}
		if tx.HasAmount() {
			amount = tx.Amount.InexactFloat64()
		}
		rows = append(rows, []interface{}{tx.ID, string(tx.Type), tx.Vendor, amount, date, category, invoice, tx.DocumentID})
	}
	return sw.table(SheetTransactions,
		[]string{"ID", "Type", "Vendor", "Amount", "Date", "Category", "Invoice Number", "Document"},
		rows, 4)
}

func (sw *sheetWriter) findings(data *usecase.ExportData) error {
	rows := make([][]interface{}, 0, len(data.Report.Findings))
	for _, f := range data.Report.Findings {
		rows = append(rows, []interface{}{
			string(f.Severity), string(f.Kind), string(f.Section),
			strings.Join(f.TransactionIDs, ", "), f.Score, f.Detail,
		})
	}
	return sw.table(SheetFindings,
		[]string{"Severity", "Kind", "Section", "Transactions", "Score", "Detail"}, rows)
}

func (sw *sheetWriter) matches(data *usecase.ExportData) error {
	var rows [][]interface{}
	if m := data.Report.Matches; m != nil {
		for _, match := range m.Matches {
			rows = append(rows, []interface{}{
				match.ReceiptID, match.InvoiceID, match.Confidence,
				match.Breakdown.VendorSimilarity,
				match.Breakdown.AmountDelta.InexactFloat64(),
				match.Breakdown.DateDeltaDays,
			})
		}
		for _, id := range m.UnmatchedReceipts {
			rows = append(rows, []interface{}{id, "", nil, nil, nil, nil})
		}
	}
	return sw.table(SheetMatches,
		[]string{"Receipt", "Invoice", "Confidence", "Vendor Similarity", "Amount Delta", "Date Delta (days)"},
		rows, 5)
}

func (sw *sheetWriter) priceChanges(data *usecase.ExportData) error {
	rows := make([][]interface{}, 0, len(data.Report.PriceChanges))
	for _, c := range data.Report.PriceChanges {
		rows = append(rows, []interface{}{
			c.Vendor, c.Date.String(),
			c.PreviousAmount.InexactFloat64(), c.NewAmount.InexactFloat64(),
			c.PercentChange, string(c.Direction),
			c.PreviousTransactionID, c.TransactionID,
		})
	}
	return sw.table(SheetPriceChanges,
		[]string{"Vendor", "Date", "Previous", "New", "Change %", "Direction", "Previous Transaction", "Transaction"},
		rows, 3, 4)
}

func (sw *sheetWriter) forecast(data *usecase.ExportData) error {
	var rows [][]interface{}
	for _, m := range data.Monthly {
		rows = append(rows, []interface{}{m.Month.String(), "actual", m.Total.InexactFloat64(), m.TransactionCount})
	}
	fc := data.Report.Forecast
	if fc != nil && fc.Available {
		for _, p := range fc.Points {
			rows = append(rows, []interface{}{p.Month.String(), "forecast", p.PredictedAmount.InexactFloat64(), nil})
		}
	}
	if err := sw.table(SheetForecast, []string{"Month", "Kind", "Amount", "Transactions"}, rows, 3); err != nil {
		return err
	}

	// trend summary to the right of the table
	if fc == nil {
		return nil
	}
	status := string(fc.Trend)
	if !fc.Available {
		status = "unavailable: " + fc.Reason
	}
	return sw.f.SetSheetRow(SheetForecast, "F1", &[]interface{}{"Trend", status})
}

func (sw *sheetWriter) vendors(data *usecase.ExportData) error {
	rows := make([][]interface{}, 0, len(data.VendorStats))
	for _, v := range data.VendorStats {
		rows = append(rows, []interface{}{v.Vendor, v.Total.InexactFloat64(), v.TransactionCount, v.Average.InexactFloat64()})
	}
	return sw.table(SheetVendors, []string{"Vendor", "Total", "Transactions", "Average"}, rows, 2, 4)
}

func (sw *sheetWriter) categories(data *usecase.ExportData) error {
	rows := make([][]interface{}, 0, len(data.Categories))
	for _, c := range data.Categories {
		rows = append(rows, []interface{}{c.Category, c.Total.InexactFloat64(), c.TransactionCount})
	}
	return sw.table(SheetCategories, []string{"Category", "Total", "Transactions"}, rows, 2)
}

func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

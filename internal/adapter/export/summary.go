package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/harshman7/insight-agent-idp/internal/domain"
	"github.com/harshman7/insight-agent-idp/internal/usecase"
)

const summaryListLimit = 10

// SummaryRenderer renders export data as a markdown digest.
type SummaryRenderer struct {
	limit int
}

// NewSummaryRenderer creates a new SummaryRenderer.
func NewSummaryRenderer() *SummaryRenderer {
	return &SummaryRenderer{limit: summaryListLimit}
}

// RenderSummary implements usecase.SummaryRenderer.
func (r *SummaryRenderer) RenderSummary(w io.Writer, data *usecase.ExportData) error {
	if data == nil || data.Report == nil {
		return fmt.Errorf("%w: nothing to summarize", domain.ErrInput)
	}
	rep := data.Report

	var b strings.Builder
	fmt.Fprintf(&b, "# Insights report %s\n\n", rep.ID)
	fmt.Fprintf(&b, "Generated %s, as of %s. %d transactions analysed.\n",
		rep.GeneratedAt.UTC().Format("2006-01-02 15:04 MST"), rep.AsOf, rep.TransactionCount)

	if rep.Degraded() {
		b.WriteString("\n## Degraded sections\n\n")
		for _, e := range rep.Errors {
			fmt.Fprintf(&b, "- %s (%s): %s\n", e.Section, e.Kind, e.Message)
		}
	}

	r.writeFindings(&b, rep)
	r.writeMatches(&b, rep.Matches)
	r.writePriceChanges(&b, rep.PriceChanges)
	writeForecast(&b, rep.Forecast)
	r.writeVendors(&b, data.VendorStats)
	r.writeCategories(&b, data.Categories)

	_, err := io.WriteString(w, b.String())
	return err
}

func (r *SummaryRenderer) writeFindings(b *strings.Builder, rep *domain.Report) {
	counts := rep.CountBySeverity()
	b.WriteString("\n## Findings\n\n")
	b.WriteString("| Severity | Count |\n|---|---|\n")
	for _, s := range []domain.Severity{domain.SeverityHigh, domain.SeverityMedium, domain.SeverityLow} {
		fmt.Fprintf(b, "| %s | %d |\n", s, counts[s])
	}
	if len(rep.Findings) == 0 {
		return
	}

	b.WriteString("\n")
	for i, f := range rep.Findings {
		if i == r.limit {
			fmt.Fprintf(b, "- ... and %d more\n", len(rep.Findings)-r.limit)
			break
		}
		fmt.Fprintf(b, "- **%s** %s: %s (%s)\n", f.Severity, f.Kind, f.Detail, strings.Join(f.TransactionIDs, ", "))
	}
}

func (r *SummaryRenderer) writeMatches(b *strings.Builder, m *domain.MatchResult) {
	if m == nil {
		return
	}
	b.WriteString("\n## Receipt matching\n\n")
	fmt.Fprintf(b, "%d matched, %d unmatched receipts, %d unmatched invoices.\n",
		len(m.Matches), len(m.UnmatchedReceipts), len(m.UnmatchedInvoices))
	for i, id := range m.UnmatchedReceipts {
		if i == r.limit {
			break
		}
		fmt.Fprintf(b, "- unmatched receipt %s\n", id)
	}
}

func (r *SummaryRenderer) writePriceChanges(b *strings.Builder, changes []domain.PriceChange) {
	if len(changes) == 0 {
		return
	}
	b.WriteString("\n## Price changes\n\n")
	for i, c := range changes {
		if i == r.limit {
			fmt.Fprintf(b, "- ... and %d more\n", len(changes)-r.limit)
			break
		}
		fmt.Fprintf(b, "- %s on %s: %s to %s (%+.1f%%)\n",
			c.Vendor, c.Date, formatAmount(c.PreviousAmount), formatAmount(c.NewAmount), c.PercentChange)
	}
}

func writeForecast(b *strings.Builder, fc *domain.Forecast) {
	if fc == nil {
		return
	}
	b.WriteString("\n## Forecast\n\n")
	if !fc.Available {
		fmt.Fprintf(b, "Unavailable: %s.\n", fc.Reason)
		return
	}
	fmt.Fprintf(b, "Trend: %s.\n\n", fc.Trend)
	for _, p := range fc.Points {
		fmt.Fprintf(b, "- %s: %s\n", p.Month, formatAmount(p.PredictedAmount))
	}
}

func (r *SummaryRenderer) writeVendors(b *strings.Builder, stats []domain.VendorStat) {
	if len(stats) == 0 {
		return
	}
	b.WriteString("\n## Top vendors\n\n")
	b.WriteString("| Vendor | Total | Transactions |\n|---|---|---|\n")
	for i, v := range stats {
		if i == r.limit {
			break
		}
		fmt.Fprintf(b, "| %s | %s | %d |\n", strings.ReplaceAll(v.Vendor, "|", "/"), formatAmount(v.Total), v.TransactionCount)
	}
}

func (r *SummaryRenderer) writeCategories(b *strings.Builder, totals []domain.CategoryTotal) {
	if len(totals) == 0 {
		return
	}
	b.WriteString("\n## Categories\n\n")
	b.WriteString("| Category | Total | Transactions |\n|---|---|---|\n")
	for i, c := range totals {
		if i == r.limit {
			break
		}
		fmt.Fprintf(b, "| %s | %s | %d |\n", c.Category, formatAmount(c.Total), c.TransactionCount)
	}
}

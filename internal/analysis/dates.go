package analysis

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"github.com/harshman7/insight-agent-idp/internal/domain"
)

// StalenessCutoff returns the earliest date that is not considered stale.
func StalenessCutoff(asOf civil.Date, years int) civil.Date {
	return civil.DateOf(asOf.In(time.UTC).AddDate(-years, 0, 0))
}

// DetectDateAnomalies flags future-dated transactions (High) and those older
// than the staleness threshold (Low). Missing dates are left to the
// completeness check.
func DetectDateAnomalies(txs []domain.Transaction, asOf civil.Date, cfg Config) []domain.Finding {
	cutoff := StalenessCutoff(asOf, cfg.StalenessYears)

	var findings []domain.Finding
	for i := range txs {
		tx := &txs[i]
		if !tx.HasDate() {
			continue
		}
		d := *tx.Date
		switch {
		case d.After(asOf):
			days := d.DaysSince(asOf)
			findings = append(findings, domain.Finding{
				TransactionIDs: []string{tx.ID},
				Kind:           domain.FindingKindDateAnomaly,
				Severity:       domain.SeverityHigh,
				Detail:         fmt.Sprintf("date %s is %d day(s) after processing date %s", d, days, asOf),
				Score:          float64(days),
				Section:        domain.SectionDates,
			})
		case d.Before(cutoff):
			days := asOf.DaysSince(d)
			findings = append(findings, domain.Finding{
				TransactionIDs: []string{tx.ID},
				Kind:           domain.FindingKindDateAnomaly,
				Severity:       domain.SeverityLow,
				Detail:         fmt.Sprintf("date %s is older than %d years", d, cfg.StalenessYears),
				Score:          float64(days),
				Section:        domain.SectionDates,
			})
		}
	}
	return findings
}

package analysis

import (
	"fmt"
	"sort"

	"github.com/harshman7/insight-agent-idp/internal/domain"
)

type duplicateKey struct {
	vendor string
	amount string
	date   string
}

// DetectDuplicates flags every transaction that repeats an earlier one with the
// same normalized vendor, amount and date. The lowest id in a group is the
// original; each other member yields one finding referencing [dup, original].
func DetectDuplicates(txs []domain.Transaction) []domain.Finding {
	groups := make(map[duplicateKey][]*domain.Transaction)
	for i := range txs {
		tx := &txs[i]
		if !tx.HasDate() || !tx.HasAmount() {
			continue
		}
		key := duplicateKey{
			vendor: NormalizeVendor(tx.Vendor),
			// String trims trailing zeros, so equal amounts share a key.
			amount: tx.Amount.String(),
			date:   tx.Date.String(),
		}
		groups[key] = append(groups[key], tx)
	}

	keys := make([]duplicateKey, 0, len(groups))
	for k, members := range groups {
		if len(members) > 1 {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.vendor != b.vendor {
			return a.vendor < b.vendor
		}
		if a.date != b.date {
			return a.date < b.date
		}
		return a.amount < b.amount
	})

	var findings []domain.Finding
	for _, k := range keys {
		members := groups[k]
		sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
		original := members[0]
		for _, dup := range members[1:] {
			findings = append(findings, domain.Finding{
				TransactionIDs: []string{dup.ID, original.ID},
				Kind:           domain.FindingKindDuplicate,
				Severity:       domain.SeverityHigh,
				Detail: fmt.Sprintf("transaction %s duplicates %s (vendor %q, amount %s, date %s)",
					dup.ID, original.ID, dup.Vendor, dup.Amount.StringFixed(2), k.date),
				Score:   float64(len(members)),
				Section: domain.SectionDuplicates,
			})
		}
	}
	return findings
}

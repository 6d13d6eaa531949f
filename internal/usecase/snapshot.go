package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/harshman7/insight-agent-idp/internal/analysis"
	"github.com/harshman7/insight-agent-idp/internal/domain"
)

// scope is the validated input every read-side use case starts from.
type scope struct {
	Range  domain.DateRange
	Vendor string
}

// loadSnapshot reads a snapshot and narrows it to the scope. The vendor
// filter is a case-insensitive substring match on the normalized name.
// Undated transactions are kept only when no range is set.
func loadSnapshot(ctx context.Context, reader SnapshotReader, sc scope) (*domain.Snapshot, error) {
	if err := sc.Range.Validate(); err != nil {
		return nil, err
	}
	snap, err := reader.ReadSnapshot(ctx, SnapshotFilter{Range: sc.Range})
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	vendor := analysis.NormalizeVendor(sc.Vendor)
	if sc.Range.IsZero() && vendor == "" {
		return snap, nil
	}

	filtered := make([]domain.Transaction, 0, len(snap.Transactions))
	for _, tx := range snap.Transactions {
		if !sc.Range.IsZero() && (!tx.HasDate() || !sc.Range.Contains(*tx.Date)) {
			continue
		}
		if vendor != "" && !strings.Contains(analysis.NormalizeVendor(tx.Vendor), vendor) {
			continue
		}
		filtered = append(filtered, tx)
	}
	return &domain.Snapshot{
		Transactions: filtered,
		Documents:    snap.Documents,
		TakenAt:      snap.TakenAt,
	}, nil
}

// fingerprint hashes every analysed field so that equal snapshots share a
// cache entry regardless of read order. Fields and records are length
// prefixed, so no vendor or filename content can shift a field boundary.
func fingerprint(snap *domain.Snapshot) string {
	lines := make([]string, 0, len(snap.Transactions))
	for _, tx := range snap.Transactions {
		var date, inv, cat string
		if tx.Date != nil {
			date = tx.Date.String()
		}
		if tx.InvoiceNumber != nil {
			inv = *tx.InvoiceNumber
		}
		if tx.Category != nil {
			cat = string(*tx.Category)
		}
		lines = append(lines, fingerprintRecord(
			tx.ID, tx.DocumentID, tx.Vendor, tx.Amount.String(), strconv.FormatBool(tx.AmountMissing),
			date, string(tx.Type), inv, cat))
	}
	docs := make([]string, 0, len(snap.Documents))
	for _, d := range snap.Documents {
		docs = append(docs, fingerprintRecord(d.ID, string(d.Type), d.Filename))
	}
	sort.Strings(lines)
	sort.Strings(docs)

	h := sha256.New()
	fmt.Fprintf(h, "t%d\n", len(lines))
	for _, l := range lines {
		fmt.Fprintf(h, "%d:%s", len(l), l)
	}
	fmt.Fprintf(h, "d%d\n", len(docs))
	for _, d := range docs {
		fmt.Fprintf(h, "%d:%s", len(d), d)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func fingerprintRecord(fields ...string) string {
	var b strings.Builder
	for _, f := range fields {
		b.WriteString(strconv.Itoa(len(f)))
		b.WriteByte(':')
		b.WriteString(f)
	}
	return b.String()
}

package analysis

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/harshman7/insight-agent-idp/internal/domain"
)

// Score weights for receipt-invoice pairs.
const (
	weightVendor = 0.5
	weightAmount = 0.3
	weightDate   = 0.2
)

type candidate struct {
	receipt *domain.Transaction
	invoice *domain.Transaction
	match   domain.Match
	absDiff decimal.Decimal
}

func matchable(tx *domain.Transaction, t domain.DocumentType) bool {
	return tx.Type == t && tx.HasDate() && tx.HasAmount()
}

// scorePair returns the weighted pair score and whether the pair falls inside
// the date window.
func scorePair(receipt, invoice *domain.Transaction, cfg Config) (candidate, bool) {
	days := daysBetween(*receipt.Date, *invoice.Date)
	if days > cfg.MatchWindowDays {
		return candidate{}, false
	}

	sim := StringSimilarity(receipt.Vendor, invoice.Vendor)

	diff := receipt.Amount.Sub(invoice.Amount).Abs()
	amountTerm := 1.0
	if largest := decimal.Max(receipt.Amount, invoice.Amount); largest.IsPositive() {
		amountTerm = clamp01(1 - diff.Div(largest).InexactFloat64())
	}

	dateTerm := 1.0
	if cfg.MatchWindowDays > 0 {
		dateTerm = clamp01(1 - float64(days)/float64(cfg.MatchWindowDays))
	}

	score := clamp01(weightVendor*sim + weightAmount*amountTerm + weightDate*dateTerm)
	return candidate{
		receipt: receipt,
		invoice: invoice,
		absDiff: diff,
		match: domain.Match{
			ReceiptID:  receipt.ID,
			InvoiceID:  invoice.ID,
			Confidence: score,
			Breakdown: domain.MatchBreakdown{
				VendorSimilarity: sim,
				AmountDelta:      invoice.Amount.Sub(receipt.Amount),
				DateDeltaDays:    days,
			},
		},
	}, true
}

// rankCandidates orders by score, then smaller amount delta, smaller date
// delta, receipt id and invoice id.
func rankCandidates(cands []candidate) {
	sort.Slice(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.match.Confidence != b.match.Confidence {
			return a.match.Confidence > b.match.Confidence
		}
		if c := a.absDiff.Cmp(b.absDiff); c != 0 {
			return c < 0
		}
		if a.match.Breakdown.DateDeltaDays != b.match.Breakdown.DateDeltaDays {
			return a.match.Breakdown.DateDeltaDays < b.match.Breakdown.DateDeltaDays
		}
		if a.match.ReceiptID != b.match.ReceiptID {
			return a.match.ReceiptID < b.match.ReceiptID
		}
		return a.match.InvoiceID < b.match.InvoiceID
	})
}

func partition(txs []domain.Transaction) (receipts, invoices []*domain.Transaction, err error) {
	for i := range txs {
		tx := &txs[i]
		if tx.Type != domain.DocumentTypeReceipt && tx.Type != domain.DocumentTypeInvoice {
			continue
		}
		if err := checkAmount(tx); err != nil {
			return nil, nil, err
		}
		switch {
		case matchable(tx, domain.DocumentTypeReceipt):
			receipts = append(receipts, tx)
		case matchable(tx, domain.DocumentTypeInvoice):
			invoices = append(invoices, tx)
		}
	}
	return receipts, invoices, nil
}

// MatchReceipts links receipts to invoices one-to-one using greedy
// maximum-score selection over every in-window pair.
func MatchReceipts(txs []domain.Transaction, cfg Config) (domain.MatchResult, error) {
	receipts, invoices, err := partition(txs)
	if err != nil {
		return domain.MatchResult{}, err
	}

	var cands []candidate
	for _, r := range receipts {
		for _, inv := range invoices {
			if c, ok := scorePair(r, inv, cfg); ok {
				cands = append(cands, c)
			}
		}
	}
	rankCandidates(cands)

	result := domain.MatchResult{CandidatePairs: len(cands)}
	usedReceipts := make(map[string]struct{})
	usedInvoices := make(map[string]struct{})
	for _, c := range cands {
		if c.match.Confidence < cfg.MatchThreshold {
			break
		}
		if _, ok := usedReceipts[c.receipt.ID]; ok {
			continue
		}
		if _, ok := usedInvoices[c.invoice.ID]; ok {
			continue
		}
		usedReceipts[c.receipt.ID] = struct{}{}
		usedInvoices[c.invoice.ID] = struct{}{}
		result.Matches = append(result.Matches, c.match)
	}

	result.UnmatchedReceipts = unmatched(txs, domain.DocumentTypeReceipt, usedReceipts)
	result.UnmatchedInvoices = unmatched(txs, domain.DocumentTypeInvoice, usedInvoices)
	return result, nil
}

func unmatched(txs []domain.Transaction, t domain.DocumentType, used map[string]struct{}) []string {
	var out []string
	for i := range txs {
		if txs[i].Type != t {
			continue
		}
		if _, ok := used[txs[i].ID]; !ok {
			out = append(out, txs[i].ID)
		}
	}
	sort.Strings(out)
	return out
}

// CandidatesForReceipt ranks every invoice scoring at or above the threshold
// for one receipt, without enforcing one-to-one assignment.
func CandidatesForReceipt(txs []domain.Transaction, receiptID string, cfg Config) ([]domain.Match, error) {
	var receipt *domain.Transaction
	for i := range txs {
		if txs[i].ID == receiptID {
			receipt = &txs[i]
			break
		}
	}
	if receipt == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrTransactionNotFound, receiptID)
	}
	if receipt.Type != domain.DocumentTypeReceipt {
		return nil, fmt.Errorf("%w: transaction %s is a %s, not a receipt", domain.ErrInput, receiptID, receipt.Type)
	}
	if !receipt.HasDate() || !receipt.HasAmount() {
		return nil, nil
	}

	_, invoices, err := partition(txs)
	if err != nil {
		return nil, err
	}

	var cands []candidate
	for _, inv := range invoices {
		if c, ok := scorePair(receipt, inv, cfg); ok && c.match.Confidence >= cfg.MatchThreshold {
			cands = append(cands, c)
		}
	}
	rankCandidates(cands)

	out := make([]domain.Match, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.match)
	}
	return out, nil
}

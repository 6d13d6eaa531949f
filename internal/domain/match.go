package domain

import "github.com/shopspring/decimal"

// MatchBreakdown records how each field contributed to a match score.
type MatchBreakdown struct {
	VendorSimilarity float64
	AmountDelta      decimal.Decimal
	DateDeltaDays    int
}

// Match links a receipt to the invoice it settles.
type Match struct {
	ReceiptID  string
	InvoiceID  string
	Confidence float64
	Breakdown  MatchBreakdown
}

// MatchResult is the outcome of one receipt-invoice matching run.
type MatchResult struct {
	Matches           []Match
	UnmatchedReceipts []string
	UnmatchedInvoices []string
	CandidatePairs    int
}

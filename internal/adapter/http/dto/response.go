package dto

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/harshman7/insight-agent-idp/internal/domain"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// FindingResponse represents a finding in API responses.
type FindingResponse struct {
	TransactionIDs []string `json:"transaction_ids"`
	Kind           string   `json:"kind"`
	Severity       string   `json:"severity"`
	Detail         string   `json:"detail"`
	Score          float64  `json:"score"`
	Section        string   `json:"section"`
}

// MatchResponse represents an accepted receipt-invoice match.
type MatchResponse struct {
	ReceiptID        string          `json:"receipt_id"`
	InvoiceID        string          `json:"invoice_id"`
	Confidence       float64         `json:"confidence"`
	VendorSimilarity float64         `json:"vendor_similarity"`
	AmountDelta      decimal.Decimal `json:"amount_delta"`
	DateDeltaDays    int             `json:"date_delta_days"`
}

// MatchResultResponse represents a matching run.
type MatchResultResponse struct {
	Matches           []MatchResponse `json:"matches"`
	UnmatchedReceipts []string        `json:"unmatched_receipts"`
	UnmatchedInvoices []string        `json:"unmatched_invoices"`
	CandidatePairs    int             `json:"candidate_pairs"`
}

// PriceChangeResponse represents a flagged price movement.
type PriceChangeResponse struct {
	Vendor                string          `json:"vendor"`
	PreviousTransactionID string          `json:"previous_transaction_id"`
	TransactionID         string          `json:"transaction_id"`
	PreviousAmount        decimal.Decimal `json:"previous_amount"`
	NewAmount             decimal.Decimal `json:"new_amount"`
	Date                  civil.Date      `json:"date"`
	PercentChange         float64         `json:"percent_change"`
	Direction             string          `json:"direction"`
}

// MonthlyTotalResponse represents one month of spend.
type MonthlyTotalResponse struct {
	Month            string          `json:"month"`
	Total            decimal.Decimal `json:"total"`
	TransactionCount int             `json:"transaction_count"`
}

// ForecastPointResponse represents one projected month.
type ForecastPointResponse struct {
	Month           string          `json:"month"`
	PredictedAmount decimal.Decimal `json:"predicted_amount"`
}

// ForecastResponse represents a spend forecast.
type ForecastResponse struct {
	Available bool                    `json:"available"`
	Reason    string                  `json:"reason,omitempty"`
	Horizon   int                     `json:"horizon"`
	Trend     string                  `json:"trend,omitempty"`
	Slope     float64                 `json:"slope"`
	Intercept float64                 `json:"intercept"`
	History   []MonthlyTotalResponse  `json:"history"`
	Points    []ForecastPointResponse `json:"points"`
}

// SectionErrorResponse represents a degraded report section.
type SectionErrorResponse struct {
	Section string `json:"section"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ReportResponse represents a generated report.
type ReportResponse struct {
	ID               string                 `json:"id"`
	GeneratedAt      time.Time              `json:"generated_at"`
	AsOf             string                 `json:"as_of"`
	TransactionCount int                    `json:"transaction_count"`
	Sections         []string               `json:"sections"`
	Degraded         bool                   `json:"degraded"`
	SeverityCounts   map[string]int         `json:"severity_counts"`
	Findings         []FindingResponse      `json:"findings"`
	Matches          *MatchResultResponse   `json:"matches,omitempty"`
	PriceChanges     []PriceChangeResponse  `json:"price_changes"`
	Forecast         *ForecastResponse      `json:"forecast,omitempty"`
	SkippedVendors   []string               `json:"skipped_vendors"`
	Errors           []SectionErrorResponse `json:"errors"`
}

// FindingFromDomain converts a domain finding to response.
func FindingFromDomain(f domain.Finding) FindingResponse {
	return FindingResponse{
		TransactionIDs: f.TransactionIDs,
		Kind:           string(f.Kind),
		Severity:       string(f.Severity),
		Detail:         f.Detail,
		Score:          f.Score,
		Section:        string(f.Section),
	}
}

// MatchFromDomain converts a domain match to response.
func MatchFromDomain(m domain.Match) MatchResponse {
	return MatchResponse{
		ReceiptID:        m.ReceiptID,
		InvoiceID:        m.InvoiceID,
		Confidence:       m.Confidence,
		VendorSimilarity: m.Breakdown.VendorSimilarity,
		AmountDelta:      m.Breakdown.AmountDelta,
		DateDeltaDays:    m.Breakdown.DateDeltaDays,
	}
}

// MatchesFromDomain converts domain matches to responses.
func MatchesFromDomain(matches []domain.Match) []MatchResponse {
	out := make([]MatchResponse, len(matches))
	for i, m := range matches {
		out[i] = MatchFromDomain(m)
	}
	return out
}

// MatchResultFromDomain converts a matching run to response.
func MatchResultFromDomain(r *domain.MatchResult) *MatchResultResponse {
	if r == nil {
		return nil
	}
	return &MatchResultResponse{
		Matches:           MatchesFromDomain(r.Matches),
		UnmatchedReceipts: nonNil(r.UnmatchedReceipts),
		UnmatchedInvoices: nonNil(r.UnmatchedInvoices),
		CandidatePairs:    r.CandidatePairs,
	}
}

// PriceChangesFromDomain converts price changes to responses.
func PriceChangesFromDomain(changes []domain.PriceChange) []PriceChangeResponse {
	out := make([]PriceChangeResponse, len(changes))
	for i, c := range changes {
		out[i] = PriceChangeResponse{
			Vendor:                c.Vendor,
			PreviousTransactionID: c.PreviousTransactionID,
			TransactionID:         c.TransactionID,
			PreviousAmount:        c.PreviousAmount,
			NewAmount:             c.NewAmount,
			Date:                  c.Date,
			PercentChange:         c.PercentChange,
			Direction:             string(c.Direction),
		}
	}
	return out
}

// MonthlyTotalsFromDomain converts monthly totals to responses.
func MonthlyTotalsFromDomain(totals []domain.MonthlyTotal) []MonthlyTotalResponse {
	out := make([]MonthlyTotalResponse, len(totals))
	for i, m := range totals {
		out[i] = MonthlyTotalResponse{
			Month:            m.Month.String(),
			Total:            m.Total,
			TransactionCount: m.TransactionCount,
		}
	}
	return out
}

// ForecastFromDomain converts a forecast to response.
func ForecastFromDomain(f *domain.Forecast) *ForecastResponse {
	if f == nil {
		return nil
	}
	points := make([]ForecastPointResponse, len(f.Points))
	for i, p := range f.Points {
		points[i] = ForecastPointResponse{Month: p.Month.String(), PredictedAmount: p.PredictedAmount}
	}
	return &ForecastResponse{
		Available: f.Available,
		Reason:    f.Reason,
		Horizon:   f.Horizon,
		Trend:     string(f.Trend),
		Slope:     f.Slope,
		Intercept: f.Intercept,
		History:   MonthlyTotalsFromDomain(f.History),
		Points:    points,
	}
}

// ReportFromDomain converts a report to response.
func ReportFromDomain(r *domain.Report) *ReportResponse {
	findings := make([]FindingResponse, len(r.Findings))
	for i, f := range r.Findings {
		findings[i] = FindingFromDomain(f)
	}
	sections := make([]string, len(r.Sections))
	for i, s := range r.Sections {
		sections[i] = string(s)
	}
	errs := make([]SectionErrorResponse, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = SectionErrorResponse{Section: string(e.Section), Kind: string(e.Kind), Message: e.Message}
	}
	counts := make(map[string]int)
	for sev, n := range r.CountBySeverity() {
		counts[string(sev)] = n
	}

	return &ReportResponse{
		ID:               r.ID,
		GeneratedAt:      r.GeneratedAt,
		AsOf:             r.AsOf,
		TransactionCount: r.TransactionCount,
		Sections:         sections,
		Degraded:         r.Degraded(),
		SeverityCounts:   counts,
		Findings:         findings,
		Matches:          MatchResultFromDomain(r.Matches),
		PriceChanges:     PriceChangesFromDomain(r.PriceChanges),
		Forecast:         ForecastFromDomain(r.Forecast),
		SkippedVendors:   nonNil(r.SkippedVendors),
		Errors:           errs,
	}
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID            string           `json:"id"`
	DocumentID    string           `json:"document_id,omitempty"`
	Vendor        string           `json:"vendor"`
	Amount        *decimal.Decimal `json:"amount"`
	Date          *civil.Date      `json:"date"`
	Type          string           `json:"type"`
	Category      *string          `json:"category"`
	InvoiceNumber *string          `json:"invoice_number"`
}

// TransactionFromDomain converts a transaction to response.
func TransactionFromDomain(tx domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:            tx.ID,
		DocumentID:    tx.DocumentID,
		Vendor:        tx.Vendor,
		Date:          tx.Date,
		Type:          string(tx.Type),
		InvoiceNumber: tx.InvoiceNumber,
	}
	if tx.HasAmount() {
		a := tx.Amount
		resp.Amount = &a
	}
	if tx.Category != nil {
		c := string(*tx.Category)
		resp.Category = &c
	}
	return resp
}

// TransactionsFromDomain converts transactions to responses.
func TransactionsFromDomain(txs []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txs))
	for i, tx := range txs {
		out[i] = TransactionFromDomain(tx)
	}
	return out
}

// FieldDiffResponse represents one differing field.
type FieldDiffResponse struct {
	Field string `json:"field"`
	Old   string `json:"old"`
	New   string `json:"new"`
}

// ComparisonResponse represents a side-by-side comparison.
type ComparisonResponse struct {
	LeftID        string              `json:"left_id"`
	RightID       string              `json:"right_id"`
	Identical     bool                `json:"identical"`
	Differences   []FieldDiffResponse `json:"differences"`
	AmountDelta   *decimal.Decimal    `json:"amount_delta,omitempty"`
	PercentChange *float64            `json:"percent_change,omitempty"`
}

// ComparisonFromDomain converts a comparison to response.
func ComparisonFromDomain(c *domain.Comparison) *ComparisonResponse {
	diffs := make([]FieldDiffResponse, len(c.Differences))
	for i, d := range c.Differences {
		diffs[i] = FieldDiffResponse{Field: string(d.Field), Old: d.Old, New: d.New}
	}
	return &ComparisonResponse{
		LeftID:        c.LeftID,
		RightID:       c.RightID,
		Identical:     c.Identical(),
		Differences:   diffs,
		AmountDelta:   c.AmountDelta,
		PercentChange: c.PercentChange,
	}
}

// PricePointResponse represents one dated price.
type PricePointResponse struct {
	TransactionID string          `json:"transaction_id"`
	Date          civil.Date      `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
}

// PriceHistoryResponse represents a vendor price history.
type PriceHistoryResponse struct {
	Vendor string               `json:"vendor"`
	Points []PricePointResponse `json:"points"`
}

// PriceHistoryFromDomain converts a price history to response.
func PriceHistoryFromDomain(h *domain.PriceHistory) *PriceHistoryResponse {
	points := make([]PricePointResponse, len(h.Points))
	for i, p := range h.Points {
		points[i] = PricePointResponse{TransactionID: p.TransactionID, Date: p.Date, Amount: p.Amount}
	}
	return &PriceHistoryResponse{Vendor: h.Vendor, Points: points}
}

// SimilarTransactionResponse represents a ranked similar transaction.
type SimilarTransactionResponse struct {
	TransactionID string          `json:"transaction_id"`
	Vendor        string          `json:"vendor"`
	Amount        decimal.Decimal `json:"amount"`
	Score         float64         `json:"score"`
}

// SimilarFromDomain converts similar transactions to responses.
func SimilarFromDomain(items []domain.SimilarTransaction) []SimilarTransactionResponse {
	out := make([]SimilarTransactionResponse, len(items))
	for i, s := range items {
		out[i] = SimilarTransactionResponse{TransactionID: s.TransactionID, Vendor: s.Vendor, Amount: s.Amount, Score: s.Score}
	}
	return out
}

// VendorStatResponse represents spend for one vendor.
type VendorStatResponse struct {
	Vendor           string          `json:"vendor"`
	Total            decimal.Decimal `json:"total"`
	TransactionCount int             `json:"transaction_count"`
	Average          decimal.Decimal `json:"average"`
}

// VendorStatsFromDomain converts vendor stats to responses.
func VendorStatsFromDomain(stats []domain.VendorStat) []VendorStatResponse {
	out := make([]VendorStatResponse, len(stats))
	for i, s := range stats {
		out[i] = VendorStatResponse{Vendor: s.Vendor, Total: s.Total, TransactionCount: s.TransactionCount, Average: s.Average}
	}
	return out
}

// CategoryTotalResponse represents spend for one category.
type CategoryTotalResponse struct {
	Category         string          `json:"category"`
	Total            decimal.Decimal `json:"total"`
	TransactionCount int             `json:"transaction_count"`
}

// CategoriesFromDomain converts category totals to responses.
func CategoriesFromDomain(totals []domain.CategoryTotal) []CategoryTotalResponse {
	out := make([]CategoryTotalResponse, len(totals))
	for i, c := range totals {
		out[i] = CategoryTotalResponse{Category: c.Category, Total: c.Total, TransactionCount: c.TransactionCount}
	}
	return out
}

// ExportResponse describes a stored export.
type ExportResponse struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Bytes    int    `json:"bytes"`
}

// ListResponse wraps a list payload.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

// NewListResponse wraps items.
func NewListResponse[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Count: len(items)}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

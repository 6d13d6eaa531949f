package domain

import "github.com/shopspring/decimal"

// VendorStat aggregates spend for one vendor.
type VendorStat struct {
	Vendor           string
	Total            decimal.Decimal
	TransactionCount int
	Average          decimal.Decimal
}

// CategoryTotal aggregates spend for one category.
type CategoryTotal struct {
	Category         string
	Total            decimal.Decimal
	TransactionCount int
}

// SimilarTransaction is a transaction ranked by resemblance to a reference.
type SimilarTransaction struct {
	TransactionID string
	Vendor        string
	Amount        decimal.Decimal
	Score         float64
}

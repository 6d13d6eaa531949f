package domain

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Direction is the sign of a price movement.
type Direction string

const (
	DirectionIncreasing Direction = "increasing"
	DirectionDecreasing Direction = "decreasing"
)

// PricePoint is one dated amount in a vendor's price history.
type PricePoint struct {
	TransactionID string
	Date          civil.Date
	Amount        decimal.Decimal
}

// PriceHistory is the chronological amount series for one vendor.
// Line items are not modeled, so every purchase from a vendor is treated
// as the same item.
type PriceHistory struct {
	Vendor string
	Points []PricePoint
}

// PriceChange flags a consecutive price movement above the threshold.
type PriceChange struct {
	Vendor                string
	PreviousTransactionID string
	TransactionID         string
	PreviousAmount        decimal.Decimal
	NewAmount             decimal.Decimal
	Date                  civil.Date
	PercentChange         float64
	Direction             Direction
}

// ComparedField names a field inspected by a side-by-side comparison.
type ComparedField string

const (
	ComparedFieldVendor        ComparedField = "vendor"
	ComparedFieldAmount        ComparedField = "amount"
	ComparedFieldInvoiceNumber ComparedField = "invoice_number"
	ComparedFieldDate          ComparedField = "date"
)

// FieldDiff is one differing field between two transactions.
type FieldDiff struct {
	Field ComparedField
	Old   string
	New   string
}

// Comparison is the structured diff of two transactions.
type Comparison struct {
	LeftID        string
	RightID       string
	Differences   []FieldDiff
	AmountDelta   *decimal.Decimal
	PercentChange *float64
}

// Identical reports whether no compared field differs.
func (c *Comparison) Identical() bool {
	return len(c.Differences) == 0
}

package analysis

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/harshman7/insight-agent-idp/internal/domain"
)

func amountText(tx *domain.Transaction) string {
	if !tx.HasAmount() {
		return ""
	}
	return tx.Amount.StringFixed(2)
}

func dateText(tx *domain.Transaction) string {
	if !tx.HasDate() {
		return ""
	}
	return tx.Date.String()
}

func invoiceText(tx *domain.Transaction) string {
	if tx.InvoiceNumber == nil {
		return ""
	}
	return strings.TrimSpace(*tx.InvoiceNumber)
}

// Compare diffs two transactions field by field for side-by-side inspection.
// Left holds the old values and right the new ones.
func Compare(left, right *domain.Transaction) domain.Comparison {
	c := domain.Comparison{LeftID: left.ID, RightID: right.ID}

	if l, r := strings.TrimSpace(left.Vendor), strings.TrimSpace(right.Vendor); l != r {
		c.Differences = append(c.Differences, domain.FieldDiff{Field: domain.ComparedFieldVendor, Old: l, New: r})
	}

	amountsDiffer := left.HasAmount() != right.HasAmount() ||
		(left.HasAmount() && !left.Amount.Equal(right.Amount))
	if amountsDiffer {
		c.Differences = append(c.Differences, domain.FieldDiff{
			Field: domain.ComparedFieldAmount, Old: amountText(left), New: amountText(right),
		})
	}
	if left.HasAmount() && right.HasAmount() {
		delta := right.Amount.Sub(left.Amount)
		c.AmountDelta = &delta
		if !left.Amount.IsZero() {
			pct := delta.Div(left.Amount.Abs()).Mul(decimal.NewFromInt(100)).InexactFloat64()
			c.PercentChange = &pct
		}
	}

	if l, r := invoiceText(left), invoiceText(right); l != r {
		c.Differences = append(c.Differences, domain.FieldDiff{Field: domain.ComparedFieldInvoiceNumber, Old: l, New: r})
	}
	if l, r := dateText(left), dateText(right); l != r {
		c.Differences = append(c.Differences, domain.FieldDiff{Field: domain.ComparedFieldDate, Old: l, New: r})
	}
	return c
}

package domain

import (
	"fmt"
	"strings"
)

// Validation constants
const (
	MaxVendorLength  = 255
	DefaultListLimit = 10
	MaxListLimit     = 500
)

// Validate checks the invariants every analysis relies on.
func (t *Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("%w: transaction id is empty", ErrInput)
	}
	if !t.Type.IsValid() {
		return fmt.Errorf("%w: transaction %s has unknown type %q", ErrInput, t.ID, t.Type)
	}
	if len(t.Vendor) > MaxVendorLength {
		return fmt.Errorf("%w: transaction %s vendor exceeds %d characters", ErrInput, t.ID, MaxVendorLength)
	}
	if t.HasAmount() && t.Amount.IsNegative() && t.Type != DocumentTypeStatement {
		return fmt.Errorf("%w: transaction %s has negative amount %s", ErrInput, t.ID, t.Amount)
	}
	if t.Date != nil && !t.Date.IsValid() {
		return fmt.Errorf("%w: transaction %s has invalid date", ErrInput, t.ID)
	}
	for group, c := range t.Confidence {
		if c < 0 || c > 1 {
			return fmt.Errorf("%w: transaction %s confidence for %s out of range", ErrInput, t.ID, group)
		}
	}
	return nil
}

// ValidateTransactions validates every transaction and rejects duplicate ids.
func ValidateTransactions(txs []Transaction) error {
	seen := make(map[string]struct{}, len(txs))
	for i := range txs {
		if err := txs[i].Validate(); err != nil {
			return err
		}
		if _, ok := seen[txs[i].ID]; ok {
			return fmt.Errorf("%w: duplicate transaction id %s", ErrInput, txs[i].ID)
		}
		seen[txs[i].ID] = struct{}{}
	}
	return nil
}

// Validate rejects a range whose start is after its end.
func (r DateRange) Validate() error {
	if r.From != nil && !r.From.IsValid() {
		return fmt.Errorf("%w: invalid range start", ErrInput)
	}
	if r.To != nil && !r.To.IsValid() {
		return fmt.Errorf("%w: invalid range end", ErrInput)
	}
	if r.From != nil && r.To != nil && r.From.After(*r.To) {
		return fmt.Errorf("%w: range start %s is after end %s", ErrInput, r.From, r.To)
	}
	return nil
}

// ValidateLimit defaults and caps a top-N limit.
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/harshman7/insight-agent-idp/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// PriceTrendResult holds the flagged changes and every vendor's history.
type PriceTrendResult struct {
	Changes   []domain.PriceChange
	Histories []domain.PriceHistory
}

// priceHistories groups dated, priced, non-statement transactions by
// normalized vendor in chronological order. The display name is the vendor
// spelling of the earliest point.
func priceHistories(txs []domain.Transaction) (map[string]*domain.PriceHistory, []string, error) {
	grouped := make(map[string][]*domain.Transaction)
	for i := range txs {
		tx := &txs[i]
		if tx.Type == domain.DocumentTypeStatement || !tx.HasDate() || !tx.HasAmount() {
			continue
		}
		if err := checkAmount(tx); err != nil {
			return nil, nil, err
		}
		key := NormalizeVendor(tx.Vendor)
		if key == "" {
			continue
		}
		grouped[key] = append(grouped[key], tx)
	}

	keys := make([]string, 0, len(grouped))
	out := make(map[string]*domain.PriceHistory, len(grouped))
	for key, members := range grouped {
		sort.Slice(members, func(i, j int) bool {
			a, b := members[i], members[j]
			if *a.Date != *b.Date {
				return a.Date.Before(*b.Date)
			}
			return a.ID < b.ID
		})
		h := &domain.PriceHistory{Vendor: members[0].Vendor}
		for _, tx := range members {
			h.Points = append(h.Points, domain.PricePoint{
				TransactionID: tx.ID,
				Date:          *tx.Date,
				Amount:        tx.Amount,
			})
		}
		out[key] = h
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return out, keys, nil
}

// DetectPriceChanges flags consecutive same-vendor movements whose absolute
// percentage exceeds cfg.PriceChangePct. Every purchase from a vendor is
// treated as the same item.
func DetectPriceChanges(txs []domain.Transaction, cfg Config) (PriceTrendResult, error) {
	histories, keys, err := priceHistories(txs)
	if err != nil {
		return PriceTrendResult{}, err
	}

	var res PriceTrendResult
	for _, key := range keys {
		h := histories[key]
		res.Histories = append(res.Histories, *h)
		for i := 1; i < len(h.Points); i++ {
			prev, cur := h.Points[i-1], h.Points[i]
			if !prev.Amount.IsPositive() {
				continue
			}
			pct := cur.Amount.Sub(prev.Amount).Div(prev.Amount).Mul(hundred).InexactFloat64()
			if math.Abs(pct) <= cfg.PriceChangePct {
				continue
			}
			dir := domain.DirectionIncreasing
			if pct < 0 {
				dir = domain.DirectionDecreasing
			}
			res.Changes = append(res.Changes, domain.PriceChange{
				Vendor:                h.Vendor,
				PreviousTransactionID: prev.TransactionID,
				TransactionID:         cur.TransactionID,
				PreviousAmount:        prev.Amount,
				NewAmount:             cur.Amount,
				Date:                  cur.Date,
				PercentChange:         pct,
				Direction:             dir,
			})
		}
	}
	return res, nil
}

// VendorPriceHistory returns the chronological amounts for one vendor.
func VendorPriceHistory(txs []domain.Transaction, vendor string) (domain.PriceHistory, error) {
	histories, _, err := priceHistories(txs)
	if err != nil {
		return domain.PriceHistory{}, err
	}
	h, ok := histories[NormalizeVendor(vendor)]
	if !ok {
		return domain.PriceHistory{}, fmt.Errorf("%w: %s", domain.ErrVendorNotFound, vendor)
	}
	return *h, nil
}

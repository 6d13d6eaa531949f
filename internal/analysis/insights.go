package analysis

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/harshman7/insight-agent-idp/internal/domain"
)

// VendorStats totals spend per normalized vendor, largest total first.
func VendorStats(txs []domain.Transaction, limit int) []domain.VendorStat {
	type acc struct {
		name  string
		total decimal.Decimal
		count int
	}
	byVendor := make(map[string]*acc)
	for i := range txs {
		tx := &txs[i]
		if tx.Type == domain.DocumentTypeStatement || !tx.HasAmount() {
			continue
		}
		key := NormalizeVendor(tx.Vendor)
		if key == "" {
			continue
		}
		a, ok := byVendor[key]
		if !ok {
			a = &acc{name: tx.Vendor}
			byVendor[key] = a
		}
		a.total = a.total.Add(tx.Amount)
		a.count++
	}

	out := make([]domain.VendorStat, 0, len(byVendor))
	for _, a := range byVendor {
		out = append(out, domain.VendorStat{
			Vendor:           a.name,
			Total:            a.total,
			TransactionCount: a.count,
			Average:          a.total.Div(decimal.NewFromInt(int64(a.count))).Round(2),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].Vendor < out[j].Vendor
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// CategoryBreakdown totals spend per category. Transactions without one are
// grouped under domain.UncategorizedLabel.
func CategoryBreakdown(txs []domain.Transaction) []domain.CategoryTotal {
	byCat := make(map[string]*domain.CategoryTotal)
	for i := range txs {
		tx := &txs[i]
		if tx.Type == domain.DocumentTypeStatement || !tx.HasAmount() {
			continue
		}
		label := domain.UncategorizedLabel
		if tx.Category != nil && *tx.Category != "" {
			label = string(*tx.Category)
		}
		ct, ok := byCat[label]
		if !ok {
			ct = &domain.CategoryTotal{Category: label}
			byCat[label] = ct
		}
		ct.Total = ct.Total.Add(tx.Amount)
		ct.TransactionCount++
	}

	out := make([]domain.CategoryTotal, 0, len(byCat))
	for _, ct := range byCat {
		out = append(out, *ct)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// Amount proximity bonuses for similar-transaction ranking.
const (
	closeAmountFraction = 0.10
	nearAmountFraction  = 0.50
	closeAmountBonus    = 0.3
	nearAmountBonus     = 0.15
	vendorWeight        = 0.5
	minSimilarScore     = 0.3
)

// SimilarTransactions ranks same-type transactions by vendor similarity and
// amount proximity to the reference.
func SimilarTransactions(txs []domain.Transaction, ref *domain.Transaction, limit int) []domain.SimilarTransaction {
	var out []domain.SimilarTransaction
	for i := range txs {
		tx := &txs[i]
		if tx.ID == ref.ID || tx.Type != ref.Type {
			continue
		}
		score := vendorWeight * StringSimilarity(ref.Vendor, tx.Vendor)
		if ref.HasAmount() && tx.HasAmount() {
			switch {
			case AmountWithinTolerance(ref.Amount, tx.Amount, closeAmountFraction):
				score += closeAmountBonus
			case AmountWithinTolerance(ref.Amount, tx.Amount, nearAmountFraction):
				score += nearAmountBonus
			}
		}
		if score < minSimilarScore {
			continue
		}
		out = append(out, domain.SimilarTransaction{
			TransactionID: tx.ID,
			Vendor:        tx.Vendor,
			Amount:        tx.Amount,
			Score:         math.Round(score*1000) / 1000,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].TransactionID < out[j].TransactionID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

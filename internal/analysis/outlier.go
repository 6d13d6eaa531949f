package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/harshman7/insight-agent-idp/internal/domain"
)

// vendorStats holds exact per-vendor sums. Deviations are kept scaled by n
// (d = n*x - sum) so the threshold test never divides.
type vendorStats struct {
	n     decimal.Decimal
	sum   decimal.Decimal
	sumD2 decimal.Decimal
}

func newVendorStats(members []*domain.Transaction) vendorStats {
	s := vendorStats{n: decimal.NewFromInt(int64(len(members))), sum: decimal.Zero, sumD2: decimal.Zero}
	for _, tx := range members {
		s.sum = s.sum.Add(tx.Amount)
	}
	for _, tx := range members {
		d := s.scaledDeviation(tx.Amount)
		s.sumD2 = s.sumD2.Add(d.Mul(d))
	}
	return s
}

func (s vendorStats) scaledDeviation(x decimal.Decimal) decimal.Decimal {
	return s.n.Mul(x).Sub(s.sum)
}

// atLeast reports whether x lies at least z population standard deviations
// from the mean: n*d^2 >= z^2 * sum(d^2).
func (s vendorStats) atLeast(x decimal.Decimal, z float64) bool {
	d := s.scaledDeviation(x)
	zd := decimal.NewFromFloat(z)
	return s.n.Mul(d).Mul(d).GreaterThanOrEqual(zd.Mul(zd).Mul(s.sumD2))
}

// beyond is the strict form of atLeast.
func (s vendorStats) beyond(x decimal.Decimal, z float64) bool {
	d := s.scaledDeviation(x)
	zd := decimal.NewFromFloat(z)
	return s.n.Mul(d).Mul(d).GreaterThan(zd.Mul(zd).Mul(s.sumD2))
}

func (s vendorStats) mean() float64 {
	return s.sum.Div(s.n).InexactFloat64()
}

// zScore is |d|*sqrt(n)/sqrt(sum(d^2)), for display and scoring only.
func (s vendorStats) zScore(x decimal.Decimal) float64 {
	d := s.scaledDeviation(x).Abs().InexactFloat64()
	return d * math.Sqrt(s.n.InexactFloat64()) / math.Sqrt(s.sumD2.InexactFloat64())
}

// OutlierResult holds unusual-amount findings and the vendors that had too
// few samples to be scored.
type OutlierResult struct {
	Findings       []domain.Finding
	SkippedVendors []string
}

// DetectOutliers scores each transaction against its vendor's amount
// distribution and flags those at least cfg.ZMedium deviations away.
func DetectOutliers(txs []domain.Transaction, cfg Config) (OutlierResult, error) {
	byVendor := make(map[string][]*domain.Transaction)
	for i := range txs {
		tx := &txs[i]
		if !tx.HasAmount() {
			continue
		}
		if err := checkAmount(tx); err != nil {
			return OutlierResult{}, err
		}
		key := NormalizeVendor(tx.Vendor)
		byVendor[key] = append(byVendor[key], tx)
	}

	vendors := make([]string, 0, len(byVendor))
	for v := range byVendor {
		vendors = append(vendors, v)
	}
	sort.Strings(vendors)

	var res OutlierResult
	for _, vendor := range vendors {
		members := byVendor[vendor]
		if len(members) < cfg.MinSamples {
			res.SkippedVendors = append(res.SkippedVendors, vendor)
			continue
		}
		sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })

		stats := newVendorStats(members)
		if stats.sumD2.IsZero() {
			continue
		}

		for _, tx := range members {
			if !stats.atLeast(tx.Amount, cfg.ZMedium) {
				continue
			}
			z := stats.zScore(tx.Amount)
			sev := domain.SeverityMedium
			if stats.beyond(tx.Amount, cfg.ZHigh) {
				sev = domain.SeverityHigh
			}
			res.Findings = append(res.Findings, domain.Finding{
				TransactionIDs: []string{tx.ID},
				Kind:           domain.FindingKindUnusualAmount,
				Severity:       sev,
				Detail: fmt.Sprintf("amount %s is %.2f standard deviations from the %q mean of %.2f",
					tx.Amount.StringFixed(2), z, tx.Vendor, stats.mean()),
				Score:   z,
				Section: domain.SectionOutliers,
			})
		}
	}
	return res, nil
}

package analysis

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"cloud.google.com/go/civil"
	"github.com/agnivade/levenshtein"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/harshman7/insight-agent-idp/internal/domain"
)

// subsetScore is the floor applied when one token set contains the other.
const subsetScore = 0.8

// normalizeText strips diacritics, folds case and replaces punctuation with
// single spaces.
func normalizeText(s string) string {
	// Transformers and casers are stateful, so each call builds its own.
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	out = cases.Fold().String(out)

	var b strings.Builder
	b.Grow(len(out))
	for _, r := range out {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// NormalizeVendor folds case and whitespace only. Punctuation is kept so that
// distinct vendors with similar names are not merged.
func NormalizeVendor(s string) string {
	return strings.Join(strings.Fields(cases.Fold().String(s)), " ")
}

func tokenSet(s string) []string {
	fields := strings.Fields(s)
	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

func isSubset(small, large []string) bool {
	idx := make(map[string]struct{}, len(large))
	for _, t := range large {
		idx[t] = struct{}{}
	}
	for _, t := range small {
		if _, ok := idx[t]; !ok {
			return false
		}
	}
	return true
}

func editRatio(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	longest := max(la, lb)
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}

// StringSimilarity scores two free-text names in [0,1]. It ignores case,
// punctuation, diacritics and token order, and is symmetric.
func StringSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	na, nb := normalizeText(a), normalizeText(b)
	if na == "" && nb == "" {
		// Nothing comparable survived normalization.
		return 0
	}
	if na == nb {
		return 1
	}
	if na == "" || nb == "" {
		return 0
	}

	ta, tb := tokenSet(na), tokenSet(nb)
	score := editRatio(strings.Join(ta, " "), strings.Join(tb, " "))
	if isSubset(ta, tb) || isSubset(tb, ta) {
		score = max(score, subsetScore)
	}
	return clamp01(score)
}

// AmountWithinTolerance reports whether |a-b| <= fraction*max(|a|,|b|).
func AmountWithinTolerance(a, b decimal.Decimal, fraction float64) bool {
	limit := decimal.Max(a.Abs(), b.Abs()).Mul(decimal.NewFromFloat(fraction))
	return a.Sub(b).Abs().LessThanOrEqual(limit)
}

// DateWithinWindow reports whether the two dates are at most days apart.
func DateWithinWindow(d1, d2 civil.Date, days int) bool {
	return daysBetween(d1, d2) <= days
}

func daysBetween(d1, d2 civil.Date) int {
	n := d1.DaysSince(d2)
	if n < 0 {
		return -n
	}
	return n
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// checkAmount enforces the non-negative amount invariant for amount-based
// analyses.
func checkAmount(tx *domain.Transaction) error {
	if tx.HasAmount() && tx.Amount.IsNegative() && tx.Type != domain.DocumentTypeStatement {
		return fmt.Errorf("%w: transaction %s has negative amount %s", domain.ErrInput, tx.ID, tx.Amount)
	}
	return nil
}

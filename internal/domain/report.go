package domain

import "time"

// Section identifies one independently computed part of a report.
type Section string

const (
	SectionDuplicates   Section = "duplicates"
	SectionOutliers     Section = "outliers"
	SectionCompleteness Section = "completeness"
	SectionDates        Section = "dates"
	SectionMatches      Section = "matches"
	SectionPriceTrends  Section = "price_trends"
	SectionForecast     Section = "forecast"
)

// AllSections lists every section in registration order.
func AllSections() []Section {
	return []Section{
		SectionDuplicates,
		SectionOutliers,
		SectionCompleteness,
		SectionDates,
		SectionMatches,
		SectionPriceTrends,
		SectionForecast,
	}
}

// IsValid reports whether s names a known section.
func (s Section) IsValid() bool {
	for _, known := range AllSections() {
		if s == known {
			return true
		}
	}
	return false
}

// ErrorKind classifies a section failure.
type ErrorKind string

const (
	ErrorKindInput            ErrorKind = "input"
	ErrorKindInsufficientData ErrorKind = "insufficient_data"
	ErrorKindComputation      ErrorKind = "computation"
)

// SectionError records why a section is absent or degraded in a report.
type SectionError struct {
	Section Section
	Kind    ErrorKind
	Message string
}

// Report is the aggregated output of one analysis run.
type Report struct {
	ID                  string
	GeneratedAt         time.Time
	AsOf                string
	TransactionCount    int
	Findings            []Finding
	Matches             *MatchResult
	PriceChanges        []PriceChange
	Forecast            *Forecast
	SkippedVendors      []string
	Errors              []SectionError
	Sections            []Section
	SnapshotFingerprint string
}

// Degraded reports whether any section failed.
func (r *Report) Degraded() bool {
	return len(r.Errors) > 0
}

// DegradedSections lists the sections that failed.
func (r *Report) DegradedSections() []Section {
	out := make([]Section, 0, len(r.Errors))
	for _, e := range r.Errors {
		out = append(out, e.Section)
	}
	return out
}

// CountBySeverity tallies findings per severity.
func (r *Report) CountBySeverity() map[Severity]int {
	counts := map[Severity]int{
		SeverityHigh:   0,
		SeverityMedium: 0,
		SeverityLow:    0,
	}
	for _, f := range r.Findings {
		counts[f.Severity]++
	}
	return counts
}

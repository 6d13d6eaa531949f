package domain

// FindingKind is the category of an anomaly finding.
type FindingKind string

const (
	FindingKindDuplicate     FindingKind = "duplicate"
	FindingKindUnusualAmount FindingKind = "unusual_amount"
	FindingKindMissingField  FindingKind = "missing_field"
	FindingKindDateAnomaly   FindingKind = "date_anomaly"
)

// Severity ranks how urgently a finding needs attention.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Rank orders severities for sorting: lower ranks come first.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 0
	case SeverityMedium:
		return 1
	default:
		return 2
	}
}

// Finding is one emitted anomaly.
type Finding struct {
	TransactionIDs []string
	Kind           FindingKind
	Severity       Severity
	Detail         string
	Score          float64
	Section        Section
}

// Subject returns the primary transaction the finding is about.
func (f *Finding) Subject() string {
	if len(f.TransactionIDs) == 0 {
		return ""
	}
	return f.TransactionIDs[0]
}

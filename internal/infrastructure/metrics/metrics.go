package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/harshman7/insight-agent-idp/internal/domain"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Report metrics
	ReportsGenerated prometheus.Counter
	ReportsDegraded  prometheus.Counter
	SectionDuration  *prometheus.HistogramVec
	SectionFailures  *prometheus.CounterVec
	Findings         *prometheus.CounterVec
	MatchesAccepted  prometheus.Counter
	PriceChanges     prometheus.Counter

	// Cache metrics
	CacheLookups *prometheus.CounterVec

	// Database metrics
	SnapshotReads    prometheus.Counter
	SnapshotDuration prometheus.Histogram
	DBErrors         *prometheus.CounterVec

	// Export metrics
	ExportsUploaded *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ReportsGenerated: f.NewCounter(prometheus.CounterOpts{
			Name: "insights_reports_generated_total",
			Help: "Total number of reports generated",
		}),
		ReportsDegraded: f.NewCounter(prometheus.CounterOpts{
			Name: "insights_reports_degraded_total",
			Help: "Total number of reports with at least one failed section",
		}),
		SectionDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "insights_section_duration_seconds",
				Help:    "Duration of report sections",
				Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
			},
			[]string{"section"},
		),
		SectionFailures: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "insights_section_failures_total",
				Help: "Total report section failures by kind",
			},
			[]string{"section", "kind"},
		),
		Findings: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "insights_findings_total",
				Help: "Total findings emitted by kind and severity",
			},
			[]string{"kind", "severity"},
		),
		MatchesAccepted: f.NewCounter(prometheus.CounterOpts{
			Name: "insights_matches_accepted_total",
			Help: "Total receipt-invoice matches accepted",
		}),
		PriceChanges: f.NewCounter(prometheus.CounterOpts{
			Name: "insights_price_changes_total",
			Help: "Total price changes flagged",
		}),
		CacheLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "insights_report_cache_lookups_total",
				Help: "Report cache lookups by result",
			},
			[]string{"result"},
		),
		SnapshotReads: f.NewCounter(prometheus.CounterOpts{
			Name: "insights_snapshot_reads_total",
			Help: "Total snapshot reads",
		}),
		SnapshotDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "insights_snapshot_read_duration_seconds",
			Help:    "Snapshot read duration",
			Buckets: prometheus.DefBuckets,
		}),
		DBErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "insights_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),
		ExportsUploaded: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "insights_exports_uploaded_total",
				Help: "Exports uploaded by result",
			},
			[]string{"result"},
		),
	}
}

// ObserveSection records one section run.
func (m *Metrics) ObserveSection(section domain.Section, elapsed time.Duration, err error) {
	m.SectionDuration.WithLabelValues(string(section)).Observe(elapsed.Seconds())
	if err != nil {
		m.SectionFailures.WithLabelValues(string(section), string(domain.ClassifyError(err))).Inc()
	}
}

// ObserveReport records the outcome of a generated report.
func (m *Metrics) ObserveReport(report *domain.Report) {
	m.ReportsGenerated.Inc()
	if report.Degraded() {
		m.ReportsDegraded.Inc()
	}
	for _, f := range report.Findings {
		m.Findings.WithLabelValues(string(f.Kind), string(f.Severity)).Inc()
	}
	if report.Matches != nil {
		m.MatchesAccepted.Add(float64(len(report.Matches.Matches)))
	}
	m.PriceChanges.Add(float64(len(report.PriceChanges)))
}

// ObserveCache records a report cache lookup.
func (m *Metrics) ObserveCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

// ObserveSnapshotRead records one snapshot read.
func (m *Metrics) ObserveSnapshotRead(elapsed time.Duration, err error) {
	m.SnapshotReads.Inc()
	m.SnapshotDuration.Observe(elapsed.Seconds())
	if err != nil {
		m.DBErrors.WithLabelValues("read_snapshot").Inc()
	}
}

// ObserveUpload records one export upload.
func (m *Metrics) ObserveUpload(err error) {
	result := "ok"
	if err != nil {
		result = "error"
		if errors.Is(err, domain.ErrInput) {
			result = "rejected"
		}
	}
	m.ExportsUploaded.WithLabelValues(result).Inc()
}

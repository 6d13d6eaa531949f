package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/harshman7/insight-agent-idp/internal/analysis"
	"github.com/harshman7/insight-agent-idp/internal/domain"
)

// ReportRequest selects what a report covers. An empty Sections list
// enables every section.
type ReportRequest struct {
	Range    domain.DateRange
	Vendor   string
	Sections []domain.Section
	AsOf     *civil.Date
}

func (r ReportRequest) enabled() ([]domain.Section, error) {
	if len(r.Sections) == 0 {
		return domain.AllSections(), nil
	}
	want := make(map[domain.Section]bool, len(r.Sections))
	for _, s := range r.Sections {
		if !s.IsValid() {
			return nil, fmt.Errorf("%w: unknown section %q", domain.ErrInput, s)
		}
		want[s] = true
	}
	// Registration order drives finding order within a severity tier.
	out := make([]domain.Section, 0, len(want))
	for _, s := range domain.AllSections() {
		if want[s] {
			out = append(out, s)
		}
	}
	return out, nil
}

// sectionInput is the immutable input shared by all sections of one run.
type sectionInput struct {
	snap *domain.Snapshot
	asOf civil.Date
	cfg  analysis.Config
	rng  domain.DateRange
}

type sectionOutput struct {
	findings []domain.Finding
	matches  *domain.MatchResult
	changes  []domain.PriceChange
	forecast *domain.Forecast
	skipped  []string
	err      error
}

type sectionFunc func(in *sectionInput) (sectionOutput, error)

func defaultSections() map[domain.Section]sectionFunc {
	return map[domain.Section]sectionFunc{
		domain.SectionDuplicates: func(in *sectionInput) (sectionOutput, error) {
			return sectionOutput{findings: analysis.DetectDuplicates(in.snap.Transactions)}, nil
		},
		domain.SectionOutliers: func(in *sectionInput) (sectionOutput, error) {
			res, err := analysis.DetectOutliers(in.snap.Transactions, in.cfg)
			return sectionOutput{findings: res.Findings, skipped: res.SkippedVendors}, err
		},
		domain.SectionCompleteness: func(in *sectionInput) (sectionOutput, error) {
			return sectionOutput{findings: analysis.CheckCompleteness(in.snap.Transactions, in.snap.Documents)}, nil
		},
		domain.SectionDates: func(in *sectionInput) (sectionOutput, error) {
			return sectionOutput{findings: analysis.DetectDateAnomalies(in.snap.Transactions, in.asOf, in.cfg)}, nil
		},
		domain.SectionMatches: func(in *sectionInput) (sectionOutput, error) {
			res, err := analysis.MatchReceipts(in.snap.Transactions, in.cfg)
			if err != nil {
				return sectionOutput{}, err
			}
			return sectionOutput{matches: &res}, nil
		},
		domain.SectionPriceTrends: func(in *sectionInput) (sectionOutput, error) {
			res, err := analysis.DetectPriceChanges(in.snap.Transactions, in.cfg)
			return sectionOutput{changes: res.Changes}, err
		},
		domain.SectionForecast: func(in *sectionInput) (sectionOutput, error) {
			fc, err := analysis.BuildForecast(in.snap.Transactions, analysis.ForecastOptionsFrom(in.cfg, in.rng))
			if err != nil {
				return sectionOutput{}, err
			}
			return sectionOutput{forecast: &fc}, nil
		},
	}
}

// ReportOption configures a ReportUseCase.
type ReportOption func(*ReportUseCase)

// WithCache caches serialized reports keyed by request and snapshot content.
func WithCache(cache Cache, ttl time.Duration) ReportOption {
	return func(uc *ReportUseCase) {
		uc.cache = cache
		uc.cacheTTL = ttl
	}
}

// WithObserver reports section timings and outcomes.
func WithObserver(o ReportObserver) ReportOption {
	return func(uc *ReportUseCase) { uc.observer = o }
}

// WithWorkers bounds concurrently running sections.
func WithWorkers(n int) ReportOption {
	return func(uc *ReportUseCase) {
		if n > 0 {
			uc.workers = n
		}
	}
}

// ReportUseCase fans every enabled section out over one snapshot and merges
// the results into a single report.
type ReportUseCase struct {
	reader   SnapshotReader
	idGen    IDGenerator
	clock    Clock
	cfg      analysis.Config
	logger   zerolog.Logger
	cache    Cache
	cacheTTL time.Duration
	observer ReportObserver
	workers  int
	sections map[domain.Section]sectionFunc
}

// NewReportUseCase creates a new report use case.
func NewReportUseCase(
	reader SnapshotReader,
	idGen IDGenerator,
	clock Clock,
	cfg analysis.Config,
	logger zerolog.Logger,
	opts ...ReportOption,
) *ReportUseCase {
	uc := &ReportUseCase{
		reader:   reader,
		idGen:    idGen,
		clock:    clock,
		cfg:      cfg,
		logger:   logger,
		cacheTTL: DefaultReportCacheTTL,
		observer: nopObserver{},
		workers:  DefaultWorkers,
		sections: defaultSections(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// GenerateReport runs the enabled sections and returns the merged report.
// Section failures are recorded in the report, never returned. If ctx ends
// before every section has finished the report is discarded and ctx.Err()
// is returned.
func (uc *ReportUseCase) GenerateReport(ctx context.Context, req ReportRequest) (*domain.Report, error) {
	if _, err := req.enabled(); err != nil {
		return nil, err
	}
	snap, err := loadSnapshot(ctx, uc.reader, scope{Range: req.Range, Vendor: req.Vendor})
	if err != nil {
		return nil, err
	}
	return uc.GenerateReportFrom(ctx, req, snap)
}

// GenerateReportFrom builds the report over an already loaded snapshot.
// snap must already be scoped to req.Range and req.Vendor.
func (uc *ReportUseCase) GenerateReportFrom(ctx context.Context, req ReportRequest, snap *domain.Snapshot) (*domain.Report, error) {
	sections, err := req.enabled()
	if err != nil {
		return nil, err
	}
	asOf := processingDate(uc.clock, req.AsOf)
	fp := fingerprint(snap)
	key := uc.cacheKey(req, sections, asOf, fp)

	if cached := uc.cached(ctx, key); cached != nil {
		return cached, nil
	}

	in := &sectionInput{snap: snap, asOf: asOf, cfg: uc.cfg, rng: req.Range}
	outs, err := uc.fanOut(ctx, sections, in)
	if err != nil {
		return nil, err
	}

	report := uc.merge(sections, outs)
	report.ID = uc.idGen.Generate()
	report.GeneratedAt = uc.clock.Now().UTC()
	report.AsOf = asOf.String()
	report.TransactionCount = len(snap.Transactions)
	report.SnapshotFingerprint = fp

	uc.observer.ObserveReport(report)
	uc.store(ctx, key, report)

	uc.logger.Info().
		Str("report_id", report.ID).
		Int("transactions", report.TransactionCount).
		Int("findings", len(report.Findings)).
		Bool("degraded", report.Degraded()).
		Msg("report generated")
	return report, nil
}

func (uc *ReportUseCase) fanOut(ctx context.Context, sections []domain.Section, in *sectionInput) ([]sectionOutput, error) {
	outs := make([]sectionOutput, len(sections))
	done := make(chan struct{})

	go func() {
		defer close(done)
		var g errgroup.Group
		g.SetLimit(uc.workers)
		for i, s := range sections {
			i, s := i, s
			g.Go(func() error {
				// Each goroutine owns one index; failures travel in the output.
				outs[i] = uc.runSection(s, in)
				return nil
			})
		}
		_ = g.Wait()
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-done:
		return outs, nil
	}
}

func (uc *ReportUseCase) runSection(s domain.Section, in *sectionInput) (out sectionOutput) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			out = sectionOutput{err: fmt.Errorf("%w: section panicked: %v", domain.ErrComputation, r)}
		}
		elapsed := time.Since(start)
		uc.observer.ObserveSection(s, elapsed, out.err)
		if out.err != nil {
			uc.logger.Warn().Err(out.err).Str("section", string(s)).Msg("report section failed")
			return
		}
		uc.logger.Debug().Str("section", string(s)).Dur("elapsed", elapsed).Msg("report section finished")
	}()

	fn, ok := uc.sections[s]
	if !ok {
		return sectionOutput{err: fmt.Errorf("%w: no handler for section %s", domain.ErrComputation, s)}
	}
	o, err := fn(in)
	o.err = err
	return o
}

func (uc *ReportUseCase) merge(sections []domain.Section, outs []sectionOutput) *domain.Report {
	report := &domain.Report{Sections: sections}
	for i, o := range outs {
		if o.err != nil {
			report.Errors = append(report.Errors, domain.SectionError{
				Section: sections[i],
				Kind:    domain.ClassifyError(o.err),
				Message: o.err.Error(),
			})
			continue
		}
		report.Findings = append(report.Findings, o.findings...)
		report.SkippedVendors = append(report.SkippedVendors, o.skipped...)
		report.PriceChanges = append(report.PriceChanges, o.changes...)
		if o.matches != nil {
			report.Matches = o.matches
		}
		if o.forecast != nil {
			report.Forecast = o.forecast
		}
	}
	sort.SliceStable(report.Findings, func(i, j int) bool {
		return report.Findings[i].Severity.Rank() < report.Findings[j].Severity.Rank()
	})
	return report
}

func (uc *ReportUseCase) cacheKey(req ReportRequest, sections []domain.Section, asOf civil.Date, fp string) string {
	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		parts = append(parts, string(s))
	}
	var from, to string
	if req.Range.From != nil {
		from = req.Range.From.String()
	}
	if req.Range.To != nil {
		to = req.Range.To.String()
	}
	cfg, _ := json.Marshal(uc.cfg)
	sum := sha256.Sum256([]byte(strings.Join([]string{
		from, to, analysis.NormalizeVendor(req.Vendor), strings.Join(parts, ","), asOf.String(), string(cfg), fp,
	}, "|")))
	return reportCachePrefix + hex.EncodeToString(sum[:])
}

func (uc *ReportUseCase) cached(ctx context.Context, key string) *domain.Report {
	if uc.cache == nil {
		return nil
	}
	raw, ok, err := uc.cache.Get(ctx, key)
	if err != nil {
		uc.logger.Warn().Err(err).Msg("report cache read failed")
		return nil
	}
	uc.observer.ObserveCache(ok)
	if !ok {
		return nil
	}
	var report domain.Report
	if err := json.Unmarshal(raw, &report); err != nil {
		uc.logger.Warn().Err(err).Msg("discarding unreadable cached report")
		return nil
	}
	return &report
}

func (uc *ReportUseCase) store(ctx context.Context, key string, report *domain.Report) {
	if uc.cache == nil {
		return
	}
	raw, err := json.Marshal(report)
	if err != nil {
		uc.logger.Warn().Err(err).Msg("report not cacheable")
		return
	}
	if err := uc.cache.Set(ctx, key, raw, uc.cacheTTL); err != nil {
		uc.logger.Warn().Err(err).Msg("report cache write failed")
	}
}

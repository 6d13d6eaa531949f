package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/harshman7/insight-agent-idp/internal/adapter/export"
	"github.com/harshman7/insight-agent-idp/internal/adapter/repository/memory"
	postgresRepo "github.com/harshman7/insight-agent-idp/internal/adapter/repository/postgres"
	"github.com/harshman7/insight-agent-idp/internal/analysis"
	"github.com/harshman7/insight-agent-idp/internal/infrastructure/config"
	"github.com/harshman7/insight-agent-idp/internal/infrastructure/logger"
	"github.com/harshman7/insight-agent-idp/internal/infrastructure/postgres"
	"github.com/harshman7/insight-agent-idp/internal/usecase"
)

// options are the persistent flags shared by every command.
type options struct {
	snapshotPath string
	configPath   string
	databaseURL  string
	timeout      time.Duration
	logLevel     string

	from   string
	to     string
	vendor string
}

// services bundles the use cases a command may need.
type services struct {
	reports      *usecase.ReportUseCase
	matches      *usecase.MatchUseCase
	forecasts    *usecase.ForecastUseCase
	transactions *usecase.TransactionUseCase
	insights     *usecase.InsightsUseCase
	exports      *usecase.ExportUseCase
	cfg          analysis.Config
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "insights",
		Short:         "Document insights CLI",
		Long:          `Runs anomaly detection, receipt matching, price trends and forecasts over extracted transactions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.snapshotPath, "snapshot", os.Getenv("SNAPSHOT_PATH"), "JSON snapshot file to analyse")
	pf.StringVar(&opts.configPath, "config", os.Getenv("ANALYSIS_CONFIG_PATH"), "YAML file with analysis thresholds")
	pf.StringVar(&opts.databaseURL, "database-url", "", "PostgreSQL URL; used instead of --snapshot when set")
	pf.DurationVar(&opts.timeout, "timeout", 30*time.Second, "Command timeout")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "Log level")
	pf.StringVar(&opts.from, "from", "", "Inclusive start date (YYYY-MM-DD)")
	pf.StringVar(&opts.to, "to", "", "Inclusive end date (YYYY-MM-DD)")
	pf.StringVar(&opts.vendor, "vendor", "", "Only consider vendors matching this name")

	rootCmd.AddCommand(
		newReportCmd(opts),
		newMatchCmd(opts),
		newForecastCmd(opts),
		newCompareCmd(opts),
		newPricesCmd(opts),
		newVendorsCmd(opts),
		newCategoriesCmd(opts),
		newMonthlyCmd(opts),
		newSimilarCmd(opts),
		newExportCmd(opts),
		newSummaryCmd(opts),
		newImportCmd(opts),
		newMigrateCmd(opts),
	)

	return rootCmd
}

func (o *options) logger() zerolog.Logger {
	return logger.NewWithWriter(logger.Config{Level: o.logLevel, Format: "console"}, os.Stderr)
}

func (o *options) analysisConfig() (analysis.Config, error) {
	cfg := analysis.DefaultConfig()
	if o.configPath == "" {
		return cfg, nil
	}
	return config.LoadAnalysisFile(o.configPath, cfg)
}

// open builds the use cases over the configured snapshot source. The
// returned func releases it.
func (o *options) open(ctx context.Context) (*services, func(), error) {
	cfg, err := o.analysisConfig()
	if err != nil {
		return nil, nil, err
	}
	log := o.logger()

	var (
		reader  usecase.SnapshotReader
		release = func() {}
	)
	switch {
	case o.databaseURL != "":
		pool, err := postgres.NewPool(ctx, o.databaseURL, 4, 0)
		if err != nil {
			return nil, nil, err
		}
		reader = postgresRepo.NewSnapshotRepository(pool, log, nil)
		release = pool.Close
	case o.snapshotPath != "":
		store, err := memory.LoadFile(o.snapshotPath)
		if err != nil {
			return nil, nil, err
		}
		reader = store
	default:
		return nil, nil, fmt.Errorf("either --snapshot or --database-url is required")
	}

	reports := usecase.NewReportUseCase(reader, postgresRepo.NewULIDGenerator(), usecase.SystemClock{}, cfg, log)
	return &services{
		reports:      reports,
		matches:      usecase.NewMatchUseCase(reader, cfg),
		forecasts:    usecase.NewForecastUseCase(reader, cfg),
		transactions: usecase.NewTransactionUseCase(reader),
		insights:     usecase.NewInsightsUseCase(reader),
		exports:      usecase.NewExportUseCase(reports, reader, export.NewWorkbookRenderer(), export.NewSummaryRenderer(), nil),
		cfg:          cfg,
	}, release, nil
}

// withServices runs fn with a timeout-bound context and opened services.
func withServices(opts *options, fn func(ctx context.Context, svc *services) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
		defer cancel()

		svc, release, err := opts.open(ctx)
		if err != nil {
			return err
		}
		defer release()

		return fn(ctx, svc)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

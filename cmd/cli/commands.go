package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harshman7/insight-agent-idp/internal/adapter/http/dto"
	"github.com/harshman7/insight-agent-idp/internal/adapter/repository/memory"
	postgresRepo "github.com/harshman7/insight-agent-idp/internal/adapter/repository/postgres"
	"github.com/harshman7/insight-agent-idp/internal/domain"
	"github.com/harshman7/insight-agent-idp/internal/infrastructure/postgres"
	"github.com/harshman7/insight-agent-idp/internal/usecase"
)

func (o *options) dateRange() (domain.DateRange, error) {
	return dto.ParseRange(o.from, o.to)
}

func (o *options) reportRequest(sections []string, asOf string) (usecase.ReportRequest, error) {
	req := dto.ReportRequest{
		RangeRequest: dto.RangeRequest{From: o.from, To: o.to, Vendor: o.vendor},
		Sections:     sections,
		AsOf:         asOf,
	}
	return req.ToUseCaseInput()
}

func newReportCmd(opts *options) *cobra.Command {
	var (
		sections []string
		asOf     string
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run every analysis section and print the merged report",
	}
	cmd.Flags().StringSliceVar(&sections, "sections", nil, "Sections to run (default all)")
	cmd.Flags().StringVar(&asOf, "as-of", "", "Processing date (YYYY-MM-DD, default today)")
	cmd.RunE = withServices(opts, func(ctx context.Context, svc *services) error {
		req, err := opts.reportRequest(sections, asOf)
		if err != nil {
			return err
		}
		report, err := svc.reports.GenerateReport(ctx, req)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), dto.ReportFromDomain(report))
	})
	return cmd
}

func newMatchCmd(opts *options) *cobra.Command {
	var (
		threshold  float64
		windowDays int
		unmatched  bool
	)
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Pair receipts with invoices",
	}
	cmd.Flags().Float64Var(&threshold, "threshold", -1, "Minimum match confidence (default from config)")
	cmd.Flags().IntVar(&windowDays, "window", -1, "Maximum day gap between receipt and invoice (default from config)")
	cmd.Flags().BoolVar(&unmatched, "unmatched", false, "Only list receipts without a match")
	cmd.RunE = withServices(opts, func(ctx context.Context, svc *services) error {
		rng, err := opts.dateRange()
		if err != nil {
			return err
		}
		req := usecase.MatchRequest{Range: rng, Vendor: opts.vendor}
		if cmd.Flags().Changed("threshold") {
			req.Threshold = &threshold
		}
		if cmd.Flags().Changed("window") {
			req.WindowDays = &windowDays
		}

		if unmatched {
			txs, err := svc.matches.UnmatchedReceipts(ctx, req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), dto.NewListResponse(dto.TransactionsFromDomain(txs)))
		}

		result, err := svc.matches.MatchReceipts(ctx, req)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), dto.MatchResultFromDomain(result))
	})
	return cmd
}

func newForecastCmd(opts *options) *cobra.Command {
	var horizon int
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Project monthly spend",
	}
	cmd.Flags().IntVar(&horizon, "horizon", 0, "Months to project (default from config)")
	cmd.RunE = withServices(opts, func(ctx context.Context, svc *services) error {
		rng, err := opts.dateRange()
		if err != nil {
			return err
		}
		fc, err := svc.forecasts.Forecast(ctx, usecase.ForecastRequest{Range: rng, Vendor: opts.vendor, Horizon: horizon})
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), dto.ForecastFromDomain(fc))
	})
	return cmd
}

func newCompareCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <left-id> <right-id>",
		Short: "Compare two transactions",
		Args:  cobra.ExactArgs(2),
	}
	cmd.RunE = func(c *cobra.Command, args []string) error {
		return withServices(opts, func(ctx context.Context, svc *services) error {
			cmp, err := svc.transactions.CompareTransactions(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			return printJSON(c.OutOrStdout(), dto.ComparisonFromDomain(cmp))
		})(c, args)
	}
	return cmd
}

func newPricesCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prices <vendor>",
		Short: "Show the price history of one vendor",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = func(c *cobra.Command, args []string) error {
		return withServices(opts, func(ctx context.Context, svc *services) error {
			rng, err := opts.dateRange()
			if err != nil {
				return err
			}
			history, err := svc.transactions.PriceHistory(ctx, args[0], rng)
			if err != nil {
				return err
			}
			return printJSON(c.OutOrStdout(), dto.PriceHistoryFromDomain(history))
		})(c, args)
	}
	return cmd
}

func newSimilarCmd(opts *options) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "similar <transaction-id>",
		Short: "List transactions resembling the given one",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().IntVar(&limit, "limit", 5, "Maximum results")
	cmd.RunE = func(c *cobra.Command, args []string) error {
		return withServices(opts, func(ctx context.Context, svc *services) error {
			items, err := svc.transactions.SimilarTransactions(ctx, args[0], limit)
			if err != nil {
				return err
			}
			return printJSON(c.OutOrStdout(), dto.NewListResponse(dto.SimilarFromDomain(items)))
		})(c, args)
	}
	return cmd
}

func newVendorsCmd(opts *options) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "vendors",
		Short: "Top vendors by total spend",
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum vendors")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	cmd.RunE = withServices(opts, func(ctx context.Context, svc *services) error {
		rng, err := opts.dateRange()
		if err != nil {
			return err
		}
		stats, err := svc.insights.VendorStats(ctx, rng, limit)
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(cmd.OutOrStdout(), dto.NewListResponse(dto.VendorStatsFromDomain(stats)))
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "VENDOR\tTOTAL\tCOUNT\tAVERAGE")
		for _, s := range stats {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", truncate(s.Vendor, 32), s.Total.StringFixed(2), s.TransactionCount, s.Average.StringFixed(2))
		}
		return tw.Flush()
	})
	return cmd
}

func newCategoriesCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Spend per category",
	}
	cmd.RunE = withServices(opts, func(ctx context.Context, svc *services) error {
		rng, err := opts.dateRange()
		if err != nil {
			return err
		}
		totals, err := svc.insights.CategoryBreakdown(ctx, rng)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), dto.NewListResponse(dto.CategoriesFromDomain(totals)))
	})
	return cmd
}

func newMonthlyCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Spend per calendar month",
	}
	cmd.RunE = withServices(opts, func(ctx context.Context, svc *services) error {
		rng, err := opts.dateRange()
		if err != nil {
			return err
		}
		totals, err := svc.insights.MonthlySpend(ctx, rng)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), dto.NewListResponse(dto.MonthlyTotalsFromDomain(totals)))
	})
	return cmd
}

func newExportCmd(opts *options) *cobra.Command {
	var (
		output string
		asOf   string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the report as an xlsx workbook",
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default insights-<id>.xlsx)")
	cmd.Flags().StringVar(&asOf, "as-of", "", "Processing date (YYYY-MM-DD, default today)")
	cmd.RunE = withServices(opts, func(ctx context.Context, svc *services) error {
		req, err := opts.reportRequest(nil, asOf)
		if err != nil {
			return err
		}
		res, err := svc.exports.ExportWorkbook(ctx, req)
		if err != nil {
			return err
		}
		path := output
		if path == "" {
			path = res.Name
		}
		if err := os.WriteFile(path, res.Data, 0o644); err != nil {
			return fmt.Errorf("failed to write workbook: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", path, len(res.Data))
		return nil
	})
	return cmd
}

func newSummaryCmd(opts *options) *cobra.Command {
	var asOf string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print a markdown digest of the report",
	}
	cmd.Flags().StringVar(&asOf, "as-of", "", "Processing date (YYYY-MM-DD, default today)")
	cmd.RunE = withServices(opts, func(ctx context.Context, svc *services) error {
		req, err := opts.reportRequest(nil, asOf)
		if err != nil {
			return err
		}
		md, err := svc.exports.SummaryMarkdown(ctx, req)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), md)
		return err
	})
	return cmd
}

func newImportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Load the --snapshot file into PostgreSQL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.snapshotPath == "" || opts.databaseURL == "" {
				return fmt.Errorf("import needs both --snapshot and --database-url")
			}
			store, err := memory.LoadFile(opts.snapshotPath)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			pool, err := postgres.NewPool(ctx, opts.databaseURL, 4, 0)
			if err != nil {
				return err
			}
			defer pool.Close()

			snap := store.Snapshot()
			repo := postgresRepo.NewSnapshotRepository(pool, opts.logger(), nil)
			if err := repo.ImportSnapshot(ctx, snap); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d documents, %d transactions\n", len(snap.Documents), len(snap.Transactions))
			return nil
		},
	}
}

func newMigrateCmd(opts *options) *cobra.Command {
	var (
		path string
		down bool
	)
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.databaseURL == "" {
				return fmt.Errorf("migrate needs --database-url")
			}
			if down {
				return postgres.RunMigrationsDown(opts.databaseURL, path, opts.logger())
			}
			return postgres.RunMigrations(opts.databaseURL, path, opts.logger())
		},
	}
	cmd.Flags().StringVar(&path, "path", "migrations", "Migrations directory")
	cmd.Flags().BoolVar(&down, "down", false, "Roll back the last migration")
	return cmd
}

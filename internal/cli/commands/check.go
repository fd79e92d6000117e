package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/stayflow-labs/dataguard/internal/config"
	"github.com/stayflow-labs/dataguard/internal/source"
	"github.com/stayflow-labs/dataguard/pkg/check"
	_ "github.com/stayflow-labs/dataguard/pkg/check/rules" // register built-in checks
	"github.com/stayflow-labs/dataguard/pkg/table"
)

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	var (
		watch bool
		query string
	)
	cmd := &cobra.Command{
		Use:   "check [dataset]",
		Short: "Run the data-quality checks against a dataset",
		Long: `Load the dataset (and the reference dataset when a drift check is
configured) and run the configured check list in order.

The command exits non-zero when any check fails. With --watch it keeps
running and re-validates whenever the dataset file changes. With --query the
dataset path is a DuckDB database file and the checks run against the query
result.`,
		Example: `  # Validate using dataguard.yaml
  dataguard check

  # Validate an explicit file against the default contract
  dataguard check clean_sample.csv

  # Collect every failure instead of stopping at the first
  dataguard check --policy collect-all

  # Validate a query result from a DuckDB database
  dataguard check listings.db --engine duckdb --query "SELECT * FROM listings"

  # Re-run on changes during development
  dataguard check --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := GetConfig(cmd.Context())
			if len(args) > 0 {
				cfg.Dataset = args[0]
			}
			return runCheck(cmd, cfg, watch, query)
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "Re-run checks when the dataset file changes")
	cmd.Flags().StringVar(&query, "query", "", "SQL query to load the dataset from a DuckDB database file")
	return cmd
}

func runCheck(cmd *cobra.Command, cfg *config.Config, watch bool, query string) error {
	ctx := cmd.Context()
	logger := GetLogger(ctx)

	if cfg.Dataset == "" {
		return fmt.Errorf("no dataset: pass a path or set dataset in %s", config.ConfigFileName)
	}
	if query != "" && cfg.Engine != "duckdb" {
		return fmt.Errorf("--query requires --engine duckdb, engine is %q", cfg.Engine)
	}

	opts, err := cfg.RunnerOptions()
	if err != nil {
		return err
	}
	runner := check.NewRunner(logger, opts)

	runOnce := func() (*check.Report, error) {
		ds, ref, err := loadDatasets(ctx, cfg, query, logger)
		if err != nil {
			return nil, err
		}
		return runner.Run(ctx, ds, ref, cfg.Checks)
	}

	report, err := runOnce()
	if err != nil {
		return err
	}
	if err := renderReport(cmd.OutOrStdout(), report, cfg.Output); err != nil {
		return err
	}

	if watch {
		return watchAndRun(ctx, logger, cfg.Dataset, func() {
			r, err := runOnce()
			if err != nil {
				logger.Error("check run failed", "error", err)
				return
			}
			if err := renderReport(cmd.OutOrStdout(), r, cfg.Output); err != nil {
				logger.Error("render failed", "error", err)
			}
		})
	}

	if !report.Passed {
		return fmt.Errorf("validation failed: %d of %d checks failed",
			len(report.Failures()), len(report.Results))
	}
	return nil
}

// loadDatasets loads the dataset under validation and, when any configured
// check needs one, the reference dataset. A non-empty query treats the
// dataset path as a DuckDB database file and validates the query result.
func loadDatasets(ctx context.Context, cfg *config.Config, query string, logger *slog.Logger) (ds, ref *table.Table, err error) {
	schema, err := cfg.TableSchema()
	if err != nil {
		return nil, nil, err
	}

	if query != "" {
		ds, err = source.Query(ctx, cfg.Dataset, query, schema)
	} else {
		ds, err = loadTable(ctx, cfg.Engine, cfg.Dataset, schema)
	}
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("loaded dataset", "path", cfg.Dataset, "rows", ds.NumRows(), "columns", ds.NumColumns())

	if cfg.Reference != "" && needsReference(cfg.Checks) {
		ref, err = loadTable(ctx, cfg.Engine, cfg.Reference, schema)
		if err != nil {
			return nil, nil, fmt.Errorf("reference dataset: %w", err)
		}
		logger.Debug("loaded reference dataset", "path", cfg.Reference, "rows", ref.NumRows())
	}
	return ds, ref, nil
}

func loadTable(ctx context.Context, engine, path string, schema table.Schema) (*table.Table, error) {
	if engine == "duckdb" {
		return source.LoadCSV(ctx, path, schema)
	}
	return table.ReadCSVFile(path, schema)
}

func needsReference(checks []check.Config) bool {
	for _, c := range checks {
		if def, ok := check.GetByName(c.Name); ok && def.NeedsReference {
			return true
		}
	}
	return false
}

// watchAndRun re-runs the validation whenever the dataset file is written.
// Events are debounced briefly because writers commonly emit several events
// per save. Returns when the context is canceled.
func watchAndRun(ctx context.Context, logger *slog.Logger, path string, run func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors replace files on save, which drops
	// per-file watches.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	target, _ := filepath.Abs(path)
	logger.Info("watching dataset", "path", path)

	var timer *time.Timer
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, _ := filepath.Abs(ev.Name)
			if abs != target || !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(200*time.Millisecond, run)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", "error", err)
		}
	}
}

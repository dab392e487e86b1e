package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Blackhood910/data-generator/internal/loader"
	"github.com/Blackhood910/data-generator/internal/logging"
)

var (
	loadSourceDir        string
	loadBatchSize        int
	loadNoExtendSchema   bool
	loadSkipCreateSchema bool
	loadDropExisting     bool
	loadTables           []string
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load CSV files into the database",
	Long: `Load <source-dir>/<table>.csv into each table, parents before
children. Tables without a file are skipped. Columns the table lacks are
added as nullable text columns (their values are not stored) unless
--no-extend-schema is given, in which case they are dropped. Rows whose
primary key already exists are ignored, so a failed load can be re-run
from the start.

Example:
  data-generator load --source-dir ./ag_data/clean --driver mysql --database MSk_e_com_AKGate`,
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().StringVar(&loadSourceDir, "source-dir", "",
		"directory holding <table>.csv files (default: ./ag_data/clean)")
	loadCmd.Flags().IntVar(&loadBatchSize, "batch-size", 0,
		"rows per insert (default: 5000)")
	loadCmd.Flags().BoolVar(&loadNoExtendSchema, "no-extend-schema", false,
		"drop CSV columns the table lacks instead of adding them")
	loadCmd.Flags().BoolVar(&loadSkipCreateSchema, "skip-create-schema", false,
		"do not create the tables before loading")
	loadCmd.Flags().BoolVar(&loadDropExisting, "drop-existing", false,
		"drop existing tables before loading")
	loadCmd.Flags().StringSliceVar(&loadTables, "tables", nil,
		"load only these tables (still in dependency order)")
}

func runLoad(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if loadSourceDir != "" {
		cfg.Load.SourceDir = loadSourceDir
	}
	if loadBatchSize > 0 {
		cfg.Load.BatchSize = loadBatchSize
	}
	if loadNoExtendSchema {
		cfg.Load.ExtendSchema = false
	}
	if loadSkipCreateSchema {
		cfg.Load.CreateSchema = false
	}
	if loadDropExisting {
		cfg.Load.DropExisting = true
	}

	// Validate configuration
	if err := cfg.ValidateLoad(); err != nil {
		return err
	}
	tables, err := selectTables(loadTables)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case sig := <-sigChan:
			logging.Info().
				Str("signal", sig.String()).
				Msg("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	// Drop existing schema if requested
	if cfg.Load.DropExisting {
		logging.Info().Msg("Dropping existing tables")
		if err := store.DropSchema(ctx); err != nil {
			return fmt.Errorf("failed to drop tables: %w", err)
		}
	}

	// Create schema
	if cfg.Load.CreateSchema {
		logging.Info().Msg("Creating schema")
		if err := store.CreateSchema(ctx); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	opts := loader.DefaultOptions()
	opts.BatchSize = cfg.Load.BatchSize
	opts.ExtendSchema = cfg.Load.ExtendSchema
	opts.Tables = tables

	report, err := loader.New(store, opts).Run(ctx, loader.NewDirSource(cfg.Load.SourceDir))
	printReport(cmd.OutOrStdout(), report)
	if err != nil {
		var te *loader.TableError
		if errors.As(err, &te) {
			return fmt.Errorf("load stopped at table %s; tables loaded before it were committed and the load can be re-run: %w", te.Table, err)
		}
		return err
	}
	return nil
}

func printReport(w io.Writer, report *loader.Report) {
	if report == nil {
		return
	}

	bold := color.New(color.Bold)
	ok := color.New(color.FgGreen)
	warn := color.New(color.FgYellow)
	bad := color.New(color.FgRed, color.Bold)

	fmt.Fprintln(w)
	bold.Fprintf(w, "Load %s from %s\n", report.RunID, report.Source)
	fmt.Fprintf(w, "%-22s %-8s %10s %10s  %s\n", "TABLE", "STATUS", "ROWS", "INSERTED", "SCHEMA")
	for _, t := range report.Tables {
		status := ok
		switch t.Status {
		case loader.StatusSkipped:
			status = warn
		case loader.StatusFailed:
			status = bad
		}

		var notes []string
		if len(t.Added) > 0 {
			notes = append(notes, "added "+strings.Join(t.Added, ","))
		}
		if len(t.Dropped) > 0 {
			notes = append(notes, "dropped "+strings.Join(t.Dropped, ","))
		}

		fmt.Fprintf(w, "%-22s ", t.Table)
		status.Fprintf(w, "%-8s", t.Status)
		fmt.Fprintf(w, " %10d %10d  %s\n", t.Rows, t.Inserted, strings.Join(notes, "; "))
	}
	fmt.Fprintf(w, "%d loaded, %d skipped, %d rows inserted in %s\n",
		report.Count(loader.StatusLoaded), report.Count(loader.StatusSkipped),
		report.Inserted(), report.Duration.Round(time.Millisecond))
}

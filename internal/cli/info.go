package cli

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Blackhood910/data-generator/internal/db"
	"github.com/Blackhood910/data-generator/internal/normalize"
	"github.com/Blackhood910/data-generator/internal/schema"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the table DDL for the selected driver",
	Long: `Print the CREATE statements used by 'load' for the selected driver.
PostgreSQL tables are qualified with --schema; MySQL output creates and
selects --database first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbCfg := cfg.Database.DBConfig()
		ddl, err := db.DDL(dbCfg.Driver, dbCfg.Schema, dbCfg.Database)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), ddl)
		return nil
	},
}

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List tables in load order",
	Long: `List the tables in the order 'load' processes them (parents before
children) with the columns normalized to booleans.`,
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		color.New(color.Bold).Fprintln(w, "Load order:")
		for i, t := range schema.Tables() {
			line := fmt.Sprintf("  %2d. %s", i+1, t)
			if cols, ok := normalize.BoolColumns[t]; ok {
				line += fmt.Sprintf(" (boolean: %s)", strings.Join(cols, ", "))
			}
			fmt.Fprintln(w, line)
		}
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show load metadata and row counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		w := cmd.OutOrStdout()
		bold := color.New(color.Bold)

		meta, err := store.GetAllMetadata(ctx)
		if err != nil {
			return fmt.Errorf("failed to read metadata: %w", err)
		}
		bold.Fprintln(w, "Last load:")
		if len(meta) == 0 {
			color.New(color.FgYellow).Fprintln(w, "  never loaded")
		}
		for _, k := range slices.Sorted(maps.Keys(meta)) {
			fmt.Fprintf(w, "  %-20s %s\n", k, meta[k])
		}

		fmt.Fprintln(w)
		bold.Fprintln(w, "Tables:")
		for _, t := range schema.Tables() {
			n, err := store.CountRows(ctx, t)
			if err != nil {
				color.New(color.FgRed).Fprintf(w, "  %-22s missing\n", t)
				continue
			}
			fmt.Fprintf(w, "  %-22s %d\n", t, n)
		}
		return nil
	},
}

// selectTables validates names and returns them in load order. No names
// means every table.
func selectTables(names []string) ([]string, error) {
	if len(names) == 0 {
		return schema.Tables(), nil
	}
	for _, n := range names {
		if !schema.IsTable(n) {
			return nil, fmt.Errorf("unknown table %q (see 'data-generator tables')", n)
		}
	}
	var out []string
	for _, t := range schema.Tables() {
		if slices.Contains(names, t) {
			out = append(out, t)
		}
	}
	return out, nil
}

//-------------------------------------------------------------------------
//
// AG Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package loader loads CSV datasets into the target tables: normalize,
// align to the table's columns, then insert ignoring existing keys.
package loader

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/Blackhood910/data-generator/internal/datagen"
	"github.com/Blackhood910/data-generator/internal/db"
	"github.com/Blackhood910/data-generator/internal/logging"
	"github.com/Blackhood910/data-generator/internal/normalize"
	"github.com/Blackhood910/data-generator/internal/schema"
	"github.com/Blackhood910/data-generator/pkg/version"
)

// Target is a database the loader can align against and insert into.
type Target interface {
	schema.Authority
	Begin(ctx context.Context) (db.Tx, error)
}

// metadataWriter is implemented by targets that record run metadata.
type metadataWriter interface {
	SaveMetadata(ctx context.Context, values map[string]string) error
}

// Options configures a load.
type Options struct {
	// BatchSize is the number of rows per insert call.
	BatchSize int
	// ExtendSchema adds unknown dataset columns to the table instead of
	// dropping them.
	ExtendSchema bool
	// ProgressInterval is how often to log progress (in rows).
	ProgressInterval int64
	// Tables overrides the load order. Empty means every table.
	Tables []string
}

// DefaultOptions returns the default load options.
func DefaultOptions() Options {
	batch := datagen.DefaultBatchConfig()
	return Options{
		BatchSize:        batch.BatchSize,
		ExtendSchema:     true,
		ProgressInterval: batch.ProgressInterval,
	}
}

// Loader runs loads against one target. It is not safe for concurrent use.
type Loader struct {
	target Target
	reg    *schema.Registry
	opts   Options
}

// New creates a loader.
func New(target Target, opts Options) *Loader {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultOptions().BatchSize
	}
	if len(opts.Tables) == 0 {
		opts.Tables = schema.Tables()
	}
	return &Loader{
		target: target,
		reg:    schema.NewRegistry(target),
		opts:   opts,
	}
}

// Registry returns the schema registry, which records every column added.
func (l *Loader) Registry() *schema.Registry {
	return l.reg
}

// Run loads every table in order from src. It stops at the first failing
// table; tables committed before it stay committed. The report covers
// every table attempted, including the failed one.
func (l *Loader) Run(ctx context.Context, src Source) (*Report, error) {
	report := &Report{
		RunID:     uuid.NewString(),
		Source:    src.String(),
		StartedAt: time.Now().UTC(),
	}

	logging.Info().
		Str("run_id", report.RunID).
		Str("source", report.Source).
		Int("tables", len(l.opts.Tables)).
		Bool("extend_schema", l.opts.ExtendSchema).
		Msg("Starting load")

	for _, table := range l.opts.Tables {
		if err := ctx.Err(); err != nil {
			report.Duration = time.Since(report.StartedAt)
			return report, err
		}

		tr, err := l.LoadTable(ctx, src, table)
		report.Tables = append(report.Tables, tr)
		if err != nil {
			report.Duration = time.Since(report.StartedAt)
			logging.Error().Err(err).Str("table", table).Msg("Load aborted")
			return report, err
		}
	}
	report.Duration = time.Since(report.StartedAt)

	l.saveMetadata(ctx, report)

	logging.Info().
		Str("run_id", report.RunID).
		Int("loaded", report.Count(StatusLoaded)).
		Int("skipped", report.Count(StatusSkipped)).
		Int64("inserted", report.Inserted()).
		Dur("duration", report.Duration).
		Msg("Load complete")
	return report, nil
}

// LoadTable loads a single table from src inside one transaction. A missing
// source file is not an error: the table is reported as skipped.
func (l *Loader) LoadTable(ctx context.Context, src Source, table string) (TableReport, error) {
	tr := TableReport{Table: table, Status: StatusFailed}
	log := logging.Table(table)

	ds, err := src.Read(table)
	if errors.Is(err, ErrMissingSourceFile) {
		log.Warn().Str("path", src.Location(table)).Msg("Skipping table")
		tr.Status = StatusSkipped
		return tr, nil
	}
	if err != nil {
		return tr, tableError(table, ErrReadSource, err)
	}
	tr.Rows = int64(ds.Len())

	log.Info().Int64("rows", tr.Rows).Str("path", src.Location(table)).Msg("Loading table")

	normalize.Apply(table, ds)

	alignment, err := schema.Align(ctx, l.reg, table, ds, l.opts.ExtendSchema)
	if alignment != nil {
		tr.Added = alignment.Added
		tr.Dropped = alignment.Dropped
		tr.Missing = alignment.Missing
	}
	if errors.Is(err, schema.ErrExtension) {
		return tr, tableError(table, ErrSchemaExtension, err)
	}
	if err != nil {
		return tr, tableError(table, ErrSchemaLookup, err)
	}
	if len(alignment.Added) > 0 {
		log.Info().Strs("columns", alignment.Added).Msg("Extended table schema")
	}
	if len(alignment.Dropped) > 0 {
		log.Warn().Strs("columns", alignment.Dropped).Msg("Dropping unknown columns")
	}
	if len(alignment.Missing) > 0 {
		log.Debug().Strs("columns", alignment.Missing).Msg("Filling missing columns with nulls")
	}

	inserted, err := l.insert(ctx, table, alignment.Columns, ds.Len(), ds.Args)
	tr.Inserted = inserted
	if err != nil {
		return tr, tableError(table, ErrInsert, err)
	}

	tr.Status = StatusLoaded
	log.Info().
		Int64("rows", tr.Rows).
		Int64("inserted", tr.Inserted).
		Int64("ignored", tr.Rows-tr.Inserted).
		Msg("Table committed")
	return tr, nil
}

// insert writes rows [0, n) in batches within one transaction and commits.
func (l *Loader) insert(ctx context.Context, table string, columns []string, n int,
	args func(start, end int) [][]any) (int64, error) {

	tx, err := l.target.Begin(ctx)
	if err != nil {
		return 0, err
	}

	progress := datagen.NewProgressReporter(table, "Loading data", int64(n), l.opts.ProgressInterval)
	var inserted int64
	for start := 0; start < n; start += l.opts.BatchSize {
		end := min(start+l.opts.BatchSize, n)
		count, err := tx.InsertIgnore(ctx, table, columns, args(start, end))
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				logging.Warn().Err(rbErr).Str("table", table).Msg("Rollback failed")
			}
			return inserted, err
		}
		inserted += count
		progress.Update(int64(end - start))
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	progress.Done()
	return inserted, nil
}

func (l *Loader) saveMetadata(ctx context.Context, report *Report) {
	mw, ok := l.target.(metadataWriter)
	if !ok {
		return
	}

	values := map[string]string{
		"last_run_id":        report.RunID,
		"generator_version":  version.Version,
		"loaded_at":          report.StartedAt.Format(time.RFC3339),
		"source":             report.Source,
		"tables_loaded":      strconv.Itoa(report.Count(StatusLoaded)),
		"tables_skipped":     strconv.Itoa(report.Count(StatusSkipped)),
		"rows_read":          strconv.FormatInt(report.Rows(), 10),
		"rows_inserted":      strconv.FormatInt(report.Inserted(), 10),
		"extend_schema":      strconv.FormatBool(l.opts.ExtendSchema),
		"extended_columns":   strconv.Itoa(len(l.reg.Extensions())),
		"load_duration_secs": strconv.FormatFloat(report.Duration.Seconds(), 'f', 3, 64),
	}
	if err := mw.SaveMetadata(ctx, values); err != nil {
		logging.Warn().Err(err).Msg("Failed to save load metadata")
	}
}

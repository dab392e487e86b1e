//-------------------------------------------------------------------------
//
// AG Data Generator
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package db

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Blackhood910/data-generator/internal/schema"
)

// PostgreSQL error codes mapped to schema errors.
const (
	pgDuplicateColumn = "42701"
	pgUndefinedTable  = "42P01"
)

func init() {
	Register(DriverPostgres, func(ctx context.Context, cfg Config) (Store, error) {
		pool, err := Connect(ctx, PostgresConnString(cfg))
		if err != nil {
			return nil, err
		}
		return NewPostgresStore(pool, cfg.Schema), nil
	})
}

// PostgresStore keeps the AG tables in one PostgreSQL schema.
type PostgresStore struct {
	pool   *pgxpool.Pool
	schema string
}

// NewPostgresStore wraps an existing pool. Tables live in schemaName.
func NewPostgresStore(pool *pgxpool.Pool, schemaName string) *PostgresStore {
	if schemaName == "" {
		schemaName = "public"
	}
	return &PostgresStore{pool: pool, schema: schemaName}
}

// Dialect implements Store.
func (s *PostgresStore) Dialect() Dialect { return postgresDialect }

// Pool returns the underlying connection pool.
func (s *PostgresStore) Pool() *pgxpool.Pool { return s.pool }

func (s *PostgresStore) table(name string) string {
	return postgresDialect.Quote(s.schema, name)
}

// Columns implements Store.
func (s *PostgresStore) Columns(ctx context.Context, table string) ([]string, error) {
	query, args, err := postgresDialect.Builder().
		Select("column_name").
		From("information_schema.columns").
		Where(sq.Eq{"table_schema": s.schema, "table_name": table}).
		OrderBy("ordinal_position").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	cols, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("%s.%s: %w", s.schema, table, schema.ErrUnknownTable)
	}
	return cols, nil
}

// AddColumn implements Store.
func (s *PostgresStore) AddColumn(ctx context.Context, table, column string) error {
	_, err := s.pool.Exec(ctx, postgresDialect.AddColumnSQL(s.table(table), column))
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgDuplicateColumn:
			return fmt.Errorf("%s: %w", pgErr.Message, schema.ErrColumnExists)
		case pgUndefinedTable:
			return fmt.Errorf("%s: %w", pgErr.Message, schema.ErrUnknownTable)
		}
	}
	return err
}

// Begin implements Store.
func (s *PostgresStore) Begin(ctx context.Context) (Tx, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &postgresTx{tx: tx, store: s}, nil
}

// CreateSchema implements Store.
func (s *PostgresStore) CreateSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, PostgresDDL(s.schema))
	return err
}

// DropSchema drops the AG tables and the metadata table, children first.
// The schema and any other objects in it are left alone.
func (s *PostgresStore) DropSchema(ctx context.Context) error {
	for _, table := range dropOrder() {
		if _, err := s.pool.Exec(ctx, "DROP TABLE IF EXISTS "+s.table(table)); err != nil {
			return fmt.Errorf("failed to drop %s: %w", table, err)
		}
	}
	return nil
}

// CountRows implements Store.
func (s *PostgresStore) CountRows(ctx context.Context, table string) (int64, error) {
	var n int64
	err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+s.table(table)).Scan(&n)
	return n, err
}

// Close implements Store.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

type postgresTx struct {
	tx    pgx.Tx
	store *PostgresStore
}

// InsertIgnore queues one statement per parameter-limited chunk and sends
// them as a single batch.
func (t *postgresTx) InsertIgnore(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	stmts, err := postgresDialect.InsertIgnoreStatements(t.store.table(table), columns, rows)
	if err != nil || len(stmts) == 0 {
		return 0, err
	}

	batch := &pgx.Batch{}
	for _, st := range stmts {
		batch.Queue(st.SQL, st.Args...)
	}

	br := t.tx.SendBatch(ctx, batch)
	var inserted int64
	for range stmts {
		tag, err := br.Exec()
		if err != nil {
			br.Close()
			return inserted, err
		}
		inserted += tag.RowsAffected()
	}
	return inserted, br.Close()
}

func (t *postgresTx) Commit(ctx context.Context) error   { return t.tx.Commit(ctx) }
func (t *postgresTx) Rollback(ctx context.Context) error { return t.tx.Rollback(ctx) }

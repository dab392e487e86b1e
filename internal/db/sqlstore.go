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
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"github.com/Blackhood910/data-generator/internal/logging"
	"github.com/Blackhood910/data-generator/internal/schema"
)

// MySQL error numbers mapped to schema errors.
const (
	mysqlDupFieldName = 1060
	mysqlNoSuchTable  = 1146
)

const (
	sqliteDefaultFile  = "ag_data.db"
	sqliteDSNArguments = "?_pragma=busy_timeout(5000)"
)

func init() {
	Register(DriverMySQL, OpenMySQL)
	Register(DriverSQLite, OpenSQLite)
}

// SQLStore serves MySQL and SQLite through database/sql.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
	tables  string
}

// OpenMySQL connects to MySQL, creating the database first when
// cfg.CreateDatabase is set.
func OpenMySQL(ctx context.Context, cfg Config) (Store, error) {
	if cfg.Database == "" {
		return nil, errors.New("mysql requires a database name")
	}

	if cfg.CreateDatabase {
		boot, err := sql.Open("mysql", MySQLDSN(cfg, ""))
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
		}
		stmt := SplitStatements(MySQLDDL(cfg.Database))[0]
		_, err = boot.ExecContext(ctx, stmt)
		boot.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to create database %s: %w", cfg.Database, err)
		}
	}

	conn, err := sql.Open("mysql", MySQLDSN(cfg, cfg.Database))
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}
	conn.SetMaxOpenConns(2)
	conn.SetConnMaxLifetime(15 * time.Minute)
	conn.SetConnMaxIdleTime(3 * time.Minute)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logging.Info().
		Str("host", cfg.Host).
		Str("database", cfg.Database).
		Msg("Connected to database")

	return &SQLStore{db: conn, dialect: mysqlDialect, tables: mysqlTablesSQL}, nil
}

// OpenSQLite opens (creating if needed) the SQLite file at cfg.Path.
func OpenSQLite(ctx context.Context, cfg Config) (Store, error) {
	path := cfg.Path
	if path == "" {
		path = sqliteDefaultFile
	}

	conn, err := sql.Open("sqlite", path+sqliteDSNArguments)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	// One connection keeps :memory: databases coherent and avoids
	// SQLITE_BUSY between the schema queries and the insert transaction.
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logging.Debug().Str("path", path).Msg("Opened SQLite database")

	return &SQLStore{db: conn, dialect: sqliteDialect, tables: sqliteTablesSQL}, nil
}

// Dialect implements Store.
func (s *SQLStore) Dialect() Dialect { return s.dialect }

// DB returns the underlying handle.
func (s *SQLStore) DB() *sql.DB { return s.db }

// Columns implements Store.
func (s *SQLStore) Columns(ctx context.Context, table string) ([]string, error) {
	query := "SELECT name FROM pragma_table_info(?) ORDER BY cid"
	args := []any{table}
	if s.dialect.Name == DriverMySQL {
		var err error
		query, args, err = s.dialect.Builder().
			Select("column_name").
			From("information_schema.columns").
			Where("table_schema = DATABASE()").
			Where(sq.Eq{"table_name": table}).
			OrderBy("ordinal_position").
			ToSql()
		if err != nil {
			return nil, err
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("%s: %w", table, schema.ErrUnknownTable)
	}
	return cols, nil
}

// AddColumn implements Store.
func (s *SQLStore) AddColumn(ctx context.Context, table, column string) error {
	_, err := s.db.ExecContext(ctx, s.dialect.AddColumnSQL(s.dialect.Quote(table), column))
	if err == nil {
		return nil
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlDupFieldName:
			return fmt.Errorf("%s: %w", myErr.Message, schema.ErrColumnExists)
		case mysqlNoSuchTable:
			return fmt.Errorf("%s: %w", myErr.Message, schema.ErrUnknownTable)
		}
		return err
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "duplicate column name"):
		return fmt.Errorf("%s: %w", msg, schema.ErrColumnExists)
	case strings.Contains(msg, "no such table"):
		return fmt.Errorf("%s: %w", msg, schema.ErrUnknownTable)
	}
	return err
}

// Begin implements Store.
func (s *SQLStore) Begin(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &sqlTx{tx: tx, dialect: s.dialect}, nil
}

// CreateSchema implements Store.
func (s *SQLStore) CreateSchema(ctx context.Context) error {
	for _, stmt := range SplitStatements(s.tables) {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// DropSchema drops the AG tables children-first, then the metadata table.
func (s *SQLStore) DropSchema(ctx context.Context) error {
	for _, table := range dropOrder() {
		stmt := "DROP TABLE IF EXISTS " + s.dialect.Quote(table)
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to drop %s: %w", table, err)
		}
	}
	return nil
}

// CountRows implements Store.
func (s *SQLStore) CountRows(ctx context.Context, table string) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+s.dialect.Quote(table)).Scan(&n)
	return n, err
}

// Close implements Store.
func (s *SQLStore) Close() {
	s.db.Close()
}

type sqlTx struct {
	tx      *sql.Tx
	dialect Dialect
}

func (t *sqlTx) InsertIgnore(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	stmts, err := t.dialect.InsertIgnoreStatements(t.dialect.Quote(table), columns, rows)
	if err != nil {
		return 0, err
	}

	var inserted int64
	for _, st := range stmts {
		res, err := t.tx.ExecContext(ctx, st.SQL, st.Args...)
		if err != nil {
			return inserted, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return inserted, err
		}
		inserted += n
	}
	return inserted, nil
}

func (t *sqlTx) Commit(context.Context) error   { return t.tx.Commit() }
func (t *sqlTx) Rollback(context.Context) error { return t.tx.Rollback() }

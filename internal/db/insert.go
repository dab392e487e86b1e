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
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// Statement is one built SQL statement with its arguments.
type Statement struct {
	SQL  string
	Args []any
	// Rows is the number of value tuples in the statement.
	Rows int
}

// RowsPerStatement returns how many rows of width columns fit in a single
// statement without exceeding the bind-parameter limit.
func (d Dialect) RowsPerStatement(columns int) int {
	if columns <= 0 {
		return 0
	}
	return max(1, d.MaxParams/columns)
}

// InsertIgnoreStatements builds multi-row inserts of rows into table that
// skip rows whose key already exists. table must already be quoted. The
// rows are split over as many statements as the parameter limit requires,
// keeping their order.
func (d Dialect) InsertIgnoreStatements(table string, columns []string, rows [][]any) ([]Statement, error) {
	if len(columns) == 0 {
		return nil, errors.New("insert requires at least one column")
	}
	if len(rows) == 0 {
		return nil, nil
	}

	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = d.Quote(c)
	}

	per := d.RowsPerStatement(len(columns))
	stmts := make([]Statement, 0, (len(rows)+per-1)/per)
	for start := 0; start < len(rows); start += per {
		end := min(start+per, len(rows))

		b := d.insertBuilder(table, quoted)
		for i, r := range rows[start:end] {
			if len(r) != len(columns) {
				return nil, fmt.Errorf("row %d has %d values, expected %d", start+i, len(r), len(columns))
			}
			b = b.Values(r...)
		}

		query, args, err := b.ToSql()
		if err != nil {
			return nil, fmt.Errorf("failed to build insert: %w", err)
		}
		stmts = append(stmts, Statement{SQL: query, Args: args, Rows: end - start})
	}
	return stmts, nil
}

func (d Dialect) insertBuilder(table string, columns []string) sq.InsertBuilder {
	b := d.Builder().Insert(table).Columns(columns...)
	switch d.Name {
	case DriverPostgres:
		return b.Suffix("ON CONFLICT DO NOTHING")
	case DriverMySQL:
		return b.Options("IGNORE")
	}
	return b.Options("OR IGNORE")
}

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
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

// Supported drivers.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// Dialect captures the SQL differences between the supported databases.
type Dialect struct {
	Name string
	// MaxParams is the most bind parameters one statement may carry.
	MaxParams int
}

var (
	postgresDialect = Dialect{Name: DriverPostgres, MaxParams: 65535}
	mysqlDialect    = Dialect{Name: DriverMySQL, MaxParams: 65535}
	sqliteDialect   = Dialect{Name: DriverSQLite, MaxParams: 32766}
)

// DialectFor returns the dialect of a driver name.
func DialectFor(driver string) (Dialect, bool) {
	switch driver {
	case DriverPostgres:
		return postgresDialect, true
	case DriverMySQL:
		return mysqlDialect, true
	case DriverSQLite:
		return sqliteDialect, true
	}
	return Dialect{}, false
}

// Builder returns a squirrel statement builder with the dialect's
// placeholder format.
func (d Dialect) Builder() sq.StatementBuilderType {
	if d.Name == DriverPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// Quote quotes an identifier. Multiple parts are joined with dots.
func (d Dialect) Quote(parts ...string) string {
	switch d.Name {
	case DriverPostgres:
		return pgx.Identifier(parts).Sanitize()
	case DriverMySQL:
		quoted := make([]string, len(parts))
		for i, p := range parts {
			quoted[i] = quoteBacktick(p)
		}
		return strings.Join(quoted, ".")
	}
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = `"` + strings.ReplaceAll(p, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ".")
}

func quoteBacktick(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// AddColumnSQL returns the statement adding a nullable text column.
func (d Dialect) AddColumnSQL(table, column string) string {
	return "ALTER TABLE " + table + " ADD COLUMN " + d.Quote(column) + " TEXT NULL"
}

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
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Blackhood910/data-generator/internal/schema"
)

func TestDDLCoversEveryTable(t *testing.T) {
	scripts := map[string]string{
		DriverPostgres: postgresTablesSQL,
		DriverMySQL:    mysqlTablesSQL,
		DriverSQLite:   sqliteTablesSQL,
	}
	for driver, script := range scripts {
		stmts := SplitStatements(script)
		assert.Len(t, stmts, len(schema.Tables()), driver)
		for _, table := range schema.Tables() {
			assert.Contains(t, script, "CREATE TABLE IF NOT EXISTS "+table+" (", "%s lacks %s", driver, table)
		}
	}
}

func TestPostgresDDLQualifiesTables(t *testing.T) {
	ddl := PostgresDDL("ag_oltp")
	assert.True(t, strings.HasPrefix(ddl, `CREATE SCHEMA IF NOT EXISTS "ag_oltp";`))
	assert.Contains(t, ddl, `CREATE TABLE IF NOT EXISTS "ag_oltp".orders (`)
	assert.Contains(t, ddl, "order_date_only DATE, order_time_only TIME")
	assert.NotContains(t, ddl, "CREATE TABLE IF NOT EXISTS brands")
}

func TestMySQLDDL(t *testing.T) {
	stmts := SplitStatements(MySQLDDL("ag_shop"))
	require.Greater(t, len(stmts), 2)
	assert.Equal(t,
		"CREATE DATABASE IF NOT EXISTS `ag_shop` CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci",
		stmts[0])
	assert.Equal(t, "USE `ag_shop`", stmts[1])
	assert.NotContains(t, mysqlTablesSQL, "order_date_only")
}

func TestDDLByDriver(t *testing.T) {
	_, err := DDL("oracle", "", "")
	assert.Error(t, err)

	ddl, err := DDL(DriverSQLite, "", "")
	require.NoError(t, err)
	assert.Equal(t, SQLiteDDL(), ddl)
}

func TestSplitStatements(t *testing.T) {
	got := SplitStatements("A;\n\n B ;\n;\nC")
	assert.Equal(t, []string{"A", "B", "C"}, got)
}

func TestDropOrderChildrenFirst(t *testing.T) {
	order := dropOrder()
	require.Len(t, order, len(schema.Tables())+1)
	assert.Equal(t, metadataTable, order[0])
	assert.Equal(t, "inventory", order[1])
	assert.Equal(t, "brands", order[len(order)-1])

	pos := func(name string) int { return slices.Index(order, name) }
	assert.Less(t, pos("order_items"), pos("orders"))
	assert.Less(t, pos("product_variants"), pos("products"))
}

package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Blackhood910/data-generator/internal/schema"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "100B", want: 100},
		{in: "2KB", want: 2048},
		{in: "50MB", want: 50 * 1024 * 1024},
		{in: "1.5GB", want: 1536 * 1024 * 1024},
		{in: "1TB", want: 1024 * 1024 * 1024 * 1024},
		{in: "10XB", wantErr: true},
		{in: "MB", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseSize(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectTables(t *testing.T) {
	all, err := selectTables(nil)
	require.NoError(t, err)
	assert.Equal(t, schema.Tables(), all)

	got, err := selectTables([]string{"orders", "brands", "products"})
	require.NoError(t, err)
	assert.Equal(t, []string{"brands", "products", "orders"}, got)

	_, err = selectTables([]string{"brands", "nope"})
	assert.Error(t, err)
}

func TestTablesCommand(t *testing.T) {
	out := execute(t, "tables")
	assert.Contains(t, out, " 1. brands")
	assert.Contains(t, out, "21. inventory")
	assert.Contains(t, out, "customers (boolean: repeat_customer_flag)")
}

func TestSchemaCommand(t *testing.T) {
	out := execute(t, "schema", "--driver", "postgres", "--schema", "shop")
	assert.Contains(t, out, `CREATE SCHEMA IF NOT EXISTS "shop"`)
	assert.Equal(t, 21, strings.Count(out, "CREATE TABLE IF NOT EXISTS"))
}

func TestGenerateAndLoadSQLite(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "ag_data")
	dbFile := filepath.Join(dir, "ag.db")

	out := execute(t, "generate", "--output-dir", outDir,
		"--orders", "40", "--customers", "10", "--products", "5", "--reviews", "10")
	assert.Contains(t, out, "Dataset written to")
	assert.FileExists(t, filepath.Join(outDir, "clean", "orders.csv"))

	out = execute(t, "load", "--driver", "sqlite", "--db-path", dbFile,
		"--source-dir", filepath.Join(outDir, "clean"))
	assert.Contains(t, out, "21 loaded, 0 skipped")
	assert.Contains(t, out, "added category_name")

	out = execute(t, "status", "--driver", "sqlite", "--db-path", dbFile)
	assert.Contains(t, out, "last_run_id")
	assert.Regexp(t, `orders\s+40`, out)
}

//-------------------------------------------------------------------------
//
// AG Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Blackhood910/data-generator/internal/datagen"
	"github.com/Blackhood910/data-generator/internal/dataset"
	"github.com/Blackhood910/data-generator/internal/db"
	"github.com/Blackhood910/data-generator/internal/schema"
)

func openSQLite(t *testing.T) db.Store {
	t.Helper()
	ctx := context.Background()
	store, err := db.Open(ctx, db.Config{
		Driver: db.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "ag.db"),
	})
	require.NoError(t, err)
	t.Cleanup(store.Close)
	require.NoError(t, store.CreateSchema(ctx))
	return store
}

func brands(n int) *dataset.Dataset {
	ds := dataset.New("brands", "brand_id", "brand_name", "website_url")
	for i := 1; i <= n; i++ {
		ds.Append(dataset.Int(int64(i)), dataset.Text("Brand"), dataset.Text(""))
	}
	return ds
}

func TestSQLiteReloadInsertsNothing(t *testing.T) {
	ctx := context.Background()
	store := openSQLite(t)
	src := MemorySource{"brands": brands(100)}

	opts := DefaultOptions()
	opts.Tables = []string{"brands"}
	opts.BatchSize = 30

	first, err := New(store, opts).Run(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, int64(100), first.Inserted())

	second, err := New(store, opts).Run(ctx, src)
	require.NoError(t, err)
	assert.Equal(t, int64(0), second.Inserted())

	n, err := store.CountRows(ctx, "brands")
	require.NoError(t, err)
	assert.Equal(t, int64(100), n)

	meta, err := store.GetAllMetadata(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.RunID, meta["last_run_id"])
	assert.Equal(t, "0", meta["rows_inserted"])
}

func TestSQLiteEmptyCellsStoredAsNull(t *testing.T) {
	ctx := context.Background()
	store := openSQLite(t)

	opts := DefaultOptions()
	opts.Tables = []string{"brands"}
	_, err := New(store, opts).Run(ctx, MemorySource{"brands": brands(1)})
	require.NoError(t, err)

	sqlStore := store.(*db.SQLStore)
	var nulls int
	require.NoError(t, sqlStore.DB().QueryRowContext(ctx,
		"SELECT COUNT(*) FROM brands WHERE website_url IS NULL").Scan(&nulls))
	assert.Equal(t, 1, nulls)
}

func TestSQLiteGeneratedDataset(t *testing.T) {
	ctx := context.Background()
	store := openSQLite(t)

	cfg := datagen.DefaultConfig()
	cfg.Orders = 150
	cfg.Customers = 40
	cfg.Products = 10
	cfg.Reviews = 25
	res, err := datagen.NewGenerator(cfg).Generate()
	require.NoError(t, err)

	out, err := datagen.Write(res, filepath.Join(t.TempDir(), "ag_data"), false)
	require.NoError(t, err)

	// One table without a file must only be skipped.
	require.NoError(t, os.Remove(filepath.Join(out.CleanDir, "warehouses.csv")))

	opts := DefaultOptions()
	opts.BatchSize = 64
	l := New(store, opts)
	report, err := l.Run(ctx, NewDirSource(out.CleanDir))
	require.NoError(t, err)

	assert.Len(t, report.Tables, len(schema.Tables()))
	assert.Equal(t, 1, report.Count(StatusSkipped))
	tr, _ := report.Table("warehouses")
	assert.Equal(t, StatusSkipped, tr.Status)

	assert.Contains(t, l.Registry().Extensions(), schema.Extension{Table: "products", Column: "category_name"})

	for table, want := range map[string]int{
		"products":  cfg.Products,
		"customers": cfg.Customers,
		"orders":    cfg.Orders,
		"reviews":   cfg.Reviews,
		"inventory": res.Clean["inventory"].Len(),
	} {
		n, err := store.CountRows(ctx, table)
		require.NoError(t, err)
		assert.Equal(t, int64(want), n, table)
	}

	sqlStore := store.(*db.SQLStore)
	var nonNull int
	require.NoError(t, sqlStore.DB().QueryRowContext(ctx,
		"SELECT COUNT(*) FROM products WHERE category_name IS NOT NULL").Scan(&nonNull))
	assert.Equal(t, 0, nonNull)

	var flags int
	require.NoError(t, sqlStore.DB().QueryRowContext(ctx,
		"SELECT COUNT(*) FROM product_variants WHERE mount_included_flag NOT IN (0, 1)").Scan(&flags))
	assert.Equal(t, 0, flags)

	again, err := New(store, opts).Run(ctx, NewDirSource(out.CleanDir))
	require.NoError(t, err)
	assert.Equal(t, int64(0), again.Inserted())
}

func TestSQLiteIndexColumnExtendsSchema(t *testing.T) {
	ctx := context.Background()
	store := openSQLite(t)

	dir := t.TempDir()
	csv := ",brand_id,brand_name,website_url\n0,1,Acme,\n1,2,Zed,\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "brands.csv"), []byte(csv), 0o644))

	opts := DefaultOptions()
	opts.Tables = []string{"brands"}

	report, err := New(store, opts).Run(ctx, NewDirSource(dir))
	require.NoError(t, err)
	tr, ok := report.Table("brands")
	require.True(t, ok)
	assert.Equal(t, []string{"Unnamed: 0"}, tr.Added)
	assert.Equal(t, int64(2), report.Inserted())

	cols, err := store.Columns(ctx, "brands")
	require.NoError(t, err)
	assert.Equal(t, "Unnamed: 0", cols[len(cols)-1])
}

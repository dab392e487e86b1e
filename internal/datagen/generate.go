//-------------------------------------------------------------------------
//
// AG Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"errors"
	"time"

	"github.com/Blackhood910/data-generator/internal/dataset"
	"github.com/Blackhood910/data-generator/internal/logging"
)

// Config controls the size and seed of a generated dataset.
type Config struct {
	Orders    int
	Customers int
	Products  int
	Reviews   int
	Seed      uint64

	// ProgressInterval is how often to log order progress (in orders).
	ProgressInterval int64
}

// DefaultConfig returns the default dataset dimensions.
func DefaultConfig() Config {
	return Config{
		Orders:           50000,
		Customers:        20000,
		Products:         300,
		Reviews:          50000,
		Seed:             123,
		ProgressInterval: DefaultBatchConfig().ProgressInterval,
	}
}

// Validate checks the dimensions.
func (c Config) Validate() error {
	if c.Products < 1 {
		return errors.New("products must be at least 1")
	}
	if c.Customers < 1 {
		return errors.New("customers must be at least 1")
	}
	if c.Orders < 0 || c.Reviews < 0 {
		return errors.New("orders and reviews must not be negative")
	}
	return nil
}

// Table sizes, in CSV bytes per row, used to scale a dataset to a target
// size. Ratios are relative to one order.
var tableSizes = []TableSizeInfo{
	{Name: "products", RowBytes: 300, PerProduct: 1},
	{Name: "products_clean_generated", RowBytes: 280, PerProduct: 1},
	{Name: "products_raw", RowBytes: 300, PerProduct: 1},
	{Name: "product_variants", RowBytes: 90, PerProduct: 2.5},
	{Name: "product_listings", RowBytes: 80, PerProduct: 3},
	{Name: "inventory", RowBytes: 40, PerProduct: 6},
	{Name: "orders", RowBytes: 190, PerOrder: 1},
	{Name: "orders_clean_generated", RowBytes: 190, PerOrder: 1},
	{Name: "orders_raw", RowBytes: 200, PerOrder: 1},
	{Name: "order_items", RowBytes: 110, PerOrder: 1.8},
	{Name: "order_fees", RowBytes: 30, PerOrder: 1},
	{Name: "payments", RowBytes: 45, PerOrder: 1},
	{Name: "shipments", RowBytes: 75, PerOrder: 0.9},
	{Name: "returns", RowBytes: 60, PerOrder: 0.12},
	{Name: "return_items", RowBytes: 40, PerOrder: 0.12},
	{Name: "customers", RowBytes: 110, PerOrder: 0.4},
	{Name: "reviews", RowBytes: 130, PerOrder: 1},
}

// ScaleToSize returns cfg with orders, customers and reviews sized so the
// written CSVs come to roughly targetSize bytes.
func ScaleToSize(cfg Config, targetSize int64) Config {
	calc := NewSizeCalculator(tableSizes, int64(cfg.Products))
	counts := calc.CalculateRowCounts(targetSize)

	cfg.Orders = int(counts["orders"])
	cfg.Customers = int(counts["customers"])
	cfg.Reviews = int(counts["reviews"])

	logging.Info().
		Str("target_size", FormatSize(targetSize)).
		Str("estimated_size", FormatSize(calc.EstimatedSize(counts))).
		Int("orders", cfg.Orders).
		Int("customers", cfg.Customers).
		Int("reviews", cfg.Reviews).
		Msg("Scaled dataset to target size")

	return cfg
}

// Result holds every generated table.
type Result struct {
	Config Config
	// Clean holds the canonical tables keyed by file name (no extension).
	Clean map[string]*dataset.Dataset
	// Raw holds the intentionally messy copies.
	Raw         map[string]*dataset.Dataset
	GeneratedAt time.Time
}

// Counts returns row counts of the clean tables.
func (r *Result) Counts() map[string]int {
	out := make(map[string]int, len(r.Clean))
	for name, ds := range r.Clean {
		out[name] = ds.Len()
	}
	return out
}

// Generator builds the AG dataset deterministically from a seed.
type Generator struct {
	cfg Config
	f   *Faker
}

// NewGenerator creates a generator for cfg.
func NewGenerator(cfg Config) *Generator {
	return &Generator{cfg: cfg, f: NewFakerWithSeed(cfg.Seed)}
}

// Generate builds every table in memory.
func (g *Generator) Generate() (*Result, error) {
	if err := g.cfg.Validate(); err != nil {
		return nil, err
	}

	logging.Info().
		Int("orders", g.cfg.Orders).
		Int("customers", g.cfg.Customers).
		Int("products", g.cfg.Products).
		Int("reviews", g.cfg.Reviews).
		Uint64("seed", g.cfg.Seed).
		Msg("Generating dataset")

	ref := referenceTables()
	cat := g.catalog()
	listings := g.listings(cat)
	customers := g.customers()
	sales := g.orders(cat)
	reviews := g.reviews(cat)
	warehouses, inventory := g.inventory(cat)

	rawProducts := g.rawProducts(cat.products)
	rawOrders := g.rawOrders(sales.orders)
	cleanProducts := cleanProducts(rawProducts)

	res := &Result{
		Config:      g.cfg,
		GeneratedAt: time.Now().UTC(),
		Clean: map[string]*dataset.Dataset{
			"brands":                   ref.brands,
			"platforms":                ref.platforms,
			"categories":               ref.categories,
			"marketplace_accounts":     ref.accounts,
			"platform_fees":            ref.fees,
			"products_clean_generated": cat.products,
			"products":                 cleanProducts,
			"product_variants":         cat.variants,
			"product_listings":         listings.listings,
			"listing_prices":           listings.prices,
			"channel_inventory":        listings.inventory,
			"customers":                customers,
			"orders":                   sales.orders,
			"orders_clean_generated":   sales.orders.Clone(),
			"order_items":              sales.items,
			"order_fees":               sales.fees,
			"payments":                 sales.payments,
			"shipments":                sales.shipments,
			"returns":                  sales.returns,
			"return_items":             sales.returnItems,
			"reviews":                  reviews,
			"warehouses":               warehouses,
			"inventory":                inventory,
		},
		Raw: map[string]*dataset.Dataset{
			"products_raw": rawProducts,
			"orders_raw":   rawOrders,
		},
	}
	for name, ds := range res.Clean {
		ds.Name = name
	}
	for name, ds := range res.Raw {
		ds.Name = name
	}
	return res, nil
}

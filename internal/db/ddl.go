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
	"fmt"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/Blackhood910/data-generator/internal/schema"
)

// postgresTablesSQL holds the AG OLTP tables for PostgreSQL. Table names
// are unqualified; PostgresDDL places them in a schema.
const postgresTablesSQL = `
CREATE TABLE IF NOT EXISTS brands (
  brand_id INT PRIMARY KEY, brand_name TEXT NOT NULL, website_url TEXT
);

CREATE TABLE IF NOT EXISTS platforms (
  platform_id INT PRIMARY KEY, platform_code TEXT NOT NULL, platform_name TEXT NOT NULL, region TEXT
);

CREATE TABLE IF NOT EXISTS categories (
  category_id INT PRIMARY KEY, parent_category_id INT NULL, category_name TEXT NOT NULL, category_path TEXT
);

CREATE TABLE IF NOT EXISTS products (
  product_id INT PRIMARY KEY, sku TEXT, product_name TEXT NOT NULL, category_id INT, brand_id INT,
  actual_price NUMERIC(10,2), discounted_price NUMERIC(10,2), discount_percentage NUMERIC(6,4),
  rating NUMERIC(3,2), rating_count INT, about_product TEXT, img_link TEXT, product_link TEXT,
  status TEXT, unit_cost NUMERIC(10,2), default_list_price NUMERIC(10,2)
);

CREATE TABLE IF NOT EXISTS product_variants (
  variant_id INT PRIMARY KEY, product_id INT, variant_sku TEXT, size_code TEXT,
  width_mm INT, height_mm INT, frame_material TEXT, frame_finish TEXT, frame_profile TEXT, glazing_type TEXT,
  mount_included_flag BOOLEAN, mount_color TEXT, backing_type TEXT, orientation TEXT,
  unit_cost NUMERIC(10,2), default_list_price NUMERIC(10,2), weight_kg NUMERIC(8,2),
  package_length_mm INT, package_width_mm INT, package_height_mm INT, status TEXT
);

CREATE TABLE IF NOT EXISTS marketplace_accounts (
  account_id INT PRIMARY KEY, platform_id INT, merchant_slug TEXT, default_currency TEXT
);

CREATE TABLE IF NOT EXISTS product_listings (
  listing_id INT PRIMARY KEY, product_id INT, variant_id INT NULL, platform_id INT, account_id INT,
  listing_sku TEXT, title TEXT, subtitle TEXT, description_html TEXT, bullets_json JSON,
  main_image_url TEXT, additional_images_json JSON,
  amazon_asin TEXT, amazon_marketplace_id TEXT, amazon_fulfilment_channel TEXT,
  ebay_item_id TEXT, ebay_listing_type TEXT, ebay_condition_id INT, ebay_category_id INT, is_active BOOLEAN
);

CREATE TABLE IF NOT EXISTS listing_prices (
  price_id INT PRIMARY KEY, listing_id INT, currency TEXT, listing_price NUMERIC(10,2),
  sale_price NUMERIC(10,2), valid_from DATE, valid_to DATE NULL
);

CREATE TABLE IF NOT EXISTS platform_fees (
  platform_fee_id INT PRIMARY KEY, platform_id INT, fee_type TEXT, fee_percent NUMERIC(6,4), fee_flat_amount NUMERIC(10,2)
);

CREATE TABLE IF NOT EXISTS channel_inventory (
  channel_inventory_id INT PRIMARY KEY, listing_id INT, on_hand_qty INT, reserved_qty INT, backorder_qty INT
);

CREATE TABLE IF NOT EXISTS customers (
  customer_id INT PRIMARY KEY, first_name TEXT, last_name TEXT, email TEXT, phone TEXT, gender TEXT, age_group TEXT, region TEXT,
  signup_source TEXT, preferred_platform TEXT, repeat_customer_flag BOOLEAN
);

CREATE TABLE IF NOT EXISTS orders (
  order_id INT PRIMARY KEY, order_number TEXT, order_date TIMESTAMP,
  order_date_only DATE, order_time_only TIME,
  platform_id INT, account_id INT, customer_id INT, currency TEXT,
  subtotal_amount NUMERIC(12,2), discount_amount NUMERIC(12,2), tax_amount NUMERIC(12,2), shipping_amount NUMERIC(12,2),
  channel_fee_amount NUMERIC(12,2), total_amount NUMERIC(12,2), order_status TEXT, delivery_days INT NULL
);

CREATE TABLE IF NOT EXISTS order_items (
  order_item_id INT PRIMARY KEY, order_id INT, line_number INT, product_id INT, variant_id INT, listing_id INT,
  quantity INT, unit_price NUMERIC(12,2), line_subtotal NUMERIC(12,2), line_discount NUMERIC(12,2),
  line_tax NUMERIC(12,2), line_total NUMERIC(12,2), unit_cost NUMERIC(12,2), margin_amount NUMERIC(12,2)
);

CREATE TABLE IF NOT EXISTS order_fees (
  order_fee_id INT PRIMARY KEY, order_id INT, platform_id INT, fee_type TEXT, fee_amount NUMERIC(12,2)
);

CREATE TABLE IF NOT EXISTS payments (
  payment_id INT PRIMARY KEY, order_id INT, payment_method TEXT, provider_txn_id TEXT, amount NUMERIC(12,2), status TEXT
);

CREATE TABLE IF NOT EXISTS shipments (
  shipment_id INT PRIMARY KEY, order_id INT, carrier TEXT, tracking_number TEXT, shipped_at TIMESTAMP, delivered_at TIMESTAMP NULL, delivery_status TEXT
);

CREATE TABLE IF NOT EXISTS returns (
  return_id INT PRIMARY KEY, order_id INT, return_number TEXT, status TEXT, initiated_at TIMESTAMP
);

CREATE TABLE IF NOT EXISTS return_items (
  return_item_id INT PRIMARY KEY, return_id INT, order_item_id INT, quantity_returned INT, return_reason TEXT, refund_amount NUMERIC(12,2)
);

CREATE TABLE IF NOT EXISTS reviews (
  review_id TEXT PRIMARY KEY, product_id INT, variant_id INT NULL, source_platform TEXT, user_id TEXT, user_name TEXT, review_title TEXT, review_content TEXT, rating INT
);

CREATE TABLE IF NOT EXISTS warehouses (
  warehouse_id INT PRIMARY KEY, warehouse_code TEXT, warehouse_name TEXT, city TEXT, country TEXT
);

CREATE TABLE IF NOT EXISTS inventory (
  inventory_id INT PRIMARY KEY, variant_id INT, warehouse_id INT, on_hand_qty INT, reserved_qty INT, reorder_point INT, safety_stock INT
);
`

// mysqlTablesSQL is the MySQL layout. It predates the split order date and
// time columns, which the loader adds on first load.
const mysqlTablesSQL = `
CREATE TABLE IF NOT EXISTS brands (
  brand_id INT PRIMARY KEY,
  brand_name TEXT NOT NULL,
  website_url TEXT
);

CREATE TABLE IF NOT EXISTS platforms (
  platform_id INT PRIMARY KEY,
  platform_code VARCHAR(32) NOT NULL,
  platform_name VARCHAR(128) NOT NULL,
  region VARCHAR(64)
);

CREATE TABLE IF NOT EXISTS categories (
  category_id INT PRIMARY KEY,
  parent_category_id INT NULL,
  category_name VARCHAR(128) NOT NULL,
  category_path VARCHAR(256)
);

CREATE TABLE IF NOT EXISTS products (
  product_id INT PRIMARY KEY,
  sku VARCHAR(64),
  product_name VARCHAR(256) NOT NULL,
  category_id INT,
  brand_id INT,
  actual_price DECIMAL(10,2),
  discounted_price DECIMAL(10,2),
  discount_percentage DECIMAL(6,4),
  rating DECIMAL(3,2),
  rating_count INT,
  about_product TEXT,
  img_link TEXT,
  product_link TEXT,
  status VARCHAR(32),
  unit_cost DECIMAL(10,2),
  default_list_price DECIMAL(10,2)
);

CREATE TABLE IF NOT EXISTS product_variants (
  variant_id INT PRIMARY KEY,
  product_id INT,
  variant_sku VARCHAR(64),
  size_code VARCHAR(32),
  width_mm INT, height_mm INT,
  frame_material VARCHAR(64),
  frame_finish VARCHAR(64),
  frame_profile VARCHAR(64),
  glazing_type VARCHAR(64),
  mount_included_flag TINYINT(1),
  mount_color VARCHAR(64),
  backing_type VARCHAR(64),
  orientation VARCHAR(32),
  unit_cost DECIMAL(10,2),
  default_list_price DECIMAL(10,2),
  weight_kg DECIMAL(8,2),
  package_length_mm INT,
  package_width_mm INT,
  package_height_mm INT,
  status VARCHAR(32)
);

CREATE TABLE IF NOT EXISTS marketplace_accounts (
  account_id INT PRIMARY KEY,
  platform_id INT,
  merchant_slug VARCHAR(128),
  default_currency VARCHAR(8)
);

CREATE TABLE IF NOT EXISTS product_listings (
  listing_id INT PRIMARY KEY,
  product_id INT,
  variant_id INT NULL,
  platform_id INT,
  account_id INT,
  listing_sku VARCHAR(128),
  title VARCHAR(256),
  subtitle VARCHAR(256),
  description_html TEXT,
  bullets_json JSON,
  main_image_url TEXT,
  additional_images_json JSON,
  amazon_asin VARCHAR(16),
  amazon_marketplace_id VARCHAR(32),
  amazon_fulfilment_channel VARCHAR(8),
  ebay_item_id VARCHAR(32),
  ebay_listing_type VARCHAR(32),
  ebay_condition_id INT,
  ebay_category_id INT,
  is_active TINYINT(1)
);

CREATE TABLE IF NOT EXISTS listing_prices (
  price_id INT PRIMARY KEY,
  listing_id INT,
  currency VARCHAR(8),
  listing_price DECIMAL(10,2),
  sale_price DECIMAL(10,2),
  valid_from DATE,
  valid_to DATE NULL
);

CREATE TABLE IF NOT EXISTS platform_fees (
  platform_fee_id INT PRIMARY KEY,
  platform_id INT,
  fee_type VARCHAR(64),
  fee_percent DECIMAL(6,4),
  fee_flat_amount DECIMAL(10,2)
);

CREATE TABLE IF NOT EXISTS channel_inventory (
  channel_inventory_id INT PRIMARY KEY,
  listing_id INT,
  on_hand_qty INT,
  reserved_qty INT,
  backorder_qty INT
);

CREATE TABLE IF NOT EXISTS customers (
  customer_id INT PRIMARY KEY,
  first_name VARCHAR(64),
  last_name VARCHAR(64),
  email VARCHAR(256),
  phone VARCHAR(64),
  gender VARCHAR(32),
  age_group VARCHAR(32),
  region VARCHAR(64),
  signup_source VARCHAR(64),
  preferred_platform VARCHAR(16),
  repeat_customer_flag TINYINT(1)
);

CREATE TABLE IF NOT EXISTS orders (
  order_id INT PRIMARY KEY,
  order_number VARCHAR(64),
  order_date DATETIME,
  platform_id INT,
  account_id INT,
  customer_id INT,
  currency VARCHAR(8),
  subtotal_amount DECIMAL(12,2),
  discount_amount DECIMAL(12,2),
  tax_amount DECIMAL(12,2),
  shipping_amount DECIMAL(12,2),
  channel_fee_amount DECIMAL(12,2),
  total_amount DECIMAL(12,2),
  order_status VARCHAR(32),
  delivery_days INT NULL
);

CREATE TABLE IF NOT EXISTS order_items (
  order_item_id INT PRIMARY KEY,
  order_id INT,
  line_number INT,
  product_id INT,
  variant_id INT,
  listing_id INT,
  quantity INT,
  unit_price DECIMAL(12,2),
  line_subtotal DECIMAL(12,2),
  line_discount DECIMAL(12,2),
  line_tax DECIMAL(12,2),
  line_total DECIMAL(12,2),
  unit_cost DECIMAL(12,2),
  margin_amount DECIMAL(12,2)
);

CREATE TABLE IF NOT EXISTS order_fees (
  order_fee_id INT PRIMARY KEY,
  order_id INT,
  platform_id INT,
  fee_type VARCHAR(64),
  fee_amount DECIMAL(12,2)
);

CREATE TABLE IF NOT EXISTS payments (
  payment_id INT PRIMARY KEY,
  order_id INT,
  payment_method VARCHAR(32),
  provider_txn_id VARCHAR(64),
  amount DECIMAL(12,2),
  status VARCHAR(32)
);

CREATE TABLE IF NOT EXISTS shipments (
  shipment_id INT PRIMARY KEY,
  order_id INT,
  carrier VARCHAR(64),
  tracking_number VARCHAR(64),
  shipped_at DATETIME,
  delivered_at DATETIME NULL,
  delivery_status VARCHAR(32)
);

CREATE TABLE IF NOT EXISTS returns (
  return_id INT PRIMARY KEY,
  order_id INT,
  return_number VARCHAR(64),
  status VARCHAR(32),
  initiated_at DATETIME
);

CREATE TABLE IF NOT EXISTS return_items (
  return_item_id INT PRIMARY KEY,
  return_id INT,
  order_item_id INT,
  quantity_returned INT,
  return_reason VARCHAR(64),
  refund_amount DECIMAL(12,2)
);

CREATE TABLE IF NOT EXISTS reviews (
  review_id VARCHAR(32) PRIMARY KEY,
  product_id INT,
  variant_id INT NULL,
  source_platform VARCHAR(16),
  user_id VARCHAR(32),
  user_name VARCHAR(128),
  review_title VARCHAR(256),
  review_content TEXT,
  rating INT
);

CREATE TABLE IF NOT EXISTS warehouses (
  warehouse_id INT PRIMARY KEY,
  warehouse_code VARCHAR(32),
  warehouse_name VARCHAR(128),
  city VARCHAR(128),
  country VARCHAR(64)
);

CREATE TABLE IF NOT EXISTS inventory (
  inventory_id INT PRIMARY KEY,
  variant_id INT,
  warehouse_id INT,
  on_hand_qty INT,
  reserved_qty INT,
  reorder_point INT,
  safety_stock INT
);
`

// sqliteTablesSQL follows the PostgreSQL layout with SQLite type affinities.
const sqliteTablesSQL = `
CREATE TABLE IF NOT EXISTS brands (
  brand_id INTEGER PRIMARY KEY, brand_name TEXT NOT NULL, website_url TEXT
);

CREATE TABLE IF NOT EXISTS platforms (
  platform_id INTEGER PRIMARY KEY, platform_code TEXT NOT NULL, platform_name TEXT NOT NULL, region TEXT
);

CREATE TABLE IF NOT EXISTS categories (
  category_id INTEGER PRIMARY KEY, parent_category_id INTEGER NULL, category_name TEXT NOT NULL, category_path TEXT
);

CREATE TABLE IF NOT EXISTS products (
  product_id INTEGER PRIMARY KEY, sku TEXT, product_name TEXT NOT NULL, category_id INTEGER, brand_id INTEGER,
  actual_price NUMERIC, discounted_price NUMERIC, discount_percentage NUMERIC,
  rating NUMERIC, rating_count INTEGER, about_product TEXT, img_link TEXT, product_link TEXT,
  status TEXT, unit_cost NUMERIC, default_list_price NUMERIC
);

CREATE TABLE IF NOT EXISTS product_variants (
  variant_id INTEGER PRIMARY KEY, product_id INTEGER, variant_sku TEXT, size_code TEXT,
  width_mm INTEGER, height_mm INTEGER, frame_material TEXT, frame_finish TEXT, frame_profile TEXT, glazing_type TEXT,
  mount_included_flag INTEGER, mount_color TEXT, backing_type TEXT, orientation TEXT,
  unit_cost NUMERIC, default_list_price NUMERIC, weight_kg NUMERIC,
  package_length_mm INTEGER, package_width_mm INTEGER, package_height_mm INTEGER, status TEXT
);

CREATE TABLE IF NOT EXISTS marketplace_accounts (
  account_id INTEGER PRIMARY KEY, platform_id INTEGER, merchant_slug TEXT, default_currency TEXT
);

CREATE TABLE IF NOT EXISTS product_listings (
  listing_id INTEGER PRIMARY KEY, product_id INTEGER, variant_id INTEGER NULL, platform_id INTEGER, account_id INTEGER,
  listing_sku TEXT, title TEXT, subtitle TEXT, description_html TEXT, bullets_json TEXT,
  main_image_url TEXT, additional_images_json TEXT,
  amazon_asin TEXT, amazon_marketplace_id TEXT, amazon_fulfilment_channel TEXT,
  ebay_item_id TEXT, ebay_listing_type TEXT, ebay_condition_id INTEGER, ebay_category_id INTEGER, is_active INTEGER
);

CREATE TABLE IF NOT EXISTS listing_prices (
  price_id INTEGER PRIMARY KEY, listing_id INTEGER, currency TEXT, listing_price NUMERIC,
  sale_price NUMERIC, valid_from TEXT, valid_to TEXT NULL
);

CREATE TABLE IF NOT EXISTS platform_fees (
  platform_fee_id INTEGER PRIMARY KEY, platform_id INTEGER, fee_type TEXT, fee_percent NUMERIC, fee_flat_amount NUMERIC
);

CREATE TABLE IF NOT EXISTS channel_inventory (
  channel_inventory_id INTEGER PRIMARY KEY, listing_id INTEGER, on_hand_qty INTEGER, reserved_qty INTEGER, backorder_qty INTEGER
);

CREATE TABLE IF NOT EXISTS customers (
  customer_id INTEGER PRIMARY KEY, first_name TEXT, last_name TEXT, email TEXT, phone TEXT, gender TEXT, age_group TEXT, region TEXT,
  signup_source TEXT, preferred_platform TEXT, repeat_customer_flag INTEGER
);

CREATE TABLE IF NOT EXISTS orders (
  order_id INTEGER PRIMARY KEY, order_number TEXT, order_date TEXT,
  order_date_only TEXT, order_time_only TEXT,
  platform_id INTEGER, account_id INTEGER, customer_id INTEGER, currency TEXT,
  subtotal_amount NUMERIC, discount_amount NUMERIC, tax_amount NUMERIC, shipping_amount NUMERIC,
  channel_fee_amount NUMERIC, total_amount NUMERIC, order_status TEXT, delivery_days INTEGER NULL
);

CREATE TABLE IF NOT EXISTS order_items (
  order_item_id INTEGER PRIMARY KEY, order_id INTEGER, line_number INTEGER, product_id INTEGER, variant_id INTEGER, listing_id INTEGER,
  quantity INTEGER, unit_price NUMERIC, line_subtotal NUMERIC, line_discount NUMERIC,
  line_tax NUMERIC, line_total NUMERIC, unit_cost NUMERIC, margin_amount NUMERIC
);

CREATE TABLE IF NOT EXISTS order_fees (
  order_fee_id INTEGER PRIMARY KEY, order_id INTEGER, platform_id INTEGER, fee_type TEXT, fee_amount NUMERIC
);

CREATE TABLE IF NOT EXISTS payments (
  payment_id INTEGER PRIMARY KEY, order_id INTEGER, payment_method TEXT, provider_txn_id TEXT, amount NUMERIC, status TEXT
);

CREATE TABLE IF NOT EXISTS shipments (
  shipment_id INTEGER PRIMARY KEY, order_id INTEGER, carrier TEXT, tracking_number TEXT, shipped_at TEXT, delivered_at TEXT NULL, delivery_status TEXT
);

CREATE TABLE IF NOT EXISTS returns (
  return_id INTEGER PRIMARY KEY, order_id INTEGER, return_number TEXT, status TEXT, initiated_at TEXT
);

CREATE TABLE IF NOT EXISTS return_items (
  return_item_id INTEGER PRIMARY KEY, return_id INTEGER, order_item_id INTEGER, quantity_returned INTEGER, return_reason TEXT, refund_amount NUMERIC
);

CREATE TABLE IF NOT EXISTS reviews (
  review_id TEXT PRIMARY KEY, product_id INTEGER, variant_id INTEGER NULL, source_platform TEXT, user_id TEXT, user_name TEXT, review_title TEXT, review_content TEXT, rating INTEGER
);

CREATE TABLE IF NOT EXISTS warehouses (
  warehouse_id INTEGER PRIMARY KEY, warehouse_code TEXT, warehouse_name TEXT, city TEXT, country TEXT
);

CREATE TABLE IF NOT EXISTS inventory (
  inventory_id INTEGER PRIMARY KEY, variant_id INTEGER, warehouse_id INTEGER, on_hand_qty INTEGER, reserved_qty INTEGER, reorder_point INTEGER, safety_stock INTEGER
);
`

// PostgresDDL returns the PostgreSQL DDL with every table qualified by
// schemaName, preceded by the CREATE SCHEMA statement.
func PostgresDDL(schemaName string) string {
	ident := pgx.Identifier{schemaName}.Sanitize()
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE SCHEMA IF NOT EXISTS %s;\n", ident)
	b.WriteString(strings.ReplaceAll(postgresTablesSQL,
		"CREATE TABLE IF NOT EXISTS ", "CREATE TABLE IF NOT EXISTS "+ident+"."))
	return b.String()
}

// MySQLDDL returns the MySQL DDL, preceded by CREATE DATABASE and USE for
// database.
func MySQLDDL(database string) string {
	ident := quoteBacktick(database)
	return fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci;\nUSE %s;\n%s",
		ident, ident, mysqlTablesSQL)
}

// SQLiteDDL returns the SQLite DDL.
func SQLiteDDL() string {
	return sqliteTablesSQL
}

// DDL returns the schema script for a driver, as printed by the schema
// command.
func DDL(driver, schemaName, database string) (string, error) {
	switch driver {
	case DriverPostgres:
		return PostgresDDL(schemaName), nil
	case DriverMySQL:
		return MySQLDDL(database), nil
	case DriverSQLite:
		return SQLiteDDL(), nil
	}
	return "", fmt.Errorf("unknown driver: %s", driver)
}

// SplitStatements splits a script on statement-terminating semicolons at
// line ends. Blank statements are skipped.
func SplitStatements(script string) []string {
	var out []string
	for _, stmt := range strings.Split(script, ";\n") {
		s := strings.TrimSpace(stmt)
		s = strings.TrimSuffix(s, ";")
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// dropOrder lists the tables DropSchema removes: the metadata table, then
// the AG tables children first. Nothing else in the schema is touched.
func dropOrder() []string {
	tables := append(schema.Tables(), metadataTable)
	slices.Reverse(tables)
	return tables
}

//-------------------------------------------------------------------------
//
// AG Data Generator
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package schema

import "slices"

// tables lists the AG OLTP tables parents-first, so foreign keys are always
// satisfiable when loading in this order.
var tables = []string{
	"brands", "platforms", "categories", "platform_fees", "marketplace_accounts",
	"products", "product_variants", "product_listings", "listing_prices", "channel_inventory",
	"customers",
	"orders", "order_items", "order_fees", "payments", "shipments", "returns", "return_items",
	"reviews",
	"warehouses", "inventory",
}

// Tables returns the table names in load order.
func Tables() []string {
	return slices.Clone(tables)
}

// IsTable reports whether name is one of the AG tables.
func IsTable(name string) bool {
	return slices.Contains(tables, name)
}

//-------------------------------------------------------------------------
//
// AG Data Generator
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package schema

import (
	"slices"
	"testing"
)

func TestTablesOrder(t *testing.T) {
	order := Tables()
	if len(order) != 21 {
		t.Fatalf("Expected 21 tables, got %d", len(order))
	}

	before := [][2]string{
		{"brands", "products"},
		{"categories", "products"},
		{"products", "product_variants"},
		{"product_variants", "product_listings"},
		{"customers", "orders"},
		{"orders", "order_items"},
		{"order_items", "return_items"},
		{"returns", "return_items"},
		{"warehouses", "inventory"},
	}
	for _, pair := range before {
		if slices.Index(order, pair[0]) > slices.Index(order, pair[1]) {
			t.Errorf("Expected %s before %s", pair[0], pair[1])
		}
	}
}

func TestTablesReturnsCopy(t *testing.T) {
	a := Tables()
	a[0] = "mutated"
	if Tables()[0] != "brands" {
		t.Error("Tables() should return a copy")
	}
	if !IsTable("orders") || IsTable("mutated") {
		t.Error("IsTable mismatch")
	}
}

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
	"strings"

	"github.com/Blackhood910/data-generator/internal/dataset"
)

// Layouts used for messy order dates in the raw export.
var rawDateLayouts = []string{
	"2006-01-02 15:04:05",
	"02/01/2006 15:04",
	"02-Jan-2006",
	"2006/01/02",
}

var rawOrderMoneyColumns = []string{
	"subtotal_amount", "discount_amount", "tax_amount",
	"shipping_amount", "channel_fee_amount", "total_amount",
}

// poundify renders v as text, prefixed with a pound sign with probability p.
func (g *Generator) poundify(p float64) func(dataset.Value) dataset.Value {
	return func(v dataset.Value) dataset.Value {
		if g.f.Chance(p) {
			return txt("£" + v.String())
		}
		return txt(v.String())
	}
}

// rawProducts copies products with string prices, messy category names and
// some ratings knocked out.
func (g *Generator) rawProducts(products *dataset.Dataset) *dataset.Dataset {
	raw := products.Clone()
	raw.Name = "products_raw"

	raw.MapColumn("actual_price", g.poundify(0.7))
	raw.MapColumn("discounted_price", g.poundify(0.7))

	raw.SetColumn("category_name", null())
	for _, r := range raw.Rows {
		id, _ := r["category_id"].Int64()
		name := categoryNames[id-1]
		if g.f.Chance(0.5) {
			r["category_name"] = txt(" " + strings.ToLower(name) + " ")
		} else {
			r["category_name"] = txt(strings.ToUpper(name))
		}
	}

	for _, r := range raw.Rows {
		if g.f.Chance(0.05) {
			r["rating"] = null()
		}
	}
	return raw
}

// rawOrders copies orders with mixed date layouts and string amounts.
func (g *Generator) rawOrders(orders *dataset.Dataset) *dataset.Dataset {
	raw := orders.Clone()
	raw.Name = "orders_raw"

	raw.MapColumn("order_date", func(v dataset.Value) dataset.Value {
		ts, ok := v.Timestamp()
		if !ok {
			return v
		}
		return txt(ts.Format(Choose(g.f, rawDateLayouts)))
	})
	for _, c := range rawOrderMoneyColumns {
		raw.MapColumn(c, g.poundify(0.3))
	}
	return raw
}

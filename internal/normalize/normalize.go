//-------------------------------------------------------------------------
//
// AG Data Generator
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package normalize canonicalizes dataset cells before they are written to
// a database.
package normalize

import (
	"strings"

	"github.com/Blackhood910/data-generator/internal/dataset"
)

// BoolColumns lists, per table, the columns coerced to strict booleans.
var BoolColumns = map[string][]string{
	"product_variants": {"mount_included_flag"},
	"product_listings": {"is_active"},
	"customers":        {"repeat_customer_flag"},
}

var nullText = map[string]struct{}{
	"":     {},
	"nan":  {},
	"NaN":  {},
	"None": {},
}

var trueText = map[string]struct{}{
	"true": {},
	"1":    {},
	"t":    {},
	"yes":  {},
	"y":    {},
}

// IsNullLike reports whether v should be stored as a null.
func IsNullLike(v dataset.Value) bool {
	if v.IsNull() || v.IsNaNOrInf() {
		return true
	}
	if s, ok := v.Str(); ok {
		_, hit := nullText[s]
		return hit
	}
	return false
}

// ToBool maps v to a strict boolean. Only the lower-cased textual forms
// true, 1, t, yes and y are true; null and anything else are false.
// Surrounding whitespace is not trimmed, so " yes" is false.
func ToBool(v dataset.Value) bool {
	if b, ok := v.Boolean(); ok {
		return b
	}
	if v.IsNull() {
		return false
	}
	_, hit := trueText[strings.ToLower(v.String())]
	return hit
}

// Nulls replaces every null-like cell of ds with the null marker.
func Nulls(ds *dataset.Dataset) {
	for _, row := range ds.Rows {
		for _, c := range ds.Columns {
			if v := row[c]; !v.IsNull() && IsNullLike(v) {
				row[c] = dataset.Null()
			}
		}
	}
}

// Booleans coerces the configured boolean columns of table that ds
// carries. Columns not present in ds are skipped.
func Booleans(table string, ds *dataset.Dataset) {
	for _, c := range BoolColumns[table] {
		ds.MapColumn(c, func(v dataset.Value) dataset.Value {
			return dataset.Bool(ToBool(v))
		})
	}
}

// Apply runs null normalization then boolean coercion.
func Apply(table string, ds *dataset.Dataset) {
	Nulls(ds)
	Booleans(table, ds)
}

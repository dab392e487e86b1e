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
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Blackhood910/data-generator/internal/dataset"
)

// Rating used when a category has no known ratings at all.
const fallbackRating = 4.2

// ParseMoney parses a price such as "£1,234.50". Empty or unparseable
// input yields null.
func ParseMoney(v dataset.Value) dataset.Value {
	if f, ok := v.Float64(); ok {
		return flt(Round(f, 2))
	}
	s, ok := v.Str()
	if !ok {
		return null()
	}
	s = strings.TrimSpace(strings.NewReplacer("£", "", ",", "").Replace(s))
	if s == "" {
		return null()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return null()
	}
	return flt(Round(f, 2))
}

// StandardizeTitle trims s and title-cases each word.
func StandardizeTitle(s string) string {
	return cases.Title(language.English).String(strings.TrimSpace(s))
}

// cleanProducts turns the raw product export back into a loadable table.
// The result keeps category_name, which the products table does not have.
func cleanProducts(raw *dataset.Dataset) *dataset.Dataset {
	ds := raw.Clone()
	ds.Name = "products"

	ds.MapColumn("actual_price", ParseMoney)
	ds.MapColumn("discounted_price", ParseMoney)

	for _, r := range ds.Rows {
		actual, okA := r["actual_price"].Float64()
		disc, okD := r["discounted_price"].Float64()
		if !okA || !okD || actual == 0 {
			r["discount_percentage"] = null()
			continue
		}
		r["discount_percentage"] = flt(Round(Clip(1-disc/actual, 0, 0.9), 4))
	}

	ds.MapColumn("category_name", func(v dataset.Value) dataset.Value {
		if v.IsNull() {
			return v
		}
		return txt(StandardizeTitle(v.String()))
	})

	fillRatings(ds)
	return ds
}

// fillRatings clips ratings to [1, 5] and fills gaps with the rounded mean
// rating of the product's category.
func fillRatings(ds *dataset.Dataset) {
	type acc struct {
		sum float64
		n   int
	}
	means := make(map[int64]*acc)

	ratings := make([]dataset.Value, ds.Len())
	for i, r := range ds.Rows {
		rating := ParseRating(r["rating"])
		ratings[i] = rating
		cat, _ := r["category_id"].Int64()
		a := means[cat]
		if a == nil {
			a = &acc{}
			means[cat] = a
		}
		if f, ok := rating.Float64(); ok {
			a.sum += f
			a.n++
		}
	}

	for i, r := range ds.Rows {
		if !ratings[i].IsNull() {
			r["rating"] = ratings[i]
			continue
		}
		cat, _ := r["category_id"].Int64()
		fill := fallbackRating
		if a := means[cat]; a != nil && a.n > 0 {
			fill = Round(a.sum/float64(a.n), 2)
		}
		r["rating"] = flt(fill)
	}
}

// ParseRating coerces v to a rating in [1, 5]; anything non-numeric is null.
func ParseRating(v dataset.Value) dataset.Value {
	f, ok := v.Float64()
	if !ok {
		s, isText := v.Str()
		if !isText {
			return null()
		}
		var err error
		if f, err = strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
			return null()
		}
	}
	if math.IsNaN(f) {
		return null()
	}
	return flt(Clip(f, 1, 5))
}

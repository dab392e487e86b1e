//-------------------------------------------------------------------------
//
// AG Data Generator
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package dataset

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueString(t *testing.T) {
	ts := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"null", Null(), "None"},
		{"text", Text("abc"), "abc"},
		{"int", Int(42), "42"},
		{"float", Float(12.5), "12.5"},
		{"nan", Float(math.NaN()), "nan"},
		{"inf", Float(math.Inf(1)), "inf"},
		{"true", Bool(true), "True"},
		{"false", Bool(false), "False"},
		{"time", Time(ts), "2024-03-05 14:07:09"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.String())
		})
	}
}

func TestValueCSVNullIsEmpty(t *testing.T) {
	assert.Equal(t, "", Null().CSV())
	assert.Nil(t, Null().Any())
	assert.Equal(t, int64(7), Int(7).Any())
}

func TestValueEqual(t *testing.T) {
	assert.True(t, Float(math.NaN()).Equal(Float(math.NaN())))
	assert.True(t, Null().Equal(Value{}))
	assert.False(t, Text("1").Equal(Int(1)))
	assert.False(t, Bool(true).Equal(Bool(false)))
}

func TestDatasetColumnOps(t *testing.T) {
	ds := New("products", "product_id", "sku")
	ds.Append(Int(1), Text("A"))
	ds.Append(Int(2), Text("B"))

	require.Equal(t, 2, ds.Len())
	assert.True(t, ds.HasColumn("sku"))

	ds.SetColumn("note", Text("x"))
	assert.Equal(t, []string{"product_id", "sku", "note"}, ds.Columns)
	assert.Equal(t, Text("x"), ds.Get(1, "note"))

	ds.DropColumns("sku")
	assert.Equal(t, []string{"product_id", "note"}, ds.Columns)
	_, ok := ds.Rows[0]["sku"]
	assert.False(t, ok)

	ds.Reorder([]string{"note", "missing", "product_id"})
	assert.Equal(t, []string{"note", "missing", "product_id"}, ds.Columns)
	assert.True(t, ds.Get(0, "missing").IsNull())

	args := ds.Args(0, 2)
	require.Len(t, args, 2)
	assert.Equal(t, []any{"x", nil, int64(2)}, args[1])
}

func TestDatasetAppendRowExtendsColumns(t *testing.T) {
	ds := New("t", "a")
	ds.AppendRow(Row{"a": Int(1), "b": Int(2)})
	assert.Equal(t, []string{"a", "b"}, ds.Columns)
}

func TestDatasetMapColumnAndClone(t *testing.T) {
	ds := New("t", "a")
	ds.Append(Int(1))
	cp := ds.Clone()
	ds.MapColumn("a", func(Value) Value { return Null() })
	ds.MapColumn("undeclared", func(Value) Value { return Int(9) })

	assert.True(t, ds.Get(0, "a").IsNull())
	assert.Equal(t, Int(1), cp.Get(0, "a"))
	assert.False(t, ds.HasColumn("undeclared"))
}

func TestCSVRoundTripKeepsText(t *testing.T) {
	ds := New("orders", "order_id", "status", "total", "note")
	ds.Append(Int(1), Text("Delivered"), Float(19.99), Null())
	ds.Append(Int(2), Text("Cancelled, refunded"), Float(5), Text(""))

	path := filepath.Join(t.TempDir(), "clean", "orders.csv")
	require.NoError(t, WriteCSV(path, ds))

	got, err := ReadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, "orders", got.Name)
	assert.Equal(t, ds.Columns, got.Columns)
	require.Equal(t, 2, got.Len())
	assert.Equal(t, Text("1"), got.Get(0, "order_id"))
	assert.Equal(t, Text("19.99"), got.Get(0, "total"))
	assert.Equal(t, Text(""), got.Get(0, "note"))
	assert.Equal(t, Text("Cancelled, refunded"), got.Get(1, "status"))
}

func TestDecodeCSV(t *testing.T) {
	t.Run("short records read as null", func(t *testing.T) {
		ds, err := DecodeCSV("t", strings.NewReader("\ufeffa,b\n1\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, ds.Columns)
		assert.True(t, ds.Get(0, "b").IsNull())
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := DecodeCSV("t", strings.NewReader(""))
		assert.Error(t, err)
	})

	t.Run("blank header cells are named by index", func(t *testing.T) {
		ds, err := DecodeCSV("t", strings.NewReader(",a,\n0,x,y\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Unnamed: 0", "a", "Unnamed: 2"}, ds.Columns)
		assert.Equal(t, Text("0"), ds.Get(0, "Unnamed: 0"))
		assert.Equal(t, Text("y"), ds.Get(0, "Unnamed: 2"))
	})

	t.Run("duplicate header names are suffixed", func(t *testing.T) {
		ds, err := DecodeCSV("t", strings.NewReader("a,b,a,a.1,a\n1,2,3,4,5\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "a.1", "a.1.1", "a.2"}, ds.Columns)
		assert.Equal(t, Text("1"), ds.Get(0, "a"))
		assert.Equal(t, Text("3"), ds.Get(0, "a.1"))
		assert.Equal(t, Text("4"), ds.Get(0, "a.1.1"))
		assert.Equal(t, Text("5"), ds.Get(0, "a.2"))
	})

	t.Run("too many fields", func(t *testing.T) {
		_, err := DecodeCSV("t", strings.NewReader("a\n1,2\n"))
		assert.Error(t, err)
	})
}

func TestEncodeCSVHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeCSV(&buf, New("t", "a", "b")))
	assert.Equal(t, "a,b\n", buf.String())
}

func TestReadCSVMissingFile(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

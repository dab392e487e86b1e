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
	"fmt"
	"slices"
)

// Row maps column names to values. A column absent from the map reads as
// null.
type Row map[string]Value

// Dataset is an ordered collection of rows with a declared column order.
type Dataset struct {
	Name    string
	Columns []string
	Rows    []Row
}

// New creates an empty dataset with the given column order.
func New(name string, columns ...string) *Dataset {
	return &Dataset{
		Name:    name,
		Columns: slices.Clone(columns),
	}
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// Append adds a row given positionally in column order.
func (d *Dataset) Append(values ...Value) {
	if len(values) != len(d.Columns) {
		panic(fmt.Sprintf("dataset %s: append of %d values to %d columns",
			d.Name, len(values), len(d.Columns)))
	}
	row := make(Row, len(values))
	for i, c := range d.Columns {
		row[c] = values[i]
	}
	d.Rows = append(d.Rows, row)
}

// AppendRow adds a row, declaring any column not seen before at the end of
// the column order.
func (d *Dataset) AppendRow(row Row) {
	for c := range row {
		if !d.HasColumn(c) {
			d.Columns = append(d.Columns, c)
		}
	}
	d.Rows = append(d.Rows, row)
}

// HasColumn reports whether the dataset declares column c.
func (d *Dataset) HasColumn(c string) bool {
	return slices.Contains(d.Columns, c)
}

// Get returns row i's value for column c.
func (d *Dataset) Get(i int, c string) Value {
	return d.Rows[i][c]
}

// Column returns every row's value for column c.
func (d *Dataset) Column(c string) []Value {
	out := make([]Value, len(d.Rows))
	for i, r := range d.Rows {
		out[i] = r[c]
	}
	return out
}

// SetColumn sets column c to v in every row, declaring c if needed.
func (d *Dataset) SetColumn(c string, v Value) {
	if !d.HasColumn(c) {
		d.Columns = append(d.Columns, c)
	}
	for _, r := range d.Rows {
		r[c] = v
	}
}

// MapColumn replaces every value of column c with fn(value). Undeclared
// columns are left alone.
func (d *Dataset) MapColumn(c string, fn func(Value) Value) {
	if !d.HasColumn(c) {
		return
	}
	for _, r := range d.Rows {
		r[c] = fn(r[c])
	}
}

// DropColumns removes the named columns from the declaration and all rows.
func (d *Dataset) DropColumns(cols ...string) {
	if len(cols) == 0 {
		return
	}
	d.Columns = slices.DeleteFunc(d.Columns, func(c string) bool {
		return slices.Contains(cols, c)
	})
	for _, r := range d.Rows {
		for _, c := range cols {
			delete(r, c)
		}
	}
}

// Reorder sets the column declaration to exactly cols. Every row is
// rebuilt to hold exactly those keys; values for columns a row lacks
// become null.
func (d *Dataset) Reorder(cols []string) {
	d.Columns = slices.Clone(cols)
	for i, r := range d.Rows {
		out := make(Row, len(cols))
		for _, c := range cols {
			out[c] = r[c]
		}
		d.Rows[i] = out
	}
}

// Args projects rows [start, end) onto the declared columns as driver
// arguments.
func (d *Dataset) Args(start, end int) [][]any {
	out := make([][]any, 0, end-start)
	for _, r := range d.Rows[start:end] {
		args := make([]any, len(d.Columns))
		for j, c := range d.Columns {
			args[j] = r[c].Any()
		}
		out = append(out, args)
	}
	return out
}

// Clone returns a deep copy of the dataset.
func (d *Dataset) Clone() *Dataset {
	out := &Dataset{
		Name:    d.Name,
		Columns: slices.Clone(d.Columns),
		Rows:    make([]Row, len(d.Rows)),
	}
	for i, r := range d.Rows {
		cp := make(Row, len(r))
		for k, v := range r {
			cp[k] = v
		}
		out.Rows[i] = cp
	}
	return out
}

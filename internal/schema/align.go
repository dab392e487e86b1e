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
	"context"
	"fmt"
	"slices"

	"github.com/Blackhood910/data-generator/internal/dataset"
)

// Diff is the column-set difference between a dataset and a table.
type Diff struct {
	// Extra holds dataset columns the table lacks, in dataset order.
	Extra []string
	// Missing holds table columns the dataset lacks, in table order.
	Missing []string
}

// Compare computes the difference between dataset columns and table
// columns.
func Compare(datasetCols, tableCols []string) Diff {
	var d Diff
	for _, c := range datasetCols {
		if !slices.Contains(tableCols, c) && !slices.Contains(d.Extra, c) {
			d.Extra = append(d.Extra, c)
		}
	}
	for _, c := range tableCols {
		if !slices.Contains(datasetCols, c) {
			d.Missing = append(d.Missing, c)
		}
	}
	return d
}

// Alignment describes what Align did to a dataset.
type Alignment struct {
	// Columns is the final column order, equal to the table's columns.
	Columns []string
	// Added lists columns added to the table.
	Added []string
	// Dropped lists dataset columns discarded because extension was off.
	Dropped []string
	// Missing lists table columns filled with nulls.
	Missing []string
}

// Align reshapes ds to match table's columns exactly.
//
// Unknown dataset columns are either added to the table as nullable text
// columns (extend true) or dropped from the dataset. Values of added
// columns are discarded: only the column's existence is kept. Table
// columns the dataset lacks are filled with nulls, and every row ends up
// holding exactly the table's columns in table order.
//
// Extension failures wrap ErrExtension and are not retried. Columns added
// before a failure stay added.
func Align(ctx context.Context, reg *Registry, table string, ds *dataset.Dataset,
	extend bool) (*Alignment, error) {

	target, err := reg.Columns(ctx, table)
	if err != nil {
		return nil, err
	}

	diff := Compare(ds.Columns, target)
	result := &Alignment{}

	if len(diff.Extra) > 0 {
		if extend {
			for _, c := range diff.Extra {
				target, err = reg.AddColumn(ctx, table, c)
				if err != nil {
					return result, fmt.Errorf("%w: %w", ErrExtension, err)
				}
				result.Added = append(result.Added, c)
			}
			for _, c := range diff.Extra {
				ds.SetColumn(c, dataset.Null())
			}
			diff = Compare(ds.Columns, target)
		} else {
			ds.DropColumns(diff.Extra...)
			result.Dropped = diff.Extra
		}
	}

	for _, c := range diff.Missing {
		ds.SetColumn(c, dataset.Null())
	}
	result.Missing = diff.Missing

	ds.Reorder(target)
	result.Columns = slices.Clone(target)
	return result, nil
}

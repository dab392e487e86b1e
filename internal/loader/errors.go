//-------------------------------------------------------------------------
//
// AG Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package loader

import (
	"errors"
	"fmt"
)

// Error kinds reported by a load.
var (
	// ErrMissingSourceFile means a table has no source file. The table is
	// skipped; the run continues.
	ErrMissingSourceFile = errors.New("missing source file")
	// ErrReadSource means a source file exists but could not be parsed.
	ErrReadSource = errors.New("failed to read source")
	// ErrSchemaLookup means the target table's columns could not be listed.
	ErrSchemaLookup = errors.New("schema lookup failed")
	// ErrSchemaExtension means the target refused to add a column.
	ErrSchemaExtension = errors.New("schema extension failed")
	// ErrInsert means a batch insert or its commit failed.
	ErrInsert = errors.New("insert failed")
)

// TableError ties a failure to the table being loaded.
type TableError struct {
	Table string
	// Kind is one of the Err* sentinels above.
	Kind error
	Err  error
}

func (e *TableError) Error() string {
	return fmt.Sprintf("table %s: %v: %v", e.Table, e.Kind, e.Err)
}

// Unwrap lets errors.Is match both the kind and the cause.
func (e *TableError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func tableError(table string, kind, err error) *TableError {
	return &TableError{Table: table, Kind: kind, Err: err}
}

//-------------------------------------------------------------------------
//
// AG Data Generator
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package schema reconciles dataset columns against the authoritative
// column lists of target tables.
package schema

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrUnknownTable is returned when the authority has no such table.
	ErrUnknownTable = errors.New("unknown table")
	// ErrColumnExists is returned when adding a column that already exists.
	ErrColumnExists = errors.New("column already exists")
	// ErrExtension marks errors raised while Align extends a table.
	ErrExtension = errors.New("schema extension failed")
)

// Authority owns the definitive column list of each table and can extend
// it with nullable free-text columns.
type Authority interface {
	Columns(ctx context.Context, table string) ([]string, error)
	AddColumn(ctx context.Context, table, column string) error
}

// Extension records one column added through the registry.
type Extension struct {
	Table  string
	Column string
}

// Registry is the loader's view of the target schema. Column lists are
// always read from the authority; every extension goes through AddColumn
// and is recorded.
type Registry struct {
	auth       Authority
	extensions []Extension
}

// NewRegistry wraps an authority.
func NewRegistry(auth Authority) *Registry {
	return &Registry{auth: auth}
}

// Columns returns the current column list of table.
func (r *Registry) Columns(ctx context.Context, table string) ([]string, error) {
	cols, err := r.auth.Columns(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns of %s: %w", table, err)
	}
	return cols, nil
}

// AddColumn adds a nullable text column to table and returns the refreshed
// column list.
func (r *Registry) AddColumn(ctx context.Context, table, column string) ([]string, error) {
	if err := r.auth.AddColumn(ctx, table, column); err != nil {
		return nil, fmt.Errorf("failed to add column %s.%s: %w", table, column, err)
	}
	r.extensions = append(r.extensions, Extension{Table: table, Column: column})
	return r.Columns(ctx, table)
}

// Extensions returns every column added through this registry, in order.
func (r *Registry) Extensions() []Extension {
	return slices.Clone(r.extensions)
}

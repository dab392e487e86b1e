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
	"slices"
	"sync"
)

// MemoryAuthority is an in-process Authority. It backs dry runs and tests.
type MemoryAuthority struct {
	mu     sync.Mutex
	tables map[string][]string
	adds   int
}

// NewMemoryAuthority creates an authority holding copies of tables.
func NewMemoryAuthority(tables map[string][]string) *MemoryAuthority {
	m := &MemoryAuthority{tables: make(map[string][]string, len(tables))}
	for name, cols := range tables {
		m.tables[name] = slices.Clone(cols)
	}
	return m
}

// Columns implements Authority.
func (m *MemoryAuthority) Columns(_ context.Context, table string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cols, ok := m.tables[table]
	if !ok {
		return nil, ErrUnknownTable
	}
	return slices.Clone(cols), nil
}

// AddColumn implements Authority.
func (m *MemoryAuthority) AddColumn(_ context.Context, table, column string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cols, ok := m.tables[table]
	if !ok {
		return ErrUnknownTable
	}
	if slices.Contains(cols, column) {
		return ErrColumnExists
	}
	m.tables[table] = append(cols, column)
	m.adds++
	return nil
}

// AddCount returns how many columns have been added.
func (m *MemoryAuthority) AddCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.adds
}

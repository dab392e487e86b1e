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
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Blackhood910/data-generator/internal/dataset"
)

// Source supplies one dataset per table name.
type Source interface {
	// Read returns the table's dataset, or an error wrapping
	// ErrMissingSourceFile when the source has none.
	Read(table string) (*dataset.Dataset, error)
	// Location describes where the table's data would come from.
	Location(table string) string
	String() string
}

// DirSource reads <Dir>/<table>.csv.
type DirSource struct {
	Dir string
}

// NewDirSource returns a source over dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{Dir: dir}
}

// Location implements Source.
func (s *DirSource) Location(table string) string {
	return filepath.Join(s.Dir, table+".csv")
}

// Read implements Source.
func (s *DirSource) Read(table string) (*dataset.Dataset, error) {
	path := s.Location(table)
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissingSourceFile, path)
	}
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	ds, err := dataset.ReadCSV(path)
	if err != nil {
		return nil, err
	}
	ds.Name = table
	return ds, nil
}

func (s *DirSource) String() string {
	return s.Dir
}

// MemorySource serves datasets held in memory, keyed by table name.
type MemorySource map[string]*dataset.Dataset

// Location implements Source.
func (m MemorySource) Location(table string) string {
	return "memory:" + table
}

// Read implements Source. Each call returns a fresh copy.
func (m MemorySource) Read(table string) (*dataset.Dataset, error) {
	ds, ok := m[table]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingSourceFile, m.Location(table))
	}
	out := ds.Clone()
	out.Name = table
	return out, nil
}

func (m MemorySource) String() string {
	return "memory"
}

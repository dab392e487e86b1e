//-------------------------------------------------------------------------
//
// AG Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package loader

import "time"

// Status is the outcome of one table's load.
type Status string

const (
	StatusSkipped Status = "skipped"
	StatusLoaded  Status = "loaded"
	StatusFailed  Status = "failed"
)

// TableReport summarizes one table.
type TableReport struct {
	Table  string
	Status Status
	// Rows is the number of rows read from the source.
	Rows int64
	// Inserted counts rows that were new; the rest already existed.
	Inserted int64
	Added    []string
	Dropped  []string
	Missing  []string
}

// Report summarizes a run.
type Report struct {
	RunID     string
	Source    string
	StartedAt time.Time
	Duration  time.Duration
	Tables    []TableReport
}

// Count returns how many tables ended with status s.
func (r *Report) Count(s Status) int {
	n := 0
	for _, t := range r.Tables {
		if t.Status == s {
			n++
		}
	}
	return n
}

// Rows returns the total rows read.
func (r *Report) Rows() int64 {
	var n int64
	for _, t := range r.Tables {
		n += t.Rows
	}
	return n
}

// Inserted returns the total rows inserted.
func (r *Report) Inserted() int64 {
	var n int64
	for _, t := range r.Tables {
		n += t.Inserted
	}
	return n
}

// Table returns the report for a table, if it was attempted.
func (r *Report) Table(name string) (TableReport, bool) {
	for _, t := range r.Tables {
		if t.Table == name {
			return t, true
		}
	}
	return TableReport{}, false
}

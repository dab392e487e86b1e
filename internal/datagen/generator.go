package datagen

import (
	"fmt"

	"github.com/Blackhood910/data-generator/internal/logging"
)

// BatchInsertConfig configures batch insert behavior.
type BatchInsertConfig struct {
	// BatchSize is the number of rows per batch insert.
	BatchSize int

	// ProgressInterval is how often to log progress (in rows).
	ProgressInterval int64
}

// DefaultBatchConfig returns default batch insert configuration.
func DefaultBatchConfig() BatchInsertConfig {
	return BatchInsertConfig{
		BatchSize:        5000,
		ProgressInterval: 100000,
	}
}

// ProgressReporter tracks and reports per-table progress.
type ProgressReporter struct {
	tableName        string
	message          string
	totalRows        int64
	currentRow       int64
	progressInterval int64
}

// NewProgressReporter creates a new progress reporter. message is logged
// each time progress crosses a multiple of interval.
func NewProgressReporter(tableName, message string, totalRows int64, interval int64) *ProgressReporter {
	if interval <= 0 {
		interval = DefaultBatchConfig().ProgressInterval
	}
	return &ProgressReporter{
		tableName:        tableName,
		message:          message,
		totalRows:        totalRows,
		progressInterval: interval,
	}
}

// Update updates the progress and logs if necessary.
func (p *ProgressReporter) Update(rows int64) {
	oldRow := p.currentRow
	p.currentRow += rows

	// Check if we crossed a progress interval
	if p.currentRow/p.progressInterval > oldRow/p.progressInterval {
		pct := 100.0
		if p.totalRows > 0 {
			pct = float64(p.currentRow) / float64(p.totalRows) * 100
		}
		logging.Info().
			Str("table", p.tableName).
			Int64("rows", p.currentRow).
			Int64("total", p.totalRows).
			Float64("percent", pct).
			Msg(p.message)
	}
}

// Rows returns the rows counted so far.
func (p *ProgressReporter) Rows() int64 {
	return p.currentRow
}

// Done logs completion at debug level.
func (p *ProgressReporter) Done() {
	logging.Debug().
		Str("table", p.tableName).
		Int64("rows", p.currentRow).
		Msg("Table complete")
}

// SizeCalculator derives row counts from a target output size. Tables
// sized by product count are a fixed cost; the rest of the budget is
// spread over tables that grow with the order count.
type SizeCalculator struct {
	tables   []TableSizeInfo
	products int64
}

// TableSizeInfo holds size information for one output file.
type TableSizeInfo struct {
	Name     string
	RowBytes int64 // average CSV line length in bytes
	// PerOrder is rows per order. Zero for tables that do not scale.
	PerOrder float64
	// PerProduct is rows per product for catalog tables.
	PerProduct float64
}

// NewSizeCalculator creates a size calculator for a catalog of products.
func NewSizeCalculator(tables []TableSizeInfo, products int64) *SizeCalculator {
	return &SizeCalculator{tables: tables, products: products}
}

// CalculateRowCounts returns rows per table so the files total roughly
// targetSize bytes. Every scaled table gets at least one row.
func (c *SizeCalculator) CalculateRowCounts(targetSize int64) map[string]int64 {
	rowCounts := make(map[string]int64, len(c.tables))

	var fixed, perOrder float64
	for _, t := range c.tables {
		if t.PerProduct > 0 {
			rows := int64(t.PerProduct * float64(c.products))
			rowCounts[t.Name] = rows
			fixed += float64(rows * t.RowBytes)
		}
		perOrder += t.PerOrder * float64(t.RowBytes)
	}
	if perOrder == 0 {
		return rowCounts
	}

	orders := (float64(targetSize) - fixed) / perOrder
	for _, t := range c.tables {
		if t.PerOrder == 0 {
			continue
		}
		rowCounts[t.Name] = max(1, int64(orders*t.PerOrder))
	}
	return rowCounts
}

// EstimatedSize returns the estimated output size for given row counts.
func (c *SizeCalculator) EstimatedSize(rowCounts map[string]int64) int64 {
	var total int64
	for _, t := range c.tables {
		total += rowCounts[t.Name] * t.RowBytes
	}
	return total
}

// FormatSize formats a byte count as a human-readable string.
func FormatSize(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
		TB = GB * 1024
	)

	switch {
	case bytes >= TB:
		return fmt.Sprintf("%.2f TB", float64(bytes)/float64(TB))
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

//-------------------------------------------------------------------------
//
// AG Data Generator
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package db

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/Blackhood910/data-generator/internal/logging"
	"github.com/Blackhood910/data-generator/internal/schema"
)

const metadataTable = "datagen_metadata"

// createMetadataTableSQL returns the DDL of the key/value metadata table.
func (d Dialect) createMetadataTableSQL(table string) string {
	keyType := "TEXT"
	if d.Name == DriverMySQL {
		keyType = "VARCHAR(128)"
	}
	return fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
    meta_key   %s PRIMARY KEY,
    meta_value TEXT NOT NULL
)`, table, keyType)
}

// upsertMetadataSQL builds the statement inserting or replacing one key.
func (d Dialect) upsertMetadataSQL(table, key, value string) (string, []any, error) {
	b := d.Builder().
		Insert(table).
		Columns("meta_key", "meta_value").
		Values(key, value)
	if d.Name == DriverMySQL {
		b = b.Suffix("ON DUPLICATE KEY UPDATE meta_value = VALUES(meta_value)")
	} else {
		b = b.Suffix("ON CONFLICT (meta_key) DO UPDATE SET meta_value = EXCLUDED.meta_value")
	}
	return b.ToSql()
}

// execer runs one statement without returning rows.
type execer func(ctx context.Context, query string, args ...any) error

func saveMetadata(ctx context.Context, d Dialect, table string, exec execer, values map[string]string) error {
	// Create table if it doesn't exist
	if err := exec(ctx, d.createMetadataTableSQL(table)); err != nil {
		return fmt.Errorf("failed to create metadata table: %w", err)
	}

	for _, key := range slices.Sorted(maps.Keys(values)) {
		query, args, err := d.upsertMetadataSQL(table, key, values[key])
		if err != nil {
			return err
		}
		if err := exec(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to save metadata %s: %w", key, err)
		}
	}

	logging.Debug().
		Int("keys", len(values)).
		Msg("Saved metadata")

	return nil
}

// SaveMetadata implements Store.
func (s *PostgresStore) SaveMetadata(ctx context.Context, values map[string]string) error {
	return saveMetadata(ctx, postgresDialect, s.table(metadataTable),
		func(ctx context.Context, query string, args ...any) error {
			_, err := s.pool.Exec(ctx, query, args...)
			return err
		}, values)
}

// GetAllMetadata implements Store. A database that was never loaded has no
// metadata and yields an empty map.
func (s *PostgresStore) GetAllMetadata(ctx context.Context) (map[string]string, error) {
	if _, err := s.Columns(ctx, metadataTable); err != nil {
		if errors.Is(err, schema.ErrUnknownTable) {
			return map[string]string{}, nil
		}
		return nil, err
	}

	rows, err := s.pool.Query(ctx, "SELECT meta_key, meta_value FROM "+s.table(metadataTable))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	metadata := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		metadata[key] = value
	}

	return metadata, rows.Err()
}

// SaveMetadata implements Store.
func (s *SQLStore) SaveMetadata(ctx context.Context, values map[string]string) error {
	return saveMetadata(ctx, s.dialect, s.dialect.Quote(metadataTable),
		func(ctx context.Context, query string, args ...any) error {
			_, err := s.db.ExecContext(ctx, query, args...)
			return err
		}, values)
}

// GetAllMetadata implements Store.
func (s *SQLStore) GetAllMetadata(ctx context.Context) (map[string]string, error) {
	if _, err := s.Columns(ctx, metadataTable); err != nil {
		if errors.Is(err, schema.ErrUnknownTable) {
			return map[string]string{}, nil
		}
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, "SELECT meta_key, meta_value FROM "+s.dialect.Quote(metadataTable))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	metadata := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		metadata[key] = value
	}

	return metadata, rows.Err()
}

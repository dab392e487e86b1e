//-------------------------------------------------------------------------
//
// AG Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package testutil provides utilities for integration testing.
package testutil

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// ConnEnv names the variable holding an existing test server's
	// connection string. When unset a container is started instead.
	ConnEnv = "DATAGEN_TEST_CONN"

	// PostgresImage is the image used for the throwaway test server.
	PostgresImage = "postgres:17-alpine"

	// TestSchemaPrefix is the prefix for test schemas.
	TestSchemaPrefix = "datagen_test_"
)

var (
	containerOnce sync.Once
	containerConn string
	containerErr  error
)

// PostgresAvailable checks if the server at connStr answers a ping.
func PostgresAvailable(connStr string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return false
	}
	defer pool.Close()

	return pool.Ping(ctx) == nil
}

// startContainer runs one PostgreSQL container shared by every test in
// the package. The testcontainers reaper removes it when the process
// exits.
func startContainer() (string, error) {
	containerOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		ctr, err := postgres.Run(ctx,
			PostgresImage,
			postgres.WithUsername("postgres"),
			postgres.WithPassword("postgres"),
			postgres.WithDatabase("postgres"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second),
			),
		)
		if err != nil {
			containerErr = fmt.Errorf("start postgres: %w", err)
			return
		}

		containerConn, containerErr = ctr.ConnectionString(ctx, "sslmode=disable")
		if containerErr != nil {
			ctr.Terminate(context.Background()) //nolint:errcheck
		}
	})
	return containerConn, containerErr
}

// SkipIfNoPostgres returns a connection string for a test server, or
// skips the test when neither DATAGEN_TEST_CONN nor Docker is usable.
func SkipIfNoPostgres(t *testing.T) string {
	t.Helper()

	if connStr := os.Getenv(ConnEnv); connStr != "" {
		if !PostgresAvailable(connStr) {
			t.Skipf("PostgreSQL at %s not available, skipping integration test", ConnEnv)
		}
		return connStr
	}

	testcontainers.SkipIfProviderIsNotHealthy(t)
	connStr, err := startContainer()
	if err != nil {
		t.Skipf("PostgreSQL container not available, skipping integration test: %v", err)
	}
	return connStr
}

// TestSchemaName returns a random schema name for one test.
func TestSchemaName(t *testing.T) string {
	t.Helper()

	randomBytes := make([]byte, 8)
	if _, err := rand.Read(randomBytes); err != nil {
		t.Fatalf("Failed to generate random schema name: %v", err)
	}
	return TestSchemaPrefix + hex.EncodeToString(randomBytes)
}

// ConnectTestDB connects to a test database and closes the pool when the
// test ends.
func ConnectTestDB(t *testing.T, connStr string) *pgxpool.Pool {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	t.Cleanup(pool.Close)

	return pool
}

// DropTestSchema registers a cleanup dropping schemaName. The schema is
// only dropped if the test passed; on failure it remains for diagnostics.
func DropTestSchema(t *testing.T, pool *pgxpool.Pool, schemaName string) {
	t.Helper()

	t.Cleanup(func() {
		if t.Failed() {
			t.Logf("Test failed - keeping schema %s for diagnostics", schemaName)
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		stmt := "DROP SCHEMA IF EXISTS " + pgx.Identifier{schemaName}.Sanitize() + " CASCADE"
		if _, err := pool.Exec(ctx, stmt); err != nil {
			t.Logf("Warning: Failed to drop test schema: %v", err)
		}
	})
}

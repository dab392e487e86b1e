//-------------------------------------------------------------------------
//
// AG Data Generator
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for data-generator.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Blackhood910/data-generator/internal/config"
	"github.com/Blackhood910/data-generator/internal/db"
	"github.com/Blackhood910/data-generator/internal/logging"
	"github.com/Blackhood910/data-generator/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	driver     string
	host       string
	port       int
	user       string
	password   string
	database   string
	schemaName string
	dbPath     string
	logLevel   string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "data-generator",
		Short: "AG e-commerce dataset generator and CSV loader",
		Long: `data-generator builds a realistic multi-channel e-commerce dataset
(products, listings, customers, orders, payments, shipments, returns and
reviews) as CSV files, and loads CSV files into a fixed relational schema
on PostgreSQL, MySQL or SQLite.

Loading reconciles each file's columns with its table: unknown columns are
added to the table (their values are not stored), missing columns are
filled with NULL, and rows whose primary key already exists are skipped, so
a load can always be re-run.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./data-generator.yaml)")
	rootCmd.PersistentFlags().StringVar(&driver, "driver", "",
		"database driver (postgres, mysql, sqlite)")
	rootCmd.PersistentFlags().StringVar(&host, "host", "",
		"database host")
	rootCmd.PersistentFlags().IntVar(&port, "port", 0,
		"database port (default: 5432 for postgres, 3306 for mysql)")
	rootCmd.PersistentFlags().StringVar(&user, "user", "",
		"database user")
	rootCmd.PersistentFlags().StringVar(&password, "password", "",
		"database password (prefer DATAGEN_DATABASE_PASSWORD)")
	rootCmd.PersistentFlags().StringVar(&database, "database", "",
		"database name")
	rootCmd.PersistentFlags().StringVar(&schemaName, "schema", "",
		"PostgreSQL schema (default: ag_oltp)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db-path", "",
		"SQLite database file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(statusCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if driver != "" {
		cfg.Database.Driver = driver
	}
	if host != "" {
		cfg.Database.Host = host
	}
	if port > 0 {
		cfg.Database.Port = port
	}
	if user != "" {
		cfg.Database.User = user
	}
	if password != "" {
		cfg.Database.Password = password
	}
	if database != "" {
		cfg.Database.Name = database
	}
	if schemaName != "" {
		cfg.Database.Schema = schemaName
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

// openStore connects to the configured database.
func openStore(ctx context.Context) (db.Store, error) {
	if err := cfg.ValidateDatabase(); err != nil {
		return nil, err
	}
	dbCfg := cfg.Database.DBConfig()

	logging.Info().
		Str("driver", dbCfg.Driver).
		Str("host", dbCfg.Host).
		Str("database", dbCfg.Database).
		Msg("Connecting to database")

	store, err := db.Open(ctx, dbCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return store, nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}

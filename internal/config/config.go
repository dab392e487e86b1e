//-------------------------------------------------------------------------
//
// AG Data Generator
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for data-generator.
// Values come from, in increasing precedence: defaults, the config file,
// DATAGEN_* environment variables (a .env file is read into the
// environment first) and CLI flags.
package config

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Blackhood910/data-generator/internal/db"
)

// EnvPrefix prefixes every environment variable the tool reads.
const EnvPrefix = "DATAGEN"

// Config holds all configuration for data-generator.
type Config struct {
	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Database holds the target database connection settings.
	Database DatabaseConfig `mapstructure:"database"`

	// Load holds configuration for the load subcommand.
	Load LoadConfig `mapstructure:"load"`

	// Generate holds configuration for the generate subcommand.
	Generate GenerateConfig `mapstructure:"generate"`
}

// DatabaseConfig holds connection settings.
type DatabaseConfig struct {
	// Driver is one of postgres, mysql, sqlite.
	Driver string `mapstructure:"driver"`
	Host   string `mapstructure:"host"`
	// Port 0 means the driver's default port.
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	// Name is the database name. Empty means the driver's default.
	Name string `mapstructure:"name"`
	// Schema is the PostgreSQL schema holding the tables.
	Schema  string `mapstructure:"schema"`
	SSLMode string `mapstructure:"sslmode"`
	// Path is the SQLite database file.
	Path string `mapstructure:"path"`
}

// LoadConfig holds configuration for loading CSVs.
type LoadConfig struct {
	// SourceDir holds one <table>.csv per table.
	SourceDir string `mapstructure:"source_dir"`

	// BatchSize is the number of rows per insert.
	BatchSize int `mapstructure:"batch_size"`

	// ExtendSchema adds unknown CSV columns to their table as nullable
	// text columns. When false those columns are dropped.
	ExtendSchema bool `mapstructure:"extend_schema"`

	// CreateSchema creates the tables before loading.
	CreateSchema bool `mapstructure:"create_schema"`

	// DropExisting drops every table before loading.
	DropExisting bool `mapstructure:"drop_existing"`
}

// GenerateConfig holds configuration for dataset generation.
type GenerateConfig struct {
	// OutputDir receives raw/, clean/, the DDL and the manifest.
	OutputDir string `mapstructure:"output_dir"`
	Orders    int    `mapstructure:"orders"`
	Customers int    `mapstructure:"customers"`
	Products  int    `mapstructure:"products"`
	Reviews   int    `mapstructure:"reviews"`
	Seed      uint64 `mapstructure:"seed"`

	// Size is an optional target size (e.g., "50MB"). When set it
	// overrides orders, customers and reviews.
	Size string `mapstructure:"size"`

	// Zip packs the output directory into <output_dir>.zip.
	Zip bool `mapstructure:"zip"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Database: DatabaseConfig{
			Driver:  db.DriverPostgres,
			Host:    "127.0.0.1",
			Schema:  "ag_oltp",
			SSLMode: "prefer",
			Path:    "ag_data.db",
		},
		Load: LoadConfig{
			SourceDir:    filepath.Join("ag_data", "clean"),
			BatchSize:    5000,
			ExtendSchema: true,
			CreateSchema: true,
		},
		Generate: GenerateConfig{
			OutputDir: "ag_data",
			Orders:    50000,
			Customers: 20000,
			Products:  300,
			Reviews:   50000,
			Seed:      123,
		},
	}
}

// setDefaults registers every key with viper so environment variables can
// override keys absent from the config file.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("log_level", cfg.LogLevel)

	v.SetDefault("database.driver", cfg.Database.Driver)
	v.SetDefault("database.host", cfg.Database.Host)
	v.SetDefault("database.port", cfg.Database.Port)
	v.SetDefault("database.user", cfg.Database.User)
	v.SetDefault("database.password", cfg.Database.Password)
	v.SetDefault("database.name", cfg.Database.Name)
	v.SetDefault("database.schema", cfg.Database.Schema)
	v.SetDefault("database.sslmode", cfg.Database.SSLMode)
	v.SetDefault("database.path", cfg.Database.Path)

	v.SetDefault("load.source_dir", cfg.Load.SourceDir)
	v.SetDefault("load.batch_size", cfg.Load.BatchSize)
	v.SetDefault("load.extend_schema", cfg.Load.ExtendSchema)
	v.SetDefault("load.create_schema", cfg.Load.CreateSchema)
	v.SetDefault("load.drop_existing", cfg.Load.DropExisting)

	v.SetDefault("generate.output_dir", cfg.Generate.OutputDir)
	v.SetDefault("generate.orders", cfg.Generate.Orders)
	v.SetDefault("generate.customers", cfg.Generate.Customers)
	v.SetDefault("generate.products", cfg.Generate.Products)
	v.SetDefault("generate.reviews", cfg.Generate.Reviews)
	v.SetDefault("generate.seed", cfg.Generate.Seed)
	v.SetDefault("generate.size", cfg.Generate.Size)
	v.SetDefault("generate.zip", cfg.Generate.Zip)
}

// Load reads configuration from config files and the environment.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./data-generator.yaml
// 3. ~/.config/data-generator/config.yaml
//
// A .env file in the working directory is loaded into the environment
// first; variables already set are left alone.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and type
	v.SetConfigName("data-generator")
	v.SetConfigType("yaml")

	// Add config paths
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "data-generator"))
	}

	// Use specific config file if provided
	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := DefaultConfig()
	setDefaults(v, cfg)

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// DBConfig resolves driver defaults and returns the connection settings.
func (d DatabaseConfig) DBConfig() db.Config {
	out := db.Config{
		Driver:   d.Driver,
		Host:     d.Host,
		Port:     d.Port,
		User:     d.User,
		Password: d.Password,
		Database: d.Name,
		Schema:   d.Schema,
		SSLMode:  d.SSLMode,
		Path:     d.Path,
	}

	switch d.Driver {
	case db.DriverPostgres:
		out.Port = cmp.Or(out.Port, 5432)
		out.User = cmp.Or(out.User, "postgres")
		out.Database = cmp.Or(out.Database, "postgres")
	case db.DriverMySQL:
		out.Port = cmp.Or(out.Port, 3306)
		out.User = cmp.Or(out.User, "root")
		out.Database = cmp.Or(out.Database, "ag_ecommerce")
		out.CreateDatabase = true
	}
	return out
}

// ValidateDatabase checks the connection settings.
func (c *Config) ValidateDatabase() error {
	if !slices.Contains(db.Drivers(), c.Database.Driver) {
		return fmt.Errorf("driver must be one of %s", strings.Join(db.Drivers(), ", "))
	}
	if c.Database.Driver == db.DriverSQLite {
		if c.Database.Path == "" {
			return fmt.Errorf("database path is required for sqlite")
		}
		return nil
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.Port < 0 || c.Database.Port > 65535 {
		return fmt.Errorf("database port must be between 1 and 65535 (0 for the driver default)")
	}
	if c.Database.Driver == db.DriverPostgres && c.Database.Schema == "" {
		return fmt.Errorf("database schema is required for postgres")
	}
	return nil
}

// ValidateLoad checks configuration required for the load command.
func (c *Config) ValidateLoad() error {
	if err := c.ValidateDatabase(); err != nil {
		return err
	}
	if c.Load.SourceDir == "" {
		return fmt.Errorf("source directory is required for load")
	}
	if c.Load.BatchSize < 1 {
		return fmt.Errorf("batch_size must be at least 1")
	}
	return nil
}

// ValidateGenerate checks configuration required for the generate command.
func (c *Config) ValidateGenerate() error {
	if c.Generate.OutputDir == "" {
		return fmt.Errorf("output directory is required for generate")
	}
	if c.Generate.Products < 1 {
		return fmt.Errorf("products must be at least 1")
	}
	if c.Generate.Size == "" {
		if c.Generate.Customers < 1 {
			return fmt.Errorf("customers must be at least 1")
		}
		if c.Generate.Orders < 0 || c.Generate.Reviews < 0 {
			return fmt.Errorf("orders and reviews must not be negative")
		}
	}
	return nil
}

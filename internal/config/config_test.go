package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Blackhood910/data-generator/internal/db"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}

	// Check default values
	if cfg.LogLevel != "info" {
		t.Errorf("Expected LogLevel 'info', got '%s'", cfg.LogLevel)
	}

	// Database defaults
	if cfg.Database.Driver != db.DriverPostgres {
		t.Errorf("Expected Database.Driver 'postgres', got '%s'", cfg.Database.Driver)
	}
	if cfg.Database.Host != "127.0.0.1" {
		t.Errorf("Expected Database.Host '127.0.0.1', got '%s'", cfg.Database.Host)
	}
	if cfg.Database.Schema != "ag_oltp" {
		t.Errorf("Expected Database.Schema 'ag_oltp', got '%s'", cfg.Database.Schema)
	}

	// Load defaults
	if cfg.Load.SourceDir != filepath.Join("ag_data", "clean") {
		t.Errorf("Expected Load.SourceDir 'ag_data/clean', got '%s'", cfg.Load.SourceDir)
	}
	if cfg.Load.BatchSize != 5000 {
		t.Errorf("Expected Load.BatchSize 5000, got %d", cfg.Load.BatchSize)
	}
	if !cfg.Load.ExtendSchema {
		t.Error("Expected Load.ExtendSchema true")
	}
	if !cfg.Load.CreateSchema {
		t.Error("Expected Load.CreateSchema true")
	}
	if cfg.Load.DropExisting {
		t.Error("Expected Load.DropExisting false")
	}

	// Generate defaults
	if cfg.Generate.OutputDir != "ag_data" {
		t.Errorf("Expected Generate.OutputDir 'ag_data', got '%s'", cfg.Generate.OutputDir)
	}
	if cfg.Generate.Orders != 50000 {
		t.Errorf("Expected Generate.Orders 50000, got %d", cfg.Generate.Orders)
	}
	if cfg.Generate.Customers != 20000 {
		t.Errorf("Expected Generate.Customers 20000, got %d", cfg.Generate.Customers)
	}
	if cfg.Generate.Products != 300 {
		t.Errorf("Expected Generate.Products 300, got %d", cfg.Generate.Products)
	}
	if cfg.Generate.Reviews != 50000 {
		t.Errorf("Expected Generate.Reviews 50000, got %d", cfg.Generate.Reviews)
	}
	if cfg.Generate.Seed != 123 {
		t.Errorf("Expected Generate.Seed 123, got %d", cfg.Generate.Seed)
	}
}

func TestDBConfigDriverDefaults(t *testing.T) {
	tests := []struct {
		name     string
		in       DatabaseConfig
		port     int
		user     string
		database string
		create   bool
	}{
		{
			name:     "postgres",
			in:       DatabaseConfig{Driver: db.DriverPostgres},
			port:     5432,
			user:     "postgres",
			database: "postgres",
		},
		{
			name:     "mysql",
			in:       DatabaseConfig{Driver: db.DriverMySQL},
			port:     3306,
			user:     "root",
			database: "ag_ecommerce",
			create:   true,
		},
		{
			name:     "explicit values kept",
			in:       DatabaseConfig{Driver: db.DriverMySQL, Port: 3307, User: "ag", Name: "shop"},
			port:     3307,
			user:     "ag",
			database: "shop",
			create:   true,
		},
		{
			name: "sqlite",
			in:   DatabaseConfig{Driver: db.DriverSQLite, Path: "x.db"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.DBConfig()
			if got.Port != tt.port {
				t.Errorf("Port = %d, want %d", got.Port, tt.port)
			}
			if got.User != tt.user {
				t.Errorf("User = %q, want %q", got.User, tt.user)
			}
			if got.Database != tt.database {
				t.Errorf("Database = %q, want %q", got.Database, tt.database)
			}
			if got.CreateDatabase != tt.create {
				t.Errorf("CreateDatabase = %v, want %v", got.CreateDatabase, tt.create)
			}
		})
	}
}

func TestConfigValidateLoad(t *testing.T) {
	valid := func() *Config { return DefaultConfig() }

	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantError bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "sqlite", mutate: func(c *Config) { c.Database.Driver = db.DriverSQLite }},
		{name: "mysql", mutate: func(c *Config) { c.Database.Driver = db.DriverMySQL }},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "oracle" }, wantError: true},
		{name: "sqlite without path", mutate: func(c *Config) {
			c.Database.Driver = db.DriverSQLite
			c.Database.Path = ""
		}, wantError: true},
		{name: "missing host", mutate: func(c *Config) { c.Database.Host = "" }, wantError: true},
		{name: "bad port", mutate: func(c *Config) { c.Database.Port = 70000 }, wantError: true},
		{name: "missing schema", mutate: func(c *Config) { c.Database.Schema = "" }, wantError: true},
		{name: "missing source dir", mutate: func(c *Config) { c.Load.SourceDir = "" }, wantError: true},
		{name: "zero batch size", mutate: func(c *Config) { c.Load.BatchSize = 0 }, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.ValidateLoad()
			if tt.wantError && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.wantError && err != nil {
				t.Errorf("Expected no error, got: %v", err)
			}
		})
	}
}

func TestConfigValidateGenerate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantError bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "missing output dir", mutate: func(c *Config) { c.Generate.OutputDir = "" }, wantError: true},
		{name: "zero products", mutate: func(c *Config) { c.Generate.Products = 0 }, wantError: true},
		{name: "zero customers", mutate: func(c *Config) { c.Generate.Customers = 0 }, wantError: true},
		{name: "negative orders", mutate: func(c *Config) { c.Generate.Orders = -1 }, wantError: true},
		{name: "size overrides counts", mutate: func(c *Config) {
			c.Generate.Size = "10MB"
			c.Generate.Customers = 0
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.ValidateGenerate()
			if tt.wantError && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.wantError && err != nil {
				t.Errorf("Expected no error, got: %v", err)
			}
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	// Create a temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "data-generator.yaml")

	configContent := `
log_level: "debug"

database:
  driver: "mysql"
  host: "db.internal"
  port: 3307
  user: "loader"
  name: "MSk_e_com_AKGate"

load:
  source_dir: "/data/clean"
  batch_size: 1000
  extend_schema: false
  drop_existing: true

generate:
  output_dir: "/tmp/ag"
  orders: 100
  seed: 42
  zip: true
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// Verify loaded values
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel mismatch: %s", cfg.LogLevel)
	}
	if cfg.Database.Driver != "mysql" {
		t.Errorf("Database.Driver mismatch: %s", cfg.Database.Driver)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("Database.Host mismatch: %s", cfg.Database.Host)
	}
	if cfg.Database.Port != 3307 {
		t.Errorf("Database.Port mismatch: %d", cfg.Database.Port)
	}
	if cfg.Database.Name != "MSk_e_com_AKGate" {
		t.Errorf("Database.Name mismatch: %s", cfg.Database.Name)
	}
	if cfg.Load.SourceDir != "/data/clean" {
		t.Errorf("Load.SourceDir mismatch: %s", cfg.Load.SourceDir)
	}
	if cfg.Load.BatchSize != 1000 {
		t.Errorf("Load.BatchSize mismatch: %d", cfg.Load.BatchSize)
	}
	if cfg.Load.ExtendSchema {
		t.Error("Load.ExtendSchema mismatch")
	}
	if !cfg.Load.CreateSchema {
		t.Error("Load.CreateSchema should keep its default")
	}
	if !cfg.Load.DropExisting {
		t.Error("Load.DropExisting mismatch")
	}
	if cfg.Generate.Orders != 100 {
		t.Errorf("Generate.Orders mismatch: %d", cfg.Generate.Orders)
	}
	if cfg.Generate.Customers != 20000 {
		t.Errorf("Generate.Customers should keep its default, got %d", cfg.Generate.Customers)
	}
	if cfg.Generate.Seed != 42 {
		t.Errorf("Generate.Seed mismatch: %d", cfg.Generate.Seed)
	}
	if !cfg.Generate.Zip {
		t.Error("Generate.Zip mismatch")
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "data-generator.yaml")
	err := os.WriteFile(configPath, []byte("database:\n  password: from-file\n  host: filehost\n"), 0644)
	if err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	t.Setenv("DATAGEN_DATABASE_PASSWORD", "from-env")
	t.Setenv("DATAGEN_LOAD_BATCH_SIZE", "250")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Database.Password != "from-env" {
		t.Errorf("Database.Password = %q, want from-env", cfg.Database.Password)
	}
	if cfg.Database.Host != "filehost" {
		t.Errorf("Database.Host = %q, want filehost", cfg.Database.Host)
	}
	if cfg.Load.BatchSize != 250 {
		t.Errorf("Load.BatchSize = %d, want 250", cfg.Load.BatchSize)
	}
}

func TestLoadConfigFileNotFound(t *testing.T) {
	// When a specific config file is provided but doesn't exist, Load returns an error
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("Load should error when specified config file doesn't exist")
	}
}

func TestLoadConfigDefaultPath(t *testing.T) {
	// When no config file is specified (empty string), Load returns defaults
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load should not error with empty path, got: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load should return default config")
	}
	// Should have default values
	if cfg.LogLevel != "info" {
		t.Errorf("Expected default LogLevel 'info', got '%s'", cfg.LogLevel)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidContent := `
database: [invalid yaml
  that: won't parse
`
	err := os.WriteFile(configPath, []byte(invalidContent), 0644)
	if err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	_, err = Load(configPath)
	if err == nil {
		t.Error("Expected error for invalid YAML, got nil")
	}
}

//-------------------------------------------------------------------------
//
// AG Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Blackhood910/data-generator/internal/dataset"
	"github.com/Blackhood910/data-generator/internal/db"
	"github.com/Blackhood910/data-generator/internal/logging"
	"github.com/Blackhood910/data-generator/pkg/version"
)

const (
	// DDLSchema is the PostgreSQL schema named in create_tables.sql.
	DDLSchema = "ag_oltp"

	ManifestFile = "manifest.yaml"
	DDLFile      = "create_tables.sql"
)

// Manifest describes a generated dataset.
type Manifest struct {
	Generator   string         `yaml:"generator"`
	GeneratedAt time.Time      `yaml:"generated_at"`
	Seed        uint64         `yaml:"seed"`
	Orders      int            `yaml:"orders"`
	Customers   int            `yaml:"customers"`
	Products    int            `yaml:"products"`
	Reviews     int            `yaml:"reviews"`
	Clean       map[string]int `yaml:"clean"`
	Raw         map[string]int `yaml:"raw"`
}

// WriteResult lists what Write produced.
type WriteResult struct {
	CleanDir string
	RawDir   string
	Files    []string
	Zip      string
}

// Write stores res under dir as clean/ and raw/ CSVs plus the DDL script and
// manifest. With zipOutput it also packs everything into <dir>.zip.
func Write(res *Result, dir string, zipOutput bool) (*WriteResult, error) {
	out := &WriteResult{
		CleanDir: filepath.Join(dir, "clean"),
		RawDir:   filepath.Join(dir, "raw"),
	}

	if err := writeAll(out.CleanDir, res.Clean, out); err != nil {
		return nil, err
	}
	if err := writeAll(out.RawDir, res.Raw, out); err != nil {
		return nil, err
	}

	ddlPath := filepath.Join(dir, DDLFile)
	if err := os.WriteFile(ddlPath, []byte(db.PostgresDDL(DDLSchema)), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", ddlPath, err)
	}
	out.Files = append(out.Files, ddlPath)

	manifestPath := filepath.Join(dir, ManifestFile)
	if err := writeManifest(manifestPath, res); err != nil {
		return nil, err
	}
	out.Files = append(out.Files, manifestPath)

	if zipOutput {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
		}
		zipPath := abs + ".zip"
		if err := zipDir(dir, zipPath); err != nil {
			return nil, err
		}
		out.Zip = zipPath
	}

	logging.Info().
		Str("dir", dir).
		Int("files", len(out.Files)).
		Str("zip", out.Zip).
		Msg("Dataset written")
	return out, nil
}

func writeAll(dir string, tables map[string]*dataset.Dataset, out *WriteResult) error {
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		path := filepath.Join(dir, name+".csv")
		if err := dataset.WriteCSV(path, tables[name]); err != nil {
			return err
		}
		logging.Debug().Str("file", path).Int("rows", tables[name].Len()).Msg("Wrote table")
		out.Files = append(out.Files, path)
	}
	return nil
}

func writeManifest(path string, res *Result) error {
	m := Manifest{
		Generator:   "data-generator " + version.Version,
		GeneratedAt: res.GeneratedAt,
		Seed:        res.Config.Seed,
		Orders:      res.Config.Orders,
		Customers:   res.Config.Customers,
		Products:    res.Config.Products,
		Reviews:     res.Config.Reviews,
		Clean:       res.Counts(),
		Raw:         make(map[string]int, len(res.Raw)),
	}
	for name, ds := range res.Raw {
		m.Raw[name] = ds.Len()
	}

	data, err := yaml.Marshal(&m)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ReadManifest loads a manifest written by Write.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

func zipDir(dir, zipPath string) (err error) {
	f, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", zipPath, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	zw := zip.NewWriter(f)
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return walkErr
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()
		_, err = io.Copy(w, src)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to zip %s: %w", dir, err)
	}
	return zw.Close()
}

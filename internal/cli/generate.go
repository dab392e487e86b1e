package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Blackhood910/data-generator/internal/datagen"
	"github.com/Blackhood910/data-generator/internal/logging"
)

var (
	genOutputDir string
	genOrders    int
	genCustomers int
	genProducts  int
	genReviews   int
	genSeed      uint64
	genSize      string
	genZip       bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the AG e-commerce dataset as CSV files",
	Long: `Generate a deterministic e-commerce dataset. The output directory
receives clean/ (one CSV per table, ready for 'load'), raw/ (messy product
and order exports), create_tables.sql and manifest.yaml.

Example:
  data-generator generate --output-dir ./ag_data --orders 50000 --seed 123 --zip
  data-generator generate --size 200MB`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genOutputDir, "output-dir", "",
		"output directory (default: ./ag_data)")
	generateCmd.Flags().IntVar(&genOrders, "orders", 0,
		"number of orders")
	generateCmd.Flags().IntVar(&genCustomers, "customers", 0,
		"number of customers")
	generateCmd.Flags().IntVar(&genProducts, "products", 0,
		"number of products")
	generateCmd.Flags().IntVar(&genReviews, "reviews", 0,
		"number of reviews")
	generateCmd.Flags().Uint64Var(&genSeed, "seed", 0,
		"random seed (default: 123)")
	generateCmd.Flags().StringVar(&genSize, "size", "",
		"target CSV size (e.g., 50MB); overrides orders, customers and reviews")
	generateCmd.Flags().BoolVar(&genZip, "zip", false,
		"also write <output-dir>.zip")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if genOutputDir != "" {
		cfg.Generate.OutputDir = genOutputDir
	}
	if cmd.Flags().Changed("orders") {
		cfg.Generate.Orders = genOrders
	}
	if cmd.Flags().Changed("customers") {
		cfg.Generate.Customers = genCustomers
	}
	if cmd.Flags().Changed("products") {
		cfg.Generate.Products = genProducts
	}
	if cmd.Flags().Changed("reviews") {
		cfg.Generate.Reviews = genReviews
	}
	if cmd.Flags().Changed("seed") {
		cfg.Generate.Seed = genSeed
	}
	if genSize != "" {
		cfg.Generate.Size = genSize
	}
	if genZip {
		cfg.Generate.Zip = true
	}

	// Validate configuration
	if err := cfg.ValidateGenerate(); err != nil {
		return err
	}

	genCfg := datagen.DefaultConfig()
	genCfg.Orders = cfg.Generate.Orders
	genCfg.Customers = cfg.Generate.Customers
	genCfg.Products = cfg.Generate.Products
	genCfg.Reviews = cfg.Generate.Reviews
	genCfg.Seed = cfg.Generate.Seed

	if cfg.Generate.Size != "" {
		// Parse target size
		targetBytes, err := parseSize(cfg.Generate.Size)
		if err != nil {
			return fmt.Errorf("invalid size: %w", err)
		}
		genCfg = datagen.ScaleToSize(genCfg, targetBytes)
	}

	res, err := datagen.NewGenerator(genCfg).Generate()
	if err != nil {
		return fmt.Errorf("failed to generate data: %w", err)
	}

	out, err := datagen.Write(res, cfg.Generate.OutputDir, cfg.Generate.Zip)
	if err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}

	logging.Info().
		Str("output_dir", cfg.Generate.OutputDir).
		Uint64("seed", genCfg.Seed).
		Msg("Dataset generation complete")

	w := cmd.OutOrStdout()
	color.New(color.FgGreen, color.Bold).Fprintf(w, "Dataset written to %s\n", cfg.Generate.OutputDir)
	fmt.Fprintf(w, "  clean: %s\n", out.CleanDir)
	fmt.Fprintf(w, "  raw:   %s\n", out.RawDir)
	fmt.Fprintf(w, "  orders %d, customers %d, products %d, reviews %d\n",
		genCfg.Orders, genCfg.Customers, genCfg.Products, genCfg.Reviews)
	if out.Zip != "" {
		fmt.Fprintf(w, "  zip:   %s\n", out.Zip)
	}
	return nil
}

// parseSize converts a size string (e.g., "5GB", "500MB") to bytes.
func parseSize(s string) (int64, error) {
	var value float64
	var unit string

	_, err := fmt.Sscanf(s, "%f%s", &value, &unit)
	if err != nil {
		return 0, fmt.Errorf("invalid size format: %s", s)
	}

	var multiplier int64
	switch unit {
	case "B", "b":
		multiplier = 1
	case "KB", "kb", "K", "k":
		multiplier = 1024
	case "MB", "mb", "M", "m":
		multiplier = 1024 * 1024
	case "GB", "gb", "G", "g":
		multiplier = 1024 * 1024 * 1024
	case "TB", "tb", "T", "t":
		multiplier = 1024 * 1024 * 1024 * 1024
	default:
		return 0, fmt.Errorf("unknown size unit: %s", unit)
	}

	return int64(value * float64(multiplier)), nil
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/IshaanNene/CatalogGoat/internal/config"
	"github.com/IshaanNene/CatalogGoat/internal/engine"
	"github.com/IshaanNene/CatalogGoat/internal/observability"
	"github.com/IshaanNene/CatalogGoat/internal/source"
	"github.com/IshaanNene/CatalogGoat/internal/storage"
)

var (
	cfgFile      string
	verbose      bool
	outputPath   string
	outputTypes  string
	inputFormat  string
	baseURL      string
	unclassified string
	summaryPath  string
	textfilePath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cataloggoat",
		Short: "CatalogGoat: crawl snapshot to product catalog",
		Long: `CatalogGoat turns a crawl snapshot of a storefront into a deduplicated
product and category catalog.

It reads page records (JSON, JSONL, or a directory of HTML snapshots),
classifies pages, extracts products from listing blocks and product
pages, merges duplicates, and writes products and categories to JSON,
JSONL, CSV, MongoDB, or SQLite.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(buildCmd())
	rootCmd.AddCommand(classifyCmd())
	rootCmd.AddCommand(categoriesCmd())
	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(configCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildCmd creates the "build" subcommand.
func buildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [input]",
		Short: "Build the catalog from a crawl dataset",
		Long:  "Load page records, extract and merge products, and write the catalog to the configured sinks.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBuild,
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output directory for file sinks")
	cmd.Flags().StringVarP(&outputTypes, "format", "f", "", "comma-separated sinks: json, jsonl, csv, mongodb, sqlite")
	cmd.Flags().StringVar(&inputFormat, "input-format", "", "input format: auto, json, jsonl, html")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "site URL used to name HTML snapshots without a canonical link")
	cmd.Flags().StringVar(&unclassified, "unclassified", "", "what to do with unclassified products: drop, other")
	cmd.Flags().StringVar(&summaryPath, "summary", "", "write a YAML run summary to this path")
	cmd.Flags().StringVar(&textfilePath, "metrics-textfile", "", "write Prometheus counters to this path")

	return cmd
}

// runBuild executes the build command.
func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting build",
		"input", cfg.Input.Path,
		"format", cfg.Input.Format,
		"sinks", cfg.Storage.Types,
		"unclassified", cfg.Classify.Unclassified,
	)

	pages, err := source.NewLoader(cfg.Input, logger).Load()
	if err != nil {
		return fmt.Errorf("load input: %w", err)
	}

	res, err := engine.New(cfg, logger).Run(ctx, pages)
	if err != nil {
		return fmt.Errorf("build catalog: %w", err)
	}

	store, err := storage.New(cfg.Storage, logger)
	if err != nil {
		return fmt.Errorf("create storage: %w", err)
	}
	defer store.Close()

	metrics := observability.NewMetrics(logger)
	stats := res.Stats.Snapshot()
	metrics.Record(stats, res.Stats.Elapsed)

	writeErr := store.Write(ctx, res.Catalog)
	if writeErr != nil {
		metrics.StorageErrors.Add(1)
	}

	if cfg.Report.TextfilePath != "" {
		if err := metrics.WriteTextfile(cfg.Report.TextfilePath); err != nil {
			logger.Warn("metrics textfile not written", "path", cfg.Report.TextfilePath, "error", err)
		}
	}
	if cfg.Report.SummaryPath != "" {
		summary := observability.NewSummary(cfg.Input.Path, cfg.Storage.Types, res.Catalog, stats, res.Stats.Elapsed)
		if err := summary.WriteFile(cfg.Report.SummaryPath); err != nil {
			logger.Warn("summary not written", "path", cfg.Report.SummaryPath, "error", err)
		}
	}

	if writeErr != nil {
		return fmt.Errorf("write catalog: %w", writeErr)
	}

	fmt.Printf("\n✅ Catalog built in %s\n", res.Stats.Elapsed.Round(time.Millisecond))
	fmt.Printf("   Pages:      %v read, %v unique, %v skipped\n", stats["pages_in"], stats["pages_unique"], stats["pages_skipped"])
	fmt.Printf("   Candidates: %v found, %v dropped, %v merged\n", stats["candidates_found"], stats["candidates_dropped"], stats["candidates_merged"])
	fmt.Printf("   Products:   %v\n", stats["products_out"])
	fmt.Printf("   Categories: %d (%v with image)\n", len(res.Catalog.Categories), stats["categories_with_imgs"])
	fmt.Printf("   Output:     %s (%s)\n", cfg.Storage.OutputPath, strings.Join(cfg.Storage.Types, ", "))

	if stats["products_out"] == 0 {
		fmt.Println("\n💡 No products were found. Check that the input holds listing or product pages,")
		fmt.Println("   or try --unclassified other to keep products no category rule matched.")
	}

	return nil
}

// loadConfig loads, overrides and validates the configuration.
func loadConfig(args []string) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	applyCLIOverrides(cfg, args)
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// versionCmd creates the "version" subcommand.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("CatalogGoat %s\n", config.Version)
		},
	}
}

// configCmd creates the "config" subcommand for inspecting configuration.
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			return enc.Close()
		},
	}
}

// setupLogger creates a structured logger from the logging config.
func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

// applyCLIOverrides applies command-line flag values to the config.
func applyCLIOverrides(cfg *config.Config, args []string) {
	if len(args) > 0 {
		cfg.Input.Path = args[0]
	}
	if inputFormat != "" {
		cfg.Input.Format = strings.ToLower(inputFormat)
	}
	if baseURL != "" {
		cfg.Input.BaseURL = baseURL
	}
	if outputPath != "" {
		cfg.Storage.OutputPath = outputPath
	}
	if outputTypes != "" {
		var sinks []string
		for _, t := range strings.Split(outputTypes, ",") {
			if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
				sinks = append(sinks, t)
			}
		}
		cfg.Storage.Types = sinks
	}
	if unclassified != "" {
		cfg.Classify.Unclassified = strings.ToLower(unclassified)
	}
	if summaryPath != "" {
		cfg.Report.SummaryPath = summaryPath
	}
	if textfilePath != "" {
		cfg.Report.TextfilePath = textfilePath
	}
}

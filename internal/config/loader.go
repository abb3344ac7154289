package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from file, environment, and CLI flags.
// Priority (highest to lowest): CLI flags > env vars > config file > defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	setDefaults(v, cfg)

	v.SetEnvPrefix("CATALOGGOAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("cataloggoat")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".cataloggoat"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && configPath != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Slices are replaced, not merged element-wise into the defaults.
	cfg.Storage.Types = nil
	cfg.Extract.ListingURLs = nil
	if v.IsSet("catalog.categories") {
		cfg.Catalog.Categories = nil
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// setDefaults registers default values in viper.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("input.path", cfg.Input.Path)
	v.SetDefault("input.format", cfg.Input.Format)
	v.SetDefault("input.base_url", cfg.Input.BaseURL)

	v.SetDefault("extract.product_page_marker", cfg.Extract.ProductPageMarker)
	v.SetDefault("extract.image_host_prefix", cfg.Extract.ImageHostPrefix)
	v.SetDefault("extract.description_min_length", cfg.Extract.DescriptionMinLength)
	v.SetDefault("extract.description_max_length", cfg.Extract.DescriptionMaxLength)
	v.SetDefault("extract.listing_urls", cfg.Extract.ListingURLs)

	v.SetDefault("classify.unclassified", cfg.Classify.Unclassified)

	v.SetDefault("storage.types", cfg.Storage.Types)
	v.SetDefault("storage.output_path", cfg.Storage.OutputPath)
	v.SetDefault("storage.mongo.uri", cfg.Storage.Mongo.URI)
	v.SetDefault("storage.mongo.database", cfg.Storage.Mongo.Database)
	v.SetDefault("storage.mongo.products_collection", cfg.Storage.Mongo.ProductsCollection)
	v.SetDefault("storage.mongo.category_collection", cfg.Storage.Mongo.CategoryCollection)
	v.SetDefault("storage.sqlite.path", cfg.Storage.SQLite.Path)

	v.SetDefault("report.summary_path", cfg.Report.SummaryPath)
	v.SetDefault("report.textfile_path", cfg.Report.TextfilePath)

	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
}

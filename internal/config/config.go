package config

// Version is set at build time via ldflags.
var Version = "dev"

// Config is the root configuration for CatalogGoat.
type Config struct {
	Input    InputConfig    `mapstructure:"input"    yaml:"input"`
	Extract  ExtractConfig  `mapstructure:"extract"  yaml:"extract"`
	Classify ClassifyConfig `mapstructure:"classify" yaml:"classify"`
	Catalog  CatalogConfig  `mapstructure:"catalog"  yaml:"catalog"`
	Storage  StorageConfig  `mapstructure:"storage"  yaml:"storage"`
	Report   ReportConfig   `mapstructure:"report"   yaml:"report"`
	Logging  LoggingConfig  `mapstructure:"logging"  yaml:"logging"`
}

// InputConfig controls where the crawl dataset is read from.
type InputConfig struct {
	Path    string `mapstructure:"path"     yaml:"path"`
	Format  string `mapstructure:"format"   yaml:"format"` // json, jsonl, html, or auto
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
}

// ExtractConfig controls the product extractor.
type ExtractConfig struct {
	ProductPageMarker    string   `mapstructure:"product_page_marker"    yaml:"product_page_marker"`
	ImageHostPrefix      string   `mapstructure:"image_host_prefix"      yaml:"image_host_prefix"`
	DescriptionMinLength int      `mapstructure:"description_min_length" yaml:"description_min_length"`
	DescriptionMaxLength int      `mapstructure:"description_max_length" yaml:"description_max_length"`
	ListingURLs          []string `mapstructure:"listing_urls"           yaml:"listing_urls"` // empty: pages with a category URL
}

// ClassifyConfig controls what happens to products no rule matches.
type ClassifyConfig struct {
	Unclassified string `mapstructure:"unclassified" yaml:"unclassified"` // drop or other
}

// CatalogConfig holds the fixed storefront categories.
type CatalogConfig struct {
	Categories []CategoryDef `mapstructure:"categories" yaml:"categories"`
}

// CategoryDef is the static part of a storefront category.
type CategoryDef struct {
	Name        string `mapstructure:"name"        yaml:"name"`
	Slug        string `mapstructure:"slug"        yaml:"slug"`
	Description string `mapstructure:"description" yaml:"description"`
	URL         string `mapstructure:"url"         yaml:"url"`
}

// StorageConfig controls output/storage.
type StorageConfig struct {
	Types      []string     `mapstructure:"types"       yaml:"types"`
	OutputPath string       `mapstructure:"output_path" yaml:"output_path"`
	Mongo      MongoConfig  `mapstructure:"mongo"       yaml:"mongo"`
	SQLite     SQLiteConfig `mapstructure:"sqlite"      yaml:"sqlite"`
}

// MongoConfig configures the MongoDB sink.
type MongoConfig struct {
	URI                string `mapstructure:"uri"                 yaml:"uri"`
	Database           string `mapstructure:"database"            yaml:"database"`
	ProductsCollection string `mapstructure:"products_collection" yaml:"products_collection"`
	CategoryCollection string `mapstructure:"category_collection" yaml:"category_collection"`
}

// SQLiteConfig configures the SQLite sink.
type SQLiteConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// ReportConfig controls the run summary and counters file.
type ReportConfig struct {
	SummaryPath  string `mapstructure:"summary_path"  yaml:"summary_path"`
	TextfilePath string `mapstructure:"textfile_path" yaml:"textfile_path"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DefaultCategories are the six homepage categories of the storefront.
func DefaultCategories() []CategoryDef {
	return []CategoryDef{
		{
			Name:        "Hand Sanitizers",
			Slug:        "hand-sanitizers",
			Description: "Get your hands on the best hand sanitizer products from D2 Sanitizers. Stay germ-free with our effective sanitizing solutions.",
			URL:         "https://www.d2sanitizers.com/hand-sanitizers",
		},
		{
			Name:        "Hand Soaps",
			Slug:        "hand-soaps",
			Description: "Experience the strength of D2 Sanitizers' industrial hand soaps. Tough on grime yet gentle on skin.",
			URL:         "https://www.d2sanitizers.com/industrial-hand-soap",
		},
		{
			Name:        "Floor Sanitizers for Food Service",
			Slug:        "floor-sanitizers",
			Description: "Find top-quality floor sanitizers for food service businesses. Keep your workspace clean and safe with our professional-grade products.",
			URL:         "https://www.d2sanitizers.com/floor-sanitizers",
		},
		{
			Name:        "Food Safe Disinfectant Wipes",
			Slug:        "disinfectant-wipes",
			Description: "Powerful disinfectant wipes designed for food processing facilities. Eliminate pathogens on surfaces to maintain hygiene and safety compliance.",
			URL:         "https://www.d2sanitizers.com/disinfectant-wipes",
		},
		{
			Name:        "Dispensing Options",
			Slug:        "dispensers",
			Description: "Explore high-quality sanitizing dispensers at D2 Sanitizers, designed for efficient and hygienic distribution in food service, industrial, and commercial settings.",
			URL:         "https://www.d2sanitizers.com/dispensers",
		},
		{
			Name:        "Peracetic Acid Products",
			Slug:        "peracetic-acid",
			Description: "Discover D2 Sanitizers' peracetic acid solutions for eco-friendly disinfection across industries. Safe, effective, and ideal for agriculture, food, healthcare, and more.",
			URL:         "https://www.d2sanitizers.com/peracetic-acid",
		},
	}
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Path:   "./d2-apify-crawl.json",
			Format: "auto",
		},
		Extract: ExtractConfig{
			ProductPageMarker:    "/product/",
			ImageHostPrefix:      "https://cdn.prod.website-files.com",
			DescriptionMinLength: 50,
			DescriptionMaxLength: 300,
		},
		Classify: ClassifyConfig{
			Unclassified: "drop",
		},
		Catalog: CatalogConfig{
			Categories: DefaultCategories(),
		},
		Storage: StorageConfig{
			Types:      []string{"json"},
			OutputPath: "./src/data",
			Mongo: MongoConfig{
				URI:                "mongodb://localhost:27017",
				Database:           "storefront",
				ProductsCollection: "products",
				CategoryCollection: "categories",
			},
			SQLite: SQLiteConfig{
				Path: "./src/data/catalog.db",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

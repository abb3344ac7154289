package observability

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/IshaanNene/CatalogGoat/internal/catalog"
	"github.com/IshaanNene/CatalogGoat/internal/storage"
	"github.com/IshaanNene/CatalogGoat/internal/types"
)

// Summary is the human-readable report of one catalog build.
type Summary struct {
	Input      string            `yaml:"input"`
	Storage    []string          `yaml:"storage"`
	Duration   string            `yaml:"duration"`
	Totals     map[string]int64  `yaml:"totals"`
	Products   int               `yaml:"products"`
	Categories []CategorySummary `yaml:"categories"`
}

// CategorySummary is one category line in the summary.
type CategorySummary struct {
	Name     string `yaml:"name"`
	Products int    `yaml:"products"`
	HasImage bool   `yaml:"has_image"`
}

// NewSummary builds the summary for a catalog. Categories are sorted by name
// and include every category a product references, even ones without a
// storefront definition.
func NewSummary(input string, storage []string, c *types.Catalog, stats map[string]int64, elapsed time.Duration) *Summary {
	counts := catalog.CountByCategory(c.Products)
	images := make(map[string]bool)
	for _, cat := range c.Categories {
		images[cat.Name] = cat.Image != ""
		if _, ok := counts[cat.Name]; !ok {
			counts[cat.Name] = 0
		}
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	s := &Summary{
		Input:    input,
		Storage:  storage,
		Duration: elapsed.Round(time.Millisecond).String(),
		Totals:   stats,
		Products: len(c.Products),
	}
	for _, name := range names {
		s.Categories = append(s.Categories, CategorySummary{
			Name:     name,
			Products: counts[name],
			HasImage: images[name],
		})
	}
	return s
}

// Marshal renders the summary as YAML.
func (s *Summary) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("encode summary: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode summary: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile writes the summary YAML to path.
func (s *Summary) WriteFile(path string) error {
	data, err := s.Marshal()
	if err != nil {
		return err
	}
	if err := storage.WriteFileAtomic(path, data); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

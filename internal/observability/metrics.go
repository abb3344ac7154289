package observability

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/IshaanNene/CatalogGoat/internal/storage"
)

// Metrics tracks counters for catalog builds.
type Metrics struct {
	// Page metrics
	PagesIn      atomic.Int64
	PagesUnique  atomic.Int64
	PagesSkipped atomic.Int64
	ProductPages atomic.Int64

	// Candidate metrics
	CandidatesFound   atomic.Int64
	CandidatesDropped atomic.Int64
	CandidatesMerged  atomic.Int64

	// Output metrics
	ProductsOut          atomic.Int64
	CategoriesWithImages atomic.Int64
	StorageErrors        atomic.Int64

	// RunMillis holds the duration of the last run.
	RunMillis atomic.Int64

	logger *slog.Logger
}

// NewMetrics creates a new Metrics instance.
func NewMetrics(logger *slog.Logger) *Metrics {
	return &Metrics{
		logger: logger.With("component", "metrics"),
	}
}

// Record adds a run's stats snapshot to the counters. Unknown keys are ignored.
func (m *Metrics) Record(stats map[string]int64, elapsed time.Duration) {
	counters := map[string]*atomic.Int64{
		"pages_in":             &m.PagesIn,
		"pages_unique":         &m.PagesUnique,
		"pages_skipped":        &m.PagesSkipped,
		"product_pages":        &m.ProductPages,
		"candidates_found":     &m.CandidatesFound,
		"candidates_dropped":   &m.CandidatesDropped,
		"candidates_merged":    &m.CandidatesMerged,
		"products_out":         &m.ProductsOut,
		"categories_with_imgs": &m.CategoriesWithImages,
	}
	for k, v := range stats {
		if c, ok := counters[k]; ok {
			c.Add(v)
		}
	}
	m.RunMillis.Store(elapsed.Milliseconds())
}

type metric struct {
	name  string
	help  string
	kind  string
	value string
}

func (m *Metrics) metrics() []metric {
	counter := func(name, help string, v int64) metric {
		return metric{name, help, "counter", fmt.Sprintf("%d", v)}
	}
	return []metric{
		counter("cataloggoat_pages_total", "Total page records read", m.PagesIn.Load()),
		counter("cataloggoat_pages_unique_total", "Total pages after URL dedup", m.PagesUnique.Load()),
		counter("cataloggoat_pages_skipped_total", "Total pages not scanned", m.PagesSkipped.Load()),
		counter("cataloggoat_product_pages_total", "Total product detail pages", m.ProductPages.Load()),
		counter("cataloggoat_candidates_total", "Total product candidates extracted", m.CandidatesFound.Load()),
		counter("cataloggoat_candidates_dropped_total", "Total candidates dropped by the pipeline", m.CandidatesDropped.Load()),
		counter("cataloggoat_candidates_merged_total", "Total candidates merged into an existing product", m.CandidatesMerged.Load()),
		counter("cataloggoat_products_total", "Total products written", m.ProductsOut.Load()),
		counter("cataloggoat_categories_with_image_total", "Total categories with an image", m.CategoriesWithImages.Load()),
		counter("cataloggoat_storage_errors_total", "Total storage backend failures", m.StorageErrors.Load()),
		{
			name:  "cataloggoat_last_run_duration_seconds",
			help:  "Duration of the last catalog build",
			kind:  "gauge",
			value: fmt.Sprintf("%.3f", float64(m.RunMillis.Load())/1000),
		},
	}
}

// WriteTo writes the metrics in Prometheus text exposition format.
func (m *Metrics) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, metric := range m.metrics() {
		n, err := fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s %s\n%s %s\n",
			metric.name, metric.help, metric.name, metric.kind, metric.name, metric.value)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteTextfile writes the metrics to path for the node exporter textfile
// collector. The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		return err
	}
	if err := storage.WriteFileAtomic(path, buf.Bytes()); err != nil {
		return fmt.Errorf("write textfile: %w", err)
	}
	m.logger.Debug("metrics textfile written", "path", path)
	return nil
}

// Snapshot returns all metrics as a map.
func (m *Metrics) Snapshot() map[string]int64 {
	return map[string]int64{
		"pages_in":             m.PagesIn.Load(),
		"pages_unique":         m.PagesUnique.Load(),
		"pages_skipped":        m.PagesSkipped.Load(),
		"product_pages":        m.ProductPages.Load(),
		"candidates_found":     m.CandidatesFound.Load(),
		"candidates_dropped":   m.CandidatesDropped.Load(),
		"candidates_merged":    m.CandidatesMerged.Load(),
		"products_out":         m.ProductsOut.Load(),
		"categories_with_imgs": m.CategoriesWithImages.Load(),
		"storage_errors":       m.StorageErrors.Load(),
	}
}

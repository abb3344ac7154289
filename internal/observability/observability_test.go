package observability

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/IshaanNene/CatalogGoat/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func TestMetricsRecord(t *testing.T) {
	m := NewMetrics(testLogger)
	stats := map[string]int64{
		"pages_in":     10,
		"products_out": 4,
		"unknown_key":  99,
	}
	m.Record(stats, 1500*time.Millisecond)
	m.Record(stats, 250*time.Millisecond)

	snap := m.Snapshot()
	if snap["pages_in"] != 20 || snap["products_out"] != 8 {
		t.Errorf("unexpected snapshot: %v", snap)
	}
	if _, ok := snap["unknown_key"]; ok {
		t.Error("unknown key leaked into snapshot")
	}
	if m.RunMillis.Load() != 250 {
		t.Errorf("expected last run duration 250ms, got %d", m.RunMillis.Load())
	}
}

func TestMetricsTextfile(t *testing.T) {
	m := NewMetrics(testLogger)
	m.Record(map[string]int64{"candidates_found": 7}, 2*time.Second)
	m.StorageErrors.Add(1)

	path := filepath.Join(t.TempDir(), "metrics", "cataloggoat.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(raw)

	for _, want := range []string{
		"# TYPE cataloggoat_candidates_total counter\ncataloggoat_candidates_total 7\n",
		"cataloggoat_storage_errors_total 1\n",
		"# TYPE cataloggoat_last_run_duration_seconds gauge\ncataloggoat_last_run_duration_seconds 2.000\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("textfile missing %q:\n%s", want, out)
		}
	}

	var buf bytes.Buffer
	n, err := m.WriteTo(&buf)
	if err != nil || n != int64(len(raw)) {
		t.Errorf("WriteTo = (%d, %v), want (%d, nil)", n, err, len(raw))
	}
}

func TestSummary(t *testing.T) {
	c := &types.Catalog{
		Products: []types.Product{
			{Name: "A", Slug: "a", Category: "Hand Soaps"},
			{Name: "B", Slug: "b", Category: "Dispensing Options"},
			{Name: "C", Slug: "c", Category: "Hand Soaps"},
			{Name: "D", Slug: "d", Category: "Other"},
		},
		Categories: []types.Category{
			{Name: "Hand Soaps", Image: "soap.jpg"},
			{Name: "Dispensing Options"},
			{Name: "Peracetic Acid Products"},
		},
	}

	s := NewSummary("crawl.json", []string{"json"}, c, map[string]int64{"pages_in": 3}, 1234*time.Microsecond)
	if s.Products != 4 || s.Duration != "1ms" {
		t.Errorf("unexpected totals: %+v", s)
	}

	want := []CategorySummary{
		{Name: "Dispensing Options", Products: 1},
		{Name: "Hand Soaps", Products: 2, HasImage: true},
		{Name: "Other", Products: 1},
		{Name: "Peracetic Acid Products", Products: 0},
	}
	if len(s.Categories) != len(want) {
		t.Fatalf("expected %d categories, got %+v", len(want), s.Categories)
	}
	for i := range want {
		if s.Categories[i] != want[i] {
			t.Errorf("category %d = %+v, want %+v", i, s.Categories[i], want[i])
		}
	}

	path := filepath.Join(t.TempDir(), "summary.yaml")
	if err := s.WriteFile(path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var back Summary
	if err := yaml.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Input != "crawl.json" || back.Totals["pages_in"] != 3 || len(back.Categories) != 4 {
		t.Errorf("unexpected round trip: %+v", back)
	}
}

package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmlee-dev/reportdeck/internal/sitecfg"
)

func TestExportWritesPagesAndAssets(t *testing.T) {
	assetsDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")

	if err := os.MkdirAll(filepath.Join(assetsDir, "uploads"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(assetsDir, "uploads", "shot.png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := sitecfg.DefaultConfig()
	cfg.HeaderProjectTitle = "Export Test"
	cfg.ContentItemsMO = []sitecfg.ContentItem{{
		Title:       "First",
		Description: "desc",
		Images:      []string{"http://localhost:8090/assets/uploads/shot.png", "https://cdn.example.com/ext.png"},
	}}

	exp := NewExporter(assetsDir, outDir, "http://localhost:8090")
	written, err := exp.Export(cfg, &CIReporter{})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	// One asset plus the two pages.
	if written != 3 {
		t.Errorf("written = %d, want 3", written)
	}

	index, err := os.ReadFile(filepath.Join(outDir, "index.html"))
	if err != nil {
		t.Fatalf("reading index.html: %v", err)
	}
	if !strings.Contains(string(index), "Export Test") {
		t.Error("index.html missing the project title")
	}
	if !strings.Contains(string(index), `assets/uploads/shot.png`) {
		t.Error("index.html does not reference the relative asset path")
	}
	if strings.Contains(string(index), "http://localhost:8090/assets/") {
		t.Error("index.html still references the absolute asset URL")
	}

	if _, err := os.Stat(filepath.Join(outDir, "pc.html")); err != nil {
		t.Errorf("pc.html missing: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "assets", "uploads", "shot.png"))
	if err != nil {
		t.Fatalf("reading copied asset: %v", err)
	}
	if string(data) != "png" {
		t.Errorf("copied asset = %q", data)
	}
}

func TestExportLeavesSourceUntouched(t *testing.T) {
	cfg := sitecfg.DefaultConfig()
	cfg.ContentItemsMO = []sitecfg.ContentItem{{
		Title:  "Item",
		Images: []string{"/assets/uploads/a.png"},
	}}

	assetsDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(assetsDir, "uploads"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(assetsDir, "uploads", "a.png"), []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}

	exp := NewExporter(assetsDir, filepath.Join(t.TempDir(), "out"), "http://localhost:8090")
	if _, err := exp.Export(cfg, &CIReporter{}); err != nil {
		t.Fatalf("Export: %v", err)
	}

	if cfg.ContentItemsMO[0].Images[0] != "/assets/uploads/a.png" {
		t.Errorf("export rewrote the caller's config: %q", cfg.ContentItemsMO[0].Images[0])
	}
}

func TestExportMissingAssetFails(t *testing.T) {
	cfg := sitecfg.DefaultConfig()
	cfg.ContentItemsMO = []sitecfg.ContentItem{{
		Title:  "Item",
		Images: []string{"/assets/uploads/gone.png"},
	}}

	exp := NewExporter(t.TempDir(), filepath.Join(t.TempDir(), "out"), "http://localhost:8090")
	if _, err := exp.Export(cfg, &CIReporter{}); err == nil {
		t.Error("Export succeeded with a missing asset")
	}
}

package export

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/jmlee-dev/reportdeck/internal/sitecfg"
	"github.com/jmlee-dev/reportdeck/internal/web"
)

// Exporter writes a self-contained static snapshot of the site: one
// print-layout page per device mode plus every locally hosted asset the
// configuration references, with URLs rewritten to relative paths.
type Exporter struct {
	AssetsDir string // on-disk root of the local asset store
	OutputDir string
	BaseURL   string // public prefix assets were uploaded under
}

// NewExporter creates an Exporter with the given directories.
func NewExporter(assetsDir, outputDir, baseURL string) *Exporter {
	return &Exporter{
		AssetsDir: assetsDir,
		OutputDir: outputDir,
		BaseURL:   strings.TrimSuffix(baseURL, "/"),
	}
}

// pages maps output file names to the device mode they render.
var pages = []struct {
	file string
	mode sitecfg.DeviceMode
}{
	{"index.html", sitecfg.ModeMO},
	{"pc.html", sitecfg.ModePC},
}

// Export builds the static site from the given configuration. Returns
// the number of files written.
func (e *Exporter) Export(cfg *sitecfg.SiteConfig, reporter Reporter) (int, error) {
	if reporter == nil {
		reporter = NewReporter()
	}

	snapshot := cfg.Clone()
	assets := e.rewriteAssetURLs(snapshot)

	total := len(assets) + len(pages)
	reporter.Start(total)
	defer reporter.Finish()

	if err := os.MkdirAll(e.OutputDir, 0o755); err != nil {
		return 0, fmt.Errorf("creating output dir: %w", err)
	}

	written := 0
	for _, rel := range assets {
		if err := e.copyAsset(rel); err != nil {
			return written, err
		}
		written++
		reporter.Update(written, rel)
	}

	for _, p := range pages {
		body, err := web.RenderPrintPage(snapshot, p.mode)
		if err != nil {
			return written, fmt.Errorf("rendering %s: %w", p.file, err)
		}
		if err := os.WriteFile(filepath.Join(e.OutputDir, p.file), body, 0o644); err != nil {
			return written, fmt.Errorf("writing %s: %w", p.file, err)
		}
		written++
		reporter.Update(written, p.file)
	}

	return written, nil
}

// rewriteAssetURLs replaces locally hosted asset URLs in cfg with paths
// relative to the export root and returns the store-relative paths of
// every asset that needs copying. External URLs are left untouched.
func (e *Exporter) rewriteAssetURLs(cfg *sitecfg.SiteConfig) []string {
	seen := make(map[string]bool)
	var assets []string

	rewrite := func(url string) string {
		rel, ok := e.localAssetPath(url)
		if !ok {
			return url
		}
		if !seen[rel] {
			seen[rel] = true
			assets = append(assets, rel)
		}
		return "assets/" + rel
	}

	cfg.HeaderLogoURL = rewrite(cfg.HeaderLogoURL)
	for _, items := range [][]sitecfg.ContentItem{cfg.ContentItemsMO, cfg.ContentItemsPC} {
		for i := range items {
			for j, img := range items[i].Images {
				items[i].Images[j] = rewrite(img)
			}
		}
	}
	return assets
}

// localAssetPath reports whether url points at the local asset store and
// returns its store-relative path if so.
func (e *Exporter) localAssetPath(url string) (string, bool) {
	for _, prefix := range []string{e.BaseURL + "/assets/", "/assets/"} {
		if rest, ok := strings.CutPrefix(url, prefix); ok && rest != "" {
			return path.Clean(rest), true
		}
	}
	return "", false
}

func (e *Exporter) copyAsset(rel string) error {
	src := filepath.Join(e.AssetsDir, filepath.FromSlash(rel))
	dst := filepath.Join(e.OutputDir, "assets", filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("creating asset dir: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening asset %s: %w", rel, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating asset copy %s: %w", rel, err)
	}
	_, err = io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("copying asset %s: %w", rel, err)
	}
	return nil
}

package web

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jmlee-dev/reportdeck/internal/sitecfg"
)

//go:embed index.html
var indexHTML []byte

// Pages serves the viewer/admin single-page UI and the server-rendered
// print layout.
type Pages struct {
	configs *sitecfg.Store
}

// New creates the page handlers over the config store.
func New(configs *sitecfg.Store) *Pages {
	return &Pages{configs: configs}
}

// RegisterRoutes mounts the UI routes.
func (p *Pages) RegisterRoutes(r chi.Router) {
	r.Get("/", p.ServeIndex)
	r.Get("/print", p.ServePrint)
}

// ServeIndex serves the embedded single-page viewer and admin editor.
func (p *Pages) ServeIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

// ServePrint renders the print layout for the requested device mode
// (?mode=MO|PC, default MO).
func (p *Pages) ServePrint(w http.ResponseWriter, r *http.Request) {
	mode := sitecfg.ModeMO
	if v := r.URL.Query().Get("mode"); v != "" {
		parsed, err := sitecfg.ParseMode(v)
		if err != nil {
			http.Error(w, `{"error":`+strconv.Quote(err.Error())+`}`, http.StatusBadRequest)
			return
		}
		mode = parsed
	}

	cfg, err := p.configs.FetchOrDefault(r.Context())
	if err != nil {
		http.Error(w, `{"error":`+strconv.Quote(err.Error())+`}`, http.StatusInternalServerError)
		return
	}

	page, err := RenderPrintPage(cfg, mode)
	if err != nil {
		http.Error(w, `{"error":`+strconv.Quote(err.Error())+`}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

type printItem struct {
	Category    string
	Title       string
	Description template.HTML
	Image       string
}

type printPage struct {
	ProjectTitle string
	LogoURL      string
	Items        []printItem
}

var printTmpl = template.Must(template.New("print").Parse(printTemplate))

// RenderPrintPage builds the static print layout for one device mode.
// The first image of each item is the one framed; descriptions are
// rendered from markdown.
func RenderPrintPage(cfg *sitecfg.SiteConfig, mode sitecfg.DeviceMode) ([]byte, error) {
	items := cfg.Items(mode)
	page := printPage{
		ProjectTitle: cfg.HeaderProjectTitle,
		LogoURL:      cfg.HeaderLogoURL,
		Items:        make([]printItem, 0, len(items)),
	}

	for i, item := range items {
		desc, err := RenderMarkdown(item.Description)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		var image string
		if len(item.Images) > 0 {
			image = item.Images[0]
		}
		page.Items = append(page.Items, printItem{
			Category:    item.DisplayCategory(i),
			Title:       item.Title,
			Description: desc,
			Image:       image,
		})
	}

	var buf bytes.Buffer
	if err := printTmpl.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("rendering print page: %w", err)
	}
	return buf.Bytes(), nil
}

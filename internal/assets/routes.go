package assets

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-chi/chi/v5"
)

// Options configures the upload endpoint.
type Options struct {
	MaxUploadSize   int64    // bytes; DefaultMaxUploadSize when zero
	AllowedPatterns []string // doublestar globs matched against the filename
}

// RegisterRoutes mounts the asset upload endpoint (session-guarded) and
// the public static file handler for stored assets.
func RegisterRoutes(r chi.Router, gw Gateway, dir string, opts Options, requireSession func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(requireSession)
		r.Post("/api/assets", handleUpload(gw, opts))
	})

	fs := http.StripPrefix("/assets/", http.FileServer(http.Dir(dir)))
	r.Get("/assets/*", fs.ServeHTTP)
}

func handleUpload(gw Gateway, opts Options) http.HandlerFunc {
	limit := opts.MaxUploadSize
	if limit <= 0 {
		limit = DefaultMaxUploadSize
	}

	return func(w http.ResponseWriter, r *http.Request) {
		// Cap the request body; some slack for the multipart framing.
		r.Body = http.MaxBytesReader(w, r.Body, limit+1<<20)

		file, header, err := r.FormFile("file")
		if err != nil {
			// A body past the reader cap surfaces here as a parse error;
			// report it as the size rejection it is.
			if errors.As(err, new(*http.MaxBytesError)) {
				writeUploadError(w, http.StatusRequestEntityTooLarge, ErrTooLarge)
				return
			}
			http.Error(w, `{"error":"missing file field"}`, http.StatusBadRequest)
			return
		}
		defer file.Close()

		if header.Size > limit {
			writeUploadError(w, http.StatusRequestEntityTooLarge, ErrTooLarge)
			return
		}
		if !allowed(header.Filename, opts.AllowedPatterns) {
			writeUploadError(w, http.StatusBadRequest, ErrDisallowedType)
			return
		}

		url, err := gw.Upload(r.Context(), header.Filename, file, header.Size)
		if err != nil {
			if IsPermissionError(err) {
				http.Error(w, `{"error":`+strconv.Quote(err.Error())+`,"remediation":`+strconv.Quote(PermissionRemediation)+`}`,
					http.StatusInternalServerError)
				return
			}
			writeUploadError(w, http.StatusBadGateway, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"url": url})
	}
}

func writeUploadError(w http.ResponseWriter, code int, err error) {
	http.Error(w, `{"error":`+strconv.Quote(err.Error())+`}`, code)
}

// allowed matches the upload filename against the configured glob
// patterns. An empty pattern list accepts everything.
func allowed(filename string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	base := filepath.Base(filename)
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}

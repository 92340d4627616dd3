package sitecfg

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the site configuration API routes. requireSession
// guards the authenticated endpoints.
func RegisterRoutes(r chi.Router, store *Store, requireSession func(http.Handler) http.Handler) {
	r.Route("/api/site-config", func(r chi.Router) {
		r.Get("/", handleGetPublic(store))
		r.Group(func(r chi.Router) {
			r.Use(requireSession)
			r.Get("/full", handleGetFull(store))
			r.Put("/", handleSave(store))
		})
	})
}

func handleGetPublic(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := store.FetchOrDefault(r.Context())
		if err != nil {
			http.Error(w, `{"error":`+strconv.Quote(err.Error())+`}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(cfg.Public())
	}
}

func handleGetFull(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := store.FetchOrDefault(r.Context())
		if err != nil {
			http.Error(w, `{"error":`+strconv.Quote(err.Error())+`}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(cfg)
	}
}

func handleSave(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cfg SiteConfig
		if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		Normalize(&cfg)

		if err := store.Save(r.Context(), &cfg); err != nil {
			http.Error(w, `{"error":`+strconv.Quote(err.Error())+`}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "saved"})
	}
}

package editor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jmlee-dev/reportdeck/internal/sitecfg"
)

// RegisterRoutes mounts the admin editor API. Every route is guarded by
// requireSession. Mutation handlers respond with the updated draft so the
// admin UI can re-render from the server's copy.
func RegisterRoutes(r chi.Router, ed *Editor, requireSession func(http.Handler) http.Handler) {
	r.Route("/api/editor", func(r chi.Router) {
		r.Use(requireSession)

		r.Post("/load", handleLoad(ed))
		r.Get("/draft", handleDraft(ed))
		r.Post("/discard", handleDiscard(ed))
		r.Put("/field", handleSetField(ed))
		r.Put("/password", handlePassword(ed))
		r.Post("/save", handleSave(ed))

		r.Route("/items/{mode}", func(r chi.Router) {
			r.Post("/", handleAddItem(ed))
			r.Delete("/{index}", handleRemoveItem(ed))
			r.Post("/{index}/move-up", handleMove(ed, (*Editor).MoveUp))
			r.Post("/{index}/move-down", handleMove(ed, (*Editor).MoveDown))
			r.Put("/{index}/field", handleItemField(ed))
			r.Post("/{index}/images", handleAddImageSlot(ed))
			r.Delete("/{index}/images/{imgIndex}", handleRemoveImageSlot(ed))
			r.Put("/{index}/images/{imgIndex}", handleSetImage(ed))
		})
	})
}

func writeError(w http.ResponseWriter, code int, err error) {
	http.Error(w, `{"error":`+strconv.Quote(err.Error())+`}`, code)
}

// writeDraft responds with the current draft.
func writeDraft(w http.ResponseWriter, ed *Editor) {
	draft, err := ed.Draft()
	if err != nil {
		writeError(w, http.StatusConflict, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(draft)
}

// finish maps mutation errors to status codes, then echoes the draft.
func finish(w http.ResponseWriter, ed *Editor, err error) {
	switch {
	case err == nil:
		writeDraft(w, ed)
	case errors.Is(err, ErrNotLoaded),
		errors.Is(err, ErrConfirmationRequired),
		errors.Is(err, ErrSaveInFlight):
		writeError(w, http.StatusConflict, err)
	default:
		writeError(w, http.StatusBadRequest, err)
	}
}

func modeParam(r *http.Request) (sitecfg.DeviceMode, error) {
	return sitecfg.ParseMode(chi.URLParam(r, "mode"))
}

func indexParam(r *http.Request, name string) (int, error) {
	return strconv.Atoi(chi.URLParam(r, name))
}

func handleLoad(ed *Editor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ed.Load(r.Context()); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeDraft(w, ed)
	}
}

func handleDraft(ed *Editor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Lazily load on first access so a fresh admin session does not
		// need an explicit load call.
		if !ed.Loaded() {
			if err := ed.Load(r.Context()); err != nil {
				writeError(w, http.StatusInternalServerError, err)
				return
			}
		}
		writeDraft(w, ed)
	}
}

func handleDiscard(ed *Editor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		finish(w, ed, ed.Discard())
	}
}

type fieldRequest struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func handleSetField(ed *Editor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req fieldRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		finish(w, ed, ed.SetField(req.Name, req.Value))
	}
}

func handleAddItem(ed *Editor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mode, err := modeParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		finish(w, ed, ed.AddItem(mode))
	}
}

func handleRemoveItem(ed *Editor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mode, err := modeParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		index, err := indexParam(r, "index")
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		confirmed := r.URL.Query().Get("confirmed") == "true"
		finish(w, ed, ed.RemoveItem(mode, index, confirmed))
	}
}

func handleMove(ed *Editor, move func(*Editor, sitecfg.DeviceMode, int) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mode, err := modeParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		index, err := indexParam(r, "index")
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		finish(w, ed, move(ed, mode, index))
	}
}

type itemFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func handleItemField(ed *Editor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mode, err := modeParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		index, err := indexParam(r, "index")
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		var req itemFieldRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		finish(w, ed, ed.UpdateItemField(mode, index, req.Field, req.Value))
	}
}

func handleAddImageSlot(ed *Editor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mode, err := modeParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		index, err := indexParam(r, "index")
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		finish(w, ed, ed.AddImageSlot(mode, index))
	}
}

func handleRemoveImageSlot(ed *Editor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mode, err := modeParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		index, err := indexParam(r, "index")
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		imgIndex, err := indexParam(r, "imgIndex")
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		finish(w, ed, ed.RemoveImageSlot(mode, index, imgIndex))
	}
}

type imageRequest struct {
	URL string `json:"url"`
}

func handleSetImage(ed *Editor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mode, err := modeParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		index, err := indexParam(r, "index")
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		imgIndex, err := indexParam(r, "imgIndex")
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		var req imageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		finish(w, ed, ed.SetItemImage(mode, index, imgIndex, req.URL))
	}
}

type passwordRequest struct {
	Password string `json:"password"`
}

func handlePassword(ed *Editor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req passwordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		finish(w, ed, ed.ChangePassword(req.Password))
	}
}

func handleSave(ed *Editor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := ed.Save(r.Context())
		switch {
		case err == nil:
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"status": "saved"})
		case errors.Is(err, ErrSaveInFlight), errors.Is(err, ErrNotLoaded):
			writeError(w, http.StatusConflict, err)
		default:
			// Gateway failure: surface the message verbatim, draft intact.
			writeError(w, http.StatusBadGateway, err)
		}
	}
}

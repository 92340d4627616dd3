package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jmlee-dev/reportdeck/internal/sitecfg"
)

// ConfigSource reads and writes the persisted site configuration. The
// gate needs it to check the stored password and to persist a confirmed
// reset. Satisfied by *sitecfg.Store.
type ConfigSource interface {
	Fetch(ctx context.Context) (*sitecfg.SiteConfig, error)
	Save(ctx context.Context, cfg *sitecfg.SiteConfig) error
}

// Gate wires the access gate's HTTP surface: login, logout, session
// check, and the RequireSession middleware for admin routes.
type Gate struct {
	sessions   *SessionStore
	configs    ConfigSource
	cookieName string
}

// NewGate creates a Gate using the given session store and config source.
func NewGate(sessions *SessionStore, configs ConfigSource, cookieName string) *Gate {
	if cookieName == "" {
		cookieName = "reportdeck_session"
	}
	return &Gate{sessions: sessions, configs: configs, cookieName: cookieName}
}

// RegisterRoutes mounts the authentication routes.
func (g *Gate) RegisterRoutes(r chi.Router) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", g.handleLogin)
		r.Post("/logout", g.handleLogout)
		r.Get("/session", g.handleSession)
	})
}

// RequireSession is a middleware rejecting requests without a valid
// admin session cookie.
func (g *Gate) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := g.cookieToken(r)
		ok, err := g.sessions.Valid(r.Context(), token)
		if err != nil {
			http.Error(w, `{"error":`+strconv.Quote(err.Error())+`}`, http.StatusInternalServerError)
			return
		}
		if !ok {
			http.Error(w, `{"error":"admin session required"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (g *Gate) cookieToken(r *http.Request) string {
	c, err := r.Cookie(g.cookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

type loginRequest struct {
	Password     string `json:"password"`
	ConfirmReset bool   `json:"confirmReset"`
}

func (g *Gate) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}

	cfg, err := g.configs.Fetch(r.Context())
	if err != nil {
		http.Error(w, `{"error":`+strconv.Quote(err.Error())+`}`, http.StatusInternalServerError)
		return
	}
	if cfg == nil {
		cfg = sitecfg.DefaultConfig()
	}

	switch Authenticate(req.Password, cfg.AdminPassword, req.ConfirmReset) {
	case DecisionReset:
		// Confirmed reset: persist the default password immediately, even
		// without any other edits. The caller is not logged in.
		cfg.AdminPassword = sitecfg.DefaultPassword
		if err := g.configs.Save(r.Context(), cfg); err != nil {
			http.Error(w, `{"error":`+strconv.Quote(err.Error())+`}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]bool{"reset": true})

	case DecisionResetPrompt:
		http.Error(w, `{"error":"confirmation required to reset the password"}`, http.StatusConflict)

	case DecisionLoggedIn:
		token, err := g.sessions.Create(r.Context())
		if err != nil {
			http.Error(w, `{"error":`+strconv.Quote(err.Error())+`}`, http.StatusInternalServerError)
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name:     g.cookieName,
			Value:    token,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]bool{"loggedIn": true})

	default:
		http.Error(w, `{"error":"password does not match"}`, http.StatusUnauthorized)
	}
}

func (g *Gate) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := g.cookieToken(r)
	if token != "" {
		if err := g.sessions.Delete(r.Context(), token); err != nil {
			http.Error(w, `{"error":`+strconv.Quote(err.Error())+`}`, http.StatusInternalServerError)
			return
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     g.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"loggedIn": false})
}

// handleSession lets the UI restore the logged-in state on load without
// re-prompting for the password.
func (g *Gate) handleSession(w http.ResponseWriter, r *http.Request) {
	ok, err := g.sessions.Valid(r.Context(), g.cookieToken(r))
	if err != nil {
		http.Error(w, `{"error":`+strconv.Quote(err.Error())+`}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"loggedIn": ok})
}

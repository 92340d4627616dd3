package editor

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/jmlee-dev/reportdeck/internal/sitecfg"
)

var errTest = errors.New("storage unavailable")

func passthrough(next http.Handler) http.Handler { return next }

func setupAPI(t *testing.T) (*chi.Mux, *fakeGateway) {
	t.Helper()
	gw := &fakeGateway{}
	r := chi.NewRouter()
	RegisterRoutes(r, New(gw), passthrough)
	return r, gw
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestDraftLazyLoads(t *testing.T) {
	r, _ := setupAPI(t)
	rec := do(t, r, "GET", "/api/editor/draft", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var draft sitecfg.SiteConfig
	if err := json.Unmarshal(rec.Body.Bytes(), &draft); err != nil {
		t.Fatalf("decoding draft: %v", err)
	}
	if draft.AdminPassword != sitecfg.DefaultPassword {
		t.Errorf("AdminPassword = %q, want the default", draft.AdminPassword)
	}
}

func TestMutationsEchoDraft(t *testing.T) {
	r, _ := setupAPI(t)
	do(t, r, "GET", "/api/editor/draft", "")

	rec := do(t, r, "POST", "/api/editor/items/MO/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("add item status = %d: %s", rec.Code, rec.Body.String())
	}
	var draft sitecfg.SiteConfig
	json.Unmarshal(rec.Body.Bytes(), &draft)
	if len(draft.ContentItemsMO) != 1 {
		t.Fatalf("echoed draft has %d items, want 1", len(draft.ContentItemsMO))
	}

	rec = do(t, r, "PUT", "/api/editor/items/MO/0/field", `{"field":"title","value":"Edited"}`)
	json.Unmarshal(rec.Body.Bytes(), &draft)
	if draft.ContentItemsMO[0].Title != "Edited" {
		t.Errorf("Title = %q, want %q", draft.ContentItemsMO[0].Title, "Edited")
	}
}

func TestRemoveWithoutConfirmationConflicts(t *testing.T) {
	r, _ := setupAPI(t)
	do(t, r, "GET", "/api/editor/draft", "")
	do(t, r, "POST", "/api/editor/items/MO/", "")

	rec := do(t, r, "DELETE", "/api/editor/items/MO/0", "")
	if rec.Code != http.StatusConflict {
		t.Errorf("unconfirmed delete status = %d, want 409", rec.Code)
	}

	rec = do(t, r, "DELETE", "/api/editor/items/MO/0?confirmed=true", "")
	if rec.Code != http.StatusOK {
		t.Errorf("confirmed delete status = %d: %s", rec.Code, rec.Body.String())
	}
}

func TestInvalidModeRejected(t *testing.T) {
	r, _ := setupAPI(t)
	do(t, r, "GET", "/api/editor/draft", "")

	rec := do(t, r, "POST", "/api/editor/items/TABLET/", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid mode status = %d, want 400", rec.Code)
	}
}

func TestSaveEndpointPersists(t *testing.T) {
	r, gw := setupAPI(t)
	do(t, r, "GET", "/api/editor/draft", "")
	do(t, r, "PUT", "/api/editor/field", `{"name":"headerProjectTitle","value":"Saved Title"}`)

	rec := do(t, r, "POST", "/api/editor/save", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("save status = %d: %s", rec.Code, rec.Body.String())
	}
	if gw.stored == nil || gw.stored.HeaderProjectTitle != "Saved Title" {
		t.Errorf("gateway stored = %+v, want the saved draft", gw.stored)
	}
}

func TestSaveGatewayFailure(t *testing.T) {
	r, gw := setupAPI(t)
	do(t, r, "GET", "/api/editor/draft", "")
	gw.saveErr = errTest

	rec := do(t, r, "POST", "/api/editor/save", "")
	if rec.Code != http.StatusBadGateway {
		t.Errorf("failed save status = %d, want 502", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), errTest.Error()) {
		t.Errorf("body %q does not surface the gateway error", rec.Body.String())
	}
}

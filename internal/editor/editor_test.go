package editor

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jmlee-dev/reportdeck/internal/sitecfg"
)

// fakeGateway is an in-memory ConfigGateway with controllable failures
// and an optional hook that runs inside Save.
type fakeGateway struct {
	mu       sync.Mutex
	stored   *sitecfg.SiteConfig
	fetchErr error
	saveErr  error
	saves    int
	saveHook func()
}

func (g *fakeGateway) Fetch(ctx context.Context) (*sitecfg.SiteConfig, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fetchErr != nil {
		return nil, g.fetchErr
	}
	if g.stored == nil {
		return nil, nil
	}
	return g.stored.Clone(), nil
}

func (g *fakeGateway) Save(ctx context.Context, cfg *sitecfg.SiteConfig) error {
	if hook := g.saveHook; hook != nil {
		hook()
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.saves++
	if g.saveErr != nil {
		return g.saveErr
	}
	g.stored = cfg.Clone()
	return nil
}

func setupEditor(t *testing.T) (*Editor, *fakeGateway) {
	t.Helper()
	gw := &fakeGateway{}
	ed := New(gw)
	if err := ed.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return ed, gw
}

func TestLoadDefaultsWhenEmpty(t *testing.T) {
	ed, _ := setupEditor(t)
	draft, err := ed.Draft()
	if err != nil {
		t.Fatalf("Draft: %v", err)
	}
	if draft.AdminPassword != sitecfg.DefaultPassword {
		t.Errorf("AdminPassword = %q, want the default", draft.AdminPassword)
	}
	if draft.ContentItemsMO == nil || draft.ContentItemsPC == nil {
		t.Error("item sequences must be non-nil after load")
	}
}

func TestMutationBeforeLoad(t *testing.T) {
	ed := New(&fakeGateway{})
	if err := ed.SetField("heroBadge", "x"); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("SetField before load = %v, want ErrNotLoaded", err)
	}
	if err := ed.Save(context.Background()); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Save before load = %v, want ErrNotLoaded", err)
	}
}

func TestSetFieldUnknown(t *testing.T) {
	ed, _ := setupEditor(t)
	if err := ed.SetField("noSuchField", "x"); err == nil {
		t.Error("SetField with unknown name should fail")
	}
}

func TestAddItemNumbersCategories(t *testing.T) {
	ed, _ := setupEditor(t)
	for i := 0; i < 3; i++ {
		if err := ed.AddItem(sitecfg.ModeMO); err != nil {
			t.Fatalf("AddItem: %v", err)
		}
	}

	draft, _ := ed.Draft()
	if len(draft.ContentItemsMO) != 3 {
		t.Fatalf("len(ContentItemsMO) = %d, want 3", len(draft.ContentItemsMO))
	}
	if got := draft.ContentItemsMO[2].Category; got != "MO Section 03" {
		t.Errorf("Category = %q, want %q", got, "MO Section 03")
	}
	if got := len(draft.ContentItemsMO[0].Images); got != 1 {
		t.Errorf("new item image slots = %d, want 1", got)
	}
	if len(draft.ContentItemsPC) != 0 {
		t.Errorf("PC sequence grew: %v", draft.ContentItemsPC)
	}
}

func TestRemoveItemRequiresConfirmation(t *testing.T) {
	ed, _ := setupEditor(t)
	if err := ed.AddItem(sitecfg.ModeMO); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if err := ed.RemoveItem(sitecfg.ModeMO, 0, false); !errors.Is(err, ErrConfirmationRequired) {
		t.Errorf("RemoveItem unconfirmed = %v, want ErrConfirmationRequired", err)
	}
	draft, _ := ed.Draft()
	if len(draft.ContentItemsMO) != 1 {
		t.Fatalf("unconfirmed removal mutated the draft: %v", draft.ContentItemsMO)
	}

	if err := ed.RemoveItem(sitecfg.ModeMO, 0, true); err != nil {
		t.Fatalf("RemoveItem confirmed: %v", err)
	}
	draft, _ = ed.Draft()
	if len(draft.ContentItemsMO) != 0 {
		t.Errorf("confirmed removal left %d items", len(draft.ContentItemsMO))
	}
}

func TestRemoveItemOutOfRange(t *testing.T) {
	ed, _ := setupEditor(t)
	if err := ed.RemoveItem(sitecfg.ModeMO, 0, true); err == nil {
		t.Error("RemoveItem on empty sequence should fail")
	}
}

func TestMoveBoundariesAreNoOps(t *testing.T) {
	ed, _ := setupEditor(t)
	ed.AddItem(sitecfg.ModeMO)
	ed.AddItem(sitecfg.ModeMO)
	before, _ := ed.Draft()

	if err := ed.MoveUp(sitecfg.ModeMO, 0); err != nil {
		t.Fatalf("MoveUp at 0: %v", err)
	}
	if err := ed.MoveDown(sitecfg.ModeMO, 1); err != nil {
		t.Fatalf("MoveDown at last: %v", err)
	}

	after, _ := ed.Draft()
	for i := range before.ContentItemsMO {
		if before.ContentItemsMO[i].Category != after.ContentItemsMO[i].Category {
			t.Errorf("boundary move reordered items: %v", after.ContentItemsMO)
		}
	}
}

func TestMoveSwapsNeighbors(t *testing.T) {
	ed, _ := setupEditor(t)
	ed.AddItem(sitecfg.ModeMO)
	ed.AddItem(sitecfg.ModeMO)

	if err := ed.MoveDown(sitecfg.ModeMO, 0); err != nil {
		t.Fatalf("MoveDown: %v", err)
	}
	draft, _ := ed.Draft()
	if got := draft.ContentItemsMO[0].Category; got != "MO Section 02" {
		t.Errorf("item 0 after MoveDown = %q, want %q", got, "MO Section 02")
	}

	if err := ed.MoveUp(sitecfg.ModeMO, 1); err != nil {
		t.Fatalf("MoveUp: %v", err)
	}
	draft, _ = ed.Draft()
	if got := draft.ContentItemsMO[0].Category; got != "MO Section 01" {
		t.Errorf("item 0 after MoveUp = %q, want %q", got, "MO Section 01")
	}
}

func TestImageSlots(t *testing.T) {
	ed, _ := setupEditor(t)
	ed.AddItem(sitecfg.ModePC)

	if err := ed.AddImageSlot(sitecfg.ModePC, 0); err != nil {
		t.Fatalf("AddImageSlot: %v", err)
	}
	if err := ed.SetItemImage(sitecfg.ModePC, 0, 1, "http://x/a.png"); err != nil {
		t.Fatalf("SetItemImage: %v", err)
	}
	draft, _ := ed.Draft()
	if got := draft.ContentItemsPC[0].Images; len(got) != 2 || got[1] != "http://x/a.png" {
		t.Fatalf("Images = %v, want two slots with the URL in the second", got)
	}

	if err := ed.RemoveImageSlot(sitecfg.ModePC, 0, 0); err != nil {
		t.Fatalf("RemoveImageSlot: %v", err)
	}
	draft, _ = ed.Draft()
	if got := draft.ContentItemsPC[0].Images; len(got) != 1 || got[0] != "http://x/a.png" {
		t.Fatalf("Images after removal = %v", got)
	}

	if err := ed.SetItemImage(sitecfg.ModePC, 0, 5, "x"); err == nil {
		t.Error("SetItemImage out of range should fail")
	}
}

func TestDraftIsIsolatedCopy(t *testing.T) {
	ed, _ := setupEditor(t)
	ed.AddItem(sitecfg.ModeMO)

	draft, _ := ed.Draft()
	draft.ContentItemsMO[0].Title = "tampered"

	fresh, _ := ed.Draft()
	if fresh.ContentItemsMO[0].Title == "tampered" {
		t.Error("mutating a returned draft copy leaked into the editor")
	}
}

func TestChangePasswordEmpty(t *testing.T) {
	ed, _ := setupEditor(t)
	if err := ed.ChangePassword(""); !errors.Is(err, ErrEmptyPassword) {
		t.Errorf("ChangePassword(\"\") = %v, want ErrEmptyPassword", err)
	}
}

func TestSavePromotesDraft(t *testing.T) {
	ed, gw := setupEditor(t)
	ed.SetField("headerProjectTitle", "New Title")
	ed.ChangePassword("hunter2")

	if err := ed.Save(context.Background()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if gw.saves != 1 {
		t.Errorf("gateway saves = %d, want 1", gw.saves)
	}
	saved, _ := ed.Saved()
	if saved.HeaderProjectTitle != "New Title" || saved.AdminPassword != "hunter2" {
		t.Errorf("saved config not promoted: %+v", saved)
	}
}

func TestSaveFailureLeavesDraft(t *testing.T) {
	ed, gw := setupEditor(t)
	ed.SetField("headerProjectTitle", "Unsaved")
	gw.saveErr = errors.New("storage unavailable")

	err := ed.Save(context.Background())
	if err == nil || err.Error() != "storage unavailable" {
		t.Fatalf("Save = %v, want the gateway error verbatim", err)
	}

	draft, _ := ed.Draft()
	if draft.HeaderProjectTitle != "Unsaved" {
		t.Errorf("failed save changed the draft: %q", draft.HeaderProjectTitle)
	}
	saved, _ := ed.Saved()
	if saved.HeaderProjectTitle == "Unsaved" {
		t.Error("failed save promoted the draft")
	}

	// Editing and saving again must work once the failure clears.
	gw.saveErr = nil
	if err := ed.Save(context.Background()); err != nil {
		t.Fatalf("Save after recovery: %v", err)
	}
}

func TestSaveInFlight(t *testing.T) {
	ed, gw := setupEditor(t)

	inSave := make(chan struct{})
	release := make(chan struct{})
	gw.saveHook = func() {
		close(inSave)
		<-release
	}

	done := make(chan error, 1)
	go func() { done <- ed.Save(context.Background()) }()
	<-inSave

	if err := ed.Save(context.Background()); !errors.Is(err, ErrSaveInFlight) {
		t.Errorf("concurrent Save = %v, want ErrSaveInFlight", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if gw.saves != 1 {
		t.Errorf("gateway saves = %d, want 1 (no queueing)", gw.saves)
	}
}

func TestDiscardRestoresSaved(t *testing.T) {
	ed, _ := setupEditor(t)
	ed.SetField("heroBadge", "draft-only")
	if err := ed.Discard(); err != nil {
		t.Fatalf("Discard: %v", err)
	}
	draft, _ := ed.Draft()
	if draft.HeroBadge == "draft-only" {
		t.Error("Discard kept the draft edit")
	}
}

package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/jmlee-dev/reportdeck/internal/sitecfg"
)

// ConfigGateway is the remote store the editor loads from and saves to.
type ConfigGateway interface {
	Fetch(ctx context.Context) (*sitecfg.SiteConfig, error)
	Save(ctx context.Context, cfg *sitecfg.SiteConfig) error
}

var (
	// ErrSaveInFlight is returned when a save is attempted while another
	// one is still running. The caller treats it as a no-op.
	ErrSaveInFlight = errors.New("a save is already in progress")

	// ErrNotLoaded is returned when a mutation is attempted before Load.
	ErrNotLoaded = errors.New("editor draft not loaded")

	// ErrConfirmationRequired is returned by RemoveItem without the
	// confirmed flag; removal has no undo.
	ErrConfirmationRequired = errors.New("removal requires confirmation")

	// ErrEmptyPassword is returned by ChangePassword for empty input.
	ErrEmptyPassword = errors.New("password must not be empty")
)

// Editor holds the admin's in-memory draft of the site configuration,
// separate from the last-saved config. All mutations are serialized by a
// mutex and operate copy-modify-replace on whole item sequences, so
// interleaved operations always see the latest draft and are never lost.
type Editor struct {
	mu      sync.Mutex
	gateway ConfigGateway
	saved   *sitecfg.SiteConfig
	draft   *sitecfg.SiteConfig
	saving  bool
}

// New creates an editor over the given gateway. Call Load before mutating.
func New(gateway ConfigGateway) *Editor {
	return &Editor{gateway: gateway}
}

// Load fetches the persisted config (or the default when none exists) and
// initializes the draft as a deep copy of it.
func (e *Editor) Load(ctx context.Context) error {
	cfg, err := e.gateway.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfg == nil {
		cfg = sitecfg.DefaultConfig()
	}
	sitecfg.Normalize(cfg)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.saved = cfg
	e.draft = cfg.Clone()
	return nil
}

// Loaded reports whether the editor holds a draft.
func (e *Editor) Loaded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft != nil
}

// Draft returns a deep copy of the current draft.
func (e *Editor) Draft() (*sitecfg.SiteConfig, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.draft == nil {
		return nil, ErrNotLoaded
	}
	return e.draft.Clone(), nil
}

// Saved returns a deep copy of the last-saved config.
func (e *Editor) Saved() (*sitecfg.SiteConfig, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.saved == nil {
		return nil, ErrNotLoaded
	}
	return e.saved.Clone(), nil
}

// Discard resets the draft back to the last-saved config.
func (e *Editor) Discard() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.saved == nil {
		return ErrNotLoaded
	}
	e.draft = e.saved.Clone()
	return nil
}

// SetField updates one scalar header/hero field of the draft by its JSON
// name. No validation beyond the name itself.
func (e *Editor) SetField(name, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.draft == nil {
		return ErrNotLoaded
	}

	switch name {
	case "headerLogoUrl":
		e.draft.HeaderLogoURL = value
	case "headerProjectTitle":
		e.draft.HeaderProjectTitle = value
	case "headerTopText":
		e.draft.HeaderTopText = value
	case "heroBadge":
		e.draft.HeroBadge = value
	case "heroTitle1":
		e.draft.HeroTitle1 = value
	case "heroTitle2":
		e.draft.HeroTitle2 = value
	case "heroDesc1":
		e.draft.HeroDesc1 = value
	case "heroDesc2":
		e.draft.HeroDesc2 = value
	default:
		return fmt.Errorf("unknown field %q", name)
	}
	return nil
}

// AddItem appends a new section to the given mode's sequence with an
// auto-numbered category, placeholder text and one empty image slot.
func (e *Editor) AddItem(mode sitecfg.DeviceMode) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.draft == nil {
		return ErrNotLoaded
	}

	items := e.draft.Items(mode)
	next := append(cloneForEdit(items), sitecfg.ContentItem{
		ID:          uuid.New().String(),
		Category:    fmt.Sprintf("%s Section %02d", mode, len(items)+1),
		Title:       "New section title",
		Description: "Describe this section.",
		Images:      []string{""},
	})
	e.draft.SetItems(mode, next)
	return nil
}

// RemoveItem removes the item at index. The confirmed flag must be set:
// there is no undo.
func (e *Editor) RemoveItem(mode sitecfg.DeviceMode, index int, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.draft == nil {
		return ErrNotLoaded
	}

	items := e.draft.Items(mode)
	if index < 0 || index >= len(items) {
		return fmt.Errorf("item index %d out of range", index)
	}
	next := cloneForEdit(items)
	next = append(next[:index], next[index+1:]...)
	e.draft.SetItems(mode, next)
	return nil
}

// MoveUp swaps the item at index with its predecessor. A no-op at index 0.
func (e *Editor) MoveUp(mode sitecfg.DeviceMode, index int) error {
	return e.swap(mode, index, index-1)
}

// MoveDown swaps the item at index with its successor. A no-op at the
// last index.
func (e *Editor) MoveDown(mode sitecfg.DeviceMode, index int) error {
	return e.swap(mode, index, index+1)
}

func (e *Editor) swap(mode sitecfg.DeviceMode, index, other int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.draft == nil {
		return ErrNotLoaded
	}

	items := e.draft.Items(mode)
	if index < 0 || index >= len(items) {
		return fmt.Errorf("item index %d out of range", index)
	}
	if other < 0 || other >= len(items) {
		// Boundary move: silent no-op.
		return nil
	}
	next := cloneForEdit(items)
	next[index], next[other] = next[other], next[index]
	e.draft.SetItems(mode, next)
	return nil
}

// UpdateItemField replaces one field of the item at index.
func (e *Editor) UpdateItemField(mode sitecfg.DeviceMode, index int, field, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.draft == nil {
		return ErrNotLoaded
	}

	items := e.draft.Items(mode)
	if index < 0 || index >= len(items) {
		return fmt.Errorf("item index %d out of range", index)
	}
	next := cloneForEdit(items)
	switch field {
	case "category":
		next[index].Category = value
	case "title":
		next[index].Title = value
	case "description":
		next[index].Description = value
	case "subDescription":
		next[index].SubDescription = value
	default:
		return fmt.Errorf("unknown item field %q", field)
	}
	e.draft.SetItems(mode, next)
	return nil
}

// AddImageSlot appends an empty image slot to the item at index.
func (e *Editor) AddImageSlot(mode sitecfg.DeviceMode, index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.draft == nil {
		return ErrNotLoaded
	}

	items := e.draft.Items(mode)
	if index < 0 || index >= len(items) {
		return fmt.Errorf("item index %d out of range", index)
	}
	next := cloneForEdit(items)
	next[index].Images = append(next[index].Images, "")
	e.draft.SetItems(mode, next)
	return nil
}

// RemoveImageSlot removes one image reference. No confirmation required.
func (e *Editor) RemoveImageSlot(mode sitecfg.DeviceMode, index, imgIndex int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.draft == nil {
		return ErrNotLoaded
	}

	items := e.draft.Items(mode)
	if index < 0 || index >= len(items) {
		return fmt.Errorf("item index %d out of range", index)
	}
	if imgIndex < 0 || imgIndex >= len(items[index].Images) {
		return fmt.Errorf("image index %d out of range", imgIndex)
	}
	next := cloneForEdit(items)
	next[index].Images = append(next[index].Images[:imgIndex], next[index].Images[imgIndex+1:]...)
	e.draft.SetItems(mode, next)
	return nil
}

// SetItemImage writes an uploaded image URL into the given slot.
func (e *Editor) SetItemImage(mode sitecfg.DeviceMode, index, imgIndex int, url string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.draft == nil {
		return ErrNotLoaded
	}

	items := e.draft.Items(mode)
	if index < 0 || index >= len(items) {
		return fmt.Errorf("item index %d out of range", index)
	}
	if imgIndex < 0 || imgIndex >= len(items[index].Images) {
		return fmt.Errorf("image index %d out of range", imgIndex)
	}
	next := cloneForEdit(items)
	next[index].Images[imgIndex] = url
	e.draft.SetItems(mode, next)
	return nil
}

// SetLogo writes an uploaded logo URL into the draft header.
func (e *Editor) SetLogo(url string) error {
	return e.SetField("headerLogoUrl", url)
}

// ChangePassword sets the draft password. The change takes effect only
// after the next successful save.
func (e *Editor) ChangePassword(newPassword string) error {
	if newPassword == "" {
		return ErrEmptyPassword
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.draft == nil {
		return ErrNotLoaded
	}
	e.draft.AdminPassword = newPassword
	return nil
}

// Save sends the entire draft to the gateway. At most one save is in
// flight: concurrent calls return ErrSaveInFlight without queueing. On
// success the draft snapshot becomes the new last-saved config; on
// failure the draft is left untouched and the gateway's error is
// returned verbatim. Saves are never retried automatically.
func (e *Editor) Save(ctx context.Context) error {
	e.mu.Lock()
	if e.draft == nil {
		e.mu.Unlock()
		return ErrNotLoaded
	}
	if e.saving {
		e.mu.Unlock()
		return ErrSaveInFlight
	}
	e.saving = true
	snapshot := e.draft.Clone()
	e.mu.Unlock()

	err := e.gateway.Save(ctx, snapshot)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.saving = false
	if err != nil {
		return err
	}
	e.saved = snapshot
	return nil
}

// cloneForEdit copies an item sequence before mutation so the draft's
// slices are replaced wholesale rather than aliased in place.
func cloneForEdit(items []sitecfg.ContentItem) []sitecfg.ContentItem {
	out := make([]sitecfg.ContentItem, len(items))
	for i, item := range items {
		out[i] = item
		out[i].Images = append([]string(nil), item.Images...)
	}
	return out
}

package sitecfg

import "fmt"

// DeviceMode selects which content-item sequence and layout applies.
type DeviceMode string

const (
	ModeMO DeviceMode = "MO"
	ModePC DeviceMode = "PC"
)

// ParseMode validates a device mode string.
func ParseMode(s string) (DeviceMode, error) {
	switch DeviceMode(s) {
	case ModeMO, ModePC:
		return DeviceMode(s), nil
	}
	return "", fmt.Errorf("invalid device mode %q: must be MO or PC", s)
}

// DefaultPassword is the admin password used when none is set, and the
// value the reset keyword restores.
const DefaultPassword = "1234"

// ContentItem is one report section: category label, title, description
// and an ordered sequence of device-screenshot image URLs. The first
// image is the one shown by default; empty-string slots are permitted
// while a draft is being edited.
type ContentItem struct {
	ID             string   `json:"id,omitempty"`
	Category       string   `json:"category,omitempty"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	SubDescription string   `json:"subDescription,omitempty"`
	Images         []string `json:"images"`
}

// DisplayCategory returns the item's category, falling back to a
// zero-padded "Section NN" label derived from its position.
func (c ContentItem) DisplayCategory(idx int) string {
	if c.Category != "" {
		return c.Category
	}
	return fmt.Sprintf("Section %02d", idx+1)
}

// SiteConfig is the single persisted configuration record: header and
// hero text, the two device-mode item sequences, and the admin password.
//
// The password is stored in plaintext inside the record; this mirrors the
// deployed data shape and the reset-keyword semantics, and is not suitable
// for protecting anything beyond casual access.
type SiteConfig struct {
	HeaderLogoURL      string        `json:"headerLogoUrl"`
	HeaderProjectTitle string        `json:"headerProjectTitle"`
	HeaderTopText      string        `json:"headerTopText"`
	HeroBadge          string        `json:"heroBadge"`
	HeroTitle1         string        `json:"heroTitle1"`
	HeroTitle2         string        `json:"heroTitle2"`
	HeroDesc1          string        `json:"heroDesc1"`
	HeroDesc2          string        `json:"heroDesc2"`
	ContentItemsMO     []ContentItem `json:"contentItemsMO"`
	ContentItemsPC     []ContentItem `json:"contentItemsPC"`
	AdminPassword      string        `json:"adminPassword,omitempty"`

	// LegacyContentItems holds the undifferentiated item sequence of
	// records written before the MO/PC split. Normalize aliases it into
	// ContentItemsMO once; the field itself is preserved on save.
	LegacyContentItems []ContentItem `json:"contentItems,omitempty"`
}

// DefaultConfig returns the seeded configuration used before any record
// has been saved.
func DefaultConfig() *SiteConfig {
	return &SiteConfig{
		HeaderProjectTitle: "Project Report",
		HeaderTopText:      "Project Completion Report",
		HeroBadge:          "Project Completion Report",
		HeroTitle1:         "A record of the project",
		HeroTitle2:         "What we built, and why it matters.",
		ContentItemsMO:     []ContentItem{},
		ContentItemsPC:     []ContentItem{},
		AdminPassword:      DefaultPassword,
	}
}

// Items returns the item sequence for the given device mode.
func (c *SiteConfig) Items(mode DeviceMode) []ContentItem {
	if mode == ModePC {
		return c.ContentItemsPC
	}
	return c.ContentItemsMO
}

// SetItems replaces the item sequence for the given device mode.
func (c *SiteConfig) SetItems(mode DeviceMode, items []ContentItem) {
	if mode == ModePC {
		c.ContentItemsPC = items
		return
	}
	c.ContentItemsMO = items
}

// Clone returns a deep copy. Drafts and saved configs must never share
// item or image slices.
func (c *SiteConfig) Clone() *SiteConfig {
	out := *c
	out.ContentItemsMO = cloneItems(c.ContentItemsMO)
	out.ContentItemsPC = cloneItems(c.ContentItemsPC)
	out.LegacyContentItems = cloneItems(c.LegacyContentItems)
	return &out
}

func cloneItems(items []ContentItem) []ContentItem {
	if items == nil {
		return nil
	}
	out := make([]ContentItem, len(items))
	for i, item := range items {
		out[i] = item
		out[i].Images = append([]string(nil), item.Images...)
	}
	return out
}

// Public returns a copy safe to expose on the unauthenticated viewer
// endpoint: the admin password is stripped.
func (c *SiteConfig) Public() *SiteConfig {
	out := c.Clone()
	out.AdminPassword = ""
	return out
}

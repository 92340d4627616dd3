package sitecfg

// Normalize coerces a loosely-shaped record into one satisfying the
// SiteConfig invariants. Records written before the MO/PC split carried a
// single "contentItems" sequence; when present and no mobile sequence
// exists, it is aliased into the mobile sequence. The aliasing fires only
// while ContentItemsMO is nil, so a record that has been saved since the
// split is never migrated again. Absent or malformed fields are defaulted,
// never rejected.
func Normalize(c *SiteConfig) {
	if c.ContentItemsMO == nil && c.LegacyContentItems != nil {
		c.ContentItemsMO = cloneItems(c.LegacyContentItems)
	}
	if c.ContentItemsMO == nil {
		c.ContentItemsMO = []ContentItem{}
	}
	if c.ContentItemsPC == nil {
		c.ContentItemsPC = []ContentItem{}
	}
	if c.AdminPassword == "" {
		c.AdminPassword = DefaultPassword
	}
}

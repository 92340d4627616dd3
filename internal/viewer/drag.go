package viewer

// dragMultiplier scales pointer displacement into scroll distance within
// the item's own scrollable sub-region.
const dragMultiplier = 1.5

// DragState tracks a pointer-drag gesture on the active item's image
// region. The gesture scrolls the item's sub-region, decoupled from the
// outer page scroll. State is transient: cleared on pointer release or
// when the pointer leaves the region.
type DragState struct {
	active     bool
	startY     float64
	baseScroll float64
}

// Active reports whether a drag is in progress.
func (d *DragState) Active() bool { return d.active }

// Start begins a drag at pointer position y with the sub-region's current
// scroll offset.
func (d *DragState) Start(y, scrollTop float64) {
	d.active = true
	d.startY = y
	d.baseScroll = scrollTop
}

// Move maps the pointer's displacement to a new scroll offset for the
// sub-region. When no drag is active it returns current unchanged.
func (d *DragState) Move(y, current float64) float64 {
	if !d.active {
		return current
	}
	walk := (y - d.startY) * dragMultiplier
	offset := d.baseScroll - walk
	if offset < 0 {
		offset = 0
	}
	return offset
}

// End clears the drag state (pointer released or left the region).
func (d *DragState) End() {
	d.active = false
	d.startY = 0
	d.baseScroll = 0
}

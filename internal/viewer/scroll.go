// Package viewer holds the browser-free view-state logic of the report
// page: the scroll-progress-to-active-index mapping of the desktop
// layout, the per-item image carousel, and pointer-drag tracking.
package viewer

import "math"

// MinDesktopWidth is the viewport-width breakpoint below which the
// scroll-driven layout is disabled in favor of a static stacked layout.
const MinDesktopWidth = 768

// ActiveIndex maps a continuous scroll position to the discrete index of
// the foregrounded content item.
//
// top is the scroll region's top edge relative to the viewport (negative
// once scrolled past), height the region height (itemCount viewports),
// and windowHeight the viewport height. Before the region is reached the
// first item is active; once it is fully scrolled past, the last one.
// In between, progress through the scrollable span picks the index.
func ActiveIndex(top, height, windowHeight float64, itemCount int) int {
	if itemCount <= 0 {
		return 0
	}
	last := itemCount - 1

	span := height - windowHeight
	if top > 0 {
		return 0
	}
	if span <= 0 || -top >= span {
		return last
	}

	progress := math.Abs(top) / span
	index := int(math.Floor(progress * float64(itemCount)))
	if index > last {
		index = last
	}
	return index
}

// Engine tracks the active item index across scroll events and reports
// only genuine changes, so callers can skip redundant re-renders.
type Engine struct {
	itemCount int
	active    int
}

// NewEngine creates an engine for a sequence of itemCount items.
func NewEngine(itemCount int) *Engine {
	return &Engine{itemCount: itemCount}
}

// Active returns the current active index.
func (e *Engine) Active() int { return e.active }

// Enabled reports whether scroll-driven tracking applies at the given
// viewport width. Narrow viewports use the static stacked layout.
func (e *Engine) Enabled(viewportWidth float64) bool {
	return viewportWidth >= MinDesktopWidth
}

// Update recomputes the active index for a scroll position and returns
// it along with whether it differs from the previous one.
func (e *Engine) Update(top, height, windowHeight float64) (index int, changed bool) {
	index = ActiveIndex(top, height, windowHeight, e.itemCount)
	if index == e.active {
		return index, false
	}
	e.active = index
	return index, true
}

// Resize updates the item count after the sequence is reloaded and
// clamps the active index into the new range.
func (e *Engine) Resize(itemCount int) {
	e.itemCount = itemCount
	if itemCount <= 0 {
		e.active = 0
		return
	}
	if e.active > itemCount-1 {
		e.active = itemCount - 1
	}
}

package viewer

// Carousel keeps one current-image index per content item. Indices start
// at 0 and are clamped to the item's image count; there is no wraparound.
type Carousel struct {
	imageCounts []int
	indices     []int
}

// NewCarousel creates carousel state for the given per-item image counts.
func NewCarousel(imageCounts []int) *Carousel {
	c := &Carousel{}
	c.Reset(imageCounts)
	return c
}

// Reset re-derives the carousel state after the item sequence changes
// identity (items reloaded): every index returns to 0.
func (c *Carousel) Reset(imageCounts []int) {
	c.imageCounts = append([]int(nil), imageCounts...)
	c.indices = make([]int, len(imageCounts))
}

// Index returns the current image index for item i, or 0 if i is out of
// range.
func (c *Carousel) Index(i int) int {
	if i < 0 || i >= len(c.indices) {
		return 0
	}
	return c.indices[i]
}

// Next advances item i's image index by one, clamped to the last image.
// Returns the resulting index.
func (c *Carousel) Next(i int) int {
	if i < 0 || i >= len(c.indices) {
		return 0
	}
	max := c.imageCounts[i] - 1
	if max < 0 {
		max = 0
	}
	if c.indices[i] < max {
		c.indices[i]++
	}
	return c.indices[i]
}

// Prev moves item i's image index back by one, clamped to 0. Returns the
// resulting index.
func (c *Carousel) Prev(i int) int {
	if i < 0 || i >= len(c.indices) {
		return 0
	}
	if c.indices[i] > 0 {
		c.indices[i]--
	}
	return c.indices[i]
}

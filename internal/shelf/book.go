package shelf

// Rendering bounds for book dimensions, in pixels. The lower clamps
// guarantee a visible, non-negative book even for a month with a single
// very short entry.
const (
	minWidth  = 16.0
	maxWidth  = 32.0
	minHeight = 120.0
	maxHeight = 300.0

	widthScale  = 50.0
	heightScale = 8.0
)

// Width returns the rendered spine width for the book, scaled by word
// count and clamped to the display range.
func (b Book) Width() float64 {
	return clamp(float64(b.WordCount)/widthScale, minWidth, maxWidth)
}

// Height returns the rendered spine height for the book, scaled by word
// count and clamped to the display range.
func (b Book) Height() float64 {
	return clamp(float64(b.WordCount)/heightScale, minHeight, maxHeight)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package ui

// reasonToggles tracks which paragraphs have their bias reason expanded.
// Indices are positional within the current result's paragraph list, so
// the whole set is invalidated whenever a new result is stored.
type reasonToggles struct {
	open map[int]bool
}

func newReasonToggles() reasonToggles {
	return reasonToggles{open: make(map[int]bool)}
}

// Toggle flips the reason visibility for a paragraph index.
func (r *reasonToggles) Toggle(index int) {
	r.open[index] = !r.open[index]
}

// IsOpen reports whether the reason for a paragraph index is expanded.
func (r *reasonToggles) IsOpen(index int) bool {
	return r.open[index]
}

// Reset closes every toggle. Called when a new result replaces the old
// one, since indices from the previous result carry no meaning for the new.
func (r *reasonToggles) Reset() {
	r.open = make(map[int]bool)
}

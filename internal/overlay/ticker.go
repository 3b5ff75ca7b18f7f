package overlay

// tickerState is the scrolling offset for the ticker strip. It survives
// settings changes: toggling other overlays or editing colors never resets
// the scroll position.
type tickerState struct {
	offset  float64
	started bool
}

// advance returns the draw position for this tick, then steps the offset
// left by a fixed two pixels, wrapping to the canvas width once the whole
// text has scrolled off the left edge.
func (t *tickerState) advance(textW, cw float64) float64 {
	if !t.started {
		t.offset = 0
		t.started = true
	}
	pos := t.offset
	t.offset -= 2
	if t.offset < -textW {
		t.offset = cw
	}
	return pos
}

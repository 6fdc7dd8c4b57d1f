package gesture

// EdgeDetector reports gesture flags that transitioned from inactive to
// active between consecutive frames. Consumers use the edges to trigger
// one-shot effects (audio cues, event logging, tray updates) without
// re-firing on every frame the gesture stays held.
type EdgeDetector struct {
	prev State
}

// NewEdgeDetector creates an EdgeDetector with an all-inactive baseline.
func NewEdgeDetector() *EdgeDetector {
	return &EdgeDetector{}
}

// Rising returns the kinds whose flags went false to true since the last
// call, in precedence order, and advances the baseline.
func (e *EdgeDetector) Rising(cur State) []Kind {
	var edges []Kind
	for _, k := range Kinds {
		if cur.Flag(k) && !e.prev.Flag(k) {
			edges = append(edges, k)
		}
	}
	e.prev = cur
	return edges
}

// Reset clears the baseline so the next active frame fires edges again.
func (e *EdgeDetector) Reset() {
	e.prev = State{}
}

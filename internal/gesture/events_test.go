package gesture

import "testing"

func TestEdgeDetector_Rising(t *testing.T) {
	e := NewEdgeDetector()

	// First active frame fires an edge.
	edges := e.Rising(State{Fist: true})
	if len(edges) != 1 || edges[0] != KindFist {
		t.Fatalf("edges = %v, want [fist]", edges)
	}

	// Holding the gesture does not re-fire.
	edges = e.Rising(State{Fist: true})
	if len(edges) != 0 {
		t.Errorf("held gesture fired edges: %v", edges)
	}

	// Releasing and re-posing fires again.
	e.Rising(State{})
	edges = e.Rising(State{Fist: true})
	if len(edges) != 1 {
		t.Errorf("re-posed gesture edges = %v, want one", edges)
	}
}

func TestEdgeDetector_MultipleFlags(t *testing.T) {
	e := NewEdgeDetector()
	e.Rising(State{ZoomOut: true})

	// Zoom-out stays held while peace joins: only peace is an edge.
	edges := e.Rising(State{ZoomOut: true, Peace: true})
	if len(edges) != 1 || edges[0] != KindPeace {
		t.Errorf("edges = %v, want [peace]", edges)
	}
}

func TestEdgeDetector_Reset(t *testing.T) {
	e := NewEdgeDetector()
	e.Rising(State{OpenHand: true})
	e.Reset()

	edges := e.Rising(State{OpenHand: true})
	if len(edges) != 1 || edges[0] != KindOpenHand {
		t.Errorf("edges after Reset = %v, want [open-hand]", edges)
	}
}

// Package gesture classifies per-frame hand landmarks into discrete
// gestures and derives continuous motion deltas from palm movement.
package gesture

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/ayusman/mudra/internal/detector"
)

// Tuned recognition constants, in normalized frame units.
const (
	// extensionRatio is the minimum ratio of tip-to-wrist distance over
	// PIP-to-wrist distance for a finger to count as extended. Together
	// with the tip-beyond-MCP check it rejects fingers whose tip folds
	// back toward the palm.
	extensionRatio = 0.95

	// thumbSpreadMin is the minimum distance from the thumb tip to the
	// index MCP for the thumb to count as extended. Thumbs abduct
	// sideways rather than curling toward the wrist, so the wrist
	// distance test used for the other fingers does not apply.
	thumbSpreadMin = 0.12

	// rotationGain converts palm displacement into rotation units.
	rotationGain = 3.0

	// positionGain converts palm displacement into translation units.
	positionGain = 5.0
)

// State is the classifier output for a single frame.
//
// The six gesture flags are evaluated independently and are not mutually
// exclusive by construction: a borderline hand pose can in principle set
// more than one. Consumers that need a single label should use Dominant,
// which applies the documented precedence order.
type State struct {
	ZoomIn   bool `json:"zoomIn"`
	ZoomOut  bool `json:"zoomOut"`
	OpenHand bool `json:"openHand"`
	Fist     bool `json:"fist"`
	Peace    bool `json:"peace"`
	Reset    bool `json:"reset"`

	// PalmPosition is the averaged location of the wrist and the four
	// finger MCPs, or nil when no hand was visible this frame.
	PalmPosition *mgl64.Vec2 `json:"palmPosition,omitempty"`

	// RotationDelta is nonzero only while OpenHand is active and a palm
	// reference from a previous frame exists.
	RotationDelta mgl64.Vec2 `json:"rotationDelta"`

	// PositionDelta is nonzero only while Peace is active and a palm
	// reference from a previous frame exists.
	PositionDelta mgl64.Vec2 `json:"positionDelta"`
}

// Active reports whether any gesture flag is set.
func (s State) Active() bool {
	return s.ZoomIn || s.ZoomOut || s.OpenHand || s.Fist || s.Peace || s.Reset
}

// Kind names a recognized gesture.
type Kind string

const (
	KindZoomIn   Kind = "zoom-in"
	KindZoomOut  Kind = "zoom-out"
	KindOpenHand Kind = "open-hand"
	KindFist     Kind = "fist"
	KindPeace    Kind = "peace"
	KindReset    Kind = "reset"
)

// Kinds lists all gesture kinds in precedence order.
var Kinds = []Kind{KindZoomIn, KindZoomOut, KindPeace, KindOpenHand, KindFist, KindReset}

// Flag reports whether the flag for the given kind is set.
func (s State) Flag(k Kind) bool {
	switch k {
	case KindZoomIn:
		return s.ZoomIn
	case KindZoomOut:
		return s.ZoomOut
	case KindOpenHand:
		return s.OpenHand
	case KindFist:
		return s.Fist
	case KindPeace:
		return s.Peace
	case KindReset:
		return s.Reset
	}
	return false
}

// Dominant returns the highest-precedence active gesture, or "" when no
// flag is set. Precedence: zoom-in > zoom-out > peace > open-hand >
// fist > reset.
func (s State) Dominant() Kind {
	for _, k := range Kinds {
		if s.Flag(k) {
			return k
		}
	}
	return ""
}

// Classifier turns raw landmark snapshots into gesture States. The only
// state it keeps across frames is the previous palm position, used as the
// reference for motion deltas.
type Classifier struct {
	prevPalm    mgl64.Vec2
	hasPrevPalm bool
}

// NewClassifier creates a Classifier with no palm reference.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify computes the gesture State for one frame.
//
// A nil hand is a valid input, not an error: it yields a neutral State
// (all flags false, nil palm position, zero deltas) and leaves the
// previous palm reference untouched, so a single dropped frame does not
// corrupt velocity estimation.
func (c *Classifier) Classify(hand *detector.HandLandmarks) State {
	if hand == nil {
		return State{}
	}

	indexExt := fingerExtended(hand, detector.IndexTip, detector.IndexPIP, detector.IndexMCP)
	middleExt := fingerExtended(hand, detector.MiddleTip, detector.MiddlePIP, detector.MiddleMCP)
	ringExt := fingerExtended(hand, detector.RingTip, detector.RingPIP, detector.RingMCP)
	pinkyExt := fingerExtended(hand, detector.PinkyTip, detector.PinkyPIP, detector.PinkyMCP)
	thumbExt := thumbExtended(hand)

	extendedCount := 0
	for _, ext := range []bool{indexExt, middleExt, ringExt, pinkyExt} {
		if ext {
			extendedCount++
		}
	}

	palm := palmCenter(hand)

	s := State{
		ZoomIn:       thumbExt && indexExt && !middleExt && !ringExt && !pinkyExt,
		ZoomOut:      !thumbExt && indexExt && !middleExt && !ringExt && !pinkyExt,
		OpenHand:     extendedCount >= 4 && thumbExt,
		Fist:         extendedCount == 0 && !thumbExt,
		Peace:        indexExt && middleExt && !ringExt && !pinkyExt && !thumbExt,
		Reset:        thumbExt && pinkyExt && !indexExt && !middleExt && !ringExt,
		PalmPosition: &palm,
	}

	if c.hasPrevPalm {
		move := palm.Sub(c.prevPalm)
		if s.OpenHand {
			s.RotationDelta = mgl64.Vec2{move.Y() * rotationGain, -move.X() * rotationGain}
		}
		if s.Peace {
			s.PositionDelta = mgl64.Vec2{-move.X() * positionGain, -move.Y() * positionGain}
		}
	}

	c.prevPalm = palm
	c.hasPrevPalm = true

	return s
}

// fingerExtended tests whether a non-thumb finger is straightened: its
// tip must sit farther from the wrist than 0.95x the PIP distance and
// farther than the MCP distance.
func fingerExtended(h *detector.HandLandmarks, tip, pip, mcp int) bool {
	tipDist := h.WristDistance(tip)
	return tipDist > extensionRatio*h.WristDistance(pip) && tipDist > h.WristDistance(mcp)
}

// thumbExtended tests thumb abduction by the distance from the thumb tip
// to the index MCP.
func thumbExtended(h *detector.HandLandmarks) bool {
	return detector.Distance(h.Points[detector.ThumbTip], h.Points[detector.IndexMCP]) > thumbSpreadMin
}

// palmCenter is the arithmetic mean of the wrist and the four finger
// MCPs in the frame plane.
func palmCenter(h *detector.HandLandmarks) mgl64.Vec2 {
	var x, y float64
	for _, i := range [...]int{detector.Wrist, detector.IndexMCP, detector.MiddleMCP, detector.RingMCP, detector.PinkyMCP} {
		x += h.Points[i].X
		y += h.Points[i].Y
	}
	return mgl64.Vec2{x / 5, y / 5}
}

package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results.
type MockDetector struct {
	hands []HandLandmarks
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by Detect.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.hands = hands
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Translated returns a copy of the landmarks with every point shifted by
// (dx, dy) in the frame plane. Depth values are unchanged. Useful for
// synthesizing palm motion across frames.
func (h HandLandmarks) Translated(dx, dy float64) HandLandmarks {
	out := h
	for i := range out.Points {
		out.Points[i].X += dx
		out.Points[i].Y += dy
	}
	return out
}

// Pose fixtures below share a common right-hand skeleton: wrist at
// (0.5, 0.8) with the four finger MCPs fanned above it. Each fixture
// swaps in extended or curled finger chains and an abducted or tucked
// thumb to form one canonical pose per recognized gesture.

func baseHand() HandLandmarks {
	h := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}
	h.Points[Wrist] = Point3D{X: 0.50, Y: 0.80, Z: 0.0}
	h.Points[IndexMCP] = Point3D{X: 0.55, Y: 0.68, Z: 0.0}
	h.Points[MiddleMCP] = Point3D{X: 0.50, Y: 0.66, Z: 0.0}
	h.Points[RingMCP] = Point3D{X: 0.45, Y: 0.68, Z: 0.0}
	h.Points[PinkyMCP] = Point3D{X: 0.40, Y: 0.70, Z: 0.0}
	return h
}

func extendThumb(h *HandLandmarks) {
	h.Points[ThumbCMC] = Point3D{X: 0.55, Y: 0.75, Z: 0.02}
	h.Points[ThumbMCP] = Point3D{X: 0.62, Y: 0.70, Z: 0.03}
	h.Points[ThumbIP] = Point3D{X: 0.68, Y: 0.65, Z: 0.03}
	h.Points[ThumbTip] = Point3D{X: 0.73, Y: 0.60, Z: 0.03}
}

func tuckThumb(h *HandLandmarks) {
	h.Points[ThumbCMC] = Point3D{X: 0.54, Y: 0.76, Z: 0.0}
	h.Points[ThumbMCP] = Point3D{X: 0.56, Y: 0.72, Z: -0.01}
	h.Points[ThumbIP] = Point3D{X: 0.55, Y: 0.70, Z: -0.02}
	h.Points[ThumbTip] = Point3D{X: 0.53, Y: 0.69, Z: -0.02}
}

func extendIndex(h *HandLandmarks) {
	h.Points[IndexPIP] = Point3D{X: 0.57, Y: 0.55, Z: 0.0}
	h.Points[IndexDIP] = Point3D{X: 0.58, Y: 0.45, Z: 0.0}
	h.Points[IndexTip] = Point3D{X: 0.58, Y: 0.35, Z: 0.0}
}

func curlIndex(h *HandLandmarks) {
	h.Points[IndexPIP] = Point3D{X: 0.56, Y: 0.64, Z: -0.03}
	h.Points[IndexDIP] = Point3D{X: 0.55, Y: 0.70, Z: -0.04}
	h.Points[IndexTip] = Point3D{X: 0.54, Y: 0.74, Z: -0.02}
}

func extendMiddle(h *HandLandmarks) {
	h.Points[MiddlePIP] = Point3D{X: 0.50, Y: 0.52, Z: 0.0}
	h.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.40, Z: 0.0}
	h.Points[MiddleTip] = Point3D{X: 0.50, Y: 0.28, Z: 0.0}
}

func curlMiddle(h *HandLandmarks) {
	h.Points[MiddlePIP] = Point3D{X: 0.51, Y: 0.61, Z: -0.03}
	h.Points[MiddleDIP] = Point3D{X: 0.50, Y: 0.68, Z: -0.04}
	h.Points[MiddleTip] = Point3D{X: 0.49, Y: 0.73, Z: -0.02}
}

func extendRing(h *HandLandmarks) {
	h.Points[RingPIP] = Point3D{X: 0.43, Y: 0.55, Z: 0.0}
	h.Points[RingDIP] = Point3D{X: 0.42, Y: 0.45, Z: 0.0}
	h.Points[RingTip] = Point3D{X: 0.42, Y: 0.35, Z: 0.0}
}

func curlRing(h *HandLandmarks) {
	h.Points[RingPIP] = Point3D{X: 0.45, Y: 0.63, Z: -0.03}
	h.Points[RingDIP] = Point3D{X: 0.45, Y: 0.69, Z: -0.04}
	h.Points[RingTip] = Point3D{X: 0.45, Y: 0.73, Z: -0.02}
}

func extendPinky(h *HandLandmarks) {
	h.Points[PinkyPIP] = Point3D{X: 0.37, Y: 0.60, Z: 0.0}
	h.Points[PinkyDIP] = Point3D{X: 0.35, Y: 0.50, Z: 0.0}
	h.Points[PinkyTip] = Point3D{X: 0.34, Y: 0.42, Z: 0.0}
}

func curlPinky(h *HandLandmarks) {
	h.Points[PinkyPIP] = Point3D{X: 0.40, Y: 0.66, Z: -0.03}
	h.Points[PinkyDIP] = Point3D{X: 0.41, Y: 0.71, Z: -0.04}
	h.Points[PinkyTip] = Point3D{X: 0.42, Y: 0.74, Z: -0.02}
}

// OpenPalmLandmarks returns a hand with all four fingers and the thumb
// extended: the open-hand (rotation) pose.
func OpenPalmLandmarks() HandLandmarks {
	h := baseHand()
	extendThumb(&h)
	extendIndex(&h)
	extendMiddle(&h)
	extendRing(&h)
	extendPinky(&h)
	return h
}

// FistLandmarks returns a closed fist: every finger curled toward the
// palm and the thumb tucked against the index MCP.
func FistLandmarks() HandLandmarks {
	h := baseHand()
	tuckThumb(&h)
	curlIndex(&h)
	curlMiddle(&h)
	curlRing(&h)
	curlPinky(&h)
	return h
}

// PointingLandmarks returns a pointing pose: index extended, all other
// fingers curled, thumb tucked (the zoom-out pose).
func PointingLandmarks() HandLandmarks {
	h := baseHand()
	tuckThumb(&h)
	extendIndex(&h)
	curlMiddle(&h)
	curlRing(&h)
	curlPinky(&h)
	return h
}

// LShapeLandmarks returns an L shape: thumb and index extended, the rest
// curled (the zoom-in pose).
func LShapeLandmarks() HandLandmarks {
	h := baseHand()
	extendThumb(&h)
	extendIndex(&h)
	curlMiddle(&h)
	curlRing(&h)
	curlPinky(&h)
	return h
}

// PeaceLandmarks returns a V sign: index and middle extended, ring and
// pinky curled, thumb tucked (the translate pose).
func PeaceLandmarks() HandLandmarks {
	h := baseHand()
	tuckThumb(&h)
	extendIndex(&h)
	extendMiddle(&h)
	curlRing(&h)
	curlPinky(&h)
	return h
}

// ShakaLandmarks returns a shaka sign: thumb and pinky extended, the
// three middle fingers curled (the reset pose).
func ShakaLandmarks() HandLandmarks {
	h := baseHand()
	extendThumb(&h)
	curlIndex(&h)
	curlMiddle(&h)
	curlRing(&h)
	extendPinky(&h)
	return h
}

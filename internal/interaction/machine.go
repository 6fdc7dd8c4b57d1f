// Package interaction maintains the freeze-aware transform state machine
// that turns per-frame gesture classifications into smoothed object
// transforms.
package interaction

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/ayusman/mudra/internal/gesture"
)

// scaleStep is the per-frame scale increment applied while a zoom
// gesture is held.
const scaleStep = 0.02

// Config holds the per-object tuning for a Machine.
//
// Callers must keep ScaleMin <= ScaleMax and the clamps/smoothing factors
// positive; degenerate values are a programming error and are not guarded
// against.
type Config struct {
	ScaleMin          float64 `json:"scaleMin"`
	ScaleMax          float64 `json:"scaleMax"`
	PositionClampX    float64 `json:"positionClampX"`
	PositionClampY    float64 `json:"positionClampY"`
	RotationSmoothing float64 `json:"rotationSmoothing"`
	PositionSmoothing float64 `json:"positionSmoothing"`
	ScaleSmoothing    float64 `json:"scaleSmoothing"`
}

// DefaultConfig returns the tuning used for primitive models.
func DefaultConfig() Config {
	return Config{
		ScaleMin:          0.3,
		ScaleMax:          3,
		PositionClampX:    3,
		PositionClampY:    2,
		RotationSmoothing: 0.15,
		PositionSmoothing: 0.15,
		ScaleSmoothing:    0.1,
	}
}

// Transform is the smoothed pose consumed by the rendering layer.
// Frozen additionally signals that ambient animation on the object
// should pause.
type Transform struct {
	Rotation mgl64.Vec2 `json:"rotation"`
	Position mgl64.Vec2 `json:"position"`
	Scale    float64    `json:"scale"`
	Frozen   bool       `json:"frozen"`
}

// Machine accumulates gesture input into target values and converges the
// rendered current values toward them. One Machine instance exists per
// controlled object and is advanced once per rendered frame by a single
// goroutine; it needs no locking.
type Machine struct {
	cfg Config

	targetRotation mgl64.Vec2
	targetPosition mgl64.Vec2
	targetScale    float64

	currentRotation mgl64.Vec2
	currentPosition mgl64.Vec2
	currentScale    float64

	frozen bool
}

// NewMachine creates a Machine at the identity transform.
func NewMachine(cfg Config) *Machine {
	return &Machine{
		cfg:          cfg,
		targetScale:  1,
		currentScale: 1,
	}
}

// Config returns the machine's tuning.
func (m *Machine) Config() Config {
	return m.cfg
}

// Frozen reports whether the machine currently ignores motion input.
func (m *Machine) Frozen() bool {
	return m.frozen
}

// Advance consumes one frame of gesture input and returns the smoothed
// transform. It is safe to call every rendered frame even when no new
// classification happened: with a neutral State no targets move and the
// current values keep converging toward the last targets.
//
// A fist freezes the targets; any of open-hand, zoom-in, zoom-out, peace
// or reset unfreezes them. A repeated fist never unfreezes. Reset wins
// over everything else in the same frame: it zeroes the rotation and
// position targets, restores the scale target to 1 and forces the
// machine active.
func (m *Machine) Advance(g gesture.State) Transform {
	if g.Reset {
		m.targetRotation = mgl64.Vec2{}
		m.targetPosition = mgl64.Vec2{}
		m.targetScale = 1
		m.frozen = false
	} else if m.frozen {
		if g.OpenHand || g.ZoomIn || g.ZoomOut || g.Peace {
			m.frozen = false
		}
	} else if g.Fist {
		m.frozen = true
	}

	if !m.frozen {
		if g.OpenHand {
			// Rotation accumulates without bounds; it wraps naturally in
			// the rendering transform.
			m.targetRotation = m.targetRotation.Add(g.RotationDelta)
		}
		if g.Peace {
			p := m.targetPosition.Add(g.PositionDelta)
			m.targetPosition = mgl64.Vec2{
				mgl64.Clamp(p.X(), -m.cfg.PositionClampX, m.cfg.PositionClampX),
				mgl64.Clamp(p.Y(), -m.cfg.PositionClampY, m.cfg.PositionClampY),
			}
		}
		if g.ZoomIn {
			m.targetScale = mgl64.Clamp(m.targetScale+scaleStep, m.cfg.ScaleMin, m.cfg.ScaleMax)
		}
		if g.ZoomOut {
			m.targetScale = mgl64.Clamp(m.targetScale-scaleStep, m.cfg.ScaleMin, m.cfg.ScaleMax)
		}
	}

	// Smoothing runs even while frozen: freezing blocks target updates,
	// not convergence of the rendered values toward the last targets.
	m.currentRotation = lerpVec2(m.currentRotation, m.targetRotation, m.cfg.RotationSmoothing)
	m.currentPosition = lerpVec2(m.currentPosition, m.targetPosition, m.cfg.PositionSmoothing)
	m.currentScale = lerp(m.currentScale, m.targetScale, m.cfg.ScaleSmoothing)

	return Transform{
		Rotation: m.currentRotation,
		Position: m.currentPosition,
		Scale:    m.currentScale,
		Frozen:   m.frozen,
	}
}

// TargetRotation returns the unsmoothed rotation accumulator.
func (m *Machine) TargetRotation() mgl64.Vec2 { return m.targetRotation }

// TargetPosition returns the unsmoothed position accumulator.
func (m *Machine) TargetPosition() mgl64.Vec2 { return m.targetPosition }

// TargetScale returns the unsmoothed scale accumulator.
func (m *Machine) TargetScale() float64 { return m.targetScale }

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func lerpVec2(a, b mgl64.Vec2, t float64) mgl64.Vec2 {
	return mgl64.Vec2{lerp(a.X(), b.X(), t), lerp(a.Y(), b.Y(), t)}
}

package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// body is a fixed orbital parameter set. OrbitRadius is in scene units,
// OrbitStep is the angular advance per rendered frame in radians.
type body struct {
	name        string
	orbitRadius float64
	orbitStep   float64
	radius      float64
	phase       float64
}

// BodyState is one body's pose inside a solar-system snapshot.
type BodyState struct {
	Name     string     `json:"name"`
	Position mgl64.Vec3 `json:"position"`
	Radius   float64    `json:"radius"`
}

// SolarSystem animates a small sun-and-planets model. Angles advance one
// fixed step per frame; freezing the owning transform simply stops Step
// from being called.
type SolarSystem struct {
	bodies []body
	angles []float64
}

// NewSolarSystem creates the default eight-planet system.
func NewSolarSystem() *SolarSystem {
	bodies := []body{
		{name: "sun", orbitRadius: 0, orbitStep: 0, radius: 1.0},
		{name: "mercury", orbitRadius: 1.6, orbitStep: 0.040, radius: 0.10, phase: 0.0},
		{name: "venus", orbitRadius: 2.2, orbitStep: 0.028, radius: 0.16, phase: 1.1},
		{name: "earth", orbitRadius: 2.9, orbitStep: 0.020, radius: 0.18, phase: 2.3},
		{name: "mars", orbitRadius: 3.6, orbitStep: 0.016, radius: 0.14, phase: 3.7},
		{name: "jupiter", orbitRadius: 4.8, orbitStep: 0.010, radius: 0.45, phase: 4.4},
		{name: "saturn", orbitRadius: 6.0, orbitStep: 0.008, radius: 0.38, phase: 5.2},
		{name: "uranus", orbitRadius: 7.0, orbitStep: 0.006, radius: 0.28, phase: 0.6},
		{name: "neptune", orbitRadius: 7.9, orbitStep: 0.005, radius: 0.26, phase: 1.9},
	}

	angles := make([]float64, len(bodies))
	for i, b := range bodies {
		angles[i] = b.phase
	}

	return &SolarSystem{bodies: bodies, angles: angles}
}

// Step advances every orbit by one frame.
func (s *SolarSystem) Step() {
	for i, b := range s.bodies {
		s.angles[i] = math.Mod(s.angles[i]+b.orbitStep, 2*math.Pi)
	}
}

// Bodies returns the current pose of every body in the orbital plane.
func (s *SolarSystem) Bodies() []BodyState {
	out := make([]BodyState, len(s.bodies))
	for i, b := range s.bodies {
		out[i] = BodyState{
			Name:   b.name,
			Radius: b.radius,
			Position: mgl64.Vec3{
				b.orbitRadius * math.Cos(s.angles[i]),
				0,
				b.orbitRadius * math.Sin(s.angles[i]),
			},
		}
	}
	return out
}

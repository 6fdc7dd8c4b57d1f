// Package scene holds the controllable 3D objects and routes gesture
// input to the interaction machine of the current selection.
package scene

import (
	"fmt"
	"sync"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/interaction"
)

// Kind identifies the geometry of a controllable object.
type Kind string

const (
	KindCube    Kind = "cube"
	KindSphere  Kind = "sphere"
	KindPyramid Kind = "pyramid"
	KindSolar   Kind = "solar-system"
)

// Object describes one controllable model and its interaction tuning.
// The transform machine itself lives on the Scene and only exists while
// the object is selected.
type Object struct {
	ID     string             `json:"id"`
	Name   string             `json:"name"`
	Kind   Kind               `json:"kind"`
	Config interaction.Config `json:"config"`
}

// Snapshot is the per-frame scene state published to renderers.
type Snapshot struct {
	ObjectID  string                `json:"objectId"`
	Kind      Kind                  `json:"kind"`
	Transform interaction.Transform `json:"transform"`
	Bodies    []BodyState           `json:"bodies,omitempty"`
	Gesture   gesture.State         `json:"gesture"`
	Dominant  gesture.Kind          `json:"dominant,omitempty"`
	Timestamp int64                 `json:"timestamp"`
}

// Scene owns the object registry and the single live interaction
// machine. Selecting an object discards the previous machine and starts
// the new selection at the identity transform.
type Scene struct {
	mu       sync.Mutex
	objects  []*Object
	selected *Object
	machine  *interaction.Machine
	solar    *SolarSystem
}

// New creates a Scene with the given objects and selects the first one.
func New(objects []*Object) (*Scene, error) {
	if len(objects) == 0 {
		return nil, fmt.Errorf("scene needs at least one object")
	}

	s := &Scene{objects: objects}
	s.selectLocked(objects[0])
	return s, nil
}

// Objects returns the registered objects.
func (s *Scene) Objects() []*Object {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Object, len(s.objects))
	copy(out, s.objects)
	return out
}

// Object returns the object with the given ID.
func (s *Scene) Object(id string) (*Object, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.objects {
		if o.ID == id {
			return o, true
		}
	}
	return nil, false
}

// Selected returns the currently selected object.
func (s *Scene) Selected() *Object {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected
}

// Select makes the object with the given ID the controlled one. The
// previous machine is destroyed; the new selection starts fresh.
func (s *Scene) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.objects {
		if o.ID == id {
			s.selectLocked(o)
			return nil
		}
	}
	return fmt.Errorf("unknown object %q", id)
}

func (s *Scene) selectLocked(o *Object) {
	s.selected = o
	s.machine = interaction.NewMachine(o.Config)
	if o.Kind == KindSolar {
		s.solar = NewSolarSystem()
	} else {
		s.solar = nil
	}
}

// SetConfig replaces the interaction tuning of an object. If the object
// is currently selected its machine restarts with the new tuning.
func (s *Scene) SetConfig(id string, cfg interaction.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.objects {
		if o.ID == id {
			o.Config = cfg
			if s.selected == o {
				s.machine = interaction.NewMachine(cfg)
			}
			return nil
		}
	}
	return fmt.Errorf("unknown object %q", id)
}

// Advance feeds one frame of gesture input to the selected object's
// machine and steps the ambient animation. Orbital motion pauses while
// the transform is frozen.
func (s *Scene) Advance(g gesture.State, nowMillis int64) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	tr := s.machine.Advance(g)

	snap := Snapshot{
		ObjectID:  s.selected.ID,
		Kind:      s.selected.Kind,
		Transform: tr,
		Gesture:   g,
		Dominant:  g.Dominant(),
		Timestamp: nowMillis,
	}

	if s.solar != nil {
		if !tr.Frozen {
			s.solar.Step()
		}
		snap.Bodies = s.solar.Bodies()
	}

	return snap
}

// Package cue runs external commands (typically sound players) when a
// gesture transitions to active.
package cue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/ayusman/mudra/internal/gesture"
)

// Binding maps a gesture to the command executed on its activation edge.
type Binding struct {
	Gesture string   `json:"gesture"`
	Command string   `json:"command"`
	Args    []string `json:"args,omitempty"`
	Enabled bool     `json:"enabled"`
}

// Player executes cue commands with a timeout.
type Player struct {
	bindings  map[gesture.Kind]Binding
	timeoutMs int
}

// NewPlayer creates a Player with the given per-command timeout in
// milliseconds.
func NewPlayer(timeoutMs int) *Player {
	return &Player{
		bindings:  make(map[gesture.Kind]Binding),
		timeoutMs: timeoutMs,
	}
}

// LoadBindings reads cue bindings from a JSON file. A missing file is
// not an error: it simply leaves the player without cues.
func (p *Player) LoadBindings(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read cue bindings: %w", err)
	}

	var bindings []Binding
	if err := json.Unmarshal(data, &bindings); err != nil {
		return fmt.Errorf("parse cue bindings: %w", err)
	}

	for _, b := range bindings {
		p.bindings[gesture.Kind(b.Gesture)] = b
	}

	return nil
}

// Bind registers or replaces a binding programmatically.
func (p *Player) Bind(b Binding) {
	p.bindings[gesture.Kind(b.Gesture)] = b
}

// Bound reports whether an enabled cue exists for the gesture.
func (p *Player) Bound(k gesture.Kind) bool {
	b, ok := p.bindings[k]
	return ok && b.Enabled
}

// Play runs the cue bound to the gesture, if any. It blocks until the
// command exits or the timeout fires, so callers on the frame loop
// should invoke it from a goroutine.
func (p *Player) Play(k gesture.Kind) error {
	b, ok := p.bindings[k]
	if !ok || !b.Enabled {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(p.timeoutMs)*time.Millisecond)
	defer cancel()

	cmd := exec.CommandContext(ctx, b.Command, b.Args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("cue for %s timed out after %dms", k, p.timeoutMs)
	}

	if err != nil {
		if stderr.Len() > 0 {
			return fmt.Errorf("cue for %s failed: %w, stderr: %s", k, err, stderr.String())
		}
		return fmt.Errorf("cue for %s failed: %w", k, err)
	}

	return nil
}

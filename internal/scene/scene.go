// Package scene loads TOML scene files: the camera start, the list of moves
// and the render command for one animation. A scene is the declarative form
// of a campath.Path plus the bits the command surface needs to run it.
package scene

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/ludwigVonKoopa/anim/internal/anim"
	"github.com/ludwigVonKoopa/anim/internal/campath"
)

// Camera is the path's starting viewport.
type Camera struct {
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
	DX     float64 `toml:"dx"`
	DY     float64 `toml:"dy"`
	Easing string  `toml:"easing"`
}

// Move is one waypoint transition. Frames is how long the transition takes;
// the optional fields default to "keep the current value".
type Move struct {
	Frames int      `toml:"frames"`
	X      *float64 `toml:"x"`
	Y      *float64 `toml:"y"`
	Zoom   *float64 `toml:"zoom"`
	DX     *float64 `toml:"dx"`
	DY     *float64 `toml:"dy"`
}

// Render holds the per-frame render command.
type Render struct {
	Command string `toml:"command"`
}

// Scene is one parsed scene file.
type Scene struct {
	Camera Camera `toml:"camera"`
	Moves  []Move `toml:"moves"`
	Render Render `toml:"render"`
}

// Load reads and validates a scene file.
func Load(path string) (Scene, error) {
	var s Scene
	b, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read scene: %w", err)
	}
	if err := toml.Unmarshal(b, &s); err != nil {
		return s, fmt.Errorf("parse scene: %w", err)
	}
	if err := s.validate(); err != nil {
		return s, err
	}
	return s, nil
}

func (s Scene) validate() error {
	if s.Camera.DX <= 0 || s.Camera.DY <= 0 {
		return fmt.Errorf("camera dx and dy must be positive")
	}
	if len(s.Moves) == 0 {
		return fmt.Errorf("scene needs at least one move")
	}
	for i, m := range s.Moves {
		if m.Frames < 1 {
			return fmt.Errorf("move %d: frames must be >= 1", i)
		}
		if m.Zoom != nil && (m.DX != nil || m.DY != nil) {
			return fmt.Errorf("move %d: zoom and dx/dy are mutually exclusive", i)
		}
	}
	return nil
}

// Path builds the camera path described by the scene.
func (s Scene) Path() (*campath.Path, error) {
	p := campath.New(campath.Point{X: s.Camera.X, Y: s.Camera.Y}, s.Camera.DX, s.Camera.DY)
	if s.Camera.Easing != "" {
		f, err := campath.EasingByName(s.Camera.Easing)
		if err != nil {
			return nil, err
		}
		p.UseEasing(f)
	}

	x, y := s.Camera.X, s.Camera.Y
	dx, dy := s.Camera.DX, s.Camera.DY
	for i, m := range s.Moves {
		if m.X != nil {
			x = *m.X
		}
		if m.Y != nil {
			y = *m.Y
		}
		switch {
		case m.Zoom != nil:
			if err := p.MoveAndZoom(m.Frames, *m.Zoom, campath.Point{X: x, Y: y}); err != nil {
				return nil, fmt.Errorf("move %d: %w", i, err)
			}
			dx, dy = dx / *m.Zoom, dy / *m.Zoom
		case m.DX != nil || m.DY != nil:
			if m.DX != nil {
				dx = *m.DX
			}
			if m.DY != nil {
				dy = *m.DY
			}
			if err := p.MoveAndFocus(m.Frames, dx, dy, campath.Point{X: x, Y: y}); err != nil {
				return nil, fmt.Errorf("move %d: %w", i, err)
			}
		default:
			if err := p.MoveAndFocus(m.Frames, dx, dy, campath.Point{X: x, Y: y}); err != nil {
				return nil, fmt.Errorf("move %d: %w", i, err)
			}
		}
	}
	return p, nil
}

// Timeline interpolates the scene's path and wraps it as a timeline of
// campath.Step states, returning the total frame count alongside.
func (s Scene) Timeline() (anim.Timeline, int, error) {
	p, err := s.Path()
	if err != nil {
		return nil, 0, err
	}
	steps, err := p.Frames()
	if err != nil {
		return nil, 0, err
	}
	states := make([]anim.DataState, len(steps))
	for i, st := range steps {
		states[i] = st
	}
	return anim.SliceTimeline(states...), len(steps), nil
}

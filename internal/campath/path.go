// Package campath generates the camera trajectory for an animation: a list
// of waypoints (position, half-extents, time) interpolated into one camera
// extent per frame. The spline keeps the first derivative continuous, so the
// camera accelerates and decelerates smoothly instead of jerking between
// waypoints.
package campath

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"
)

// Point is a camera center position.
type Point struct {
	X, Y float64
}

// Extent is the camera rectangle for one frame: [X0, X1] horizontally and
// [Y0, Y1] vertically, i.e. center +/- half-extent.
type Extent struct {
	X0, X1, Y0, Y1 float64
}

// EaseFunc maps normalized segment progress in [0, 1] to eased progress.
type EaseFunc func(float64) float64

// Step is one interpolated frame of the camera path. Speed is the distance
// the camera center traveled since the previous frame.
type Step struct {
	Frame  int
	Extent Extent
	Speed  float64
}

// Path accumulates camera waypoints on an integer frame timeline. The zero
// value is not usable; build with New and append moves in order.
type Path struct {
	times  []float64
	xs     []float64
	ys     []float64
	dxs    []float64
	dys    []float64
	easing EaseFunc
}

// New starts a path at the given center with half-extents dx, dy at frame 0.
func New(start Point, dx, dy float64) *Path {
	return &Path{
		times: []float64{0},
		xs:    []float64{start.X},
		ys:    []float64{start.Y},
		dxs:   []float64{dx},
		dys:   []float64{dy},
	}
}

// UseEasing replaces the spline with per-segment eased linear interpolation.
// Useful for short two-waypoint paths where spline smoothing has nothing to
// smooth.
func (p *Path) UseEasing(f EaseFunc) { p.easing = f }

func (p *Path) last() (x, y, dx, dy float64) {
	i := len(p.times) - 1
	return p.xs[i], p.ys[i], p.dxs[i], p.dys[i]
}

func (p *Path) add(after float64, x, y, dx, dy float64) error {
	if after <= 0 {
		return fmt.Errorf("move must advance the timeline, got %g", after)
	}
	p.times = append(p.times, p.times[len(p.times)-1]+after)
	p.xs = append(p.xs, x)
	p.ys = append(p.ys, y)
	p.dxs = append(p.dxs, dx)
	p.dys = append(p.dys, dy)
	return nil
}

// Hold keeps the camera still for the given number of frames.
func (p *Path) Hold(frames int) error {
	x, y, dx, dy := p.last()
	return p.add(float64(frames), x, y, dx, dy)
}

// Move pans the camera to a new center over the given number of frames.
func (p *Path) Move(frames int, to Point) error {
	_, _, dx, dy := p.last()
	return p.add(float64(frames), to.X, to.Y, dx, dy)
}

// Zoom shrinks (factor > 1) or grows (factor < 1) the extents in place.
func (p *Path) Zoom(frames int, factor float64) error {
	x, y, _, _ := p.last()
	return p.MoveAndZoom(frames, factor, Point{X: x, Y: y})
}

// MoveAndZoom pans to a new center while zooming by factor relative to the
// current extents.
func (p *Path) MoveAndZoom(frames int, factor float64, to Point) error {
	if factor <= 0 {
		return fmt.Errorf("zoom factor must be positive, got %g", factor)
	}
	_, _, dx, dy := p.last()
	return p.MoveAndFocus(frames, dx/factor, dy/factor, to)
}

// MoveAndFocus pans to a new center while setting the half-extents directly.
func (p *Path) MoveAndFocus(frames int, dx, dy float64, to Point) error {
	if dx <= 0 || dy <= 0 {
		return fmt.Errorf("half-extents must be positive, got dx=%g dy=%g", dx, dy)
	}
	return p.add(float64(frames), to.X, to.Y, dx, dy)
}

// Len returns the number of frames the path spans (the last waypoint's frame).
func (p *Path) Len() int {
	return int(p.times[len(p.times)-1])
}

// Frames interpolates the path into one Step per frame, from frame 0 up to
// but excluding the last waypoint's frame.
func (p *Path) Frames() ([]Step, error) {
	ts, xs, ys, dxs, dys, err := p.sample(1)
	if err != nil {
		return nil, err
	}
	steps := make([]Step, len(ts))
	for i := range ts {
		steps[i] = Step{
			Frame: int(ts[i]),
			Extent: Extent{
				X0: xs[i] - dxs[i], X1: xs[i] + dxs[i],
				Y0: ys[i] - dys[i], Y1: ys[i] + dys[i],
			},
		}
		if i > 0 {
			steps[i].Speed = math.Hypot(xs[i]-xs[i-1], ys[i]-ys[i-1])
		}
	}
	return steps, nil
}

// sample interpolates every series on a regular grid with spacing dt,
// starting at the first waypoint and excluding the last one.
func (p *Path) sample(dt float64) (ts, xs, ys, dxs, dys []float64, err error) {
	if len(p.times) < 2 {
		return nil, nil, nil, nil, nil, fmt.Errorf("path needs at least one move")
	}
	if dt <= 0 {
		return nil, nil, nil, nil, nil, fmt.Errorf("dt must be positive, got %g", dt)
	}
	for t := p.times[0]; t < p.times[len(p.times)-1]; t += dt {
		ts = append(ts, t)
	}
	xs = p.interpolate(ts, p.xs)
	ys = p.interpolate(ts, p.ys)
	dxs = p.interpolate(ts, p.dxs)
	dys = p.interpolate(ts, p.dys)
	return ts, xs, ys, dxs, dys, nil
}

func (p *Path) interpolate(ts, series []float64) []float64 {
	if p.easing != nil {
		return p.interpolateEased(ts, series)
	}
	var pc interp.PiecewiseCubic
	pc.FitWithDerivatives(p.times, series, knotSlopes(p.times, series))
	out := make([]float64, len(ts))
	for i, t := range ts {
		out[i] = pc.Predict(t)
	}
	return out
}

func (p *Path) interpolateEased(ts, series []float64) []float64 {
	out := make([]float64, len(ts))
	seg := 0
	for i, t := range ts {
		for seg < len(p.times)-2 && t >= p.times[seg+1] {
			seg++
		}
		u := (t - p.times[seg]) / (p.times[seg+1] - p.times[seg])
		w := p.easing(u)
		out[i] = series[seg] + (series[seg+1]-series[seg])*w
	}
	return out
}

// knotSlopes builds the Hermite knot derivatives: zero everywhere except at
// interior knots where the three surrounding waypoints are strictly monotone,
// where the mean of the adjacent secant slopes is used. Zero slopes at local
// extrema prevent the spline from overshooting past a waypoint.
func knotSlopes(xs, ys []float64) []float64 {
	d := make([]float64, len(ys))
	for i := 1; i < len(ys)-1; i++ {
		before := (ys[i] - ys[i-1]) / (xs[i] - xs[i-1])
		after := (ys[i+1] - ys[i]) / (xs[i+1] - xs[i])
		if before*after > 0 {
			d[i] = (before + after) / 2
		}
	}
	return d
}

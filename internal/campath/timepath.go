package campath

import (
	"fmt"
	"math"
	"time"
)

// TimeStep is one interpolated frame of a time-based path. Speed is in
// coordinate units per day regardless of the sampling interval.
type TimeStep struct {
	Time   time.Time
	Extent Extent
	Speed  float64
}

// TimePath is a Path whose waypoints sit on a wall-clock timeline instead of
// frame ordinals, for animations driven by time-indexed datasets. Internally
// times are seconds since t0.
type TimePath struct {
	path *Path
	t0   time.Time
}

// NewTime starts a time path at the given center and half-extents at t0.
func NewTime(start Point, dx, dy float64, t0 time.Time) *TimePath {
	return &TimePath{path: New(start, dx, dy), t0: t0}
}

// UseEasing replaces the spline with per-segment eased interpolation.
func (tp *TimePath) UseEasing(f EaseFunc) { tp.path.UseEasing(f) }

func (tp *TimePath) addAfter(d time.Duration, x, y, dx, dy float64) error {
	if d <= 0 {
		return fmt.Errorf("move duration must be positive, got %s", d)
	}
	return tp.path.add(d.Seconds(), x, y, dx, dy)
}

// HoldFor keeps the camera still for the given duration.
func (tp *TimePath) HoldFor(d time.Duration) error {
	x, y, dx, dy := tp.path.last()
	return tp.addAfter(d, x, y, dx, dy)
}

// MoveAfter pans to a new center over the given duration.
func (tp *TimePath) MoveAfter(d time.Duration, to Point) error {
	_, _, dx, dy := tp.path.last()
	return tp.addAfter(d, to.X, to.Y, dx, dy)
}

// ZoomAfter zooms in place by factor over the given duration.
func (tp *TimePath) ZoomAfter(d time.Duration, factor float64) error {
	x, y, _, _ := tp.path.last()
	return tp.MoveAndZoomAfter(d, factor, Point{X: x, Y: y})
}

// MoveAndZoomAfter pans to a new center while zooming by factor relative to
// the current extents.
func (tp *TimePath) MoveAndZoomAfter(d time.Duration, factor float64, to Point) error {
	if factor <= 0 {
		return fmt.Errorf("zoom factor must be positive, got %g", factor)
	}
	_, _, dx, dy := tp.path.last()
	return tp.addAfter(d, to.X, to.Y, dx/factor, dy/factor)
}

// Frames interpolates the path with one frame per dt of timeline time.
func (tp *TimePath) Frames(dt time.Duration) ([]TimeStep, error) {
	if dt <= 0 {
		return nil, fmt.Errorf("dt must be positive, got %s", dt)
	}
	ts, xs, ys, dxs, dys, err := tp.path.sample(dt.Seconds())
	if err != nil {
		return nil, err
	}
	perDay := float64(24*time.Hour) / float64(dt)
	steps := make([]TimeStep, len(ts))
	for i := range ts {
		steps[i] = TimeStep{
			Time: tp.t0.Add(time.Duration(ts[i] * float64(time.Second))),
			Extent: Extent{
				X0: xs[i] - dxs[i], X1: xs[i] + dxs[i],
				Y0: ys[i] - dys[i], Y1: ys[i] + dys[i],
			},
		}
		if i > 0 {
			dist := math.Hypot(xs[i]-xs[i-1], ys[i]-ys[i-1])
			steps[i].Speed = dist * perDay
		}
	}
	return steps, nil
}

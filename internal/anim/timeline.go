package anim

import "io"

// DataState is one snapshot of the data being animated. The pipeline never
// inspects it; it is handed to the renderer as-is.
type DataState = any

// Timeline yields data states in frame order, one per call. Next returns
// io.EOF once the sequence is exhausted; any other error means the source
// itself is broken and aborts the run. Timelines are consumed forward-only,
// exactly once.
type Timeline interface {
	Next() (DataState, error)
}

// TimelineFunc adapts a function to the Timeline interface.
type TimelineFunc func() (DataState, error)

func (f TimelineFunc) Next() (DataState, error) { return f() }

type sliceTimeline struct {
	states []DataState
	pos    int
}

// SliceTimeline returns a Timeline over the given states.
func SliceTimeline(states ...DataState) Timeline {
	return &sliceTimeline{states: states}
}

func (t *sliceTimeline) Next() (DataState, error) {
	if t.pos >= len(t.states) {
		return nil, io.EOF
	}
	s := t.states[t.pos]
	t.pos++
	return s, nil
}

type countTimeline struct {
	n   int
	pos int
}

// CountTimeline yields n states whose data is the position in the sequence,
// starting at 0. Useful when the renderer derives everything from the frame
// number alone.
func CountTimeline(n int) Timeline {
	return &countTimeline{n: n}
}

func (t *countTimeline) Next() (DataState, error) {
	if t.pos >= t.n {
		return nil, io.EOF
	}
	p := t.pos
	t.pos++
	return p, nil
}

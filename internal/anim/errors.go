package anim

import "errors"

// Errors that abort a run. Per-frame render failures are never surfaced as
// errors; they are recorded as Failed outcomes and the run continues.
var (
	// ErrAlreadyRun is returned when Run is called on a used Sequencer.
	ErrAlreadyRun = errors.New("sequencer already run")

	// ErrLabelOverflow means an ordinal needs more digits than the label
	// width committed at the start of the run.
	ErrLabelOverflow = errors.New("ordinal exceeds committed label width")

	// ErrThresholdExceeded means too many frames failed in a row, which
	// points at a broken data source rather than isolated bad frames.
	ErrThresholdExceeded = errors.New("consecutive frame failures exceeded threshold")

	// ErrTimelineBroken means the timeline source itself failed while
	// producing the next state. The run cannot skip over a broken source
	// and keep ordinals meaningful, so this is fatal.
	ErrTimelineBroken = errors.New("timeline source failed")
)

package anim

// Status classifies the outcome of one frame.
type Status int

const (
	StatusSucceeded Status = iota
	StatusFailed
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Outcome records the result of exactly one frame pulled from the timeline.
// Path is the output path the frame targeted; Err carries the failure
// description for Failed frames, Reason the skip reason for Skipped ones.
type Outcome struct {
	Ordinal int
	Status  Status
	Path    string
	Err     string
	Reason  string
}

// RunState is the Sequencer's lifecycle state.
type RunState int

const (
	StateIdle RunState = iota
	StateRunning
	StateCompleted
	StateAborted
)

func (s RunState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Summary aggregates per-frame outcomes for one run. The Sequencer owns it
// while running and hands it to the caller once the run ends; callers must
// treat it as read-only from then on. Aborted runs still carry every outcome
// recorded before the abort.
type Summary struct {
	Outcomes []Outcome

	Attempted int
	Succeeded int
	Failed    int
	Skipped   int

	// State is StateCompleted or StateAborted once the run ends.
	State RunState
	// Abort describes why an aborted run stopped; empty otherwise.
	Abort string
}

func (s *Summary) record(o Outcome) {
	s.Outcomes = append(s.Outcomes, o)
	s.Attempted++
	switch o.Status {
	case StatusSucceeded:
		s.Succeeded++
	case StatusFailed:
		s.Failed++
	case StatusSkipped:
		s.Skipped++
	}
}

// Ok reports whether the run completed with at most tolerance failed frames.
// This is the command surface's exit-status decision and the gate before
// handing the sequence to an encoder.
func (s *Summary) Ok(tolerance int) bool {
	return s.State == StateCompleted && s.Failed <= tolerance
}

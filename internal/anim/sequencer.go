package anim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config controls one render run.
type Config struct {
	// OutDir is the destination folder for the image sequence. Required.
	OutDir string
	// Prefix and Ext shape the filenames (DefaultPrefix / DefaultExt when empty).
	Prefix string
	Ext    string

	// Start is the first ordinal (default 0).
	Start int
	// MinWidth is the minimum label width (default DefaultLabelWidth).
	MinWidth int
	// TotalHint is the expected frame count, used to size the label width up
	// front. 0 means unknown; the committed width is then the minimum, and
	// running past its capacity aborts rather than renaming files.
	TotalHint int

	// MaxConsecutiveFailures aborts the run after this many Failed frames in
	// a row. 0 disables the threshold.
	MaxConsecutiveFailures int

	// FrameBudget is a soft per-frame wall-time limit (see Invoker). 0
	// disables it.
	FrameBudget time.Duration

	// SkipExisting records frames whose output file already exists as
	// Skipped instead of re-rendering them.
	SkipExisting bool

	// Logger defaults to a disabled logger when zero.
	Logger zerolog.Logger
}

func (c *Config) setDefaults() {
	if c.Prefix == "" {
		c.Prefix = DefaultPrefix
	}
	if c.Ext == "" {
		c.Ext = DefaultExt
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.OutDir == "" {
		return fmt.Errorf("output dir is required")
	}
	if c.Start < 0 {
		return fmt.Errorf("start ordinal must be >= 0")
	}
	if c.MaxConsecutiveFailures < 0 {
		return fmt.Errorf("failure threshold must be >= 0")
	}
	return nil
}

// Sequencer drives one full pass over a timeline: pull the next state, label
// it, allocate its output path, invoke the renderer, record the outcome. It
// is single-use; a finished Sequencer cannot run again.
type Sequencer struct {
	cfg     Config
	labeler Labeler
	alloc   *Allocator
	invoker *Invoker
	logger  zerolog.Logger

	mu    sync.Mutex
	state RunState
}

// NewSequencer builds a Sequencer in StateIdle.
func NewSequencer(cfg Config) (*Sequencer, error) {
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	return &Sequencer{
		cfg:     cfg,
		labeler: NewLabeler(cfg.MinWidth, cfg.Start, cfg.TotalHint),
		alloc:   NewAllocator(cfg.OutDir, cfg.Prefix, cfg.Ext),
		invoker: NewInvoker(cfg.FrameBudget, logger),
		logger:  logger,
		state:   StateIdle,
	}, nil
}

// State returns the current run state.
func (s *Sequencer) State() RunState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LabelWidth reports the label width committed for this run.
func (s *Sequencer) LabelWidth() int { return s.labeler.Width() }

// Pattern returns the printf-style filename pattern of the produced sequence,
// for handing to a downstream encoder.
func (s *Sequencer) Pattern() string { return s.alloc.Pattern(s.labeler.Width()) }

// Run iterates the timeline to exhaustion, rendering one frame per state.
// The returned Summary is always non-nil once the run has started and lists
// every outcome in ordinal order. The error is nil for Completed runs (even
// ones containing Failed frames) and the abort cause for Aborted runs.
// Cancellation via ctx is honored between frames only, never mid-render.
func (s *Sequencer) Run(ctx context.Context, tl Timeline, r Renderer) (*Summary, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}

	sum := &Summary{}
	consecutive := 0
	ordinal := s.cfg.Start

	for {
		select {
		case <-ctx.Done():
			return s.abort(sum, ctx.Err())
		default:
		}

		data, err := tl.Next()
		if errors.Is(err, io.EOF) {
			return s.complete(sum)
		}
		if err != nil {
			return s.abort(sum, fmt.Errorf("%w: %v", ErrTimelineBroken, err))
		}

		label, err := s.labeler.Label(ordinal)
		if err != nil {
			return s.abort(sum, err)
		}
		path, err := s.alloc.Allocate(label)
		if err != nil {
			return s.abort(sum, err)
		}

		frame := Frame{Ordinal: ordinal, Label: label, Data: data}
		ordinal++

		if s.cfg.SkipExisting {
			if _, err := os.Stat(path); err == nil {
				s.logger.Debug().Int("frame", frame.Ordinal).Str("path", path).Msg("output exists, skipping")
				sum.record(Outcome{Ordinal: frame.Ordinal, Status: StatusSkipped, Path: path, Reason: "output exists"})
				consecutive = 0
				continue
			}
		}

		out := s.invoker.Invoke(ctx, frame, path, r)
		sum.record(out)

		if out.Status == StatusFailed {
			consecutive++
			if s.cfg.MaxConsecutiveFailures > 0 && consecutive >= s.cfg.MaxConsecutiveFailures {
				return s.abort(sum, fmt.Errorf("%w: %d", ErrThresholdExceeded, consecutive))
			}
		} else {
			consecutive = 0
		}
	}
}

func (s *Sequencer) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return fmt.Errorf("%w (state %s)", ErrAlreadyRun, s.state)
	}
	s.state = StateRunning
	return nil
}

func (s *Sequencer) setState(st RunState) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

func (s *Sequencer) complete(sum *Summary) (*Summary, error) {
	s.setState(StateCompleted)
	sum.State = StateCompleted
	s.logger.Info().
		Int("attempted", sum.Attempted).
		Int("succeeded", sum.Succeeded).
		Int("failed", sum.Failed).
		Int("skipped", sum.Skipped).
		Msg("run completed")
	return sum, nil
}

func (s *Sequencer) abort(sum *Summary, cause error) (*Summary, error) {
	s.setState(StateAborted)
	sum.State = StateAborted
	sum.Abort = cause.Error()
	s.logger.Error().Err(cause).
		Int("attempted", sum.Attempted).
		Int("succeeded", sum.Succeeded).
		Int("failed", sum.Failed).
		Msg("run aborted")
	return sum, cause
}

package anim

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Renderer draws one frame to the given path. Implementations are supplied
// by the caller; the pipeline only cares that after a nil return the file at
// path exists.
type Renderer interface {
	RenderFrame(ctx context.Context, frame Frame, path string) error
}

// RenderFunc adapts a function to the Renderer interface.
type RenderFunc func(ctx context.Context, frame Frame, path string) error

func (f RenderFunc) RenderFrame(ctx context.Context, frame Frame, path string) error {
	return f(ctx, frame, path)
}

// Invoker runs the renderer for single frames, converting any failure (error
// return, panic, missing output) into a Failed outcome so one bad frame never
// takes down the run. The renderer writes to a temporary sibling path which
// is renamed into place on success, so a partial or corrupt file is never
// visible at the final path.
type Invoker struct {
	budget time.Duration
	logger zerolog.Logger
}

// NewInvoker returns an Invoker. budget is a soft per-frame wall-time limit
// checked after the renderer returns (rendering code is never interrupted
// mid-draw); 0 disables it.
func NewInvoker(budget time.Duration, logger zerolog.Logger) *Invoker {
	return &Invoker{budget: budget, logger: logger}
}

// Invoke renders one frame. It calls the renderer exactly once and always
// returns an outcome, never an error.
func (iv *Invoker) Invoke(ctx context.Context, frame Frame, path string, r Renderer) Outcome {
	tmp := path + ".tmp"
	start := time.Now()
	err := callRenderer(ctx, r, frame, tmp)
	elapsed := time.Since(start)

	if err == nil && iv.budget > 0 && elapsed > iv.budget {
		err = fmt.Errorf("render took %s, budget is %s", elapsed.Round(time.Millisecond), iv.budget)
	}
	if err == nil {
		if _, serr := os.Stat(tmp); serr != nil {
			err = fmt.Errorf("renderer reported success but wrote no file: %v", serr)
		}
	}
	if err == nil {
		err = os.Rename(tmp, path)
	}
	if err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil && !os.IsNotExist(rmErr) {
			iv.logger.Warn().Err(rmErr).Str("path", tmp).Msg("could not remove partial frame file")
		}
		iv.logger.Warn().Int("frame", frame.Ordinal).Err(err).Msg("frame failed")
		return Outcome{Ordinal: frame.Ordinal, Status: StatusFailed, Path: path, Err: err.Error()}
	}

	iv.logger.Debug().Int("frame", frame.Ordinal).Str("path", path).
		Dur("elapsed", elapsed).Msg("frame rendered")
	return Outcome{Ordinal: frame.Ordinal, Status: StatusSucceeded, Path: path}
}

// callRenderer isolates panics from user rendering code.
func callRenderer(ctx context.Context, r Renderer, frame Frame, path string) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("renderer panicked: %v", rec)
		}
	}()
	return r.RenderFrame(ctx, frame, path)
}

package anim

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		OutDir: filepath.Join(t.TempDir(), "frames"),
		Logger: zerolog.Nop(),
	}
}

func okRenderer() Renderer {
	return RenderFunc(func(ctx context.Context, frame Frame, path string) error {
		return os.WriteFile(path, []byte(frame.Label), 0o644)
	})
}

func TestSequencer_CompletedRun(t *testing.T) {
	cfg := testConfig(t)
	cfg.TotalHint = 5
	seq, err := NewSequencer(cfg)
	if err != nil {
		t.Fatal(err)
	}

	sum, err := seq.Run(context.Background(), CountTimeline(5), okRenderer())
	if err != nil {
		t.Fatalf("completed run should not error: %v", err)
	}
	if sum.State != StateCompleted {
		t.Fatalf("expected completed, got %s", sum.State)
	}
	if sum.Attempted != 5 || sum.Succeeded != 5 || sum.Failed != 0 || sum.Skipped != 0 {
		t.Fatalf("unexpected counts: %+v", sum)
	}
	for i, o := range sum.Outcomes {
		if o.Ordinal != i {
			t.Fatalf("outcome %d has ordinal %d", i, o.Ordinal)
		}
		if _, err := os.Stat(o.Path); err != nil {
			t.Fatalf("missing output for frame %d: %v", i, err)
		}
	}
	if seq.State() != StateCompleted {
		t.Fatalf("sequencer state %s", seq.State())
	}
}

func TestSequencer_OrdinalsGapFree(t *testing.T) {
	cfg := testConfig(t)
	seq, err := NewSequencer(cfg)
	if err != nil {
		t.Fatal(err)
	}

	// every third frame fails; ordinals must still be gap-free
	r := RenderFunc(func(ctx context.Context, frame Frame, path string) error {
		if frame.Ordinal%3 == 2 {
			return errors.New("bad timestep")
		}
		return os.WriteFile(path, []byte("x"), 0o644)
	})

	sum, err := seq.Run(context.Background(), CountTimeline(9), r)
	if err != nil {
		t.Fatalf("per-frame failures must not abort the run: %v", err)
	}
	if sum.Attempted != 9 || sum.Failed != 3 || sum.Succeeded != 6 {
		t.Fatalf("unexpected counts: %+v", sum)
	}
	for i, o := range sum.Outcomes {
		if o.Ordinal != i {
			t.Fatalf("gap in ordinals at %d (got %d)", i, o.Ordinal)
		}
	}
}

func TestSequencer_ThresholdAbort(t *testing.T) {
	cfg := testConfig(t)
	cfg.MaxConsecutiveFailures = 3
	seq, err := NewSequencer(cfg)
	if err != nil {
		t.Fatal(err)
	}

	r := RenderFunc(func(ctx context.Context, frame Frame, path string) error {
		return errors.New("always broken")
	})

	sum, err := seq.Run(context.Background(), CountTimeline(10), r)
	if !errors.Is(err, ErrThresholdExceeded) {
		t.Fatalf("expected ErrThresholdExceeded, got %v", err)
	}
	if sum == nil {
		t.Fatal("aborted run must still return a summary")
	}
	if sum.State != StateAborted {
		t.Fatalf("expected aborted, got %s", sum.State)
	}
	if sum.Attempted != 3 || sum.Failed != 3 || sum.Succeeded != 0 {
		t.Fatalf("expected exactly 3 failed attempts, got %+v", sum)
	}
}

func TestSequencer_SuccessResetsFailureStreak(t *testing.T) {
	cfg := testConfig(t)
	cfg.MaxConsecutiveFailures = 3
	seq, err := NewSequencer(cfg)
	if err != nil {
		t.Fatal(err)
	}

	// fail, fail, succeed, repeated: never 3 in a row
	r := RenderFunc(func(ctx context.Context, frame Frame, path string) error {
		if frame.Ordinal%3 != 2 {
			return errors.New("flaky")
		}
		return os.WriteFile(path, []byte("x"), 0o644)
	})

	sum, err := seq.Run(context.Background(), CountTimeline(9), r)
	if err != nil {
		t.Fatalf("streak never reached threshold, run should complete: %v", err)
	}
	if sum.Failed != 6 || sum.Succeeded != 3 {
		t.Fatalf("unexpected counts: %+v", sum)
	}
}

func TestSequencer_BrokenTimelineAborts(t *testing.T) {
	cfg := testConfig(t)
	seq, err := NewSequencer(cfg)
	if err != nil {
		t.Fatal(err)
	}

	n := 0
	tl := TimelineFunc(func() (DataState, error) {
		if n == 2 {
			return nil, errors.New("malformed source")
		}
		n++
		return n, nil
	})

	sum, err := seq.Run(context.Background(), tl, okRenderer())
	if !errors.Is(err, ErrTimelineBroken) {
		t.Fatalf("expected ErrTimelineBroken, got %v", err)
	}
	if sum.State != StateAborted || sum.Attempted != 2 {
		t.Fatalf("expected 2 recorded outcomes before abort, got %+v", sum)
	}
}

func TestSequencer_SkipExisting(t *testing.T) {
	cfg := testConfig(t)
	cfg.SkipExisting = true
	cfg.TotalHint = 3
	seq, err := NewSequencer(cfg)
	if err != nil {
		t.Fatal(err)
	}

	// pre-create frame 001's output
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		t.Fatal(err)
	}
	pre := filepath.Join(cfg.OutDir, "img_001.png")
	if err := os.WriteFile(pre, []byte("already here"), 0o644); err != nil {
		t.Fatal(err)
	}

	sum, err := seq.Run(context.Background(), CountTimeline(3), okRenderer())
	if err != nil {
		t.Fatal(err)
	}
	if sum.Succeeded != 2 || sum.Skipped != 1 {
		t.Fatalf("unexpected counts: %+v", sum)
	}
	if sum.Outcomes[1].Status != StatusSkipped || sum.Outcomes[1].Ordinal != 1 {
		t.Fatalf("expected frame 1 skipped, got %+v", sum.Outcomes[1])
	}
	b, _ := os.ReadFile(pre)
	if string(b) != "already here" {
		t.Fatalf("skipped frame was overwritten: %q", b)
	}
}

func TestSequencer_CancelBetweenFrames(t *testing.T) {
	cfg := testConfig(t)
	seq, err := NewSequencer(cfg)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	rendered := 0
	r := RenderFunc(func(ctx context.Context, frame Frame, path string) error {
		rendered++
		if rendered == 2 {
			cancel() // observed at the top of the next iteration
		}
		return os.WriteFile(path, []byte("x"), 0o644)
	})

	sum, err := seq.Run(ctx, CountTimeline(100), r)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if sum.State != StateAborted {
		t.Fatalf("expected aborted, got %s", sum.State)
	}
	if sum.Attempted != 2 {
		t.Fatalf("expected 2 frames before cancellation, got %d", sum.Attempted)
	}
}

func TestSequencer_SingleUse(t *testing.T) {
	cfg := testConfig(t)
	seq, err := NewSequencer(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := seq.Run(context.Background(), CountTimeline(1), okRenderer()); err != nil {
		t.Fatal(err)
	}
	if _, err := seq.Run(context.Background(), CountTimeline(1), okRenderer()); !errors.Is(err, ErrAlreadyRun) {
		t.Fatalf("expected ErrAlreadyRun, got %v", err)
	}
}

func TestSequencer_RerunIsIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	paths := func() []string {
		cfg := Config{OutDir: dir, TotalHint: 4, Logger: zerolog.Nop()}
		seq, err := NewSequencer(cfg)
		if err != nil {
			t.Fatal(err)
		}
		sum, err := seq.Run(context.Background(), CountTimeline(4), okRenderer())
		if err != nil {
			t.Fatal(err)
		}
		var ps []string
		for _, o := range sum.Outcomes {
			ps = append(ps, o.Path)
		}
		return ps
	}

	first := paths()
	second := paths()
	if fmt.Sprint(first) != fmt.Sprint(second) {
		t.Fatalf("re-run produced different paths:\n%v\n%v", first, second)
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(ents) != 4 {
		t.Fatalf("expected 4 files after two runs, got %d", len(ents))
	}
}

func TestSequencer_LabelOverflowAborts(t *testing.T) {
	cfg := testConfig(t)
	cfg.MinWidth = 1 // width ceiling of 9 frames
	seq, err := NewSequencer(cfg)
	if err != nil {
		t.Fatal(err)
	}

	sum, err := seq.Run(context.Background(), CountTimeline(20), okRenderer())
	if !errors.Is(err, ErrLabelOverflow) {
		t.Fatalf("expected ErrLabelOverflow, got %v", err)
	}
	if sum.Attempted != 10 {
		t.Fatalf("expected 10 frames (0..9) before overflow, got %d", sum.Attempted)
	}
}

func TestSequencer_StartOrdinal(t *testing.T) {
	cfg := testConfig(t)
	cfg.Start = 100
	cfg.TotalHint = 3
	seq, err := NewSequencer(cfg)
	if err != nil {
		t.Fatal(err)
	}
	sum, err := seq.Run(context.Background(), CountTimeline(3), okRenderer())
	if err != nil {
		t.Fatal(err)
	}
	want := []int{100, 101, 102}
	for i, o := range sum.Outcomes {
		if o.Ordinal != want[i] {
			t.Fatalf("outcome %d ordinal %d, want %d", i, o.Ordinal, want[i])
		}
	}
	if filepath.Base(sum.Outcomes[0].Path) != "img_100.png" {
		t.Fatalf("unexpected first filename %q", sum.Outcomes[0].Path)
	}
}

func TestSequencer_InvalidConfig(t *testing.T) {
	if _, err := NewSequencer(Config{}); err == nil {
		t.Fatal("expected error for missing output dir")
	}
	if _, err := NewSequencer(Config{OutDir: "x", Start: -1}); err == nil {
		t.Fatal("expected error for negative start")
	}
}

func TestSummary_Ok(t *testing.T) {
	s := &Summary{State: StateCompleted, Failed: 2}
	if s.Ok(1) {
		t.Fatal("2 failures should exceed tolerance 1")
	}
	if !s.Ok(2) {
		t.Fatal("2 failures should pass tolerance 2")
	}
	a := &Summary{State: StateAborted}
	if a.Ok(100) {
		t.Fatal("aborted runs are never ok")
	}
}

package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ludwigVonKoopa/anim/internal/anim"
	"github.com/ludwigVonKoopa/anim/internal/cliconfig"
	"github.com/ludwigVonKoopa/anim/internal/encoder"
	"github.com/ludwigVonKoopa/anim/internal/render"
	"github.com/ludwigVonKoopa/anim/internal/scene"
)

// renderOnce performs one full pass: build the timeline and renderer from the
// configuration, drive a fresh sequencer over it, and encode the sequence if
// the run completed within tolerance. The summary is returned even when the
// run aborts so the caller can report partial progress.
func renderOnce(ctx context.Context, cfg cliconfig.Config, log zerolog.Logger) (*anim.Summary, error) {
	timeline, total, renderCmd, err := buildTimeline(cfg)
	if err != nil {
		return nil, err
	}

	renderer, err := render.NewExec(renderCmd, nil)
	if err != nil {
		return nil, err
	}

	seq, err := anim.NewSequencer(anim.Config{
		OutDir:                 cfg.OutDir,
		Prefix:                 cfg.Prefix,
		Ext:                    cfg.Ext,
		Start:                  cfg.Start,
		MinWidth:               cfg.MinWidth,
		TotalHint:              total,
		MaxConsecutiveFailures: cfg.MaxConsecutiveFailures,
		FrameBudget:            cfg.FrameBudget,
		SkipExisting:           cfg.SkipExisting,
		Logger:                 log,
	})
	if err != nil {
		return nil, err
	}

	log.Info().Int("frames", total).Str("outdir", cfg.OutDir).Msg("starting render")
	sum, runErr := seq.Run(ctx, timeline, renderer)
	if runErr != nil {
		return sum, runErr
	}

	if cfg.Encode != "" && sum.Ok(cfg.Tolerance) {
		log.Info().Str("output", cfg.Encode).Msg("encoding sequence")
		err := encoder.Encode(ctx, encoder.Config{
			FFmpeg:      cfg.FFmpeg,
			Pattern:     seq.Pattern(),
			StartNumber: cfg.Start,
			Framerate:   cfg.Framerate,
			Output:      cfg.Encode,
		})
		if err != nil {
			return sum, err
		}
	}
	return sum, nil
}

// buildTimeline resolves the data source: a scene file when given, otherwise
// a bare frame counter. The scene's render command wins over the flag.
func buildTimeline(cfg cliconfig.Config) (anim.Timeline, int, string, error) {
	if cfg.Scene == "" {
		return anim.CountTimeline(cfg.Frames), cfg.Frames, cfg.RenderCommand, nil
	}

	sc, err := scene.Load(cfg.Scene)
	if err != nil {
		return nil, 0, "", err
	}
	timeline, total, err := sc.Timeline()
	if err != nil {
		return nil, 0, "", err
	}
	renderCmd := sc.Render.Command
	if renderCmd == "" {
		renderCmd = cfg.RenderCommand
	}
	if renderCmd == "" {
		return nil, 0, "", fmt.Errorf("no render command: set [render] command in the scene or --render-cmd")
	}
	return timeline, total, renderCmd, nil
}

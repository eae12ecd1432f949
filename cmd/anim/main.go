package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/ludwigVonKoopa/anim/internal/cliconfig"
	"github.com/ludwigVonKoopa/anim/internal/watch"
)

const helpDescription = `
Render a data timeline into a numbered image sequence, one frame at a time.

Highlights:
  - Deterministic, gap-free frame numbering: re-runs overwrite, never duplicate.
  - One bad frame never discards the rest of the run; failures are reported.
  - Scene files describe the camera path; any script can draw the frames.
  - Hands the finished sequence to ffmpeg for video or looping GIF output.
`

var exampleUsage = strings.TrimSpace(`
  anim --scene scene.toml --outdir frames/
  anim --frames 150 --render-cmd 'draw.py' --outdir frames/ --encode out.mp4
  anim --scene scene.toml --outdir frames/ --watch
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "anim",
		Short:   "Render a data timeline into a numbered image sequence",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default $HOME/.anim/config.toml), then
			// apply env and flag overrides
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// Environment variables (ANIM_*) override file config but lose
			// to explicit flags
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}
			log.Info().Interface("config", cfg).Msg("configuration")

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				select {
				case <-sigCh:
					log.Info().Msg("received signal, stopping after current frame...")
					cancel()
				case <-ctx.Done():
				}
			}()

			if cfg.Watch {
				// Render once up front, then again on every scene change.
				// Each pass gets a fresh sequencer; failures in watch mode
				// are reported and waited out, not fatal.
				pass := func() {
					if _, err := renderOnce(ctx, cfg, log); err != nil {
						log.Error().Err(err).Msg("render pass failed")
					}
				}
				pass()
				err := watch.Run(ctx, cfg.Scene, watch.DefaultDebounce, log, pass)
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			}

			sum, err := renderOnce(ctx, cfg, log)
			if err != nil {
				return err
			}
			if !sum.Ok(cfg.Tolerance) {
				return fmt.Errorf("%d of %d frames failed (tolerance %d)", sum.Failed, sum.Attempted, cfg.Tolerance)
			}
			return nil
		},
	}

	// Flags
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.anim/config.toml)")
	root.Flags().StringVar(&cfg.Scene, "scene", cfg.Scene, "TOML scene file describing the camera path and render command")
	root.Flags().StringVar(&cfg.OutDir, "outdir", cfg.OutDir, "destination folder for the image sequence")
	root.Flags().StringVar(&cfg.Prefix, "prefix", cfg.Prefix, "image filename prefix")
	root.Flags().StringVar(&cfg.Ext, "ext", cfg.Ext, "image filename extension")

	root.Flags().IntVar(&cfg.Start, "start", cfg.Start, "first frame ordinal")
	root.Flags().IntVar(&cfg.MinWidth, "width", cfg.MinWidth, "minimum zero-padding width for frame labels")
	root.Flags().IntVar(&cfg.Frames, "frames", cfg.Frames, "frame count when no scene file is given")
	root.Flags().StringVar(&cfg.RenderCommand, "render-cmd", cfg.RenderCommand, "per-frame shell command (reads frame data as JSON on stdin, writes $ANIM_OUTPUT)")

	root.Flags().IntVar(&cfg.MaxConsecutiveFailures, "max-failures", cfg.MaxConsecutiveFailures, "abort after this many consecutive frame failures (0 disables)")
	root.Flags().IntVar(&cfg.Tolerance, "tolerance", cfg.Tolerance, "failed frames allowed before a nonzero exit")
	root.Flags().DurationVar(&cfg.FrameBudget, "frame-budget", cfg.FrameBudget, "soft wall-time budget per frame (0 disables)")
	root.Flags().BoolVar(&cfg.SkipExisting, "skip-existing", cfg.SkipExisting, "skip frames whose output file already exists")

	root.Flags().StringVar(&cfg.Encode, "encode", cfg.Encode, "assemble the sequence into this video/GIF after a clean run")
	root.Flags().IntVar(&cfg.Framerate, "framerate", cfg.Framerate, "encoder framerate in frames per second")
	root.Flags().StringVar(&cfg.FFmpeg, "ffmpeg", cfg.FFmpeg, "ffmpeg binary to use for encoding")
	if err := root.Flags().MarkHidden("ffmpeg"); err != nil {
		log.Info().Err(err).Msg("failed to hide ffmpeg flag")
	}

	root.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "re-render whenever the scene file changes")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("anim")
		os.Exit(1)
	}
}

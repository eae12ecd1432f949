// Package encoder assembles a rendered image sequence into a video or
// looping GIF by driving ffmpeg as an external process. It is invoked only
// after a completed run within the failure tolerance; the pipeline's contract
// toward it is nothing more than the gap-free numbered filename sequence.
package encoder

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

// DefaultFramerate is used when the config does not set one.
const DefaultFramerate = 25

// Config describes one encode invocation.
type Config struct {
	// FFmpeg is the encoder binary (default "ffmpeg").
	FFmpeg string
	// Pattern is the printf-style input pattern of the image sequence,
	// e.g. out/img_%03d.png (see the sequencer's Pattern method).
	Pattern string
	// StartNumber is the first ordinal of the sequence.
	StartNumber int
	// Framerate in frames per second.
	Framerate int
	// Output is the target file; .gif selects palette-based GIF encoding,
	// anything else gets a yuv420p video stream.
	Output string
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Pattern == "" {
		return fmt.Errorf("input pattern is required")
	}
	if c.Output == "" {
		return fmt.Errorf("output file is required")
	}
	if c.Framerate < 0 {
		return fmt.Errorf("framerate must be positive")
	}
	return nil
}

// Args builds the ffmpeg argument list for this config.
func (c Config) Args() []string {
	rate := c.Framerate
	if rate == 0 {
		rate = DefaultFramerate
	}
	args := []string{
		"-y",
		"-framerate", strconv.Itoa(rate),
		"-start_number", strconv.Itoa(c.StartNumber),
		"-i", c.Pattern,
	}
	if filepath.Ext(c.Output) == ".gif" {
		args = append(args,
			"-vf", "split[a][b];[a]palettegen[p];[b][p]paletteuse",
			"-loop", "0",
		)
	} else {
		args = append(args, "-pix_fmt", "yuv420p")
	}
	return append(args, c.Output)
}

// Encode runs ffmpeg over the sequence. The encoder's stderr goes to the
// process stderr so progress stays visible.
func Encode(ctx context.Context, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	bin := cfg.FFmpeg
	if bin == "" {
		bin = "ffmpeg"
	}
	cmd := exec.CommandContext(ctx, bin, cfg.Args()...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("encode %s: %w", cfg.Output, err)
	}
	return nil
}

package cliconfig

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Config holds CLI configuration for anim.
type Config struct {
	// Scene is the path to the TOML scene file. Optional when Frames and
	// RenderCommand are set directly.
	Scene string

	OutDir string
	Prefix string
	Ext    string

	Start    int
	MinWidth int
	// Frames is the timeline length when no scene file is given.
	Frames int

	// RenderCommand is the per-frame shell command; a scene file's
	// [render] section takes precedence when present.
	RenderCommand string

	MaxConsecutiveFailures int
	// Tolerance is how many failed frames a completed run may contain and
	// still exit 0 (and proceed to encoding).
	Tolerance   int
	FrameBudget time.Duration

	SkipExisting bool

	// Encode is the video/GIF output file; empty disables encoding.
	Encode    string
	Framerate int
	FFmpeg    string

	Watch bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Prefix:                 "img_",
		Ext:                    ".png",
		MinWidth:               3,
		MaxConsecutiveFailures: 10,
		Framerate:              25,
		FFmpeg:                 "ffmpeg",
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.OutDir == "" {
		return fmt.Errorf("outdir is required")
	}
	if c.Scene == "" {
		if c.Frames <= 0 {
			return fmt.Errorf("frames is required when no scene file is given")
		}
		if c.RenderCommand == "" {
			return fmt.Errorf("render command is required when no scene file is given")
		}
	}
	if c.Start < 0 {
		return fmt.Errorf("start ordinal must be >= 0")
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("tolerance must be >= 0")
	}
	if c.MaxConsecutiveFailures < 0 {
		return fmt.Errorf("max-failures must be >= 0")
	}
	if c.Framerate <= 0 {
		return fmt.Errorf("framerate must be positive")
	}
	if c.Watch && c.Scene == "" {
		return fmt.Errorf("watch mode needs a scene file to watch")
	}
	if c.Ext != "" && !strings.HasPrefix(c.Ext, ".") {
		c.Ext = "." + c.Ext
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag
// precedence. It only applies values if the corresponding flag hasn't been
// explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}

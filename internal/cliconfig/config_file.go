package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	Scene         string `toml:"scene"`
	OutDir        string `toml:"outdir"`
	Prefix        string `toml:"prefix"`
	Ext           string `toml:"ext"`
	Start         int    `toml:"start"`
	MinWidth      int    `toml:"min_width"`
	Frames        int    `toml:"frames"`
	RenderCommand string `toml:"render_command"`
	MaxFailures   int    `toml:"max_failures"`
	Tolerance     int    `toml:"tolerance"`
	FrameBudget   string `toml:"frame_budget"`
	SkipExisting  *bool  `toml:"skip_existing"`
	Encode        string `toml:"encode"`
	Framerate     int    `toml:"framerate"`
	FFmpeg        string `toml:"ffmpeg"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.anim/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".anim", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("scene", fc.Scene, &cfg.Scene)
	s.setString("outdir", fc.OutDir, &cfg.OutDir)
	s.setString("prefix", fc.Prefix, &cfg.Prefix)
	s.setString("ext", fc.Ext, &cfg.Ext)
	s.setString("render-cmd", fc.RenderCommand, &cfg.RenderCommand)
	s.setString("encode", fc.Encode, &cfg.Encode)
	s.setString("ffmpeg", fc.FFmpeg, &cfg.FFmpeg)

	s.setInt("start", fc.Start, &cfg.Start)
	s.setInt("width", fc.MinWidth, &cfg.MinWidth)
	s.setInt("frames", fc.Frames, &cfg.Frames)
	s.setInt("max-failures", fc.MaxFailures, &cfg.MaxConsecutiveFailures)
	s.setInt("tolerance", fc.Tolerance, &cfg.Tolerance)
	s.setInt("framerate", fc.Framerate, &cfg.Framerate)

	if err := s.setDuration("frame-budget", fc.FrameBudget, &cfg.FrameBudget); err != nil {
		return err
	}

	s.setBool("skip-existing", fc.SkipExisting, &cfg.SkipExisting)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

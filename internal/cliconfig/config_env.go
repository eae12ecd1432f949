package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (ANIM_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("scene", os.Getenv("ANIM_SCENE"), &cfg.Scene)
	s.setString("outdir", os.Getenv("ANIM_OUTDIR"), &cfg.OutDir)
	s.setString("prefix", os.Getenv("ANIM_PREFIX"), &cfg.Prefix)
	s.setString("ext", os.Getenv("ANIM_EXT"), &cfg.Ext)
	s.setString("render-cmd", os.Getenv("ANIM_RENDER_COMMAND"), &cfg.RenderCommand)
	s.setString("encode", os.Getenv("ANIM_ENCODE"), &cfg.Encode)
	s.setString("ffmpeg", os.Getenv("ANIM_FFMPEG"), &cfg.FFmpeg)

	if err := s.setIntFromString("start", os.Getenv("ANIM_START"), &cfg.Start); err != nil {
		return err
	}
	if err := s.setIntFromString("width", os.Getenv("ANIM_MIN_WIDTH"), &cfg.MinWidth); err != nil {
		return err
	}
	if err := s.setIntFromString("frames", os.Getenv("ANIM_FRAMES"), &cfg.Frames); err != nil {
		return err
	}
	if err := s.setIntFromString("max-failures", os.Getenv("ANIM_MAX_FAILURES"), &cfg.MaxConsecutiveFailures); err != nil {
		return err
	}
	if err := s.setIntFromString("tolerance", os.Getenv("ANIM_TOLERANCE"), &cfg.Tolerance); err != nil {
		return err
	}
	if err := s.setIntFromString("framerate", os.Getenv("ANIM_FRAMERATE"), &cfg.Framerate); err != nil {
		return err
	}

	if err := s.setDuration("frame-budget", os.Getenv("ANIM_FRAME_BUDGET"), &cfg.FrameBudget); err != nil {
		return err
	}

	s.setBoolFromString("skip-existing", os.Getenv("ANIM_SKIP_EXISTING"), &cfg.SkipExisting)
	s.setBoolFromString("watch", os.Getenv("ANIM_WATCH"), &cfg.Watch)

	return nil
}

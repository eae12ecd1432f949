package main

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ludwigVonKoopa/anim/internal/cliconfig"
)

func TestRenderOnce_CountTimeline(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("render command shells through sh")
	}
	cfg := cliconfig.DefaultConfig()
	cfg.OutDir = filepath.Join(t.TempDir(), "frames")
	cfg.Frames = 5
	cfg.RenderCommand = `printf frame > "$ANIM_OUTPUT"`
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	sum, err := renderOnce(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if sum.Succeeded != 5 || sum.Failed != 0 || sum.Skipped != 0 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	if !sum.Ok(0) {
		t.Fatal("clean run should pass zero tolerance")
	}
	for _, name := range []string{"img_000.png", "img_004.png"} {
		if _, err := os.Stat(filepath.Join(cfg.OutDir, name)); err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
	}
}

func TestRenderOnce_SceneFile(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("render command shells through sh")
	}
	dir := t.TempDir()
	scenePath := filepath.Join(dir, "scene.toml")
	body := `
[camera]
x = 0.0
y = 0.0
dx = 10.0
dy = 5.0

[render]
command = 'cat > "$ANIM_OUTPUT"'

[[moves]]
frames = 4
x = 20.0
`
	if err := os.WriteFile(scenePath, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := cliconfig.DefaultConfig()
	cfg.Scene = scenePath
	cfg.OutDir = filepath.Join(dir, "frames")
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	sum, err := renderOnce(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	if sum.Succeeded != 4 {
		t.Fatalf("expected 4 frames from the scene path, got %+v", sum)
	}
	// each frame received its camera extent as JSON
	b, err := os.ReadFile(filepath.Join(cfg.OutDir, "img_000.png"))
	if err != nil {
		t.Fatal(err)
	}
	if len(b) == 0 {
		t.Fatal("expected frame data written from stdin")
	}
}

func TestBuildTimeline_NoRenderCommand(t *testing.T) {
	dir := t.TempDir()
	scenePath := filepath.Join(dir, "scene.toml")
	body := "[camera]\ndx = 1.0\ndy = 1.0\n[[moves]]\nframes = 2\n"
	if err := os.WriteFile(scenePath, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := cliconfig.DefaultConfig()
	cfg.Scene = scenePath
	cfg.OutDir = dir
	if _, _, _, err := buildTimeline(cfg); err == nil {
		t.Fatal("expected error when neither scene nor flag provides a render command")
	}
}

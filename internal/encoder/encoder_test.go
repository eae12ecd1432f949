package encoder

import (
	"strings"
	"testing"
)

func TestConfig_ArgsVideo(t *testing.T) {
	cfg := Config{
		Pattern:     "out/img_%03d.png",
		StartNumber: 0,
		Framerate:   30,
		Output:      "anim.mp4",
	}
	got := strings.Join(cfg.Args(), " ")
	want := "-y -framerate 30 -start_number 0 -i out/img_%03d.png -pix_fmt yuv420p anim.mp4"
	if got != want {
		t.Fatalf("args\n got: %s\nwant: %s", got, want)
	}
}

func TestConfig_ArgsGIF(t *testing.T) {
	cfg := Config{
		Pattern: "out/img_%04d.png",
		Output:  "loop.gif",
	}
	args := cfg.Args()
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "palettegen") {
		t.Fatalf("gif output should use palette filter: %s", joined)
	}
	if !strings.Contains(joined, "-loop 0") {
		t.Fatalf("gif output should loop: %s", joined)
	}
	if !strings.Contains(joined, "-framerate 25") {
		t.Fatalf("expected default framerate: %s", joined)
	}
	if args[len(args)-1] != "loop.gif" {
		t.Fatalf("output must come last: %s", joined)
	}
}

func TestConfig_Validate(t *testing.T) {
	if err := (&Config{Output: "x.mp4"}).Validate(); err == nil {
		t.Fatal("expected error for missing pattern")
	}
	if err := (&Config{Pattern: "p"}).Validate(); err == nil {
		t.Fatal("expected error for missing output")
	}
	if err := (&Config{Pattern: "p", Output: "x.mp4", Framerate: -1}).Validate(); err == nil {
		t.Fatal("expected error for negative framerate")
	}
}

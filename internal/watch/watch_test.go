package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestRun_FiresOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.toml")
	if err := os.WriteFile(path, []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fired := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, path, 50*time.Millisecond, zerolog.Nop(), func() {
			select {
			case fired <- struct{}{}:
			default:
			}
		})
	}()

	// give the watcher time to arm, then touch the file
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("b"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("expected change callback")
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not stop on cancel")
	}
}

func TestRun_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.toml")
	if err := os.WriteFile(path, []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fired := make(chan struct{}, 1)
	go Run(ctx, path, 50*time.Millisecond, zerolog.Nop(), func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-fired:
		t.Fatal("unrelated file change should not fire")
	case <-time.After(500 * time.Millisecond):
	}
}

func TestRun_BadDir(t *testing.T) {
	ctx := context.Background()
	err := Run(ctx, filepath.Join(t.TempDir(), "missing", "scene.toml"), 0, zerolog.Nop(), func() {})
	if err == nil {
		t.Fatal("expected error watching a missing directory")
	}
}

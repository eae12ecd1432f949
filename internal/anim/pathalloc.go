package anim

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Defaults for output file naming.
const (
	DefaultPrefix = "img_"
	DefaultExt    = ".png"
)

// Allocator computes the output file path for each frame label. The path is a
// pure function of (dir, prefix, label, ext), so re-running against the same
// folder overwrites rather than duplicates, and distinct labels can never
// collide. The destination directory is created on first allocation.
type Allocator struct {
	dir    string
	prefix string
	ext    string
	ready  bool
}

// NewAllocator returns an Allocator writing prefix<label>ext files under dir.
// Empty prefix and ext fall back to DefaultPrefix and DefaultExt; a missing
// extension dot is added.
func NewAllocator(dir, prefix, ext string) *Allocator {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if ext == "" {
		ext = DefaultExt
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return &Allocator{dir: dir, prefix: prefix, ext: ext}
}

// Allocate returns the output path for label, ensuring the destination
// directory exists. Directory creation is idempotent; an existing directory
// is fine, anything else (permission denied, dir path taken by a plain file)
// is a fatal setup error.
func (a *Allocator) Allocate(label string) (string, error) {
	if !a.ready {
		if err := os.MkdirAll(a.dir, 0o755); err != nil {
			return "", fmt.Errorf("create output dir: %w", err)
		}
		a.ready = true
	}
	return filepath.Join(a.dir, a.prefix+label+a.ext), nil
}

// Pattern returns the printf-style input pattern matching this allocator's
// files at the given label width, e.g. dir/img_%03d.png. Downstream encoders
// take the sequence in this form.
func (a *Allocator) Pattern(width int) string {
	return filepath.Join(a.dir, fmt.Sprintf("%s%%0%dd%s", a.prefix, width, a.ext))
}

// Package render runs the user-supplied rendering script as an external
// process, one invocation per frame. The script receives the frame's data
// state as JSON on stdin and the frame number, label and output path through
// ANIM_FRAME, ANIM_LABEL and ANIM_OUTPUT.
package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/ludwigVonKoopa/anim/internal/anim"
)

// ExecRenderer implements anim.Renderer around a shell command.
type ExecRenderer struct {
	command string
	dir     string
	stderr  io.Writer
}

// NewExec builds an ExecRenderer for the given shell command line. stderr
// receives the script's stderr; nil means the process stderr.
func NewExec(command string, stderr io.Writer) (*ExecRenderer, error) {
	if strings.TrimSpace(command) == "" {
		return nil, fmt.Errorf("render command is empty")
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &ExecRenderer{command: command, stderr: stderr}, nil
}

// SetDir sets the working directory for the script (default: inherited).
func (r *ExecRenderer) SetDir(dir string) { r.dir = dir }

// RenderFrame runs the command for one frame. A non-zero exit, spawn failure
// or unmarshalable data state is a per-frame render error; the pipeline
// records it and moves on.
func (r *ExecRenderer) RenderFrame(ctx context.Context, frame anim.Frame, path string) error {
	payload, err := json.Marshal(frame.Data)
	if err != nil {
		return fmt.Errorf("encode frame data: %w", err)
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", r.command)
	cmd.Dir = r.dir
	cmd.Stdin = bytes.NewReader(payload)
	cmd.Stderr = r.stderr
	cmd.Env = append(os.Environ(),
		"ANIM_FRAME="+strconv.Itoa(frame.Ordinal),
		"ANIM_LABEL="+frame.Label,
		"ANIM_OUTPUT="+path,
	)

	if out, err := cmd.Output(); err != nil {
		tail := strings.TrimSpace(string(out))
		if tail != "" {
			return fmt.Errorf("render command: %w (stdout: %s)", err, tail)
		}
		return fmt.Errorf("render command: %w", err)
	}
	return nil
}

// Package executil runs external programs behind an interface the alert
// sounders can swap for a recorder in tests.
package executil

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultMaxOutput caps captured output when RealExecutor.MaxOutput is zero.
const DefaultMaxOutput = 500

// Executor runs a program and returns its combined output.
type Executor interface {
	Run(ctx context.Context, cmd string, args ...string) ([]byte, error)
}

// cappedBuffer keeps the first max bytes written and accepts the rest
// without storing it.
type cappedBuffer struct {
	bytes.Buffer
	max int
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	if room := b.max - b.Len(); room < len(p) {
		if room > 0 {
			_, _ = b.Buffer.Write(p[:room])
		}
		return len(p), nil
	}
	return b.Buffer.Write(p)
}

// RunError is a failed run. It unwraps to the underlying error, usually an
// *exec.ExitError.
type RunError struct {
	Cmd    string
	Output string
	Err    error
}

func (e *RunError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("exec %s: %v", e.Cmd, e.Err)
	}
	return fmt.Sprintf("exec %s: %s: %v", e.Cmd, e.Output, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }

// RealExecutor runs programs with os/exec.
type RealExecutor struct {
	// MaxOutput bounds the captured stdout+stderr. Zero means DefaultMaxOutput.
	MaxOutput int
}

func (e *RealExecutor) Run(ctx context.Context, cmd string, args ...string) ([]byte, error) {
	limit := e.MaxOutput
	if limit <= 0 {
		limit = DefaultMaxOutput
	}

	out := &cappedBuffer{max: limit}
	c := exec.CommandContext(ctx, cmd, args...)
	c.Stdout = out
	c.Stderr = out

	if err := c.Run(); err != nil {
		return out.Bytes(), &RunError{Cmd: cmd, Output: strings.TrimSpace(out.String()), Err: err}
	}
	return out.Bytes(), nil
}

package alert

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/colonyops/ticktock/pkg/executil"
	"github.com/colonyops/ticktock/pkg/tmpl"
)

// Bell writes the terminal bell character.
type Bell struct {
	mu sync.Mutex
	w  io.Writer
}

// NewBell creates a Bell that writes to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

func (b *Bell) Sound(_ context.Context, _ Target) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := io.WriteString(b.w, "\a")
	return err
}

// commandTimeout bounds a single run of the alert command.
const commandTimeout = 10 * time.Second

// Command runs a shell command template for each signal. The template sees
// .ID and .Name of the timer.
type Command struct {
	exec     executil.Executor
	template *tmpl.Template
	parseErr error
}

// NewCommand compiles template once. A template that does not parse makes
// every Sound fail with the parse error.
func NewCommand(exec executil.Executor, template string) *Command {
	t, err := tmpl.Compile(template)
	return &Command{exec: exec, template: t, parseErr: err}
}

func (c *Command) Sound(ctx context.Context, t Target) error {
	if c.parseErr != nil {
		return fmt.Errorf("alert command: %w", c.parseErr)
	}
	cmd, err := c.template.Execute(t)
	if err != nil {
		return fmt.Errorf("render alert command: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	if _, err := c.exec.Run(ctx, "sh", "-c", cmd); err != nil {
		return fmt.Errorf("alert command: %w", err)
	}
	return nil
}

// Nop never makes a sound.
type Nop struct{}

func (Nop) Sound(context.Context, Target) error { return nil }

package executil

import (
	"context"
	"slices"
	"sync"
)

// RecordedCommand is one call observed by a RecordingExecutor.
type RecordedCommand struct {
	Cmd  string
	Args []string
}

// RecordingExecutor records calls instead of running them. Outputs and
// Errors script the result per program name; Hook, when set, runs after the
// call is recorded and overrides both.
type RecordingExecutor struct {
	Outputs map[string][]byte
	Errors  map[string]error
	Hook    func(ctx context.Context, cmd string, args []string) ([]byte, error)

	mu       sync.Mutex
	commands []RecordedCommand
}

func (e *RecordingExecutor) Run(ctx context.Context, cmd string, args ...string) ([]byte, error) {
	e.mu.Lock()
	e.commands = append(e.commands, RecordedCommand{Cmd: cmd, Args: slices.Clone(args)})
	hook := e.Hook
	out, err := e.Outputs[cmd], e.Errors[cmd]
	e.mu.Unlock()

	if hook != nil {
		return hook(ctx, cmd, args)
	}
	return out, err
}

// Commands returns the calls recorded so far, oldest first.
func (e *RecordingExecutor) Commands() []RecordedCommand {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.commands)
}

// Reset forgets recorded calls.
func (e *RecordingExecutor) Reset() {
	e.mu.Lock()
	e.commands = nil
	e.mu.Unlock()
}

package executil

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealExecutor_Run(t *testing.T) {
	exec := &RealExecutor{}
	ctx := context.Background()

	t.Run("successful command", func(t *testing.T) {
		out, err := exec.Run(ctx, "echo", "hello")
		require.NoError(t, err)
		assert.Equal(t, "hello\n", string(out))
	})

	t.Run("command not found", func(t *testing.T) {
		_, err := exec.Run(ctx, "nonexistent-command-12345")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exec nonexistent-command-12345")
	})

	t.Run("command fails", func(t *testing.T) {
		_, err := exec.Run(ctx, "false")
		require.Error(t, err)
	})
}

func TestRealExecutor_OutputCapped(t *testing.T) {
	long := strings.Repeat("A", DefaultMaxOutput*2)
	cmd := fmt.Sprintf("printf '%%s' '%s' >&2; exit 1", long)

	out, err := (&RealExecutor{}).Run(context.Background(), "sh", "-c", cmd)
	require.Error(t, err)
	assert.Len(t, out, DefaultMaxOutput)
	assert.Contains(t, err.Error(), strings.Repeat("A", DefaultMaxOutput))
	assert.NotContains(t, err.Error(), strings.Repeat("A", DefaultMaxOutput+1))

	out, _ = (&RealExecutor{MaxOutput: 4}).Run(context.Background(), "sh", "-c", "echo abcdefgh")
	assert.Equal(t, "abcd", string(out))
}

func TestRealExecutor_PreservesExitError(t *testing.T) {
	_, err := (&RealExecutor{}).Run(context.Background(), "sh", "-c", "exit 2")
	require.Error(t, err)

	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.ExitCode())

	var runErr *RunError
	require.ErrorAs(t, err, &runErr)
	assert.Equal(t, "sh", runErr.Cmd)
}

func TestRecordingExecutor_Run(t *testing.T) {
	t.Run("records commands", func(t *testing.T) {
		exec := &RecordingExecutor{}
		ctx := context.Background()

		_, _ = exec.Run(ctx, "sh", "-c", "beep")
		_, _ = exec.Run(ctx, "notify-send", "done")

		cmds := exec.Commands()
		require.Len(t, cmds, 2)
		assert.Equal(t, "sh", cmds[0].Cmd)
		assert.Equal(t, []string{"-c", "beep"}, cmds[0].Args)
	})

	t.Run("returns configured output", func(t *testing.T) {
		exec := &RecordingExecutor{
			Outputs: map[string][]byte{"sh": []byte("output")},
		}

		out, err := exec.Run(context.Background(), "sh", "-c", "true")
		require.NoError(t, err)
		assert.Equal(t, []byte("output"), out)
	})

	t.Run("returns configured error", func(t *testing.T) {
		expectedErr := errors.New("command failed")
		exec := &RecordingExecutor{
			Errors: map[string]error{"sh": expectedErr},
		}

		_, err := exec.Run(context.Background(), "sh", "-c", "false")
		assert.Equal(t, expectedErr, err)
	})

	t.Run("hook overrides scripted results", func(t *testing.T) {
		exec := &RecordingExecutor{
			Outputs: map[string][]byte{"sh": []byte("scripted")},
			Hook: func(_ context.Context, _ string, args []string) ([]byte, error) {
				return []byte(strings.Join(args, " ")), nil
			},
		}

		out, err := exec.Run(context.Background(), "sh", "-c", "beep")
		require.NoError(t, err)
		assert.Equal(t, "-c beep", string(out))
		assert.Len(t, exec.Commands(), 1)
	})

	t.Run("reset clears commands", func(t *testing.T) {
		exec := &RecordingExecutor{}

		_, _ = exec.Run(context.Background(), "echo", "hello")
		require.Len(t, exec.Commands(), 1)

		exec.Reset()
		assert.Empty(t, exec.Commands())
	})
}

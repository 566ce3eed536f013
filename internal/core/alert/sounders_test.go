package alert

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/colonyops/ticktock/pkg/executil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBell_WritesBellCharacter(t *testing.T) {
	var buf bytes.Buffer
	b := NewBell(&buf)

	require.NoError(t, b.Sound(context.Background(), Target{ID: "a"}))
	require.NoError(t, b.Sound(context.Background(), Target{ID: "a"}))

	assert.Equal(t, "\a\a", buf.String())
}

func TestCommand_RendersTemplate(t *testing.T) {
	exec := &executil.RecordingExecutor{}
	c := NewCommand(exec, "say {{ .Name | shq }} done")

	require.NoError(t, c.Sound(context.Background(), Target{ID: "t-1", Name: "Tea"}))

	cmds := exec.Commands()
	require.Len(t, cmds, 1)
	assert.Equal(t, "sh", cmds[0].Cmd)
	assert.Equal(t, []string{"-c", "say 'Tea' done"}, cmds[0].Args)
}

func TestCommand_Errors(t *testing.T) {
	t.Run("unparsable template", func(t *testing.T) {
		exec := &executil.RecordingExecutor{}
		c := NewCommand(exec, "say {{ .Name ")
		assert.Error(t, c.Sound(context.Background(), Target{}))
		assert.Empty(t, exec.Commands())
	})

	t.Run("bad template", func(t *testing.T) {
		c := NewCommand(&executil.RecordingExecutor{}, "say {{ .Missing }}")
		assert.Error(t, c.Sound(context.Background(), Target{}))
	})

	t.Run("command failure", func(t *testing.T) {
		exec := &executil.RecordingExecutor{Errors: map[string]error{"sh": errors.New("exit 1")}}
		c := NewCommand(exec, "false")
		assert.Error(t, c.Sound(context.Background(), Target{}))
	})
}

func TestNop(t *testing.T) {
	assert.NoError(t, Nop{}.Sound(context.Background(), Target{}))
}

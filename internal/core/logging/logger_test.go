package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	Component("store").Info().Msg("loaded")

	entry := decode(t, &buf)
	assert.Equal(t, "store", entry["cmp"])
	assert.Equal(t, "loaded", entry["message"])
}

func TestFrom_KeepsHooks(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf).Hook(ContextHook{})

	From(base, "alert").Warn().Ctx(WithTimerID(t.Context(), "t-9")).Msg("beep failed")

	entry := decode(t, &buf)
	assert.Equal(t, "alert", entry["cmp"])
	assert.Equal(t, "t-9", entry["timer_id"])
}

package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"info", "warning", "error"} {
		l, err := ParseLevel(s)
		require.NoError(t, err)
		assert.Equal(t, Level(s), l)
	}
	_, err := ParseLevel("INFO")
	assert.Error(t, err)
}

func TestFilter_Apply(t *testing.T) {
	items := []Notification{
		{ID: 4, Level: LevelInfo, TimerID: "a"},
		{ID: 3, Level: LevelWarning, TimerID: "b"},
		{ID: 2, Level: LevelInfo, TimerID: "b"},
		{ID: 1, Level: LevelInfo},
	}
	ids := func(ns []Notification) []int64 {
		out := []int64{}
		for _, n := range ns {
			out = append(out, n.ID)
		}
		return out
	}

	assert.Equal(t, []int64{4, 3, 2, 1}, ids(Filter{}.Apply(items)))
	assert.Equal(t, []int64{4, 2, 1}, ids(Filter{Level: LevelInfo}.Apply(items)))
	assert.Equal(t, []int64{3, 2}, ids(Filter{TimerID: "b"}.Apply(items)))
	assert.Equal(t, []int64{2}, ids(Filter{TimerID: "b", Level: LevelInfo}.Apply(items)))
	assert.Equal(t, []int64{4, 2}, ids(Filter{Level: LevelInfo, Limit: 2}.Apply(items)))
}

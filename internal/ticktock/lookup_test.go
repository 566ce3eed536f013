package ticktock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Find(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	tea, _ := f.store.Add(ctx, "Tea", 60)
	eggs, _ := f.store.Add(ctx, "Eggs", 60)
	_, _ = f.store.Add(ctx, "pasta", 60)
	_, _ = f.store.Add(ctx, "Pasta", 60)

	tests := []struct {
		name    string
		ref     string
		wantID  string
		wantErr error
	}{
		{"exact id", "t1", tea.ID, nil},
		{"name ignores case", "eggs", eggs.ID, nil},
		{"name with spaces", "  Tea ", tea.ID, nil},
		{"duplicate names", "PASTA", "", ErrAmbiguous},
		{"id prefix", "t", "", ErrAmbiguous},
		{"unknown", "coffee", "", ErrNoMatch},
		{"empty", "", "", ErrNoMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.store.Find(tt.ref)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

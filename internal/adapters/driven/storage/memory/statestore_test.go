package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atticware/ghattic/internal/core/domain"
)

func TestStateStore_Load_Empty(t *testing.T) {
	store := NewStateStore()

	_, err := store.Load(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStateNotFound)
}

func TestStateStore_SaveLoad_RoundTrip(t *testing.T) {
	store := NewStateStore()
	ctx := context.Background()
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	state := domain.NewBackupState()
	state.Cursors[domain.KindIssues] = at

	require.NoError(t, store.Save(ctx, state))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.StateVersion, loaded.Version)

	cursor, ok := loaded.Cursor(domain.KindIssues)
	require.True(t, ok)
	assert.True(t, cursor.Equal(at))

	_, ok = loaded.Cursor(domain.KindPulls)
	assert.False(t, ok)
}

func TestStateStore_Save_Isolates(t *testing.T) {
	store := NewStateStore()
	ctx := context.Background()
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	state := domain.NewBackupState()
	state.Cursors[domain.KindIssues] = at
	require.NoError(t, store.Save(ctx, state))

	// Mutating the saved document after the fact must not leak in.
	state.Cursors[domain.KindIssues] = at.Add(time.Hour)

	cursor, ok := store.Cursor(domain.KindIssues)
	require.True(t, ok)
	assert.True(t, cursor.Equal(at))
}

func TestStateStore_Load_Isolates(t *testing.T) {
	store := NewStateStore()
	ctx := context.Background()
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	store.Seed(map[domain.ItemKind]time.Time{domain.KindIssues: at})

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	loaded.Cursors[domain.KindIssues] = at.Add(time.Hour)

	cursor, _ := store.Cursor(domain.KindIssues)
	assert.True(t, cursor.Equal(at))
}

func TestStateStore_Delete(t *testing.T) {
	store := NewStateStore()
	ctx := context.Background()

	store.Seed(map[domain.ItemKind]time.Time{domain.KindIssues: time.Now()})
	require.NoError(t, store.Delete(ctx))

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrStateNotFound)

	// Deleting again is fine.
	assert.NoError(t, store.Delete(ctx))
}

func TestStateStore_Cursor_Empty(t *testing.T) {
	store := NewStateStore()

	_, ok := store.Cursor(domain.KindIssues)
	assert.False(t, ok)
}

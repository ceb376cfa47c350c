package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewBackupState tests the empty state constructor
func TestNewBackupState(t *testing.T) {
	state := NewBackupState()

	require.NotNil(t, state)
	assert.Equal(t, StateVersion, state.Version)
	assert.NotNil(t, state.Cursors)
	assert.Empty(t, state.Cursors)
}

// TestBackupState_Cursor tests cursor lookup
func TestBackupState_Cursor(t *testing.T) {
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	state := NewBackupState()
	state.Cursors[KindIssues] = at

	got, ok := state.Cursor(KindIssues)
	assert.True(t, ok)
	assert.Equal(t, at, got)

	_, ok = state.Cursor(KindPulls)
	assert.False(t, ok)
}

// TestBackupState_Advance tests monotonic cursor advancement
func TestBackupState_Advance(t *testing.T) {
	t1 := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	t.Run("sets absent cursor", func(t *testing.T) {
		state := NewBackupState()

		assert.True(t, state.Advance(KindIssues, t1))
		got, ok := state.Cursor(KindIssues)
		assert.True(t, ok)
		assert.Equal(t, t1, got)
	})

	t.Run("moves forward", func(t *testing.T) {
		state := NewBackupState()
		state.Cursors[KindIssues] = t1

		assert.True(t, state.Advance(KindIssues, t2))
		got, _ := state.Cursor(KindIssues)
		assert.Equal(t, t2, got)
	})

	t.Run("rejects equal timestamp", func(t *testing.T) {
		state := NewBackupState()
		state.Cursors[KindIssues] = t1

		assert.False(t, state.Advance(KindIssues, t1))
		got, _ := state.Cursor(KindIssues)
		assert.Equal(t, t1, got)
	})

	t.Run("never moves backwards", func(t *testing.T) {
		state := NewBackupState()
		state.Cursors[KindIssues] = t2

		assert.False(t, state.Advance(KindIssues, t1))
		got, _ := state.Cursor(KindIssues)
		assert.Equal(t, t2, got)
	})

	t.Run("ignores zero time", func(t *testing.T) {
		state := NewBackupState()

		assert.False(t, state.Advance(KindIssues, time.Time{}))
		_, ok := state.Cursor(KindIssues)
		assert.False(t, ok)
	})

	t.Run("tolerates nil cursor map", func(t *testing.T) {
		state := &BackupState{Version: StateVersion}

		assert.True(t, state.Advance(KindPulls, t1))
		got, ok := state.Cursor(KindPulls)
		assert.True(t, ok)
		assert.Equal(t, t1, got)
	})

	t.Run("kinds advance independently", func(t *testing.T) {
		state := NewBackupState()

		assert.True(t, state.Advance(KindIssues, t1))
		assert.True(t, state.Advance(KindPulls, t2))

		issues, _ := state.Cursor(KindIssues)
		pulls, _ := state.Cursor(KindPulls)
		assert.Equal(t, t1, issues)
		assert.Equal(t, t2, pulls)
	})
}

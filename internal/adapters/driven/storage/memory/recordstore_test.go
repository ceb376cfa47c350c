package memory

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atticware/ghattic/internal/core/domain"
)

func TestNewRecordStore(t *testing.T) {
	store := NewRecordStore()
	require.NotNil(t, store)
	assert.Equal(t, 0, store.Len())
}

func TestRecordStore_Upsert_ThenExists(t *testing.T) {
	store := NewRecordStore()
	ctx := context.Background()

	item := domain.Item{
		Kind:   domain.KindIssues,
		Number: 42,
		Body:   json.RawMessage(`{"number":42,"title":"hello"}`),
	}

	require.NoError(t, store.Upsert(ctx, item))

	exists, err := store.Exists(ctx, domain.KindIssues, 42)
	require.NoError(t, err)
	assert.True(t, exists)

	body, ok := store.Body(domain.KindIssues, 42)
	require.True(t, ok)
	assert.JSONEq(t, `{"number":42,"title":"hello"}`, string(body))
}

func TestRecordStore_Upsert_Replaces(t *testing.T) {
	store := NewRecordStore()
	ctx := context.Background()

	first := domain.Item{Kind: domain.KindPulls, Number: 7, Body: json.RawMessage(`{"state":"open"}`)}
	second := domain.Item{Kind: domain.KindPulls, Number: 7, Body: json.RawMessage(`{"state":"closed"}`)}

	require.NoError(t, store.Upsert(ctx, first))
	require.NoError(t, store.Upsert(ctx, second))

	assert.Equal(t, 1, store.Len())
	body, ok := store.Body(domain.KindPulls, 7)
	require.True(t, ok)
	assert.JSONEq(t, `{"state":"closed"}`, string(body))
}

func TestRecordStore_KindsDoNotCollide(t *testing.T) {
	store := NewRecordStore()
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, domain.Item{
		Kind: domain.KindIssues, Number: 1, Body: json.RawMessage(`{"kind":"issue"}`),
	}))
	require.NoError(t, store.Upsert(ctx, domain.Item{
		Kind: domain.KindPulls, Number: 1, Body: json.RawMessage(`{"kind":"pull"}`),
	}))

	assert.Equal(t, 2, store.Len())

	issueBody, ok := store.Body(domain.KindIssues, 1)
	require.True(t, ok)
	assert.JSONEq(t, `{"kind":"issue"}`, string(issueBody))
}

func TestRecordStore_Exists_Absent(t *testing.T) {
	store := NewRecordStore()

	exists, err := store.Exists(context.Background(), domain.KindIssues, 999)
	require.NoError(t, err)
	assert.False(t, exists)

	_, ok := store.Body(domain.KindIssues, 999)
	assert.False(t, ok)
}

func TestRecordStore_Body_IsACopy(t *testing.T) {
	store := NewRecordStore()
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, domain.Item{
		Kind: domain.KindIssues, Number: 3, Body: json.RawMessage(`{"n":3}`),
	}))

	body, ok := store.Body(domain.KindIssues, 3)
	require.True(t, ok)
	body[0] = 'X'

	again, ok := store.Body(domain.KindIssues, 3)
	require.True(t, ok)
	assert.Equal(t, byte('{'), again[0])
}

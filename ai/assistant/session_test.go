package assistant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessions_GetOrCreateActive(t *testing.T) {
	m := newMemSessionStore()
	sessions := NewSessions(m)
	ctx := context.Background()

	first, err := sessions.GetOrCreateActive(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Chat 1", first.Title)
	assert.True(t, first.Active)
	assert.NotEmpty(t, first.UID)

	// A second call returns the same session, not a new one.
	again, err := sessions.GetOrCreateActive(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Len(t, m.sessions, 1)

	// Another user gets an independent numbering.
	other, err := sessions.GetOrCreateActive(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Chat 1", other.Title)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestSessions_DeactivateAll(t *testing.T) {
	m := newMemSessionStore()
	sessions := NewSessions(m)
	ctx := context.Background()

	first, err := sessions.GetOrCreateActive(ctx, 1)
	require.NoError(t, err)

	count, err := sessions.DeactivateAll(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Next message starts a fresh numbered chat; the old one survives.
	second, err := sessions.GetOrCreateActive(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Chat 2", second.Title)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, m.sessions, 2)

	// Idempotent when nothing is active.
	_, err = sessions.DeactivateAll(ctx, 1)
	require.NoError(t, err)
	count, err = sessions.DeactivateAll(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

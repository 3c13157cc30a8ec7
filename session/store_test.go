package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitch_agent_service/workflow"
)

func newSession(id string, createdAt time.Time) *workflow.Session {
	return &workflow.Session{
		ID:        id,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
		State: workflow.PitchState{
			Description: "an app",
			Phase:       workflow.PhaseStart,
		},
	}
}

func TestPutThenGet(t *testing.T) {
	store := NewMemoryStore()
	sess := newSession("s1", time.Now())
	require.NoError(t, store.Put(sess))

	got, err := store.Get("s1")
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, sess.State, got.State)
}

func TestGetUnknownID(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Get("missing")
	assert.ErrorIs(t, err, workflow.ErrNotFound)
}

func TestStoredStateIsIsolated(t *testing.T) {
	store := NewMemoryStore()
	sess := newSession("s1", time.Now())
	require.NoError(t, store.Put(sess))

	// Mutating the caller's copy must not leak into the store.
	sess.State.Pitch = "mutated after put"

	got, err := store.Get("s1")
	require.NoError(t, err)
	assert.Empty(t, got.State.Pitch)

	// Mutating a returned copy must not leak either.
	got.State.Pitch = "mutated after get"
	again, err := store.Get("s1")
	require.NoError(t, err)
	assert.Empty(t, again.State.Pitch)
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Put(newSession("s1", time.Now())))

	store.Delete("s1")
	store.Delete("s1")
	store.Delete("never-existed")

	_, err := store.Get("s1")
	assert.ErrorIs(t, err, workflow.ErrNotFound)
}

func TestListOrderedByCreation(t *testing.T) {
	store := NewMemoryStore()
	base := time.Now()
	require.NoError(t, store.Put(newSession("newer", base.Add(time.Minute))))
	require.NoError(t, store.Put(newSession("older", base)))

	sessions := store.List()
	require.Len(t, sessions, 2)
	assert.Equal(t, "older", sessions[0].ID)
	assert.Equal(t, "newer", sessions[1].ID)
}

func TestAcquireConflicts(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.Acquire("s1"))
	assert.ErrorIs(t, store.Acquire("s1"), workflow.ErrSessionBusy)

	// A different id is never serialized behind s1.
	require.NoError(t, store.Acquire("s2"))
	store.Release("s2")

	store.Release("s1")
	assert.NoError(t, store.Acquire("s1"))
	store.Release("s1")
}

func TestReleaseSurvivesDelete(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Put(newSession("s1", time.Now())))

	require.NoError(t, store.Acquire("s1"))
	store.Delete("s1")
	store.Release("s1")

	// After release the lock is usable again.
	assert.NoError(t, store.Acquire("s1"))
	store.Release("s1")
}

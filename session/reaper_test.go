package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitch_agent_service/workflow"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func TestSweepRemovesIdleSessions(t *testing.T) {
	store := NewMemoryStore()
	clock := &fakeClock{now: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	reaper := NewReaper(store, 30*time.Minute, time.Minute, clock, nil)

	stale := newSession("stale", clock.now.Add(-2*time.Hour))
	fresh := newSession("fresh", clock.now.Add(-5*time.Minute))
	require.NoError(t, store.Put(stale))
	require.NoError(t, store.Put(fresh))

	assert.Equal(t, 1, reaper.Sweep())

	_, err := store.Get("stale")
	assert.ErrorIs(t, err, workflow.ErrNotFound)
	_, err = store.Get("fresh")
	assert.NoError(t, err)
}

func TestSweepSkipsSessionsMidTransition(t *testing.T) {
	store := NewMemoryStore()
	clock := &fakeClock{now: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	reaper := NewReaper(store, 30*time.Minute, time.Minute, clock, nil)

	require.NoError(t, store.Put(newSession("busy", clock.now.Add(-2*time.Hour))))
	require.NoError(t, store.Acquire("busy"))

	assert.Equal(t, 0, reaper.Sweep())
	_, err := store.Get("busy")
	assert.NoError(t, err)

	// Once the transition finishes the next sweep reclaims it.
	store.Release("busy")
	assert.Equal(t, 1, reaper.Sweep())
	_, err = store.Get("busy")
	assert.ErrorIs(t, err, workflow.ErrNotFound)
}

func TestSweepUsesUpdatedAtNotCreatedAt(t *testing.T) {
	store := NewMemoryStore()
	clock := &fakeClock{now: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	reaper := NewReaper(store, 30*time.Minute, time.Minute, clock, nil)

	// Created long ago but touched recently: still alive.
	sess := newSession("active", clock.now.Add(-3*time.Hour))
	sess.UpdatedAt = clock.now.Add(-time.Minute)
	require.NoError(t, store.Put(sess))

	assert.Equal(t, 0, reaper.Sweep())

	// Advance time past the TTL without further activity.
	clock.now = clock.now.Add(time.Hour)
	assert.Equal(t, 1, reaper.Sweep())
}

// Package session provides the in-memory session store and its idle
// reaper. Distinct session ids never serialize behind one another;
// per-id transition locks fail fast instead of queueing.
package session

import (
	"sort"
	"sync"

	"pitch_agent_service/workflow"
)

// MemoryStore keeps sessions in process memory. It satisfies
// workflow.Store with read-your-writes semantics: Put stores a deep
// copy and Get hands one back, so callers never alias stored state.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*workflow.Session
	locks    map[string]*sync.Mutex
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*workflow.Session),
		locks:    make(map[string]*sync.Mutex),
	}
}

// Put stores a snapshot of the session.
func (s *MemoryStore) Put(sess *workflow.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess.Clone()
	return nil
}

// Get returns a snapshot of the session, or workflow.ErrNotFound.
func (s *MemoryStore) Get(id string) (*workflow.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, workflow.ErrNotFound
	}
	return sess.Clone(), nil
}

// Delete removes a session. Deleting an unknown id is a no-op. The
// transition lock entry is kept so a Release racing the delete still
// unlocks the mutex it acquired.
func (s *MemoryStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// List returns snapshots of all sessions, oldest first.
func (s *MemoryStore) List() []*workflow.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*workflow.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Acquire takes the per-id transition lock without blocking. A session
// already mid-transition yields workflow.ErrSessionBusy so concurrent
// approvals cannot race on the counters.
func (s *MemoryStore) Acquire(id string) error {
	s.mu.Lock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	s.mu.Unlock()

	if !lock.TryLock() {
		return workflow.ErrSessionBusy
	}
	return nil
}

// Release frees the per-id transition lock.
func (s *MemoryStore) Release(id string) {
	s.mu.RLock()
	lock, ok := s.locks[id]
	s.mu.RUnlock()
	if ok {
		lock.Unlock()
	}
}

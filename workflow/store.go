package workflow

import (
	"errors"
	"time"
)

// ErrNotFound is returned when no session exists for an id.
var ErrNotFound = errors.New("workflow: session not found")

// ErrSessionBusy is returned when a session is already mid-transition;
// callers should retry after the in-flight operation completes.
var ErrSessionBusy = errors.New("workflow: session busy")

// Session wraps one independent run of the workflow.
type Session struct {
	ID        string     `json:"session_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	State     PitchState `json:"state"`
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	out := *s
	out.State = s.State.Clone()
	return &out
}

// Store persists sessions keyed by id. Get after a successful Put with
// the same id returns the most recent value. Acquire grants exclusive
// transition rights for one id without serializing distinct ids; a
// second concurrent Acquire fails fast with ErrSessionBusy.
type Store interface {
	Put(sess *Session) error
	Get(id string) (*Session, error)
	Delete(id string)
	List() []*Session
	Acquire(id string) error
	Release(id string)
}

package booking

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("wizard session not found")

const defaultSessionTTL = 2 * time.Hour

// SessionStore owns active wizard sessions, keyed by an opaque id handed to
// the client. Sessions expire after a TTL so abandoned checkouts do not
// accumulate.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*session
	ttl      time.Duration
	now      func() time.Time
}

type session struct {
	mu        sync.Mutex
	wizard    *Wizard
	expiresAt time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStore{
		sessions: make(map[uuid.UUID]*session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Start registers a new wizard and returns its session id.
func (s *SessionStore) Start(wizard *Wizard) uuid.UUID {
	id := uuid.New()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()
	s.sessions[id] = &session{
		wizard:    wizard,
		expiresAt: s.now().Add(s.ttl),
	}
	return id
}

// Do runs fn with exclusive access to the session's wizard and extends the
// session deadline. All reads and transitions of a stored wizard go through
// here; concurrent requests for the same session serialize, so at most one
// caller can observe the payment state and confirm it.
func (s *SessionStore) Do(id uuid.UUID, fn func(*Wizard) error) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok || s.now().After(sess.expiresAt) {
		delete(s.sessions, id)
		s.mu.Unlock()
		return ErrSessionNotFound
	}
	sess.expiresAt = s.now().Add(s.ttl)
	s.mu.Unlock()

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return fn(sess.wizard)
}

// Drop removes a session, typically after confirmation has been rendered.
func (s *SessionStore) Drop(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func (s *SessionStore) pruneLocked() {
	now := s.now()
	for id, sess := range s.sessions {
		if now.After(sess.expiresAt) {
			delete(s.sessions, id)
		}
	}
}

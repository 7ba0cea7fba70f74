// Package sessions holds the server-side login state. A session is keyed by
// an opaque token carried in a client cookie; nothing about the session is
// derivable from the token itself.
package sessions

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session binds a token to the username that logged in with it.
type Session struct {
	Token     string
	Username  string
	ExpiresAt time.Time
}

// Store is an in-memory token→session map. State does not survive a restart;
// clients simply log in again.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]Session
	ttl      time.Duration
	now      func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create issues a new session for username and returns it. Tokens are
// random UUIDs, never reused.
func (s *Store) Create(username string) Session {
	session := Session{
		Token:     uuid.NewString(),
		Username:  username,
		ExpiresAt: s.now().Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()

	return session
}

// Get resolves a token. Expired sessions behave exactly like absent ones and
// are dropped on sight.
func (s *Store) Get(token string) (Session, bool) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return Session{}, false
	}

	if s.now().After(session.ExpiresAt) {
		s.Delete(token)
		return Session{}, false
	}

	return session, true
}

// Delete removes a session. Deleting an absent token is a no-op.
func (s *Store) Delete(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Package session tracks last-activity times per authenticated session and
// forces re-authentication after an idle timeout. The check is independent
// of token expiry; a guarded request must pass both.
package session

import (
	"sync"
	"time"

	"github.com/itemboard/itemboard-be/internal/apperrors"
)

// Store maps session identities to their last activity time. All methods
// are safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	entries map[string]time.Time
	timeout time.Duration
	now     func() time.Time
}

// NewStore creates a Store that expires sessions idle longer than timeout.
func NewStore(timeout time.Duration) *Store {
	return &Store{
		entries: make(map[string]time.Time),
		timeout: timeout,
		now:     time.Now,
	}
}

// WithClock overrides the store clock. Tests use this to move time.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Touch records activity for the session. An unknown session starts a
// fresh active record. A session idle longer than the timeout is dropped
// and apperrors.ErrSessionExpired returned; the caller must re-authenticate
// even if its token is still valid.
func (s *Store) Touch(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	last, ok := s.entries[sessionID]
	if ok && now.Sub(last) > s.timeout {
		delete(s.entries, sessionID)
		return apperrors.ErrSessionExpired
	}

	s.entries[sessionID] = now
	return nil
}

// Drop removes a session record, used on logout.
func (s *Store) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
}

// Prune removes every record already past the idle timeout and returns how
// many were dropped. Expired entries are rejected by Touch regardless;
// pruning only keeps the map from growing with abandoned sessions.
func (s *Store) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	dropped := 0
	for id, last := range s.entries {
		if now.Sub(last) > s.timeout {
			delete(s.entries, id)
			dropped++
		}
	}
	return dropped
}

// Len reports the number of live records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

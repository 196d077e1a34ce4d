package session

import (
	"errors"
	"testing"
	"time"

	"github.com/itemboard/itemboard-be/internal/apperrors"
)

func TestStore_TouchWithinTimeout(t *testing.T) {
	t.Parallel()

	base := time.Now()
	now := base
	s := NewStore(30 * time.Minute).WithClock(func() time.Time { return now })

	if err := s.Touch("sess-1"); err != nil {
		t.Fatalf("first touch: %v", err)
	}

	now = base.Add(29 * time.Minute)
	if err := s.Touch("sess-1"); err != nil {
		t.Fatalf("touch at 29m: %v", err)
	}

	// Activity at 29m reset the window; 29m more is still inside it.
	now = base.Add(58 * time.Minute)
	if err := s.Touch("sess-1"); err != nil {
		t.Fatalf("touch at 58m after activity at 29m: %v", err)
	}
}

func TestStore_TouchPastTimeout(t *testing.T) {
	t.Parallel()

	base := time.Now()
	now := base
	s := NewStore(30 * time.Minute).WithClock(func() time.Time { return now })

	if err := s.Touch("sess-1"); err != nil {
		t.Fatalf("first touch: %v", err)
	}

	now = base.Add(31 * time.Minute)
	err := s.Touch("sess-1")
	if !errors.Is(err, apperrors.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}

	// The record is gone; the next touch starts a fresh active session.
	if err := s.Touch("sess-1"); err != nil {
		t.Fatalf("touch after expiry: %v", err)
	}
}

func TestStore_FirstTouchIsActive(t *testing.T) {
	t.Parallel()

	s := NewStore(30 * time.Minute)
	if err := s.Touch("brand-new"); err != nil {
		t.Fatalf("first touch of unknown session: %v", err)
	}
}

func TestStore_Drop(t *testing.T) {
	t.Parallel()

	s := NewStore(30 * time.Minute)
	if err := s.Touch("sess-1"); err != nil {
		t.Fatalf("touch: %v", err)
	}
	s.Drop("sess-1")
	if s.Len() != 0 {
		t.Fatalf("Len = %d after Drop, want 0", s.Len())
	}
}

func TestStore_Prune(t *testing.T) {
	t.Parallel()

	base := time.Now()
	now := base
	s := NewStore(30 * time.Minute).WithClock(func() time.Time { return now })

	if err := s.Touch("stale"); err != nil {
		t.Fatalf("touch: %v", err)
	}
	now = base.Add(20 * time.Minute)
	if err := s.Touch("fresh"); err != nil {
		t.Fatalf("touch: %v", err)
	}

	now = base.Add(31 * time.Minute)
	if dropped := s.Prune(); dropped != 1 {
		t.Fatalf("Prune dropped %d, want 1", dropped)
	}
	if s.Len() != 1 {
		t.Fatalf("Len = %d after prune, want 1", s.Len())
	}
}

package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHasher_RoundTrip(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("Abcdef1!")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if hash == "Abcdef1!" {
		t.Fatal("hash equals the raw password")
	}

	if !h.Verify("Abcdef1!", hash) {
		t.Fatal("Verify rejected the original password")
	}
	if h.Verify("Abcdef1?", hash) {
		t.Fatal("Verify accepted a different password")
	}
}

func TestHasher_SaltPerCall(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)

	first, err := h.Hash("Abcdef1!")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	second, err := h.Hash("Abcdef1!")
	if err != nil {
		t.Fatalf("Hash error: %v", err)
	}
	if first == second {
		t.Fatal("two hashes of the same password are identical")
	}
}

func TestHasher_BadStoredHash(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)

	// A corrupted stored hash is a mismatch, not a panic or error.
	if h.Verify("Abcdef1!", "not-a-bcrypt-hash") {
		t.Fatal("Verify accepted a garbage hash")
	}
}

func TestNewHasher_CostFallback(t *testing.T) {
	t.Parallel()

	h := NewHasher(99)
	if h.cost != 10 {
		t.Fatalf("cost = %d, want fallback 10", h.cost)
	}
}

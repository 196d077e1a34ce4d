package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/itemboard/itemboard-be/internal/apperrors"
)

// Hasher hashes and verifies passwords with bcrypt. The salt is generated
// per call and embedded in the output, so hashing the same password twice
// yields different strings.
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher with the given bcrypt cost. Costs outside the
// bcrypt range fall back to cost 10.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = 10
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt hash of the raw password. Errors mean the
// primitive itself failed, never that the password was unacceptable.
func (h *Hasher) Hash(raw string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), h.cost)
	if err != nil {
		return "", apperrors.Hashing(err)
	}
	return string(hashed), nil
}

// Verify reports whether raw matches the stored hash. A mismatch or an
// undecodable hash is a plain false, not an error.
func (h *Hasher) Verify(raw, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}

package auth

import "regexp"

var (
	strengthLower   = regexp.MustCompile(`[a-z]`)
	strengthUpper   = regexp.MustCompile(`[A-Z]`)
	strengthDigit   = regexp.MustCompile(`[0-9]`)
	strengthSpecial = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

// StrengthScore rates a password 0-5: one point per character class
// present (lowercase, uppercase, digit, special) and one for length >= 12.
// It is informational only and applies no minimum-length gate.
func StrengthScore(password string) int {
	strength := 0

	if strengthLower.MatchString(password) {
		strength++
	}
	if strengthUpper.MatchString(password) {
		strength++
	}
	if strengthDigit.MatchString(password) {
		strength++
	}
	if strengthSpecial.MatchString(password) {
		strength++
	}
	if len(password) >= 12 {
		strength++
	}

	return strength
}

// Package guard holds the PIN/CVV2 preconditions checked before any
// card mutation. Checks compare SHA-256 digests in constant time and
// never mutate state.
package guard

import (
	"crypto/sha256"
	"crypto/subtle"

	domain "cardvault/internal/errors"
	"cardvault/internal/models"
)

// CheckPIN verifies a caller-supplied PIN against the card's stored PIN.
func CheckPIN(card *models.Card, pin string) error {
	if !digestEqual(card.PIN, pin) {
		return domain.ErrPINMismatch
	}
	return nil
}

// CheckCVV2 verifies a caller-supplied CVV2 against the card's stored
// CVV2.
func CheckCVV2(card *models.Card, cvv2 string) error {
	if !digestEqual(card.CVV2, cvv2) {
		return domain.ErrCVV2Mismatch
	}
	return nil
}

func digestEqual(stored, supplied string) bool {
	a := sha256.Sum256([]byte(stored))
	b := sha256.Sum256([]byte(supplied))
	return subtle.ConstantTimeCompare(a[:], b[:]) == 1
}

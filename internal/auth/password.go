// Package auth — password hashing.
//
// bcrypt is deliberately slow and salts every hash itself, so two users with
// the same password store different hashes and the salt lives inside the
// hash string. No separate salt column, nothing to manage.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// defaultCost is the bcrypt work factor. Cost 12 lands around 250ms on a
// modern server — noticeable to an attacker, invisible to a user logging in.
const defaultCost = 12

// PasswordService provides bcrypt hashing and verification.
//
// The cost is injectable so tests can run at bcrypt.MinCost instead of
// paying ~250ms per hash.
type PasswordService struct {
	cost int
}

// NewPasswordService creates a PasswordService with the default cost.
func NewPasswordService() *PasswordService {
	return &PasswordService{cost: defaultCost}
}

// NewPasswordServiceWithCost creates a PasswordService with a custom cost.
// Values below bcrypt.MinCost fall back to the default; this lets an unset
// BCRYPT_COST env var (parsed as 0) mean "use the default".
func NewPasswordServiceWithCost(cost int) *PasswordService {
	if cost < bcrypt.MinCost {
		return NewPasswordService()
	}
	return &PasswordService{cost: cost}
}

// Hash hashes a plaintext password. The output string embeds the salt and
// cost; store it as-is.
//
// Returns an error for passwords over 72 bytes — bcrypt would silently
// truncate them otherwise.
func (p *PasswordService) Hash(plaintext string) (string, error) {
	if len(plaintext) > 72 {
		return "", fmt.Errorf("auth: password must be 72 bytes or fewer")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hashing password: %w", err)
	}

	return string(hashed), nil
}

// Verify checks a plaintext password against a stored hash. Returns nil on
// a match. The comparison inside bcrypt is constant-time.
func (p *PasswordService) Verify(hash, plaintext string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return fmt.Errorf("auth: invalid password")
		}
		return fmt.Errorf("auth: comparing password hash: %w", err)
	}
	return nil
}

package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the input limit of bcrypt.
const maxPasswordBytes = 72

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	// Hash returns a salted hash of password. Two calls with the same input
	// return different hashes.
	Hash(password string) (string, error)

	// Compare compares a hashed password with its possible plaintext equivalent.
	// Returns nil on success, or an error on failure (e.g., mismatch).
	Compare(hashedPassword, password string) error
}

// BcryptHasher implements PasswordHasher using bcrypt.
type BcryptHasher struct {
	cost int
}

var _ PasswordHasher = (*BcryptHasher)(nil)

// NewBcryptHasher creates a BcryptHasher. A cost of zero selects
// bcrypt.DefaultCost; other values are clamped to bcrypt's allowed range.
func NewBcryptHasher(cost int) *BcryptHasher {
	switch {
	case cost == 0:
		cost = bcrypt.DefaultCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	return &BcryptHasher{cost: cost}
}

// Cost reports the work factor used for new hashes.
func (h *BcryptHasher) Cost() int {
	return h.cost
}

// Hash implements PasswordHasher.
func (h *BcryptHasher) Hash(password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Compare implements PasswordHasher.
func (h *BcryptHasher) Compare(hashedPassword, password string) error {
	if len(password) > maxPasswordBytes {
		return ErrPasswordTooLong
	}
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

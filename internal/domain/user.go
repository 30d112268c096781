package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyUsername       = errors.New("username cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// User represents a registered account. Users are created on signup and never
// mutated afterwards.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	CreatedAt      time.Time `json:"created_at"`
}

// NewUser creates a new User with the given username and an already hashed password.
// It generates a new UUID for the user ID and sets the creation timestamp.
// Returns an error if validation fails.
func NewUser(username, hashedPassword string) (*User, error) {
	user := &User{
		ID:             uuid.New(),
		Username:       username,
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Usernames are compared byte for byte, so no normalization happens here.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Username == "" {
		return ErrEmptyUsername
	}

	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}

	return nil
}

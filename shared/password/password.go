package password

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the default cost for bcrypt hashing
	DefaultCost = bcrypt.DefaultCost
	// MinLength is the shortest password an admin may set.
	MinLength = 8
	// maxBytes is bcrypt's input limit.
	maxBytes = 72
)

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrWeakPassword    = fmt.Errorf("password must be at least %d characters", MinLength)
	ErrPasswordTooLong = fmt.Errorf("password must be at most %d bytes", maxBytes)
)

// CheckStrength enforces the admin password policy.
func CheckStrength(password string) error {
	if utf8.RuneCountInString(password) < MinLength {
		return ErrWeakPassword
	}

	if len(password) > maxBytes {
		return ErrPasswordTooLong
	}

	return nil
}

// Hash generates a bcrypt hash of the password
func Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(bytes), nil
}

// Verify checks if the provided password matches the hash
func Verify(password, hash string) error {
	if password == "" || hash == "" {
		return ErrInvalidPassword
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidPassword
		}

		return fmt.Errorf("failed to verify password: %w", err)
	}

	return nil
}

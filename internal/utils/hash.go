package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Password length bounds enforced on registration and every password change.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 16
)

// HashPassword returns a bcrypt hash of the provided password.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a bcrypt hashed password with its possible plaintext equivalent.
func CheckPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// ValidatePasswordLength enforces the password policy shared by registration,
// reset and update flows.
func ValidatePasswordLength(passwords ...string) error {
	for _, p := range passwords {
		if len(p) < MinPasswordLength || len(p) > MaxPasswordLength {
			return fmt.Errorf("password must be between %d and %d characters", MinPasswordLength, MaxPasswordLength)
		}
	}
	return nil
}

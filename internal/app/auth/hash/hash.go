// Package hash wraps password hashing behind two calls so the cost
// factor and algorithm live in exactly one place.
package hash

import (
	customErrors "github.com/webxtars/vybh-backend/internal/domain/auth/errors"
	"golang.org/x/crypto/bcrypt"
)

// Cost matches the work factor of the hashes already in the users
// table; changing it only affects newly written hashes.
const Cost = 10

func Password(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), Cost)
	if err != nil {
		return "", customErrors.WrapInternal(err, "hash password")
	}
	return string(b), nil
}

// Verify reports whether plaintext matches hashed. A malformed hash is
// a mismatch, never an error.
func Verify(plaintext, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext)) == nil
}

// Package auth owns the credential and session-token primitives:
// bcrypt password hashing and HMAC-signed, time-bounded access tokens.
// It holds no mutable state beyond the signing secret fixed at startup,
// so every operation is safe to run concurrently across requests.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword produces a salted, one-way bcrypt hash of a plaintext
// password. The hash is never reversible and never leaves the server.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword verifies a plaintext password against a stored hash
// using bcrypt's own comparison routine.
func CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

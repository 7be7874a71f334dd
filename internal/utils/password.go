// Package utils holds small helpers shared across the services.
package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a registration password with bcrypt at the
// configured cost. Only the hash is ever stored on the user account.
func HashPassword(plain string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether a login attempt matches the stored
// bcrypt hash. Any comparison failure, including a malformed hash,
// reads as a mismatch.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

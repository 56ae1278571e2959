// Package auth covers credential hashing and the session principal:
// bcrypt password hashes at rest, HS256 JWTs inside the session cookie.
package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a salted one-way hash from the plaintext password.
// The plaintext is never stored.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash.
// bcrypt recomputes the hash and compares in constant time.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Package password wraps bcrypt hashing and verification of account
// passwords. Each digest embeds its own random salt, so equal passwords
// produce different digests.
package password

import "golang.org/x/crypto/bcrypt"

// HashCost is the bcrypt work factor used for new digests.
const HashCost = 10

// Hash returns the bcrypt digest of the given plaintext password.
func Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), HashCost)
	if err != nil {
		return "", err
	}

	return string(digest), nil
}

// Verify reports whether the plaintext password matches the digest.
// A malformed digest yields false rather than an error.
func Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

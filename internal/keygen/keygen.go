// Package keygen produces the short random tokens used as URL keys and user
// identifiers. The tokens carry no uniqueness guarantee; callers accept the
// collision risk at this scale.
package keygen

import (
	"crypto/rand"
	"math/big"
)

const (
	// ShortKeyLength is the length of a shortened URL key.
	ShortKeyLength = 6

	// UserIDLength is the length of a generated user identifier.
	UserIDLength = 4
)

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewShortKey returns a random token suitable as a shortened URL key.
func NewShortKey() string {
	return randomString(ShortKeyLength)
}

// NewUserID returns a random token suitable as a user identifier.
func NewUserID() string {
	return randomString(UserIDLength)
}

func randomString(length int) string {
	result := make([]byte, length)
	for i := range result {
		randomIndex, _ := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		result[i] = alphabet[randomIndex.Int64()]
	}

	return string(result)
}

package keygen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewShortKey(t *testing.T) {
	for i := 0; i < 100; i++ {
		key := NewShortKey()
		assert.Len(t, key, ShortKeyLength)
		for _, symbol := range key {
			assert.True(
				t,
				strings.ContainsRune(alphabet, symbol),
				"the key should contain only alphabet symbols",
			)
		}
	}
}

func TestNewUserID(t *testing.T) {
	for i := 0; i < 100; i++ {
		id := NewUserID()
		assert.Len(t, id, UserIDLength)
		for _, symbol := range id {
			assert.True(
				t,
				strings.ContainsRune(alphabet, symbol),
				"the id should contain only alphabet symbols",
			)
		}
	}
}

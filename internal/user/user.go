// Package user defines the account model used throughout the application,
// particularly for authentication and user-specific URL ownership.
package user

// User represents a registered account.
//
// PasswordHash holds the bcrypt digest of the account password; the plaintext
// is never stored. The hash must not leave the server process — in particular
// it is never serialized into the session cookie.
type User struct {
	// ID is the unique identifier of the user, a short random token.
	ID string

	// Email is the natural key used for login. Uniqueness is checked by the
	// registration flow, not enforced by storage.
	Email string

	// PasswordHash is the bcrypt digest of the account password.
	PasswordHash string
}

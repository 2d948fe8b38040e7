package models

import "errors"

// URL is a shortened URL record. UserID is a back-reference to the owning
// account; the record itself is owned by the URL registry.
type URL struct {
	Short    string `json:"short"`
	Original string `json:"original_url"`
	UserID   string `json:"-"`
}

// RegisterForm carries the registration form fields.
type RegisterForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// ShortenForm carries the URL creation form fields.
type ShortenForm struct {
	LongURL string `validate:"required,url"`
}

type UserURL struct {
	ShortURL    string `json:"short_url"`
	OriginalURL string `json:"original_url"`
}

type UserURLs []UserURL

type InternalStatsResponse struct {
	URLs  int64 `json:"urls"`
	Users int64 `json:"users"`
}

// EditPlaceholder is the value an empty edit form submits for the long URL.
// Updates carrying it (or an empty string) must leave the record unchanged.
const EditPlaceholder = "http://"

var (
	// ErrNotOwned is returned when a short key is absent from the acting
	// user's set. It deliberately does not reveal whether the record exists.
	ErrNotOwned = errors.New("no URL with this id for this user")

	// ErrNotFound is returned by the public resolve path for unknown short keys.
	ErrNotFound = errors.New("the id does not exist")

	// ErrEmailTaken is returned when registering with an email already in use.
	ErrEmailTaken = errors.New("email is already in use")

	// ErrWrongCredentials is returned on a failed login attempt.
	ErrWrongCredentials = errors.New("wrong login information")
)

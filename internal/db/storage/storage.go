// Package storage declares the storage contract shared by the user directory
// and the URL registry.
package storage

import (
	"context"

	"github.com/anthonyChuks1/tinyapp/internal/models"
	"github.com/anthonyChuks1/tinyapp/internal/user"
)

// UserKeeper is the user directory: accounts keyed by id, looked up by email.
type UserKeeper interface {
	// CreateUser stores the account keyed by its id. An id collision silently
	// overwrites the previous account.
	CreateUser(ctx context.Context, usr *user.User) error

	GetUserByID(ctx context.Context, userID string) (*user.User, bool, error)

	// FindUserByEmail scans for the first account with exactly this email.
	FindUserByEmail(ctx context.Context, email string) (*user.User, bool, error)

	GetNumberOfUsers(ctx context.Context) (int64, error)
}

// URLKeeper is the URL registry together with its ownership filter.
type URLKeeper interface {
	InsertURL(ctx context.Context, url *models.URL) error

	FindURLByShort(ctx context.Context, short string) (*models.URL, bool, error)

	// UpdateURLTarget replaces the original URL of an existing record unless
	// the new value is empty or the edit-form placeholder.
	UpdateURLTarget(ctx context.Context, short, newOriginal string) error

	// DeleteURL removes the record if present; deleting an absent key is a no-op.
	DeleteURL(ctx context.Context, short string) error

	// FindURLsByUser returns exactly the records owned by userID, keyed by short key.
	FindURLsByUser(ctx context.Context, userID string) (map[string]*models.URL, error)

	GetNumberOfShortenedURLs(ctx context.Context) (int64, error)
}

// Storage is the full contract the application wires together.
type Storage interface {
	UserKeeper
	URLKeeper

	Ping(ctx context.Context) error

	Close() error
}

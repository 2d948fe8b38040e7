// Package memorystorage keeps the user directory and the URL registry in
// process memory. Restarting the process clears all accounts and URLs.
package memorystorage

import (
	"context"
	"sync"

	"github.com/anthonyChuks1/tinyapp/internal/models"
	"github.com/anthonyChuks1/tinyapp/internal/user"
)

// MemoryStorage guards its maps with a single RWMutex: one writer at a time,
// concurrent readers. net/http dispatches handlers concurrently, so unguarded
// map mutation would race.
type MemoryStorage struct {
	mux   sync.RWMutex
	users map[string]*user.User
	urls  map[string]*models.URL
}

func New() (*MemoryStorage, error) {
	return &MemoryStorage{
		users: map[string]*user.User{},
		urls:  map[string]*models.URL{},
	}, nil
}

// CreateUser stores the account keyed by its id, overwriting on collision.
func (theStorage *MemoryStorage) CreateUser(ctx context.Context, usr *user.User) error {
	theStorage.mux.Lock()
	defer theStorage.mux.Unlock()

	clone := *usr
	theStorage.users[clone.ID] = &clone

	return nil
}

func (theStorage *MemoryStorage) GetUserByID(ctx context.Context, userID string) (*user.User, bool, error) {
	theStorage.mux.RLock()
	defer theStorage.mux.RUnlock()

	usr, found := theStorage.users[userID]
	if !found {
		return nil, false, nil
	}
	clone := *usr

	return &clone, true, nil
}

// FindUserByEmail scans the directory for an exact, case-sensitive email match.
func (theStorage *MemoryStorage) FindUserByEmail(ctx context.Context, email string) (*user.User, bool, error) {
	theStorage.mux.RLock()
	defer theStorage.mux.RUnlock()

	for _, usr := range theStorage.users {
		if usr.Email == email {
			clone := *usr
			return &clone, true, nil
		}
	}

	return nil, false, nil
}

func (theStorage *MemoryStorage) GetNumberOfUsers(ctx context.Context) (int64, error) {
	theStorage.mux.RLock()
	defer theStorage.mux.RUnlock()

	return int64(len(theStorage.users)), nil
}

func (theStorage *MemoryStorage) InsertURL(ctx context.Context, url *models.URL) error {
	theStorage.mux.Lock()
	defer theStorage.mux.Unlock()

	clone := *url
	theStorage.urls[clone.Short] = &clone

	return nil
}

func (theStorage *MemoryStorage) FindURLByShort(ctx context.Context, short string) (*models.URL, bool, error) {
	theStorage.mux.RLock()
	defer theStorage.mux.RUnlock()

	url, found := theStorage.urls[short]
	if !found {
		return nil, false, nil
	}
	clone := *url

	return &clone, true, nil
}

// UpdateURLTarget replaces the original URL of an existing record. An empty
// value or the edit-form placeholder leaves the record untouched.
func (theStorage *MemoryStorage) UpdateURLTarget(ctx context.Context, short, newOriginal string) error {
	if newOriginal == "" || newOriginal == models.EditPlaceholder {
		return nil
	}

	theStorage.mux.Lock()
	defer theStorage.mux.Unlock()

	url, found := theStorage.urls[short]
	if !found {
		return nil
	}
	url.Original = newOriginal

	return nil
}

// DeleteURL removes the record if present. Deleting an absent key is a no-op.
func (theStorage *MemoryStorage) DeleteURL(ctx context.Context, short string) error {
	theStorage.mux.Lock()
	defer theStorage.mux.Unlock()

	delete(theStorage.urls, short)

	return nil
}

// FindURLsByUser returns exactly the records owned by userID, keyed by short key.
func (theStorage *MemoryStorage) FindURLsByUser(ctx context.Context, userID string) (map[string]*models.URL, error) {
	theStorage.mux.RLock()
	defer theStorage.mux.RUnlock()

	result := map[string]*models.URL{}
	for short, url := range theStorage.urls {
		if url.UserID == userID {
			clone := *url
			result[short] = &clone
		}
	}

	return result, nil
}

func (theStorage *MemoryStorage) GetNumberOfShortenedURLs(ctx context.Context) (int64, error) {
	theStorage.mux.RLock()
	defer theStorage.mux.RUnlock()

	return int64(len(theStorage.urls)), nil
}

func (theStorage *MemoryStorage) Ping(ctx context.Context) error {
	return nil
}

func (theStorage *MemoryStorage) Close() error {
	return nil
}

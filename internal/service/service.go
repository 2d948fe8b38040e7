// Package service implements the application rules on top of storage:
// registration, login, URL shortening and the per-user ownership checks
// that authorize viewing, editing and deleting shortened URLs.
package service

import (
	"context"
	"fmt"

	"github.com/thoas/go-funk"

	"github.com/anthonyChuks1/tinyapp/internal/keygen"
	"github.com/anthonyChuks1/tinyapp/internal/models"
	"github.com/anthonyChuks1/tinyapp/internal/password"
	"github.com/anthonyChuks1/tinyapp/internal/user"
)

type userKeeper interface {
	CreateUser(ctx context.Context, usr *user.User) error
	GetUserByID(ctx context.Context, userID string) (*user.User, bool, error)
	FindUserByEmail(ctx context.Context, email string) (*user.User, bool, error)
	GetNumberOfUsers(ctx context.Context) (int64, error)
}

type urlKeeper interface {
	InsertURL(ctx context.Context, url *models.URL) error
	FindURLByShort(ctx context.Context, short string) (*models.URL, bool, error)
	UpdateURLTarget(ctx context.Context, short, newOriginal string) error
	DeleteURL(ctx context.Context, short string) error
	FindURLsByUser(ctx context.Context, userID string) (map[string]*models.URL, error)
	GetNumberOfShortenedURLs(ctx context.Context) (int64, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

type storage interface {
	userKeeper
	urlKeeper
	pinger
}

type Service struct {
	db           storage
	shortURLBase string
}

func New(db storage, shortURLBase string) *Service {
	return &Service{
		db:           db,
		shortURLBase: shortURLBase,
	}
}

// Register creates an account for the given credentials and returns it.
// The email is checked against the directory first; registering an email
// already in use fails with models.ErrEmailTaken and mutates nothing.
func (s *Service) Register(ctx context.Context, email, plaintextPassword string) (*user.User, error) {
	_, found, err := s.db.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if found {
		return nil, models.ErrEmailTaken
	}

	passwordHash, err := password.Hash(plaintextPassword)
	if err != nil {
		return nil, fmt.Errorf("hashing the password: %w", err)
	}

	usr := &user.User{
		ID:           keygen.NewUserID(),
		Email:        email,
		PasswordHash: passwordHash,
	}
	if err := s.db.CreateUser(ctx, usr); err != nil {
		return nil, err
	}

	return usr, nil
}

// Login verifies the credentials against the user directory. Any mismatch —
// unknown email or wrong password — yields models.ErrWrongCredentials.
func (s *Service) Login(ctx context.Context, email, plaintextPassword string) (*user.User, error) {
	usr, found, err := s.db.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !found || !password.Verify(plaintextPassword, usr.PasswordHash) {
		return nil, models.ErrWrongCredentials
	}

	return usr, nil
}

// ShortenURL registers a new short key for the URL, owned by the given user.
// Key generation is not retried on collision; the accepted risk at this
// scale is an overwritten record.
func (s *Service) ShortenURL(ctx context.Context, original, userID string) (string, error) {
	short := keygen.NewShortKey()
	err := s.db.InsertURL(ctx, &models.URL{
		Short:    short,
		Original: original,
		UserID:   userID,
	})
	if err != nil {
		return "", err
	}

	return short, nil
}

// UserURLs lists the URLs owned by the user, with their absolute short form.
func (s *Service) UserURLs(ctx context.Context, userID string) (models.UserURLs, error) {
	owned, err := s.db.FindURLsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := funk.Map(owned, func(short string, url *models.URL) models.UserURL {
		return models.UserURL{
			ShortURL:    s.ShortURL(short),
			OriginalURL: url.Original,
		}
	}).([]models.UserURL)

	return models.UserURLs(items), nil
}

// GetUserURL returns the record for the short key if — and only if — the
// user owns it. A key owned by someone else and a key that does not exist
// produce the same models.ErrNotOwned, so existence never leaks.
func (s *Service) GetUserURL(ctx context.Context, userID, short string) (*models.URL, error) {
	owned, err := s.db.FindURLsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	url, found := owned[short]
	if !found {
		return nil, models.ErrNotOwned
	}

	return url, nil
}

// UpdateUserURL replaces the target of an owned record. The registry guard
// keeps empty and placeholder submissions from being saved.
func (s *Service) UpdateUserURL(ctx context.Context, userID, short, newOriginal string) error {
	if _, err := s.GetUserURL(ctx, userID, short); err != nil {
		return err
	}

	return s.db.UpdateURLTarget(ctx, short, newOriginal)
}

// DeleteUserURL removes an owned record from the registry.
func (s *Service) DeleteUserURL(ctx context.Context, userID, short string) error {
	if _, err := s.GetUserURL(ctx, userID, short); err != nil {
		return err
	}

	return s.db.DeleteURL(ctx, short)
}

// ResolveShort is the public resolve path: no authentication, only existence.
func (s *Service) ResolveShort(ctx context.Context, short string) (string, error) {
	url, found, err := s.db.FindURLByShort(ctx, short)
	if err != nil {
		return "", err
	}
	if !found {
		return "", models.ErrNotFound
	}

	return url.Original, nil
}

// Ping checks the health of the storage layer.
func (s *Service) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// InternalStats returns the total number of shortened URLs and users.
func (s *Service) InternalStats(ctx context.Context) (models.InternalStatsResponse, error) {
	urls, err := s.db.GetNumberOfShortenedURLs(ctx)
	if err != nil {
		return models.InternalStatsResponse{}, err
	}

	users, err := s.db.GetNumberOfUsers(ctx)
	if err != nil {
		return models.InternalStatsResponse{}, err
	}

	return models.InternalStatsResponse{
		URLs:  urls,
		Users: users,
	}, nil
}

// ShortURL renders the absolute form of a short key.
func (s *Service) ShortURL(shortKey string) string {
	return s.shortURLBase + "/u/" + shortKey
}

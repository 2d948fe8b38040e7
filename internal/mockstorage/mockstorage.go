// Package mockstorage provides a testify-based mock of the storage contract.
// Router tests use it to simulate storage failures that the in-memory
// implementation cannot produce.
package mockstorage

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/anthonyChuks1/tinyapp/internal/models"
	"github.com/anthonyChuks1/tinyapp/internal/user"
)

// StorageMock implements the storage interfaces consumed by the auth,
// service and router packages.
type StorageMock struct {
	mock.Mock
}

func (m *StorageMock) CreateUser(ctx context.Context, usr *user.User) error {
	args := m.Called(ctx, usr)
	return args.Error(0)
}

func (m *StorageMock) GetUserByID(ctx context.Context, userID string) (*user.User, bool, error) {
	args := m.Called(ctx, userID)
	usr, _ := args.Get(0).(*user.User)
	return usr, args.Bool(1), args.Error(2)
}

func (m *StorageMock) FindUserByEmail(ctx context.Context, email string) (*user.User, bool, error) {
	args := m.Called(ctx, email)
	usr, _ := args.Get(0).(*user.User)
	return usr, args.Bool(1), args.Error(2)
}

func (m *StorageMock) GetNumberOfUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *StorageMock) InsertURL(ctx context.Context, url *models.URL) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

func (m *StorageMock) FindURLByShort(ctx context.Context, short string) (*models.URL, bool, error) {
	args := m.Called(ctx, short)
	url, _ := args.Get(0).(*models.URL)
	return url, args.Bool(1), args.Error(2)
}

func (m *StorageMock) UpdateURLTarget(ctx context.Context, short, newOriginal string) error {
	args := m.Called(ctx, short, newOriginal)
	return args.Error(0)
}

func (m *StorageMock) DeleteURL(ctx context.Context, short string) error {
	args := m.Called(ctx, short)
	return args.Error(0)
}

func (m *StorageMock) FindURLsByUser(ctx context.Context, userID string) (map[string]*models.URL, error) {
	args := m.Called(ctx, userID)
	urls, _ := args.Get(0).(map[string]*models.URL)
	return urls, args.Error(1)
}

func (m *StorageMock) GetNumberOfShortenedURLs(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *StorageMock) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *StorageMock) Close() error {
	args := m.Called()
	return args.Error(0)
}

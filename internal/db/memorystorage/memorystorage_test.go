package memorystorage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anthonyChuks1/tinyapp/internal/models"
	"github.com/anthonyChuks1/tinyapp/internal/user"
)

func TestUserDirectory(t *testing.T) {
	theStorage, err := New()
	require.NoError(t, err)
	require.NotNil(t, theStorage)
	defer func() {
		require.NoError(t, theStorage.Close())
	}()

	err = theStorage.CreateUser(context.Background(), &user.User{
		ID:           "a1b2",
		Email:        "a@a.com",
		PasswordHash: "some digest",
	})
	require.NoError(t, err)
	err = theStorage.CreateUser(context.Background(), &user.User{
		ID:           "c3d4",
		Email:        "b@b.com",
		PasswordHash: "another digest",
	})
	require.NoError(t, err)

	usr, found, err := theStorage.FindUserByEmail(context.Background(), "a@a.com")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "a1b2", usr.ID)

	usr, found, err = theStorage.FindUserByEmail(context.Background(), "b@b.com")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "c3d4", usr.ID)

	_, found, err = theStorage.FindUserByEmail(context.Background(), "unregistered@a.com")
	require.NoError(t, err)
	assert.False(t, found)

	// The match is case-sensitive.
	_, found, err = theStorage.FindUserByEmail(context.Background(), "A@A.COM")
	require.NoError(t, err)
	assert.False(t, found)

	usr, found, err = theStorage.GetUserByID(context.Background(), "a1b2")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "a@a.com", usr.Email)

	_, found, err = theStorage.GetUserByID(context.Background(), "zzzz")
	require.NoError(t, err)
	assert.False(t, found)

	amount, err := theStorage.GetNumberOfUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), amount)
}

func TestCreateUserOverwritesOnIDCollision(t *testing.T) {
	theStorage, err := New()
	require.NoError(t, err)

	require.NoError(t, theStorage.CreateUser(context.Background(), &user.User{ID: "a1b2", Email: "a@a.com"}))
	require.NoError(t, theStorage.CreateUser(context.Background(), &user.User{ID: "a1b2", Email: "b@b.com"}))

	usr, found, err := theStorage.GetUserByID(context.Background(), "a1b2")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "b@b.com", usr.Email)

	amount, err := theStorage.GetNumberOfUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), amount)
}

func TestURLRegistryRoundTrip(t *testing.T) {
	theStorage, err := New()
	require.NoError(t, err)

	err = theStorage.InsertURL(context.Background(), &models.URL{
		Short:    "xyz123",
		Original: "http://www.lighthouselabs.ca",
		UserID:   "a1b2",
	})
	require.NoError(t, err)

	url, found, err := theStorage.FindURLByShort(context.Background(), "xyz123")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "http://www.lighthouselabs.ca", url.Original)
	assert.Equal(t, "a1b2", url.UserID)

	_, found, err = theStorage.FindURLByShort(context.Background(), "unknown")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFindURLsByUser(t *testing.T) {
	theStorage, err := New()
	require.NoError(t, err)

	urls := []*models.URL{
		{Short: "b2xVn2", Original: "http://www.lighthouselabs.ca", UserID: "a1b2"},
		{Short: "i3BoGr", Original: "https://www.google.ca", UserID: "a1b2"},
		{Short: "9sm5xK", Original: "http://www.google.com", UserID: "c3d4"},
	}
	for _, url := range urls {
		require.NoError(t, theStorage.InsertURL(context.Background(), url))
	}

	owned, err := theStorage.FindURLsByUser(context.Background(), "a1b2")
	require.NoError(t, err)
	assert.Len(t, owned, 2)
	assert.Contains(t, owned, "b2xVn2")
	assert.Contains(t, owned, "i3BoGr")
	assert.NotContains(t, owned, "9sm5xK")

	owned, err = theStorage.FindURLsByUser(context.Background(), "c3d4")
	require.NoError(t, err)
	assert.Len(t, owned, 1)
	assert.Contains(t, owned, "9sm5xK")

	owned, err = theStorage.FindURLsByUser(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, owned)
}

func TestUpdateURLTargetGuard(t *testing.T) {
	theStorage, err := New()
	require.NoError(t, err)

	require.NoError(t, theStorage.InsertURL(context.Background(), &models.URL{
		Short:    "b2xVn2",
		Original: "http://www.lighthouselabs.ca",
		UserID:   "a1b2",
	}))

	// The empty-form placeholder and an empty value must not be saved.
	require.NoError(t, theStorage.UpdateURLTarget(context.Background(), "b2xVn2", models.EditPlaceholder))
	url, _, err := theStorage.FindURLByShort(context.Background(), "b2xVn2")
	require.NoError(t, err)
	assert.Equal(t, "http://www.lighthouselabs.ca", url.Original)

	require.NoError(t, theStorage.UpdateURLTarget(context.Background(), "b2xVn2", ""))
	url, _, err = theStorage.FindURLByShort(context.Background(), "b2xVn2")
	require.NoError(t, err)
	assert.Equal(t, "http://www.lighthouselabs.ca", url.Original)

	require.NoError(t, theStorage.UpdateURLTarget(context.Background(), "b2xVn2", "https://www.tsn.ca"))
	url, _, err = theStorage.FindURLByShort(context.Background(), "b2xVn2")
	require.NoError(t, err)
	assert.Equal(t, "https://www.tsn.ca", url.Original)

	// Updating an absent key is a no-op.
	require.NoError(t, theStorage.UpdateURLTarget(context.Background(), "unknown", "https://www.tsn.ca"))
}

func TestDeleteURLIsIdempotent(t *testing.T) {
	theStorage, err := New()
	require.NoError(t, err)

	require.NoError(t, theStorage.InsertURL(context.Background(), &models.URL{
		Short:    "b2xVn2",
		Original: "http://www.lighthouselabs.ca",
		UserID:   "a1b2",
	}))

	require.NoError(t, theStorage.DeleteURL(context.Background(), "b2xVn2"))
	_, found, err := theStorage.FindURLByShort(context.Background(), "b2xVn2")
	require.NoError(t, err)
	assert.False(t, found)

	// The second delete is a no-op.
	require.NoError(t, theStorage.DeleteURL(context.Background(), "b2xVn2"))

	amount, err := theStorage.GetNumberOfShortenedURLs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), amount)
}

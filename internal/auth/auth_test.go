package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anthonyChuks1/tinyapp/internal/user"
)

type fakeUserKeeper struct {
	users map[string]*user.User
}

func (k *fakeUserKeeper) GetUserByID(ctx context.Context, userID string) (*user.User, bool, error) {
	usr, found := k.users[userID]
	return usr, found, nil
}

func newTestAuth(users map[string]*user.User) *Auth {
	return New(&fakeUserKeeper{users: users}, "tinyapp_session", []byte("test-signing-key"))
}

func identityEchoHandler(t *testing.T, gotIdentity **user.User) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if usr, ok := UserFromContext(r.Context()); ok {
			*gotIdentity = usr
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateUserWithIssuedCookie(t *testing.T) {
	theAuth := newTestAuth(map[string]*user.User{
		"a1b2": {ID: "a1b2", Email: "a@a.com"},
	})

	issueRecorder := httptest.NewRecorder()
	require.NoError(t, theAuth.IssueSession(issueRecorder, "a1b2"))
	cookies := issueRecorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "tinyapp_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.NotContains(t, cookies[0].Value, "a@a.com", "the cookie should carry only the signed token")

	var gotIdentity *user.User
	handler := theAuth.AuthenticateUser(identityEchoHandler(t, &gotIdentity))

	request := httptest.NewRequest(http.MethodGet, "/urls", nil)
	request.AddCookie(cookies[0])
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	require.NotNil(t, gotIdentity)
	assert.Equal(t, "a1b2", gotIdentity.ID)
	assert.Equal(t, "a@a.com", gotIdentity.Email)
}

func TestAuthenticateUserWithoutToken(t *testing.T) {
	theAuth := newTestAuth(map[string]*user.User{})

	var gotIdentity *user.User
	handler := theAuth.AuthenticateUser(identityEchoHandler(t, &gotIdentity))

	request := httptest.NewRequest(http.MethodGet, "/urls", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Nil(t, gotIdentity, "a request without a token should pass through anonymously")
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestAuthenticateUserRevalidatesAgainstDirectory(t *testing.T) {
	keeper := &fakeUserKeeper{users: map[string]*user.User{
		"a1b2": {ID: "a1b2", Email: "a@a.com"},
	}}
	theAuth := New(keeper, "tinyapp_session", []byte("test-signing-key"))

	issueRecorder := httptest.NewRecorder()
	require.NoError(t, theAuth.IssueSession(issueRecorder, "a1b2"))
	cookie := issueRecorder.Result().Cookies()[0]

	// The account disappears from the directory; the session must not survive.
	delete(keeper.users, "a1b2")

	var gotIdentity *user.User
	handler := theAuth.AuthenticateUser(identityEchoHandler(t, &gotIdentity))

	request := httptest.NewRequest(http.MethodGet, "/urls", nil)
	request.AddCookie(cookie)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Nil(t, gotIdentity)
}

func TestAuthenticateUserRejectsForgedToken(t *testing.T) {
	theAuth := newTestAuth(map[string]*user.User{
		"a1b2": {ID: "a1b2", Email: "a@a.com"},
	})

	forger := New(&fakeUserKeeper{}, "tinyapp_session", []byte("some other key"))
	issueRecorder := httptest.NewRecorder()
	require.NoError(t, forger.IssueSession(issueRecorder, "a1b2"))
	forgedCookie := issueRecorder.Result().Cookies()[0]

	var gotIdentity *user.User
	handler := theAuth.AuthenticateUser(identityEchoHandler(t, &gotIdentity))

	request := httptest.NewRequest(http.MethodGet, "/urls", nil)
	request.AddCookie(forgedCookie)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Nil(t, gotIdentity, "a token signed with another key should not authenticate")
}

func TestClearSession(t *testing.T) {
	theAuth := newTestAuth(map[string]*user.User{})

	recorder := httptest.NewRecorder()
	theAuth.ClearSession(recorder)

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

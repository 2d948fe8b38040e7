// Package auth implements the session gate: it issues and clears the signed
// session cookie and resolves the authenticated identity of incoming requests.
// Tokens are JWTs carried in a cookie or the Authorization header.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/anthonyChuks1/tinyapp/internal/logger"
	"github.com/anthonyChuks1/tinyapp/internal/user"
)

type userKeeper interface {
	GetUserByID(ctx context.Context, userID string) (*user.User, bool, error)
}

// Auth issues session tokens on login and authenticates subsequent requests.
type Auth struct {
	// db is the user directory the session is re-validated against.
	db userKeeper

	// authCookieName is the name of the cookie carrying the session token.
	authCookieName string

	// authCookieSigningSecretKey signs and verifies session tokens.
	authCookieSigningSecretKey []byte
}

// Claims are the session token claims. Only the user id is stored; the
// account (password hash included) stays in the user directory and is
// re-fetched on every request.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// ContextKey is a custom type for context values to avoid collisions.
type ContextKey string

const identityKey ContextKey = "identity"

func New(
	db userKeeper,
	authCookieName string,
	authCookieSigningSecretKey []byte,
) *Auth {
	return &Auth{
		db:                         db,
		authCookieName:             authCookieName,
		authCookieSigningSecretKey: authCookieSigningSecretKey,
	}
}

// IssueSession signs a session token for the given user and sets it as a
// cookie. Issuing a session over an existing one replaces the identity.
func (a *Auth) IssueSession(response http.ResponseWriter, userID string) error {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.New().String(),
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, *claims)
	tokenString, err := token.SignedString(a.authCookieSigningSecretKey)
	if err != nil {
		return err
	}

	http.SetCookie(
		response,
		&http.Cookie{
			Name:     a.authCookieName,
			Value:    tokenString,
			Path:     "/",
			HttpOnly: true,
		},
	)

	return nil
}

// ClearSession drops the session cookie unconditionally.
func (a *Auth) ClearSession(response http.ResponseWriter) {
	http.SetCookie(
		response,
		&http.Cookie{
			Name:     a.authCookieName,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			MaxAge:   -1,
		},
	)
}

// AuthenticateUser resolves the identity of the request and attaches it to
// the request context. The account is re-fetched from the user directory on
// every request, so a session whose account is gone from the directory
// degrades to anonymous instead of being trusted. Requests without a valid
// token pass through anonymously; handlers decide what anonymity means.
func (a *Auth) AuthenticateUser(h http.Handler) http.Handler {
	middleware := func(response http.ResponseWriter, request *http.Request) {
		userID := a.getUserIDFromAuthorizationHeaderOrCookie(request)
		if userID == "" {
			h.ServeHTTP(response, request)
			return
		}

		usr, found, err := a.db.GetUserByID(request.Context(), userID)
		if err != nil {
			logger.Log.Debugln("Error calling the `a.db.GetUserByID()`: ", zap.Error(err))
			response.WriteHeader(http.StatusInternalServerError)
			return
		}
		if !found {
			h.ServeHTTP(response, request)
			return
		}

		ctx := context.WithValue(request.Context(), identityKey, usr)
		h.ServeHTTP(response, request.WithContext(ctx))
	}

	return http.HandlerFunc(middleware)
}

// UserFromContext returns the authenticated account attached to the request
// context, if any.
func UserFromContext(ctx context.Context) (*user.User, bool) {
	usr, ok := ctx.Value(identityKey).(*user.User)
	return usr, ok && usr != nil
}

func (a *Auth) getTokenStringFromAuthorizationHeaderOrCookie(request *http.Request) string {
	tokenString := request.Header.Get("Authorization")
	if tokenString != "" {
		return tokenString
	}
	cookie, err := request.Cookie(a.authCookieName)
	if err == nil {
		tokenString = cookie.Value
	}

	return tokenString
}

func (a *Auth) getUserIDFromAuthorizationHeaderOrCookie(request *http.Request) string {
	tokenString := a.getTokenStringFromAuthorizationHeaderOrCookie(request)
	if tokenString == "" {
		return ""
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return a.authCookieSigningSecretKey, nil
		},
	)
	if err != nil || !token.Valid {
		return ""
	}

	return claims.UserID
}

// Package router wires the HTTP surface of the application: account
// registration and login, the owner-scoped URL management routes, and the
// public short-link redirect.
package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/anthonyChuks1/tinyapp/internal/auth"
	"github.com/anthonyChuks1/tinyapp/internal/gzippedhttp"
	"github.com/anthonyChuks1/tinyapp/internal/ipchecker"
	"github.com/anthonyChuks1/tinyapp/internal/logger"
	"github.com/anthonyChuks1/tinyapp/internal/models"
	"github.com/anthonyChuks1/tinyapp/internal/user"
)

type urlService interface {
	Register(ctx context.Context, email, plaintextPassword string) (*user.User, error)
	Login(ctx context.Context, email, plaintextPassword string) (*user.User, error)
	ShortenURL(ctx context.Context, original, userID string) (string, error)
	UserURLs(ctx context.Context, userID string) (models.UserURLs, error)
	GetUserURL(ctx context.Context, userID, short string) (*models.URL, error)
	UpdateUserURL(ctx context.Context, userID, short, newOriginal string) error
	DeleteUserURL(ctx context.Context, userID, short string) error
	ResolveShort(ctx context.Context, short string) (string, error)
	Ping(ctx context.Context) error
	InternalStats(ctx context.Context) (models.InternalStatsResponse, error)
	ShortURL(shortKey string) string
}

type sessionGate interface {
	AuthenticateUser(h http.Handler) http.Handler
	IssueSession(response http.ResponseWriter, userID string) error
	ClearSession(response http.ResponseWriter)
}

// Router holds the HTTP handlers of the application.
type Router struct {
	svc       urlService
	sessions  sessionGate
	ipChecker *ipchecker.IPChecker
	validate  *validator.Validate
}

const (
	loginFormPage = `<html><body><form method="POST" action="/login">
<input name="email" placeholder="email"><input name="password" type="password" placeholder="password">
<button type="submit">Log in</button></form></body></html>`

	registerFormPage = `<html><body><form method="POST" action="/register">
<input name="email" placeholder="email"><input name="password" type="password" placeholder="password">
<button type="submit">Register</button></form></body></html>`

	newURLFormPage = `<html><body><form method="POST" action="/urls">
<input name="longURL" value="http://"><button type="submit">Shorten</button></form></body></html>`
)

// New builds the chi router with logging, authentication and response
// compression middleware applied to every route.
func New(
	svc urlService,
	sessions sessionGate,
	ipChecker *ipchecker.IPChecker,
) *chi.Mux {
	theRouter := &Router{
		svc:       svc,
		sessions:  sessions,
		ipChecker: ipChecker,
		validate:  validator.New(),
	}

	router := chi.NewRouter()
	router.Use(
		logger.WithLoggingHTTPMiddleware,
		gzippedhttp.GzipResponse,
		sessions.AuthenticateUser,
	)

	router.Get(`/`, theRouter.GetRoot)

	router.Get(`/register`, theRouter.GetRegister)
	router.Post(`/register`, theRouter.PostRegister)
	router.Get(`/login`, theRouter.GetLogin)
	router.Post(`/login`, theRouter.PostLogin)
	router.Post(`/logout`, theRouter.PostLogout)

	router.Get(`/urls`, theRouter.GetUrls)
	router.Get(`/urls/new`, theRouter.GetUrlsNew)
	router.Post(`/urls`, theRouter.PostUrls)
	router.Put(`/urls`, theRouter.PostUrls)
	router.Get(`/urls/{id}`, theRouter.GetUrlsID)
	router.Post(`/urls/{id}`, theRouter.PostUrlsID)
	router.Put(`/urls/{id}`, theRouter.PostUrlsID)
	router.Post(`/urls/{id}/delete`, theRouter.PostUrlsIDDelete)
	router.Delete(`/urls/{id}/delete`, theRouter.PostUrlsIDDelete)

	router.Get(`/u/{id}`, theRouter.GetUShort)

	router.Get(`/ping`, theRouter.GetPing)
	router.Get(`/api/internal/stats`, theRouter.GetAPIInternalStats)

	return router
}

// GetRoot redirects the bare host to the login page.
func (r *Router) GetRoot(response http.ResponseWriter, request *http.Request) {
	http.Redirect(response, request, "/login", http.StatusFound)
}

// GetRegister renders the registration form.
func (r *Router) GetRegister(response http.ResponseWriter, request *http.Request) {
	writePage(response, registerFormPage)
}

// PostRegister creates an account, attaches the identity and redirects to
// the URL list. Empty or malformed fields and an email already in use both
// yield 400 without touching the user directory.
func (r *Router) PostRegister(response http.ResponseWriter, request *http.Request) {
	if err := request.ParseForm(); err != nil {
		http.Error(response, err.Error(), http.StatusBadRequest)
		return
	}

	form := models.RegisterForm{
		Email:    request.PostFormValue("email"),
		Password: request.PostFormValue("password"),
	}
	if err := r.validate.Struct(form); err != nil {
		http.Error(response, "Email or Password cannot be empty", http.StatusBadRequest)
		return
	}

	usr, err := r.svc.Register(request.Context(), form.Email, form.Password)
	if errors.Is(err, models.ErrEmailTaken) {
		http.Error(response, "Email is already in use", http.StatusBadRequest)
		return
	}
	if err != nil {
		logger.Log.Debugln("Error calling the `r.svc.Register()`: ", zap.Error(err))
		response.WriteHeader(http.StatusInternalServerError)
		return
	}

	if err := r.sessions.IssueSession(response, usr.ID); err != nil {
		logger.Log.Debugln("Error calling the `r.sessions.IssueSession()`: ", zap.Error(err))
		response.WriteHeader(http.StatusInternalServerError)
		return
	}

	http.Redirect(response, request, "/urls", http.StatusSeeOther)
}

// GetLogin renders the login form.
func (r *Router) GetLogin(response http.ResponseWriter, request *http.Request) {
	writePage(response, loginFormPage)
}

// PostLogin verifies the credentials and attaches the identity. A re-login
// over an existing session replaces the identity.
func (r *Router) PostLogin(response http.ResponseWriter, request *http.Request) {
	if err := request.ParseForm(); err != nil {
		http.Error(response, err.Error(), http.StatusBadRequest)
		return
	}

	usr, err := r.svc.Login(
		request.Context(),
		request.PostFormValue("email"),
		request.PostFormValue("password"),
	)
	if errors.Is(err, models.ErrWrongCredentials) {
		http.Error(response, "Login Failed - Wrong Login information", http.StatusForbidden)
		return
	}
	if err != nil {
		logger.Log.Debugln("Error calling the `r.svc.Login()`: ", zap.Error(err))
		response.WriteHeader(http.StatusInternalServerError)
		return
	}

	if err := r.sessions.IssueSession(response, usr.ID); err != nil {
		logger.Log.Debugln("Error calling the `r.sessions.IssueSession()`: ", zap.Error(err))
		response.WriteHeader(http.StatusInternalServerError)
		return
	}

	http.Redirect(response, request, "/urls", http.StatusSeeOther)
}

// PostLogout clears the identity unconditionally and redirects to the login
// page, whatever the prior session state was.
func (r *Router) PostLogout(response http.ResponseWriter, request *http.Request) {
	r.sessions.ClearSession(response)
	http.Redirect(response, request, "/login", http.StatusSeeOther)
}

// GetUrls lists the URLs owned by the authenticated user.
func (r *Router) GetUrls(response http.ResponseWriter, request *http.Request) {
	usr, ok := auth.UserFromContext(request.Context())
	if !ok {
		http.Error(response, "Cannot access this page without logging in", http.StatusForbidden)
		return
	}

	urls, err := r.svc.UserURLs(request.Context(), usr.ID)
	if err != nil {
		logger.Log.Debugln("Error calling the `r.svc.UserURLs()`: ", zap.Error(err))
		response.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSON(response, http.StatusOK, urls)
}

// GetUrlsNew renders the URL creation form; anonymous visitors are sent to
// the login page instead.
func (r *Router) GetUrlsNew(response http.ResponseWriter, request *http.Request) {
	if _, ok := auth.UserFromContext(request.Context()); !ok {
		http.Redirect(response, request, "/login", http.StatusFound)
		return
	}

	writePage(response, newURLFormPage)
}

// PostUrls shortens the submitted URL under the authenticated user's
// ownership and redirects to the record page.
func (r *Router) PostUrls(response http.ResponseWriter, request *http.Request) {
	usr, ok := auth.UserFromContext(request.Context())
	if !ok {
		http.Error(response, "Cannot access this route without login", http.StatusForbidden)
		return
	}

	if err := request.ParseForm(); err != nil {
		http.Error(response, err.Error(), http.StatusBadRequest)
		return
	}

	form := models.ShortenForm{LongURL: request.PostFormValue("longURL")}
	if err := r.validate.Struct(form); err != nil {
		http.Error(response, "there is no valid URL in the request", http.StatusBadRequest)
		return
	}

	short, err := r.svc.ShortenURL(request.Context(), form.LongURL, usr.ID)
	if err != nil {
		logger.Log.Debugln("Error calling the `r.svc.ShortenURL()`: ", zap.Error(err))
		response.WriteHeader(http.StatusInternalServerError)
		return
	}

	http.Redirect(response, request, "/urls/"+short, http.StatusSeeOther)
}

// GetUrlsID shows a single owned record. A key the user does not own gets
// the same answer as a key that does not exist.
func (r *Router) GetUrlsID(response http.ResponseWriter, request *http.Request) {
	usr, ok := auth.UserFromContext(request.Context())
	if !ok {
		http.Error(response, "Login to access this url", http.StatusForbidden)
		return
	}

	short := chi.URLParam(request, "id")
	url, err := r.svc.GetUserURL(request.Context(), usr.ID, short)
	if errors.Is(err, models.ErrNotOwned) {
		http.Error(response, "The URL does not exist for the user", http.StatusForbidden)
		return
	}
	if err != nil {
		logger.Log.Debugln("Error calling the `r.svc.GetUserURL()`: ", zap.Error(err))
		response.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSON(response, http.StatusOK, models.UserURL{
		ShortURL:    r.svc.ShortURL(url.Short),
		OriginalURL: url.Original,
	})
}

// PostUrlsID edits the long URL of an owned record. The registry guard keeps
// an empty form submission from overwriting the target.
func (r *Router) PostUrlsID(response http.ResponseWriter, request *http.Request) {
	usr, ok := auth.UserFromContext(request.Context())
	if !ok {
		http.Error(response, "Cannot access this route without login", http.StatusForbidden)
		return
	}

	if err := request.ParseForm(); err != nil {
		http.Error(response, err.Error(), http.StatusBadRequest)
		return
	}

	short := chi.URLParam(request, "id")
	err := r.svc.UpdateUserURL(request.Context(), usr.ID, short, request.PostFormValue("longURL"))
	if errors.Is(err, models.ErrNotOwned) {
		http.Error(response, "There is no url with this id for this user", http.StatusForbidden)
		return
	}
	if err != nil {
		logger.Log.Debugln("Error calling the `r.svc.UpdateUserURL()`: ", zap.Error(err))
		response.WriteHeader(http.StatusInternalServerError)
		return
	}

	http.Redirect(response, request, "/urls", http.StatusSeeOther)
}

// PostUrlsIDDelete removes an owned record and returns to the list.
func (r *Router) PostUrlsIDDelete(response http.ResponseWriter, request *http.Request) {
	usr, ok := auth.UserFromContext(request.Context())
	if !ok {
		http.Error(response, "Cannot access this route without login", http.StatusForbidden)
		return
	}

	short := chi.URLParam(request, "id")
	err := r.svc.DeleteUserURL(request.Context(), usr.ID, short)
	if errors.Is(err, models.ErrNotOwned) {
		http.Error(response, "There is no url with this id for this user", http.StatusForbidden)
		return
	}
	if err != nil {
		logger.Log.Debugln("Error calling the `r.svc.DeleteUserURL()`: ", zap.Error(err))
		response.WriteHeader(http.StatusInternalServerError)
		return
	}

	http.Redirect(response, request, "/urls", http.StatusSeeOther)
}

// GetUShort is the public resolve path: anyone holding a short link is
// redirected to the original URL, no authentication involved.
func (r *Router) GetUShort(response http.ResponseWriter, request *http.Request) {
	short := chi.URLParam(request, "id")
	original, err := r.svc.ResolveShort(request.Context(), short)
	if errors.Is(err, models.ErrNotFound) {
		http.Error(response, "The id does not exist", http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Log.Debugln("Error calling the `r.svc.ResolveShort()`: ", zap.Error(err))
		response.WriteHeader(http.StatusInternalServerError)
		return
	}

	http.Redirect(response, request, original, http.StatusTemporaryRedirect)
}

// GetPing reports storage health.
func (r *Router) GetPing(response http.ResponseWriter, request *http.Request) {
	if err := r.svc.Ping(request.Context()); err != nil {
		logger.Log.Debugln("Error calling the `r.svc.Ping()`: ", zap.Error(err))
		response.WriteHeader(http.StatusInternalServerError)
		return
	}

	response.WriteHeader(http.StatusOK)
}

// GetAPIInternalStats returns service counters to clients inside the
// trusted subnet only.
func (r *Router) GetAPIInternalStats(response http.ResponseWriter, request *http.Request) {
	if !r.ipChecker.Enabled() {
		response.WriteHeader(http.StatusForbidden)
		return
	}

	clientIP, err := r.ipChecker.ClientIP(request)
	if err != nil || !r.ipChecker.Check(clientIP) {
		response.WriteHeader(http.StatusForbidden)
		return
	}

	stats, err := r.svc.InternalStats(request.Context())
	if err != nil {
		logger.Log.Debugln("Error calling the `r.svc.InternalStats()`: ", zap.Error(err))
		response.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSON(response, http.StatusOK, stats)
}

func writePage(response http.ResponseWriter, page string) {
	response.Header().Set("Content-Type", "text/html; charset=utf-8")
	response.WriteHeader(http.StatusOK)
	_, _ = response.Write([]byte(page))
}

func writeJSON(response http.ResponseWriter, status int, payload interface{}) {
	response.Header().Set("Content-Type", "application/json")
	response.WriteHeader(status)
	if err := json.NewEncoder(response).Encode(payload); err != nil {
		logger.Log.Debugln("Error encoding the response: ", zap.Error(err))
	}
}

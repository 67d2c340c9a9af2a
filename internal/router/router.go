// Package router maps the HTTP surface of the shortener onto the service
// layer. Pages are server-rendered; failures are plain-text bodies.
package router

import (
	"context"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	validator "github.com/go-playground/validator/v10"

	"github.com/patric-chuzhbe/tinyapp/internal/logger"
	"github.com/patric-chuzhbe/tinyapp/internal/models"
	"github.com/patric-chuzhbe/tinyapp/internal/user"
)

type accountService interface {
	Register(ctx context.Context, email, password string) (*user.User, error)

	Authenticate(ctx context.Context, email, password string) (*user.User, error)

	FindByID(ctx context.Context, userID string) (*user.User, bool, error)
}

type urlsService interface {
	CreateURL(ctx context.Context, who models.Identity, longURL string) (*models.ShortURL, error)

	GetURLDetails(ctx context.Context, who models.Identity, shortID string) (*models.ShortURL, error)

	UpdateURL(ctx context.Context, who models.Identity, shortID, longURL string) error

	DeleteURL(ctx context.Context, who models.Identity, shortID string) error

	ListUserURLs(ctx context.Context, who models.Identity) (models.UserUrls, error)

	AllURLs(ctx context.Context) (map[string]*models.ShortURL, error)
}

type redirectService interface {
	PrepareRedirect(ctx context.Context, who models.Identity, shortID string) (*models.ShortURL, error)

	Visit(ctx context.Context, sessionID, shortID string) (*models.ShortURL, error)
}

type appService interface {
	accountService
	urlsService
	redirectService
}

type authenticator interface {
	ResolveIdentity(h http.Handler) http.Handler

	EnsureSession(response http.ResponseWriter, request *http.Request) (string, error)

	Login(response http.ResponseWriter, request *http.Request, userID string) error

	Logout(ctx context.Context) error
}

// Router holds the dependencies of the HTTP handlers.
type Router struct {
	service  appService
	auth     authenticator
	views    *template.Template
	validate *validator.Validate
}

// New creates a Router. The page templates are parsed once here.
func New(svc appService, auth authenticator) (*Router, error) {
	views, err := parseViews()
	if err != nil {
		return nil, err
	}

	return &Router{
		service:  svc,
		auth:     auth,
		views:    views,
		validate: validator.New(),
	}, nil
}

// Handler builds the chi mux with all routes and middlewares.
func (r *Router) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		logger.WithLoggingHTTPMiddleware,
		middleware.Recoverer,
		middleware.Compress(5, "text/html", "text/plain", "application/json"),
		r.auth.ResolveIdentity,
	)

	router.Get(`/`, r.GetRoot)

	router.Get(`/register`, r.GetRegister)
	router.Post(`/register`, r.PostRegister)
	router.Get(`/login`, r.GetLogin)
	router.Post(`/login`, r.PostLogin)
	router.Post(`/logout`, r.PostLogout)

	router.Get(`/urls.json`, r.GetUrlsjson)
	router.Get(`/urls`, r.GetUrls)
	router.Post(`/urls`, r.PostUrls)
	router.Get(`/urls/new`, r.GetUrlsnew)
	router.Get(`/urls/{id}`, r.GetUrlsid)
	router.Post(`/urls/{id}`, r.PutUrlsid)
	router.Put(`/urls/{id}`, r.PutUrlsid)
	router.Post(`/urls/{id}/delete`, r.DeleteUrlsid)
	router.Delete(`/urls/{id}/delete`, r.DeleteUrlsid)

	router.Get(`/u/{id}`, r.GetRedirecttolongurl)

	return router
}

// Package service implements the account, URL and redirect use cases on top
// of the storage layer. It owns every validation and authorization decision;
// the router only translates its errors into HTTP statuses.
package service

import (
	"context"

	"github.com/patric-chuzhbe/tinyapp/internal/models"
	"github.com/patric-chuzhbe/tinyapp/internal/user"
)

type userKeeper interface {
	CreateUser(ctx context.Context, usr *user.User) (string, error)

	GetUserByID(ctx context.Context, userID string) (*user.User, bool, error)

	GetUserByEmail(ctx context.Context, email string) (*user.User, bool, error)

	GetNumberOfUsers(ctx context.Context) (int64, error)
}

type urlsKeeper interface {
	CreateURL(ctx context.Context, longURL, ownerID string) (*models.ShortURL, error)

	GetURL(ctx context.Context, shortID string) (*models.ShortURL, bool, error)

	UpdateURL(ctx context.Context, shortID, longURL string) error

	DeleteURL(ctx context.Context, shortID string) error

	GetUserUrls(ctx context.Context, ownerID string) (models.UserUrls, error)

	GetAllURLs(ctx context.Context) (map[string]*models.ShortURL, error)

	GetNumberOfShortenedURLs(ctx context.Context) (int64, error)
}

type passwordHasher interface {
	Hash(password string) (string, error)

	Verify(hash, password string) bool
}

type visitTracker interface {
	Track(ctx context.Context, sessionID, shortID string) (*models.ShortURL, error)
}

// Service is the application core shared by all HTTP handlers.
type Service struct {
	users   userKeeper
	urls    urlsKeeper
	hasher  passwordHasher
	tracker visitTracker
}

// New creates a Service over the given stores.
func New(
	users userKeeper,
	urls urlsKeeper,
	hasher passwordHasher,
	tracker visitTracker,
) *Service {
	return &Service{
		users:   users,
		urls:    urls,
		hasher:  hasher,
		tracker: tracker,
	}
}

// GetInternalStats returns the number of registered users and stored URLs.
func (s *Service) GetInternalStats(ctx context.Context) (models.InternalStats, error) {
	urls, err := s.urls.GetNumberOfShortenedURLs(ctx)
	if err != nil {
		return models.InternalStats{}, err
	}

	users, err := s.users.GetNumberOfUsers(ctx)
	if err != nil {
		return models.InternalStats{}, err
	}

	return models.InternalStats{
		URLs:  urls,
		Users: users,
	}, nil
}

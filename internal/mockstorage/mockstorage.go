// Package mockstorage provides testify-based mocks of the user and URL
// storage roles. They are used to simulate storage failures in service and
// router tests.
package mockstorage

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/patric-chuzhbe/tinyapp/internal/models"
	"github.com/patric-chuzhbe/tinyapp/internal/user"
)

// UserStorageMock mocks the user storage.
type UserStorageMock struct {
	mock.Mock
}

// CreateUser mocks storing a new user.
func (m *UserStorageMock) CreateUser(ctx context.Context, usr *user.User) (string, error) {
	args := m.Called(ctx, usr)
	return args.String(0), args.Error(1)
}

// GetUserByID mocks the lookup of a user by id.
func (m *UserStorageMock) GetUserByID(ctx context.Context, userID string) (*user.User, bool, error) {
	args := m.Called(ctx, userID)
	usr, _ := args.Get(0).(*user.User)
	return usr, args.Bool(1), args.Error(2)
}

// GetUserByEmail mocks the lookup of a user by email.
func (m *UserStorageMock) GetUserByEmail(ctx context.Context, email string) (*user.User, bool, error) {
	args := m.Called(ctx, email)
	usr, _ := args.Get(0).(*user.User)
	return usr, args.Bool(1), args.Error(2)
}

// GetNumberOfUsers mocks the user counter.
func (m *UserStorageMock) GetNumberOfUsers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// URLStorageMock mocks the URL storage.
type URLStorageMock struct {
	mock.Mock
}

// CreateURL mocks storing a new short URL.
func (m *URLStorageMock) CreateURL(ctx context.Context, longURL, ownerID string) (*models.ShortURL, error) {
	args := m.Called(ctx, longURL, ownerID)
	record, _ := args.Get(0).(*models.ShortURL)
	return record, args.Error(1)
}

// GetURL mocks the lookup of a short URL.
func (m *URLStorageMock) GetURL(ctx context.Context, shortID string) (*models.ShortURL, bool, error) {
	args := m.Called(ctx, shortID)
	record, _ := args.Get(0).(*models.ShortURL)
	return record, args.Bool(1), args.Error(2)
}

// UpdateURL mocks changing the long URL.
func (m *URLStorageMock) UpdateURL(ctx context.Context, shortID, longURL string) error {
	args := m.Called(ctx, shortID, longURL)
	return args.Error(0)
}

// DeleteURL mocks removing a short URL.
func (m *URLStorageMock) DeleteURL(ctx context.Context, shortID string) error {
	args := m.Called(ctx, shortID)
	return args.Error(0)
}

// GetUserUrls mocks the owner listing.
func (m *URLStorageMock) GetUserUrls(ctx context.Context, ownerID string) (models.UserUrls, error) {
	args := m.Called(ctx, ownerID)
	urls, _ := args.Get(0).(models.UserUrls)
	return urls, args.Error(1)
}

// GetAllURLs mocks the full snapshot.
func (m *URLStorageMock) GetAllURLs(ctx context.Context) (map[string]*models.ShortURL, error) {
	args := m.Called(ctx)
	urls, _ := args.Get(0).(map[string]*models.ShortURL)
	return urls, args.Error(1)
}

// GetNumberOfShortenedURLs mocks the URL counter.
func (m *URLStorageMock) GetNumberOfShortenedURLs(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

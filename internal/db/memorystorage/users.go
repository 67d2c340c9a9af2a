// Package memorystorage keeps users, short URLs and sessions in process memory.
// Every storage type guards its state with a single mutex, so each call
// observes and mutates the state atomically.
package memorystorage

import (
	"context"
	"sync"

	"github.com/rs/xid"

	"github.com/patric-chuzhbe/tinyapp/internal/models"
	"github.com/patric-chuzhbe/tinyapp/internal/user"
)

// UserStorage is the in-memory identity store.
type UserStorage struct {
	mu      sync.Mutex
	byID    map[string]*user.User
	byEmail map[string]string
}

// NewUserStorage creates an empty UserStorage.
func NewUserStorage() *UserStorage {
	return &UserStorage{
		byID:    map[string]*user.User{},
		byEmail: map[string]string{},
	}
}

// CreateUser assigns a fresh id to usr and stores it.
// It returns models.ErrDuplicateEmail if the email is already registered,
// in which case nothing is stored.
func (s *UserStorage) CreateUser(ctx context.Context, usr *user.User) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[usr.Email]; exists {
		return "", models.ErrDuplicateEmail
	}

	stored := *usr
	stored.ID = xid.New().String()
	s.byID[stored.ID] = &stored
	s.byEmail[stored.Email] = stored.ID

	return stored.ID, nil
}

// GetUserByID looks a user up by id.
func (s *UserStorage) GetUserByID(ctx context.Context, userID string) (*user.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	usr, found := s.byID[userID]
	if !found {
		return nil, false, nil
	}
	result := *usr

	return &result, true, nil
}

// GetUserByEmail looks a user up by exact email.
func (s *UserStorage) GetUserByEmail(ctx context.Context, email string) (*user.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID, found := s.byEmail[email]
	if !found {
		return nil, false, nil
	}
	result := *s.byID[userID]

	return &result, true, nil
}

// GetNumberOfUsers returns the number of registered users.
func (s *UserStorage) GetNumberOfUsers(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return int64(len(s.byID)), nil
}

package service

import (
	"context"
	"fmt"

	"github.com/patric-chuzhbe/tinyapp/internal/models"
	"github.com/patric-chuzhbe/tinyapp/internal/user"
)

// Register creates an account. The email must be unused; the password is
// stored only as a hash.
func (s *Service) Register(ctx context.Context, email, password string) (*user.User, error) {
	if email == "" || password == "" {
		return nil, models.ErrInvalidInput
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("in internal/service/identity.go/Register(): error while `s.hasher.Hash()` calling: %w", err)
	}

	usr := &user.User{
		Email:        email,
		PasswordHash: hash,
	}
	userID, err := s.users.CreateUser(ctx, usr)
	if err != nil {
		return nil, fmt.Errorf("in internal/service/identity.go/Register(): error while `s.users.CreateUser()` calling: %w", err)
	}
	usr.ID = userID

	return usr, nil
}

// FindByEmail looks a user up by exact email.
func (s *Service) FindByEmail(ctx context.Context, email string) (*user.User, bool, error) {
	return s.users.GetUserByEmail(ctx, email)
}

// FindByID looks a user up by id.
func (s *Service) FindByID(ctx context.Context, userID string) (*user.User, bool, error) {
	return s.users.GetUserByID(ctx, userID)
}

// VerifyPassword reports whether password matches the stored hash of usr.
func (s *Service) VerifyPassword(usr *user.User, password string) bool {
	return s.hasher.Verify(usr.PasswordHash, password)
}

// Authenticate checks the login credentials and returns the matching user.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*user.User, error) {
	if email == "" || password == "" {
		return nil, models.ErrInvalidInput
	}

	usr, found, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("in internal/service/identity.go/Authenticate(): error while `s.users.GetUserByEmail()` calling: %w", err)
	}
	if !found {
		return nil, models.ErrUnknownEmail
	}

	if !s.VerifyPassword(usr, password) {
		return nil, models.ErrBadCredentials
	}

	return usr, nil
}

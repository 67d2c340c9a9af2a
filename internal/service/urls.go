package service

import (
	"context"
	"fmt"

	"github.com/patric-chuzhbe/tinyapp/internal/guard"
	"github.com/patric-chuzhbe/tinyapp/internal/models"
	"github.com/patric-chuzhbe/tinyapp/internal/shortid"
)

// CreateURL stores a new short URL owned by the caller.
func (s *Service) CreateURL(ctx context.Context, who models.Identity, longURL string) (*models.ShortURL, error) {
	if !who.Authenticated {
		return nil, models.ErrAnonymous
	}
	if longURL == "" {
		return nil, models.ErrInvalidInput
	}

	_, found, err := s.users.GetUserByID(ctx, who.UserID)
	if err != nil {
		return nil, fmt.Errorf("in internal/service/urls.go/CreateURL(): error while `s.users.GetUserByID()` calling: %w", err)
	}
	if !found {
		return nil, models.ErrAnonymous
	}

	record, err := s.urls.CreateURL(ctx, longURL, who.UserID)
	if err != nil {
		return nil, fmt.Errorf("in internal/service/urls.go/CreateURL(): error while `s.urls.CreateURL()` calling: %w", err)
	}

	return record, nil
}

// GetURLDetails returns the record with its analytics. Only the owner may
// see it.
func (s *Service) GetURLDetails(ctx context.Context, who models.Identity, shortID string) (*models.ShortURL, error) {
	decision, err := s.decide(ctx, who, shortID, guard.Decide)
	if err != nil {
		return nil, err
	}

	return decision.Record, nil
}

// UpdateURL points an owned short URL at a new long URL.
func (s *Service) UpdateURL(ctx context.Context, who models.Identity, shortID, longURL string) error {
	if _, err := s.decide(ctx, who, shortID, guard.Decide); err != nil {
		return err
	}
	if longURL == "" {
		return models.ErrInvalidInput
	}

	if err := s.urls.UpdateURL(ctx, shortID, longURL); err != nil {
		return fmt.Errorf("in internal/service/urls.go/UpdateURL(): error while `s.urls.UpdateURL()` calling: %w", err)
	}

	return nil
}

// DeleteURL removes an owned short URL together with its visit history.
func (s *Service) DeleteURL(ctx context.Context, who models.Identity, shortID string) error {
	if _, err := s.decide(ctx, who, shortID, guard.Decide); err != nil {
		return err
	}

	if err := s.urls.DeleteURL(ctx, shortID); err != nil {
		return fmt.Errorf("in internal/service/urls.go/DeleteURL(): error while `s.urls.DeleteURL()` calling: %w", err)
	}

	return nil
}

// ListUserURLs returns the short URLs owned by the caller.
func (s *Service) ListUserURLs(ctx context.Context, who models.Identity) (models.UserUrls, error) {
	if !who.Authenticated {
		return nil, models.ErrAnonymous
	}

	return s.urls.GetUserUrls(ctx, who.UserID)
}

// AllURLs returns every stored record.
func (s *Service) AllURLs(ctx context.Context) (map[string]*models.ShortURL, error) {
	return s.urls.GetAllURLs(ctx)
}

func (s *Service) decide(
	ctx context.Context,
	who models.Identity,
	shortID string,
	decide func(models.Identity, *models.ShortURL) guard.Decision,
) (guard.Decision, error) {
	record, err := s.lookup(ctx, shortID)
	if err != nil {
		return guard.Decision{}, err
	}

	decision := decide(who, record)

	return decision, decision.Err()
}

// lookup returns nil for absent records and for ids that cannot exist.
func (s *Service) lookup(ctx context.Context, shortID string) (*models.ShortURL, error) {
	if !shortid.IsValid(shortID) {
		return nil, nil
	}

	record, found, err := s.urls.GetURL(ctx, shortID)
	if err != nil {
		return nil, fmt.Errorf("in internal/service/urls.go/lookup(): error while `s.urls.GetURL()` calling: %w", err)
	}
	if !found {
		return nil, nil
	}

	return record, nil
}

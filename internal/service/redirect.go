package service

import (
	"context"
	"fmt"

	"github.com/patric-chuzhbe/tinyapp/internal/guard"
	"github.com/patric-chuzhbe/tinyapp/internal/models"
)

// PrepareRedirect checks that the caller may follow shortID. Anonymous
// callers may follow any existing URL; logged in users only their own.
func (s *Service) PrepareRedirect(ctx context.Context, who models.Identity, shortID string) (*models.ShortURL, error) {
	decision, err := s.decide(ctx, who, shortID, guard.DecideRedirect)
	if err != nil {
		return nil, err
	}

	return decision.Record, nil
}

// Visit records a redirect of shortID from the session and returns the
// updated record.
func (s *Service) Visit(ctx context.Context, sessionID, shortID string) (*models.ShortURL, error) {
	record, err := s.tracker.Track(ctx, sessionID, shortID)
	if err != nil {
		return nil, fmt.Errorf("in internal/service/redirect.go/Visit(): error while `s.tracker.Track()` calling: %w", err)
	}

	return record, nil
}

// Package visits counts redirects of short URLs, telling first-time visitors
// of a URL apart from returning ones by a per-session visitor token.
package visits

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/patric-chuzhbe/tinyapp/internal/models"
)

type visitorTokenKeeper interface {
	GetVisitorToken(ctx context.Context, sessionID, shortID string) (string, bool, error)

	SetVisitorTokenIfAbsent(
		ctx context.Context,
		sessionID,
		shortID,
		token string,
	) (string, bool, error)
}

type visitRecorder interface {
	RecordVisit(
		ctx context.Context,
		shortID string,
		visit models.Visit,
		unique bool,
	) (*models.ShortURL, error)
}

// Tracker records one visit per resolved redirect.
type Tracker struct {
	sessions visitorTokenKeeper
	urls     visitRecorder
	now      func() time.Time
	newToken func() string
}

// Option customizes a Tracker.
type Option func(*Tracker)

// WithClock replaces the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

// WithTokenSource replaces the visitor token generator.
func WithTokenSource(newToken func() string) Option {
	return func(t *Tracker) {
		t.newToken = newToken
	}
}

// New creates a Tracker using the wall clock and random UUID tokens unless
// overridden by options.
func New(sessions visitorTokenKeeper, urls visitRecorder, options ...Option) *Tracker {
	tracker := &Tracker{
		sessions: sessions,
		urls:     urls,
		now:      time.Now,
		newToken: func() string { return uuid.New().String() },
	}
	for _, option := range options {
		option(tracker)
	}

	return tracker
}

// Track records a visit of shortID by the session. When the session has no
// visitor token for shortID yet, one is minted and stored before the visit is
// appended, and the visit counts as unique.
func (t *Tracker) Track(ctx context.Context, sessionID, shortID string) (*models.ShortURL, error) {
	token, found, err := t.sessions.GetVisitorToken(ctx, sessionID, shortID)
	if err != nil {
		return nil, fmt.Errorf("in internal/visits/visits.go/Track(): error while `t.sessions.GetVisitorToken()` calling: %w", err)
	}

	unique := false
	if !found {
		token, unique, err = t.sessions.SetVisitorTokenIfAbsent(ctx, sessionID, shortID, t.newToken())
		if err != nil {
			return nil, fmt.Errorf("in internal/visits/visits.go/Track(): error while `t.sessions.SetVisitorTokenIfAbsent()` calling: %w", err)
		}
	}

	record, err := t.urls.RecordVisit(
		ctx,
		shortID,
		models.Visit{
			VisitorToken: token,
			Timestamp:    t.now(),
		},
		unique,
	)
	if err != nil {
		return nil, fmt.Errorf("in internal/visits/visits.go/Track(): error while `t.urls.RecordVisit()` calling: %w", err)
	}

	return record, nil
}

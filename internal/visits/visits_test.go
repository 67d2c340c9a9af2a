package visits

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patric-chuzhbe/tinyapp/internal/db/memorystorage"
	"github.com/patric-chuzhbe/tinyapp/internal/models"
	"github.com/patric-chuzhbe/tinyapp/internal/shortid"
)

func setupTracker(t *testing.T) (*Tracker, *memorystorage.SessionStorage, *memorystorage.URLStorage, time.Time) {
	t.Helper()

	sessions := memorystorage.NewSessionStorage()
	urls := memorystorage.NewURLStorage(shortid.Generate)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	counter := 0
	tracker := New(
		sessions,
		urls,
		WithClock(func() time.Time { return now }),
		WithTokenSource(func() string {
			counter++
			return fmt.Sprintf("token-%d", counter)
		}),
	)

	return tracker, sessions, urls, now
}

func TestTrack(t *testing.T) {
	ctx := context.Background()
	tracker, sessions, urls, now := setupTracker(t)

	record, err := urls.CreateURL(ctx, "http://example.com", "userRandomID")
	require.NoError(t, err)

	firstSession, err := sessions.CreateSession(ctx)
	require.NoError(t, err)
	secondSession, err := sessions.CreateSession(ctx)
	require.NoError(t, err)

	t.Run("first visit of a session is unique", func(t *testing.T) {
		updated, err := tracker.Track(ctx, firstSession, record.ShortID)
		require.NoError(t, err)
		assert.Equal(t, 1, updated.VisitCount)
		assert.Equal(t, 1, updated.UniqueVisitorCount)
		assert.Equal(t, []models.Visit{{VisitorToken: "token-1", Timestamp: now}}, updated.Visitors)

		token, found, err := sessions.GetVisitorToken(ctx, firstSession, record.ShortID)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "token-1", token)
	})

	t.Run("returning visit reuses the token", func(t *testing.T) {
		updated, err := tracker.Track(ctx, firstSession, record.ShortID)
		require.NoError(t, err)
		assert.Equal(t, 2, updated.VisitCount)
		assert.Equal(t, 1, updated.UniqueVisitorCount)
		assert.Equal(t, "token-1", updated.Visitors[1].VisitorToken)
	})

	t.Run("another session is another visitor", func(t *testing.T) {
		updated, err := tracker.Track(ctx, secondSession, record.ShortID)
		require.NoError(t, err)
		assert.Equal(t, 3, updated.VisitCount)
		assert.Equal(t, 2, updated.UniqueVisitorCount)
		assert.Equal(t, "token-2", updated.Visitors[2].VisitorToken)
	})

	t.Run("counters match the visitor log", func(t *testing.T) {
		stored, _, err := urls.GetURL(ctx, record.ShortID)
		require.NoError(t, err)
		assert.Equal(t, len(stored.Visitors), stored.VisitCount)

		distinct := map[string]struct{}{}
		for _, visit := range stored.Visitors {
			require.NotEmpty(t, visit.VisitorToken)
			distinct[visit.VisitorToken] = struct{}{}
		}
		assert.Equal(t, len(distinct), stored.UniqueVisitorCount)
	})

	t.Run("tokens are per URL", func(t *testing.T) {
		other, err := urls.CreateURL(ctx, "http://www.google.com", "userRandomID")
		require.NoError(t, err)

		updated, err := tracker.Track(ctx, firstSession, other.ShortID)
		require.NoError(t, err)
		assert.Equal(t, 1, updated.UniqueVisitorCount)
		assert.Equal(t, "token-3", updated.Visitors[0].VisitorToken)
	})

	t.Run("unknown session", func(t *testing.T) {
		_, err := tracker.Track(ctx, "unknown", record.ShortID)
		assert.ErrorIs(t, err, models.ErrSessionNotFound)
	})

	t.Run("deleted record", func(t *testing.T) {
		require.NoError(t, urls.DeleteURL(ctx, record.ShortID))

		_, err := tracker.Track(ctx, firstSession, record.ShortID)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

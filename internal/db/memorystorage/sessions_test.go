package memorystorage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patric-chuzhbe/tinyapp/internal/models"
)

func TestSessionStorage(t *testing.T) {
	ctx := context.Background()
	theStorage := NewSessionStorage()

	sessionID, err := theStorage.CreateSession(ctx)
	require.NoError(t, err)

	session, found, err := theStorage.GetSession(ctx, sessionID)
	require.NoError(t, err)
	require.True(t, found)
	_, loggedIn := session.User()
	assert.False(t, loggedIn)

	require.NoError(t, theStorage.SetSessionUser(ctx, sessionID, "userRandomID"))
	session, _, err = theStorage.GetSession(ctx, sessionID)
	require.NoError(t, err)
	userID, loggedIn := session.User()
	assert.True(t, loggedIn)
	assert.Equal(t, "userRandomID", userID)

	token, stored, err := theStorage.SetVisitorTokenIfAbsent(ctx, sessionID, "b2xVn2", "first")
	require.NoError(t, err)
	assert.True(t, stored)
	assert.Equal(t, "first", token)

	token, stored, err = theStorage.SetVisitorTokenIfAbsent(ctx, sessionID, "b2xVn2", "second")
	require.NoError(t, err)
	assert.False(t, stored)
	assert.Equal(t, "first", token)

	require.NoError(t, theStorage.ClearSessionUser(ctx, sessionID))
	session, _, err = theStorage.GetSession(ctx, sessionID)
	require.NoError(t, err)
	_, loggedIn = session.User()
	assert.False(t, loggedIn)

	token, found, err = theStorage.GetVisitorToken(ctx, sessionID, "b2xVn2")
	require.NoError(t, err)
	assert.True(t, found, "visitor tokens survive logout")
	assert.Equal(t, "first", token)

	_, found, err = theStorage.GetSession(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, found)

	assert.ErrorIs(t, theStorage.SetSessionUser(ctx, "unknown", "userRandomID"), models.ErrSessionNotFound)
	_, _, err = theStorage.GetVisitorToken(ctx, "unknown", "b2xVn2")
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}

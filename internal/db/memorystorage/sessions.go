package memorystorage

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/patric-chuzhbe/tinyapp/internal/models"
)

// SessionStorage is the in-memory server-side session store.
type SessionStorage struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
}

// NewSessionStorage creates an empty SessionStorage.
func NewSessionStorage() *SessionStorage {
	return &SessionStorage{
		sessions: map[string]*models.Session{},
	}
}

// CreateSession starts a new anonymous session and returns its id.
func (s *SessionStorage) CreateSession(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessionID := uuid.New().String()
	s.sessions[sessionID] = models.NewSession(sessionID)

	return sessionID, nil
}

// GetSession returns a copy of the session, if it is live.
func (s *SessionStorage) GetSession(ctx context.Context, sessionID string) (*models.Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, found := s.sessions[sessionID]
	if !found {
		return nil, false, nil
	}

	return session.Clone(), true, nil
}

// SetSessionUser logs the session in as userID.
func (s *SessionStorage) SetSessionUser(ctx context.Context, sessionID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, found := s.sessions[sessionID]
	if !found {
		return models.ErrSessionNotFound
	}
	session.SetUser(userID)

	return nil
}

// ClearSessionUser logs the session out, keeping its visitor tokens.
func (s *SessionStorage) ClearSessionUser(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, found := s.sessions[sessionID]
	if !found {
		return models.ErrSessionNotFound
	}
	session.ClearUser()

	return nil
}

// GetVisitorToken returns the visitor token the session holds for shortID.
func (s *SessionStorage) GetVisitorToken(ctx context.Context, sessionID, shortID string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, found := s.sessions[sessionID]
	if !found {
		return "", false, models.ErrSessionNotFound
	}
	token, found := session.VisitorTokens[shortID]

	return token, found, nil
}

// SetVisitorTokenIfAbsent stores token as the visitor token of the session for
// shortID unless one is already present. It returns the token in effect and
// whether it was stored by this call.
func (s *SessionStorage) SetVisitorTokenIfAbsent(
	ctx context.Context,
	sessionID,
	shortID,
	token string,
) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, found := s.sessions[sessionID]
	if !found {
		return "", false, models.ErrSessionNotFound
	}
	if existing, found := session.VisitorTokens[shortID]; found {
		return existing, false, nil
	}
	session.VisitorTokens[shortID] = token

	return token, true, nil
}

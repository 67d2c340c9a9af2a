// Package models holds the data types shared between the storage, service
// and router layers.
package models

import "time"

// Visit is a single resolved redirect of a short URL.
type Visit struct {
	VisitorToken string    `json:"visitorToken"`
	Timestamp    time.Time `json:"timestamp"`
}

// ShortURL is a short identifier mapped to a long URL, together with its
// owner and visit analytics.
//
// VisitCount always equals len(Visitors) and UniqueVisitorCount equals the
// number of distinct visitor tokens in Visitors.
type ShortURL struct {
	ShortID            string  `json:"-"`
	LongURL            string  `json:"longURL"`
	OwnerID            string  `json:"userID"`
	VisitCount         int     `json:"visitCount"`
	UniqueVisitorCount int     `json:"uniqueVisitorCount"`
	Visitors           []Visit `json:"visitors"`
}

// Clone returns a deep copy, so callers never share the visitors slice with
// the store.
func (u *ShortURL) Clone() *ShortURL {
	result := *u
	result.Visitors = make([]Visit, len(u.Visitors))
	copy(result.Visitors, u.Visitors)

	return &result
}

// UserURL is the owner-scoped projection of a ShortURL used for listings.
type UserURL struct {
	LongURL            string `json:"longURL"`
	OwnerID            string `json:"userID"`
	VisitCount         int    `json:"visitCount"`
	UniqueVisitorCount int    `json:"uniqueVisitorCount"`
}

// UserUrls maps short ids to their projections.
type UserUrls map[string]UserURL

// Identity is the caller identity resolved for a single request.
type Identity struct {
	UserID        string
	Authenticated bool
}

// AnonymousIdentity is the identity of a caller without a logged in session.
func AnonymousIdentity() Identity {
	return Identity{}
}

// AuthenticatedIdentity is the identity of a logged in user.
func AuthenticatedIdentity(userID string) Identity {
	return Identity{UserID: userID, Authenticated: true}
}

// Session binds an opaque client-held token to an optional user and to the
// per-URL visitor tokens of that browser.
type Session struct {
	ID            string
	userID        string
	authenticated bool
	VisitorTokens map[string]string
}

// NewSession creates an anonymous session with no visitor tokens.
func NewSession(id string) *Session {
	return &Session{
		ID:            id,
		VisitorTokens: map[string]string{},
	}
}

// User returns the logged in user id, if any.
func (s *Session) User() (string, bool) {
	return s.userID, s.authenticated
}

// SetUser marks the session as logged in as userID.
func (s *Session) SetUser(userID string) {
	s.userID = userID
	s.authenticated = true
}

// ClearUser logs the session out. Visitor tokens are kept.
func (s *Session) ClearUser() {
	s.userID = ""
	s.authenticated = false
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	result := *s
	result.VisitorTokens = make(map[string]string, len(s.VisitorTokens))
	for shortID, token := range s.VisitorTokens {
		result.VisitorTokens[shortID] = token
	}

	return &result
}

// InternalStats holds store counters.
type InternalStats struct {
	URLs  int64 `json:"urls"`
	Users int64 `json:"users"`
}

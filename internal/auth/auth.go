// Package auth resolves the caller identity of HTTP requests. A JWT signed
// cookie carries an opaque session id; the session in turn may name a logged
// in user.
package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"github.com/patric-chuzhbe/tinyapp/internal/logger"
	"github.com/patric-chuzhbe/tinyapp/internal/models"
	"github.com/patric-chuzhbe/tinyapp/internal/user"
)

type sessionKeeper interface {
	CreateSession(ctx context.Context) (string, error)
	GetSession(ctx context.Context, sessionID string) (*models.Session, bool, error)
	SetSessionUser(ctx context.Context, sessionID, userID string) error
	ClearSessionUser(ctx context.Context, sessionID string) error
}

type userFinder interface {
	GetUserByID(ctx context.Context, userID string) (*user.User, bool, error)
}

// Auth handles session cookies and the per-request identity.
type Auth struct {
	sessions sessionKeeper
	users    userFinder

	// sessionCookieName is the name of the cookie used to store the JWT.
	sessionCookieName string

	// sessionSigningKey is the key used to sign JWTs.
	sessionSigningKey []byte
}

// Claims represents the JWT claims stored in the session cookie.
type Claims struct {
	jwt.RegisteredClaims
	SessionID string `json:"session_id"`
}

// ContextKey is a custom type for storing values in context to avoid collisions.
type ContextKey string

const (
	// UserIDKey holds the id of the logged in user, if any.
	UserIDKey ContextKey = "userID"

	// SessionIDKey holds the id of a valid session, if the request carried one.
	SessionIDKey ContextKey = "sessionID"
)

// New creates a new Auth.
func New(
	sessions sessionKeeper,
	users userFinder,
	sessionCookieName string,
	sessionSigningKey []byte,
) *Auth {
	return &Auth{
		sessions:          sessions,
		users:             users,
		sessionCookieName: sessionCookieName,
		sessionSigningKey: sessionSigningKey,
	}
}

// ResolveIdentity is an HTTP middleware that stores the session id and the
// logged in user id in the request context. Requests without a usable
// session pass through as anonymous.
func (a *Auth) ResolveIdentity(h http.Handler) http.Handler {
	middleware := func(response http.ResponseWriter, request *http.Request) {
		cookie, err := request.Cookie(a.sessionCookieName)
		if err != nil {
			h.ServeHTTP(response, request)

			return
		}

		sessionID, ok := a.parseSessionID(cookie.Value)
		if !ok {
			h.ServeHTTP(response, request)

			return
		}

		ctx := request.Context()
		session, found, err := a.sessions.GetSession(ctx, sessionID)
		if err != nil {
			logger.Log.Debugln("Error calling the `a.sessions.GetSession()`: ", zap.Error(err))
			response.WriteHeader(http.StatusInternalServerError)

			return
		}
		if !found {
			h.ServeHTTP(response, request)

			return
		}

		ctx = context.WithValue(ctx, SessionIDKey, session.ID)
		if userID, ok := a.userOf(ctx, session); ok {
			ctx = context.WithValue(ctx, UserIDKey, userID)
		}

		h.ServeHTTP(response, request.WithContext(ctx))
	}

	return http.HandlerFunc(middleware)
}

// Resolve maps a cookie value to the id of the logged in user. Absent,
// malformed, badly signed or unknown tokens resolve to ("", false).
func (a *Auth) Resolve(ctx context.Context, token string) (string, bool) {
	sessionID, ok := a.parseSessionID(token)
	if !ok {
		return "", false
	}

	session, found, err := a.sessions.GetSession(ctx, sessionID)
	if err != nil || !found {
		return "", false
	}

	return a.userOf(ctx, session)
}

// EnsureSession returns the session of the request, creating one and
// setting its cookie when the request has none.
func (a *Auth) EnsureSession(response http.ResponseWriter, request *http.Request) (string, error) {
	if sessionID, ok := SessionIDFromContext(request.Context()); ok {
		return sessionID, nil
	}

	sessionID, err := a.sessions.CreateSession(request.Context())
	if err != nil {
		return "", fmt.Errorf("in internal/auth/auth.go/EnsureSession(): error while `a.sessions.CreateSession()` calling: %w", err)
	}

	JWTString, err := a.buildJWTString(&Claims{SessionID: sessionID})
	if err != nil {
		return "", fmt.Errorf("in internal/auth/auth.go/EnsureSession(): error while `a.buildJWTString()` calling: %w", err)
	}

	http.SetCookie(
		response,
		&http.Cookie{
			Name:     a.sessionCookieName,
			Value:    JWTString,
			Path:     "/",
			HttpOnly: true,
		},
	)

	return sessionID, nil
}

// Login binds userID to the session of the request.
func (a *Auth) Login(response http.ResponseWriter, request *http.Request, userID string) error {
	sessionID, err := a.EnsureSession(response, request)
	if err != nil {
		return fmt.Errorf("in internal/auth/auth.go/Login(): error while `a.EnsureSession()` calling: %w", err)
	}

	err = a.sessions.SetSessionUser(request.Context(), sessionID, userID)
	if err != nil {
		return fmt.Errorf("in internal/auth/auth.go/Login(): error while `a.sessions.SetSessionUser()` calling: %w", err)
	}

	return nil
}

// Logout clears the user of the request session. The session itself and its
// visitor tokens survive.
func (a *Auth) Logout(ctx context.Context) error {
	sessionID, ok := SessionIDFromContext(ctx)
	if !ok {
		return nil
	}

	err := a.sessions.ClearSessionUser(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("in internal/auth/auth.go/Logout(): error while `a.sessions.ClearSessionUser()` calling: %w", err)
	}

	return nil
}

// IdentityFromContext returns the identity stored by ResolveIdentity.
func IdentityFromContext(ctx context.Context) models.Identity {
	userID, ok := ctx.Value(UserIDKey).(string)
	if !ok {
		return models.AnonymousIdentity()
	}

	return models.AuthenticatedIdentity(userID)
}

// SessionIDFromContext returns the session id stored by ResolveIdentity.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(SessionIDKey).(string)

	return sessionID, ok
}

func (a *Auth) userOf(ctx context.Context, session *models.Session) (string, bool) {
	userID, ok := session.User()
	if !ok {
		return "", false
	}

	_, found, err := a.users.GetUserByID(ctx, userID)
	if err != nil {
		logger.Log.Debugln("Error calling the `a.users.GetUserByID()`: ", zap.Error(err))

		return "", false
	}
	if !found {
		return "", false
	}

	return userID, true
}

func (a *Auth) parseSessionID(tokenString string) (string, bool) {
	if tokenString == "" {
		return "", false
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return a.sessionSigningKey, nil
		},
	)
	if err != nil || !token.Valid || claims.SessionID == "" {
		return "", false
	}

	return claims.SessionID, true
}

func (a *Auth) buildJWTString(claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, *claims)

	tokenString, err := token.SignedString(a.sessionSigningKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

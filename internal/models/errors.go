package models

import "errors"

// Request-level outcomes. Each one maps to a single HTTP status in the router.
var (
	ErrInvalidInput   = errors.New("required field is missing")
	ErrDuplicateEmail = errors.New("email already exists")
	ErrUnknownEmail   = errors.New("email does not exist")
	ErrBadCredentials = errors.New("incorrect password")
	ErrNotFound       = errors.New("URL not found")
	ErrAnonymous      = errors.New("authentication required")
	ErrForbidden      = errors.New("you do not have permission to access this URL")
)

// ErrShortIDExhausted is returned when no unused short id could be generated
// within the allowed number of attempts.
var ErrShortIDExhausted = errors.New("the number of attempts to generate a unique key has been exceeded")

// ErrSessionNotFound is returned by the session storage for unknown session ids.
var ErrSessionNotFound = errors.New("session not found")

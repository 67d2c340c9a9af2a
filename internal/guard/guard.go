// Package guard decides whether a caller may act on a short URL record.
package guard

import "github.com/patric-chuzhbe/tinyapp/internal/models"

// Outcome is the result of an authorization decision.
type Outcome int

const (
	Authorized Outcome = iota
	NotFound
	Anonymous
	Forbidden
)

func (o Outcome) String() string {
	switch o {
	case Authorized:
		return "authorized"
	case NotFound:
		return "not found"
	case Anonymous:
		return "anonymous"
	case Forbidden:
		return "forbidden"
	}

	return "unknown"
}

// Decision carries the outcome and, when authorized, the record.
type Decision struct {
	Outcome Outcome
	Record  *models.ShortURL
}

// Err maps the outcome onto the request error taxonomy. It is nil for
// authorized decisions.
func (d Decision) Err() error {
	switch d.Outcome {
	case NotFound:
		return models.ErrNotFound
	case Anonymous:
		return models.ErrAnonymous
	case Forbidden:
		return models.ErrForbidden
	}

	return nil
}

// Decide is applied before showing, updating or deleting a record. Existence
// is checked first, then authentication, then ownership.
// A nil record means the record does not exist.
func Decide(who models.Identity, record *models.ShortURL) Decision {
	if record == nil {
		return Decision{Outcome: NotFound}
	}
	if !who.Authenticated {
		return Decision{Outcome: Anonymous}
	}
	if record.OwnerID != who.UserID {
		return Decision{Outcome: Forbidden}
	}

	return Decision{Outcome: Authorized, Record: record}
}

// DecideRedirect is the weaker rule of the public redirect: anonymous callers
// pass, while a logged in user who does not own the record is still forbidden.
func DecideRedirect(who models.Identity, record *models.ShortURL) Decision {
	if record == nil {
		return Decision{Outcome: NotFound}
	}
	if who.Authenticated && record.OwnerID != who.UserID {
		return Decision{Outcome: Forbidden}
	}

	return Decision{Outcome: Authorized, Record: record}
}

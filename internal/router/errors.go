package router

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/patric-chuzhbe/tinyapp/internal/logger"
	"github.com/patric-chuzhbe/tinyapp/internal/models"
)

// action carries the user facing texts that depend on what was attempted.
type action struct {
	invalid   string
	anonymous string
	forbidden string
}

var (
	registerAction = action{invalid: "Email or password cannot be empty"}
	createAction   = action{
		invalid:   "Long URL cannot be empty",
		anonymous: "You must be logged in to create short URLs",
	}
	viewAction = action{
		anonymous: "You must be logged in to view URLs",
		forbidden: "You do not have permission to view this URL",
	}
	editAction = action{
		invalid:   "Long URL cannot be empty",
		anonymous: "You must be logged in to edit URLs",
		forbidden: "You do not have permission to edit this URL",
	}
	deleteAction = action{
		anonymous: "You must be logged in to delete URLs",
		forbidden: "You do not have permission to delete this URL",
	}
)

// fail writes the status and text of err. Errors outside the request
// taxonomy are internal failures.
func fail(response http.ResponseWriter, err error, act action) {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		http.Error(response, act.invalid, http.StatusBadRequest)
	case errors.Is(err, models.ErrDuplicateEmail):
		http.Error(response, "Email already exists", http.StatusBadRequest)
	case errors.Is(err, models.ErrUnknownEmail):
		http.Error(response, "Email does not exist", http.StatusForbidden)
	case errors.Is(err, models.ErrBadCredentials):
		http.Error(response, "Incorrect password", http.StatusForbidden)
	case errors.Is(err, models.ErrNotFound):
		http.Error(response, "URL not found", http.StatusNotFound)
	case errors.Is(err, models.ErrAnonymous):
		http.Error(response, act.anonymous, http.StatusUnauthorized)
	case errors.Is(err, models.ErrForbidden):
		http.Error(response, act.forbidden, http.StatusForbidden)
	default:
		logger.Log.Debugln("Internal error: ", zap.Error(err))
		http.Error(response, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

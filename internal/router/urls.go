package router

import (
	"errors"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"
	"github.com/thoas/go-funk"
	"go.uber.org/zap"

	"github.com/patric-chuzhbe/tinyapp/internal/auth"
	"github.com/patric-chuzhbe/tinyapp/internal/logger"
	"github.com/patric-chuzhbe/tinyapp/internal/models"
)

// GetUrlsjson dumps every stored record as JSON.
func (r *Router) GetUrlsjson(response http.ResponseWriter, request *http.Request) {
	urls, err := r.service.AllURLs(request.Context())
	if err != nil {
		fail(response, err, action{})

		return
	}

	response.Header().Set("Content-Type", "application/json")
	response.WriteHeader(http.StatusOK)
	encoder := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(response)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(urls); err != nil {
		logger.Log.Debugln("Error calling the `encoder.Encode()`: ", zap.Error(err))
	}
}

// GetUrls lists the URLs of the logged in user.
func (r *Router) GetUrls(response http.ResponseWriter, request *http.Request) {
	urls, err := r.service.ListUserURLs(request.Context(), auth.IdentityFromContext(request.Context()))
	if errors.Is(err, models.ErrAnonymous) {
		r.render(
			response,
			request,
			http.StatusUnauthorized,
			"login.html",
			page{Message: "Please log in or register to see your URLs."},
		)

		return
	}
	if err != nil {
		fail(response, err, viewAction)

		return
	}

	shortIDs := funk.Keys(urls).([]string)
	sort.Strings(shortIDs)

	listed := make([]listedURL, 0, len(shortIDs))
	for _, shortID := range shortIDs {
		listed = append(listed, listedURL{ShortID: shortID, UserURL: urls[shortID]})
	}

	r.render(response, request, http.StatusOK, "urls_index.html", page{URLs: listed})
}

// GetUrlsnew renders the form for a new short URL.
func (r *Router) GetUrlsnew(response http.ResponseWriter, request *http.Request) {
	if !auth.IdentityFromContext(request.Context()).Authenticated {
		http.Redirect(response, request, "/login", http.StatusFound)

		return
	}
	r.render(response, request, http.StatusOK, "urls_new.html", page{})
}

// PostUrls creates a short URL owned by the caller.
func (r *Router) PostUrls(response http.ResponseWriter, request *http.Request) {
	record, err := r.service.CreateURL(
		request.Context(),
		auth.IdentityFromContext(request.Context()),
		request.PostFormValue("longURL"),
	)
	if err != nil {
		fail(response, err, createAction)

		return
	}

	http.Redirect(response, request, "/urls/"+record.ShortID, http.StatusFound)
}

// GetUrlsid shows a short URL with its visit analytics.
func (r *Router) GetUrlsid(response http.ResponseWriter, request *http.Request) {
	record, err := r.service.GetURLDetails(
		request.Context(),
		auth.IdentityFromContext(request.Context()),
		chi.URLParam(request, "id"),
	)
	if err != nil {
		fail(response, err, viewAction)

		return
	}

	r.render(response, request, http.StatusOK, "urls_show.html", page{ShortURL: record})
}

// PutUrlsid points a short URL at a new long URL.
func (r *Router) PutUrlsid(response http.ResponseWriter, request *http.Request) {
	err := r.service.UpdateURL(
		request.Context(),
		auth.IdentityFromContext(request.Context()),
		chi.URLParam(request, "id"),
		request.PostFormValue("longURL"),
	)
	if err != nil {
		fail(response, err, editAction)

		return
	}

	http.Redirect(response, request, "/urls", http.StatusFound)
}

// DeleteUrlsid removes a short URL.
func (r *Router) DeleteUrlsid(response http.ResponseWriter, request *http.Request) {
	err := r.service.DeleteURL(
		request.Context(),
		auth.IdentityFromContext(request.Context()),
		chi.URLParam(request, "id"),
	)
	if err != nil {
		fail(response, err, deleteAction)

		return
	}

	http.Redirect(response, request, "/urls", http.StatusFound)
}

// GetRedirecttolongurl follows a short URL and records the visit. A session
// is created for first-time visitors so returning visits are recognized.
func (r *Router) GetRedirecttolongurl(response http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	shortID := chi.URLParam(request, "id")

	if _, err := r.service.PrepareRedirect(ctx, auth.IdentityFromContext(ctx), shortID); err != nil {
		fail(response, err, viewAction)

		return
	}

	sessionID, err := r.auth.EnsureSession(response, request)
	if err != nil {
		fail(response, err, viewAction)

		return
	}

	record, err := r.service.Visit(ctx, sessionID, shortID)
	if err != nil {
		fail(response, err, viewAction)

		return
	}

	http.Redirect(response, request, record.LongURL, http.StatusFound)
}

package router

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/patric-chuzhbe/tinyapp/internal/auth"
	"github.com/patric-chuzhbe/tinyapp/internal/logger"
	"github.com/patric-chuzhbe/tinyapp/internal/models"
	"github.com/patric-chuzhbe/tinyapp/internal/user"
)

//go:embed templates/*.html
var templatesFS embed.FS

func parseViews() (*template.Template, error) {
	return template.New("views").
		Funcs(template.FuncMap{
			"timestamp": func(t time.Time) string {
				return t.UTC().Format(time.RFC1123)
			},
		}).
		ParseFS(templatesFS, "templates/*.html")
}

type page struct {
	User    *user.User
	Message string

	ShortURL *models.ShortURL
	URLs     []listedURL
}

type listedURL struct {
	ShortID string
	models.UserURL
}

// currentUser returns the logged in user for the page header.
func (r *Router) currentUser(request *http.Request) *user.User {
	who := auth.IdentityFromContext(request.Context())
	if !who.Authenticated {
		return nil
	}

	usr, found, err := r.service.FindByID(request.Context(), who.UserID)
	if err != nil {
		logger.Log.Debugln("Error calling the `r.service.FindByID()`: ", zap.Error(err))

		return nil
	}
	if !found {
		return nil
	}

	return usr
}

func (r *Router) render(response http.ResponseWriter, request *http.Request, status int, name string, data page) {
	data.User = r.currentUser(request)

	response.Header().Set("Content-Type", "text/html; charset=utf-8")
	response.WriteHeader(status)
	if err := r.views.ExecuteTemplate(response, name, data); err != nil {
		logger.Log.Debugln("Error calling the `r.views.ExecuteTemplate()`: ", zap.Error(err))
	}
}

package router

import (
	"errors"
	"net/http"

	validator "github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/patric-chuzhbe/tinyapp/internal/auth"
	"github.com/patric-chuzhbe/tinyapp/internal/logger"
)

type credentialsForm struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

func readCredentials(request *http.Request) credentialsForm {
	return credentialsForm{
		Email:    request.PostFormValue("email"),
		Password: request.PostFormValue("password"),
	}
}

// loginFailure names the first missing login field.
func loginFailure(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && validationErrors[0].Field() == "Password" {
		return "Password cannot be empty"
	}

	return "Email cannot be empty"
}

// redirectLoggedIn sends logged in users to their URL list. It reports
// whether the request was handled.
func redirectLoggedIn(response http.ResponseWriter, request *http.Request) bool {
	if !auth.IdentityFromContext(request.Context()).Authenticated {
		return false
	}
	http.Redirect(response, request, "/urls", http.StatusFound)

	return true
}

// GetRoot sends logged in users to their URL list and everyone else to the login page.
func (r *Router) GetRoot(response http.ResponseWriter, request *http.Request) {
	if auth.IdentityFromContext(request.Context()).Authenticated {
		http.Redirect(response, request, "/urls", http.StatusFound)

		return
	}
	http.Redirect(response, request, "/login", http.StatusFound)
}

// GetRegister renders the registration form.
func (r *Router) GetRegister(response http.ResponseWriter, request *http.Request) {
	if redirectLoggedIn(response, request) {
		return
	}
	r.render(response, request, http.StatusOK, "register.html", page{})
}

// PostRegister creates an account and logs the new user in.
func (r *Router) PostRegister(response http.ResponseWriter, request *http.Request) {
	form := readCredentials(request)
	if err := r.validate.Struct(form); err != nil {
		http.Error(response, registerAction.invalid, http.StatusBadRequest)

		return
	}

	usr, err := r.service.Register(request.Context(), form.Email, form.Password)
	if err != nil {
		fail(response, err, registerAction)

		return
	}

	if err := r.auth.Login(response, request, usr.ID); err != nil {
		fail(response, err, registerAction)

		return
	}

	http.Redirect(response, request, "/urls", http.StatusFound)
}

// GetLogin renders the login form.
func (r *Router) GetLogin(response http.ResponseWriter, request *http.Request) {
	if redirectLoggedIn(response, request) {
		return
	}
	r.render(response, request, http.StatusOK, "login.html", page{})
}

// PostLogin checks the credentials and binds the user to the session.
func (r *Router) PostLogin(response http.ResponseWriter, request *http.Request) {
	form := readCredentials(request)
	if err := r.validate.Struct(form); err != nil {
		http.Error(response, loginFailure(err), http.StatusBadRequest)

		return
	}

	usr, err := r.service.Authenticate(request.Context(), form.Email, form.Password)
	if err != nil {
		fail(response, err, action{})

		return
	}

	if err := r.auth.Login(response, request, usr.ID); err != nil {
		fail(response, err, action{})

		return
	}

	http.Redirect(response, request, "/urls", http.StatusFound)
}

// PostLogout logs the session out.
func (r *Router) PostLogout(response http.ResponseWriter, request *http.Request) {
	if err := r.auth.Logout(request.Context()); err != nil {
		logger.Log.Debugln("Error calling the `r.auth.Logout()`: ", zap.Error(err))
		response.WriteHeader(http.StatusInternalServerError)

		return
	}

	http.Redirect(response, request, "/login", http.StatusFound)
}

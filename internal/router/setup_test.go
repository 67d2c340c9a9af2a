package router

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/patric-chuzhbe/tinyapp/internal/auth"
	"github.com/patric-chuzhbe/tinyapp/internal/db/memorystorage"
	"github.com/patric-chuzhbe/tinyapp/internal/mockstorage"
	"github.com/patric-chuzhbe/tinyapp/internal/service"
	"github.com/patric-chuzhbe/tinyapp/internal/shortid"
	"github.com/patric-chuzhbe/tinyapp/internal/visits"
)

const testCookieName = "session"

var testSigningKey = []byte("router-test-signing-key")

type testEnv struct {
	server   *httptest.Server
	service  *service.Service
	sessions *memorystorage.SessionStorage
	urls     *memorystorage.URLStorage
}

type initOption func(*initOptions)

type initOptions struct {
	mockUsers *mockstorage.UserStorageMock
	mockURLs  *mockstorage.URLStorageMock
}

func withMockStorage(users *mockstorage.UserStorageMock, urls *mockstorage.URLStorageMock) initOption {
	return func(options *initOptions) {
		options.mockUsers = users
		options.mockURLs = urls
	}
}

func setupTestRouter(optionsProto ...initOption) *testEnv {
	options := &initOptions{}
	for _, protoOption := range optionsProto {
		protoOption(options)
	}

	users := memorystorage.NewUserStorage()
	urls := memorystorage.NewURLStorage(shortid.Generate)
	sessions := memorystorage.NewSessionStorage()
	tracker := visits.New(sessions, urls)
	hasher := auth.NewPasswordHasher(4)

	var svc *service.Service
	if options.mockUsers != nil {
		svc = service.New(options.mockUsers, options.mockURLs, hasher, tracker)
	} else {
		svc = service.New(users, urls, hasher, tracker)
	}

	theAuth := auth.New(sessions, users, testCookieName, testSigningKey)
	if options.mockUsers != nil {
		theAuth = auth.New(sessions, options.mockUsers, testCookieName, testSigningKey)
	}

	myRouter, err := New(svc, theAuth)
	if err != nil {
		panic(err)
	}

	return &testEnv{
		server:   httptest.NewServer(myRouter.Handler()),
		service:  svc,
		sessions: sessions,
		urls:     urls,
	}
}

func (e *testEnv) close() {
	e.server.Close()
}

// newBrowser returns a client with its own cookie jar that does not follow
// redirects.
func (e *testEnv) newBrowser() *resty.Client {
	return resty.New().
		SetBaseURL(e.server.URL).
		SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}))
}

func body(resp *resty.Response) string {
	return strings.TrimSpace(resp.String())
}

func location(resp *resty.Response) string {
	return resp.Header().Get("Location")
}

func credentials(email, password string) map[string]string {
	return map[string]string{
		"email":    email,
		"password": password,
	}
}

func longURLForm(longURL string) map[string]string {
	return map[string]string{"longURL": longURL}
}

func shortIDFromLocation(resp *resty.Response) string {
	return strings.TrimPrefix(location(resp), "/urls/")
}

func formBody(values map[string]string) string {
	form := url.Values{}
	for key, value := range values {
		form.Set(key, value)
	}

	return form.Encode()
}

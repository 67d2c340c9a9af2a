// Package app is the composition root: it builds the stores, services and
// router from the configuration and runs the HTTP server until shutdown.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/patric-chuzhbe/tinyapp/internal/auth"
	"github.com/patric-chuzhbe/tinyapp/internal/config"
	"github.com/patric-chuzhbe/tinyapp/internal/db/memorystorage"
	"github.com/patric-chuzhbe/tinyapp/internal/logger"
	"github.com/patric-chuzhbe/tinyapp/internal/router"
	"github.com/patric-chuzhbe/tinyapp/internal/service"
	"github.com/patric-chuzhbe/tinyapp/internal/shortid"
	"github.com/patric-chuzhbe/tinyapp/internal/visits"
)

// App holds the configuration and the HTTP handler of the shortener.
type App struct {
	cfg         *config.Config
	httpHandler http.Handler
}

// New loads the configuration, initializes the logger and wires every
// component. All state lives in stores created here and dies with the
// process.
func New(configOptions ...config.InitOption) (*App, error) {
	cfg, err := config.New(configOptions...)
	if err != nil {
		return nil, err
	}

	err = logger.Init(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	signingKey, err := cfg.SigningKey()
	if err != nil {
		return nil, err
	}

	users := memorystorage.NewUserStorage()
	urls := memorystorage.NewURLStorage(shortid.Generate)
	sessions := memorystorage.NewSessionStorage()

	svc := service.New(
		users,
		urls,
		auth.NewPasswordHasher(cfg.PasswordHashCost),
		visits.New(sessions, urls),
	)

	myRouter, err := router.New(
		svc,
		auth.New(
			sessions,
			users,
			cfg.SessionCookieName,
			signingKey,
		),
	)
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:         cfg,
		httpHandler: myRouter.Handler(),
	}, nil
}

// Run serves HTTP until SIGINT or SIGTERM, then shuts the server down
// gracefully.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.serve(ctx)
}

func (a *App) serve(ctx context.Context) error {
	logger.Log.Infoln("server running", "RunAddr", a.cfg.RunAddr)

	server := &http.Server{
		Addr:    a.cfg.RunAddr,
		Handler: a.httpHandler,
	}

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Log.Infoln("Received shutdown signal. Exiting...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		return nil

	case err := <-serverErrCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("server error: %w", err)
	}
}

// Close flushes the logger.
func (a *App) Close() {
	if err := logger.Sync(); err != nil {
		fmt.Println("Logger sync error:", err)
	}
}

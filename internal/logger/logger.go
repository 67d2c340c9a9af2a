// Package logger holds the process-wide zap logger and the HTTP access log
// middleware.
package logger

import (
	"errors"
	"net/http"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Log is the global SugaredLogger. It discards everything until Init is
// called.
var Log = zap.NewNop().Sugar()

type accessLogWriter struct {
	http.ResponseWriter
	status      int
	size        int
	wroteHeader bool
}

func (w *accessLogWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	size, err := w.ResponseWriter.Write(b)
	w.size += size

	return size, err
}

func (w *accessLogWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	w.status = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

// Init builds the global logger at the given level ("debug", "info", ...).
func Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = lvl
	zl, err := cfg.Build()
	if err != nil {
		return err
	}
	Log = zl.Sugar()

	return nil
}

// Sync flushes buffered entries. Syncing stderr attached to a terminal or a
// pipe fails with EINVAL or ENOTTY, which is ignored.
func Sync() error {
	if err := Log.Sync(); err != nil && !isUnsyncableOutput(err) {
		return err
	}

	return nil
}

func isUnsyncableOutput(err error) bool {
	return errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY)
}

// WithLoggingHTTPMiddleware logs one line per request. Form bodies are never
// logged, so credentials do not reach the log.
func WithLoggingHTTPMiddleware(h http.Handler) http.Handler {
	logFn := func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		lw := &accessLogWriter{ResponseWriter: w}
		h.ServeHTTP(lw, r)
		if !lw.wroteHeader {
			lw.status = http.StatusOK
		}

		Log.Infow(
			"request served",
			"requestID", middleware.GetReqID(r.Context()),
			"uri", r.RequestURI,
			"method", r.Method,
			"status", lw.status,
			"duration", time.Since(start),
			"size", lw.size,
		)
	}

	return http.HandlerFunc(logFn)
}

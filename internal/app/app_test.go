package app

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patric-chuzhbe/tinyapp/internal/config"
)

func TestNew(t *testing.T) {
	t.Setenv("PASSWORD_HASH_COST", "4")

	app, err := New(config.WithDisableFlagsParsing(true))
	require.NoError(t, err)
	defer app.Close()

	server := httptest.NewServer(app.httpHandler)
	defer server.Close()

	client := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := client.Get(server.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestNewInvalidConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "loud")

	_, err := New(config.WithDisableFlagsParsing(true))
	assert.Error(t, err)
}

// freeAddr returns a loopback address with a port nobody listens on.
func freeAddr(t *testing.T) string {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	return addr
}

func waitForServer(t *testing.T, addr string) {
	t.Helper()

	require.Eventually(t, func() bool {
		conn, err := net.Dial("tcp", addr)
		if err != nil {
			return false
		}
		_ = conn.Close()

		return true
	}, 5*time.Second, 10*time.Millisecond)
}

func TestServeShutdown(t *testing.T) {
	addr := freeAddr(t)
	t.Setenv("SERVER_ADDRESS", addr)
	t.Setenv("SHUTDOWN_TIMEOUT", "1s")
	t.Setenv("PASSWORD_HASH_COST", "4")

	app, err := New(config.WithDisableFlagsParsing(true))
	require.NoError(t, err)
	defer app.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- app.serve(ctx)
	}()

	waitForServer(t, addr)

	client := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := client.Get("http://" + addr + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}

	_, err = net.Dial("tcp", addr)
	assert.Error(t, err)
}

func TestServeAddressInUse(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	t.Setenv("SERVER_ADDRESS", listener.Addr().String())
	t.Setenv("PASSWORD_HASH_COST", "4")

	app, err := New(config.WithDisableFlagsParsing(true))
	require.NoError(t, err)
	defer app.Close()

	done := make(chan error, 1)
	go func() {
		done <- app.serve(context.Background())
	}()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.NotErrorIs(t, err, http.ErrServerClosed)
		assert.Contains(t, err.Error(), "server error")
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not report the listen failure")
	}
}

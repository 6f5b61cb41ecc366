package http_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	adapthttp "github.com/betterdayenergy/esign-service/internal/adapters/http"
	"github.com/betterdayenergy/esign-service/internal/platform/config"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// runServer starts s in the background and returns the channel Start's
// result arrives on.
func runServer(t *testing.T, s *adapthttp.Server) <-chan error {
	t.Helper()

	done := make(chan error, 1)
	go func() { done <- s.Start() }()

	// Let the listener come up before the test shuts it down.
	time.Sleep(50 * time.Millisecond)
	return done
}

func TestNewServer_ToleratesNilLogger(t *testing.T) {
	t.Parallel()

	s := adapthttp.NewServer(config.ServerConfig{Host: "127.0.0.1"}, http.NotFoundHandler(), nil)

	if s == nil {
		t.Fatal("NewServer returned nil")
	}
}

func TestServer_Addr(t *testing.T) {
	t.Parallel()

	cfg := config.ServerConfig{Host: "127.0.0.1", Port: 9090}
	s := adapthttp.NewServer(cfg, http.NotFoundHandler(), quietLogger())

	if got := s.Addr(); got != "127.0.0.1:9090" {
		t.Errorf("Addr() = %q, want 127.0.0.1:9090", got)
	}
}

func TestServer_GracefulShutdown(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	cfg := config.ServerConfig{
		Host:         "127.0.0.1",
		Port:         0,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  30 * time.Second,
	}
	s := adapthttp.NewServer(cfg, handler, quietLogger())

	done := runServer(t, s)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown() error: %v", err)
	}

	if err := <-done; err != nil {
		t.Fatalf("Start() returned %v after graceful shutdown, want nil", err)
	}
}

func TestServer_ShutdownWithoutDeadline(t *testing.T) {
	t.Parallel()

	s := adapthttp.NewServer(config.ServerConfig{Host: "127.0.0.1"}, http.NotFoundHandler(), quietLogger())

	done := runServer(t, s)

	// No deadline on the context; the server applies its own bound.
	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error: %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("Start() returned %v after shutdown, want nil", err)
	}
}

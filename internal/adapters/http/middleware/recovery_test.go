package middleware_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/betterdayenergy/esign-service/internal/adapters/http/middleware"
)

func TestRecovery_PassesThroughHealthyHandler(t *testing.T) {
	t.Parallel()

	h := middleware.Recovery(slog.New(slog.DiscardHandler))(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte("done"))
		}),
	)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/documents", nil))

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	if w.Body.String() != "done" {
		t.Errorf("body = %q, want %q", w.Body.String(), "done")
	}
}

func TestRecovery_ConvertsPanicTo500(t *testing.T) {
	t.Parallel()

	h := middleware.Recovery(slog.New(slog.DiscardHandler))(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("submission cache corrupted")
		}),
	)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/documents/42/status", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}

	var problem map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &problem); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body := w.Body.String(); strings.Contains(body, "cache corrupted") {
		t.Errorf("panic detail leaked to client: %s", body)
	}
}

func TestRecovery_LogsPanicAndStack(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := middleware.Recovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))

	out := buf.String()
	if !strings.Contains(out, "panic recovered") {
		t.Error("log missing 'panic recovered' message")
	}
	if !strings.Contains(out, "boom") {
		t.Error("log missing panic value")
	}
	if !strings.Contains(out, "stack") {
		t.Error("log missing stack trace")
	}
}

func TestRecovery_NonStringPanicValue(t *testing.T) {
	t.Parallel()

	h := middleware.Recovery(slog.New(slog.DiscardHandler))(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic(42)
		}),
	)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}

func TestRecovery_SkipsResponseWhenHeadersSent(t *testing.T) {
	t.Parallel()

	h := middleware.Recovery(slog.New(slog.DiscardHandler))(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusAccepted)
			panic("after write")
		}),
	)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	// The original status stands; no 500 is layered on top.
	if w.Code != http.StatusAccepted {
		t.Errorf("status = %d, want %d", w.Code, http.StatusAccepted)
	}
}

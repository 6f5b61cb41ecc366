package middleware

import (
	"context"
	"maps"
	"net/http"
	"sync"
	"time"
)

// Timeout enforces a per-request deadline. The wrapped handler runs in its
// own goroutine against a buffering writer; whichever finishes first — the
// handler or the deadline — gets to produce the response, and a late handler
// finds the 504 Gateway Timeout already sent.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			bw := &bufferedWriter{dst: w}
			done := make(chan struct{})

			go func() {
				next.ServeHTTP(bw, r.WithContext(ctx))
				close(done)
			}()

			select {
			case <-done:
				bw.mu.Lock()
				defer bw.mu.Unlock()
				bw.flush()
			case <-ctx.Done():
				bw.mu.Lock()
				defer bw.mu.Unlock()
				if !bw.wrote {
					w.WriteHeader(http.StatusGatewayTimeout)
				}
			}
		})
	}
}

// bufferedWriter holds the handler's response in memory until the timeout
// race is decided. The mutex is shared between the handler goroutine and the
// select above.
type bufferedWriter struct {
	dst    http.ResponseWriter
	mu     sync.Mutex
	header http.Header
	body   []byte
	status int
	wrote  bool
}

func (bw *bufferedWriter) Header() http.Header {
	bw.mu.Lock()
	defer bw.mu.Unlock()

	if bw.header == nil {
		bw.header = make(http.Header)
	}
	return bw.header
}

func (bw *bufferedWriter) Write(b []byte) (int, error) {
	bw.mu.Lock()
	defer bw.mu.Unlock()

	if !bw.wrote {
		bw.status = http.StatusOK
		bw.wrote = true
	}
	bw.body = append(bw.body, b...)
	return len(b), nil
}

func (bw *bufferedWriter) WriteHeader(code int) {
	bw.mu.Lock()
	defer bw.mu.Unlock()

	if bw.wrote {
		return
	}
	bw.status = code
	bw.wrote = true
}

// flush replays the buffered response onto the real writer. Callers must
// hold bw.mu.
func (bw *bufferedWriter) flush() {
	if bw.header != nil {
		maps.Copy(bw.dst.Header(), bw.header)
	}
	if bw.wrote {
		bw.dst.WriteHeader(bw.status)
	}
	if len(bw.body) > 0 {
		_, _ = bw.dst.Write(bw.body)
	}
}

// Package health tracks the health of downstream dependencies. The
// readiness endpoint consults the registry to decide whether the service
// should receive traffic.
package health

import (
	"context"
	"sync"

	"github.com/betterdayenergy/esign-service/internal/ports"
)

var _ ports.HealthRegistry = (*Registry)(nil)

// Registry is a concurrency-safe [ports.HealthRegistry]. Checkers are
// registered once at startup and probed on every readiness request.
type Registry struct {
	mu     sync.RWMutex
	probes []ports.HealthChecker
}

// New creates an empty health check registry.
func New() *Registry {
	return &Registry{}
}

// Register adds a health checker. Safe for concurrent use.
func (r *Registry) Register(checker ports.HealthChecker) {
	r.mu.Lock()
	r.probes = append(r.probes, checker)
	r.mu.Unlock()
}

// CheckAll probes every registered checker and returns the outcome keyed
// by checker name; a nil value means healthy. The probe slice is snapshotted
// under the read lock so slow checks never block registration.
func (r *Registry) CheckAll(ctx context.Context) map[string]error {
	r.mu.RLock()
	snapshot := make([]ports.HealthChecker, len(r.probes))
	copy(snapshot, r.probes)
	r.mu.RUnlock()

	out := make(map[string]error, len(snapshot))
	for _, p := range snapshot {
		out[p.Name()] = p.HealthCheck(ctx)
	}
	return out
}

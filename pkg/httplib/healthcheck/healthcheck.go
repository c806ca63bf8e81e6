// Package healthcheck answers GET /health ahead of the wrapped handler so
// liveness probes never depend on the routes behind it.
package healthcheck

import (
	"fmt"
	"net/http"
)

const healthPath = "/health"

// HealthCheck intercepts health probes on any HTTP listener.
type HealthCheck struct {
}

// Handler wraps h; health probes are answered here, everything else passes
// through.
func (hc HealthCheck) Handler(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IsHealthCheckRequest(r) {
			hc.ServeHTTP(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// ServeHTTP answers a probe.
func (hc HealthCheck) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

// IsHealthCheckRequest reports whether the request is a health probe.
func IsHealthCheckRequest(r *http.Request) bool {
	return r.Method == http.MethodGet && r.URL.Path == healthPath
}

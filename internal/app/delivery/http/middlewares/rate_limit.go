package middlewares

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// RateLimit limits inbound requests per client IP to APP_MAX_REQUESTS per second.
// A non-positive limit disables it.
func (m *Middlewares) RateLimit() func(next http.Handler) http.Handler {
	maxRequests := m.InternalConfig.App.MaxRequests
	if maxRequests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.LimitByIP(maxRequests, time.Second)
}

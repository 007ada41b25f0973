package middlewares

import (
	"context"
	"crypto/subtle"
	"healthcare-fhir-gateway/internal/pkg/constvars"
	"healthcare-fhir-gateway/internal/pkg/exceptions"
	"healthcare-fhir-gateway/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

const ContextAPIKeyAuth constvars.ContextKey = "api_key_auth"

// APIKeyAuth requires the configured key in the x-api-key header. With no key configured
// every request passes.
func (m *Middlewares) APIKeyAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expected := m.InternalConfig.Auth.APIKey
		if expected == "" {
			next.ServeHTTP(w, r)
			return
		}

		apiKey := r.Header.Get(constvars.HeaderAPIKey)
		if apiKey == "" || subtle.ConstantTimeCompare([]byte(apiKey), []byte(expected)) != 1 {
			m.Log.Warn("API key authentication failed",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
				zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
				zap.String(constvars.LoggingMethodKey, r.Method),
				zap.Bool("api_key_present", apiKey != ""),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrInvalidAPIKey(nil))
			return
		}

		ctx := context.WithValue(r.Context(), ContextAPIKeyAuth, true)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

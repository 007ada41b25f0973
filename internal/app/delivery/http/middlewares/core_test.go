package middlewares

import (
	"healthcare-fhir-gateway/internal/app/config"
	"healthcare-fhir-gateway/internal/pkg/constvars"
	"healthcare-fhir-gateway/internal/pkg/utils"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestMiddlewares(internalConfig *config.InternalConfig) *Middlewares {
	if internalConfig == nil {
		internalConfig = &config.InternalConfig{}
	}
	return NewMiddlewares(zap.NewNop(), internalConfig, nil)
}

func TestRequestIDMiddleware(t *testing.T) {
	m := newTestMiddlewares(nil)

	var seen string
	handler := m.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = utils.GetRequestID(r.Context())
	}))

	t.Run("keeps client request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set(constvars.HeaderXRequestID, "client-id-1")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, "client-id-1", seen)
		assert.Equal(t, "client-id-1", rr.Header().Get(constvars.HeaderXRequestID))
	})

	t.Run("generates request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		require.NotEmpty(t, seen)
		assert.Equal(t, seen, rr.Header().Get(constvars.HeaderXRequestID))
	})
}

func TestErrorHandlerRecoversPanic(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	m := NewMiddlewares(zap.New(core), &config.InternalConfig{}, nil)
	handler := m.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/find/Patient/p1", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"there is something wrong with the application"}`, rr.Body.String())

	recovered := logs.FilterMessage(constvars.ErrDevPanicRecovered).All()
	require.Len(t, recovered, 1)
	assert.Equal(t, "boom", recovered[0].ContextMap()["error"])
}

func TestBodyLimit(t *testing.T) {
	m := newTestMiddlewares(&config.InternalConfig{App: config.App{RequestBodyLimitInBytes: 8}})

	var readErr error
	handler := m.BodyLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/patient", strings.NewReader(`{"family_name":"Tan"}`)))
	require.Error(t, readErr)

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/patient", strings.NewReader(`{}`)))
	assert.NoError(t, readErr)
}

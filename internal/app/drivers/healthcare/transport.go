package healthcare

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"healthcare-fhir-gateway/internal/app/config"
	"healthcare-fhir-gateway/internal/app/drivers/observability"
	"healthcare-fhir-gateway/internal/pkg/constvars"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/time/rate"
)

// NewHTTPClient builds the outbound client used for every FHIR store call.
// Layers, outermost first: credentials, rate limiting, circuit breaking, trace propagation.
func NewHTTPClient(ctx context.Context, internalConfig *config.InternalConfig, driverConfig *config.DriverConfig, log *zap.Logger, collector *observability.Collector) (*http.Client, error) {
	var transport http.RoundTripper = &propagatingTransport{
		base:       http.DefaultTransport.(*http.Transport).Clone(),
		propagator: otel.GetTextMapPropagator(),
	}

	resilience := driverConfig.Resilience
	if resilience.CircuitBreakerEnabled {
		transport = NewBreakerTransport(transport, BreakerSettings{
			Name:        constvars.FhirStoreBreakerName,
			MaxFailures: uint32(resilience.CircuitBreakerMaxFail),
			OpenTimeout: time.Duration(resilience.CircuitBreakerTimeout) * time.Second,
		}, log, collector)
	}

	if resilience.RateLimitPerSecond > 0 {
		transport = NewRateLimitedTransport(transport, resilience.RateLimitPerSecond, resilience.RateLimitBurst)
	}

	switch internalConfig.FHIR.AuthMode {
	case constvars.FhirAuthModeNone:
		log.Warn("FHIR store calls are sent without credentials",
			zap.String(constvars.LoggingRemoteURLKey, internalConfig.StoreBaseURL()))
	case constvars.FhirAuthModeGoogle:
		credentials, err := google.FindDefaultCredentials(ctx, constvars.GoogleCloudPlatformScope)
		if err != nil {
			return nil, fmt.Errorf("failed to find google application default credentials: %w", err)
		}
		transport = &oauth2.Transport{
			Source: credentials.TokenSource,
			Base:   transport,
		}
	default:
		return nil, fmt.Errorf("unsupported FHIR_AUTH_MODE %q", internalConfig.FHIR.AuthMode)
	}

	return &http.Client{
		Transport: transport,
		Timeout:   internalConfig.RequestTimeout(),
	}, nil
}

// rateLimitedTransport paces outbound calls to stay under the store's request quota.
type rateLimitedTransport struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

func NewRateLimitedTransport(base http.RoundTripper, perSecond float64, burst int) http.RoundTripper {
	if burst < 1 {
		burst = 1
	}
	return &rateLimitedTransport{
		base:    base,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

func (t *rateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req)
}

// propagatingTransport injects the W3C trace context of the request into its headers.
type propagatingTransport struct {
	base       http.RoundTripper
	propagator propagation.TextMapPropagator
}

func (t *propagatingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	outbound := req.Clone(req.Context())
	t.propagator.Inject(req.Context(), propagation.HeaderCarrier(outbound.Header))
	return t.base.RoundTrip(outbound)
}

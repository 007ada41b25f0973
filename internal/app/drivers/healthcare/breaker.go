package healthcare

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"healthcare-fhir-gateway/internal/app/drivers/observability"
	"healthcare-fhir-gateway/internal/pkg/constvars"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

type BreakerSettings struct {
	Name        string
	MaxFailures uint32
	OpenTimeout time.Duration
}

// breakerTransport trips after consecutive transport failures or 5xx answers.
// 4xx answers are the caller's fault and count as successes.
type breakerTransport struct {
	base http.RoundTripper
	cb   *gobreaker.CircuitBreaker
}

// upstreamFailure carries a 5xx response through gobreaker so it is counted as a failure
// while the response itself still reaches the caller.
type upstreamFailure struct {
	response *http.Response
}

func (e *upstreamFailure) Error() string {
	return fmt.Sprintf("fhir store answered %d", e.response.StatusCode)
}

func NewBreakerTransport(base http.RoundTripper, settings BreakerSettings, log *zap.Logger, collector *observability.Collector) http.RoundTripper {
	if settings.MaxFailures == 0 {
		settings.MaxFailures = 5
	}

	return &breakerTransport{
		base: base,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        settings.Name,
			MaxRequests: 1,
			Timeout:     settings.OpenTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= settings.MaxFailures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warn("Circuit breaker state changed",
					zap.String(constvars.LoggingBreakerNameKey, name),
					zap.String(constvars.LoggingBreakerFromKey, from.String()),
					zap.String(constvars.LoggingBreakerToKey, to.String()),
				)
				if collector == nil {
					return
				}
				if to == gobreaker.StateOpen {
					collector.CircuitBreakerOpen.Set(1)
				} else {
					collector.CircuitBreakerOpen.Set(0)
				}
			},
		}),
	}
}

func (t *breakerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	result, err := t.cb.Execute(func() (interface{}, error) {
		resp, err := t.base.RoundTrip(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= constvars.StatusInternalServerError {
			return nil, &upstreamFailure{response: resp}
		}
		return resp, nil
	})

	var failure *upstreamFailure
	if errors.As(err, &failure) {
		return failure.response, nil
	}
	if err != nil {
		return nil, err
	}
	return result.(*http.Response), nil
}

// IsCircuitOpen reports whether err was produced by an open or saturated breaker.
func IsCircuitOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

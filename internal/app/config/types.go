package config

type (
	DriverConfig struct {
		Logger     Logger
		Tracing    Tracing
		Resilience Resilience
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
	Tracing struct {
		Enabled     bool
		Endpoint    string
		ServiceName string
		SampleRate  float64
	}
	// Resilience configures the outbound transport toward the FHIR store.
	Resilience struct {
		RateLimitPerSecond    float64
		RateLimitBurst        int
		CircuitBreakerEnabled bool
		CircuitBreakerMaxFail int
		CircuitBreakerTimeout int
	}
)

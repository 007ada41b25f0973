package config

import (
	"healthcare-fhir-gateway/internal/pkg/constvars"
	"healthcare-fhir-gateway/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "app.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "app_error.log"),
		},
		Tracing: Tracing{
			Enabled:     utils.GetEnvBool("TRACING_ENABLED", false),
			Endpoint:    utils.GetEnvString("TRACING_ENDPOINT", "localhost:4318"),
			ServiceName: utils.GetEnvString("TRACING_SERVICE_NAME", "healthcare-fhir-gateway"),
			SampleRate:  utils.GetEnvFloat("TRACING_SAMPLE_RATE", 1.0),
		},
		Resilience: Resilience{
			RateLimitPerSecond:    utils.GetEnvFloat("FHIR_RATE_LIMIT_PER_SECOND", 0),
			RateLimitBurst:        utils.GetEnvInt("FHIR_RATE_LIMIT_BURST", 1),
			CircuitBreakerEnabled: utils.GetEnvBool("FHIR_CIRCUIT_BREAKER_ENABLED", false),
			CircuitBreakerMaxFail: utils.GetEnvInt("FHIR_CIRCUIT_BREAKER_MAX_FAILURES", 5),
			CircuitBreakerTimeout: utils.GetEnvInt("FHIR_CIRCUIT_BREAKER_TIMEOUT_IN_SECONDS", 30),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                     utils.GetEnvString("APP_ENV", constvars.AppEnvDevelopment),
			Port:                    utils.GetEnvString("APP_PORT", ":5000"),
			Version:                 utils.GetEnvString("APP_VERSION", "v1.0"),
			Timezone:                utils.GetEnvString("APP_TIMEZONE", "Asia/Jakarta"),
			MaxRequests:             utils.GetEnvInt("APP_MAX_REQUESTS", 50),
			ShutdownTimeout:         utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
			RequestTimeoutInSeconds: utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 0),
			RequestBodyLimitInBytes: int64(utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_BYTES", 1<<20)),
		},
		FHIR: AppFHIR{
			APIBaseUrl: utils.GetEnvString("FHIR_API_BASE_URL", "https://healthcare.googleapis.com/v1"),
			BaseUrl:    utils.GetEnvString("FHIR_BASE_URL", ""),
			AuthMode:   utils.GetEnvString("FHIR_AUTH_MODE", constvars.FhirAuthModeGoogle),
		},
		GCP: AppGCP{
			ProjectID:   utils.GetEnvString("GCP_PROJECT_ID", "your-project-id"),
			Location:    utils.GetEnvString("GCP_LOCATION", "us-central1"),
			DatasetID:   utils.GetEnvString("GCP_DATASET_ID", "your-dataset"),
			FhirStoreID: utils.GetEnvString("GCP_FHIR_STORE_ID", "your-fhir-store"),
		},
		Auth: AppAuth{
			APIKey: utils.GetEnvString("APP_API_KEY", ""),
		},
		CORS: AppCORS{
			AllowedOrigins: utils.GetEnvStringSlice("APP_CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
	}
}

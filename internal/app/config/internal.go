package config

import (
	"fmt"
	"healthcare-fhir-gateway/internal/pkg/constvars"
	"strings"
	"time"
)

type InternalConfig struct {
	App  App
	FHIR AppFHIR
	GCP  AppGCP
	Auth AppAuth
	CORS AppCORS
}

type App struct {
	Env                     string
	Port                    string
	Version                 string
	Timezone                string
	MaxRequests             int
	ShutdownTimeout         int
	RequestTimeoutInSeconds int
	RequestBodyLimitInBytes int64
}

type AppFHIR struct {
	// APIBaseUrl is the Cloud Healthcare API root, e.g. https://healthcare.googleapis.com/v1.
	APIBaseUrl string
	// BaseUrl overrides the derived store URL when set, e.g. to point at a local FHIR server.
	BaseUrl  string
	AuthMode string
}

type AppGCP struct {
	ProjectID   string
	Location    string
	DatasetID   string
	FhirStoreID string
}

type AppAuth struct {
	// APIKey gates the /api routes through the x-api-key header. Empty disables the check.
	APIKey string
}

type AppCORS struct {
	AllowedOrigins []string
}

// StoreBaseURL returns the FHIR base every resource path is appended to.
func (c *InternalConfig) StoreBaseURL() string {
	if c.FHIR.BaseUrl != "" {
		return strings.TrimRight(c.FHIR.BaseUrl, "/")
	}
	return fmt.Sprintf(constvars.GoogleHealthcareStorePathFormat,
		strings.TrimRight(c.FHIR.APIBaseUrl, "/"),
		c.GCP.ProjectID,
		c.GCP.Location,
		c.GCP.DatasetID,
		c.GCP.FhirStoreID,
	)
}

func (c *InternalConfig) RequestTimeout() time.Duration {
	if c.App.RequestTimeoutInSeconds <= 0 {
		return 0
	}
	return time.Duration(c.App.RequestTimeoutInSeconds) * time.Second
}

package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	AppEnvDevelopment = "development"
	AppEnvProduction  = "production"
)

const (
	FhirAuthModeGoogle = "google"
	FhirAuthModeNone   = "none"
)

// GoogleCloudPlatformScope is the OAuth2 scope requested for Cloud Healthcare API calls.
const GoogleCloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

const (
	URLParamMRN          = "mrn"
	URLParamResourceType = "resourceType"
	URLParamResourceID   = "resourceId"
)

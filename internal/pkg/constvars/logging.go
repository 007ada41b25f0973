package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingOperationKey      = "operation"
	LoggingMethodKey         = "method"
	LoggingEndpointKey       = "endpoint"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingQueryKey          = "query"
	LoggingStatusCodeKey     = "status_code"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"
	LoggingErrorTypeKey      = "error_type"
	LoggingResourceTypeKey   = "resource_type"
	LoggingResourceIDKey     = "resource_id"
	LoggingPatientIDKey      = "patient_id"
	LoggingMRNKey            = "mrn"
	LoggingRemoteStatusKey   = "remote_status"
	LoggingRemoteURLKey      = "remote_url"
	LoggingBundleTotalKey    = "bundle_total"
	LoggingEntryCountKey     = "entry_count"
	LoggingPatchOpCountKey   = "patch_operation_count"
	LoggingBreakerNameKey    = "breaker"
	LoggingBreakerFromKey    = "from"
	LoggingBreakerToKey      = "to"
	LoggingIdentifierSysKey  = "identifier_system"
	LoggingResponseLengthKey = "response_length"
)

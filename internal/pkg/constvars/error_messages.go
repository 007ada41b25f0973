package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":        "is required",
	"oneof":           "must be one of [%s]",
	"required_if":     "is required when %s",
	"min":             "must contain at least %s item(s)",
	"fhir_id":         "must be a valid resource id",
	"resource_type":   "must be a supported resource type",
	"json_patch_path": "must be a JSON pointer starting with '/'",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"oneof":       true,
	"required_if": true,
	"min":         true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientPatientNotFoundByIdentifier   = "no patient for given identifier"
	ErrClientResourceNotFound              = "resource of type '%s' with id '%s' was not found"
	ErrClientRemoteStoreUnavailable        = "the clinical data store is temporarily unavailable"
	ErrClientObservationValueNotNumeric    = "observation_value must be a number"
)

// Error messages for developers
const (
	ErrDevInvalidInput           = "invalid input"
	ErrDevValidationFailed       = "validation failed"
	ErrDevCannotParseJSON        = "cannot parse JSON"
	ErrDevCannotMarshalJSON      = "cannot marshal JSON"
	ErrDevCreateHTTPRequest      = "failed to create HTTP request"
	ErrDevSendHTTPRequest        = "failed to send HTTP request"
	ErrDevServerProcess          = "server failed to process request"
	ErrDevServerDeadlineExceeded = "deadline exceeded"
	ErrDevInvalidAPIKey          = "invalid API key"
	ErrDevPanicRecovered         = "panic recovered"
	ErrDevCoerceObservationValue = "cannot coerce observation value to float64"

	// Remote store messages
	ErrDevRemoteCreateResource      = "remote store rejected create of %s"
	ErrDevRemoteReadResource        = "remote store rejected read of %s"
	ErrDevRemoteUpdateResource      = "remote store rejected update of %s"
	ErrDevRemotePatchResource       = "remote store rejected patch of %s"
	ErrDevRemoteDeleteResource      = "remote store rejected delete of %s"
	ErrDevRemotePurgeResource       = "remote store rejected purge of %s"
	ErrDevRemoteSearchResource      = "remote store rejected search of %s"
	ErrDevRemoteEverything          = "remote store rejected $everything for Patient"
	ErrDevRemoteDecodeResponse      = "failed to decode %s response from remote store"
	ErrDevRemoteResourceNotFound    = "remote store has no %s"
	ErrDevRemoteCircuitOpen         = "circuit breaker open for remote store"
	ErrDevPatientIdentifierNotFound = "search by identifier returned no Patient"
	ErrDevPatientEntryWithoutID     = "first Patient entry of search result carries no id"
)

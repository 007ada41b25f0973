package exceptions

import (
	"errors"
	"fmt"
	"healthcare-fhir-gateway/internal/pkg/constvars"
)

var (
	// Validation
	ErrInputValidation = func(err error) *CustomError {
		return buildCustomError(KindValidation, err, constvars.StatusBadRequest, FormatFirstValidationError(err), constvars.ErrDevValidationFailed)
	}
	ErrCannotParseJSON = func(err error) *CustomError {
		return buildCustomError(KindValidation, err, constvars.StatusBadRequest, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON)
	}
	ErrObservationValueNotNumeric = func(err error) *CustomError {
		return buildCustomError(KindValidation, err, constvars.StatusBadRequest, constvars.ErrClientObservationValueNotNumeric, constvars.ErrDevCoerceObservationValue)
	}
	ErrInvalidAPIKey = func(err error) *CustomError {
		return buildCustomError(KindValidation, err, constvars.StatusUnauthorized, constvars.ErrClientNotAuthorized, constvars.ErrDevInvalidAPIKey)
	}

	// Not found
	ErrResourceNotFound = func(err error, resourceType, resourceID string) *CustomError {
		return buildCustomError(KindNotFound, err, constvars.StatusNotFound, fmt.Sprintf(constvars.ErrClientResourceNotFound, resourceType, resourceID), fmt.Sprintf(constvars.ErrDevRemoteResourceNotFound, resourceType))
	}
	ErrPatientNotFoundByIdentifier = func(err error) *CustomError {
		return buildCustomError(KindNotFound, err, constvars.StatusNotFound, constvars.ErrClientPatientNotFoundByIdentifier, constvars.ErrDevPatientIdentifierNotFound)
	}

	// Remote store
	ErrRemoteStore = func(remoteStatus int, message, devMessage string) *CustomError {
		customErr := buildCustomError(KindRemote, errors.New(message), constvars.StatusInternalServerError, message, devMessage)
		customErr.RemoteStatus = remoteStatus
		return customErr
	}
	ErrRemoteCircuitOpen = func(err error) *CustomError {
		return buildCustomError(KindRemote, err, constvars.StatusServiceUnavailable, constvars.ErrClientRemoteStoreUnavailable, constvars.ErrDevRemoteCircuitOpen)
	}
	ErrDecodeResponse = func(err error, resource string) *CustomError {
		return buildCustomError(KindRemote, err, constvars.StatusInternalServerError, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevRemoteDecodeResponse, resource))
	}
	ErrPatientEntryWithoutID = func(err error) *CustomError {
		return buildCustomError(KindRemote, err, constvars.StatusInternalServerError, constvars.ErrClientCannotProcessRequest, constvars.ErrDevPatientEntryWithoutID)
	}

	// HTTP
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return buildCustomError(KindRemote, err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}
	ErrCreateHTTPRequest = func(err error) *CustomError {
		return buildCustomError(KindRemote, err, constvars.StatusInternalServerError, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCreateHTTPRequest)
	}
	ErrSendHTTPRequest = func(err error) *CustomError {
		return buildCustomError(KindRemote, err, constvars.StatusInternalServerError, constvars.ErrClientCannotProcessRequest, constvars.ErrDevSendHTTPRequest)
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return buildCustomError(KindRemote, err, constvars.StatusGatewayTimeout, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded)
	}

	// Default Server
	ErrServerProcess = func(err error) *CustomError {
		return buildCustomError(KindRemote, err, constvars.StatusInternalServerError, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevServerProcess)
	}
)

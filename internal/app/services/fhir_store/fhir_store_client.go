package fhir_store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"healthcare-fhir-gateway/internal/app/contracts"
	"healthcare-fhir-gateway/internal/app/drivers/healthcare"
	"healthcare-fhir-gateway/internal/app/drivers/observability"
	"healthcare-fhir-gateway/internal/pkg/constvars"
	"healthcare-fhir-gateway/internal/pkg/exceptions"
	"healthcare-fhir-gateway/internal/pkg/fhir_dto"

	"github.com/goccy/go-json"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type fhirStoreClient struct {
	BaseUrl string
	Client  *http.Client
	Log     *zap.Logger
	Metrics *observability.Collector
	tracer  trace.Tracer
}

// NewFhirStoreClient returns a gateway rooted at baseUrl, the ".../fhir" endpoint of a store.
// collector may be nil.
func NewFhirStoreClient(baseUrl string, httpClient *http.Client, logger *zap.Logger, collector *observability.Collector) contracts.FhirStoreClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &fhirStoreClient{
		BaseUrl: baseUrl,
		Client:  httpClient,
		Log:     logger,
		Metrics: collector,
		tracer:  otel.Tracer(observability.TracerName),
	}
}

// storeCall describes one HTTP exchange with the store.
type storeCall struct {
	operation    string
	method       string
	url          string
	resourceType string
	resourceID   string
	body         []byte
	contentType  string
	devMessage   string
	// notFoundKind selects whether a 404 is reported as NotFound or as a remote failure.
	notFoundKind bool
}

func (c *fhirStoreClient) CreateResource(ctx context.Context, resourceType string, resource interface{}) (json.RawMessage, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("fhirStoreClient.CreateResource called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
	)

	requestJSON, err := json.Marshal(resource)
	if err != nil {
		c.Log.Error("fhirStoreClient.CreateResource error marshaling JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	body, err := c.do(ctx, storeCall{
		operation:    "create",
		method:       constvars.MethodPost,
		url:          c.resourceURL(resourceType),
		resourceType: resourceType,
		body:         requestJSON,
		contentType:  constvars.MIMEApplicationFHIRJSON,
		devMessage:   constvars.ErrDevRemoteCreateResource,
	})
	if err != nil {
		return nil, err
	}

	var created fhir_dto.ResourceHeader
	if err := json.Unmarshal(body, &created); err != nil {
		c.Log.Error("fhirStoreClient.CreateResource error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, resourceType)
	}

	c.Log.Info("fhirStoreClient.CreateResource succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, created.ResourceType),
		zap.String(constvars.LoggingResourceIDKey, created.ID),
	)
	return body, nil
}

func (c *fhirStoreClient) ReadResource(ctx context.Context, resourceType, resourceID string) (json.RawMessage, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("fhirStoreClient.ReadResource called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
		zap.String(constvars.LoggingResourceIDKey, resourceID),
	)

	body, err := c.do(ctx, storeCall{
		operation:    "read",
		method:       constvars.MethodGet,
		url:          c.instanceURL(resourceType, resourceID),
		resourceType: resourceType,
		resourceID:   resourceID,
		contentType:  constvars.MIMEApplicationFHIRJSON,
		devMessage:   constvars.ErrDevRemoteReadResource,
		notFoundKind: true,
	})
	if err != nil {
		return nil, err
	}

	c.Log.Info("fhirStoreClient.ReadResource succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
		zap.String(constvars.LoggingResourceIDKey, resourceID),
	)
	return body, nil
}

func (c *fhirStoreClient) UpdateResource(ctx context.Context, resourceType, resourceID string, resource interface{}) (json.RawMessage, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("fhirStoreClient.UpdateResource called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
		zap.String(constvars.LoggingResourceIDKey, resourceID),
	)

	requestJSON, err := json.Marshal(resource)
	if err != nil {
		c.Log.Error("fhirStoreClient.UpdateResource error marshaling JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	body, err := c.do(ctx, storeCall{
		operation:    "update",
		method:       constvars.MethodPut,
		url:          c.instanceURL(resourceType, resourceID),
		resourceType: resourceType,
		resourceID:   resourceID,
		body:         requestJSON,
		contentType:  constvars.MIMEApplicationFHIRJSON,
		devMessage:   constvars.ErrDevRemoteUpdateResource,
	})
	if err != nil {
		return nil, err
	}

	c.Log.Info("fhirStoreClient.UpdateResource succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
		zap.String(constvars.LoggingResourceIDKey, resourceID),
	)
	return body, nil
}

func (c *fhirStoreClient) PatchResource(ctx context.Context, resourceType, resourceID string, operations []fhir_dto.PatchOperation) (json.RawMessage, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("fhirStoreClient.PatchResource called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
		zap.String(constvars.LoggingResourceIDKey, resourceID),
		zap.Int(constvars.LoggingPatchOpCountKey, len(operations)),
	)

	requestJSON, err := json.Marshal(operations)
	if err != nil {
		c.Log.Error("fhirStoreClient.PatchResource error marshaling JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	body, err := c.do(ctx, storeCall{
		operation:    "patch",
		method:       constvars.MethodPatch,
		url:          c.instanceURL(resourceType, resourceID),
		resourceType: resourceType,
		resourceID:   resourceID,
		body:         requestJSON,
		contentType:  constvars.MIMEApplicationJSONPatch,
		devMessage:   constvars.ErrDevRemotePatchResource,
	})
	if err != nil {
		return nil, err
	}

	c.Log.Info("fhirStoreClient.PatchResource succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
		zap.String(constvars.LoggingResourceIDKey, resourceID),
	)
	return body, nil
}

func (c *fhirStoreClient) DeleteResource(ctx context.Context, resourceType, resourceID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("fhirStoreClient.DeleteResource called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
		zap.String(constvars.LoggingResourceIDKey, resourceID),
	)

	_, err := c.do(ctx, storeCall{
		operation:    "delete",
		method:       constvars.MethodDelete,
		url:          c.instanceURL(resourceType, resourceID),
		resourceType: resourceType,
		resourceID:   resourceID,
		contentType:  constvars.MIMEApplicationFHIRJSON,
		devMessage:   constvars.ErrDevRemoteDeleteResource,
		notFoundKind: true,
	})
	if err != nil {
		return err
	}

	c.Log.Info("fhirStoreClient.DeleteResource succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
		zap.String(constvars.LoggingResourceIDKey, resourceID),
	)
	return nil
}

func (c *fhirStoreClient) PurgeResource(ctx context.Context, resourceType, resourceID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("fhirStoreClient.PurgeResource called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
		zap.String(constvars.LoggingResourceIDKey, resourceID),
	)

	_, err := c.do(ctx, storeCall{
		operation:    "purge",
		method:       constvars.MethodDelete,
		url:          c.instanceURL(resourceType, resourceID) + "/" + constvars.FhirOperationPurge,
		resourceType: resourceType,
		resourceID:   resourceID,
		contentType:  constvars.MIMEApplicationFHIRJSON,
		devMessage:   constvars.ErrDevRemotePurgeResource,
		notFoundKind: true,
	})
	if err != nil {
		return err
	}

	c.Log.Info("fhirStoreClient.PurgeResource succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
		zap.String(constvars.LoggingResourceIDKey, resourceID),
	)
	return nil
}

// SearchByIdentifier returns the search Bundle. An empty Bundle is a valid answer.
func (c *fhirStoreClient) SearchByIdentifier(ctx context.Context, resourceType, system, value string) (json.RawMessage, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("fhirStoreClient.SearchByIdentifier called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
		zap.String(constvars.LoggingIdentifierSysKey, system),
	)

	query := url.Values{}
	query.Set(constvars.FhirSearchParamIdentifier, fmt.Sprintf("%s|%s", system, value))

	body, err := c.do(ctx, storeCall{
		operation:    "search",
		method:       constvars.MethodGet,
		url:          c.resourceURL(resourceType) + "?" + query.Encode(),
		resourceType: resourceType,
		contentType:  constvars.MIMEApplicationFHIRJSON,
		devMessage:   constvars.ErrDevRemoteSearchResource,
	})
	if err != nil {
		return nil, err
	}

	var bundle fhir_dto.FHIRBundle
	if err := json.Unmarshal(body, &bundle); err != nil {
		c.Log.Error("fhirStoreClient.SearchByIdentifier error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrDecodeResponse(err, constvars.ResourceBundle)
	}

	c.Log.Info("fhirStoreClient.SearchByIdentifier succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceTypeKey, resourceType),
		zap.Int(constvars.LoggingBundleTotalKey, bundle.Total),
		zap.Int(constvars.LoggingEntryCountKey, len(bundle.Entry)),
	)
	return body, nil
}

func (c *fhirStoreClient) PatientEverything(ctx context.Context, patientID string) (json.RawMessage, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("fhirStoreClient.PatientEverything called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	body, err := c.do(ctx, storeCall{
		operation:    "everything",
		method:       constvars.MethodGet,
		url:          c.instanceURL(constvars.ResourcePatient, patientID) + "/" + constvars.FhirOperationEverything,
		resourceType: constvars.ResourcePatient,
		resourceID:   patientID,
		contentType:  constvars.MIMEApplicationFHIRJSON,
		devMessage:   constvars.ErrDevRemoteEverything,
	})
	if err != nil {
		return nil, err
	}

	c.Log.Info("fhirStoreClient.PatientEverything succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
		zap.Int(constvars.LoggingResponseLengthKey, len(body)),
	)
	return body, nil
}

func (c *fhirStoreClient) resourceURL(resourceType string) string {
	return fmt.Sprintf("%s/%s", c.BaseUrl, resourceType)
}

func (c *fhirStoreClient) instanceURL(resourceType, resourceID string) string {
	return fmt.Sprintf("%s/%s/%s", c.BaseUrl, resourceType, url.PathEscape(resourceID))
}

// do sends the call and returns the body of any 2xx answer.
func (c *fhirStoreClient) do(ctx context.Context, call storeCall) ([]byte, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	start := time.Now()

	ctx, span := c.tracer.Start(ctx, "fhir_store."+call.operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("fhir.operation", call.operation),
			attribute.String("fhir.resource_type", call.resourceType),
			attribute.String("fhir.resource_id", call.resourceID),
			attribute.String("http.request.method", call.method),
		))
	defer span.End()

	body, status, err := c.exchange(ctx, call)
	span.SetAttributes(attribute.Int("http.response.status_code", status))
	c.observe(call, start, err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.Log.Error(fmt.Sprintf("fhirStoreClient.%s failed", call.operation),
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceTypeKey, call.resourceType),
			zap.String(constvars.LoggingResourceIDKey, call.resourceID),
			zap.Int(constvars.LoggingRemoteStatusKey, status),
			zap.String(constvars.LoggingErrorTypeKey, exceptions.KindOf(err).String()),
			zap.Error(err),
		)
		return nil, err
	}
	return body, nil
}

func (c *fhirStoreClient) exchange(ctx context.Context, call storeCall) ([]byte, int, error) {
	var payload io.Reader
	if call.body != nil {
		payload = bytes.NewReader(call.body)
	}

	req, err := http.NewRequestWithContext(ctx, call.method, call.url, payload)
	if err != nil {
		return nil, 0, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, call.contentType)
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationFHIRJSON)
	if requestID, ok := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string); ok && requestID != "" {
		req.Header.Set(constvars.HeaderXRequestID, requestID)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		var netErr net.Error
		switch {
		case healthcare.IsCircuitOpen(err):
			return nil, 0, exceptions.ErrRemoteCircuitOpen(err)
		case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
			return nil, 0, exceptions.ErrServerDeadlineExceeded(err)
		default:
			return nil, 0, exceptions.ErrSendHTTPRequest(err)
		}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, exceptions.ErrSendHTTPRequest(err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return bodyBytes, resp.StatusCode, nil
	}

	message := ParseRemoteErrorMessage(resp.StatusCode, bodyBytes)
	if resp.StatusCode == constvars.StatusNotFound && call.notFoundKind {
		return nil, resp.StatusCode, exceptions.ErrResourceNotFound(errors.New(message), call.resourceType, call.resourceID)
	}

	devMessage := call.devMessage
	if call.resourceType != "" && strings.Contains(devMessage, "%s") {
		devMessage = fmt.Sprintf(devMessage, call.resourceType)
	}
	return nil, resp.StatusCode, exceptions.ErrRemoteStore(resp.StatusCode, message, devMessage)
}

func (c *fhirStoreClient) observe(call storeCall, start time.Time, err error) {
	if c.Metrics == nil {
		return
	}

	outcome := "success"
	if err != nil {
		outcome = exceptions.KindOf(err).String()
	}
	c.Metrics.StoreCallsTotal.WithLabelValues(call.operation, call.resourceType, outcome).Inc()
	c.Metrics.StoreCallDuration.WithLabelValues(call.operation, call.resourceType).Observe(time.Since(start).Seconds())
}

package contracts

import (
	"context"
	"healthcare-fhir-gateway/internal/pkg/fhir_dto"

	"github.com/goccy/go-json"
)

// FhirStoreClient performs exactly one call against the remote FHIR store per method.
// Resource bodies are returned as the store sent them.
type FhirStoreClient interface {
	CreateResource(ctx context.Context, resourceType string, resource interface{}) (json.RawMessage, error)
	ReadResource(ctx context.Context, resourceType, resourceID string) (json.RawMessage, error)
	UpdateResource(ctx context.Context, resourceType, resourceID string, resource interface{}) (json.RawMessage, error)
	PatchResource(ctx context.Context, resourceType, resourceID string, operations []fhir_dto.PatchOperation) (json.RawMessage, error)
	DeleteResource(ctx context.Context, resourceType, resourceID string) error
	PurgeResource(ctx context.Context, resourceType, resourceID string) error
	SearchByIdentifier(ctx context.Context, resourceType, system, value string) (json.RawMessage, error)
	PatientEverything(ctx context.Context, patientID string) (json.RawMessage, error)
}

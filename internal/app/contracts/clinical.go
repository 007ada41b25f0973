package contracts

import (
	"context"
	"healthcare-fhir-gateway/internal/pkg/dto/requests"
	"healthcare-fhir-gateway/internal/pkg/fhir_dto"

	"github.com/goccy/go-json"
)

type ClinicalUsecase interface {
	CreatePatient(ctx context.Context, request *requests.CreatePatient) (json.RawMessage, error)
	CreateEncounter(ctx context.Context, request *requests.CreateEncounter) (json.RawMessage, error)
	CreateCondition(ctx context.Context, request *requests.CreateCondition) (json.RawMessage, error)
	CreateProcedure(ctx context.Context, request *requests.CreateProcedure) (json.RawMessage, error)
	CreatePractitioner(ctx context.Context, request *requests.CreatePractitioner) (json.RawMessage, error)
	CreateMedicationRequest(ctx context.Context, request *requests.CreateMedicationRequest) (json.RawMessage, error)
	CreateDiagnosticReport(ctx context.Context, request *requests.CreateDiagnosticReport) (json.RawMessage, error)
	CreateObservation(ctx context.Context, request *requests.CreateObservation) (json.RawMessage, error)

	SearchPatientByMRN(ctx context.Context, mrn string) (json.RawMessage, error)
	FindEverythingByMRN(ctx context.Context, mrn string) (json.RawMessage, error)

	FindResource(ctx context.Context, key requests.ResourceKey) (json.RawMessage, error)
	UpdateResource(ctx context.Context, key requests.ResourceKey, resource fhir_dto.Resource) (json.RawMessage, error)
	PatchResource(ctx context.Context, request *requests.PatchResource) (json.RawMessage, error)
	DeleteResource(ctx context.Context, key requests.ResourceKey) error
	PurgeResource(ctx context.Context, key requests.ResourceKey) error
}

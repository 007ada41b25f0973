package clinical

import (
	"context"

	"healthcare-fhir-gateway/internal/app/contracts"
	"healthcare-fhir-gateway/internal/app/drivers/observability"
	"healthcare-fhir-gateway/internal/pkg/builders"
	"healthcare-fhir-gateway/internal/pkg/constvars"
	"healthcare-fhir-gateway/internal/pkg/dto/requests"
	"healthcare-fhir-gateway/internal/pkg/exceptions"
	"healthcare-fhir-gateway/internal/pkg/fhir_dto"
	"healthcare-fhir-gateway/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type clinicalUsecase struct {
	FhirStoreClient contracts.FhirStoreClient
	Builder         *builders.DocumentBuilder
	Log             *zap.Logger
	Metrics         *observability.Collector
}

// NewClinicalUsecase wires the use cases to a store gateway. collector may be nil.
func NewClinicalUsecase(
	fhirStoreClient contracts.FhirStoreClient,
	builder *builders.DocumentBuilder,
	logger *zap.Logger,
	collector *observability.Collector,
) contracts.ClinicalUsecase {
	return &clinicalUsecase{
		FhirStoreClient: fhirStoreClient,
		Builder:         builder,
		Log:             logger,
		Metrics:         collector,
	}
}

func (uc *clinicalUsecase) CreatePatient(ctx context.Context, request *requests.CreatePatient) (json.RawMessage, error) {
	document, err := uc.Builder.BuildPatient(request)
	if err != nil {
		return nil, err
	}
	return uc.create(ctx, constvars.ResourcePatient, document)
}

func (uc *clinicalUsecase) CreateEncounter(ctx context.Context, request *requests.CreateEncounter) (json.RawMessage, error) {
	document, err := uc.Builder.BuildEncounter(request)
	if err != nil {
		return nil, err
	}
	return uc.create(ctx, constvars.ResourceEncounter, document)
}

func (uc *clinicalUsecase) CreateCondition(ctx context.Context, request *requests.CreateCondition) (json.RawMessage, error) {
	document, err := uc.Builder.BuildCondition(request)
	if err != nil {
		return nil, err
	}
	return uc.create(ctx, constvars.ResourceCondition, document)
}

func (uc *clinicalUsecase) CreateProcedure(ctx context.Context, request *requests.CreateProcedure) (json.RawMessage, error) {
	document, err := uc.Builder.BuildProcedure(request)
	if err != nil {
		return nil, err
	}
	return uc.create(ctx, constvars.ResourceProcedure, document)
}

func (uc *clinicalUsecase) CreatePractitioner(ctx context.Context, request *requests.CreatePractitioner) (json.RawMessage, error) {
	document, err := uc.Builder.BuildPractitioner(request)
	if err != nil {
		return nil, err
	}
	return uc.create(ctx, constvars.ResourcePractitioner, document)
}

func (uc *clinicalUsecase) CreateMedicationRequest(ctx context.Context, request *requests.CreateMedicationRequest) (json.RawMessage, error) {
	document, err := uc.Builder.BuildMedicationRequest(request)
	if err != nil {
		return nil, err
	}
	return uc.create(ctx, constvars.ResourceMedicationRequest, document)
}

func (uc *clinicalUsecase) CreateDiagnosticReport(ctx context.Context, request *requests.CreateDiagnosticReport) (json.RawMessage, error) {
	document, err := uc.Builder.BuildDiagnosticReport(request)
	if err != nil {
		return nil, err
	}
	return uc.create(ctx, constvars.ResourceDiagnosticReport, document)
}

func (uc *clinicalUsecase) CreateObservation(ctx context.Context, request *requests.CreateObservation) (json.RawMessage, error) {
	document, err := uc.Builder.BuildObservation(request)
	if err != nil {
		return nil, err
	}
	return uc.create(ctx, constvars.ResourceObservation, document)
}

func (uc *clinicalUsecase) create(ctx context.Context, resourceType string, document interface{}) (json.RawMessage, error) {
	created, err := uc.FhirStoreClient.CreateResource(ctx, resourceType, document)
	if err != nil {
		return nil, err
	}
	if uc.Metrics != nil {
		uc.Metrics.ResourcesCreated.WithLabelValues(resourceType).Inc()
	}
	return created, nil
}

func (uc *clinicalUsecase) SearchPatientByMRN(ctx context.Context, mrn string) (json.RawMessage, error) {
	if mrn == "" {
		return nil, exceptions.ErrInputValidation(nil)
	}
	return uc.FhirStoreClient.SearchByIdentifier(ctx, constvars.ResourcePatient, constvars.FhirSystemMRN, mrn)
}

// FindEverythingByMRN resolves the MRN to the store's Patient id and returns that
// patient's compartment. When several patients share the MRN the first one in store
// order is used.
func (uc *clinicalUsecase) FindEverythingByMRN(ctx context.Context, mrn string) (json.RawMessage, error) {
	requestID := utils.GetRequestID(ctx)

	var everything json.RawMessage
	err := utils.LogOperation(uc.Log, "clinicalUsecase.FindEverythingByMRN", requestID, func() error {
		searchResult, err := uc.SearchPatientByMRN(ctx, mrn)
		if err != nil {
			return err
		}

		var bundle fhir_dto.FHIRBundle
		if err := json.Unmarshal(searchResult, &bundle); err != nil {
			return exceptions.ErrDecodeResponse(err, constvars.ResourceBundle)
		}

		patient, ok, err := bundle.FirstEntry()
		if err != nil {
			return exceptions.ErrDecodeResponse(err, constvars.ResourcePatient)
		}
		if !ok {
			return exceptions.ErrPatientNotFoundByIdentifier(nil)
		}
		if patient.ID == "" {
			return exceptions.ErrPatientEntryWithoutID(nil)
		}

		if len(bundle.Entry) > 1 {
			uc.Log.Warn("clinicalUsecase.FindEverythingByMRN identifier matches several patients, using the first",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Int(constvars.LoggingEntryCountKey, len(bundle.Entry)),
				zap.String(constvars.LoggingPatientIDKey, patient.ID),
			)
		}

		everything, err = uc.FhirStoreClient.PatientEverything(ctx, patient.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return everything, nil
}

func (uc *clinicalUsecase) FindResource(ctx context.Context, key requests.ResourceKey) (json.RawMessage, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	return uc.FhirStoreClient.ReadResource(ctx, key.ResourceType, key.ResourceID)
}

// UpdateResource replaces the stored resource. The body's resourceType and id are
// forced to the addressed resource.
func (uc *clinicalUsecase) UpdateResource(ctx context.Context, key requests.ResourceKey, resource fhir_dto.Resource) (json.RawMessage, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	if resource == nil {
		return nil, exceptions.ErrCannotParseJSON(nil)
	}

	resource["resourceType"] = key.ResourceType
	resource["id"] = key.ResourceID
	return uc.FhirStoreClient.UpdateResource(ctx, key.ResourceType, key.ResourceID, resource)
}

func (uc *clinicalUsecase) PatchResource(ctx context.Context, request *requests.PatchResource) (json.RawMessage, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	operations := make([]fhir_dto.PatchOperation, 0, len(request.Operations))
	for _, operation := range request.Operations {
		operations = append(operations, fhir_dto.PatchOperation{
			Op:    operation.Op,
			Path:  operation.Path,
			From:  operation.From,
			Value: operation.Value,
		})
	}
	return uc.FhirStoreClient.PatchResource(ctx, request.ResourceType, request.ResourceID, operations)
}

func (uc *clinicalUsecase) DeleteResource(ctx context.Context, key requests.ResourceKey) error {
	if err := validateKey(key); err != nil {
		return err
	}
	return uc.FhirStoreClient.DeleteResource(ctx, key.ResourceType, key.ResourceID)
}

func (uc *clinicalUsecase) PurgeResource(ctx context.Context, key requests.ResourceKey) error {
	if err := validateKey(key); err != nil {
		return err
	}
	return uc.FhirStoreClient.PurgeResource(ctx, key.ResourceType, key.ResourceID)
}

func validateKey(key requests.ResourceKey) error {
	if err := utils.ValidateStruct(key); err != nil {
		return exceptions.ErrInputValidation(err)
	}
	return nil
}

package clinical

import (
	"context"
	"errors"
	"testing"
	"time"

	"healthcare-fhir-gateway/internal/pkg/builders"
	"healthcare-fhir-gateway/internal/pkg/constvars"
	"healthcare-fhir-gateway/internal/pkg/dto/requests"
	"healthcare-fhir-gateway/internal/pkg/exceptions"
	"healthcare-fhir-gateway/internal/pkg/fhir_dto"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeFhirStoreClient answers from canned values and records which calls were made.
type fakeFhirStoreClient struct {
	t *testing.T

	searchResult   json.RawMessage
	searchErr      error
	everything     json.RawMessage
	everythingErr  error
	failOnAnyWrite bool

	created          []interface{}
	searchCalls      int
	everythingCalls  []string
	updatedResources []interface{}
	patchOperations  []fhir_dto.PatchOperation
}

func (f *fakeFhirStoreClient) CreateResource(ctx context.Context, resourceType string, resource interface{}) (json.RawMessage, error) {
	if f.failOnAnyWrite {
		f.t.Fatalf("CreateResource(%s) must not be called", resourceType)
	}
	f.created = append(f.created, resource)
	return json.RawMessage(`{"resourceType":"` + resourceType + `","id":"new-1"}`), nil
}

func (f *fakeFhirStoreClient) ReadResource(ctx context.Context, resourceType, resourceID string) (json.RawMessage, error) {
	return json.RawMessage(`{"resourceType":"` + resourceType + `","id":"` + resourceID + `"}`), nil
}

func (f *fakeFhirStoreClient) UpdateResource(ctx context.Context, resourceType, resourceID string, resource interface{}) (json.RawMessage, error) {
	if f.failOnAnyWrite {
		f.t.Fatalf("UpdateResource must not be called")
	}
	f.updatedResources = append(f.updatedResources, resource)
	return json.RawMessage(`{"resourceType":"` + resourceType + `","id":"` + resourceID + `"}`), nil
}

func (f *fakeFhirStoreClient) PatchResource(ctx context.Context, resourceType, resourceID string, operations []fhir_dto.PatchOperation) (json.RawMessage, error) {
	if f.failOnAnyWrite {
		f.t.Fatalf("PatchResource must not be called")
	}
	f.patchOperations = operations
	return json.RawMessage(`{}`), nil
}

func (f *fakeFhirStoreClient) DeleteResource(ctx context.Context, resourceType, resourceID string) error {
	if f.failOnAnyWrite {
		f.t.Fatalf("DeleteResource must not be called")
	}
	return nil
}

func (f *fakeFhirStoreClient) PurgeResource(ctx context.Context, resourceType, resourceID string) error {
	if f.failOnAnyWrite {
		f.t.Fatalf("PurgeResource must not be called")
	}
	return nil
}

func (f *fakeFhirStoreClient) SearchByIdentifier(ctx context.Context, resourceType, system, value string) (json.RawMessage, error) {
	f.searchCalls++
	assert.Equal(f.t, constvars.ResourcePatient, resourceType)
	assert.Equal(f.t, constvars.FhirSystemMRN, system)
	return f.searchResult, f.searchErr
}

func (f *fakeFhirStoreClient) PatientEverything(ctx context.Context, patientID string) (json.RawMessage, error) {
	f.everythingCalls = append(f.everythingCalls, patientID)
	return f.everything, f.everythingErr
}

func newTestUsecase(store *fakeFhirStoreClient) *clinicalUsecase {
	builder := builders.NewDocumentBuilder(time.UTC, func() time.Time {
		return time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	})
	return NewClinicalUsecase(store, builder, zap.NewNop(), nil).(*clinicalUsecase)
}

func TestFindEverythingByMRN(t *testing.T) {
	t.Run("empty search result is not found and skips everything", func(t *testing.T) {
		store := &fakeFhirStoreClient{
			t:            t,
			searchResult: json.RawMessage(`{"resourceType":"Bundle","type":"searchset","total":0}`),
		}
		uc := newTestUsecase(store)

		_, err := uc.FindEverythingByMRN(context.Background(), "UNKNOWN")
		require.Error(t, err)
		assert.True(t, exceptions.IsNotFound(err))
		assert.Equal(t, constvars.ErrClientPatientNotFoundByIdentifier, err.(*exceptions.CustomError).ClientMessage)
		assert.Empty(t, store.everythingCalls)
	})

	t.Run("first of several matches wins", func(t *testing.T) {
		store := &fakeFhirStoreClient{
			t: t,
			searchResult: json.RawMessage(`{"resourceType":"Bundle","type":"searchset","total":2,"entry":[
				{"resource":{"resourceType":"Patient","id":"p1"}},
				{"resource":{"resourceType":"Patient","id":"p2"}}]}`),
			everything: json.RawMessage(`{"resourceType":"Bundle","type":"searchset","total":1}`),
		}
		uc := newTestUsecase(store)

		result, err := uc.FindEverythingByMRN(context.Background(), "SHARED")
		require.NoError(t, err)
		assert.Equal(t, []string{"p1"}, store.everythingCalls)
		assert.JSONEq(t, string(store.everything), string(result))
	})

	t.Run("entry without id is a remote error", func(t *testing.T) {
		store := &fakeFhirStoreClient{
			t:            t,
			searchResult: json.RawMessage(`{"resourceType":"Bundle","total":1,"entry":[{"resource":{"resourceType":"Patient"}}]}`),
		}
		uc := newTestUsecase(store)

		_, err := uc.FindEverythingByMRN(context.Background(), "MRN1")
		require.Error(t, err)
		assert.Equal(t, exceptions.KindRemote, exceptions.KindOf(err))
		assert.Empty(t, store.everythingCalls)
	})

	t.Run("search failure propagates", func(t *testing.T) {
		store := &fakeFhirStoreClient{
			t:         t,
			searchErr: exceptions.ErrRemoteStore(503, "store down", "remote store rejected search of Patient"),
		}
		uc := newTestUsecase(store)

		_, err := uc.FindEverythingByMRN(context.Background(), "MRN1")
		require.Error(t, err)
		assert.Equal(t, exceptions.KindRemote, exceptions.KindOf(err))
		assert.Empty(t, store.everythingCalls)
	})

	t.Run("everything failure is reported as a single failure", func(t *testing.T) {
		store := &fakeFhirStoreClient{
			t:             t,
			searchResult:  json.RawMessage(`{"resourceType":"Bundle","total":1,"entry":[{"resource":{"resourceType":"Patient","id":"p1"}}]}`),
			everythingErr: exceptions.ErrSendHTTPRequest(errors.New("connection reset")),
		}
		uc := newTestUsecase(store)

		_, err := uc.FindEverythingByMRN(context.Background(), "MRN1")
		require.Error(t, err)
		assert.Equal(t, exceptions.KindRemote, exceptions.KindOf(err))
		assert.Equal(t, []string{"p1"}, store.everythingCalls)
	})
}

func TestCreateRejectsInvalidInputWithoutCallingStore(t *testing.T) {
	store := &fakeFhirStoreClient{t: t, failOnAnyWrite: true}
	uc := newTestUsecase(store)
	ctx := context.Background()

	_, err := uc.CreatePatient(ctx, &requests.CreatePatient{FamilyName: "Tan"})
	assert.True(t, exceptions.IsValidation(err))

	_, err = uc.CreateEncounter(ctx, &requests.CreateEncounter{PatientID: "p1"})
	assert.True(t, exceptions.IsValidation(err))

	_, err = uc.CreateObservation(ctx, &requests.CreateObservation{
		PatientID:          "p1",
		EncounterID:        "e1",
		ObservationStatus:  "final",
		LoincCode:          "8310-5",
		ObservationDisplay: "Body temperature",
		ObservationValue:   "abc",
		ObservationUnit:    "F",
	})
	assert.True(t, exceptions.IsValidation(err))

	_, err = uc.UpdateResource(ctx, requests.ResourceKey{ResourceType: "Unicorn", ResourceID: "u1"}, fhir_dto.Resource{})
	assert.True(t, exceptions.IsValidation(err))

	err = uc.DeleteResource(ctx, requests.ResourceKey{ResourceType: constvars.ResourcePatient})
	assert.True(t, exceptions.IsValidation(err))

	_, err = uc.PatchResource(ctx, &requests.PatchResource{
		ResourceKey: requests.ResourceKey{ResourceType: constvars.ResourcePatient, ResourceID: "p1"},
		Operations:  []requests.PatchOperation{{Op: "move", Path: "/gender"}},
	})
	require.Error(t, err)
	assert.True(t, exceptions.IsValidation(err))
	assert.Equal(t, "from is required when Op is move", err.(*exceptions.CustomError).ClientMessage)

	_, err = uc.PatchResource(ctx, &requests.PatchResource{
		ResourceKey: requests.ResourceKey{ResourceType: constvars.ResourcePatient, ResourceID: "p1"},
		Operations:  []requests.PatchOperation{{Op: "replace", Path: "/gender"}},
	})
	require.Error(t, err)
	assert.Equal(t, "value is required when Op is replace", err.(*exceptions.CustomError).ClientMessage)

	assert.Empty(t, store.created)
}

func TestCreateEncounterSendsReference(t *testing.T) {
	store := &fakeFhirStoreClient{t: t}
	uc := newTestUsecase(store)

	result, err := uc.CreateEncounter(context.Background(), &requests.CreateEncounter{
		PatientID:       "p1",
		EncounterStatus: "in-progress",
		EncounterText:   "checkup",
	})
	require.NoError(t, err)
	assert.Contains(t, string(result), `"id":"new-1"`)

	require.Len(t, store.created, 1)
	encounter, ok := store.created[0].(*fhir_dto.Encounter)
	require.True(t, ok)
	assert.Equal(t, "Patient/p1", encounter.Subject.Reference)
}

func TestUpdateResourceForcesKey(t *testing.T) {
	store := &fakeFhirStoreClient{t: t}
	uc := newTestUsecase(store)

	_, err := uc.UpdateResource(context.Background(),
		requests.ResourceKey{ResourceType: constvars.ResourcePatient, ResourceID: "p1"},
		fhir_dto.Resource{"resourceType": "Observation", "id": "other", "gender": "female"},
	)
	require.NoError(t, err)

	require.Len(t, store.updatedResources, 1)
	updated := store.updatedResources[0].(fhir_dto.Resource)
	assert.Equal(t, constvars.ResourcePatient, updated.ResourceType())
	assert.Equal(t, "p1", updated.ID())
	assert.Equal(t, "female", updated["gender"])
}

func TestPatchResourceMapsOperations(t *testing.T) {
	store := &fakeFhirStoreClient{t: t}
	uc := newTestUsecase(store)

	_, err := uc.PatchResource(context.Background(), &requests.PatchResource{
		ResourceKey: requests.ResourceKey{ResourceType: constvars.ResourcePatient, ResourceID: "p1"},
		Operations: []requests.PatchOperation{
			{Op: "replace", Path: "/gender", Value: json.RawMessage(`"female"`)},
			{Op: "copy", From: "/name/0", Path: "/name/1"},
			{Op: "replace", Path: "/active", Value: json.RawMessage(`null`)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []fhir_dto.PatchOperation{
		{Op: "replace", Path: "/gender", Value: json.RawMessage(`"female"`)},
		{Op: "copy", From: "/name/0", Path: "/name/1"},
		{Op: "replace", Path: "/active", Value: json.RawMessage(`null`)},
	}, store.patchOperations)
}

func createFrom[T any](create func(context.Context, *T) (json.RawMessage, error)) func([]byte) error {
	return func(body []byte) error {
		request := new(T)
		if err := json.Unmarshal(body, request); err != nil {
			return err
		}
		_, err := create(context.Background(), request)
		return err
	}
}

func TestCreateRejectsEachMissingField(t *testing.T) {
	store := &fakeFhirStoreClient{t: t, failOnAnyWrite: true}
	uc := newTestUsecase(store)

	testCases := []struct {
		kind   string
		valid  map[string]interface{}
		create func([]byte) error
	}{
		{
			kind: constvars.ResourcePatient,
			valid: map[string]interface{}{
				"family_name": "Tan", "given_name": "Wei", "gender": "male", "birth_date": "1990-01-01", "mrn": "MRN123",
			},
			create: createFrom(uc.CreatePatient),
		},
		{
			kind: constvars.ResourceEncounter,
			valid: map[string]interface{}{
				"patient_id": "p1", "encounter_status": "in-progress", "encounter_text": "checkup",
			},
			create: createFrom(uc.CreateEncounter),
		},
		{
			kind: constvars.ResourceCondition,
			valid: map[string]interface{}{
				"patient_id": "p1", "clinical_status": "active", "verification_status": "confirmed",
				"snomed_code": "38341003", "condition_display": "Hypertension",
			},
			create: createFrom(uc.CreateCondition),
		},
		{
			kind: constvars.ResourceProcedure,
			valid: map[string]interface{}{
				"patient_id": "p1", "encounter_id": "e1", "procedure_status": "completed",
				"snomed_code": "80146002", "procedure_display": "Appendectomy", "reason_text": "appendicitis",
			},
			create: createFrom(uc.CreateProcedure),
		},
		{
			kind: constvars.ResourcePractitioner,
			valid: map[string]interface{}{
				"npi": "1234567890", "family_name": "Lim", "given_name": "Mei",
			},
			create: createFrom(uc.CreatePractitioner),
		},
		{
			kind: constvars.ResourceMedicationRequest,
			valid: map[string]interface{}{
				"patient_id": "p1", "practitioner_id": "dr1", "medication_status": "active", "medication_intent": "order",
				"rxnorm_code": "197361", "medication_display": "Amlodipine 5 MG", "practitioner_display": "Dr. Lim",
				"dosage_text": "once daily",
			},
			create: createFrom(uc.CreateMedicationRequest),
		},
		{
			kind: constvars.ResourceDiagnosticReport,
			valid: map[string]interface{}{
				"patient_id": "p1", "encounter_id": "e1", "practitioner_id": "dr1", "report_status": "final",
				"loinc_code": "58410-2", "report_display": "CBC panel", "conclusion": "normal",
			},
			create: createFrom(uc.CreateDiagnosticReport),
		},
		{
			kind: constvars.ResourceObservation,
			valid: map[string]interface{}{
				"patient_id": "p1", "encounter_id": "e1", "observation_status": "final", "loinc_code": "8310-5",
				"observation_display": "Body temperature", "observation_value": 98.6, "observation_unit": "F",
			},
			create: createFrom(uc.CreateObservation),
		},
	}

	for _, tc := range testCases {
		for field := range tc.valid {
			t.Run(tc.kind+" without "+field, func(t *testing.T) {
				body := make(map[string]interface{}, len(tc.valid)-1)
				for key, value := range tc.valid {
					if key != field {
						body[key] = value
					}
				}
				encoded, err := json.Marshal(body)
				require.NoError(t, err)

				err = tc.create(encoded)
				require.Error(t, err)
				assert.True(t, exceptions.IsValidation(err))
				assert.Contains(t, err.(*exceptions.CustomError).ClientMessage, field)
			})
		}
	}
	assert.Empty(t, store.created)
}

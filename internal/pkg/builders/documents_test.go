package builders

import (
	"testing"
	"time"

	"healthcare-fhir-gateway/internal/pkg/constvars"
	"healthcare-fhir-gateway/internal/pkg/dto/requests"
	"healthcare-fhir-gateway/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedInstant = time.Date(2024, time.May, 1, 3, 4, 5, 123456000, time.UTC)

func newTestBuilder() *DocumentBuilder {
	jakarta := time.FixedZone("WIB", 7*60*60)
	return NewDocumentBuilder(jakarta, func() time.Time { return fixedInstant })
}

func TestBuildPatient(t *testing.T) {
	builder := newTestBuilder()

	t.Run("complete request", func(t *testing.T) {
		patient, err := builder.BuildPatient(&requests.CreatePatient{
			FamilyName: "Tan",
			GivenName:  "Wei",
			Gender:     "male",
			BirthDate:  "1990-01-01",
			MRN:        "MRN123",
		})
		require.NoError(t, err)

		assert.Equal(t, constvars.ResourcePatient, patient.ResourceType)
		assert.Empty(t, patient.ID)
		require.Len(t, patient.Name, 1)
		assert.Equal(t, "official", patient.Name[0].Use)
		assert.Equal(t, "Tan", patient.Name[0].Family)
		assert.Equal(t, []string{"Wei"}, patient.Name[0].Given)
		assert.Equal(t, "male", patient.Gender)
		assert.Equal(t, "1990-01-01", patient.BirthDate)

		require.Len(t, patient.Identifier, 1)
		identifier := patient.Identifier[0]
		assert.Equal(t, "usual", identifier.Use)
		assert.Equal(t, constvars.FhirSystemMRN, identifier.System)
		assert.Equal(t, "MRN123", identifier.Value)
		require.NotNil(t, identifier.Type)
		assert.Equal(t, "MR", identifier.Type.Coding[0].Code)
	})

	t.Run("missing mrn", func(t *testing.T) {
		_, err := builder.BuildPatient(&requests.CreatePatient{
			FamilyName: "Tan",
			GivenName:  "Wei",
			Gender:     "male",
			BirthDate:  "1990-01-01",
		})
		require.Error(t, err)
		assert.True(t, exceptions.IsValidation(err))
		assert.Contains(t, err.(*exceptions.CustomError).ClientMessage, "mrn is required")
	})
}

func TestBuildEncounter(t *testing.T) {
	builder := newTestBuilder()

	encounter, err := builder.BuildEncounter(&requests.CreateEncounter{
		PatientID:       "p1",
		EncounterStatus: "in-progress",
		EncounterText:   "checkup",
	})
	require.NoError(t, err)

	assert.Equal(t, constvars.ResourceEncounter, encounter.ResourceType)
	assert.Equal(t, "Patient/p1", encounter.Subject.Reference)
	assert.Equal(t, "in-progress", encounter.Status)
	assert.Equal(t, "IMP", encounter.Class.Code)
	assert.Equal(t, "checkup", encounter.ReasonCode[0].Text)
}

func TestBuildCondition(t *testing.T) {
	builder := newTestBuilder()

	condition, err := builder.BuildCondition(&requests.CreateCondition{
		PatientID:          "p1",
		ClinicalStatus:     "Active",
		VerificationStatus: "Confirmed",
		SnomedCode:         "38341003",
		ConditionDisplay:   "Hypertension",
	})
	require.NoError(t, err)

	assert.Equal(t, constvars.ResourceCondition, condition.ResourceType)
	assert.Equal(t, "Patient/p1", condition.Subject.Reference)
	assert.Equal(t, constvars.FhirSystemSNOMED, condition.Code.Coding[0].System)
	assert.Equal(t, "active", condition.ClinicalStatus.Coding[0].Code)
	assert.Equal(t, "Active", condition.ClinicalStatus.Coding[0].Display)
	assert.Equal(t, "confirmed", condition.VerificationStatus.Coding[0].Code)
	assert.Equal(t, "2024-05-01T10:04:05.123456+07:00", condition.OnsetDateTime)
}

func TestBuildProcedure(t *testing.T) {
	builder := newTestBuilder()

	procedure, err := builder.BuildProcedure(&requests.CreateProcedure{
		PatientID:        "p1",
		EncounterID:      "e1",
		ProcedureStatus:  "completed",
		SnomedCode:       "80146002",
		ProcedureDisplay: "Appendectomy",
		ReasonText:       "Appendicitis",
	})
	require.NoError(t, err)

	assert.Equal(t, constvars.ResourceProcedure, procedure.ResourceType)
	assert.Equal(t, "Patient/p1", procedure.Subject.Reference)
	assert.Equal(t, "Encounter/e1", procedure.Encounter.Reference)
	assert.Equal(t, "2024-05-01T10:04:05.123456+07:00", procedure.PerformedPeriod.Start)
	assert.Equal(t, procedure.PerformedPeriod.Start, procedure.PerformedPeriod.End)
	assert.Equal(t, "Appendicitis", procedure.ReasonCode[0].Text)
}

func TestBuildPractitioner(t *testing.T) {
	builder := newTestBuilder()

	practitioner, err := builder.BuildPractitioner(&requests.CreatePractitioner{
		NPI:        "1234567890",
		FamilyName: "Lim",
		GivenName:  "Mei",
	})
	require.NoError(t, err)

	assert.Equal(t, constvars.ResourcePractitioner, practitioner.ResourceType)
	assert.Equal(t, constvars.FhirSystemNPI, practitioner.Identifier[0].System)
	assert.Equal(t, "1234567890", practitioner.Identifier[0].Value)
	assert.Equal(t, []string{"Dr."}, practitioner.Name[0].Prefix)
}

func TestBuildMedicationRequest(t *testing.T) {
	builder := newTestBuilder()

	medicationRequest, err := builder.BuildMedicationRequest(&requests.CreateMedicationRequest{
		PatientID:           "p1",
		PractitionerID:      "dr1",
		MedicationStatus:    "active",
		MedicationIntent:    "order",
		RxNormCode:          "197361",
		MedicationDisplay:   "Amlodipine 5 MG",
		PractitionerDisplay: "Dr. Mei Lim",
		DosageText:          "once daily",
	})
	require.NoError(t, err)

	assert.Equal(t, constvars.ResourceMedicationRequest, medicationRequest.ResourceType)
	assert.Equal(t, "Patient/p1", medicationRequest.Subject.Reference)
	assert.Equal(t, "Practitioner/dr1", medicationRequest.Requester.Reference)
	assert.Equal(t, constvars.FhirSystemRxNorm, medicationRequest.MedicationCodeableConcept.Coding[0].System)
	assert.Equal(t, "2024-05-01T03:04:05.123456+00:00", medicationRequest.AuthoredOn)
	assert.Equal(t, "once daily", medicationRequest.DosageInstruction[0].Text)
}

func TestBuildDiagnosticReport(t *testing.T) {
	builder := newTestBuilder()

	report, err := builder.BuildDiagnosticReport(&requests.CreateDiagnosticReport{
		PatientID:      "p1",
		EncounterID:    "e1",
		PractitionerID: "dr1",
		ReportStatus:   "final",
		LoincCode:      "58410-2",
		ReportDisplay:  "CBC panel",
		Conclusion:     "Normal",
	})
	require.NoError(t, err)

	assert.Equal(t, constvars.ResourceDiagnosticReport, report.ResourceType)
	assert.Equal(t, "Patient/p1", report.Subject.Reference)
	assert.Equal(t, "Encounter/e1", report.Encounter.Reference)
	assert.Equal(t, "Practitioner/dr1", report.Performer[0].Reference)
	assert.Equal(t, constvars.FhirSystemLOINC, report.Code.Coding[0].System)
	assert.Equal(t, "2024-05-01T03:04:05.123456+00:00", report.Issued)
	assert.Equal(t, report.Issued, report.EffectiveDateTime)
}

func TestBuildObservation(t *testing.T) {
	builder := newTestBuilder()
	request := func(value interface{}) *requests.CreateObservation {
		return &requests.CreateObservation{
			PatientID:          "p1",
			EncounterID:        "e1",
			ObservationStatus:  "final",
			LoincCode:          "8310-5",
			ObservationDisplay: "Body temperature",
			ObservationValue:   value,
			ObservationUnit:    "F",
		}
	}

	t.Run("numeric string is coerced", func(t *testing.T) {
		observation, err := builder.BuildObservation(request("98.6"))
		require.NoError(t, err)

		assert.Equal(t, constvars.ResourceObservation, observation.ResourceType)
		assert.Equal(t, "Patient/p1", observation.Subject.Reference)
		assert.Equal(t, "Encounter/e1", observation.Encounter.Reference)
		assert.Equal(t, 98.6, observation.ValueQuantity.Value)
		assert.Equal(t, "F", observation.ValueQuantity.Unit)

		encoded, err := json.Marshal(observation)
		require.NoError(t, err)
		assert.Contains(t, string(encoded), `"valueQuantity":{"value":98.6,"unit":"F"}`)
	})

	t.Run("json number is accepted", func(t *testing.T) {
		observation, err := builder.BuildObservation(request(float64(37)))
		require.NoError(t, err)
		assert.Equal(t, 37.0, observation.ValueQuantity.Value)
	})

	t.Run("non numeric value fails", func(t *testing.T) {
		_, err := builder.BuildObservation(request("abc"))
		require.Error(t, err)
		assert.True(t, exceptions.IsValidation(err))
		assert.Equal(t, constvars.ErrClientObservationValueNotNumeric, err.(*exceptions.CustomError).ClientMessage)
	})

	t.Run("missing value fails", func(t *testing.T) {
		_, err := builder.BuildObservation(request(nil))
		require.Error(t, err)
		assert.True(t, exceptions.IsValidation(err))
	})
}

func TestBuildersRejectMissingFields(t *testing.T) {
	builder := newTestBuilder()

	tests := []struct {
		name  string
		build func() error
	}{
		{"encounter without patient", func() error {
			_, err := builder.BuildEncounter(&requests.CreateEncounter{EncounterStatus: "planned", EncounterText: "x"})
			return err
		}},
		{"condition without code", func() error {
			_, err := builder.BuildCondition(&requests.CreateCondition{PatientID: "p1", ClinicalStatus: "a", VerificationStatus: "b", ConditionDisplay: "c"})
			return err
		}},
		{"procedure without encounter", func() error {
			_, err := builder.BuildProcedure(&requests.CreateProcedure{PatientID: "p1", ProcedureStatus: "done", SnomedCode: "1", ProcedureDisplay: "d", ReasonText: "r"})
			return err
		}},
		{"practitioner without npi", func() error {
			_, err := builder.BuildPractitioner(&requests.CreatePractitioner{FamilyName: "Lim", GivenName: "Mei"})
			return err
		}},
		{"medication request without dosage", func() error {
			_, err := builder.BuildMedicationRequest(&requests.CreateMedicationRequest{PatientID: "p1", PractitionerID: "dr1", MedicationStatus: "active", MedicationIntent: "order", RxNormCode: "1", MedicationDisplay: "m", PractitionerDisplay: "d"})
			return err
		}},
		{"diagnostic report without conclusion", func() error {
			_, err := builder.BuildDiagnosticReport(&requests.CreateDiagnosticReport{PatientID: "p1", EncounterID: "e1", PractitionerID: "dr1", ReportStatus: "final", LoincCode: "1", ReportDisplay: "r"})
			return err
		}},
		{"observation without unit", func() error {
			_, err := builder.BuildObservation(&requests.CreateObservation{PatientID: "p1", EncounterID: "e1", ObservationStatus: "final", LoincCode: "1", ObservationDisplay: "o", ObservationValue: "1"})
			return err
		}},
		{"reference id with illegal characters", func() error {
			_, err := builder.BuildEncounter(&requests.CreateEncounter{PatientID: "p1/../x", EncounterStatus: "planned", EncounterText: "x"})
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build()
			require.Error(t, err)
			assert.Equal(t, exceptions.KindValidation, exceptions.KindOf(err))
		})
	}
}

package requests

type CreatePatient struct {
	FamilyName string `json:"family_name" validate:"required"`
	GivenName  string `json:"given_name" validate:"required"`
	Gender     string `json:"gender" validate:"required"`
	BirthDate  string `json:"birth_date" validate:"required"`
	MRN        string `json:"mrn" validate:"required"`
}

type CreateEncounter struct {
	PatientID       string `json:"patient_id" validate:"required,fhir_id"`
	EncounterStatus string `json:"encounter_status" validate:"required"`
	EncounterText   string `json:"encounter_text" validate:"required"`
}

type CreateCondition struct {
	PatientID          string `json:"patient_id" validate:"required,fhir_id"`
	ClinicalStatus     string `json:"clinical_status" validate:"required"`
	VerificationStatus string `json:"verification_status" validate:"required"`
	SnomedCode         string `json:"snomed_code" validate:"required"`
	ConditionDisplay   string `json:"condition_display" validate:"required"`
}

type CreateProcedure struct {
	PatientID        string `json:"patient_id" validate:"required,fhir_id"`
	EncounterID      string `json:"encounter_id" validate:"required,fhir_id"`
	ProcedureStatus  string `json:"procedure_status" validate:"required"`
	SnomedCode       string `json:"snomed_code" validate:"required"`
	ProcedureDisplay string `json:"procedure_display" validate:"required"`
	ReasonText       string `json:"reason_text" validate:"required"`
}

type CreatePractitioner struct {
	NPI        string `json:"npi" validate:"required"`
	FamilyName string `json:"family_name" validate:"required"`
	GivenName  string `json:"given_name" validate:"required"`
}

type CreateMedicationRequest struct {
	PatientID           string `json:"patient_id" validate:"required,fhir_id"`
	PractitionerID      string `json:"practitioner_id" validate:"required,fhir_id"`
	MedicationStatus    string `json:"medication_status" validate:"required"`
	MedicationIntent    string `json:"medication_intent" validate:"required"`
	RxNormCode          string `json:"rxnorm_code" validate:"required"`
	MedicationDisplay   string `json:"medication_display" validate:"required"`
	PractitionerDisplay string `json:"practitioner_display" validate:"required"`
	DosageText          string `json:"dosage_text" validate:"required"`
}

type CreateDiagnosticReport struct {
	PatientID      string `json:"patient_id" validate:"required,fhir_id"`
	EncounterID    string `json:"encounter_id" validate:"required,fhir_id"`
	PractitionerID string `json:"practitioner_id" validate:"required,fhir_id"`
	ReportStatus   string `json:"report_status" validate:"required"`
	LoincCode      string `json:"loinc_code" validate:"required"`
	ReportDisplay  string `json:"report_display" validate:"required"`
	Conclusion     string `json:"conclusion" validate:"required"`
}

// CreateObservation.ObservationValue holds whatever JSON the caller sent, either a
// number or a numeric string. It is coerced to float64 by the builder, which also
// reports it missing.
type CreateObservation struct {
	PatientID          string      `json:"patient_id" validate:"required,fhir_id"`
	EncounterID        string      `json:"encounter_id" validate:"required,fhir_id"`
	ObservationStatus  string      `json:"observation_status" validate:"required"`
	LoincCode          string      `json:"loinc_code" validate:"required"`
	ObservationDisplay string      `json:"observation_display" validate:"required"`
	ObservationValue   interface{} `json:"observation_value"`
	ObservationUnit    string      `json:"observation_unit" validate:"required"`
}

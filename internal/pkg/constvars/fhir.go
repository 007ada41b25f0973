package constvars

const (
	ResourcePatient           = "Patient"
	ResourceEncounter         = "Encounter"
	ResourceCondition         = "Condition"
	ResourceProcedure         = "Procedure"
	ResourcePractitioner      = "Practitioner"
	ResourceMedicationRequest = "MedicationRequest"
	ResourceDiagnosticReport  = "DiagnosticReport"
	ResourceObservation       = "Observation"
	ResourceBundle            = "Bundle"
	ResourceOperationOutcome  = "OperationOutcome"
)

// ClinicalResourceTypes is the closed set of resource kinds this service reads and writes.
var ClinicalResourceTypes = []string{
	ResourcePatient,
	ResourceEncounter,
	ResourceCondition,
	ResourceProcedure,
	ResourcePractitioner,
	ResourceMedicationRequest,
	ResourceDiagnosticReport,
	ResourceObservation,
}

func IsClinicalResourceType(resourceType string) bool {
	for _, known := range ClinicalResourceTypes {
		if known == resourceType {
			return true
		}
	}
	return false
}

// Coding systems. The MRN system is shared by Patient creation and MRN search;
// any drift between the two makes searches silently return nothing.
const (
	FhirSystemMRN                   = "urn:oid:1.2.36.146.595.217.0.1"
	FhirSystemIdentifierType        = "http://terminology.hl7.org/CodeSystem/v2-0203"
	FhirSystemNPI                   = "http://hl7.org/fhir/sid/us-npi"
	FhirSystemActCode               = "http://hl7.org/fhir/v3/ActCode"
	FhirSystemConditionClinical     = "http://terminology.hl7.org/CodeSystem/condition-clinical"
	FhirSystemConditionVerification = "http://terminology.hl7.org/CodeSystem/condition-ver-status"
	FhirSystemSNOMED                = "http://snomed.info/sct"
	FhirSystemLOINC                 = "http://loinc.org"
	FhirSystemRxNorm                = "http://www.nlm.nih.gov/research/umls/rxnorm"
)

const (
	FhirIdentifierTypeCodeMR    = "MR"
	FhirIdentifierTypeDisplayMR = "Medical Record Number"
	FhirIdentifierUseUsual      = "usual"
	FhirNameUseOfficial         = "official"
	FhirPractitionerPrefix      = "Dr."

	FhirEncounterClassCodeInpatient    = "IMP"
	FhirEncounterClassDisplayInpatient = "inpatient encounter"

	FhirConditionClinicalCodeActive        = "active"
	FhirConditionVerificationCodeConfirmed = "confirmed"
)

const (
	FhirOperationEverything   = "$everything"
	FhirOperationPurge        = "$purge"
	FhirSearchParamIdentifier = "identifier"
)

// FhirDateTimeLayout renders instants with microseconds and a numeric UTC offset.
const FhirDateTimeLayout = "2006-01-02T15:04:05.000000-07:00"

const (
	JSONPatchOpAdd     = "add"
	JSONPatchOpRemove  = "remove"
	JSONPatchOpReplace = "replace"
	JSONPatchOpMove    = "move"
	JSONPatchOpCopy    = "copy"
	JSONPatchOpTest    = "test"
)

// GoogleHealthcareStorePathFormat expands to
// projects/{project}/locations/{location}/datasets/{dataset}/fhirStores/{store}/fhir.
const GoogleHealthcareStorePathFormat = "%s/projects/%s/locations/%s/datasets/%s/fhirStores/%s/fhir"

// FhirStoreBreakerName labels the circuit breaker guarding the FHIR store.
const FhirStoreBreakerName = "fhir-store"

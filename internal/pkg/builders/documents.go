package builders

import (
	"healthcare-fhir-gateway/internal/pkg/constvars"
	"healthcare-fhir-gateway/internal/pkg/dto/requests"
	"healthcare-fhir-gateway/internal/pkg/exceptions"
	"healthcare-fhir-gateway/internal/pkg/fhir_dto"
	"healthcare-fhir-gateway/internal/pkg/utils"
)

func (b *DocumentBuilder) BuildPatient(request *requests.CreatePatient) (*fhir_dto.Patient, error) {
	if err := validateRequest(request); err != nil {
		return nil, err
	}

	return &fhir_dto.Patient{
		ResourceType: constvars.ResourcePatient,
		Name: []fhir_dto.HumanName{
			{
				Use:    constvars.FhirNameUseOfficial,
				Family: request.FamilyName,
				Given:  []string{request.GivenName},
			},
		},
		Gender:    request.Gender,
		BirthDate: request.BirthDate,
		Identifier: []fhir_dto.Identifier{
			{
				Use: constvars.FhirIdentifierUseUsual,
				Type: &fhir_dto.CodeableConcept{
					Coding: []fhir_dto.Coding{
						{
							System:  constvars.FhirSystemIdentifierType,
							Code:    constvars.FhirIdentifierTypeCodeMR,
							Display: constvars.FhirIdentifierTypeDisplayMR,
						},
					},
				},
				System: constvars.FhirSystemMRN,
				Value:  request.MRN,
			},
		},
	}, nil
}

func (b *DocumentBuilder) BuildEncounter(request *requests.CreateEncounter) (*fhir_dto.Encounter, error) {
	if err := validateRequest(request); err != nil {
		return nil, err
	}

	return &fhir_dto.Encounter{
		ResourceType: constvars.ResourceEncounter,
		Status:       request.EncounterStatus,
		Class: fhir_dto.Coding{
			System:  constvars.FhirSystemActCode,
			Code:    constvars.FhirEncounterClassCodeInpatient,
			Display: constvars.FhirEncounterClassDisplayInpatient,
		},
		ReasonCode: []fhir_dto.CodeableConcept{
			{Text: request.EncounterText},
		},
		Subject: fhir_dto.Reference{
			Reference: Reference(constvars.ResourcePatient, request.PatientID),
		},
	}, nil
}

func (b *DocumentBuilder) BuildCondition(request *requests.CreateCondition) (*fhir_dto.Condition, error) {
	if err := validateRequest(request); err != nil {
		return nil, err
	}

	return &fhir_dto.Condition{
		ResourceType: constvars.ResourceCondition,
		ClinicalStatus: &fhir_dto.CodeableConcept{
			Coding: []fhir_dto.Coding{
				{
					System:  constvars.FhirSystemConditionClinical,
					Code:    constvars.FhirConditionClinicalCodeActive,
					Display: request.ClinicalStatus,
				},
			},
		},
		VerificationStatus: &fhir_dto.CodeableConcept{
			Coding: []fhir_dto.Coding{
				{
					System:  constvars.FhirSystemConditionVerification,
					Code:    constvars.FhirConditionVerificationCodeConfirmed,
					Display: request.VerificationStatus,
				},
			},
		},
		Code: &fhir_dto.CodeableConcept{
			Coding: []fhir_dto.Coding{
				{
					System:  constvars.FhirSystemSNOMED,
					Code:    request.SnomedCode,
					Display: request.ConditionDisplay,
				},
			},
			Text: request.ConditionDisplay,
		},
		Subject: fhir_dto.Reference{
			Reference: Reference(constvars.ResourcePatient, request.PatientID),
		},
		OnsetDateTime: b.localNow(),
	}, nil
}

func (b *DocumentBuilder) BuildProcedure(request *requests.CreateProcedure) (*fhir_dto.Procedure, error) {
	if err := validateRequest(request); err != nil {
		return nil, err
	}

	now := b.localNow()
	return &fhir_dto.Procedure{
		ResourceType: constvars.ResourceProcedure,
		Status:       request.ProcedureStatus,
		Code: &fhir_dto.CodeableConcept{
			Coding: []fhir_dto.Coding{
				{
					System:  constvars.FhirSystemSNOMED,
					Code:    request.SnomedCode,
					Display: request.ProcedureDisplay,
				},
			},
			Text: request.ProcedureDisplay,
		},
		Subject: fhir_dto.Reference{
			Reference: Reference(constvars.ResourcePatient, request.PatientID),
		},
		Encounter: &fhir_dto.Reference{
			Reference: Reference(constvars.ResourceEncounter, request.EncounterID),
		},
		PerformedPeriod: &fhir_dto.Period{
			Start: now,
			End:   now,
		},
		ReasonCode: []fhir_dto.CodeableConcept{
			{Text: request.ReasonText},
		},
	}, nil
}

func (b *DocumentBuilder) BuildPractitioner(request *requests.CreatePractitioner) (*fhir_dto.Practitioner, error) {
	if err := validateRequest(request); err != nil {
		return nil, err
	}

	return &fhir_dto.Practitioner{
		ResourceType: constvars.ResourcePractitioner,
		Identifier: []fhir_dto.Identifier{
			{
				System: constvars.FhirSystemNPI,
				Value:  request.NPI,
			},
		},
		Name: []fhir_dto.HumanName{
			{
				Family: request.FamilyName,
				Given:  []string{request.GivenName},
				Prefix: []string{constvars.FhirPractitionerPrefix},
			},
		},
	}, nil
}

func (b *DocumentBuilder) BuildMedicationRequest(request *requests.CreateMedicationRequest) (*fhir_dto.MedicationRequest, error) {
	if err := validateRequest(request); err != nil {
		return nil, err
	}

	return &fhir_dto.MedicationRequest{
		ResourceType: constvars.ResourceMedicationRequest,
		Status:       request.MedicationStatus,
		Intent:       request.MedicationIntent,
		MedicationCodeableConcept: &fhir_dto.CodeableConcept{
			Coding: []fhir_dto.Coding{
				{
					System:  constvars.FhirSystemRxNorm,
					Code:    request.RxNormCode,
					Display: request.MedicationDisplay,
				},
			},
			Text: request.MedicationDisplay,
		},
		Subject: fhir_dto.Reference{
			Reference: Reference(constvars.ResourcePatient, request.PatientID),
		},
		AuthoredOn: b.utcNow(),
		Requester: &fhir_dto.Reference{
			Reference: Reference(constvars.ResourcePractitioner, request.PractitionerID),
			Display:   request.PractitionerDisplay,
		},
		DosageInstruction: []fhir_dto.Dosage{
			{Text: request.DosageText},
		},
	}, nil
}

func (b *DocumentBuilder) BuildDiagnosticReport(request *requests.CreateDiagnosticReport) (*fhir_dto.DiagnosticReport, error) {
	if err := validateRequest(request); err != nil {
		return nil, err
	}

	now := b.utcNow()
	return &fhir_dto.DiagnosticReport{
		ResourceType: constvars.ResourceDiagnosticReport,
		Status:       request.ReportStatus,
		Code: fhir_dto.CodeableConcept{
			Coding: []fhir_dto.Coding{
				{
					System:  constvars.FhirSystemLOINC,
					Code:    request.LoincCode,
					Display: request.ReportDisplay,
				},
			},
			Text: request.ReportDisplay,
		},
		Subject: fhir_dto.Reference{
			Reference: Reference(constvars.ResourcePatient, request.PatientID),
		},
		Encounter: &fhir_dto.Reference{
			Reference: Reference(constvars.ResourceEncounter, request.EncounterID),
		},
		EffectiveDateTime: now,
		Issued:            now,
		Performer: []fhir_dto.Reference{
			{Reference: Reference(constvars.ResourcePractitioner, request.PractitionerID)},
		},
		Conclusion: request.Conclusion,
	}, nil
}

func (b *DocumentBuilder) BuildObservation(request *requests.CreateObservation) (*fhir_dto.Observation, error) {
	if err := validateRequest(request); err != nil {
		return nil, err
	}

	value, err := CoerceFloat(request.ObservationValue)
	if err != nil {
		return nil, exceptions.ErrObservationValueNotNumeric(err)
	}

	return &fhir_dto.Observation{
		ResourceType: constvars.ResourceObservation,
		Status:       request.ObservationStatus,
		Code: fhir_dto.CodeableConcept{
			Coding: []fhir_dto.Coding{
				{
					System:  constvars.FhirSystemLOINC,
					Code:    request.LoincCode,
					Display: request.ObservationDisplay,
				},
			},
		},
		Subject: fhir_dto.Reference{
			Reference: Reference(constvars.ResourcePatient, request.PatientID),
		},
		Encounter: &fhir_dto.Reference{
			Reference: Reference(constvars.ResourceEncounter, request.EncounterID),
		},
		EffectiveDateTime: b.localNow(),
		ValueQuantity: &fhir_dto.Quantity{
			Value: value,
			Unit:  request.ObservationUnit,
		},
	}, nil
}

func validateRequest(request interface{}) error {
	if err := utils.ValidateStruct(request); err != nil {
		return exceptions.ErrInputValidation(err)
	}
	return nil
}

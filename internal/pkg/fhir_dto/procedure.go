package fhir_dto

type Procedure struct {
	ResourceType    string            `json:"resourceType"`
	ID              string            `json:"id,omitempty"`
	Meta            *Meta             `json:"meta,omitempty"`
	Status          string            `json:"status"`
	Code            *CodeableConcept  `json:"code,omitempty"`
	Subject         Reference         `json:"subject"`
	Encounter       *Reference        `json:"encounter,omitempty"`
	PerformedPeriod *Period           `json:"performedPeriod,omitempty"`
	ReasonCode      []CodeableConcept `json:"reasonCode,omitempty"`
}

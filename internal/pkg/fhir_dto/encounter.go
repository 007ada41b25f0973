package fhir_dto

// Encounter follows R4, where class is a single Coding rather than a CodeableConcept.
type Encounter struct {
	ResourceType string            `json:"resourceType"`
	ID           string            `json:"id,omitempty"`
	Meta         *Meta             `json:"meta,omitempty"`
	Status       string            `json:"status"`
	Class        Coding            `json:"class"`
	Subject      Reference         `json:"subject"`
	ReasonCode   []CodeableConcept `json:"reasonCode,omitempty"`
	Period       *Period           `json:"period,omitempty"`
}

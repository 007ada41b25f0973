package fhir_dto

type DiagnosticReport struct {
	ResourceType      string          `json:"resourceType"`
	ID                string          `json:"id,omitempty"`
	Meta              *Meta           `json:"meta,omitempty"`
	Status            string          `json:"status"`
	Code              CodeableConcept `json:"code"`
	Subject           Reference       `json:"subject"`
	Encounter         *Reference      `json:"encounter,omitempty"`
	EffectiveDateTime string          `json:"effectiveDateTime,omitempty"`
	Issued            string          `json:"issued,omitempty"`
	Performer         []Reference     `json:"performer,omitempty"`
	Conclusion        string          `json:"conclusion,omitempty"`
}

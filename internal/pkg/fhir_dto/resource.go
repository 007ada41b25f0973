package fhir_dto

// Resource is an arbitrary FHIR resource as received from callers of the generic
// update endpoint. Only resourceType and id are interpreted locally.
type Resource map[string]interface{}

func (r Resource) ResourceType() string {
	resourceType, _ := r["resourceType"].(string)
	return resourceType
}

func (r Resource) ID() string {
	id, _ := r["id"].(string)
	return id
}

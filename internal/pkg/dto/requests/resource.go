package requests

import "github.com/goccy/go-json"

// ResourceKey addresses one resource in the store by its path parameters.
type ResourceKey struct {
	ResourceType string `json:"resource_type" validate:"required,resource_type"`
	ResourceID   string `json:"resource_id" validate:"required,fhir_id"`
}

type PatchOperation struct {
	Op    string          `json:"op" validate:"required,oneof=add remove replace move copy test"`
	Path  string          `json:"path" validate:"required,json_patch_path"`
	From  string          `json:"from" validate:"required_if=Op move,required_if=Op copy,json_patch_path"`
	Value json.RawMessage `json:"value,omitempty" validate:"required_if=Op add,required_if=Op replace,required_if=Op test"`
}

type PatchResource struct {
	ResourceKey
	Operations []PatchOperation `json:"operations" validate:"required,min=1,dive"`
}

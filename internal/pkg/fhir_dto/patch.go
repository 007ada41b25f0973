package fhir_dto

import "github.com/goccy/go-json"

// PatchOperation is a single RFC 6902 JSON Patch operation. Value keeps the
// caller's encoded JSON so an explicit null reaches the store.
type PatchOperation struct {
	Op    string          `json:"op"`
	Path  string          `json:"path"`
	From  string          `json:"from,omitempty"`
	Value json.RawMessage `json:"value,omitempty"`
}

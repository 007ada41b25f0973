package fhir_dto

import (
	"github.com/goccy/go-json"
)

type FHIRBundle struct {
	ResourceType string  `json:"resourceType"`
	ID           string  `json:"id,omitempty"`
	Type         string  `json:"type"`
	Total        int     `json:"total"`
	Link         []Link  `json:"link,omitempty"`
	Entry        []Entry `json:"entry,omitempty"`
}

type Link struct {
	Relation string `json:"relation"`
	URL      string `json:"url"`
}

type Entry struct {
	FullURL  string          `json:"fullUrl,omitempty"`
	Resource json.RawMessage `json:"resource,omitempty"`
	Search   *EntrySearch    `json:"search,omitempty"`
}

type EntrySearch struct {
	Mode string `json:"mode,omitempty"`
}

// ResourceHeader is the part of any resource needed to route or reference it.
type ResourceHeader struct {
	ResourceType string `json:"resourceType"`
	ID           string `json:"id"`
}

// FirstEntry decodes the header of the first entry in store order.
// ok is false when the bundle has no entry or the first entry carries no resource.
func (b *FHIRBundle) FirstEntry() (header ResourceHeader, ok bool, err error) {
	if len(b.Entry) == 0 || len(b.Entry[0].Resource) == 0 {
		return ResourceHeader{}, false, nil
	}
	if err := json.Unmarshal(b.Entry[0].Resource, &header); err != nil {
		return ResourceHeader{}, false, err
	}
	return header, true, nil
}

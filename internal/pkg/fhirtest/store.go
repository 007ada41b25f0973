// Package fhirtest provides an in-memory FHIR R4 store served over HTTP for tests.
// It honours the subset of the REST API the gateway uses and records every call.
package fhirtest

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"healthcare-fhir-gateway/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

type RecordedCall struct {
	Method      string
	Path        string
	Query       string
	ContentType string
}

type Store struct {
	mu        sync.Mutex
	resources map[string]map[string]map[string]interface{}
	order     []string
	counters  map[string]int
	deleted   map[string]bool
	calls     []RecordedCall
	server    *httptest.Server
}

var idPrefixes = map[string]string{
	constvars.ResourcePatient:      "p",
	constvars.ResourceEncounter:    "e",
	constvars.ResourcePractitioner: "dr",
}

// NewServer starts a store. The returned URL is the FHIR base to hand to the gateway.
func NewServer() *Store {
	store := &Store{
		resources: make(map[string]map[string]map[string]interface{}),
		counters:  make(map[string]int),
		deleted:   make(map[string]bool),
	}

	router := chi.NewRouter()
	router.Use(store.record)
	router.Post("/{resourceType}", store.create)
	router.Get("/{resourceType}", store.search)
	router.Get("/{resourceType}/{resourceId}", store.read)
	router.Put("/{resourceType}/{resourceId}", store.update)
	router.Patch("/{resourceType}/{resourceId}", store.patch)
	router.Delete("/{resourceType}/{resourceId}", store.delete)
	router.Delete("/{resourceType}/{resourceId}/{operation}", store.delete)
	router.Get("/{resourceType}/{resourceId}/{operation}", store.everything)

	store.server = httptest.NewServer(router)
	return store
}

func (s *Store) URL() string {
	return s.server.URL
}

func (s *Store) Close() {
	s.server.Close()
}

// Calls returns a copy of every request received so far.
func (s *Store) Calls() []RecordedCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	calls := make([]RecordedCall, len(s.calls))
	copy(calls, s.calls)
	return calls
}

// CallsTo counts calls whose path ends with suffix.
func (s *Store) CallsTo(suffix string) int {
	count := 0
	for _, call := range s.Calls() {
		if strings.HasSuffix(call.Path, suffix) {
			count++
		}
	}
	return count
}

// Put stores resource under its own resourceType and id, bypassing the HTTP API.
func (s *Store) Put(resource map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	resourceType, _ := resource["resourceType"].(string)
	id, _ := resource["id"].(string)
	s.save(resourceType, id, resource)
}

func (s *Store) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls = append(s.calls, RecordedCall{
			Method:      r.Method,
			Path:        r.URL.Path,
			Query:       r.URL.RawQuery,
			ContentType: r.Header.Get(constvars.HeaderContentType),
		})
		s.mu.Unlock()

		expected := constvars.MIMEApplicationFHIRJSON
		if r.Method == http.MethodPatch {
			expected = constvars.MIMEApplicationJSONPatch
		}
		if r.Header.Get(constvars.HeaderContentType) != expected {
			writeOutcome(w, http.StatusUnsupportedMediaType, "unsupported content type "+r.Header.Get(constvars.HeaderContentType))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Store) create(w http.ResponseWriter, r *http.Request) {
	resourceType := chi.URLParam(r, "resourceType")
	resource, ok := decodeResource(w, r)
	if !ok {
		return
	}
	if resource["resourceType"] != resourceType {
		writeOutcome(w, http.StatusBadRequest, fmt.Sprintf("resourceType must be %s", resourceType))
		return
	}

	s.mu.Lock()
	s.counters[resourceType]++
	prefix, ok := idPrefixes[resourceType]
	if !ok {
		prefix = strings.ToLower(resourceType) + "-"
	}
	id := prefix + strconv.Itoa(s.counters[resourceType])
	resource["id"] = id
	resource["meta"] = map[string]interface{}{"versionId": "1"}
	s.save(resourceType, id, resource)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, resource)
}

func (s *Store) read(w http.ResponseWriter, r *http.Request) {
	resource, ok := s.lookup(chi.URLParam(r, "resourceType"), chi.URLParam(r, "resourceId"))
	if !ok {
		writeOutcome(w, http.StatusNotFound, "resource not found")
		return
	}
	writeJSON(w, http.StatusOK, resource)
}

func (s *Store) update(w http.ResponseWriter, r *http.Request) {
	resourceType, id := chi.URLParam(r, "resourceType"), chi.URLParam(r, "resourceId")
	resource, ok := decodeResource(w, r)
	if !ok {
		return
	}
	if _, exists := s.lookup(resourceType, id); !exists {
		writeOutcome(w, http.StatusNotFound, "resource not found")
		return
	}
	if resource["id"] != id {
		writeOutcome(w, http.StatusBadRequest, "resource id does not match the URL")
		return
	}

	s.mu.Lock()
	s.save(resourceType, id, resource)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, resource)
}

func (s *Store) patch(w http.ResponseWriter, r *http.Request) {
	resourceType, id := chi.URLParam(r, "resourceType"), chi.URLParam(r, "resourceId")
	var operations []struct {
		Op    string          `json:"op"`
		Path  string          `json:"path"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&operations); err != nil {
		writeOutcome(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	resource, ok := s.resources[resourceType][id]
	if !ok {
		writeOutcome(w, http.StatusNotFound, "resource not found")
		return
	}

	for _, operation := range operations {
		field := strings.TrimPrefix(operation.Path, "/")
		if strings.Contains(field, "/") {
			writeOutcome(w, http.StatusUnprocessableEntity, "nested paths are not supported: "+operation.Path)
			return
		}

		var value interface{}
		switch operation.Op {
		case constvars.JSONPatchOpAdd, constvars.JSONPatchOpReplace, constvars.JSONPatchOpTest:
			if len(operation.Value) == 0 {
				writeOutcome(w, http.StatusBadRequest, "value is required for op "+operation.Op)
				return
			}
			if err := json.Unmarshal(operation.Value, &value); err != nil {
				writeOutcome(w, http.StatusBadRequest, err.Error())
				return
			}
		}

		current, present := resource[field]
		switch operation.Op {
		case constvars.JSONPatchOpAdd:
			resource[field] = value
		case constvars.JSONPatchOpReplace:
			if !present {
				writeOutcome(w, http.StatusUnprocessableEntity, "path not found: "+operation.Path)
				return
			}
			resource[field] = value
		case constvars.JSONPatchOpRemove:
			if !present {
				writeOutcome(w, http.StatusUnprocessableEntity, "path not found: "+operation.Path)
				return
			}
			delete(resource, field)
		case constvars.JSONPatchOpTest:
			if !present || !reflect.DeepEqual(current, value) {
				writeOutcome(w, http.StatusUnprocessableEntity, "test failed: "+operation.Path)
				return
			}
		default:
			writeOutcome(w, http.StatusUnprocessableEntity, "unsupported op "+operation.Op)
			return
		}
	}
	writeJSON(w, http.StatusOK, resource)
}

func (s *Store) delete(w http.ResponseWriter, r *http.Request) {
	resourceType, id := chi.URLParam(r, "resourceType"), chi.URLParam(r, "resourceId")
	operation := chi.URLParam(r, "operation")
	if operation != "" && operation != constvars.FhirOperationPurge {
		writeOutcome(w, http.StatusBadRequest, "unknown operation "+operation)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	key := resourceType + "/" + id
	_, current := s.resources[resourceType][id]
	// $purge also removes the history left behind by an earlier delete.
	if !current && !(operation == constvars.FhirOperationPurge && s.deleted[key]) {
		writeOutcome(w, http.StatusNotFound, "resource not found")
		return
	}
	delete(s.resources[resourceType], id)
	s.deleted[key] = operation != constvars.FhirOperationPurge
	writeJSON(w, http.StatusOK, map[string]interface{}{})
}

func (s *Store) search(w http.ResponseWriter, r *http.Request) {
	resourceType := chi.URLParam(r, "resourceType")
	system, value, _ := strings.Cut(r.URL.Query().Get(constvars.FhirSearchParamIdentifier), "|")

	s.mu.Lock()
	var matches []map[string]interface{}
	for _, key := range s.order {
		kind, id, _ := strings.Cut(key, "/")
		resource, ok := s.resources[kind][id]
		if kind != resourceType || !ok {
			continue
		}
		if hasIdentifier(resource, system, value) {
			matches = append(matches, resource)
		}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, bundle("searchset", matches))
}

func (s *Store) everything(w http.ResponseWriter, r *http.Request) {
	resourceType, id := chi.URLParam(r, "resourceType"), chi.URLParam(r, "resourceId")
	if resourceType != constvars.ResourcePatient || chi.URLParam(r, "operation") != constvars.FhirOperationEverything {
		writeOutcome(w, http.StatusBadRequest, "unsupported operation")
		return
	}

	s.mu.Lock()
	patient, ok := s.resources[resourceType][id]
	if !ok {
		s.mu.Unlock()
		writeOutcome(w, http.StatusNotFound, "patient not found")
		return
	}
	compartment := []map[string]interface{}{patient}
	target := constvars.ResourcePatient + "/" + id
	for _, key := range s.order {
		kind, resourceID, _ := strings.Cut(key, "/")
		resource, ok := s.resources[kind][resourceID]
		if !ok || kind == constvars.ResourcePatient {
			continue
		}
		if references(resource, target) {
			compartment = append(compartment, resource)
		}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, bundle("searchset", compartment))
}

// save must be called with mu held.
func (s *Store) save(resourceType, id string, resource map[string]interface{}) {
	if s.resources[resourceType] == nil {
		s.resources[resourceType] = make(map[string]map[string]interface{})
	}
	if _, exists := s.resources[resourceType][id]; !exists {
		s.order = append(s.order, resourceType+"/"+id)
	}
	s.resources[resourceType][id] = resource
}

func (s *Store) lookup(resourceType, id string) (map[string]interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	resource, ok := s.resources[resourceType][id]
	return resource, ok
}

func decodeResource(w http.ResponseWriter, r *http.Request) (map[string]interface{}, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeOutcome(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	var resource map[string]interface{}
	if err := json.Unmarshal(body, &resource); err != nil {
		writeOutcome(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return nil, false
	}
	return resource, true
}

func hasIdentifier(resource map[string]interface{}, system, value string) bool {
	identifiers, _ := resource["identifier"].([]interface{})
	for _, raw := range identifiers {
		identifier, _ := raw.(map[string]interface{})
		if identifier["system"] == system && identifier["value"] == value {
			return true
		}
	}
	return false
}

func references(node interface{}, target string) bool {
	switch value := node.(type) {
	case map[string]interface{}:
		if value["reference"] == target {
			return true
		}
		for _, child := range value {
			if references(child, target) {
				return true
			}
		}
	case []interface{}:
		for _, child := range value {
			if references(child, target) {
				return true
			}
		}
	}
	return false
}

func bundle(bundleType string, resources []map[string]interface{}) map[string]interface{} {
	entries := make([]map[string]interface{}, 0, len(resources))
	for _, resource := range resources {
		entries = append(entries, map[string]interface{}{
			"fullUrl":  fmt.Sprintf("%s/%s", resource["resourceType"], resource["id"]),
			"resource": resource,
			"search":   map[string]interface{}{"mode": "match"},
		})
	}
	result := map[string]interface{}{
		"resourceType": constvars.ResourceBundle,
		"type":         bundleType,
		"total":        len(resources),
	}
	if len(entries) > 0 {
		result["entry"] = entries
	}
	return result
}

func writeOutcome(w http.ResponseWriter, status int, diagnostics string) {
	writeJSON(w, status, map[string]interface{}{
		"resourceType": constvars.ResourceOperationOutcome,
		"issue": []map[string]interface{}{
			{"severity": "error", "code": "processing", "diagnostics": diagnostics},
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationFHIRJSON)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

package builders

import (
	"fmt"
	"time"

	"healthcare-fhir-gateway/internal/pkg/utils"
)

// Clock returns the instant stamped on documents at construction time.
type Clock func() time.Time

// DocumentBuilder turns flat create requests into FHIR R4 documents. It never performs I/O.
type DocumentBuilder struct {
	clock     Clock
	localZone *time.Location
}

// NewDocumentBuilder returns a builder stamping local timestamps in localZone.
// A nil clock means time.Now and a nil zone means UTC.
func NewDocumentBuilder(localZone *time.Location, clock Clock) *DocumentBuilder {
	if clock == nil {
		clock = time.Now
	}
	if localZone == nil {
		localZone = time.UTC
	}
	return &DocumentBuilder{
		clock:     clock,
		localZone: localZone,
	}
}

func (b *DocumentBuilder) localNow() string {
	return utils.FormatFhirDateTime(b.clock(), b.localZone)
}

func (b *DocumentBuilder) utcNow() string {
	return utils.FormatFhirDateTime(b.clock(), time.UTC)
}

// Reference renders the literal "<Kind>/<id>" reference used inside documents.
func Reference(resourceType, resourceID string) string {
	return fmt.Sprintf("%s/%s", resourceType, resourceID)
}

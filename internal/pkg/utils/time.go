package utils

import (
	"healthcare-fhir-gateway/internal/pkg/constvars"
	"time"
)

// FormatFhirDateTime renders t in loc using microsecond precision and a numeric offset,
// e.g. 2024-05-01T10:00:00.000000+07:00.
func FormatFhirDateTime(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(constvars.FhirDateTimeLayout)
}

// LoadLocation resolves an IANA zone name, falling back to UTC when it is empty or unknown.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC, err
	}
	return loc, nil
}

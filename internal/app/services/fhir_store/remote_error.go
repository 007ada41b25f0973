package fhir_store

import (
	"fmt"
	"strings"

	"healthcare-fhir-gateway/internal/pkg/dto/responses"

	"github.com/goccy/go-json"
)

// ParseRemoteErrorMessage extracts a human readable message from a failed store answer.
// It tries a FHIR OperationOutcome, then the Google API error envelope, then the raw text.
func ParseRemoteErrorMessage(status int, body []byte) string {
	var outcome responses.OperationOutcome
	if err := json.Unmarshal(body, &outcome); err == nil {
		for _, issue := range outcome.Issue {
			if issue.Diagnostics != "" {
				return issue.Diagnostics
			}
		}
	}

	var googleErr responses.GoogleAPIError
	if err := json.Unmarshal(body, &googleErr); err == nil && googleErr.Error.Message != "" {
		return googleErr.Error.Message
	}

	var googleErrs []responses.GoogleAPIError
	if err := json.Unmarshal(body, &googleErrs); err == nil && len(googleErrs) > 0 && googleErrs[0].Error.Message != "" {
		return googleErrs[0].Error.Message
	}

	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return fmt.Sprintf("fhir store responded with status %d", status)
}

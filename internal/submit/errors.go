// Package submit implements the persistence collaborators used by the wizard
// submitter: an HTTP client for the registration service and a direct
// document-store writer.
package submit

import (
	"fmt"
	"net/http"

	"github.com/kalpruh/enrol/internal/registration"
)

// ResponseError is a non-2xx answer from the registration service.
type ResponseError struct {
	Status  int
	Message string // the service's "error" text, empty when the body was unreadable
	Fields  registration.FieldErrors
}

func (e *ResponseError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("registration service returned %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("registration service returned %d: %s", e.Status, e.Message)
}

// UserMessage is the text shown in the wizard's failure banner.
func (e *ResponseError) UserMessage() string { return e.Message }

// StoreError wraps a failed local insert.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string { return "saving registration: " + e.Err.Error() }

func (e *StoreError) Unwrap() error { return e.Err }

// UserMessage matches what the service reports for the same failure.
func (e *StoreError) UserMessage() string { return saveFailedMessage }

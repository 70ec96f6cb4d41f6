// Package api defines the HTTP contract between the wizard and the
// registration service.
package api

import "github.com/kalpruh/enrol/internal/registration"

// Routes.
const (
	RegisterPath      = "/api/register"
	RegistrationsPath = "/api/registrations"
	HealthPath        = "/healthz"
	MetricsPath       = "/metrics"
)

// Messages returned by the service.
const (
	SavedMessage      = "Registration saved successfully!"
	SaveFailedMessage = "Failed to save registration."
	InvalidMessage    = "Registration is invalid."
	BadRequestMessage = "Request body must be a JSON registration."
	NotFoundMessage   = "registration not found"
	ListFailedMessage = "Failed to list registrations."
)

// RegisterResponse is the 201 body of POST /api/register.
type RegisterResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// ErrorResponse is the body of every non-2xx response. Fields is set when
// validation failed.
type ErrorResponse struct {
	Error  string                   `json:"error"`
	Fields registration.FieldErrors `json:"fields,omitempty"`
}

// ListResponse is the body of GET /api/registrations.
type ListResponse struct {
	Registrations []*registration.Document `json:"registrations"`
	Total         int                      `json:"total"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

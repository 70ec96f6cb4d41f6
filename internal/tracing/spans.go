package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span names.
const (
	SpanSubmitRegistration = "submit.registration"
	SpanClientInsert       = "client.insert_registration"
	SpanHandlerRegister    = "handler.register"
	SpanRepoInsert         = "repo.insert"
	SpanRepoFind           = "repo.find"
	SpanRepoList           = "repo.list"
)

// Span attribute keys.
const (
	AttrRegistrationID   = "registration.id"
	AttrSolutionCategory = "registration.solution_category"
	AttrAlgorithmCount   = "registration.algorithm_count"
	AttrHTTPStatus       = "http.status_code"
	AttrEndpoint         = "http.url"
	AttrInvalidFields    = "validation.invalid_fields"
	AttrErrorMessage     = "error.message"
)

// Event names for span events.
const (
	EventValidationFailed = "validation.failed"
	EventCacheHit         = "cache.hit"
)

// RecordError marks span as failed with err.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
}

package wizard

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kalpruh/enrol/internal/log"
	"github.com/kalpruh/enrol/internal/registration"
	"github.com/kalpruh/enrol/internal/tracing"
)

// Fallback messages used when the collaborator provides no text.
const (
	DefaultSuccessMessage = "Registration submitted successfully!"
	DefaultFailureMessage = "Failed to submit registration"
	InvalidDraftMessage   = "Please correct the highlighted fields before submitting"
)

var (
	// ErrSubmissionInFlight is returned when Submit is called while a
	// previous call has not returned.
	ErrSubmissionInFlight = errors.New("submission already in progress")

	// ErrAlreadySubmitted is returned after a successful submission until
	// Reset.
	ErrAlreadySubmitted = errors.New("registration already submitted")
)

// Result is the collaborator's confirmation of a created registration.
type Result struct {
	Message string
	ID      string
}

// Collaborator persists a registration. Implementations return an error
// whose text is shown to the user when the store rejects the draft.
type Collaborator interface {
	InsertRegistration(ctx context.Context, d registration.Draft) (Result, error)
}

// CollaboratorFunc adapts a function to Collaborator.
type CollaboratorFunc func(ctx context.Context, d registration.Draft) (Result, error)

// InsertRegistration calls f.
func (f CollaboratorFunc) InsertRegistration(ctx context.Context, d registration.Draft) (Result, error) {
	return f(ctx, d)
}

// UserMessager is implemented by collaborator errors that carry text meant
// for the user. Errors without it surface DefaultFailureMessage.
type UserMessager interface {
	UserMessage() string
}

// State is the submission side-state overlaying the summary step.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Status is what the front-end shows about the latest submission.
type Status struct {
	State   State
	Message string
	ID      string
	// Fields holds per-field messages when the final validation failed.
	Fields registration.FieldErrors
}

// Submitter sends the draft to the collaborator once and tracks the outcome.
type Submitter struct {
	collab    Collaborator
	known     registration.AlgorithmLookup
	tracer    trace.Tracer
	inFlight  bool
	submitted bool
	status    Status
}

// SubmitterOption configures a Submitter.
type SubmitterOption func(*Submitter)

// WithTracer records a span per submission.
func WithTracer(t trace.Tracer) SubmitterOption {
	return func(s *Submitter) { s.tracer = t }
}

// NewSubmitter creates a submitter. known validates algorithm ids in the
// final check; nil accepts any id.
func NewSubmitter(collab Collaborator, known registration.AlgorithmLookup, opts ...SubmitterOption) *Submitter {
	s := &Submitter{collab: collab, known: known, tracer: tracing.Noop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetLookup replaces the algorithm lookup.
func (s *Submitter) SetLookup(known registration.AlgorithmLookup) { s.known = known }

// Status returns the latest status.
func (s *Submitter) Status() Status { return s.status }

// InFlight reports whether a submission is running.
func (s *Submitter) InFlight() bool { return s.inFlight }

// Submitted reports whether the draft was accepted.
func (s *Submitter) Submitted() bool { return s.submitted }

// CanSubmit reports whether Submit would reach the collaborator.
func (s *Submitter) CanSubmit() bool { return !s.inFlight && !s.submitted }

// Submit runs a whole submission synchronously: Begin, Send, Complete. The
// error is non-nil for guard violations, failed validation and collaborator
// failures; the Status message is what the user should see.
func (s *Submitter) Submit(ctx context.Context, d registration.Draft) (Status, error) {
	payload, err := s.Begin(d)
	if err != nil {
		return s.status, err
	}
	res, err := s.Send(ctx, payload)
	return s.Complete(res, err), err
}

// Begin checks the guards and validates d with the full constraint table.
// On success the submission is in flight and the normalized payload is
// returned for Send. Front-ends that submit asynchronously call Begin and
// Complete on their event loop and only Send elsewhere.
func (s *Submitter) Begin(d registration.Draft) (registration.Draft, error) {
	if s.inFlight {
		return registration.Draft{}, ErrSubmissionInFlight
	}
	if s.submitted {
		return registration.Draft{}, ErrAlreadySubmitted
	}

	payload := d.Normalize()
	if fields := registration.Validate(payload, s.known); len(fields) > 0 {
		s.status = Status{State: StateFailed, Message: InvalidDraftMessage, Fields: fields}
		log.Warn(log.CatSubmit, "Final validation failed", "fields", len(fields))
		return registration.Draft{}, &ValidationError{Fields: fields}
	}

	s.inFlight = true
	s.status = Status{State: StateSubmitting}
	return payload, nil
}

// Send issues the create request. It reads no mutable submitter state and
// may run off the event loop.
func (s *Submitter) Send(ctx context.Context, payload registration.Draft) (Result, error) {
	ctx, span := s.tracer.Start(ctx, tracing.SpanSubmitRegistration,
		trace.WithAttributes(
			attribute.String(tracing.AttrSolutionCategory, string(payload.SolutionCategory)),
			attribute.Int(tracing.AttrAlgorithmCount, len(payload.SelectedAlgorithms)),
		))
	defer span.End()

	res, err := s.collab.InsertRegistration(ctx, payload)
	if err != nil {
		tracing.RecordError(span, err)
		return Result{}, err
	}
	span.SetAttributes(attribute.String(tracing.AttrRegistrationID, res.ID))
	return res, nil
}

// Complete records the outcome of Send and ends the in-flight state.
func (s *Submitter) Complete(res Result, err error) Status {
	s.inFlight = false
	if err != nil {
		s.status = Status{State: StateFailed, Message: failureMessage(err)}
		log.ErrorErr(log.CatSubmit, "Submission failed", err)
		return s.status
	}

	msg := strings.TrimSpace(res.Message)
	if msg == "" {
		msg = DefaultSuccessMessage
	}
	s.submitted = true
	s.status = Status{State: StateSucceeded, Message: msg, ID: res.ID}
	log.Info(log.CatSubmit, "Registration submitted", "id", res.ID)
	return s.status
}

func failureMessage(err error) string {
	var um UserMessager
	if errors.As(err, &um) {
		if msg := strings.TrimSpace(um.UserMessage()); msg != "" {
			return msg
		}
	}
	return DefaultFailureMessage
}

// Reset clears the status and the submitted flag. It does not interrupt an
// in-flight submission.
func (s *Submitter) Reset() {
	s.submitted = false
	s.status = Status{}
}

// ValidationError reports the fields that failed the final check.
type ValidationError struct {
	Fields registration.FieldErrors
}

func (e *ValidationError) Error() string {
	return "registration is invalid: " + strings.Join(fieldNames(e.Fields), ", ")
}

func fieldNames(fe registration.FieldErrors) []string {
	var out []string
	for _, f := range registration.AllFields() {
		if _, ok := fe[f]; ok {
			out = append(out, string(f))
		}
	}
	return out
}

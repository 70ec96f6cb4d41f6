package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/kalpruh/enrol/internal/api"
	"github.com/kalpruh/enrol/internal/log"
	"github.com/kalpruh/enrol/internal/registration"
	"github.com/kalpruh/enrol/internal/tracing"
	"github.com/kalpruh/enrol/internal/wizard"
)

const (
	savedMessage      = api.SavedMessage
	saveFailedMessage = api.SaveFailedMessage

	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 1 << 20
)

// HTTPCollaborator posts registrations to the registration service.
type HTTPCollaborator struct {
	endpoint string
	client   *http.Client
	tracer   trace.Tracer
}

var _ wizard.Collaborator = (*HTTPCollaborator)(nil)

// HTTPOption configures an HTTPCollaborator.
type HTTPOption func(*HTTPCollaborator)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(h *HTTPCollaborator) { h.client = c }
}

// WithTracer records a client span per request and propagates its context.
func WithTracer(t trace.Tracer) HTTPOption {
	return func(h *HTTPCollaborator) { h.tracer = t }
}

// NewHTTPCollaborator creates a client for the service at baseURL. A
// timeout of zero means no client-side timeout.
func NewHTTPCollaborator(baseURL string, timeout time.Duration, opts ...HTTPOption) *HTTPCollaborator {
	h := &HTTPCollaborator{
		endpoint: strings.TrimRight(baseURL, "/") + api.RegisterPath,
		client:   &http.Client{Timeout: timeout},
		tracer:   tracing.Noop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Endpoint returns the full register URL.
func (h *HTTPCollaborator) Endpoint() string { return h.endpoint }

// InsertRegistration sends one POST. Transport failures and unreadable
// bodies return plain errors; service rejections return *ResponseError.
func (h *HTTPCollaborator) InsertRegistration(ctx context.Context, d registration.Draft) (res wizard.Result, err error) {
	ctx, span := h.tracer.Start(ctx, tracing.SpanClientInsert,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String(tracing.AttrEndpoint, h.endpoint)))
	defer func() {
		tracing.RecordError(span, err)
		span.End()
	}()

	body, err := json.Marshal(d)
	if err != nil {
		return wizard.Result{}, fmt.Errorf("encoding registration: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(body))
	if err != nil {
		return wizard.Result{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	propagation.TraceContext{}.Inject(ctx, propagation.HeaderCarrier(req.Header))

	log.Debug(log.CatSubmit, "Posting registration", "endpoint", h.endpoint)
	resp, err := h.client.Do(req)
	if err != nil {
		return wizard.Result{}, fmt.Errorf("posting registration: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	span.SetAttributes(attribute.Int(tracing.AttrHTTPStatus, resp.StatusCode))
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return wizard.Result{}, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		rerr := &ResponseError{Status: resp.StatusCode}
		var eb api.ErrorResponse
		if json.Unmarshal(raw, &eb) == nil {
			rerr.Message = strings.TrimSpace(eb.Error)
			rerr.Fields = eb.Fields
		}
		log.Warn(log.CatSubmit, "Registration rejected", "status", resp.StatusCode, "error", rerr.Message)
		return wizard.Result{}, rerr
	}

	var ok api.RegisterResponse
	if err := json.Unmarshal(raw, &ok); err != nil {
		return wizard.Result{}, fmt.Errorf("decoding response: %w", err)
	}
	return wizard.Result{Message: ok.Message, ID: ok.ID}, nil
}

// Package server provides the registration service: an HTTP API that
// validates wizard submissions and creates them in the document store.
package server

import (
	"encoding/json"
	"errors"
	"html"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/microcosm-cc/bluemonday"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/kalpruh/enrol/internal/api"
	"github.com/kalpruh/enrol/internal/cachemanager"
	"github.com/kalpruh/enrol/internal/log"
	"github.com/kalpruh/enrol/internal/metrics"
	"github.com/kalpruh/enrol/internal/registration"
	"github.com/kalpruh/enrol/internal/tracing"
)

const (
	maxBodyBytes = 64 << 10
	maxListLimit = 500
)

// Handler serves the registration API.
type Handler struct {
	repo      registration.Repository
	known     registration.AlgorithmLookup
	metrics   *metrics.Metrics
	tracer    trace.Tracer
	docs      *cachemanager.ReadThroughCache[string, *registration.Document]
	sanitizer *bluemonday.Policy
}

// HandlerConfig configures the API handler.
type HandlerConfig struct {
	// Repository stores documents (required).
	Repository registration.Repository
	// Known validates algorithm ids. Nil accepts any id.
	Known registration.AlgorithmLookup
	// Metrics records request and store instruments. Nil creates a private set.
	Metrics *metrics.Metrics
	// Tracer records handler spans. Nil disables tracing.
	Tracer trace.Tracer
	// CacheTTL keeps fetched documents in memory. Zero disables the cache.
	CacheTTL time.Duration
}

// NewHandler creates a handler from cfg.
func NewHandler(cfg HandlerConfig) *Handler {
	h := &Handler{
		repo:      cfg.Repository,
		known:     cfg.Known,
		metrics:   cfg.Metrics,
		tracer:    cfg.Tracer,
		sanitizer: bluemonday.StrictPolicy(),
	}
	if h.metrics == nil {
		h.metrics = metrics.New()
	}
	if h.tracer == nil {
		h.tracer = tracing.Noop()
	}
	cache := cachemanager.NewInMemoryCacheManager[string, *registration.Document](
		"registrations", cfg.CacheTTL, cachemanager.DefaultCleanupInterval)
	h.docs = cachemanager.NewReadThroughCache[string, *registration.Document](cache, h.repo.FindByID, cfg.CacheTTL)
	return h
}

// Routes returns an http.Handler with all API routes registered.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.metrics))
	r.Use(middleware.Recoverer)

	r.Post(api.RegisterPath, h.Register)
	r.Get(api.RegistrationsPath, h.List)
	r.Get(api.RegistrationsPath+"/{id}", h.Get)
	r.Get(api.HealthPath, h.Health)
	r.Method(http.MethodGet, api.MetricsPath, h.metrics.Handler())

	return r
}

// Register validates the posted draft and creates one document.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := propagation.TraceContext{}.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
	ctx, span := h.tracer.Start(ctx, tracing.SpanHandlerRegister, trace.WithSpanKind(trace.SpanKindServer))
	defer span.End()

	var d registration.Draft
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&d); err != nil {
		log.Warn(log.CatHTTP, "Rejected malformed registration body", "error", err)
		tracing.RecordError(span, err)
		h.metrics.IncrementRegistrations(metrics.OutcomeInvalid)
		h.writeError(w, http.StatusBadRequest, api.BadRequestMessage, nil)
		return
	}

	d = h.sanitize(d).Normalize()
	if fields := registration.Validate(d, h.known); len(fields) > 0 {
		names := make([]string, 0, len(fields))
		for _, f := range registration.AllFields() {
			if _, ok := fields[f]; ok {
				names = append(names, string(f))
				h.metrics.IncrementInvalidField(string(f))
			}
		}
		span.AddEvent(tracing.EventValidationFailed,
			trace.WithAttributes(attribute.StringSlice(tracing.AttrInvalidFields, names)))
		h.metrics.IncrementRegistrations(metrics.OutcomeInvalid)
		h.writeError(w, http.StatusBadRequest, api.InvalidMessage, fields)
		return
	}

	doc := registration.NewDocument(d)
	start := time.Now()
	err := h.repo.Insert(ctx, doc)
	h.metrics.ObserveStore(start)
	if err != nil {
		log.ErrorErr(log.CatHTTP, "Error saving registration", err)
		tracing.RecordError(span, err)
		h.metrics.IncrementRegistrations(metrics.OutcomeFailed)
		h.writeError(w, http.StatusInternalServerError, api.SaveFailedMessage, nil)
		return
	}

	span.SetAttributes(attribute.String(tracing.AttrRegistrationID, doc.ID))
	h.metrics.IncrementRegistrations(metrics.OutcomeSaved)
	log.Info(log.CatHTTP, "Saved registration", "id", doc.ID, "category", doc.SolutionCategory)
	h.writeJSON(w, http.StatusCreated, api.RegisterResponse{Message: api.SavedMessage, ID: doc.ID})
}

// List returns stored documents, newest first. Query parameters: limit,
// category.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := registration.ListFilter{
		SolutionCategory: registration.SolutionCategory(r.URL.Query().Get("category")),
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.writeError(w, http.StatusBadRequest, "limit must be a non-negative integer", nil)
			return
		}
		filter.Limit = min(n, maxListLimit)
	}

	docs, err := h.repo.List(r.Context(), filter)
	if err != nil {
		log.ErrorErr(log.CatHTTP, "Listing registrations failed", err)
		h.writeError(w, http.StatusInternalServerError, api.ListFailedMessage, nil)
		return
	}
	total, err := h.repo.Count(r.Context())
	if err != nil {
		log.ErrorErr(log.CatHTTP, "Counting registrations failed", err)
		h.writeError(w, http.StatusInternalServerError, api.ListFailedMessage, nil)
		return
	}
	if docs == nil {
		docs = []*registration.Document{}
	}
	h.writeJSON(w, http.StatusOK, api.ListResponse{Registrations: docs, Total: total})
}

// Get returns one document by id.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, hit, err := h.docs.Get(r.Context(), id)
	if h.docs.Enabled() {
		h.metrics.RecordCacheLookup(hit)
	}
	if err != nil {
		var nf *registration.NotFoundError
		if errors.As(err, &nf) {
			h.writeError(w, http.StatusNotFound, api.NotFoundMessage, nil)
			return
		}
		log.ErrorErr(log.CatHTTP, "Fetching registration failed", err, "id", id)
		h.writeError(w, http.StatusInternalServerError, "Failed to load registration.", nil)
		return
	}
	h.writeJSON(w, http.StatusOK, doc)
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, api.HealthResponse{Status: "ok"})
}

// sanitize strips markup from free-text fields. Entities produced by the
// policy are unescaped again so "AT&T" survives unchanged.
func (h *Handler) sanitize(d registration.Draft) registration.Draft {
	clean := func(s string) string {
		return strings.TrimSpace(html.UnescapeString(h.sanitizer.Sanitize(s)))
	}
	d.FullName = clean(d.FullName)
	d.Email = clean(d.Email)
	d.CountryCode = clean(d.CountryCode)
	d.PhoneNumber = clean(d.PhoneNumber)
	d.Affiliation = clean(d.Affiliation)
	return d
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.ErrorErr(log.CatHTTP, "Failed to encode JSON response", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string, fields registration.FieldErrors) {
	h.writeJSON(w, status, api.ErrorResponse{Error: message, Fields: fields})
}

// requestLogger logs each request and records its latency by route pattern.
func requestLogger(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			m.ObserveRequest(route, strconv.Itoa(status), start)
			log.Debug(log.CatHTTP, "Request",
				"id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start))
		})
	}
}

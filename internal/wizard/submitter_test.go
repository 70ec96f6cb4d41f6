package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kalpruh/enrol/internal/registration"
	"github.com/kalpruh/enrol/internal/tracing"
)

func TestSubmit_OnlyFromSummary(t *testing.T) {
	collab := &stubCollaborator{}
	w := New(collab, known)

	_, err := w.Submit(context.Background())
	require.ErrorIs(t, err, ErrNotOnSummary)
	_, err = w.BeginSubmit()
	require.ErrorIs(t, err, ErrNotOnSummary)
	require.Empty(t, collab.calls)
}

// Scenario B: customizable skips the OS step and omits osPreference.
func TestScenarioB_CustomizableSkipsOSStep(t *testing.T) {
	collab := &stubCollaborator{res: Result{Message: "Registration saved successfully!", ID: "r-1"}}
	w := New(collab, known)

	fillUserInfo(w.Form)
	require.True(t, w.Next())
	require.NoError(t, w.Set(registration.FieldSolutionCategory, registration.SolutionCustomizable))
	require.True(t, w.Next())
	require.Equal(t, StepAlgorithms, w.Step(), "step 2 advances straight to step 4")
	w.Form.ToggleAlgorithm("face-detection")
	require.True(t, w.Next())

	_, err := w.Submit(context.Background())
	require.NoError(t, err)
	require.Len(t, collab.calls, 1)
	payload := collab.calls[0]
	require.Equal(t, registration.OSPreferenceNone, payload.OSPreference)

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.NotContains(t, raw, "osPreference")
}

// Scenario D: a rejected submission surfaces the server's message and keeps
// the wizard on the summary with the draft intact.
func TestScenarioD_FailureSurfacesCollaboratorMessage(t *testing.T) {
	collab := &stubCollaborator{err: &rejection{msg: "Failed to save"}}
	w := New(collab, known)
	walkToSummary(t, w, registration.SolutionWithOsWithoutHardware)
	before := w.Draft()

	status, err := w.Submit(context.Background())
	require.Error(t, err)
	require.Equal(t, StateFailed, status.State)
	require.Equal(t, "Failed to save", status.Message)
	require.Equal(t, StepSummary, w.Step())
	require.Equal(t, before, w.Draft())
	require.False(t, w.Submitter.Submitted())
	require.True(t, w.Submitter.CanSubmit(), "resubmission is allowed after failure")

	collab.err = nil
	collab.res = Result{Message: "Registration saved successfully!"}
	status, err = w.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, StateSucceeded, status.State)
	require.Len(t, collab.calls, 2)
}

// Scenario E: success marks the draft submitted until reset.
func TestScenarioE_SuccessBlocksResubmission(t *testing.T) {
	collab := &stubCollaborator{res: Result{Message: "Registration saved successfully!", ID: "abc"}}
	w := New(collab, known)
	walkToSummary(t, w, registration.SolutionWithBothOsAndHardware)

	status, err := w.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, StateSucceeded, status.State)
	require.Equal(t, "Registration saved successfully!", status.Message)
	require.Equal(t, "abc", status.ID)
	require.True(t, w.Submitter.Submitted())
	require.False(t, w.Submitter.CanSubmit())

	_, err = w.Submit(context.Background())
	require.ErrorIs(t, err, ErrAlreadySubmitted)
	require.Len(t, collab.calls, 1)

	w.Reset()
	require.Equal(t, StepUserInfo, w.Step())
	require.Equal(t, registration.DefaultDraft(), w.Draft())
	require.Equal(t, StateIdle, w.Submitter.Status().State)
	require.True(t, w.Submitter.CanSubmit())
}

func TestSubmit_FallbackMessages(t *testing.T) {
	t.Run("empty success message", func(t *testing.T) {
		w := New(&stubCollaborator{res: Result{Message: "  "}}, known)
		walkToSummary(t, w, registration.SolutionCustomizable)
		status, err := w.Submit(context.Background())
		require.NoError(t, err)
		require.Equal(t, DefaultSuccessMessage, status.Message)
	})

	t.Run("unreachable collaborator", func(t *testing.T) {
		w := New(&stubCollaborator{err: errUnreachable}, known)
		walkToSummary(t, w, registration.SolutionCustomizable)
		status, err := w.Submit(context.Background())
		require.ErrorIs(t, err, errUnreachable)
		require.Equal(t, DefaultFailureMessage, status.Message)
	})

	t.Run("blank server message", func(t *testing.T) {
		w := New(&stubCollaborator{err: &rejection{msg: ""}}, known)
		walkToSummary(t, w, registration.SolutionCustomizable)
		status, _ := w.Submit(context.Background())
		require.Equal(t, DefaultFailureMessage, status.Message)
	})
}

func TestSubmit_FinalValidationSkipsCollaborator(t *testing.T) {
	collab := &stubCollaborator{}
	s := NewSubmitter(collab, known)

	d := registration.DefaultDraft()
	d.FullName = "Jo"
	status, err := s.Submit(context.Background(), d)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	require.Contains(t, verr.Fields, registration.FieldEmail)
	require.Contains(t, verr.Error(), "email")
	require.Equal(t, StateFailed, status.State)
	require.Equal(t, InvalidDraftMessage, status.Message)
	require.Equal(t, verr.Fields, status.Fields)
	require.Empty(t, collab.calls)
	require.False(t, s.InFlight())
}

func TestSubmit_InFlightGuard(t *testing.T) {
	collab := &stubCollaborator{res: Result{ID: "x"}}
	w := New(collab, known)
	walkToSummary(t, w, registration.SolutionWithOsWithoutHardware)

	payload, err := w.BeginSubmit()
	require.NoError(t, err)
	require.True(t, w.Submitter.InFlight())
	require.Equal(t, StateSubmitting, w.Submitter.Status().State)
	require.False(t, w.CanGoBack(), "going back is blocked while submitting")
	require.False(t, w.Previous())

	_, err = w.Submit(context.Background())
	require.ErrorIs(t, err, ErrSubmissionInFlight)
	_, err = w.BeginSubmit()
	require.ErrorIs(t, err, ErrSubmissionInFlight)

	res, err := w.Submitter.Send(context.Background(), payload)
	status := w.Submitter.Complete(res, err)
	require.Equal(t, StateSucceeded, status.State)
	require.False(t, w.Submitter.InFlight())
	require.True(t, w.CanGoBack())
	require.Len(t, collab.calls, 1)
}

func TestSubmit_NormalizesPayload(t *testing.T) {
	collab := &stubCollaborator{}
	s := NewSubmitter(collab, known)

	d := registration.Draft{
		FullName:           "Jo",
		Email:              "jo@example.com",
		CountryCode:        "91",
		PhoneNumber:        "9040171",
		Affiliation:        "IIT",
		UserCategory:       registration.UserCategoryOther,
		SolutionCategory:   registration.SolutionCustomizable,
		OSPreference:       registration.OSPreferenceExecutable,
		SelectedAlgorithms: []string{"face-detection", "face-detection"},
	}
	_, err := s.Submit(context.Background(), d)
	require.NoError(t, err)
	require.Equal(t, registration.OSPreferenceNone, collab.calls[0].OSPreference)
	require.Equal(t, []string{"face-detection"}, collab.calls[0].SelectedAlgorithms)
}

func TestSubmit_RecordsSpan(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))

	w := New(&stubCollaborator{err: &rejection{msg: "Failed to save"}}, known, WithTracer(tp.Tracer("test")))
	walkToSummary(t, w, registration.SolutionCustomizable)
	_, _ = w.Submit(context.Background())

	spans := rec.Ended()
	require.Len(t, spans, 1)
	require.Equal(t, tracing.SpanSubmitRegistration, spans[0].Name())
	require.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestCollaboratorFunc(t *testing.T) {
	var got registration.Draft
	fn := CollaboratorFunc(func(_ context.Context, d registration.Draft) (Result, error) {
		got = d
		return Result{Message: "ok"}, nil
	})
	w := New(fn, known)
	walkToSummary(t, w, registration.SolutionCustomizable)

	status, err := w.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, "ok", status.Message)
	require.Equal(t, "Jo", got.FullName)
}

func TestState_String(t *testing.T) {
	require.Equal(t, "idle", StateIdle.String())
	require.Equal(t, "submitting", StateSubmitting.String())
	require.Equal(t, "succeeded", StateSucceeded.String())
	require.Equal(t, "failed", StateFailed.String())
	require.Equal(t, "unknown", State(9).String())
}

package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kalpruh/enrol/internal/catalog"
	"github.com/kalpruh/enrol/internal/registration"
)

var known = catalog.Default().Contains

// fillUserInfo sets valid step 1 values.
func fillUserInfo(f *Form) {
	f.SetFullName("Jo")
	f.SetEmail("jo@example.com")
	f.SetCountryCode("91")
	f.SetPhoneNumber("9040171")
	f.SetAffiliation("IIT")
	f.SetUserCategory(registration.UserCategoryProfessor)
}

// stubCollaborator records every payload and answers with res/err.
type stubCollaborator struct {
	res   Result
	err   error
	calls []registration.Draft
}

func (s *stubCollaborator) InsertRegistration(_ context.Context, d registration.Draft) (Result, error) {
	s.calls = append(s.calls, d)
	return s.res, s.err
}

// rejection mimics a collaborator error carrying the server's error text.
type rejection struct{ msg string }

func (r *rejection) Error() string       { return "server rejected registration: " + r.msg }
func (r *rejection) UserMessage() string { return r.msg }

var errUnreachable = errors.New("dial tcp 127.0.0.1:8080: connect: connection refused")

// walkToSummary drives a wizard through every step with valid values.
func walkToSummary(t *testing.T, w *Wizard, category registration.SolutionCategory) {
	t.Helper()
	fillUserInfo(w.Form)
	require.True(t, w.Next(), "user info should validate: %v", w.Form.Errors())
	require.NoError(t, w.Set(registration.FieldSolutionCategory, category))
	require.True(t, w.Next())
	if category.DeliversOS() {
		require.Equal(t, StepOSPreference, w.Step())
		require.NoError(t, w.Set(registration.FieldOSPreference, registration.OSPreferenceExecutable))
		require.True(t, w.Next())
	}
	require.Equal(t, StepAlgorithms, w.Step())
	w.Form.ToggleAlgorithm("face-detection")
	require.True(t, w.Next())
	require.Equal(t, StepSummary, w.Step())
}

package wizard

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kalpruh/enrol/internal/registration"
)

func TestVisibleSteps(t *testing.T) {
	all := []Step{StepUserInfo, StepSolution, StepOSPreference, StepAlgorithms, StepSummary}
	noOS := []Step{StepUserInfo, StepSolution, StepAlgorithms, StepSummary}

	for _, opt := range registration.SolutionCategories() {
		d := registration.DefaultDraft()
		d.SolutionCategory = opt.Value
		if opt.DeliversOS {
			require.Equal(t, all, VisibleSteps(d), opt.Value)
		} else {
			require.Equal(t, noOS, VisibleSteps(d), opt.Value)
		}
	}
}

func TestStep_LabelsAndFields(t *testing.T) {
	labels := make([]string, 0, 5)
	for _, s := range AllSteps() {
		labels = append(labels, s.Label())
		require.NotEmpty(t, s.Title())
	}
	require.Equal(t, []string{"User Info", "Solution", "OS Pref.", "Algorithms", "Summary"}, labels)
	require.Empty(t, StepSummary.Fields())
	require.Len(t, StepUserInfo.Fields(), 6)
	require.False(t, Step(0).Valid())
	require.False(t, Step(6).Valid())

	s, ok := StepForField(registration.FieldOSPreference)
	require.True(t, ok)
	require.Equal(t, StepOSPreference, s)
	_, ok = StepForField(registration.Field("nickname"))
	require.False(t, ok)
}

func TestController_NextBlockedByValidation(t *testing.T) {
	form := NewForm(known)
	c := NewController(form)

	require.False(t, c.Next())
	require.Equal(t, StepUserInfo, c.Current())
	errs := form.Errors()
	require.Equal(t, "Full name is required", errs[registration.FieldFullName])
	require.Equal(t, "Email is required", errs[registration.FieldEmail])
	require.Equal(t, "Country code is required", errs[registration.FieldCountryCode])
	require.Equal(t, "Phone number must be at least 6 digits", errs[registration.FieldPhoneNumber])
	require.Equal(t, "Affiliation is required", errs[registration.FieldAffiliation])
	require.NotContains(t, errs, registration.FieldUserCategory, "default user category is valid")
}

func TestController_WalkWithOSStep(t *testing.T) {
	form := NewForm(known)
	c := NewController(form)
	fillUserInfo(form)

	require.True(t, c.Next())
	require.Equal(t, StepSolution, c.Current())
	require.True(t, c.Next())
	require.Equal(t, StepOSPreference, c.Current())

	require.False(t, c.Next(), "OS preference is required for OS-bearing categories")
	require.Equal(t, "Please select an OS delivery method", form.Error(registration.FieldOSPreference))
	form.SetOSPreference(registration.OSPreferenceAutoBooted)
	require.True(t, c.Next())
	require.Equal(t, StepAlgorithms, c.Current())

	form.ToggleAlgorithm("voice-analysis")
	require.True(t, c.Next())
	require.Equal(t, StepSummary, c.Current())
	require.True(t, c.IsLast())

	require.False(t, c.Next(), "never exceeds the summary step")
	require.Equal(t, StepSummary, c.Current())

	pos, total := c.Position()
	require.Equal(t, 5, pos)
	require.Equal(t, 5, total)
}

func TestController_PreviousClampsAtFirst(t *testing.T) {
	c := NewController(NewForm(known))
	require.True(t, c.IsFirst())
	require.False(t, c.Previous())
	require.Equal(t, StepUserInfo, c.Current())
}

func TestController_PreviousSkipsHiddenOSStep(t *testing.T) {
	form := NewForm(known)
	c := NewController(form)
	fillUserInfo(form)
	form.SetSolutionCategory(registration.SolutionCustomizable)

	require.True(t, c.Next())
	require.True(t, c.Next())
	require.Equal(t, StepAlgorithms, c.Current())

	pos, total := c.Position()
	require.Equal(t, 3, pos)
	require.Equal(t, 4, total)

	require.True(t, c.Previous())
	require.Equal(t, StepSolution, c.Current())
	require.True(t, c.Previous())
	require.Equal(t, StepUserInfo, c.Current())
}

func TestController_PreviousDoesNotValidate(t *testing.T) {
	form := NewForm(known)
	c := NewController(form)
	fillUserInfo(form)
	require.True(t, c.Next())

	form.SetFullName("")
	require.True(t, c.Previous())
	require.Equal(t, StepUserInfo, c.Current())
}

func TestController_SyncSnapsToEarlierVisibleStep(t *testing.T) {
	form := NewForm(known)
	c := NewController(form)
	fillUserInfo(form)
	require.True(t, c.Next())
	require.True(t, c.Next())
	require.Equal(t, StepOSPreference, c.Current())

	form.SetSolutionCategory(registration.SolutionCustomizable)
	c.Sync()
	require.Equal(t, StepSolution, c.Current())

	c.Sync()
	require.Equal(t, StepSolution, c.Current(), "sync is a no-op on a visible step")
}

func TestWizard_SetKeepsStepVisible(t *testing.T) {
	w := New(&stubCollaborator{}, known)
	fillUserInfo(w.Form)
	require.True(t, w.Next())
	require.True(t, w.Next())
	require.Equal(t, StepOSPreference, w.Step())

	require.NoError(t, w.Set(registration.FieldSolutionCategory, registration.SolutionCustomizable))
	require.Equal(t, StepSolution, w.Step())
}

func TestController_Reset(t *testing.T) {
	form := NewForm(known)
	c := NewController(form)
	fillUserInfo(form)
	require.True(t, c.Next())

	c.Reset()
	require.Equal(t, StepUserInfo, c.Current())
}

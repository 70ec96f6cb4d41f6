package wizard

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kalpruh/enrol/internal/registration"
)

func TestNewForm_StartsAtDefaults(t *testing.T) {
	f := NewForm(known)

	require.Equal(t, registration.DefaultDraft(), f.Values())
	require.Equal(t, registration.DefaultDraft(), f.Defaults())
	require.Empty(t, f.Errors())
	require.Equal(t, registration.UserCategoryEnthusiast, f.Get(registration.FieldUserCategory))
	require.Equal(t, registration.SolutionWithOsWithoutHardware, f.Get(registration.FieldSolutionCategory))
	require.Equal(t, registration.OSPreferenceNone, f.Get(registration.FieldOSPreference))
	require.Equal(t, []string{}, f.Get(registration.FieldSelectedAlgorithms))
}

func TestForm_ValuesIsACopy(t *testing.T) {
	f := NewForm(known)
	f.SetSelectedAlgorithms([]string{"face-detection"})

	v := f.Values()
	v.SelectedAlgorithms[0] = "tampered"
	v.FullName = "tampered"

	require.Equal(t, []string{"face-detection"}, f.Values().SelectedAlgorithms)
	require.Equal(t, "", f.Values().FullName)
}

func TestForm_SetAndGet(t *testing.T) {
	f := NewForm(known)

	require.NoError(t, f.Set(registration.FieldFullName, "Ada"))
	require.NoError(t, f.Set(registration.FieldEmail, "ada@example.com"))
	require.NoError(t, f.Set(registration.FieldCountryCode, "44"))
	require.NoError(t, f.Set(registration.FieldPhoneNumber, "1234567"))
	require.NoError(t, f.Set(registration.FieldAffiliation, "Analytical Engines"))
	require.NoError(t, f.Set(registration.FieldUserCategory, "industrialist"))
	require.NoError(t, f.Set(registration.FieldSolutionCategory, registration.SolutionWithBothOsAndHardware))
	require.NoError(t, f.Set(registration.FieldOSPreference, "autoBooted"))
	require.NoError(t, f.Set(registration.FieldSelectedAlgorithms, []string{"noise-cancellation"}))

	require.Equal(t, "Ada", f.Get(registration.FieldFullName))
	require.Equal(t, "ada@example.com", f.Get(registration.FieldEmail))
	require.Equal(t, "44", f.Get(registration.FieldCountryCode))
	require.Equal(t, "1234567", f.Get(registration.FieldPhoneNumber))
	require.Equal(t, "Analytical Engines", f.Get(registration.FieldAffiliation))
	require.Equal(t, registration.UserCategoryIndustrialist, f.Get(registration.FieldUserCategory))
	require.Equal(t, registration.OSPreferenceAutoBooted, f.Get(registration.FieldOSPreference))
	require.Equal(t, []string{"noise-cancellation"}, f.Get(registration.FieldSelectedAlgorithms))
	require.Nil(t, f.Get(registration.Field("nickname")))
}

func TestForm_SetRejectsBadInput(t *testing.T) {
	f := NewForm(known)
	before := f.Values()

	require.Error(t, f.Set(registration.FieldFullName, 42))
	require.Error(t, f.Set(registration.FieldSelectedAlgorithms, "face-detection"))
	require.Error(t, f.Set(registration.FieldSolutionCategory, 3))
	require.Error(t, f.Set(registration.Field("nickname"), "x"))
	require.Equal(t, before, f.Values())
}

func TestReduce_LeavingOSCategoryClearsPreference(t *testing.T) {
	d := registration.DefaultDraft()
	d.OSPreference = registration.OSPreferenceExecutable

	out, err := Reduce(d, Change{Field: registration.FieldSolutionCategory, Value: registration.SolutionCustomizable})
	require.NoError(t, err)
	require.Equal(t, registration.OSPreferenceNone, out.OSPreference)
	require.Equal(t, registration.OSPreferenceExecutable, d.OSPreference, "input draft must not change")
}

func TestReduce_MovingBetweenOSCategoriesKeepsPreference(t *testing.T) {
	d := registration.DefaultDraft()
	d.OSPreference = registration.OSPreferenceAutoBooted

	out, err := Reduce(d, Change{Field: registration.FieldSolutionCategory, Value: registration.SolutionWithoutHardwareWithOs})
	require.NoError(t, err)
	require.Equal(t, registration.OSPreferenceAutoBooted, out.OSPreference)
}

func TestReduce_IgnoresPreferenceForNonOSCategory(t *testing.T) {
	d := registration.DefaultDraft()
	d.SolutionCategory = registration.SolutionCustomizable

	out, err := Reduce(d, Change{Field: registration.FieldOSPreference, Value: registration.OSPreferenceExecutable})
	require.NoError(t, err)
	require.Equal(t, registration.OSPreferenceNone, out.OSPreference)
}

func TestForm_ClearingPreferenceDropsItsError(t *testing.T) {
	f := NewForm(known)
	require.False(t, f.Trigger(registration.FieldOSPreference))
	require.Equal(t, "Please select an OS delivery method", f.Error(registration.FieldOSPreference))

	f.SetOSPreference(registration.OSPreferenceExecutable)
	f.SetSolutionCategory(registration.SolutionCustomizable)

	require.Equal(t, registration.OSPreferenceNone, f.Values().OSPreference)
	require.Empty(t, f.Error(registration.FieldOSPreference))
}

func TestTrigger_RecordsAndClearsErrors(t *testing.T) {
	f := NewForm(known)

	require.False(t, f.Trigger(registration.FieldFullName, registration.FieldEmail))
	require.Equal(t, "Full name is required", f.Error(registration.FieldFullName))
	require.Equal(t, "Email is required", f.Error(registration.FieldEmail))

	f.SetFullName("Jo")
	require.True(t, f.Trigger(registration.FieldFullName))
	require.Empty(t, f.Error(registration.FieldFullName))
	require.Equal(t, "Email is required", f.Error(registration.FieldEmail), "untriggered fields keep their message")

	f.SetEmail("not-an-email")
	require.False(t, f.Trigger(registration.FieldEmail))
	require.Equal(t, "Please enter a valid email address", f.Error(registration.FieldEmail))
}

func TestTrigger_NoFieldsPasses(t *testing.T) {
	f := NewForm(known)
	require.True(t, f.Trigger())
	require.Empty(t, f.Errors())
}

func TestTrigger_ErrorsIsACopy(t *testing.T) {
	f := NewForm(known)
	f.Trigger(registration.FieldFullName)

	errs := f.Errors()
	delete(errs, registration.FieldFullName)
	require.NotEmpty(t, f.Error(registration.FieldFullName))
}

// Scenario A: a two-character name passes, a one-character name fails.
func TestScenarioA_FullNameMinimumLength(t *testing.T) {
	f := NewForm(known)

	f.SetFullName("Jo")
	require.True(t, f.Trigger(registration.FieldFullName))

	f.SetFullName("J")
	require.False(t, f.Trigger(registration.FieldFullName))
	require.Equal(t, "Full name must be at least 2 characters", f.Error(registration.FieldFullName))
}

// Scenario C: the algorithms step needs at least one selection.
func TestScenarioC_AlgorithmMinimumSelection(t *testing.T) {
	f := NewForm(known)

	require.False(t, f.Trigger(StepAlgorithms.Fields()...))
	require.Equal(t, "Please select at least one algorithm", f.Error(registration.FieldSelectedAlgorithms))

	f.SetSelectedAlgorithms([]string{"face-detection"})
	require.True(t, f.Trigger(StepAlgorithms.Fields()...))
	require.Empty(t, f.Errors())
}

func TestTrigger_UsesLookup(t *testing.T) {
	f := NewForm(known)
	f.SetSelectedAlgorithms([]string{"teleportation"})
	require.False(t, f.Trigger(registration.FieldSelectedAlgorithms))
	require.Equal(t, "Selection contains an unknown algorithm", f.Error(registration.FieldSelectedAlgorithms))

	f.SetLookup(nil)
	require.True(t, f.Trigger(registration.FieldSelectedAlgorithms))
}

func TestToggleAlgorithm(t *testing.T) {
	f := NewForm(known)

	f.ToggleAlgorithm("face-detection")
	f.ToggleAlgorithm("speech-recognition")
	require.Equal(t, []string{"face-detection", "speech-recognition"}, f.Values().SelectedAlgorithms)

	f.ToggleAlgorithm("face-detection")
	require.Equal(t, []string{"speech-recognition"}, f.Values().SelectedAlgorithms)
}

func TestForm_Reset(t *testing.T) {
	f := NewForm(known)
	fillUserInfo(f)
	f.SetSolutionCategory(registration.SolutionCustomizable)
	f.Trigger(registration.FieldSelectedAlgorithms)

	f.Reset()
	require.Equal(t, registration.DefaultDraft(), f.Values())
	require.Empty(t, f.Errors())
}

func TestNewFormWithDefaults_Normalizes(t *testing.T) {
	d := registration.DefaultDraft()
	d.SolutionCategory = registration.SolutionCustomizable
	d.OSPreference = registration.OSPreferenceExecutable

	f := NewFormWithDefaults(d, known)
	require.Equal(t, registration.OSPreferenceNone, f.Defaults().OSPreference)
}

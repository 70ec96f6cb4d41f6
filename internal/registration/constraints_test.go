package registration

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validDraft() Draft {
	d := DefaultDraft()
	d.FullName = "Jo"
	d.Email = "jo@example.com"
	d.CountryCode = "91"
	d.PhoneNumber = "9040171"
	d.Affiliation = "IIT"
	d.OSPreference = OSPreferenceExecutable
	d.SelectedAlgorithms = []string{"face-detection"}
	return d
}

func TestValidate_ValidDraftPasses(t *testing.T) {
	errs := Validate(validDraft(), nil)
	require.Empty(t, errs)
}

func TestValidate_FieldConstraints(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Draft)
		field   Field
		message string
	}{
		{"empty name", func(d *Draft) { d.FullName = "" }, FieldFullName, "Full name is required"},
		{"blank name", func(d *Draft) { d.FullName = "   " }, FieldFullName, "Full name is required"},
		{"short name", func(d *Draft) { d.FullName = "J" }, FieldFullName, "Full name must be at least 2 characters"},
		{"empty email", func(d *Draft) { d.Email = "" }, FieldEmail, "Email is required"},
		{"bad email", func(d *Draft) { d.Email = "jo@" }, FieldEmail, "Please enter a valid email address"},
		{"no tld", func(d *Draft) { d.Email = "jo@example" }, FieldEmail, "Please enter a valid email address"},
		{"empty country", func(d *Draft) { d.CountryCode = "" }, FieldCountryCode, "Country code is required"},
		{"short phone", func(d *Draft) { d.PhoneNumber = "12345" }, FieldPhoneNumber, "Phone number must be at least 6 digits"},
		{"empty affiliation", func(d *Draft) { d.Affiliation = "" }, FieldAffiliation, "Affiliation is required"},
		{"short affiliation", func(d *Draft) { d.Affiliation = "X" }, FieldAffiliation, "Affiliation must be at least 2 characters"},
		{"bad user category", func(d *Draft) { d.UserCategory = "student" }, FieldUserCategory, "Please select a user category"},
		{"bad solution category", func(d *Draft) { d.SolutionCategory = "withHardwareWithoutOs" }, FieldSolutionCategory, "Please select a solution category"},
		{"missing os preference", func(d *Draft) { d.OSPreference = OSPreferenceNone }, FieldOSPreference, "Please select an OS delivery method"},
		{"os preference without os", func(d *Draft) { d.SolutionCategory = SolutionCustomizable }, FieldOSPreference, "OS delivery method does not apply to this solution category"},
		{"no algorithms", func(d *Draft) { d.SelectedAlgorithms = nil }, FieldSelectedAlgorithms, "Please select at least one algorithm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)

			errs := Validate(d, nil, tt.field)
			require.Equal(t, tt.message, errs[tt.field])
			require.Len(t, errs, 1, "only the requested field should be evaluated")
		})
	}
}

func TestValidate_FirstFailureWins(t *testing.T) {
	d := validDraft()
	d.FullName = ""

	errs := Validate(d, nil, FieldFullName)
	require.Equal(t, "Full name is required", errs[FieldFullName])
}

func TestValidate_UnknownAlgorithm(t *testing.T) {
	known := func(id string) bool { return id == "face-detection" }

	d := validDraft()
	require.Empty(t, Validate(d, known, FieldSelectedAlgorithms))

	d.SelectedAlgorithms = []string{"face-detection", "mind-reading"}
	errs := Validate(d, known, FieldSelectedAlgorithms)
	require.Equal(t, "Selection contains an unknown algorithm", errs[FieldSelectedAlgorithms])
}

func TestValidate_AllFieldsWhenNoneNamed(t *testing.T) {
	errs := Validate(DefaultDraft(), nil)

	require.Contains(t, errs, FieldFullName)
	require.Contains(t, errs, FieldEmail)
	require.Contains(t, errs, FieldCountryCode)
	require.Contains(t, errs, FieldPhoneNumber)
	require.Contains(t, errs, FieldAffiliation)
	require.Contains(t, errs, FieldOSPreference)
	require.Contains(t, errs, FieldSelectedAlgorithms)
	require.NotContains(t, errs, FieldUserCategory, "default user category is valid")
	require.NotContains(t, errs, FieldSolutionCategory, "default solution category is valid")
}

func TestValidate_CountsRunesNotBytes(t *testing.T) {
	d := validDraft()
	d.FullName = "Łó"
	require.Empty(t, Validate(d, nil, FieldFullName))
	require.Equal(t, 4, len(d.FullName), "two runes, four bytes")
}

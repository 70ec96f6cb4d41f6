package registration

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Constraint is one row of the validation table: a predicate over the draft and
// the message recorded when it fails.
type Constraint struct {
	Field   Field
	Check   func(Draft) bool
	Message string
}

// FieldErrors maps a failing field to its error message.
type FieldErrors map[Field]string

// AlgorithmLookup reports whether an algorithm id exists in the catalog.
type AlgorithmLookup func(id string) bool

// Constraints builds the declarative constraint table. Rows for the same field
// are evaluated in order and the first failure wins. A nil lookup accepts any
// algorithm id.
func Constraints(known AlgorithmLookup) []Constraint {
	minLen := func(s string, n int) bool { return utf8.RuneCountInString(strings.TrimSpace(s)) >= n }
	notBlank := func(s string) bool { return strings.TrimSpace(s) != "" }

	return []Constraint{
		{FieldFullName, func(d Draft) bool { return notBlank(d.FullName) }, "Full name is required"},
		{FieldFullName, func(d Draft) bool { return minLen(d.FullName, 2) }, "Full name must be at least 2 characters"},

		{FieldEmail, func(d Draft) bool { return notBlank(d.Email) }, "Email is required"},
		{FieldEmail, func(d Draft) bool { return emailPattern.MatchString(strings.TrimSpace(d.Email)) }, "Please enter a valid email address"},

		{FieldCountryCode, func(d Draft) bool { return notBlank(d.CountryCode) }, "Country code is required"},

		{FieldPhoneNumber, func(d Draft) bool { return minLen(d.PhoneNumber, 6) }, "Phone number must be at least 6 digits"},

		{FieldAffiliation, func(d Draft) bool { return notBlank(d.Affiliation) }, "Affiliation is required"},
		{FieldAffiliation, func(d Draft) bool { return minLen(d.Affiliation, 2) }, "Affiliation must be at least 2 characters"},

		{FieldUserCategory, func(d Draft) bool { return d.UserCategory.IsValid() }, "Please select a user category"},

		{FieldSolutionCategory, func(d Draft) bool { return d.SolutionCategory.IsValid() }, "Please select a solution category"},

		{FieldOSPreference, func(d Draft) bool {
			return !d.SolutionCategory.DeliversOS() || d.OSPreference.IsValid()
		}, "Please select an OS delivery method"},
		{FieldOSPreference, func(d Draft) bool {
			return d.SolutionCategory.DeliversOS() || d.OSPreference == OSPreferenceNone
		}, "OS delivery method does not apply to this solution category"},

		{FieldSelectedAlgorithms, func(d Draft) bool { return len(d.SelectedAlgorithms) >= 1 }, "Please select at least one algorithm"},
		{FieldSelectedAlgorithms, func(d Draft) bool {
			if known == nil {
				return true
			}
			for _, id := range d.SelectedAlgorithms {
				if !known(id) {
					return false
				}
			}
			return true
		}, "Selection contains an unknown algorithm"},
	}
}

// Validate evaluates the constraints for the given fields (all fields when none
// are named) and returns the failures. An empty map means the draft passed.
func Validate(d Draft, known AlgorithmLookup, fields ...Field) FieldErrors {
	if len(fields) == 0 {
		fields = AllFields()
	}
	wanted := make(map[Field]bool, len(fields))
	for _, f := range fields {
		wanted[f] = true
	}

	errs := FieldErrors{}
	for _, c := range Constraints(known) {
		if !wanted[c.Field] {
			continue
		}
		if _, failed := errs[c.Field]; failed {
			continue
		}
		if !c.Check(d) {
			errs[c.Field] = c.Message
		}
	}
	return errs
}

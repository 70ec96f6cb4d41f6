// Package wizard holds the registration wizard's core: the form state, the
// step controller, and the submitter. It has no knowledge of any front-end.
//
// None of the types here are safe for concurrent mutation; a front-end drives
// them from a single event loop.
package wizard

import (
	"fmt"
	"maps"

	"github.com/kalpruh/enrol/internal/log"
	"github.com/kalpruh/enrol/internal/registration"
)

// Change is a single field edit.
type Change struct {
	Field registration.Field
	Value any
}

// Reduce applies c to d and returns the new draft. Whenever the resulting
// solution category delivers no OS, osPreference is cleared in the same step.
// d is not modified.
func Reduce(d registration.Draft, c Change) (registration.Draft, error) {
	out := d.Clone()
	var err error
	switch c.Field {
	case registration.FieldFullName:
		err = assignString(&out.FullName, c)
	case registration.FieldEmail:
		err = assignString(&out.Email, c)
	case registration.FieldCountryCode:
		err = assignString(&out.CountryCode, c)
	case registration.FieldPhoneNumber:
		err = assignString(&out.PhoneNumber, c)
	case registration.FieldAffiliation:
		err = assignString(&out.Affiliation, c)
	case registration.FieldUserCategory:
		switch v := c.Value.(type) {
		case registration.UserCategory:
			out.UserCategory = v
		case string:
			out.UserCategory = registration.UserCategory(v)
		default:
			err = typeError(c)
		}
	case registration.FieldSolutionCategory:
		switch v := c.Value.(type) {
		case registration.SolutionCategory:
			out.SolutionCategory = v
		case string:
			out.SolutionCategory = registration.SolutionCategory(v)
		default:
			err = typeError(c)
		}
	case registration.FieldOSPreference:
		switch v := c.Value.(type) {
		case registration.OSPreference:
			out.OSPreference = v
		case string:
			out.OSPreference = registration.OSPreference(v)
		case nil:
			out.OSPreference = registration.OSPreferenceNone
		default:
			err = typeError(c)
		}
	case registration.FieldSelectedAlgorithms:
		if v, ok := c.Value.([]string); ok {
			out.SelectedAlgorithms = append([]string{}, v...)
		} else {
			err = typeError(c)
		}
	default:
		err = fmt.Errorf("unknown field %q", c.Field)
	}
	if err != nil {
		return d, err
	}
	if !out.SolutionCategory.DeliversOS() {
		out.OSPreference = registration.OSPreferenceNone
	}
	return out, nil
}

func assignString(dst *string, c Change) error {
	s, ok := c.Value.(string)
	if !ok {
		return typeError(c)
	}
	*dst = s
	return nil
}

func typeError(c Change) error {
	return fmt.Errorf("field %q: unsupported value type %T", c.Field, c.Value)
}

// Form is the form state holder: current values, the defaults they started
// from, and the latest validation message per field.
type Form struct {
	values   registration.Draft
	defaults registration.Draft
	errors   registration.FieldErrors
	known    registration.AlgorithmLookup
}

// NewForm returns a form at DefaultDraft. known validates algorithm ids; nil
// accepts any id.
func NewForm(known registration.AlgorithmLookup) *Form {
	return NewFormWithDefaults(registration.DefaultDraft(), known)
}

// NewFormWithDefaults starts the form from defaults instead of DefaultDraft.
func NewFormWithDefaults(defaults registration.Draft, known registration.AlgorithmLookup) *Form {
	defaults = defaults.Normalize()
	return &Form{
		values:   defaults.Clone(),
		defaults: defaults,
		errors:   registration.FieldErrors{},
		known:    known,
	}
}

// SetLookup replaces the algorithm lookup, e.g. after a catalog reload.
func (f *Form) SetLookup(known registration.AlgorithmLookup) { f.known = known }

// Lookup returns the algorithm lookup used for validation.
func (f *Form) Lookup() registration.AlgorithmLookup { return f.known }

// Values returns a copy of the current draft.
func (f *Form) Values() registration.Draft { return f.values.Clone() }

// Defaults returns a copy of the default draft.
func (f *Form) Defaults() registration.Draft { return f.defaults.Clone() }

// Get returns the current value of field, or nil for an unknown field.
func (f *Form) Get(field registration.Field) any {
	switch field {
	case registration.FieldFullName:
		return f.values.FullName
	case registration.FieldEmail:
		return f.values.Email
	case registration.FieldCountryCode:
		return f.values.CountryCode
	case registration.FieldPhoneNumber:
		return f.values.PhoneNumber
	case registration.FieldAffiliation:
		return f.values.Affiliation
	case registration.FieldUserCategory:
		return f.values.UserCategory
	case registration.FieldSolutionCategory:
		return f.values.SolutionCategory
	case registration.FieldOSPreference:
		return f.values.OSPreference
	case registration.FieldSelectedAlgorithms:
		return append([]string{}, f.values.SelectedAlgorithms...)
	default:
		return nil
	}
}

// Set applies a change through Reduce. Setting a field does not validate it.
func (f *Form) Set(field registration.Field, value any) error {
	next, err := Reduce(f.values, Change{Field: field, Value: value})
	if err != nil {
		return err
	}
	if field == registration.FieldSolutionCategory && !next.SolutionCategory.DeliversOS() {
		if f.values.OSPreference != registration.OSPreferenceNone {
			log.Debug(log.CatWizard, "Cleared OS preference", "solutionCategory", next.SolutionCategory)
		}
		delete(f.errors, registration.FieldOSPreference)
	}
	f.values = next
	return nil
}

func (f *Form) mustSet(field registration.Field, value any) {
	if err := f.Set(field, value); err != nil {
		panic(err)
	}
}

// SetFullName sets fullName.
func (f *Form) SetFullName(v string) { f.mustSet(registration.FieldFullName, v) }

// SetEmail sets email.
func (f *Form) SetEmail(v string) { f.mustSet(registration.FieldEmail, v) }

// SetCountryCode sets countryCode.
func (f *Form) SetCountryCode(v string) { f.mustSet(registration.FieldCountryCode, v) }

// SetPhoneNumber sets phoneNumber.
func (f *Form) SetPhoneNumber(v string) { f.mustSet(registration.FieldPhoneNumber, v) }

// SetAffiliation sets affiliation.
func (f *Form) SetAffiliation(v string) { f.mustSet(registration.FieldAffiliation, v) }

// SetUserCategory sets userCategory.
func (f *Form) SetUserCategory(v registration.UserCategory) {
	f.mustSet(registration.FieldUserCategory, v)
}

// SetSolutionCategory sets solutionCategory, clearing osPreference for
// categories without an OS.
func (f *Form) SetSolutionCategory(v registration.SolutionCategory) {
	f.mustSet(registration.FieldSolutionCategory, v)
}

// SetOSPreference sets osPreference.
func (f *Form) SetOSPreference(v registration.OSPreference) {
	f.mustSet(registration.FieldOSPreference, v)
}

// SetSelectedAlgorithms replaces the algorithm selection.
func (f *Form) SetSelectedAlgorithms(ids []string) {
	f.mustSet(registration.FieldSelectedAlgorithms, ids)
}

// ToggleAlgorithm adds id to the selection, or removes it if present.
func (f *Form) ToggleAlgorithm(id string) {
	ids := make([]string, 0, len(f.values.SelectedAlgorithms)+1)
	found := false
	for _, existing := range f.values.SelectedAlgorithms {
		if existing == id {
			found = true
			continue
		}
		ids = append(ids, existing)
	}
	if !found {
		ids = append(ids, id)
	}
	f.SetSelectedAlgorithms(ids)
}

// Trigger validates the named fields against the constraint table. Failing
// fields get their message recorded, passing fields have theirs cleared.
// It reports whether every named field passed.
func (f *Form) Trigger(fields ...registration.Field) bool {
	if len(fields) == 0 {
		return true
	}
	failed := registration.Validate(f.values, f.known, fields...)
	for _, field := range fields {
		if msg, ok := failed[field]; ok {
			f.errors[field] = msg
		} else {
			delete(f.errors, field)
		}
	}
	if len(failed) > 0 {
		log.Debug(log.CatWizard, "Validation failed", "fields", len(failed))
	}
	return len(failed) == 0
}

// Errors returns a copy of the recorded validation messages.
func (f *Form) Errors() registration.FieldErrors {
	return maps.Clone(f.errors)
}

// Error returns the recorded message for field, or "".
func (f *Form) Error(field registration.Field) string {
	return f.errors[field]
}

// ClearErrors drops all recorded messages.
func (f *Form) ClearErrors() {
	f.errors = registration.FieldErrors{}
}

// Reset restores the defaults and clears errors.
func (f *Form) Reset() {
	f.values = f.defaults.Clone()
	f.ClearErrors()
}

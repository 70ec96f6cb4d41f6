package registration

import "slices"

// Field names a draft field. Values match the JSON wire names.
type Field string

const (
	FieldFullName           Field = "fullName"
	FieldEmail              Field = "email"
	FieldCountryCode        Field = "countryCode"
	FieldPhoneNumber        Field = "phoneNumber"
	FieldAffiliation        Field = "affiliation"
	FieldUserCategory       Field = "userCategory"
	FieldSolutionCategory   Field = "solutionCategory"
	FieldOSPreference       Field = "osPreference"
	FieldSelectedAlgorithms Field = "selectedAlgorithms"
)

// AllFields lists every draft field in form order.
func AllFields() []Field {
	return []Field{
		FieldFullName,
		FieldEmail,
		FieldPhoneNumber,
		FieldCountryCode,
		FieldAffiliation,
		FieldUserCategory,
		FieldSolutionCategory,
		FieldOSPreference,
		FieldSelectedAlgorithms,
	}
}

// Draft is the in-progress registration record before persistence.
//
// OSPreference is empty when undefined and is omitted from the JSON payload.
type Draft struct {
	FullName           string           `json:"fullName"`
	Email              string           `json:"email"`
	CountryCode        string           `json:"countryCode"`
	PhoneNumber        string           `json:"phoneNumber"`
	Affiliation        string           `json:"affiliation"`
	UserCategory       UserCategory     `json:"userCategory"`
	SolutionCategory   SolutionCategory `json:"solutionCategory"`
	OSPreference       OSPreference     `json:"osPreference,omitempty"`
	SelectedAlgorithms []string         `json:"selectedAlgorithms"`
}

// DefaultDraft returns the draft a new wizard session starts from.
func DefaultDraft() Draft {
	return Draft{
		UserCategory:       UserCategoryEnthusiast,
		SolutionCategory:   SolutionWithOsWithoutHardware,
		OSPreference:       OSPreferenceNone,
		SelectedAlgorithms: []string{},
	}
}

// Clone returns a deep copy of d.
func (d Draft) Clone() Draft {
	out := d
	out.SelectedAlgorithms = slices.Clone(d.SelectedAlgorithms)
	if out.SelectedAlgorithms == nil {
		out.SelectedAlgorithms = []string{}
	}
	return out
}

// HasAlgorithm reports whether id is selected.
func (d Draft) HasAlgorithm(id string) bool {
	return slices.Contains(d.SelectedAlgorithms, id)
}

// Normalize enforces the structural invariants of a draft: osPreference is
// cleared when the solution category does not deliver an OS, and duplicate
// algorithm ids are dropped while keeping first-seen order.
func (d Draft) Normalize() Draft {
	out := d.Clone()
	if !out.SolutionCategory.DeliversOS() {
		out.OSPreference = OSPreferenceNone
	}
	seen := make(map[string]struct{}, len(out.SelectedAlgorithms))
	deduped := out.SelectedAlgorithms[:0]
	for _, id := range out.SelectedAlgorithms {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		deduped = append(deduped, id)
	}
	out.SelectedAlgorithms = deduped
	return out
}

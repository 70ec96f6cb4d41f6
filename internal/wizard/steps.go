package wizard

import (
	"slices"

	"github.com/kalpruh/enrol/internal/registration"
)

// Step identifies one wizard page.
type Step int

const (
	StepUserInfo Step = iota + 1
	StepSolution
	StepOSPreference
	StepAlgorithms
	StepSummary
)

// FirstStep and LastStep bound the step range.
const (
	FirstStep = StepUserInfo
	LastStep  = StepSummary
)

// AllSteps lists every step in order, visible or not.
func AllSteps() []Step {
	return []Step{StepUserInfo, StepSolution, StepOSPreference, StepAlgorithms, StepSummary}
}

// Label is the short name shown in the step indicator.
func (s Step) Label() string {
	switch s {
	case StepUserInfo:
		return "User Info"
	case StepSolution:
		return "Solution"
	case StepOSPreference:
		return "OS Pref."
	case StepAlgorithms:
		return "Algorithms"
	case StepSummary:
		return "Summary"
	default:
		return "Unknown"
	}
}

// Title is the heading shown above the step's fields.
func (s Step) Title() string {
	switch s {
	case StepUserInfo:
		return "Tell us about yourself"
	case StepSolution:
		return "Choose your solution category"
	case StepOSPreference:
		return "How should the OS be delivered?"
	case StepAlgorithms:
		return "Pick the algorithms you need"
	case StepSummary:
		return "Review your registration"
	default:
		return ""
	}
}

// Valid reports whether s is one of the five steps.
func (s Step) Valid() bool { return s >= FirstStep && s <= LastStep }

// Fields returns the draft fields validated before leaving s.
func (s Step) Fields() []registration.Field {
	switch s {
	case StepUserInfo:
		return []registration.Field{
			registration.FieldFullName,
			registration.FieldEmail,
			registration.FieldPhoneNumber,
			registration.FieldCountryCode,
			registration.FieldAffiliation,
			registration.FieldUserCategory,
		}
	case StepSolution:
		return []registration.Field{registration.FieldSolutionCategory}
	case StepOSPreference:
		return []registration.Field{registration.FieldOSPreference}
	case StepAlgorithms:
		return []registration.Field{registration.FieldSelectedAlgorithms}
	default:
		return nil
	}
}

// VisibleSteps returns the ordered steps shown for d. It depends only on
// d.SolutionCategory: the OS step appears only for categories that deliver
// an OS.
func VisibleSteps(d registration.Draft) []Step {
	if d.SolutionCategory.DeliversOS() {
		return AllSteps()
	}
	return []Step{StepUserInfo, StepSolution, StepAlgorithms, StepSummary}
}

// IsVisible reports whether s is shown for d.
func IsVisible(d registration.Draft, s Step) bool {
	return slices.Contains(VisibleSteps(d), s)
}

// StepForField returns the step that owns field.
func StepForField(field registration.Field) (Step, bool) {
	for _, s := range AllSteps() {
		if slices.Contains(s.Fields(), field) {
			return s, true
		}
	}
	return 0, false
}

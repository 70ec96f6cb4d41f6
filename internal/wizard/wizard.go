package wizard

import (
	"context"
	"errors"

	"github.com/kalpruh/enrol/internal/log"
	"github.com/kalpruh/enrol/internal/registration"
)

// ErrNotOnSummary is returned when submission is attempted before the
// summary step.
var ErrNotOnSummary = errors.New("registration can only be submitted from the summary step")

// Wizard ties the form, the step controller and the submitter together for
// one registration session.
type Wizard struct {
	Form      *Form
	Steps     *Controller
	Submitter *Submitter
}

// New creates a wizard at step 1 with default values.
func New(collab Collaborator, known registration.AlgorithmLookup, opts ...SubmitterOption) *Wizard {
	form := NewForm(known)
	return &Wizard{
		Form:      form,
		Steps:     NewController(form),
		Submitter: NewSubmitter(collab, known, opts...),
	}
}

// Step returns the current step.
func (w *Wizard) Step() Step { return w.Steps.Current() }

// Draft returns a copy of the current values.
func (w *Wizard) Draft() registration.Draft { return w.Form.Values() }

// Set edits a field and keeps the current step visible.
func (w *Wizard) Set(field registration.Field, value any) error {
	if err := w.Form.Set(field, value); err != nil {
		return err
	}
	w.Steps.Sync()
	return nil
}

// Next advances when the current step validates.
func (w *Wizard) Next() bool { return w.Steps.Next() }

// CanGoBack reports whether Previous would move. Going back is blocked on
// the first step and while a submission is in flight.
func (w *Wizard) CanGoBack() bool {
	return !w.Steps.IsFirst() && !w.Submitter.InFlight()
}

// Previous moves back one visible step.
func (w *Wizard) Previous() bool {
	if w.Submitter.InFlight() {
		return false
	}
	return w.Steps.Previous()
}

// BeginSubmit starts an asynchronous submission; see Submitter.Begin.
func (w *Wizard) BeginSubmit() (registration.Draft, error) {
	if w.Steps.Current() != StepSummary {
		return registration.Draft{}, ErrNotOnSummary
	}
	return w.Submitter.Begin(w.Form.Values())
}

// Submit sends the current draft synchronously from the summary step.
func (w *Wizard) Submit(ctx context.Context) (Status, error) {
	if w.Steps.Current() != StepSummary {
		return w.Submitter.Status(), ErrNotOnSummary
	}
	return w.Submitter.Submit(ctx, w.Form.Values())
}

// SetLookup swaps the algorithm lookup in both form and submitter.
func (w *Wizard) SetLookup(known registration.AlgorithmLookup) {
	w.Form.SetLookup(known)
	w.Submitter.SetLookup(known)
}

// Reset restores defaults, step 1 and an idle submitter.
func (w *Wizard) Reset() {
	w.Form.Reset()
	w.Steps.Reset()
	w.Submitter.Reset()
	log.Debug(log.CatWizard, "Wizard reset")
}

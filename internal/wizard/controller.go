package wizard

import (
	"slices"

	"github.com/kalpruh/enrol/internal/log"
)

// Controller is the step state machine over a Form.
type Controller struct {
	form *Form
	step Step
}

// NewController starts at step 1.
func NewController(form *Form) *Controller {
	return &Controller{form: form, step: FirstStep}
}

// Current returns the active step.
func (c *Controller) Current() Step { return c.step }

// Visible returns the steps visible for the current draft.
func (c *Controller) Visible() []Step { return VisibleSteps(c.form.values) }

// Position returns the 1-based index of the current step among visible steps
// and the visible count, for "Step 2 of 4" progress text.
func (c *Controller) Position() (int, int) {
	visible := c.Visible()
	return slices.Index(visible, c.step) + 1, len(visible)
}

// IsFirst reports whether the current step is the first visible step.
func (c *Controller) IsFirst() bool { return c.step == FirstStep }

// IsLast reports whether the current step is the summary.
func (c *Controller) IsLast() bool { return c.step == LastStep }

// Next validates the current step's fields and, if they pass, moves to the
// next visible step. It reports whether the step changed. On the summary step
// it is a no-op.
func (c *Controller) Next() bool {
	c.Sync()
	if c.step == LastStep {
		return false
	}
	if !c.form.Trigger(c.step.Fields()...) {
		log.Debug(log.CatWizard, "Step blocked by validation", "step", c.step.Label())
		return false
	}
	visible := c.Visible()
	i := slices.Index(visible, c.step)
	from := c.step
	c.step = visible[i+1]
	log.Debug(log.CatWizard, "Advanced step", "from", from.Label(), "to", c.step.Label())
	return true
}

// Previous moves to the previous visible step without validating. It reports
// whether the step changed.
func (c *Controller) Previous() bool {
	c.Sync()
	visible := c.Visible()
	i := slices.Index(visible, c.step)
	if i <= 0 {
		return false
	}
	c.step = visible[i-1]
	return true
}

// Sync snaps the current step to the nearest earlier visible step when the
// draft no longer shows it, e.g. after solutionCategory changed while on the
// OS step.
func (c *Controller) Sync() {
	if IsVisible(c.form.values, c.step) {
		return
	}
	visible := c.Visible()
	snapped := FirstStep
	for _, s := range visible {
		if s < c.step {
			snapped = s
		}
	}
	log.Debug(log.CatWizard, "Snapped to visible step", "from", c.step.Label(), "to", snapped.Label())
	c.step = snapped
}

// Reset returns to step 1.
func (c *Controller) Reset() { c.step = FirstStep }

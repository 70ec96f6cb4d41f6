package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/kalpruh/enrol/internal/catalog"
	"github.com/kalpruh/enrol/internal/log"
	"github.com/kalpruh/enrol/internal/registration"
	"github.com/kalpruh/enrol/internal/ui/markdown"
	"github.com/kalpruh/enrol/internal/ui/wizardview"
	"github.com/kalpruh/enrol/internal/wizard"
)

// Flow walks a wizard step by step with a Driver.
type Flow struct {
	wiz    *wizard.Wizard
	cat    *catalog.Catalog
	driver Driver
	out    io.Writer
	md     *markdown.Renderer
}

// NewFlow creates a flow. md renders the summary; nil prints raw markdown.
func NewFlow(w *wizard.Wizard, cat *catalog.Catalog, driver Driver, out io.Writer, md *markdown.Renderer) *Flow {
	return &Flow{wiz: w, cat: cat, driver: driver, out: out, md: md}
}

// Run asks every visible step, shows the summary and submits once the user
// confirms. A failed submission can be retried; the returned status is the
// final one. Declining to submit returns the idle status and no error.
func (f *Flow) Run(ctx context.Context) (wizard.Status, error) {
	for f.wiz.Step() != wizard.StepSummary {
		if err := f.askStep(ctx, f.wiz.Step()); err != nil {
			return f.wiz.Submitter.Status(), err
		}
		if !f.wiz.Next() {
			f.printErrors(f.wiz.Step())
		}
	}

	f.printSummary()
	for {
		ok, err := f.driver.Confirm(ctx, "Submit this registration?", true)
		if err != nil || !ok {
			return f.wiz.Submitter.Status(), err
		}

		status, err := f.wiz.Submit(ctx)
		_, _ = fmt.Fprintln(f.out, status.Message)

		var verr *wizard.ValidationError
		switch {
		case err == nil:
			return status, nil
		case errors.As(err, &verr):
			return status, err
		}

		log.Debug(log.CatSubmit, "Prompt submission failed", "error", err)
		retry, cerr := f.driver.Confirm(ctx, "Try again?", true)
		if cerr != nil || !retry {
			return status, err
		}
	}
}

func (f *Flow) askStep(ctx context.Context, step wizard.Step) error {
	_, _ = fmt.Fprintf(f.out, "\n%s\n", step.Title())
	for _, field := range step.Fields() {
		if err := f.askField(ctx, field); err != nil {
			return err
		}
	}
	return nil
}

func (f *Flow) askField(ctx context.Context, field registration.Field) error {
	switch field {
	case registration.FieldUserCategory:
		opts := registration.UserCategories()
		labels := make([]string, len(opts))
		def := -1
		for i, o := range opts {
			labels[i] = o.Label
			if o.Value == f.wiz.Draft().UserCategory {
				def = i
			}
		}
		i, err := f.driver.Select(ctx, SelectConfig{Message: "User Category", Options: labels, DefaultIndex: def})
		if err != nil {
			return err
		}
		return f.wiz.Set(field, opts[i].Value)

	case registration.FieldSolutionCategory:
		opts := registration.SolutionCategories()
		labels := make([]string, len(opts))
		descs := make([]string, len(opts))
		def := -1
		for i, o := range opts {
			labels[i], descs[i] = o.Label, o.Description
			if o.Value == f.wiz.Draft().SolutionCategory {
				def = i
			}
		}
		i, err := f.driver.Select(ctx, SelectConfig{
			Message: "Solution Category", Options: labels, Descriptions: descs, DefaultIndex: def,
		})
		if err != nil {
			return err
		}
		return f.wiz.Set(field, opts[i].Value)

	case registration.FieldOSPreference:
		opts := registration.OSPreferences()
		labels := make([]string, len(opts))
		descs := make([]string, len(opts))
		def := -1
		for i, o := range opts {
			labels[i], descs[i] = o.Label, o.Description
			if o.Value == f.wiz.Draft().OSPreference {
				def = i
			}
		}
		i, err := f.driver.Select(ctx, SelectConfig{
			Message: "OS Delivery", Options: labels, Descriptions: descs, DefaultIndex: def,
		})
		if err != nil {
			return err
		}
		return f.wiz.Set(field, opts[i].Value)

	case registration.FieldSelectedAlgorithms:
		return f.askAlgorithms(ctx)

	default:
		return f.askText(ctx, field)
	}
}

var textPrompts = map[registration.Field]string{
	registration.FieldFullName:    "Full Name",
	registration.FieldEmail:       "Email",
	registration.FieldCountryCode: "Country Code",
	registration.FieldPhoneNumber: "Phone Number",
	registration.FieldAffiliation: "Affiliation",
}

// askText validates the answer on entry, so survey re-asks until the field
// passes.
func (f *Flow) askText(ctx context.Context, field registration.Field) error {
	current, _ := f.wiz.Form.Get(field).(string)
	answer, err := f.driver.Input(ctx, InputConfig{
		Message: textPrompts[field],
		Default: current,
		Validator: func(s string) error {
			if err := f.wiz.Set(field, s); err != nil {
				return err
			}
			if !f.wiz.Form.Trigger(field) {
				return errors.New(f.wiz.Form.Error(field))
			}
			return nil
		},
	})
	if err != nil {
		return err
	}
	return f.wiz.Set(field, answer)
}

func (f *Flow) askAlgorithms(ctx context.Context) error {
	all := f.cat.All()
	labels := make([]string, len(all))
	var defaults []int
	draft := f.wiz.Draft()
	for i, a := range all {
		labels[i] = a.Label
		if draft.HasAlgorithm(a.ID) {
			defaults = append(defaults, i)
		}
	}

	picked, err := f.driver.MultiSelect(ctx, SelectConfig{
		Message:  "Algorithms",
		Options:  labels,
		Defaults: defaults,
		PageSize: 12,
		Validator: func(idx []int) error {
			d := f.wiz.Draft()
			d.SelectedAlgorithms = idsAt(all, idx)
			if msg := registration.Validate(d, f.cat.Contains, registration.FieldSelectedAlgorithms)[registration.FieldSelectedAlgorithms]; msg != "" {
				return errors.New(msg)
			}
			return nil
		},
	})
	if err != nil {
		return err
	}

	return f.wiz.Set(registration.FieldSelectedAlgorithms, idsAt(all, picked))
}

func idsAt(all []catalog.Algorithm, idx []int) []string {
	ids := make([]string, 0, len(idx))
	for _, i := range idx {
		if i >= 0 && i < len(all) {
			ids = append(ids, all[i].ID)
		}
	}
	return ids
}

func (f *Flow) printErrors(step wizard.Step) {
	for _, field := range step.Fields() {
		if msg := f.wiz.Form.Error(field); msg != "" {
			_, _ = fmt.Fprintf(f.out, "  %s\n", msg)
		}
	}
}

func (f *Flow) printSummary() {
	md := wizardview.SummaryMarkdown(f.wiz.Draft(), f.cat)
	if f.md != nil {
		if rendered, err := f.md.Render(md); err == nil {
			md = rendered
		}
	}
	_, _ = fmt.Fprintf(f.out, "\n%s\n\n", md)
}

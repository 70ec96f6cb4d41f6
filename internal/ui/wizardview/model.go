// Package wizardview renders the registration wizard and turns key and
// mouse input into wizard operations.
package wizardview

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/kalpruh/enrol/internal/catalog"
	"github.com/kalpruh/enrol/internal/keys"
	"github.com/kalpruh/enrol/internal/log"
	"github.com/kalpruh/enrol/internal/registration"
	"github.com/kalpruh/enrol/internal/ui/markdown"
	"github.com/kalpruh/enrol/internal/ui/styles"
	"github.com/kalpruh/enrol/internal/wizard"
)

type textField struct {
	field       registration.Field
	label       string
	placeholder string
}

var textFields = []textField{
	{registration.FieldFullName, "Full Name", "Enter your full name"},
	{registration.FieldEmail, "Email", "Enter your email address"},
	{registration.FieldCountryCode, "Country Code", "Country code"},
	{registration.FieldPhoneNumber, "Phone Number", "Phone number"},
	{registration.FieldAffiliation, "Affiliation", "University, company, or independent"},
}

// Zone IDs for clickable elements.
const (
	zoneBack   = "wizard-back"
	zoneNext   = "wizard-next"
	zoneSubmit = "wizard-submit"
)

func optionZoneID(field registration.Field, i int) string {
	return fmt.Sprintf("wizard-opt-%s-%d", field, i)
}

func inputZoneID(i int) string {
	return fmt.Sprintf("wizard-input-%d", i)
}

// SubmitDoneMsg carries the collaborator's answer back to the event loop.
type SubmitDoneMsg struct {
	Result wizard.Result
	Err    error
}

// option is one entry of a single- or multi-select list.
type option struct {
	value       string
	label       string
	description string
	group       catalog.Group
}

// Model is the wizard screen.
type Model struct {
	wiz     *wizard.Wizard
	cat     *catalog.Catalog
	keys    keys.KeyMap
	help    help.Model
	spinner spinner.Model
	inputs  []textinput.Model
	ctx     context.Context

	focus      int // index into the current step's focusable items
	algoCursor int
	width      int

	markdownStyle string
	md            *rendererCache
}

// Option configures a Model.
type Option func(*Model)

// WithMarkdownStyle selects the glamour style of the summary.
func WithMarkdownStyle(style string) Option {
	return func(m *Model) { m.markdownStyle = style }
}

// WithContext sets the context submissions run under.
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

// New creates the screen for w, offering the algorithms in cat.
func New(w *wizard.Wizard, cat *catalog.Catalog, opts ...Option) Model {
	m := Model{
		wiz:           w,
		cat:           cat,
		keys:          keys.DefaultKeyMap(),
		help:          help.New(),
		ctx:           context.Background(),
		width:         80,
		markdownStyle: markdown.StyleDark,
		md:            &rendererCache{},
	}
	m.spinner = spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.SpinnerColor)),
	)

	m.inputs = make([]textinput.Model, len(textFields))
	for i, tf := range textFields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = tf.placeholder
		ti.CharLimit = 120
		ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(styles.TextPlaceholderColor)
		ti.SetValue(stringValue(w.Form.Get(tf.field)))
		m.inputs[i] = ti
	}

	for _, opt := range opts {
		opt(&m)
	}
	w.SetLookup(cat.Contains)
	m.applyFocus()
	return m
}

// Wizard returns the wizard being edited.
func (m Model) Wizard() *wizard.Wizard { return m.wiz }

// SetCatalog swaps the algorithm catalog, for example after a hot reload.
// Selected ids that disappeared stay in the draft and fail validation.
func (m *Model) SetCatalog(cat *catalog.Catalog) {
	m.cat = cat
	m.wiz.SetLookup(cat.Contains)
	if n := cat.Len(); m.algoCursor >= n {
		m.algoCursor = max(n-1, 0)
	}
}

// SetSize updates the layout width.
func (m *Model) SetSize(width int) {
	m.width = width
	m.help.Width = width
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles a message.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width)
		return m, nil

	case SubmitDoneMsg:
		status := m.wiz.Submitter.Complete(msg.Result, msg.Err)
		log.Info(log.CatUI, "Submission finished", "state", status.State.String())
		return m, nil

	case spinner.TickMsg:
		if !m.wiz.Submitter.InFlight() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocusedInput(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	step := m.wiz.Step()

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Restart):
		if m.wiz.Submitter.Submitted() {
			return m.restart(), nil
		}
		return m, nil
	case step == wizard.StepSummary && key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Next):
		return m.next(), nil
	case key.Matches(msg, m.keys.Previous):
		return m.previous(), nil
	case key.Matches(msg, m.keys.NextField):
		m.moveFocus(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevField):
		m.moveFocus(-1)
		return m, nil
	}

	if field, ok := m.focusedOptionField(); ok {
		switch {
		case key.Matches(msg, m.keys.Up):
			m.moveOption(field, -1)
		case key.Matches(msg, m.keys.Down):
			m.moveOption(field, 1)
		case key.Matches(msg, m.keys.Toggle):
			m.selectOption(field, m.cursorFor(field))
		}
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	switch {
	case inZone(zoneBack, msg):
		return m.previous(), nil
	case inZone(zoneNext, msg):
		return m.next(), nil
	case inZone(zoneSubmit, msg):
		if m.wiz.Step() == wizard.StepSummary {
			return m.submit()
		}
		return m, nil
	}

	if m.wiz.Step() == wizard.StepUserInfo {
		for i := range m.inputs {
			if inZone(inputZoneID(i), msg) {
				m.focus = i
				m.applyFocus()
				return m, nil
			}
		}
	}

	if field, ok := m.stepOptionField(); ok {
		for i := range m.options(field) {
			if inZone(optionZoneID(field, i), msg) {
				if m.wiz.Step() == wizard.StepUserInfo {
					m.focus = len(textFields)
					m.applyFocus()
				}
				m.selectOption(field, i)
				return m, nil
			}
		}
	}
	return m, nil
}

func inZone(id string, msg tea.MouseMsg) bool {
	z := zone.Get(id)
	return z != nil && z.InBounds(msg)
}

func (m Model) updateFocusedInput(msg tea.Msg) (Model, tea.Cmd) {
	if m.wiz.Step() != wizard.StepUserInfo || m.focus >= len(m.inputs) {
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	field := textFields[m.focus].field
	if v := m.inputs[m.focus].Value(); v != stringValue(m.wiz.Form.Get(field)) {
		m.setField(field, v)
	}
	return m, cmd
}

// setField writes v and re-validates the field if it is currently flagged,
// so an error disappears as soon as the input is fixed.
func (m *Model) setField(field registration.Field, v any) {
	if err := m.wiz.Set(field, v); err != nil {
		log.ErrorErr(log.CatUI, "Rejected field update", err, "field", field)
		return
	}
	if m.wiz.Form.Error(field) != "" {
		m.wiz.Form.Trigger(field)
	}
}

func (m Model) next() Model {
	from := m.wiz.Step()
	if m.wiz.Next() {
		log.Debug(log.CatUI, "Advanced step", "from", from.Label(), "to", m.wiz.Step().Label())
		m.focus = 0
		m.applyFocus()
		return m
	}

	if from == wizard.StepUserInfo {
		m.focus = m.firstInvalidItem()
		m.applyFocus()
	}
	return m
}

func (m Model) previous() Model {
	if m.wiz.Previous() {
		m.focus = 0
		m.applyFocus()
	}
	return m
}

func (m Model) submit() (Model, tea.Cmd) {
	payload, err := m.wiz.BeginSubmit()
	if err != nil {
		log.Debug(log.CatUI, "Submit not started", "reason", err.Error())
		return m, nil
	}

	ctx := m.ctx
	sub := m.wiz.Submitter
	send := func() tea.Msg {
		res, err := sub.Send(ctx, payload)
		return SubmitDoneMsg{Result: res, Err: err}
	}
	return m, tea.Batch(m.spinner.Tick, send)
}

func (m Model) restart() Model {
	m.wiz.Reset()
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	m.focus = 0
	m.algoCursor = 0
	m.applyFocus()
	log.Info(log.CatUI, "Started a new registration")
	return m
}

func (m Model) focusCount() int {
	switch m.wiz.Step() {
	case wizard.StepUserInfo:
		return len(textFields) + 1
	case wizard.StepSummary:
		return 0
	default:
		return 1
	}
}

func (m *Model) moveFocus(delta int) {
	n := m.focusCount()
	if n == 0 {
		return
	}
	m.focus = ((m.focus+delta)%n + n) % n
	m.applyFocus()
}

func (m *Model) applyFocus() {
	onInputs := m.wiz.Step() == wizard.StepUserInfo
	for i := range m.inputs {
		if onInputs && i == m.focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m Model) firstInvalidItem() int {
	for i, tf := range textFields {
		if m.wiz.Form.Error(tf.field) != "" {
			return i
		}
	}
	if m.wiz.Form.Error(registration.FieldUserCategory) != "" {
		return len(textFields)
	}
	return m.focus
}

// stepOptionField is the select list shown on the current step, if any.
func (m Model) stepOptionField() (registration.Field, bool) {
	switch m.wiz.Step() {
	case wizard.StepUserInfo:
		return registration.FieldUserCategory, true
	case wizard.StepSolution:
		return registration.FieldSolutionCategory, true
	case wizard.StepOSPreference:
		return registration.FieldOSPreference, true
	case wizard.StepAlgorithms:
		return registration.FieldSelectedAlgorithms, true
	default:
		return "", false
	}
}

// focusedOptionField is stepOptionField when the list has focus.
func (m Model) focusedOptionField() (registration.Field, bool) {
	field, ok := m.stepOptionField()
	if !ok {
		return "", false
	}
	if m.wiz.Step() == wizard.StepUserInfo && m.focus != len(textFields) {
		return "", false
	}
	return field, true
}

func (m Model) options(field registration.Field) []option {
	var out []option
	switch field {
	case registration.FieldUserCategory:
		for _, o := range registration.UserCategories() {
			out = append(out, option{value: string(o.Value), label: o.Label})
		}
	case registration.FieldSolutionCategory:
		for _, o := range registration.SolutionCategories() {
			out = append(out, option{value: string(o.Value), label: o.Label, description: o.Description})
		}
	case registration.FieldOSPreference:
		for _, o := range registration.OSPreferences() {
			out = append(out, option{value: string(o.Value), label: o.Label, description: o.Description})
		}
	case registration.FieldSelectedAlgorithms:
		for _, g := range m.cat.Groups() {
			for _, a := range m.cat.InGroup(g) {
				out = append(out, option{value: a.ID, label: a.Label, description: a.Description, group: g})
			}
		}
	}
	return out
}

// selectedIndex is the position of the field's current value, or -1.
func (m Model) selectedIndex(field registration.Field) int {
	current := stringValue(m.wiz.Form.Get(field))
	for i, o := range m.options(field) {
		if o.value == current {
			return i
		}
	}
	return -1
}

func (m Model) cursorFor(field registration.Field) int {
	if field == registration.FieldSelectedAlgorithms {
		return m.algoCursor
	}
	return max(m.selectedIndex(field), 0)
}

// moveOption moves the highlight. Single-select lists select as they move;
// the algorithm list only moves its cursor.
func (m *Model) moveOption(field registration.Field, delta int) {
	opts := m.options(field)
	if len(opts) == 0 {
		return
	}
	if field == registration.FieldSelectedAlgorithms {
		m.algoCursor = min(max(m.algoCursor+delta, 0), len(opts)-1)
		return
	}

	i := m.selectedIndex(field)
	if i < 0 {
		i = 0
	} else {
		i = min(max(i+delta, 0), len(opts)-1)
	}
	m.setField(field, opts[i].value)
}

// selectOption selects entry i, or toggles it in the algorithm list.
func (m *Model) selectOption(field registration.Field, i int) {
	opts := m.options(field)
	if i < 0 || i >= len(opts) {
		return
	}
	if field != registration.FieldSelectedAlgorithms {
		m.setField(field, opts[i].value)
		return
	}

	m.algoCursor = i
	m.wiz.Form.ToggleAlgorithm(opts[i].value)
	if m.wiz.Form.Error(field) != "" {
		m.wiz.Form.Trigger(field)
	}
}

func stringValue(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case registration.UserCategory:
		return string(s)
	case registration.SolutionCategory:
		return string(s)
	case registration.OSPreference:
		return string(s)
	default:
		return ""
	}
}

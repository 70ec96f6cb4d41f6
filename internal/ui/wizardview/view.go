package wizardview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/wordwrap"

	"github.com/kalpruh/enrol/internal/registration"
	"github.com/kalpruh/enrol/internal/ui/styles"
	"github.com/kalpruh/enrol/internal/wizard"
)

// Header is the banner shown above every step.
const Header = "Embedded Systems Solution Registration"

const (
	minContentWidth = 40
	maxContentWidth = 100
)

func (m Model) contentWidth() int {
	return min(max(m.width-4, minContentWidth), maxContentWidth)
}

// View renders the current step.
func (m Model) View() string {
	width := m.contentWidth()

	parts := []string{
		styles.HeaderStyle.Render(Header),
		m.renderStepIndicator(),
		"",
	}
	if banner := m.renderStatusBanner(width); banner != "" {
		parts = append(parts, banner, "")
	}
	parts = append(parts,
		styles.StepTitleStyle.Render(m.wiz.Step().Title()),
		m.renderStep(width),
		"",
		m.renderButtons(),
		"",
		m.help.View(m.keys),
	)
	return lipgloss.NewStyle().Padding(0, 2).Render(strings.Join(parts, "\n"))
}

func (m Model) renderStepIndicator() string {
	current := m.wiz.Step()
	visible := m.wiz.Steps.Visible()

	done := lipgloss.NewStyle().Foreground(styles.StepDoneColor)
	active := lipgloss.NewStyle().Bold(true).Foreground(styles.StepActiveColor)
	pending := lipgloss.NewStyle().Foreground(styles.StepPendingColor)

	items := make([]string, 0, len(visible))
	for _, s := range visible {
		switch {
		case s < current:
			items = append(items, done.Render("✓ "+s.Label()))
		case s == current:
			items = append(items, active.Render("● "+s.Label()))
		default:
			items = append(items, pending.Render("○ "+s.Label()))
		}
	}

	pos, total := m.wiz.Steps.Position()
	progress := styles.SubtitleStyle.Render(fmt.Sprintf("Step %d of %d · %s", pos, total, current.Label()))
	return strings.Join(items, pending.Render(" ─ ")) + "\n" + progress
}

func (m Model) renderStatusBanner(width int) string {
	status := m.wiz.Submitter.Status()
	if status.Message == "" {
		return ""
	}
	switch status.State {
	case wizard.StateSucceeded:
		return styles.SuccessBannerStyle.Width(width - 2).Render(status.Message)
	case wizard.StateFailed:
		return styles.ErrorBannerStyle.Width(width - 2).Render(status.Message)
	default:
		return ""
	}
}

func (m Model) renderStep(width int) string {
	switch m.wiz.Step() {
	case wizard.StepUserInfo:
		return m.renderUserInfo(width)
	case wizard.StepSolution:
		return m.renderSingleSelect(registration.FieldSolutionCategory, width)
	case wizard.StepOSPreference:
		return m.renderSingleSelect(registration.FieldOSPreference, width)
	case wizard.StepAlgorithms:
		return m.renderAlgorithms(width)
	case wizard.StepSummary:
		return m.renderSummary(width)
	default:
		return ""
	}
}

func (m Model) renderUserInfo(width int) string {
	var b strings.Builder
	for i, tf := range textFields {
		focused := m.focus == i
		input := m.inputs[i]
		input.Width = width - 4
		section := styles.RenderFormSection([]string{" " + input.View()}, tf.label, "", width, focused)
		b.WriteString(zone.Mark(inputZoneID(i), section))
		b.WriteString("\n")
		b.WriteString(m.renderFieldError(tf.field))
	}

	label := styles.FieldLabelStyle
	if m.focus == len(textFields) {
		label = styles.FieldLabelFocusedStyle
	}
	b.WriteString(label.Render("User Category"))
	b.WriteString("\n")
	b.WriteString(m.renderOptions(registration.FieldUserCategory, width))
	b.WriteString(m.renderFieldError(registration.FieldUserCategory))
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderFieldError(field registration.Field) string {
	msg := m.wiz.Form.Error(field)
	if msg == "" {
		return ""
	}
	return styles.FieldErrorStyle.Render("  "+msg) + "\n"
}

func (m Model) renderSingleSelect(field registration.Field, width int) string {
	return strings.TrimRight(m.renderOptions(field, width)+m.renderFieldError(field), "\n")
}

// renderOptions renders a radio list. Only the selected entry shows its
// description.
func (m Model) renderOptions(field registration.Field, width int) string {
	selected := m.selectedIndex(field)
	var b strings.Builder
	for i, o := range m.options(field) {
		mark := "( )"
		line := o.label
		if i == selected {
			mark = styles.SelectionIndicatorStyle.Render("(•)")
			line = lipgloss.NewStyle().Bold(true).Render(o.label)
		}
		b.WriteString(zone.Mark(optionZoneID(field, i), mark+" "+line))
		b.WriteString("\n")
		if i == selected && o.description != "" {
			b.WriteString(styles.OptionDescriptionStyle.Render(wordwrap.String(o.description, width-6)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderAlgorithms(width int) string {
	draft := m.wiz.Draft()
	opts := m.options(registration.FieldSelectedAlgorithms)

	if len(opts) == 0 {
		return styles.HintStyle.Render("No algorithms available")
	}

	var b strings.Builder
	group := opts[0].group
	b.WriteString(styles.FieldLabelFocusedStyle.Render(group.Title()))
	b.WriteString("\n")
	for i, o := range opts {
		if o.group != group {
			group = o.group
			b.WriteString("\n")
			b.WriteString(styles.FieldLabelFocusedStyle.Render(group.Title()))
			b.WriteString("\n")
		}

		cursor := "  "
		if i == m.algoCursor {
			cursor = styles.SelectionIndicatorStyle.Render("> ")
		}
		box := "[ ]"
		if draft.HasAlgorithm(o.value) {
			box = styles.SelectionIndicatorStyle.Render("[x]")
		}
		b.WriteString(zone.Mark(optionZoneID(registration.FieldSelectedAlgorithms, i), cursor+box+" "+o.label))
		b.WriteString("\n")
	}

	if m.algoCursor < len(opts) && opts[m.algoCursor].description != "" {
		b.WriteString("\n")
		b.WriteString(styles.HintStyle.Render(wordwrap.String(opts[m.algoCursor].description, width-2)))
		b.WriteString("\n")
	}
	b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("%d selected", len(draft.SelectedAlgorithms))))
	b.WriteString("\n")
	b.WriteString(m.renderFieldError(registration.FieldSelectedAlgorithms))
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderSummary(width int) string {
	out, err := m.renderMarkdown(SummaryMarkdown(m.wiz.Draft(), m.cat), width)
	if err != nil {
		return SummaryMarkdown(m.wiz.Draft(), m.cat)
	}
	return out
}

func (m Model) renderButtons() string {
	sub := m.wiz.Submitter
	var buttons []string

	if m.wiz.CanGoBack() {
		buttons = append(buttons, zone.Mark(zoneBack, styles.SecondaryButtonStyle.Render("Previous")))
	} else {
		buttons = append(buttons, styles.DisabledButtonStyle.Render("Previous"))
	}

	switch {
	case m.wiz.Step() != wizard.StepSummary:
		buttons = append(buttons, zone.Mark(zoneNext, styles.PrimaryButtonStyle.Render("Next")))
	case sub.InFlight():
		buttons = append(buttons, styles.DisabledButtonStyle.Render(m.spinner.View()+" Submitting..."))
	case sub.Submitted():
		buttons = append(buttons, styles.DisabledButtonStyle.Render("Submitted"))
	default:
		buttons = append(buttons, zone.Mark(zoneSubmit, styles.SuccessButtonStyle.Render("Submit")))
	}

	row := strings.Join(buttons, "  ")
	if sub.Submitted() {
		row += "\n\n" + styles.HintStyle.Render("Press ctrl+r for a new registration")
	}
	return row
}

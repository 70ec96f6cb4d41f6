// Package toaster shows short-lived notices along the bottom of the screen.
package toaster

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/kalpruh/enrol/internal/ui/styles"
)

// Style determines the border colour and icon of a toast.
type Style int

const (
	StyleSuccess Style = iota
	StyleError
	StyleInfo
	StyleWarn
)

// DefaultDuration is how long a toast stays up.
const DefaultDuration = 4 * time.Second

// Model holds the toast currently on screen.
type Model struct {
	message string
	style   Style
	seq     int
}

// New creates an empty toaster.
func New() Model {
	return Model{}
}

// Show replaces the current toast and returns the command that dismisses it
// after d. A dismiss scheduled for an older toast leaves a newer one up.
func (m Model) Show(message string, style Style, d time.Duration) (Model, tea.Cmd) {
	m.message = message
	m.style = style
	m.seq++
	seq := m.seq
	return m, tea.Tick(d, func(time.Time) tea.Msg { return DismissMsg{seq: seq} })
}

// Visible reports whether a toast is showing.
func (m Model) Visible() bool {
	return m.message != ""
}

// Message returns the toast text.
func (m Model) Message() string {
	return m.message
}

// Update hides the toast when its dismiss timer fires.
func (m Model) Update(msg tea.Msg) Model {
	if d, ok := msg.(DismissMsg); ok && d.seq == m.seq {
		m.message = ""
	}
	return m
}

// View renders the toast box, or "" when hidden.
func (m Model) View() string {
	if !m.Visible() {
		return ""
	}

	box := lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder())
	switch m.style {
	case StyleError:
		return box.BorderForeground(styles.StatusErrorColor).Render("✗ " + m.message)
	case StyleInfo:
		return box.BorderForeground(styles.BorderHighlightFocusColor).Render("i " + m.message)
	case StyleWarn:
		return box.BorderForeground(styles.StatusWarningColor).Render("! " + m.message)
	default:
		return box.BorderForeground(styles.StatusSuccessColor).Render("✓ " + m.message)
	}
}

// Overlay draws the toast centred on the last rows of bg, which is padded
// to height lines first.
func (m Model) Overlay(bg string, width, height int) string {
	if !m.Visible() {
		return bg
	}

	fg := strings.Split(m.View(), "\n")
	lines := strings.Split(bg, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}

	x := max((width-lipgloss.Width(m.View()))/2, 0)
	y := max(len(lines)-len(fg)-1, 0)
	for i, row := range fg {
		if y+i >= len(lines) {
			break
		}
		base := lines[y+i]
		left := ansi.Truncate(base, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		right := ""
		if end := x + ansi.StringWidth(row); end < ansi.StringWidth(base) {
			right = ansi.TruncateLeft(base, end, "")
		}
		lines[y+i] = left + row + right
	}
	return strings.Join(lines, "\n")
}

// DismissMsg hides the toast it was scheduled for.
type DismissMsg struct {
	seq int
}

package wizardview

import (
	"fmt"
	"strings"

	"github.com/kalpruh/enrol/internal/catalog"
	"github.com/kalpruh/enrol/internal/registration"
	"github.com/kalpruh/enrol/internal/ui/markdown"
)

const (
	thankYouNote = "If you want to be a part of our community, if you want any of our device " +
		"or want to customize it as per your need - then do contact us."
	customProjectNote = "If you have any problem statement or any creative idea that can bring one or more " +
		"algorithms together to solve a real-world or social problem, reach us on WhatsApp. We would love " +
		"to discuss and if needed, we will also share some reference or research work."
	contactLine = "Contact us: +91 90401 71174"
)

// SummaryMarkdown renders the review of d as markdown. Categories and
// algorithms are shown by label; unknown algorithm ids fall back to the id.
func SummaryMarkdown(d registration.Draft, cat *catalog.Catalog) string {
	var b strings.Builder

	b.WriteString("## Personal Information\n\n")
	row(&b, "Full Name", d.FullName)
	row(&b, "Email", d.Email)
	row(&b, "Phone Number", strings.TrimSpace(d.CountryCode+" "+d.PhoneNumber))
	row(&b, "Affiliation", d.Affiliation)
	row(&b, "User Category", d.UserCategory.Label())

	b.WriteString("\n## Solution Preferences\n\n")
	row(&b, "Solution Category", d.SolutionCategory.Label())
	if d.SolutionCategory.DeliversOS() {
		row(&b, "OS Preference", d.OSPreference.Label())
	}

	b.WriteString("\n## Selected Algorithms\n\n")
	if len(d.SelectedAlgorithms) == 0 {
		b.WriteString("No algorithms selected\n")
	}
	for _, id := range d.SelectedAlgorithms {
		label := id
		if cat != nil {
			label = cat.Label(id)
		}
		fmt.Fprintf(&b, "- %s\n", markdown.Escape(label))
	}

	b.WriteString("\n---\n\n")
	b.WriteString("### Thank You For Registering!\n\n")
	b.WriteString(thankYouNote + "\n\n")
	b.WriteString("### Have a custom project idea?\n\n")
	b.WriteString(customProjectNote + "\n\n")
	b.WriteString("**" + contactLine + "**\n")
	return b.String()
}

func row(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "- **%s:** %s\n", label, markdown.Escape(value))
}

// rendererCache keeps one glamour renderer per width.
type rendererCache struct {
	r *markdown.Renderer
}

func (m Model) renderMarkdown(md string, width int) (string, error) {
	c := m.md
	if c.r == nil || c.r.Width() != width || c.r.Style() != m.markdownStyle {
		r, err := markdown.New(width, m.markdownStyle)
		if err != nil {
			return "", err
		}
		c.r = r
	}
	return c.r.Render(md)
}

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

type helpSection struct {
	title    string
	bindings []key.Binding
}

func helpSections(keys KeyMap) []helpSection {
	return []helpSection{
		{title: "Navigation", bindings: []key.Binding{keys.Up, keys.Left, keys.Home}},
		{title: "Selection", bindings: []key.Binding{keys.Toggle, keys.Open, keys.Copy}},
		{title: "Search", bindings: []key.Binding{keys.Filter, keys.Escape}},
		{title: "Other", bindings: []key.Binding{keys.Theme, keys.Help}},
	}
}

// helpMarkdown lists the bindings as markdown. Text comes from each
// binding's Help() so the overlay and the footer never disagree.
func helpMarkdown(keys KeyMap) string {
	var b strings.Builder
	b.WriteString("# Tree select\n\n")
	for _, section := range helpSections(keys) {
		fmt.Fprintf(&b, "## %s\n\n", section.title)
		for _, binding := range section.bindings {
			h := binding.Help()
			fmt.Fprintf(&b, "- `%s` %s\n", h.Key, h.Desc)
		}
		b.WriteString("\n")
	}
	b.WriteString("Checked boxes are ☑, partially checked groups ▣. Disabled rows cannot be toggled.\n")
	return b.String()
}

// renderHelpOverlay renders the help markdown in a bordered box centred in
// width x height.
func renderHelpOverlay(keys KeyMap, style string, width, height int) string {
	s := currentStyles()
	inner := width - 8
	if inner < 20 {
		inner = 20
	}
	body := buildMarkdownRenderer(style, inner)(helpMarkdown(keys))
	footer := s.hint.Render("Press ? or Esc to close")
	box := s.helpOverlay.Render(lipgloss.JoinVertical(lipgloss.Left, body, "", footer))
	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

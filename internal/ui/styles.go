package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"arbor/internal/ui/theme"
)

// styleSet is derived from the active theme on every render so theme
// switches apply immediately.
type styleSet struct {
	box        lipgloss.Style
	boxFocused lipgloss.Style

	placeholder lipgloss.Style
	hint        lipgloss.Style
	status      lipgloss.Style
	errorText   lipgloss.Style

	cursorRow lipgloss.Style
	marker    lipgloss.Style
	label     lipgloss.Style
	disabled  lipgloss.Style
	path      lipgloss.Style

	checked   lipgloss.Style
	unchecked lipgloss.Style
	partial   lipgloss.Style

	helpOverlay lipgloss.Style
}

func currentStyles() styleSet {
	t := theme.Current()
	return styleSet{
		box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderNormal).
			Padding(0, 1),
		boxFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocused).
			Padding(0, 1),

		placeholder: lipgloss.NewStyle().Foreground(t.TextMuted).Italic(true),
		hint:        lipgloss.NewStyle().Foreground(t.TextMuted),
		status:      lipgloss.NewStyle().Foreground(t.Warning),
		errorText:   lipgloss.NewStyle().Foreground(t.Error).Bold(true),

		cursorRow: lipgloss.NewStyle().
			Background(t.BackgroundSecondary).
			Foreground(t.Text).
			Bold(true),
		marker:   lipgloss.NewStyle().Foreground(t.Primary),
		label:    lipgloss.NewStyle().Foreground(t.Text),
		disabled: lipgloss.NewStyle().Foreground(t.TextMuted).Strikethrough(true),
		path:     lipgloss.NewStyle().Foreground(t.TextMuted),

		checked:   lipgloss.NewStyle().Foreground(t.Success).Bold(true),
		unchecked: lipgloss.NewStyle().Foreground(t.TextMuted),
		partial:   lipgloss.NewStyle().Foreground(t.Partial).Bold(true),

		helpOverlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Primary).
			Padding(1, 2),
	}
}

// buildMarkdownRenderer returns a glamour renderer for the given style name,
// falling back to plain word wrapping for "plain" or when glamour fails.
func buildMarkdownRenderer(style string, width int) func(string) string {
	fallback := func(input string) string {
		return wordwrap.String(input, width)
	}

	style = strings.ToLower(strings.TrimSpace(style))
	switch style {
	case "", "rich":
		style = "dark"
	case "plain":
		return fallback
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fallback
	}
	return func(input string) string {
		out, err := renderer.Render(input)
		if err != nil {
			return fallback(input)
		}
		return strings.TrimSpace(out)
	}
}

// Package theme holds the colour palettes the tree selector renders with.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme is a set of semantic colours. Every slot is an AdaptiveColor so the
// same theme works on light and dark terminals.
type Theme struct {
	Name string

	Primary lipgloss.AdaptiveColor // focused borders, cursor row
	Accent  lipgloss.AdaptiveColor // chips

	Error   lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Success lipgloss.AdaptiveColor // checked boxes
	Partial lipgloss.AdaptiveColor // indeterminate boxes

	Text      lipgloss.AdaptiveColor
	TextMuted lipgloss.AdaptiveColor // disabled rows, hints

	Background          lipgloss.AdaptiveColor
	BackgroundSecondary lipgloss.AdaptiveColor // cursor row

	BorderNormal  lipgloss.AdaptiveColor
	BorderFocused lipgloss.AdaptiveColor
}

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"arbor/internal/tree"
	"arbor/internal/ui/theme"
)

// Powerline characters for pill-shaped chips
const (
	pillLeft  = "\ue0b6" // rounded left edge
	pillRight = "\ue0b4" // rounded right edge
)

type chipState int

const (
	chipStateNormal chipState = iota
	chipStateMore             // the "+N" overflow chip
)

// renderPillChip renders a label as a pill using powerline glyphs: coloured
// caps around a label on the same background.
func renderPillChip(label string, state chipState) string {
	t := theme.Current()
	bg, fg := t.Accent, t.Background
	if state == chipStateMore {
		bg, fg = t.BackgroundSecondary, t.Text
	}

	capStyle := lipgloss.NewStyle().Foreground(bg)
	labelStyle := lipgloss.NewStyle().Foreground(fg).Background(bg)
	if state == chipStateMore {
		labelStyle = labelStyle.Bold(true)
	}
	return capStyle.Render(pillLeft) + labelStyle.Render(label) + capStyle.Render(pillRight)
}

// renderTags renders tags as chips, collapsing everything past maxCount into
// a "+N" chip, and wraps the chips to width.
func renderTags(tags []tree.Tag, maxCount, width int) string {
	visible, hidden := tree.Truncate(tags, maxCount)
	chips := make([]string, 0, len(visible)+1)
	for _, tag := range visible {
		chips = append(chips, renderPillChip(tag.Label, chipStateNormal))
	}
	if hidden > 0 {
		chips = append(chips, renderPillChip(fmt.Sprintf("+%d", hidden), chipStateMore))
	}
	return wrapChips(chips, width)
}

// wrapChips joins chips with spaces, breaking lines between chips so a chip
// is never split.
func wrapChips(chips []string, width int) string {
	if width <= 0 {
		return strings.Join(chips, " ")
	}

	var lines []string
	var current []string
	currentWidth := 0
	for _, chip := range chips {
		chipWidth := lipgloss.Width(chip)
		needed := chipWidth
		if len(current) > 0 {
			needed++
		}
		if currentWidth+needed > width && len(current) > 0 {
			lines = append(lines, strings.Join(current, " "))
			current = []string{chip}
			currentWidth = chipWidth
			continue
		}
		current = append(current, chip)
		currentWidth += needed
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return strings.Join(lines, "\n")
}

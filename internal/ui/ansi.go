package ui

import "github.com/charmbracelet/x/ansi"

const ellipsis = "…"

func stripANSI(s string) string {
	return ansi.Strip(s)
}

// truncateLine cuts s to width display cells, keeping escape sequences
// intact.
func truncateLine(s string, width int) string {
	if width <= 0 || ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, ellipsis)
}

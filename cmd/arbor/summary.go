package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"arbor/internal/tree"
	"arbor/internal/ui/theme"

	"github.com/charmbracelet/lipgloss"
)

// maxSummaryTags caps how many labels the exit summary lists.
const maxSummaryTags = 5

// ExitSummary holds data for the summary shown when the selector exits.
type ExitSummary struct {
	Version  string
	Duration time.Duration
	Tags     []tree.Tag
	Selected int
}

// printExitSummary prints a formatted exit summary to the writer.
// This is displayed after the selector leaves alt screen mode.
func printExitSummary(w io.Writer, summary ExitSummary) {
	t := theme.Current()
	appStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Primary)

	versionStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted)

	statsStyle := lipgloss.NewStyle().
		Foreground(t.Text)

	versionStr := ""
	if summary.Version != "" {
		versionStr = versionStyle.Render(fmt.Sprintf(" v%s", summary.Version))
	}
	sessionStr := versionStyle.Render(fmt.Sprintf(" • %s session", formatDuration(summary.Duration)))

	statsStr := fmt.Sprintf("%d selected", summary.Selected)
	if len(summary.Tags) > 0 {
		visible, hidden := tree.Truncate(summary.Tags, maxSummaryTags)
		labels := make([]string, 0, len(visible)+1)
		for _, tag := range visible {
			labels = append(labels, tag.Label)
		}
		if hidden > 0 {
			labels = append(labels, fmt.Sprintf("+%d", hidden))
		}
		statsStr += ": " + strings.Join(labels, ", ")
	}

	_, _ = fmt.Fprintln(w, appStyle.Render("Arbor")+versionStr+sessionStr)
	_, _ = fmt.Fprintln(w, statsStyle.Render(statsStr))
}

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		secs := int(d.Seconds()) % 60
		if secs == 0 {
			return fmt.Sprintf("%dm", mins)
		}
		return fmt.Sprintf("%dm %ds", mins, secs)
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

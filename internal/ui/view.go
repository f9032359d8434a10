package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"arbor/internal/tree"
)

// Check box glyphs per status.
const (
	boxChecked       = "☑"
	boxUnchecked     = "☐"
	boxIndeterminate = "▣"

	markerCollapsed = "▸"
	markerExpanded  = "▾"
	markerLeaf      = " "
)

// View renders the selector.
func (m TreeSelect) View() string {
	s := currentStyles()

	if m.showHelp {
		return renderHelpOverlay(m.keys, m.opts.MarkdownStyle, m.width, m.height)
	}

	inner := m.width - 4
	if inner < 10 {
		inner = 10
	}

	var parts []string
	parts = append(parts, m.renderBox(s, inner))

	switch {
	case m.loading:
		parts = append(parts, m.spinner.View()+" "+s.hint.Render("Loading records…"))
	case m.loadErr != nil:
		msg := wordwrap.String("Failed to load: "+m.loadErr.Error(), m.width)
		parts = append(parts, s.errorText.Render(msg))
	case m.open:
		if m.opts.Filterable {
			parts = append(parts, m.filter.View())
		}
		parts = append(parts, m.renderPanel(s))
		parts = append(parts, wordwrap.String(m.help.View(m.keys), m.width))
	}

	if m.status != "" {
		parts = append(parts, s.status.Render(m.status))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m TreeSelect) renderBox(s styleSet, inner int) string {
	content := renderTags(m.Tags(), m.opts.MaxTagCount, inner)
	if content == "" {
		content = s.placeholder.Render(m.opts.Placeholder)
	}
	style := s.box
	if m.open {
		style = s.boxFocused
	}
	return style.Width(inner + 2).Render(content)
}

func (m TreeSelect) renderPanel(s styleSet) string {
	if m.query() != "" {
		return m.renderMatches(s)
	}

	rows := m.visibleRows()
	if len(rows) == 0 {
		return s.hint.Render("No items")
	}
	end := m.offset + m.listHeight()
	if end > len(rows) {
		end = len(rows)
	}

	lines := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderRow(s, rows[i], i == m.cursor))
	}
	return strings.Join(lines, "\n")
}

func (m TreeSelect) renderRow(s styleSet, r row, selected bool) string {
	n := r.node
	marker := markerLeaf
	if !n.IsLeaf() {
		marker = markerCollapsed
		if m.expanded[n.ID] {
			marker = markerExpanded
		}
	}

	var check string
	if m.opts.Mode == tree.ModeSingle {
		check = m.renderStatus(s, m.singleStatus(n))
	} else {
		check = m.renderStatus(s, m.agg.Status(n, m.value))
	}

	label := s.label.Render(n.Label)
	if n.Disabled {
		label = s.disabled.Render(n.Label)
	}

	line := fmt.Sprintf("%s%s %s %s", strings.Repeat("  ", r.depth), s.marker.Render(marker), check, label)
	line = truncateLine(line, m.width)
	if selected {
		return s.cursorRow.Render(stripANSI(line))
	}
	return line
}

func (m TreeSelect) renderMatches(s styleSet) string {
	if len(m.matches) == 0 {
		return s.hint.Render(fmt.Sprintf("No matches for %q", m.query()))
	}
	h := m.listHeight()
	start := 0
	if m.matchCur >= h {
		start = m.matchCur - h + 1
	}
	end := start + h
	if end > len(m.matches) {
		end = len(m.matches)
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		e := m.matches[i]
		status := tree.Unchecked
		if n, ok := m.index.Node(e.ID()); ok {
			if m.opts.Mode == tree.ModeSingle {
				status = m.singleStatus(n)
			} else {
				status = m.agg.Status(n, m.value)
			}
		}
		line := m.renderStatus(s, status) + " " + m.renderPath(s, e)
		line = truncateLine(line, m.width)
		if i == m.matchCur {
			line = s.cursorRow.Render(stripANSI(line))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// renderPath dims the ancestor part of the full label.
func (m TreeSelect) renderPath(s styleSet, e tree.Entry) string {
	prefix := strings.TrimSuffix(e.FullLabel, e.Label)
	if prefix == e.FullLabel {
		return s.label.Render(e.FullLabel)
	}
	return s.path.Render(prefix) + s.label.Render(e.Label)
}

func (m TreeSelect) singleStatus(n *tree.Node) tree.Status {
	if m.value.Has(n.ID) {
		return tree.Checked
	}
	return tree.Unchecked
}

func (m TreeSelect) renderStatus(s styleSet, status tree.Status) string {
	switch status {
	case tree.Checked:
		return s.checked.Render(boxChecked)
	case tree.Indeterminate:
		return s.partial.Render(boxIndeterminate)
	default:
		return s.unchecked.Render(boxUnchecked)
	}
}

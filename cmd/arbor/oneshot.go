package main

import (
	"fmt"
	"io"
	"strings"

	appErrors "arbor/internal/errors"
	"arbor/internal/tree"
	"arbor/internal/ui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	ltree "github.com/charmbracelet/lipgloss/tree"
	json "github.com/goccy/go-json"
)

var statusGlyphs = map[tree.Status]string{
	tree.Checked:       "☑",
	tree.Unchecked:     "☐",
	tree.Indeterminate: "▣",
}

type searchHit struct {
	ID        string `json:"id"`
	FullLabel string `json:"fullLabel"`
	Status    string `json:"status"`
}

type labelsOutput struct {
	Tags   []tree.Tag `json:"tags"`
	Hidden int        `json:"hidden"`
}

// runOneShot answers --print-tree, --search or --labels against roots.
func runOneShot(w io.Writer, roots []*tree.Node, opts runtimeOptions) error {
	ix := tree.NewIndex(roots)
	for _, id := range opts.selected {
		if _, ok := ix.Node(id); !ok {
			return appErrors.Newf(appErrors.CodeNodeNotFound, "--select: no node with id %q", id)
		}
	}
	sel := tree.NewSelection(opts.selected...)

	switch {
	case opts.printTree:
		if opts.jsonOutput {
			return writeJSON(w, roots)
		}
		_, err := fmt.Fprintln(w, renderForest(roots, sel))
		return err
	case opts.search != "":
		hits := searchHits(roots, sel, opts.search)
		if opts.jsonOutput {
			return writeJSON(w, hits)
		}
		if len(hits) == 0 {
			_, err := fmt.Fprintf(w, "No matches for %q\n", opts.search)
			return err
		}
		_, err := fmt.Fprintln(w, renderHits(hits))
		return err
	default:
		tags, hidden := tree.Truncate(tree.ResolveLabels(roots, sel, opts.labelOpts), opts.maxTagCount)
		if opts.jsonOutput {
			return writeJSON(w, labelsOutput{Tags: tags, Hidden: hidden})
		}
		for _, tag := range tags {
			if _, err := fmt.Fprintln(w, tag.Label); err != nil {
				return err
			}
		}
		if hidden > 0 {
			_, err := fmt.Fprintf(w, "+%d\n", hidden)
			return err
		}
		return nil
	}
}

// renderForest draws the forest with lipgloss/tree, one status glyph per node.
func renderForest(roots []*tree.Node, sel tree.Selection) string {
	agg := tree.NewAggregator()
	muted := lipgloss.NewStyle().Foreground(theme.Current().TextMuted)

	var build func(n *tree.Node) any
	build = func(n *tree.Node) any {
		label := statusGlyphs[agg.Status(n, sel)] + " " + n.Label
		if n.Disabled {
			label = muted.Render(label + " (disabled)")
		}
		if n.IsLeaf() {
			return label
		}
		sub := ltree.Root(label)
		for _, child := range n.Children {
			sub.Child(build(child))
		}
		return sub
	}

	t := ltree.New().
		Enumerator(ltree.RoundedEnumerator).
		EnumeratorStyle(muted)
	for _, root := range roots {
		t.Child(build(root))
	}
	return t.String()
}

func searchHits(roots []*tree.Node, sel tree.Selection, query string) []searchHit {
	ix := tree.NewIndex(roots)
	agg := tree.NewAggregator()
	hits := []searchHit{}
	for _, e := range tree.Filter(tree.Flatten(roots), query) {
		status := tree.Unchecked
		if n, ok := ix.Node(e.ID()); ok {
			status = agg.Status(n, sel)
		}
		hits = append(hits, searchHit{ID: e.ID(), FullLabel: e.FullLabel, Status: status.String()})
	}
	return hits
}

// renderHits lays the hits out with lipgloss/table.
func renderHits(hits []searchHit) string {
	header := lipgloss.NewStyle().Bold(true).Foreground(theme.Current().Primary)
	rows := make([][]string, 0, len(hits))
	for _, h := range hits {
		rows = append(rows, []string{h.ID, h.FullLabel, h.Status})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Current().BorderNormal)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("ID", "PATH", "STATUS").
		Rows(rows...)
	return t.String()
}

// writeIDs prints the final selection, one id per line or as a JSON object.
func writeIDs(w io.Writer, ids []string, asJSON bool) error {
	if asJSON {
		if ids == nil {
			ids = []string{}
		}
		return writeJSON(w, struct {
			IDs []string `json:"ids"`
		}{IDs: ids})
	}
	if len(ids) == 0 {
		return nil
	}
	_, err := fmt.Fprintln(w, strings.Join(ids, "\n"))
	return err
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

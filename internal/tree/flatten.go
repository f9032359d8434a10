package tree

import (
	"strings"

	"golang.org/x/text/cases"
)

// PathSeparator joins labels in Entry.FullLabel.
const PathSeparator = " / "

// Entry is a leaf annotated with its ancestry, used by search.
type Entry struct {
	Path      []string `json:"path"`
	Label     string   `json:"label"`
	FullLabel string   `json:"fullLabel"`
}

// ID returns the leaf id (last element of Path).
func (e Entry) ID() string {
	if len(e.Path) == 0 {
		return ""
	}
	return e.Path[len(e.Path)-1]
}

// Flatten lists the leaves of the forest in pre-order.
func Flatten(roots []*Node) []Entry {
	var entries []Entry
	var ids, labels []string
	visited := make(map[*Node]bool)

	var visit func(n *Node)
	visit = func(n *Node) {
		if n == nil || visited[n] {
			return
		}
		visited[n] = true
		ids = append(ids, n.ID)
		labels = append(labels, n.Label)
		defer func() {
			ids = ids[:len(ids)-1]
			labels = labels[:len(labels)-1]
		}()

		if n.IsLeaf() {
			entries = append(entries, Entry{
				Path:      append([]string(nil), ids...),
				Label:     n.Label,
				FullLabel: strings.Join(labels, PathSeparator),
			})
			return
		}
		for _, child := range n.Children {
			visit(child)
		}
	}
	for _, root := range roots {
		visit(root)
	}
	return entries
}

// Filter keeps entries whose FullLabel contains query, ignoring case. An
// empty query returns entries unchanged.
func Filter(entries []Entry, query string) []Entry {
	if query == "" {
		return entries
	}
	fold := cases.Fold()
	needle := fold.String(query)
	matched := []Entry{}
	for _, e := range entries {
		if strings.Contains(fold.String(e.FullLabel), needle) {
			matched = append(matched, e)
		}
	}
	return matched
}

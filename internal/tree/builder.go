package tree

import (
	"sort"
	"strings"

	"arbor/internal/debug"
)

// Builder turns flat records into a sorted forest.
type Builder struct {
	strict bool
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithStrict makes Build fail on records that would otherwise be skipped or
// patched (see Validate).
func WithStrict(strict bool) BuilderOption {
	return func(b *Builder) {
		b.strict = strict
	}
}

// NewBuilder creates a Builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build links records into a forest. Children and roots are sorted by Order
// ascending; equal orders keep input order. A record whose parent is missing
// becomes a root. Duplicate ids keep the last record's data at the first
// record's position. Parent loops fail with *CyclicTreeError.
func (b Builder) Build(records []Record) ([]*Node, error) {
	if len(records) == 0 {
		return []*Node{}, nil
	}
	if b.strict {
		if err := Validate(records); err != nil {
			return nil, err
		}
	}

	nodeMap := make(map[string]*Node, len(records))
	ids := make([]string, 0, len(records))
	for i, rec := range records {
		id := strings.TrimSpace(rec.ID)
		if id == "" {
			debug.Logf("tree: skipping record %d: missing id", i)
			continue
		}
		label := rec.Name
		if strings.TrimSpace(label) == "" {
			debug.Logf("tree: record %q has no name, using id as label", id)
			label = id
		}
		if _, dup := nodeMap[id]; dup {
			debug.Logf("tree: duplicate id %q at record %d replaces earlier record", id, i)
		} else {
			ids = append(ids, id)
		}
		nodeMap[id] = &Node{
			ID:       id,
			ParentID: strings.TrimSpace(rec.ParentID),
			Order:    rec.Order,
			Label:    label,
			Disabled: rec.Disabled,
		}
	}

	if err := ensureAcyclic(nodeMap, ids); err != nil {
		return nil, err
	}

	roots := []*Node{}
	for _, id := range ids {
		node := nodeMap[id]
		if node.ParentID == "" {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodeMap[node.ParentID]
		if !ok {
			debug.Logf("tree: parent %q of %q not found, promoting to root", node.ParentID, id)
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	sortForest(roots)
	return roots, nil
}

// Build is shorthand for NewBuilder().Build(records).
func Build(records []Record) ([]*Node, error) {
	return NewBuilder().Build(records)
}

// ensureAcyclic follows every parent chain once. A chain that revisits an id
// still on the current path is a loop.
func ensureAcyclic(nodes map[string]*Node, ids []string) error {
	const (
		onPath = 1
		done   = 2
	)
	state := make(map[string]int, len(nodes))

	for _, start := range ids {
		var path []string
		id := start
		for {
			node, ok := nodes[id]
			if !ok || state[id] == done {
				break
			}
			if state[id] == onPath {
				loopStart := 0
				for i, p := range path {
					if p == id {
						loopStart = i
						break
					}
				}
				loop := append(append([]string{}, path[loopStart:]...), id)
				debug.Logf("tree: cycle detected: %v", loop)
				return &CyclicTreeError{Path: loop}
			}
			state[id] = onPath
			path = append(path, id)
			if node.ParentID == "" {
				break
			}
			id = node.ParentID
		}
		for _, p := range path {
			state[p] = done
		}
	}
	return nil
}

func sortForest(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Order < nodes[j].Order
	})
	for _, n := range nodes {
		sortForest(n.Children)
	}
}

package tree

import "sort"

// LabelOptions controls which labels ResolveLabels surfaces.
type LabelOptions struct {
	// ShowParent lets a fully checked group stand in for its whole subtree.
	ShowParent bool
	// ShowChild lets checked leaves appear individually.
	ShowChild bool
}

// DefaultLabelOptions enables both parent and child labels.
func DefaultLabelOptions() LabelOptions {
	return LabelOptions{ShowParent: true, ShowChild: true}
}

// Tag is one label to display for a selection.
type Tag struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Depth int    `json:"depth"`
}

// ResolveLabels walks the forest once and returns the tags for sel, unique
// by id and ordered by depth (ties keep pre-order).
//
// A fully checked group with ShowParent yields its own tag and hides its
// subtree. A partially checked group yields its own tag only when
// ShowParent is set and ShowChild is not, so a group never shares the list
// with some of its own children. Checked leaves appear only when ShowChild is
// set, except at the root: a checked root-level leaf has no group that could
// stand in for it, so it is listed even when ShowChild is false.
func ResolveLabels(roots []*Node, sel Selection, opts LabelOptions) []Tag {
	visited := make(map[*Node]bool)

	var resolve func(n *Node, depth int) (Status, []Tag)
	resolve = func(n *Node, depth int) (Status, []Tag) {
		if visited[n] {
			return Unchecked, nil
		}
		visited[n] = true
		self := Tag{ID: n.ID, Label: n.Label, Depth: depth}

		if n.IsLeaf() {
			if !sel.Has(n.ID) {
				return Unchecked, nil
			}
			if opts.ShowChild || depth == 0 {
				return Checked, []Tag{self}
			}
			return Checked, nil
		}

		var childTags []Tag
		statuses := make(map[string]Status, len(n.Children))
		for _, child := range n.Children {
			s, tags := resolve(child, depth+1)
			statuses[child.ID] = s
			childTags = append(childTags, tags...)
		}
		status := statusOf(n, sel, func(child *Node) Status {
			return statuses[child.ID]
		})

		switch {
		case status == Checked && opts.ShowParent:
			return status, []Tag{self}
		case status == Indeterminate && opts.ShowParent && !opts.ShowChild:
			return status, append([]Tag{self}, childTags...)
		default:
			return status, childTags
		}
	}

	var all []Tag
	for _, root := range roots {
		if root == nil {
			continue
		}
		_, tags := resolve(root, 0)
		all = append(all, tags...)
	}

	seen := make(map[string]bool, len(all))
	tags := make([]Tag, 0, len(all))
	for _, tag := range all {
		if seen[tag.ID] {
			continue
		}
		seen[tag.ID] = true
		tags = append(tags, tag)
	}
	sort.SliceStable(tags, func(i, j int) bool {
		return tags[i].Depth < tags[j].Depth
	})
	return tags
}

// Truncate splits tags at maxCount for "+N" display. maxCount <= 0 keeps all.
func Truncate(tags []Tag, maxCount int) (visible []Tag, hidden int) {
	if maxCount <= 0 || len(tags) <= maxCount {
		return tags, 0
	}
	return tags[:maxCount], len(tags) - maxCount
}

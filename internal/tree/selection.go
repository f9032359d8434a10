package tree

import (
	"sort"

	"github.com/mitchellh/hashstructure/v2"
)

// Selection is an immutable set of selected ids. The zero value is empty.
// Every operation returns a new Selection and leaves its receiver untouched.
type Selection struct {
	ids map[string]struct{}
}

// NewSelection builds a selection from ids; blanks are ignored.
func NewSelection(ids ...string) Selection {
	s := Selection{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		if id == "" {
			continue
		}
		s.ids[id] = struct{}{}
	}
	return s
}

// Has reports whether id is selected.
func (s Selection) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected ids.
func (s Selection) Len() int {
	return len(s.ids)
}

// IDs returns the selected ids sorted lexically.
func (s Selection) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Ordered returns the selected ids in tree pre-order. Ids that are not in
// the tree follow, sorted.
func (s Selection) Ordered(ix *Index) []string {
	out := make([]string, 0, len(s.ids))
	known := make(map[string]bool, len(s.ids))
	if ix != nil {
		for _, id := range ix.order {
			if s.Has(id) {
				out = append(out, id)
				known[id] = true
			}
		}
	}
	for _, id := range s.IDs() {
		if !known[id] {
			out = append(out, id)
		}
	}
	return out
}

// Equal reports set equality.
func (s Selection) Equal(other Selection) bool {
	if len(s.ids) != len(other.ids) {
		return false
	}
	for id := range s.ids {
		if !other.Has(id) {
			return false
		}
	}
	return true
}

// Fingerprint hashes the set contents; equal sets hash equal.
func (s Selection) Fingerprint() (uint64, error) {
	return hashstructure.Hash(s.IDs(), hashstructure.FormatV2, nil)
}

func (s Selection) union(ids []string) Selection {
	out := Selection{ids: make(map[string]struct{}, len(s.ids)+len(ids))}
	for id := range s.ids {
		out.ids[id] = struct{}{}
	}
	for _, id := range ids {
		out.ids[id] = struct{}{}
	}
	return out
}

func (s Selection) subtract(ids []string) Selection {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	out := Selection{ids: make(map[string]struct{}, len(s.ids))}
	for id := range s.ids {
		if !drop[id] {
			out.ids[id] = struct{}{}
		}
	}
	return out
}

// Toggle checks (checked=true) or unchecks n together with all of its
// descendants. Ancestors need no update: their status is derived.
// Disabled nodes must be filtered out by the caller.
func Toggle(n *Node, checked bool, sel Selection) Selection {
	ids := Descendants(n)
	if checked {
		return sel.union(ids)
	}
	return sel.subtract(ids)
}

// SelectSingle replaces the selection with n alone.
func SelectSingle(n *Node) Selection {
	if n == nil {
		return Selection{}
	}
	return NewSelection(n.ID)
}

// Mode picks between multi- and single-select behaviour.
type Mode int

const (
	// ModeMultiple propagates toggles to descendants.
	ModeMultiple Mode = iota
	// ModeSingle keeps at most one id selected.
	ModeSingle
)

// Apply toggles n under the given mode. In single mode unchecking the
// selected node clears the selection and unchecking anything else is a no-op.
func Apply(mode Mode, n *Node, checked bool, sel Selection) Selection {
	if n == nil {
		return sel
	}
	if mode == ModeSingle {
		if checked {
			return SelectSingle(n)
		}
		if sel.Has(n.ID) {
			return Selection{}
		}
		return sel
	}
	return Toggle(n, checked, sel)
}

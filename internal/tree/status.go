package tree

import "sync"

// Status is the tri-state check status of a node.
type Status int

const (
	Unchecked Status = iota
	Checked
	Indeterminate
)

func (s Status) String() string {
	switch s {
	case Checked:
		return "checked"
	case Indeterminate:
		return "indeterminate"
	default:
		return "unchecked"
	}
}

// StatusOf derives n's status from sel. A leaf is checked when selected;
// an internal node is checked when every child is checked, unchecked when
// every child is unchecked and indeterminate otherwise. Internal ids in sel
// do not affect the result.
func StatusOf(n *Node, sel Selection) Status {
	return statusOf(n, sel, func(child *Node) Status {
		return StatusOf(child, sel)
	})
}

func statusOf(n *Node, sel Selection, child func(*Node) Status) Status {
	if n.IsLeaf() {
		if n != nil && sel.Has(n.ID) {
			return Checked
		}
		return Unchecked
	}
	checked, unchecked := 0, 0
	for _, c := range n.Children {
		switch child(c) {
		case Checked:
			checked++
		case Unchecked:
			unchecked++
		default:
			return Indeterminate
		}
		if checked > 0 && unchecked > 0 {
			return Indeterminate
		}
	}
	if unchecked == 0 {
		return Checked
	}
	return Unchecked
}

// Aggregator memoizes statuses for one tree. Entries are keyed by node id
// and dropped whenever the selection fingerprint changes. Call Reset after
// rebuilding the tree. Safe for concurrent use.
type Aggregator struct {
	mu          sync.Mutex
	fingerprint uint64
	primed      bool
	cache       map[string]Status
}

// NewAggregator creates an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{cache: make(map[string]Status)}
}

// Status returns StatusOf(n, sel), reusing earlier results for the same
// selection.
func (a *Aggregator) Status(n *Node, sel Selection) Status {
	if n == nil {
		return Unchecked
	}
	fp, err := sel.Fingerprint()
	if err != nil {
		return StatusOf(n, sel)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.primed || fp != a.fingerprint {
		a.cache = make(map[string]Status)
		a.fingerprint = fp
		a.primed = true
	}
	return a.statusLocked(n, sel)
}

func (a *Aggregator) statusLocked(n *Node, sel Selection) Status {
	if s, ok := a.cache[n.ID]; ok {
		return s
	}
	s := statusOf(n, sel, func(child *Node) Status {
		return a.statusLocked(child, sel)
	})
	a.cache[n.ID] = s
	return s
}

// Reset drops all cached statuses.
func (a *Aggregator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cache = make(map[string]Status)
	a.primed = false
}

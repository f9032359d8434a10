package tree

// Walk visits nodes depth-first in pre-order. fn receives the node, its
// depth and its parent (nil for roots); returning false skips the node's
// subtree. A node reached twice is not descended into again, so hand-built
// graphs with loops terminate.
func Walk(roots []*Node, fn func(n *Node, depth int, parent *Node) bool) {
	visited := make(map[*Node]bool)
	var visit func(n *Node, depth int, parent *Node)
	visit = func(n *Node, depth int, parent *Node) {
		if n == nil || visited[n] {
			return
		}
		visited[n] = true
		if !fn(n, depth, parent) {
			return
		}
		for _, child := range n.Children {
			visit(child, depth+1, n)
		}
	}
	for _, root := range roots {
		visit(root, 0, nil)
	}
}

// Descendants returns the ids of n and everything below it, pre-order.
func Descendants(n *Node) []string {
	if n == nil {
		return nil
	}
	var ids []string
	Walk([]*Node{n}, func(node *Node, _ int, _ *Node) bool {
		ids = append(ids, node.ID)
		return true
	})
	return ids
}

// LeafIDs returns the ids of the leaves under n (n itself when it is a leaf).
func LeafIDs(n *Node) []string {
	if n == nil {
		return nil
	}
	var ids []string
	Walk([]*Node{n}, func(node *Node, _ int, _ *Node) bool {
		if node.IsLeaf() {
			ids = append(ids, node.ID)
		}
		return true
	})
	return ids
}

// Index answers id lookups over a built forest. It is immutable once built.
type Index struct {
	roots  []*Node
	byID   map[string]*Node
	parent map[string]*Node
	depth  map[string]int
	order  []string
}

// NewIndex indexes roots in one pre-order pass.
func NewIndex(roots []*Node) *Index {
	ix := &Index{
		roots:  roots,
		byID:   make(map[string]*Node),
		parent: make(map[string]*Node),
		depth:  make(map[string]int),
	}
	Walk(roots, func(n *Node, depth int, parent *Node) bool {
		ix.byID[n.ID] = n
		ix.depth[n.ID] = depth
		if parent != nil {
			ix.parent[n.ID] = parent
		}
		ix.order = append(ix.order, n.ID)
		return true
	})
	return ix
}

// Roots returns the indexed forest.
func (ix *Index) Roots() []*Node {
	return ix.roots
}

// Len returns the number of indexed nodes.
func (ix *Index) Len() int {
	return len(ix.order)
}

// Node looks a node up by id.
func (ix *Index) Node(id string) (*Node, bool) {
	n, ok := ix.byID[id]
	return n, ok
}

// Parent returns the structural parent, nil for roots and unknown ids.
func (ix *Index) Parent(id string) *Node {
	return ix.parent[id]
}

// Depth returns the node depth, 0 for roots. Unknown ids report -1.
func (ix *Index) Depth(id string) int {
	d, ok := ix.depth[id]
	if !ok {
		return -1
	}
	return d
}

// Ancestors returns the chain above id, root first.
func (ix *Index) Ancestors(id string) []*Node {
	var chain []*Node
	for p := ix.parent[id]; p != nil; p = ix.parent[p.ID] {
		chain = append(chain, p)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// PreOrder returns every id in pre-order.
func (ix *Index) PreOrder() []string {
	out := make([]string, len(ix.order))
	copy(out, ix.order)
	return out
}

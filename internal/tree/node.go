package tree

// Node is one selectable entity in a built forest.
type Node struct {
	ID       string  `json:"id"`
	ParentID string  `json:"parentId,omitempty"`
	Order    float64 `json:"order"`
	Label    string  `json:"label"`
	Disabled bool    `json:"disabled,omitempty"`

	Children []*Node `json:"children,omitempty"`
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return n == nil || len(n.Children) == 0
}

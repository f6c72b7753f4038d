package domain

// LeafKind enumerates the types of exportable leaf objects.
type LeafKind int

const (
	KindMesh LeafKind = iota
	KindOther
)

func (k LeafKind) String() string {
	switch k {
	case KindMesh:
		return "mesh"
	case KindOther:
		return "other"
	default:
		return "unknown"
	}
}

// Leaf is a single exportable object. Leaf names are unique across the
// whole scene (the leaf namespace), independent of node names.
type Leaf struct {
	Name string
	Kind LeafKind

	// Host-managed flags. While set, the leaf cannot be selected or does
	// not appear in the viewport, in every view context.
	SelectDisabled bool
	ViewportHidden bool
}

// Node is a grouping entity in the scene hierarchy. A node owns its direct
// leaves; leaves under its children are reachable but not owned.
type Node struct {
	Name     string
	Children []*Node
	Leaves   []*Leaf

	// Host-managed flags, applied recursively to everything beneath.
	SelectDisabled bool
	ViewportHidden bool
}

// Find returns the descendant-or-self node with the given name, or nil.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// Walk visits n and every descendant in parent-before-child order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// AllLeaves returns every leaf reachable from n, owned leaves before the
// children's, in traversal order.
func (n *Node) AllLeaves() []*Leaf {
	var leaves []*Leaf
	n.Walk(func(node *Node) {
		leaves = append(leaves, node.Leaves...)
	})
	return leaves
}

// Contains reports whether other is n or a descendant of n.
func (n *Node) Contains(other *Node) bool {
	if n == other {
		return true
	}
	for _, c := range n.Children {
		if c.Contains(other) {
			return true
		}
	}
	return false
}

package domain

// Inclusion classifies a node relative to a chosen export target.
type Inclusion int

const (
	// InclusionOutside marks nodes that are not on or under the export
	// target. Their contents never reach the export.
	InclusionOutside Inclusion = iota
	// InclusionAllowed marks nodes under the export target whose contents
	// are exported.
	InclusionAllowed
	// InclusionDisallowed marks nodes under the export target that a
	// settings section excluded, or that sit under an excluded node.
	InclusionDisallowed
)

func (i Inclusion) String() string {
	switch i {
	case InclusionOutside:
		return "outside"
	case InclusionAllowed:
		return "allowed"
	case InclusionDisallowed:
		return "disallowed"
	default:
		return "unknown"
	}
}

// Assignment maps node names to their propagated inclusion state. The
// whole-scene root is never assigned: the host represents it specially and
// mutating its exclusion has side effects outside this model.
type Assignment map[string]Inclusion

// PropagateExclusion assigns an inclusion state to every node under root
// except root itself, relative to the export target and the set of node
// names marked not exportable. It is a pure function over the tree
// snapshot: every node is assigned explicitly in parent-before-child
// order, never relying on any recursive flag behavior a host might apply.
//
// Disallowed state is sticky downward: every descendant of a disallowed
// node is disallowed, whether or not its own name is in the set.
func PropagateExclusion(root, target *Node, disallowed map[string]bool) Assignment {
	assign := make(Assignment)
	propagate(root, target, disallowed, assign, false, false)
	return assign
}

func propagate(n, target *Node, disallowed map[string]bool, assign Assignment, withinTarget, withinDisallowed bool) {
	// Needed when the target is the scene root, which has no parent to
	// flip the flag for it.
	if n == target {
		withinTarget = true
	}

	for _, child := range n.Children {
		switch {
		case child == target:
			assign[child.Name] = InclusionAllowed
			propagate(child, target, disallowed, assign, true, false)
		case withinTarget:
			wd := withinDisallowed || disallowed[child.Name]
			if wd {
				assign[child.Name] = InclusionDisallowed
			} else {
				assign[child.Name] = InclusionAllowed
			}
			propagate(child, target, disallowed, assign, true, wd)
		default:
			assign[child.Name] = InclusionOutside
			propagate(child, target, disallowed, assign, false, false)
		}
	}
}

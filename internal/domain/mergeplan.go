package domain

// PlanMerge returns the topmost nodes, searched from the export target
// downward, whose names are in the requested set. The result is a minimal
// covering set: the search stops descending at the first match, so no
// returned node is a descendant of another, and meshes are joined once at
// the outermost level that needs them.
//
// If the target's own name is requested, the result is just the target.
func PlanMerge(target *Node, requested map[string]bool) []*Node {
	if requested[target.Name] {
		return []*Node{target}
	}
	var units []*Node
	for _, c := range target.Children {
		units = append(units, PlanMerge(c, requested)...)
	}
	return units
}

package commands

import (
	"quickexport/internal/domain"
	"quickexport/internal/ports"
)

// selectIncluded replaces the view's selection with every leaf reachable
// from node that is also present in the view, minus leaves recorded as
// hidden before the run began. The view reflects the propagated inclusion
// flags, so this intersection is the tree-included, viewer-visible set.
func selectIncluded(view ports.ViewContext, node *domain.Node, hidden map[*domain.Leaf]bool, meshOnly bool) error {
	view.DeselectAll()

	inView := make(map[*domain.Leaf]bool)
	for _, l := range view.Leaves() {
		inView[l] = true
	}

	for _, l := range node.AllLeaves() {
		if !inView[l] || hidden[l] {
			continue
		}
		if meshOnly && l.Kind != domain.KindMesh {
			continue
		}
		if err := view.Select(l); err != nil {
			return err
		}
	}
	return nil
}

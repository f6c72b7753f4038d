package memory

import (
	"fmt"

	"quickexport/internal/domain"
	"quickexport/internal/ports"
)

// View is one exclusion/selection overlay over the host's scene tree.
type View struct {
	host     *Host
	name     string
	excluded map[string]bool
	selected map[*domain.Leaf]bool
	order    []*domain.Leaf // selection order; the first entry is active
}

// Ensure View implements ViewContext
var _ ports.ViewContext = (*View)(nil)

func (v *View) Name() string {
	return v.name
}

// SetExcluded marks a node excluded or included in this view only.
func (v *View) SetExcluded(node string, excluded bool) {
	if excluded {
		v.excluded[node] = true
	} else {
		delete(v.excluded, node)
	}
}

func (v *View) Excluded(node string) bool {
	return v.excluded[node]
}

// Leaves returns every leaf whose owning node is not excluded, in tree
// traversal order. A leaf stays in the view when its owner is included
// even if an ancestor of the owner is excluded.
func (v *View) Leaves() []*domain.Leaf {
	var out []*domain.Leaf
	v.host.root.Walk(func(n *domain.Node) {
		if v.excluded[n.Name] {
			return
		}
		out = append(out, n.Leaves...)
	})
	return out
}

func (v *View) inView(leaf *domain.Leaf) bool {
	owner, ok := v.host.owner[leaf]
	return ok && !v.excluded[owner.Name]
}

// Visible reports whether the leaf can be seen in this view.
func (v *View) Visible(leaf *domain.Leaf) bool {
	if !v.inView(leaf) || leaf.ViewportHidden {
		return false
	}
	for _, n := range v.host.pathTo(v.host.owner[leaf]) {
		if n != v.host.root && n.ViewportHidden {
			return false
		}
	}
	return true
}

// Select marks the leaf selected. Hidden and selection-disabled leaves
// cannot be selected.
func (v *View) Select(leaf *domain.Leaf) error {
	if !v.inView(leaf) {
		return fmt.Errorf("leaf %q is not in view %q", leaf.Name, v.name)
	}
	if !v.Visible(leaf) {
		return fmt.Errorf("leaf %q is hidden in view %q", leaf.Name, v.name)
	}
	if leaf.SelectDisabled {
		return fmt.Errorf("selection is disabled for leaf %q", leaf.Name)
	}
	for _, n := range v.host.pathTo(v.host.owner[leaf]) {
		if n != v.host.root && n.SelectDisabled {
			return fmt.Errorf("selection is disabled for node %q", n.Name)
		}
	}
	if !v.selected[leaf] {
		v.selected[leaf] = true
		v.order = append(v.order, leaf)
	}
	return nil
}

func (v *View) Deselect(leaf *domain.Leaf) {
	v.forget(leaf)
}

func (v *View) DeselectAll() {
	v.selected = make(map[*domain.Leaf]bool)
	v.order = nil
}

// Selected returns the selected leaves in selection order.
func (v *View) Selected() []*domain.Leaf {
	out := make([]*domain.Leaf, len(v.order))
	copy(out, v.order)
	return out
}

func (v *View) setSelection(leaves []*domain.Leaf) {
	v.DeselectAll()
	for _, l := range leaves {
		v.selected[l] = true
		v.order = append(v.order, l)
	}
}

func (v *View) forget(leaf *domain.Leaf) {
	if !v.selected[leaf] {
		return
	}
	delete(v.selected, leaf)
	for i, l := range v.order {
		if l == leaf {
			v.order = append(v.order[:i], v.order[i+1:]...)
			break
		}
	}
}

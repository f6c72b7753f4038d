package ports

import "quickexport/internal/domain"

// ViewContext is an isolated, disposable overlay of exclusion and
// selection state over the shared scene graph. Changes made in one view
// are invisible to every other view; the global per-node and per-leaf
// flags on the domain structs are shared by all views.
type ViewContext interface {
	Name() string

	// SetExcluded marks the named node excluded or included in this view
	// only. Excluded nodes' owned leaves drop out of the view.
	SetExcluded(node string, excluded bool)
	Excluded(node string) bool

	// Leaves returns every leaf whose owning node is not excluded in this
	// view, in tree traversal order.
	Leaves() []*domain.Leaf

	// Visible reports whether the leaf can be seen in this view: its
	// owning node is not excluded and neither the leaf nor any node on
	// the path to its owner is viewport-hidden.
	Visible(leaf *domain.Leaf) bool

	// Select marks the leaf selected. It fails if the leaf is not in the
	// view, is not visible, or selection is disabled for it or an
	// ancestor of its owner.
	Select(leaf *domain.Leaf) error
	Deselect(leaf *domain.Leaf)
	DeselectAll()

	// Selected returns the selected leaves in selection order. The first
	// entry is the active leaf for host primitives that need one.
	Selected() []*domain.Leaf
}

// SceneHost is the scene-graph engine the export pipeline drives. The
// pipeline is its sole mutator during a run and must leave everything it
// touched equivalent to the pre-run state, except for the exported file.
type SceneHost interface {
	// Root returns the whole-scene root node.
	Root() *domain.Node

	ActiveView() ViewContext
	// NewView creates a view context with nothing excluded and nothing
	// selected. It does not become active until SetActiveView.
	NewView() (ViewContext, error)
	SetActiveView(view ViewContext) error
	// RemoveView destroys a view context. The active view cannot be
	// removed.
	RemoveView(view ViewContext) error

	// Duplicate copies every leaf selected in the view into its owning
	// node; the view's selection is replaced by the copies.
	Duplicate(view ViewContext) error
	// Join combines the view's selected leaves into the active (first
	// selected) leaf and removes the others from the scene. The selection
	// is replaced by the surviving leaf.
	Join(view ViewContext) error
	// RemoveLeaf deletes the leaf from the scene and from every view's
	// selection. Removing a leaf that is already gone is a no-op.
	RemoveLeaf(leaf *domain.Leaf) error
	// RenameLeaf renames the leaf, adjusting for collisions in the leaf
	// namespace the way the host does.
	RenameLeaf(leaf *domain.Leaf, name string) error

	// Saved reports whether the host document has an on-disk location,
	// which host-relative paths resolve against.
	Saved() bool
	// AbsPath resolves a path, expanding the host-relative "//" prefix to
	// the document's directory.
	AbsPath(path string) (string, error)

	// SettingsDocument returns the text of the settings document and
	// whether one exists at all.
	SettingsDocument() (text string, exists bool)
	WriteSettingsDocument(text string) error

	// Export writes the view's selected leaves to path using the named
	// exporter and its resolved parameters.
	Export(exporter string, params map[string]any, path string, view ViewContext) error
}

package memory

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"quickexport/internal/domain"
	"quickexport/internal/ports"
)

// Host is an in-memory scene-graph engine implementing ports.SceneHost.
// It mirrors the observable behavior the export pipeline depends on from
// a real host: per-view exclusion overlays, global selection-blocking
// flags, duplicate and join primitives, a leaf namespace with collision
// renaming, and a manifest-writing export backend.
type Host struct {
	root  *domain.Node
	owner map[*domain.Leaf]*domain.Node
	names map[string]*domain.Leaf

	views   []*View
	active  *View
	viewSeq int

	basePath     string // directory the "//" prefix resolves against; empty = unsaved
	settings     string
	hasSettings  bool
	settingsPath string // optional file backing for the settings document
}

// Ensure Host implements SceneHost
var _ ports.SceneHost = (*Host)(nil)

// NewHost builds a host around an existing scene tree and creates the
// initial view context.
func NewHost(root *domain.Node) *Host {
	h := &Host{
		root:  root,
		owner: make(map[*domain.Leaf]*domain.Node),
		names: make(map[string]*domain.Leaf),
	}
	root.Walk(func(n *domain.Node) {
		for _, l := range n.Leaves {
			h.owner[l] = n
			h.names[l.Name] = l
		}
	})
	h.active = h.newView()
	return h
}

// SetBasePath marks the host document as saved at the given directory,
// which the "//" prefix resolves against.
func (h *Host) SetBasePath(dir string) {
	h.basePath = dir
}

// UseSettingsFile backs the settings document with a file on disk. An
// existing file is loaded; writes go back to it.
func (h *Host) UseSettingsFile(path string) error {
	h.settingsPath = path
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read settings file: %w", err)
	}
	h.settings = string(data)
	h.hasSettings = true
	return nil
}

// Root returns the whole-scene root node.
func (h *Host) Root() *domain.Node {
	return h.root
}

// Owner returns the node that directly owns the leaf, or nil.
func (h *Host) Owner(leaf *domain.Leaf) *domain.Node {
	return h.owner[leaf]
}

func (h *Host) newView() *View {
	v := &View{
		host:     h,
		name:     fmt.Sprintf("View.%03d", h.viewSeq),
		excluded: make(map[string]bool),
		selected: make(map[*domain.Leaf]bool),
	}
	h.viewSeq++
	h.views = append(h.views, v)
	return v
}

// ActiveView returns the currently active view context.
func (h *Host) ActiveView() ports.ViewContext {
	return h.active
}

// ViewCount returns how many view contexts exist.
func (h *Host) ViewCount() int {
	return len(h.views)
}

// NewView creates a fresh view context with nothing excluded and nothing
// selected.
func (h *Host) NewView() (ports.ViewContext, error) {
	return h.newView(), nil
}

// SetActiveView makes the given view context active.
func (h *Host) SetActiveView(view ports.ViewContext) error {
	v, err := h.own(view)
	if err != nil {
		return err
	}
	h.active = v
	return nil
}

// RemoveView destroys a view context. The active view cannot be removed.
func (h *Host) RemoveView(view ports.ViewContext) error {
	v, err := h.own(view)
	if err != nil {
		return err
	}
	if v == h.active {
		return errors.New("cannot remove the active view context")
	}
	for i, existing := range h.views {
		if existing == v {
			h.views = append(h.views[:i], h.views[i+1:]...)
			return nil
		}
	}
	return nil
}

func (h *Host) own(view ports.ViewContext) (*View, error) {
	v, ok := view.(*View)
	if !ok || v.host != h {
		return nil, errors.New("view context does not belong to this host")
	}
	for _, existing := range h.views {
		if existing == v {
			return v, nil
		}
	}
	return nil, fmt.Errorf("view context %q no longer exists", v.name)
}

// Duplicate copies every selected leaf into its owning node; the view's
// selection is replaced by the copies.
func (h *Host) Duplicate(view ports.ViewContext) error {
	v, err := h.own(view)
	if err != nil {
		return err
	}
	sel := v.Selected()
	if len(sel) == 0 {
		return errors.New("nothing selected to duplicate")
	}
	copies := make([]*domain.Leaf, 0, len(sel))
	for _, l := range sel {
		cp := &domain.Leaf{
			Name:           h.uniqueLeafName(l.Name),
			Kind:           l.Kind,
			SelectDisabled: l.SelectDisabled,
			ViewportHidden: l.ViewportHidden,
		}
		node := h.owner[l]
		node.Leaves = append(node.Leaves, cp)
		h.owner[cp] = node
		h.names[cp.Name] = cp
		copies = append(copies, cp)
	}
	v.setSelection(copies)
	return nil
}

// Join combines the selected leaves into the first selected one; the
// others are removed from the scene. The selection is replaced by the
// survivor.
func (h *Host) Join(view ports.ViewContext) error {
	v, err := h.own(view)
	if err != nil {
		return err
	}
	sel := v.Selected()
	if len(sel) == 0 {
		return errors.New("nothing selected to join")
	}
	active := sel[0]
	for _, l := range sel[1:] {
		h.deleteLeaf(l)
	}
	v.setSelection([]*domain.Leaf{active})
	return nil
}

// RemoveLeaf deletes the leaf from the scene. Removing a leaf that is
// already gone is a no-op.
func (h *Host) RemoveLeaf(leaf *domain.Leaf) error {
	if _, ok := h.owner[leaf]; !ok {
		return nil
	}
	h.deleteLeaf(leaf)
	return nil
}

// RenameLeaf renames the leaf, suffixing the name on a namespace
// collision the way the host numbers duplicates.
func (h *Host) RenameLeaf(leaf *domain.Leaf, name string) error {
	if _, ok := h.owner[leaf]; !ok {
		return fmt.Errorf("unknown leaf %q", leaf.Name)
	}
	if name == leaf.Name {
		return nil
	}
	delete(h.names, leaf.Name)
	leaf.Name = h.uniqueLeafName(name)
	h.names[leaf.Name] = leaf
	return nil
}

func (h *Host) deleteLeaf(leaf *domain.Leaf) {
	node := h.owner[leaf]
	for i, l := range node.Leaves {
		if l == leaf {
			node.Leaves = append(node.Leaves[:i], node.Leaves[i+1:]...)
			break
		}
	}
	delete(h.owner, leaf)
	delete(h.names, leaf.Name)
	for _, v := range h.views {
		v.forget(leaf)
	}
}

// pathTo returns the nodes from the root down to n inclusive, or nil if
// n is not in the tree.
func (h *Host) pathTo(n *domain.Node) []*domain.Node {
	var path []*domain.Node
	var walk func(cur *domain.Node, trail []*domain.Node) bool
	walk = func(cur *domain.Node, trail []*domain.Node) bool {
		trail = append(trail, cur)
		if cur == n {
			path = append([]*domain.Node(nil), trail...)
			return true
		}
		for _, c := range cur.Children {
			if walk(c, trail) {
				return true
			}
		}
		return false
	}
	walk(h.root, nil)
	return path
}

func (h *Host) uniqueLeafName(base string) string {
	if _, taken := h.names[base]; !taken {
		return base
	}
	for i := 1; ; i++ {
		name := fmt.Sprintf("%s.%03d", base, i)
		if _, taken := h.names[name]; !taken {
			return name
		}
	}
}

// Saved reports whether the host document has an on-disk location.
func (h *Host) Saved() bool {
	return h.basePath != ""
}

// AbsPath resolves a path, expanding the "//" prefix against the host
// document's directory.
func (h *Host) AbsPath(path string) (string, error) {
	if strings.HasPrefix(path, "//") {
		if h.basePath == "" {
			return "", errors.New("host document has no location")
		}
		return filepath.Clean(filepath.Join(h.basePath, strings.TrimPrefix(path, "//"))), nil
	}
	return filepath.Abs(path)
}

// SettingsDocument returns the settings document text and whether one
// exists.
func (h *Host) SettingsDocument() (string, bool) {
	return h.settings, h.hasSettings
}

// WriteSettingsDocument stores the settings document, writing it through
// to the backing file when one is configured.
func (h *Host) WriteSettingsDocument(text string) error {
	h.settings = text
	h.hasSettings = true
	if h.settingsPath != "" {
		if err := os.WriteFile(h.settingsPath, []byte(text), 0644); err != nil {
			return fmt.Errorf("write settings file: %w", err)
		}
	}
	return nil
}

// Export writes a selection manifest to path. It stands in for a real
// exporter backend; validating real output formats is out of scope here.
func (h *Host) Export(exporter string, params map[string]any, path string, view ports.ViewContext) error {
	v, err := h.own(view)
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# quickexport manifest\n")
	fmt.Fprintf(&b, "exporter = %s\n", exporter)

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "param %s = %v\n", k, params[k])
	}
	for _, l := range v.Selected() {
		fmt.Fprintf(&b, "leaf %s kind=%s\n", l.Name, l.Kind)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	return nil
}

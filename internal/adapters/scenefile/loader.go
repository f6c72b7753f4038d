// Package scenefile loads a scene description from a TOML file into an
// in-memory scene host, so the CLI has a scene graph to drive exports
// against.
package scenefile

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"quickexport/internal/adapters/memory"
	"quickexport/internal/domain"
)

// RootName is the name of the implicit whole-scene root node.
const RootName = "Scene Collection"

// File is the on-disk scene description.
type File struct {
	// BasePath is the directory the host-relative "//" prefix resolves
	// against. Empty marks the scene document as unsaved.
	BasePath string `toml:"base_path"`

	Nodes  []NodeDef `toml:"node"`
	Leaves []LeafDef `toml:"leaf"`
}

// NodeDef describes one node. Parents must be declared before their
// children; an empty parent places the node directly under the root.
type NodeDef struct {
	Name         string `toml:"name"`
	Parent       string `toml:"parent"`
	HideSelect   bool   `toml:"hide_select"`
	HideViewport bool   `toml:"hide_viewport"`
}

// LeafDef describes one leaf object owned by a node.
type LeafDef struct {
	Name         string `toml:"name"`
	Node         string `toml:"node"`
	Kind         string `toml:"kind"` // "mesh" (default) or "other"
	HideSelect   bool   `toml:"hide_select"`
	HideViewport bool   `toml:"hide_viewport"`
}

// Load reads a scene description file and builds a host from it.
func Load(path string) (*memory.Host, error) {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("decode scene file %s: %w", path, err)
	}
	return Build(&f)
}

// Build constructs an in-memory host from a scene description.
func Build(f *File) (*memory.Host, error) {
	root := &domain.Node{Name: RootName}
	nodes := map[string]*domain.Node{"": root, RootName: root}

	for _, def := range f.Nodes {
		if def.Name == "" {
			return nil, fmt.Errorf("scene node with empty name")
		}
		if _, exists := nodes[def.Name]; exists {
			return nil, fmt.Errorf("duplicate scene node %q", def.Name)
		}
		parent, ok := nodes[def.Parent]
		if !ok {
			return nil, fmt.Errorf("node %q: parent %q not declared yet (declare parents before children)", def.Name, def.Parent)
		}
		n := &domain.Node{
			Name:           def.Name,
			SelectDisabled: def.HideSelect,
			ViewportHidden: def.HideViewport,
		}
		parent.Children = append(parent.Children, n)
		nodes[def.Name] = n
	}

	seen := make(map[string]bool)
	for _, def := range f.Leaves {
		if def.Name == "" {
			return nil, fmt.Errorf("scene leaf with empty name")
		}
		if seen[def.Name] {
			return nil, fmt.Errorf("duplicate leaf %q", def.Name)
		}
		seen[def.Name] = true

		node, ok := nodes[def.Node]
		if !ok {
			return nil, fmt.Errorf("leaf %q: unknown node %q", def.Name, def.Node)
		}
		kind, err := parseKind(def.Kind)
		if err != nil {
			return nil, fmt.Errorf("leaf %q: %w", def.Name, err)
		}
		node.Leaves = append(node.Leaves, &domain.Leaf{
			Name:           def.Name,
			Kind:           kind,
			SelectDisabled: def.HideSelect,
			ViewportHidden: def.HideViewport,
		})
	}

	host := memory.NewHost(root)
	if f.BasePath != "" {
		abs, err := filepath.Abs(f.BasePath)
		if err != nil {
			return nil, fmt.Errorf("resolve base path %q: %w", f.BasePath, err)
		}
		host.SetBasePath(abs)
	}
	return host, nil
}

func parseKind(kind string) (domain.LeafKind, error) {
	switch kind {
	case "", "mesh":
		return domain.KindMesh, nil
	case "other":
		return domain.KindOther, nil
	default:
		return 0, fmt.Errorf("unknown leaf kind %q", kind)
	}
}

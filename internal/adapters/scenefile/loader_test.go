package scenefile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quickexport/internal/domain"
)

func TestLoad(t *testing.T) {
	content := `
base_path = "."

[[node]]
name = "Props"

[[node]]
name = "Crates"
parent = "Props"
hide_viewport = true

[[leaf]]
name = "Barrel"
node = "Props"

[[leaf]]
name = "Lamp"
node = "Props"
kind = "other"
hide_select = true

[[leaf]]
name = "Crate"
node = "Crates"
`
	path := filepath.Join(t.TempDir(), "scene.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	host, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	root := host.Root()
	if root.Name != RootName {
		t.Errorf("root name = %q, want %q", root.Name, RootName)
	}

	props := root.Find("Props")
	if props == nil {
		t.Fatal("node Props missing")
	}
	crates := root.Find("Crates")
	if crates == nil || !props.Contains(crates) {
		t.Fatal("node Crates missing or not under Props")
	}
	if !crates.ViewportHidden {
		t.Error("Crates should carry the hide_viewport flag")
	}

	leaves := root.AllLeaves()
	if len(leaves) != 3 {
		t.Fatalf("leaf count = %d, want 3", len(leaves))
	}
	byName := make(map[string]*domain.Leaf)
	for _, l := range leaves {
		byName[l.Name] = l
	}
	if byName["Barrel"].Kind != domain.KindMesh {
		t.Error("Barrel should default to the mesh kind")
	}
	if byName["Lamp"].Kind != domain.KindOther || !byName["Lamp"].SelectDisabled {
		t.Error("Lamp should be kind other with selection disabled")
	}
	if len(crates.Leaves) != 1 || crates.Leaves[0].Name != "Crate" {
		t.Errorf("Crates leaves = %v, want just Crate", crates.Leaves)
	}

	if !host.Saved() {
		t.Error("host should be saved when base_path is set")
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    File
		wantErr string
	}{
		{
			name:    "node without a name",
			file:    File{Nodes: []NodeDef{{Name: ""}}},
			wantErr: "empty name",
		},
		{
			name:    "duplicate node",
			file:    File{Nodes: []NodeDef{{Name: "Props"}, {Name: "Props"}}},
			wantErr: "duplicate scene node",
		},
		{
			name:    "child before parent",
			file:    File{Nodes: []NodeDef{{Name: "Crates", Parent: "Props"}, {Name: "Props"}}},
			wantErr: "not declared yet",
		},
		{
			name: "duplicate leaf",
			file: File{
				Nodes:  []NodeDef{{Name: "Props"}},
				Leaves: []LeafDef{{Name: "Barrel", Node: "Props"}, {Name: "Barrel", Node: "Props"}},
			},
			wantErr: "duplicate leaf",
		},
		{
			name:    "leaf under unknown node",
			file:    File{Leaves: []LeafDef{{Name: "Barrel", Node: "Props"}}},
			wantErr: "unknown node",
		},
		{
			name: "unknown leaf kind",
			file: File{
				Nodes:  []NodeDef{{Name: "Props"}},
				Leaves: []LeafDef{{Name: "Barrel", Node: "Props", Kind: "curve"}},
			},
			wantErr: "unknown leaf kind",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(&tt.file)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Build() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestBuildUnsaved(t *testing.T) {
	host, err := Build(&File{Nodes: []NodeDef{{Name: "Props"}}})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if host.Saved() {
		t.Error("host should be unsaved without a base_path")
	}
}

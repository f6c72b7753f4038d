package settings

import (
	"strings"
	"testing"
)

func TestDefaultDocument(t *testing.T) {
	doc := DefaultDocument("Props", "Props.fbx")

	for _, want := range []string{"[DEFAULT]", "exporter = fbx", "directory = //", "[Props]", "filename = Props.fbx"} {
		if !strings.Contains(doc, want) {
			t.Errorf("DefaultDocument() missing %q:\n%s", want, doc)
		}
	}
	if !strings.HasPrefix(doc, "#") {
		t.Error("DefaultDocument() should start with the commented usage header")
	}

	// The scaffolded document resolves cleanly on the next invocation.
	r, _ := testResolver(t)
	plan, err := r.Resolve(doc, "Props")
	if err != nil {
		t.Fatalf("Resolve() on scaffolded document error = %v", err)
	}
	if plan.Exporter.Name != "fbx" {
		t.Errorf("Exporter = %q, want fbx", plan.Exporter.Name)
	}
}

func TestAppendSection(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "trailing newline", doc: "[DEFAULT]\nexporter = fbx\ndirectory = //\n"},
		{name: "no trailing newline", doc: "[DEFAULT]\nexporter = fbx\ndirectory = //"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := AppendSection(tt.doc, "Terrain", "Terrain.fbx")
			if !strings.Contains(out, "[DEFAULT]") {
				t.Error("AppendSection() dropped existing content")
			}
			if !strings.Contains(out, "\n[Terrain]\nfilename = Terrain.fbx\n") {
				t.Errorf("AppendSection() output missing the new section:\n%s", out)
			}

			r, _ := testResolver(t)
			if _, err := r.Resolve(out, "Terrain"); err != nil {
				t.Errorf("Resolve() on appended document error = %v", err)
			}
		})
	}
}

package domain

import (
	"reflect"
	"testing"
)

// buildScene returns the tree
//
//	Root
//	  B
//	    C
//	      C1
//	    D
//	  E
func buildScene() *Node {
	return &Node{Name: "Root", Children: []*Node{
		{Name: "B", Children: []*Node{
			{Name: "C", Children: []*Node{
				{Name: "C1"},
			}},
			{Name: "D"},
		}},
		{Name: "E"},
	}}
}

func TestPropagateExclusion(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		disallowed map[string]bool
		want       Assignment
	}{
		{
			name:   "target is an inner node",
			target: "B",
			want: Assignment{
				"B":  InclusionAllowed,
				"C":  InclusionAllowed,
				"C1": InclusionAllowed,
				"D":  InclusionAllowed,
				"E":  InclusionOutside,
			},
		},
		{
			name:   "target is the scene root",
			target: "Root",
			want: Assignment{
				"B":  InclusionAllowed,
				"C":  InclusionAllowed,
				"C1": InclusionAllowed,
				"D":  InclusionAllowed,
				"E":  InclusionAllowed,
			},
		},
		{
			name:       "disallowed is sticky downward",
			target:     "B",
			disallowed: map[string]bool{"C": true},
			want: Assignment{
				"B":  InclusionAllowed,
				"C":  InclusionDisallowed,
				"C1": InclusionDisallowed,
				"D":  InclusionAllowed,
				"E":  InclusionOutside,
			},
		},
		{
			name:       "disallowed name outside the target stays outside",
			target:     "B",
			disallowed: map[string]bool{"E": true},
			want: Assignment{
				"B":  InclusionAllowed,
				"C":  InclusionAllowed,
				"C1": InclusionAllowed,
				"D":  InclusionAllowed,
				"E":  InclusionOutside,
			},
		},
		{
			name:       "disallowed at the root export",
			target:     "Root",
			disallowed: map[string]bool{"B": true},
			want: Assignment{
				"B":  InclusionDisallowed,
				"C":  InclusionDisallowed,
				"C1": InclusionDisallowed,
				"D":  InclusionDisallowed,
				"E":  InclusionAllowed,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := buildScene()
			target := root.Find(tt.target)
			if target == nil {
				t.Fatalf("target %q not in tree", tt.target)
			}

			got := PropagateExclusion(root, target, tt.disallowed)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PropagateExclusion() = %v, want %v", got, tt.want)
			}

			if _, assigned := got["Root"]; assigned {
				t.Error("the scene root must never be assigned")
			}
		})
	}
}

func TestPropagateExclusionIdempotent(t *testing.T) {
	root := buildScene()
	target := root.Find("B")
	disallowed := map[string]bool{"C": true}

	first := PropagateExclusion(root, target, disallowed)
	second := PropagateExclusion(root, target, disallowed)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated propagation differs: %v vs %v", first, second)
	}
}

func TestPropagateExclusionCoversEveryNode(t *testing.T) {
	root := buildScene()
	got := PropagateExclusion(root, root.Find("C"), nil)

	root.Walk(func(n *Node) {
		if n == root {
			return
		}
		if _, ok := got[n.Name]; !ok {
			t.Errorf("node %q has no assignment", n.Name)
		}
	})
}

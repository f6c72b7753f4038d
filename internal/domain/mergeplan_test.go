package domain

import (
	"testing"
)

func TestPlanMerge(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		requested []string
		want      []string
	}{
		{
			name:      "independent subtrees",
			target:    "Root",
			requested: []string{"B", "E"},
			want:      []string{"B", "E"},
		},
		{
			name:      "target itself requested",
			target:    "B",
			requested: []string{"B", "E"},
			want:      []string{"B"},
		},
		{
			name:      "ancestor shadows descendant",
			target:    "Root",
			requested: []string{"B", "C"},
			want:      []string{"B"},
		},
		{
			name:      "descendant only",
			target:    "B",
			requested: []string{"C"},
			want:      []string{"C"},
		},
		{
			name:      "nothing requested under target",
			target:    "E",
			requested: []string{"C"},
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := buildScene()
			target := root.Find(tt.target)
			requested := make(map[string]bool)
			for _, name := range tt.requested {
				requested[name] = true
			}

			units := PlanMerge(target, requested)

			var got []string
			for _, u := range units {
				got = append(got, u.Name)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("PlanMerge() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("PlanMerge() = %v, want %v", got, tt.want)
					break
				}
			}

			// Minimal covering set: no unit dominates another.
			for i, a := range units {
				for j, b := range units {
					if i != j && a.Contains(b) {
						t.Errorf("unit %q contains unit %q", a.Name, b.Name)
					}
				}
			}

			// Every requested name under the target is dominated by
			// exactly one unit.
			for name := range requested {
				n := target.Find(name)
				if n == nil {
					continue
				}
				dominated := 0
				for _, u := range units {
					if u.Contains(n) {
						dominated++
					}
				}
				if dominated != 1 {
					t.Errorf("requested %q dominated by %d units, want 1", name, dominated)
				}
			}
		})
	}
}

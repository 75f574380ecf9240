package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/depscope/pkg/deps"
	"github.com/matzehuels/depscope/pkg/registry"
)

func reportSet() registry.Set {
	node := func(id, name string, downloads int64, lines ...string) *registry.Node {
		return &registry.Node{
			ID:        id,
			Name:      name,
			Downloads: downloads,
			LatestVersion: &registry.Version{
				Dependencies: lines,
			},
		}
	}
	return registry.Set{
		"a": node("a", "pack-a", 300, "torch==1.0", "numpy", "--extra-index-url x"),
		"b": node("b", "pack-b", 200, "torch", "# scipy"),
		"c": node("c", "pack-c", 100),
	}
}

func TestRenderSummary(t *testing.T) {
	set := reportSet()
	out := renderSummary(deps.Compile(set), len(set), 10)

	for _, want := range []string{"Dependency Summary", "torch", "numpy", "Pip Flags", "--extra-index-url x"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "scipy") {
		t.Error("commented dependency should not appear in the frequency table")
	}
}

func TestRenderSummary_TopNTruncates(t *testing.T) {
	set := reportSet()
	out := renderSummary(deps.Compile(set), len(set), 1)

	if !strings.Contains(out, "torch") {
		t.Error("most frequent dependency should survive truncation")
	}
	if strings.Contains(out, "numpy") {
		t.Error("truncated table should not list the second dependency")
	}
}

func TestRenderUsageReport(t *testing.T) {
	set := reportSet()
	report := deps.Inspect(set, "torch")
	out := renderUsageReport(report)

	for _, want := range []string{"torch", "pack-a", "pack-b", "Declared Versions", "==1.0"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestRenderUsageReport_CommentedMentions(t *testing.T) {
	set := reportSet()
	report := deps.Inspect(set, "scipy")
	out := renderUsageReport(report)

	if !strings.Contains(out, "Commented Mentions") || !strings.Contains(out, "pack-b") {
		t.Errorf("commented evidence missing:\n%s", out)
	}
}

func TestSuggest(t *testing.T) {
	names := []string{"torch", "torchvision", "numpy", "opencv-python", "pytorch-lightning"}

	tests := []struct {
		query string
		want  []string
	}{
		{"torch", []string{"torch", "torchvision", "pytorch-lightning"}},
		{"vision", []string{"torchvision"}},
		{"nope", nil},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := suggest(names, tt.query, 8)
			if len(got) != len(tt.want) {
				t.Fatalf("suggest(%q) = %v, want %v", tt.query, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("suggest(%q)[%d] = %q, want %q", tt.query, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSuggest_Limit(t *testing.T) {
	names := []string{"aa", "ab", "ac", "ad"}
	if got := suggest(names, "a", 2); len(got) != 2 {
		t.Errorf("expected limit of 2, got %d", len(got))
	}
}

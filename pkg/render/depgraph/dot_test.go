package depgraph

import (
	"strings"
	"testing"

	"github.com/matzehuels/depscope/pkg/registry"
)

func node(id, name string, downloads int64, deps ...string) *registry.Node {
	return &registry.Node{
		ID:        id,
		Name:      name,
		Downloads: downloads,
		LatestVersion: &registry.Version{
			Dependencies: deps,
		},
	}
}

func testSet() registry.Set {
	return registry.Set{
		"a": node("a", "pack-a", 300, "torch==1.0", "numpy", "# pillow"),
		"b": node("b", "pack-b", 200, "torch", "--extra-index-url x"),
		"c": node("c", "pack-c", 100, "scipy"),
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testSet(), Options{})

	if !strings.HasPrefix(dot, "digraph G {") {
		t.Fatalf("expected digraph header, got %q", dot[:min(len(dot), 40)])
	}
	for _, want := range []string{
		`"node:a" [label="pack-a"]`,
		`"dep:torch" [label="torch\n2"`,
		`"node:a" -> "dep:torch";`,
		`"node:b" -> "dep:torch";`,
		`"node:c" -> "dep:scipy";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "pillow") {
		t.Error("commented dependency should not appear in the graph")
	}
	if strings.Contains(dot, "extra-index-url") {
		t.Error("flag lines should not appear in the graph")
	}
}

func TestToDOT_TopN(t *testing.T) {
	dot := ToDOT(testSet(), Options{TopN: 2})
	if strings.Contains(dot, "node:c") {
		t.Error("rank 3 node should be excluded with TopN=2")
	}
	if strings.Contains(dot, "scipy") {
		t.Error("dependency declared only by an excluded node should not appear")
	}
	if !strings.Contains(dot, "node:a") || !strings.Contains(dot, "node:b") {
		t.Error("top 2 nodes should both be present")
	}
}

func TestToDOT_MinUsage(t *testing.T) {
	dot := ToDOT(testSet(), Options{MinUsage: 2})
	if !strings.Contains(dot, "dep:torch") {
		t.Error("torch is used twice and should survive MinUsage=2")
	}
	for _, hidden := range []string{"dep:numpy", "dep:scipy"} {
		if strings.Contains(dot, hidden) {
			t.Errorf("%s is used once and should be hidden", hidden)
		}
	}
}

func TestToDOT_Deterministic(t *testing.T) {
	set := testSet()
	first := ToDOT(set, Options{})
	for range 5 {
		if got := ToDOT(set, Options{}); got != first {
			t.Fatal("DOT output is not deterministic")
		}
	}
}

func TestToDOT_Empty(t *testing.T) {
	dot := ToDOT(registry.Set{}, Options{})
	if !strings.Contains(dot, "digraph G {") || !strings.Contains(dot, "}") {
		t.Errorf("empty set should still yield a valid skeleton:\n%s", dot)
	}
}

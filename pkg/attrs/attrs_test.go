package attrs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/depscope/pkg/registry"
)

func writeFeed(t *testing.T, rows string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feed.csv")
	if err := os.WriteFile(path, []byte(rows), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ExactMatch(t *testing.T) {
	path := writeFeed(t, `id,repo,branch,path
1,https://github.com/Org/Pack-A,main,workflows/demo.json
2,https://github.com/org/pack-a.git,main,workflows/extra.json
3,https://github.com/org/pack-a,main,README.md
4,https://github.com/org/other,main,workflows/other.json
`)
	set := registry.Set{
		"a": {ID: "a", Repository: "https://www.github.com/org/pack-a/"},
		"b": {ID: "b", Repository: "https://github.com/org/unrelated"},
	}

	results, err := Load(set, []Feed{{Name: "workflows", Path: path, Extension: ".json"}}, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	res := results[0]
	if res.Rows != 4 || res.Kept != 3 {
		t.Errorf("rows/kept = %d/%d, want 4/3 (README filtered)", res.Rows, res.Kept)
	}
	if res.Matched != 1 {
		t.Errorf("matched = %d, want 1", res.Matched)
	}

	// Case, scheme, www, trailing slash, and .git all normalize away.
	if got := StatCount(set["a"], "workflows"); got != 2 {
		t.Errorf("StatCount = %d, want 2 evidence paths", got)
	}
	if got := StatCount(set["b"], "workflows"); got != 0 {
		t.Errorf("unmatched node StatCount = %d, want 0", got)
	}
}

func TestLoad_FuzzyFallback(t *testing.T) {
	path := writeFeed(t, `id,repo,branch,path
1,https://gitlab.com/someorg/pack-a,main,packs/map.json
`)
	set := registry.Set{
		// Different host, same trailing repo name.
		"a": {ID: "a", Repository: "https://github.com/otherorg/pack-a"},
	}

	results, err := Load(set, []Feed{{Name: "packs", Path: path, Fuzzy: true}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if results[0].FuzzyHits != 1 {
		t.Errorf("fuzzy hits = %d, want 1", results[0].FuzzyHits)
	}
	if StatCount(set["a"], "packs") != 1 {
		t.Error("fuzzy match should attach evidence")
	}
}

func TestLoad_FuzzyAmbiguity(t *testing.T) {
	path := writeFeed(t, `id,repo,branch,path
1,https://gitlab.com/org1/pack-a,main,one.json
2,https://bitbucket.org/org2/pack-a,main,two.json
`)
	set := registry.Set{
		"a": {ID: "a", Repository: "https://github.com/org3/pack-a"},
	}

	results, err := Load(set, []Feed{{Name: "packs", Path: path, Fuzzy: true}}, nil)
	if err != nil {
		t.Fatal(err)
	}

	res := results[0]
	if res.Ambiguous != 1 {
		t.Errorf("ambiguous = %d, want 1", res.Ambiguous)
	}
	// First candidate in sorted order wins: bitbucket.org sorts before gitlab.com.
	got := set["a"].Attributes["packs"]
	if len(got) != 1 || got[0] != "two.json" {
		t.Errorf("evidence = %v, want [two.json] from the first sorted candidate", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	set := registry.Set{"a": {ID: "a"}}
	if _, err := Load(set, []Feed{{Name: "x", Path: "/nonexistent.csv"}}, nil); err == nil {
		t.Fatal("unreadable feed should fail the load")
	}
}

func TestAttributeNames(t *testing.T) {
	set := registry.Set{
		"a": {ID: "a", Attributes: map[string][]string{"workflows": {"x"}}},
		"b": {ID: "b", Attributes: map[string][]string{"packs": {"y"}, "workflows": {"z"}}},
		"c": {ID: "c"},
	}
	got := AttributeNames(set)
	want := []string{"packs", "workflows"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("AttributeNames = %v, want %v", got, want)
	}
}

func TestNormalizeRepoURL(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"https://github.com/Org/Repo", "github.com/org/repo"},
		{"http://www.github.com/org/repo/", "github.com/org/repo"},
		{"https://github.com/org/repo.git", "github.com/org/repo"},
		{"github.com/org/repo", "github.com/org/repo"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeRepoURL(tt.raw); got != tt.want {
			t.Errorf("NormalizeRepoURL(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

package deps

import (
	"sort"
	"strings"

	"github.com/matzehuels/depscope/pkg/registry"
)

// Usage records one node actively declaring the inspected dependency.
type Usage struct {
	NodeID     string
	NodeName   string
	Repository string
	Spec       string // cleaned dependency spec as declared
	Version    string // version suffix, "*" when unconstrained
	Stars      int
	Downloads  int64
	Rank       int    // 1-based popularity rank within the inspected set
	ReleasedOn string // latest version date, YYYY-MM-DD or "N/A"
}

// CommentedUsage records a node that carries the inspected dependency only
// inside a comment line.
type CommentedUsage struct {
	NodeID   string
	NodeName string
	Spec     string // the full commented line, "#" included
}

// UsageReport is the result of inspecting one base name across a node set.
//
// A node appears in both Nodes and Commented when it declares the dependency
// on one line and separately keeps a commented copy elsewhere.
type UsageReport struct {
	BaseName  string
	Nodes     []Usage // active matches, most-downloaded first
	Versions  []Freq  // distinct version specs, by frequency desc then spec asc
	Commented []CommentedUsage
}

// TotalNodes returns the active-match count (one per matching line).
func (r *UsageReport) TotalNodes() int { return len(r.Nodes) }

// CommentedCount returns the number of commented-evidence entries.
func (r *UsageReport) CommentedCount() int { return len(r.Commented) }

// Inspect finds every node declaring base (case-insensitive exact match on
// the computed base name), active or commented-out. Flags and blank lines
// never match. The active list is sorted by downloads descending, ties on
// node ID, matching the rank order of [Ranks].
func Inspect(set registry.Set, base string) *UsageReport {
	base = strings.ToLower(strings.TrimSpace(base))
	report := &UsageReport{BaseName: base}
	ranks := Ranks(set)
	versions := make(map[string]int)

	for _, id := range sortedIDs(set) {
		node := set[id]
		for _, raw := range node.Dependencies() {
			line := Classify(raw)

			if line.IsComment() {
				if body := CommentBody(line); body.BaseName != "" && strings.EqualFold(body.BaseName, base) {
					report.Commented = append(report.Commented, CommentedUsage{
						NodeID:   id,
						NodeName: node.DisplayName(),
						Spec:     strings.TrimSpace(line.Raw),
					})
				}
				continue
			}
			if line.Skip || line.IsFlag() || !strings.EqualFold(line.BaseName, base) {
				continue
			}

			version := line.Version()
			versions[version]++
			report.Nodes = append(report.Nodes, Usage{
				NodeID:     id,
				NodeName:   node.DisplayName(),
				Repository: node.RepositoryURL(),
				Spec:       line.Cleaned,
				Version:    version,
				Stars:      node.GithubStars,
				Downloads:  node.Downloads,
				Rank:       ranks[id],
				ReleasedOn: node.ReleasedOn(),
			})
		}
	}

	sort.SliceStable(report.Nodes, func(i, j int) bool {
		if report.Nodes[i].Downloads != report.Nodes[j].Downloads {
			return report.Nodes[i].Downloads > report.Nodes[j].Downloads
		}
		return report.Nodes[i].NodeID < report.Nodes[j].NodeID
	})
	report.Versions = sortFreq(versions)
	return report
}

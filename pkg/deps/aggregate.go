package deps

import (
	"sort"

	"github.com/matzehuels/depscope/pkg/registry"
)

// NodeLines pairs a node with a subset of its classified dependency lines.
type NodeLines struct {
	ID    string
	Name  string
	Lines []Line
}

// Freq is one row of a frequency table.
type Freq struct {
	Name  string
	Count int
}

// Aggregate holds collection-level dependency statistics for one node set.
//
// Usage counts are per qualifying line, not deduplicated per node: a node
// declaring the same base name on two lines counts twice. The WithDeps and
// WithoutDeps partitions are disjoint and together cover every node in the
// input set.
type Aggregate struct {
	// TotalActive counts every non-skip, non-flag line across all nodes.
	TotalActive int

	// Count maps base name to usage count.
	Count map[string]int

	// Versions maps base name to the set of distinct cleaned specs seen.
	Versions map[string]map[string]bool

	// WithDeps lists nodes declaring at least one active dependency or flag,
	// each with its active lines (flags included for display).
	WithDeps []NodeLines

	// WithoutDeps lists IDs of nodes whose every line is skipped, plus
	// nodes with no dependency list at all.
	WithoutDeps []string

	// Commented lists nodes carrying at least one comment line, with those
	// lines. Flags and FlagCount track embedded pip flags; VCS tracks
	// version-control-sourced lines, with VCSCount keyed by kind label.
	Commented []NodeLines
	Flags     []NodeLines
	FlagCount map[string]int
	VCS       []NodeLines
	VCSCount  map[string]int
}

// NewAggregate returns an empty aggregate with all maps allocated.
func NewAggregate() *Aggregate {
	return &Aggregate{
		Count:     make(map[string]int),
		Versions:  make(map[string]map[string]bool),
		FlagCount: make(map[string]int),
		VCSCount:  make(map[string]int),
	}
}

// Compile classifies every dependency line of every node and accumulates the
// collection-level tables. It never fails: nodes with missing or empty
// dependency lists land in the WithoutDeps partition.
//
// Nodes are visited in sorted-ID order so repeated runs over the same set
// produce identical slices.
func Compile(set registry.Set) *Aggregate {
	agg := NewAggregate()

	for _, id := range sortedIDs(set) {
		node := set[id]
		deps := node.Dependencies()
		if len(deps) == 0 {
			agg.WithoutDeps = append(agg.WithoutDeps, id)
			continue
		}

		var active, commented, flags, vcs []Line
		for _, raw := range deps {
			line := Classify(raw)
			switch {
			case line.IsComment():
				commented = append(commented, line)
			case line.Skip:
				// blank after inline-comment stripping
			case line.IsFlag():
				flags = append(flags, line)
				agg.FlagCount[line.Cleaned]++
			default:
				active = append(active, line)
				agg.TotalActive++
				agg.Count[line.BaseName]++
				if agg.Versions[line.BaseName] == nil {
					agg.Versions[line.BaseName] = make(map[string]bool)
				}
				agg.Versions[line.BaseName][line.Cleaned] = true
				if line.IsVCS() {
					vcs = append(vcs, line)
					agg.VCSCount[line.Kind.String()]++
				}
			}
		}

		name := node.DisplayName()
		if len(commented) > 0 {
			agg.Commented = append(agg.Commented, NodeLines{ID: id, Name: name, Lines: commented})
		}
		if len(flags) > 0 {
			agg.Flags = append(agg.Flags, NodeLines{ID: id, Name: name, Lines: flags})
		}
		if len(vcs) > 0 {
			agg.VCS = append(agg.VCS, NodeLines{ID: id, Name: name, Lines: vcs})
		}

		// Flags alone still count as "has dependencies": they belong to the
		// node's active list for display even though they feed no base name.
		if len(active) > 0 || len(flags) > 0 {
			agg.WithDeps = append(agg.WithDeps, NodeLines{ID: id, Name: name, Lines: append(active, flags...)})
		} else {
			agg.WithoutDeps = append(agg.WithoutDeps, id)
		}
	}

	return agg
}

// BaseNames returns the distinct base names seen, sorted.
func (a *Aggregate) BaseNames() []string {
	names := make([]string, 0, len(a.Count))
	for name := range a.Count {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ByFrequency returns the usage table sorted descending by count.
// Ties break lexicographically on base name so output is reproducible.
func (a *Aggregate) ByFrequency() []Freq {
	return sortFreq(a.Count)
}

// FlagsByFrequency returns the pip-flag table sorted like [Aggregate.ByFrequency].
func (a *Aggregate) FlagsByFrequency() []Freq {
	return sortFreq(a.FlagCount)
}

// DistinctVersions returns the distinct cleaned specs recorded for a base
// name, sorted. Returns nil for unknown names.
func (a *Aggregate) DistinctVersions(base string) []string {
	set := a.Versions[base]
	if set == nil {
		return nil
	}
	specs := make([]string, 0, len(set))
	for s := range set {
		specs = append(specs, s)
	}
	sort.Strings(specs)
	return specs
}

func sortFreq(count map[string]int) []Freq {
	rows := make([]Freq, 0, len(count))
	for name, n := range count {
		rows = append(rows, Freq{Name: name, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}

func sortedIDs(set registry.Set) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

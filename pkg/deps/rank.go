package deps

import (
	"sort"

	"github.com/matzehuels/depscope/pkg/registry"
)

// Ranks assigns a 1-based popularity rank to every node in the set,
// descending by download count (missing counts rank as 0). Ties break on
// node ID ascending so ranks are deterministic across runs.
//
// Ranks are always relative to the set passed in; recompute after any
// filtering or refresh. Callers that need ranks against the unfiltered
// catalog should pass that catalog here and keep the result alongside the
// working set.
func Ranks(set registry.Set) map[string]int {
	ids := sortedIDs(set)
	sort.SliceStable(ids, func(i, j int) bool {
		a, b := set[ids[i]].Downloads, set[ids[j]].Downloads
		if a != b {
			return a > b
		}
		return ids[i] < ids[j]
	})

	ranks := make(map[string]int, len(ids))
	for i, id := range ids {
		ranks[id] = i + 1
	}
	return ranks
}

// TopN returns a new set holding the n most-downloaded nodes (all of them if
// n exceeds the set size, the original set if n <= 0). Used to pre-slice a
// working set before running queries.
func TopN(set registry.Set, n int) registry.Set {
	if n <= 0 || n >= len(set) {
		return set
	}
	ids := sortedIDs(set)
	sort.SliceStable(ids, func(i, j int) bool {
		a, b := set[ids[i]].Downloads, set[ids[j]].Downloads
		if a != b {
			return a > b
		}
		return ids[i] < ids[j]
	})

	top := make(registry.Set, n)
	for _, id := range ids[:n] {
		top[id] = set[id]
	}
	return top
}

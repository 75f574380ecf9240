// Package series computes numeric series over a node set for the
// presentation layer. Rendering is someone else's job: the output here is
// plain points, exportable as CSV or JSON.
package series

import (
	"sort"

	"github.com/matzehuels/depscope/pkg/deps"
	"github.com/matzehuels/depscope/pkg/registry"
)

// Point is one step of the cumulative-dependency curve: after adding the
// node at this popularity rank, Cumulative distinct base names have been
// seen in total, NodeDeps of them declared by this node alone.
type Point struct {
	Rank       int    `json:"rank"`
	NodeID     string `json:"node_id"`
	NodeName   string `json:"node_name"`
	NodeDeps   int    `json:"node_deps"`
	Cumulative int    `json:"cumulative"`
}

// Cumulative walks the set in descending download order and tracks how the
// pool of distinct base names grows as less popular nodes are added.
// Comments, flags, and blank lines contribute nothing; a node whose every
// dependency is already known adds a flat step.
func Cumulative(set registry.Set) []Point {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.SliceStable(ids, func(i, j int) bool {
		a, b := set[ids[i]].Downloads, set[ids[j]].Downloads
		if a != b {
			return a > b
		}
		return ids[i] < ids[j]
	})

	points := make([]Point, 0, len(ids))
	seen := make(map[string]bool)

	for i, id := range ids {
		node := set[id]
		nodeSeen := make(map[string]bool)
		for _, raw := range node.Dependencies() {
			line := deps.Classify(raw)
			if line.Skip || line.IsFlag() || line.BaseName == "" {
				continue
			}
			nodeSeen[line.BaseName] = true
			seen[line.BaseName] = true
		}

		points = append(points, Point{
			Rank:       i + 1,
			NodeID:     id,
			NodeName:   node.DisplayName(),
			NodeDeps:   len(nodeSeen),
			Cumulative: len(seen),
		})
	}
	return points
}

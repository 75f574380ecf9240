// Package depgraph renders the bipartite usage graph between the most
// popular nodes and the dependencies they declare.
package depgraph

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/depscope/pkg/deps"
	"github.com/matzehuels/depscope/pkg/registry"
)

// Options configures usage-graph rendering.
type Options struct {
	// TopN limits the graph to the N most downloaded nodes.
	// Zero means every node in the set.
	TopN int
	// MinUsage hides dependencies declared by fewer than this many of the
	// selected nodes. Zero keeps everything.
	MinUsage int
}

// ToDOT converts a node set to Graphviz DOT format. Package nodes are drawn
// as rounded boxes, dependencies as ellipses labelled with their usage count,
// and an edge connects each package to every active dependency it declares.
// The resulting DOT string can be rendered using [RenderSVG].
func ToDOT(set registry.Set, opts Options) string {
	selected := set
	if opts.TopN > 0 {
		selected = deps.TopN(set, opts.TopN)
	}

	ids := make([]string, 0, len(selected))
	for id := range selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	edges := make(map[string][]string, len(ids))
	usage := make(map[string]int)
	for _, id := range ids {
		seen := make(map[string]bool)
		for _, raw := range selected[id].Dependencies() {
			line := deps.Classify(raw)
			if line.Skip || line.IsFlag() || line.BaseName == "" || seen[line.BaseName] {
				continue
			}
			seen[line.BaseName] = true
			edges[id] = append(edges[id], line.BaseName)
			usage[line.BaseName]++
		}
	}

	keep := make(map[string]bool, len(usage))
	for name, count := range usage {
		if count >= opts.MinUsage {
			keep[name] = true
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=1.0;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, id := range ids {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", "node:"+id, selected[id].DisplayName())
	}

	buf.WriteString("\n")
	for _, name := range sortedKeys(keep) {
		label := fmt.Sprintf("%s\n%d", name, usage[name])
		fmt.Fprintf(&buf, "  %q [label=%q, shape=ellipse, fillcolor=lightgrey];\n", "dep:"+name, label)
	}

	buf.WriteString("\n")
	for _, id := range ids {
		for _, name := range edges[id] {
			if !keep[name] {
				continue
			}
			fmt.Fprintf(&buf, "  %q -> %q;\n", "node:"+id, "dep:"+name)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

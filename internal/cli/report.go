package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/depscope/pkg/deps"
)

var (
	tableHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	tableBorderStyle = lipgloss.NewStyle().Foreground(colorDim)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return tableHeaderStyle
			}
			return lipgloss.NewStyle()
		})
}

// renderSummary formats the collection-level aggregate as a report: headline
// counts followed by the most used dependencies and pip flags.
func renderSummary(agg *deps.Aggregate, totalNodes, topN int) string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Dependency Summary"))
	b.WriteString("\n\n")

	write := func(label string, n int) {
		b.WriteString(fmt.Sprintf("%-28s %s\n", label, StyleNumber.Render(strconv.Itoa(n))))
	}
	write("Nodes", totalNodes)
	write("Nodes with dependencies", len(agg.WithDeps))
	write("Nodes without dependencies", len(agg.WithoutDeps))
	write("Active dependency lines", agg.TotalActive)
	write("Distinct dependencies", len(agg.Count))
	write("Nodes with commented lines", len(agg.Commented))
	write("Nodes with pip flags", len(agg.Flags))
	write("Nodes with VCS sources", len(agg.VCS))
	b.WriteString("\n")

	freq := agg.ByFrequency()
	if topN > 0 && topN < len(freq) {
		freq = freq[:topN]
	}
	if len(freq) > 0 {
		t := newTable("#", "Dependency", "Nodes", "Versions")
		for i, f := range freq {
			t.Row(
				strconv.Itoa(i+1),
				f.Name,
				strconv.Itoa(f.Count),
				strconv.Itoa(len(agg.DistinctVersions(f.Name))),
			)
		}
		b.WriteString(t.Render())
		b.WriteString("\n")
	}

	if flags := agg.FlagsByFrequency(); len(flags) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleTitle.Render("Pip Flags"))
		b.WriteString("\n")
		t := newTable("Flag", "Nodes")
		for _, f := range flags {
			t.Row(f.Name, strconv.Itoa(f.Count))
		}
		b.WriteString(t.Render())
		b.WriteString("\n")
	}

	return b.String()
}

// renderUsageReport formats a single-dependency report: every node that
// declares the base name, the declared version histogram, and any commented
// mentions.
func renderUsageReport(r *deps.UsageReport) string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(r.BaseName))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d nodes, %d commented", r.TotalNodes(), r.CommentedCount())))
	b.WriteString("\n\n")

	if len(r.Nodes) > 0 {
		t := newTable("Rank", "Node", "Spec", "Downloads", "Stars", "Released")
		for _, u := range r.Nodes {
			t.Row(
				strconv.Itoa(u.Rank),
				u.NodeName,
				u.Spec,
				strconv.FormatInt(u.Downloads, 10),
				strconv.Itoa(u.Stars),
				u.ReleasedOn,
			)
		}
		b.WriteString(t.Render())
		b.WriteString("\n")
	}

	if len(r.Versions) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleTitle.Render("Declared Versions"))
		b.WriteString("\n")
		for _, v := range r.Versions {
			b.WriteString(fmt.Sprintf("  %-20s %s\n", v.Name, StyleNumber.Render(strconv.Itoa(v.Count))))
		}
	}

	if len(r.Commented) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleTitle.Render("Commented Mentions"))
		b.WriteString("\n")
		for _, c := range r.Commented {
			b.WriteString(fmt.Sprintf("  %-30s %s\n", c.NodeName, StyleDim.Render(c.Spec)))
		}
	}

	return b.String()
}

// suggest returns base names resembling a query that matched nothing: prefix
// matches first, then substring matches, capped at limit.
func suggest(names []string, query string, limit int) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || limit <= 0 {
		return nil
	}

	var prefix, substr []string
	for _, name := range names {
		switch {
		case strings.HasPrefix(name, q):
			prefix = append(prefix, name)
		case strings.Contains(name, q):
			substr = append(substr, name)
		}
	}

	out := append(prefix, substr...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

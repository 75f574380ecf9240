package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depscope/pkg/deps"
	"github.com/matzehuels/depscope/pkg/registry"
	"github.com/matzehuels/depscope/pkg/snapshot"
)

const defaultTopN = 25

// askCommand creates the ask command for interactive dependency queries.
func (c *CLI) askCommand() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "ask [dependency]",
		Short: "Ask which nodes declare a dependency",
		Long: `Ask which nodes declare a dependency and at which versions.

With an argument the answer is printed once. Without one, an interactive
prompt accepts queries in a loop. Queries match base names case
insensitively; glob patterns (*, ?, [..]) expand to every matching
dependency.

Interactive commands:
  list        list every known base name
  top [N]     show the N most declared dependencies
  &save       save the previous answer as a snapshot
  /stats      print the aggregate summary
  /update     re-download the node catalog
  /graph      render the usage graph to an SVG file
  /quit       leave the prompt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := c.loadSet()
			if err != nil {
				return err
			}

			s := &askSession{
				cli: c,
				set: set,
				agg: deps.Compile(set),
				out: cmd.OutOrStdout(),
			}

			if len(args) == 1 && !interactive {
				return s.answer(cmd.Context(), args[0])
			}
			return s.loop(cmd.Context(), cmd.InOrStdin())
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "stay in the prompt after answering")

	return cmd
}

// askSession holds the state of one interactive query session.
type askSession struct {
	cli *CLI
	set registry.Set
	agg *deps.Aggregate
	out io.Writer

	lastQuery string
	lastBody  string
}

func (s *askSession) loop(ctx context.Context, in io.Reader) error {
	fmt.Fprintln(s.out, StyleDim.Render("Type a dependency name, a glob pattern, or 'list'. /quit to exit."))

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, stylePrompt.Render("depscope> "))
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case line == "/quit" || line == "quit" || line == "exit":
			return nil
		case line == "list":
			s.printList()
		case line == "top" || strings.HasPrefix(line, "top "):
			s.printTop(line)
		case strings.HasPrefix(line, "&top"):
			s.applyTop(line)
		case line == "&save":
			s.save(ctx)
		case line == "/stats":
			fmt.Fprintln(s.out, renderSummary(s.agg, len(s.set), defaultTopN))
		case line == "/update":
			if err := s.update(ctx); err != nil {
				printError("Update failed: %v", err)
			}
		case line == "/graph":
			if err := s.graph(ctx); err != nil {
				printError("Graph rendering failed: %v", err)
			}
		default:
			if err := s.answer(ctx, line); err != nil {
				printError("%v", err)
			}
		}
	}
}

// answer resolves one query: a glob pattern expands to its matches, a plain
// name goes straight to the single-dependency report.
func (s *askSession) answer(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)

	if deps.IsPattern(query) {
		return s.answerPattern(query)
	}

	report := deps.Inspect(s.set, query)
	if report.TotalNodes() == 0 && report.CommentedCount() == 0 {
		s.printSuggestions(query)
		return nil
	}

	body := renderUsageReport(report)
	fmt.Fprintln(s.out, body)
	s.lastQuery = query
	s.lastBody = body
	return nil
}

func (s *askSession) answerPattern(pattern string) error {
	matches := deps.ResolveWildcard(s.set, pattern)
	if len(matches) == 0 {
		printWarning("Nothing matches %q", pattern)
		return nil
	}

	names := make([]string, 0, len(matches))
	for name := range matches {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := matches[names[i]].TotalNodes(), matches[names[j]].TotalNodes()
		if a != b {
			return a > b
		}
		return names[i] < names[j]
	})

	if len(names) == 1 {
		body := renderUsageReport(matches[names[0]])
		fmt.Fprintln(s.out, body)
		s.lastQuery = names[0]
		s.lastBody = body
		return nil
	}

	items := make([]DepItem, len(names))
	for i, name := range names {
		items[i] = DepItem{Name: name, Count: matches[name].TotalNodes()}
	}

	chosen, err := pickDependency(fmt.Sprintf("%d matches for %s", len(names), pattern), items)
	if err != nil || chosen == "" {
		return err
	}

	body := renderUsageReport(matches[chosen])
	fmt.Fprintln(s.out, body)
	s.lastQuery = chosen
	s.lastBody = body
	return nil
}

func (s *askSession) printList() {
	names := s.agg.BaseNames()
	for _, name := range names {
		fmt.Fprintln(s.out, name)
	}
	printDetail("%d distinct dependencies", len(names))
}

// printTop accepts "top" and "top N" and prints the frequency table head.
func (s *askSession) printTop(line string) {
	n := defaultTopN
	fields := strings.Fields(line)
	if len(fields) == 2 {
		if parsed, err := strconv.Atoi(fields[1]); err == nil && parsed > 0 {
			n = parsed
		}
	}

	freq := s.agg.ByFrequency()
	if n < len(freq) {
		freq = freq[:n]
	}
	for i, f := range freq {
		fmt.Fprintf(s.out, "%3d. %-30s %s\n", i+1, f.Name, StyleNumber.Render(strconv.Itoa(f.Count)))
	}
}

// applyTop narrows the working set to the N most downloaded nodes. Every
// later query, rank, and /stats answer is relative to that slice until
// /update rebuilds the full catalog.
func (s *askSession) applyTop(line string) {
	fields := strings.Fields(strings.TrimPrefix(line, "&"))
	if len(fields) != 2 {
		printWarning("Usage: &top N")
		return
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil || n <= 0 {
		printWarning("Usage: &top N")
		return
	}

	s.set = deps.TopN(s.set, n)
	s.agg = deps.Compile(s.set)
	printInfo("Working set narrowed to the %d most downloaded nodes", len(s.set))
	printDetail("/update restores the full catalog")
}

func (s *askSession) printSuggestions(query string) {
	printWarning("No dependency named %q", query)
	if hints := suggest(s.agg.BaseNames(), query, 8); len(hints) > 0 {
		printDetail("Did you mean: %s", strings.Join(hints, ", "))
	}
}

func (s *askSession) save(ctx context.Context) {
	if s.lastBody == "" {
		printWarning("Nothing to save yet")
		return
	}

	store, err := snapshot.NewFileStore("")
	if err != nil {
		printError("Open snapshot store: %v", err)
		return
	}
	defer store.Close()

	snap := snapshot.New(s.lastQuery, s.lastBody)
	if err := store.Save(ctx, snap); err != nil {
		printError("Save snapshot: %v", err)
		return
	}
	printSuccess("Saved %s", snap.Name)
	printFile(store.Path())
}

// update re-downloads the catalog and recompiles the session state in place.
func (s *askSession) update(ctx context.Context) error {
	if err := s.cli.runUpdate(ctx, s.cli.dataPath(), false, true); err != nil {
		return err
	}
	set, err := s.cli.loadSet()
	if err != nil {
		return err
	}
	s.set = set
	s.agg = deps.Compile(set)
	return nil
}

func (s *askSession) graph(ctx context.Context) error {
	return s.cli.runGraph(ctx, s.set, graphParams{
		topN:   defaultGraphTopN,
		output: "depgraph.svg",
	})
}

// Package attrs populates nodes with cross-cutting attribute evidence from
// external tabular feeds.
//
// A feed is a CSV export of repository scans: each row names a repository
// URL and a file path found in it (e.g. example workflows, install scripts).
// Attribute names are whatever feeds exist — they are discovered data, not a
// fixed enum. Absence of an attribute on a node means "no evidence", never
// "attribute is false".
package attrs

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depscope/pkg/registry"
)

// Feed describes one attribute source.
type Feed struct {
	// Name is the attribute under which evidence is stored.
	Name string `toml:"name"`

	// Path is the CSV file: header row first, then rows of
	// (ignored, repositoryURL, ignored, filePath).
	Path string `toml:"path"`

	// Extension keeps only rows whose filePath ends with it (e.g. ".json").
	// Empty keeps every row.
	Extension string `toml:"extension"`

	// Fuzzy enables the trailing-path-segment fallback for nodes whose
	// normalized repository URL has no exact feed match.
	Fuzzy bool `toml:"fuzzy"`
}

// Result reports what one feed load did.
type Result struct {
	Feed      string
	Rows      int // data rows read (header excluded)
	Kept      int // rows surviving the extension filter
	Matched   int // nodes that received evidence via exact URL match
	FuzzyHits int // nodes matched by repo-name fallback
	Ambiguous int // fuzzy matches where several repos shared the name
}

// Load reads every feed and attaches evidence to the nodes in place.
// Results come back in feed order. A feed that cannot be read fails the
// whole load; matching itself never fails.
func Load(set registry.Set, feeds []Feed, logger *log.Logger) ([]Result, error) {
	if logger == nil {
		logger = log.Default()
	}

	results := make([]Result, 0, len(feeds))
	for _, feed := range feeds {
		res, err := loadFeed(set, feed, logger)
		if err != nil {
			return results, fmt.Errorf("feed %s: %w", feed.Name, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func loadFeed(set registry.Set, feed Feed, logger *log.Logger) (Result, error) {
	f, err := os.Open(feed.Path)
	if err != nil {
		return Result{Feed: feed.Name}, err
	}
	defer f.Close()
	return readFeed(set, feed, f, logger)
}

func readFeed(set registry.Set, feed Feed, r io.Reader, logger *log.Logger) (Result, error) {
	res := Result{Feed: feed.Name}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	byURL := make(map[string][]string)
	header := true
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return res, err
		}
		if header {
			header = false
			continue
		}
		res.Rows++
		if len(row) < 4 {
			continue
		}

		repoURL, filePath := row[1], row[3]
		if feed.Extension != "" && !strings.HasSuffix(filePath, feed.Extension) {
			continue
		}
		res.Kept++

		key := NormalizeRepoURL(repoURL)
		if key == "" {
			continue
		}
		byURL[key] = append(byURL[key], filePath)
	}

	byName := make(map[string][]string)
	if feed.Fuzzy {
		for url := range byURL {
			name := trailingSegment(url)
			byName[name] = append(byName[name], url)
		}
		for _, urls := range byName {
			sort.Strings(urls)
		}
	}

	for _, id := range sortedIDs(set) {
		node := set[id]
		key := NormalizeRepoURL(node.Repository)
		if key == "" {
			continue
		}

		if paths, ok := byURL[key]; ok {
			node.AddAttribute(feed.Name, paths)
			res.Matched++
			continue
		}
		if !feed.Fuzzy {
			continue
		}

		// Fallback: match by repo name only. First candidate in sorted
		// order wins; collisions are counted so callers can see how often
		// the guess was ambiguous.
		candidates := byName[trailingSegment(key)]
		if len(candidates) == 0 {
			continue
		}
		if len(candidates) > 1 {
			res.Ambiguous++
			logger.Warn("ambiguous repo name match",
				"feed", feed.Name, "node", id, "candidates", len(candidates))
		}
		node.AddAttribute(feed.Name, byURL[candidates[0]])
		res.FuzzyHits++
	}

	return res, nil
}

// StatCount returns how many evidence values the node has for the
// attribute, 0 when absent.
func StatCount(node *registry.Node, attribute string) int {
	if node == nil {
		return 0
	}
	return len(node.Attributes[attribute])
}

// AttributeNames returns every attribute name seen across the set, sorted.
func AttributeNames(set registry.Set) []string {
	seen := make(map[string]bool)
	for _, node := range set {
		for name := range node.Attributes {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NormalizeRepoURL reduces a repository URL to a comparable form:
// lowercased, scheme and leading "www." stripped, trailing slash and
// ".git" suffix removed. Returns empty string for empty input.
func NormalizeRepoURL(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	s = strings.TrimPrefix(s, "www.")
	s = strings.TrimSuffix(s, "/")
	return strings.TrimSuffix(s, ".git")
}

func trailingSegment(url string) string {
	if i := strings.LastIndexByte(url, '/'); i >= 0 {
		return url[i+1:]
	}
	return url
}

func sortedIDs(set registry.Set) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

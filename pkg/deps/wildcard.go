package deps

import (
	"path"
	"sort"
	"strings"

	"github.com/matzehuels/depscope/pkg/registry"
)

// IsPattern reports whether q contains shell-glob metacharacters.
func IsPattern(q string) bool {
	return strings.ContainsAny(q, "*?[")
}

// ResolveWildcard expands a shell-glob pattern (*, ?, [...]) against the
// universe of base names declared across the set and runs [Inspect] for each
// match, keyed by base name.
//
// The universe contains only active dependencies: flags, blank lines, and
// comments never seed a candidate. Matching is case-insensitive (the pattern
// is lowercased; base names already are, except git+ URLs which are matched
// against their lowercased form). A pattern matching nothing yields an empty
// map, not an error; a malformed pattern (unterminated character class)
// matches nothing.
func ResolveWildcard(set registry.Set, pattern string) map[string]*UsageReport {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	matches := make(map[string]*UsageReport)

	for _, base := range universe(set) {
		ok, err := path.Match(pattern, strings.ToLower(base))
		if err != nil {
			return matches
		}
		if ok {
			matches[base] = Inspect(set, base)
		}
	}
	return matches
}

// universe collects the distinct base names of every active, non-flag line,
// sorted.
func universe(set registry.Set) []string {
	seen := make(map[string]bool)
	for _, node := range set {
		for _, raw := range node.Dependencies() {
			line := Classify(raw)
			if line.Skip || line.IsFlag() || line.BaseName == "" {
				continue
			}
			seen[line.BaseName] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Package registry provides the node catalog model and the HTTP client
// used to download it.
//
// A node is one catalogued package-like record: display metadata, popularity
// counters, and a latest-version sub-record carrying the raw dependency
// lines declared by that node. Node sets are plain maps keyed by node ID and
// are loaded once per session, either from a nodes.json file or from the
// remote registry API.
package registry

import "strings"

// Node is one package record from the registry.
//
// Optional fields degrade to zero values: a missing name renders as "N/A",
// missing counters as 0, and a missing latest version means the node has no
// dependency information at all.
type Node struct {
	ID            string              `json:"id"`
	Name          string              `json:"name,omitempty"`
	Description   string              `json:"description,omitempty"`
	Repository    string              `json:"repository,omitempty"`
	Downloads     int64               `json:"downloads,omitempty"`
	GithubStars   int                 `json:"github_stars,omitempty"`
	LatestVersion *Version            `json:"latest_version,omitempty"`
	Attributes    map[string][]string `json:"attributes,omitempty"`
}

// Version is the latest-version sub-record of a node.
type Version struct {
	Version      string   `json:"version,omitempty"`
	CreatedAt    string   `json:"createdAt,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
}

// Set is a working node collection keyed by node ID.
type Set map[string]*Node

// DisplayName returns the node name, or "N/A" when unset.
func (n *Node) DisplayName() string {
	if n == nil || n.Name == "" {
		return "N/A"
	}
	return n.Name
}

// RepositoryURL returns the repository, or "N/A" when unset.
func (n *Node) RepositoryURL() string {
	if n == nil || n.Repository == "" {
		return "N/A"
	}
	return n.Repository
}

// Dependencies returns the raw dependency lines of the latest version.
// Returns nil for nodes without a latest version.
func (n *Node) Dependencies() []string {
	if n == nil || n.LatestVersion == nil {
		return nil
	}
	return n.LatestVersion.Dependencies
}

// ReleasedOn returns the latest version's creation date truncated to
// YYYY-MM-DD, or "N/A" when unknown.
func (n *Node) ReleasedOn() string {
	if n == nil || n.LatestVersion == nil || n.LatestVersion.CreatedAt == "" {
		return "N/A"
	}
	if d := n.LatestVersion.CreatedAt; len(d) > 10 {
		return d[:10]
	}
	return n.LatestVersion.CreatedAt
}

// AddAttribute appends evidence values under the named attribute,
// keeping only values not already recorded.
func (n *Node) AddAttribute(name string, values []string) {
	if n.Attributes == nil {
		n.Attributes = make(map[string][]string)
	}
	seen := make(map[string]bool, len(n.Attributes[name]))
	for _, v := range n.Attributes[name] {
		seen[v] = true
	}
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" && !seen[v] {
			seen[v] = true
			n.Attributes[name] = append(n.Attributes[name], v)
		}
	}
}

// OverrideDependencies replaces the node's dependency list in place,
// creating the latest-version record if the node had none. This is the only
// mutation point for a loaded node set; callers must not run queries against
// the same set concurrently with an override.
func (n *Node) OverrideDependencies(deps []string) {
	if n.LatestVersion == nil {
		n.LatestVersion = &Version{}
	}
	n.LatestVersion.Dependencies = deps
}

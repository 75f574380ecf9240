package registry

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
)

// file is the on-disk nodes.json envelope: {"nodes": [...]}.
type file struct {
	Total int     `json:"total,omitempty"`
	Nodes []*Node `json:"nodes"`
}

// Read decodes a nodes.json document from r into a Set keyed by node ID.
//
// Records without an ID are skipped rather than rejected; the registry has
// shipped such rows before and a partial catalog is still usable. Duplicate
// IDs keep the last occurrence.
func Read(r io.Reader) (Set, error) {
	var doc file
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	set := make(Set, len(doc.Nodes))
	for _, n := range doc.Nodes {
		if n == nil || n.ID == "" {
			continue
		}
		set[n.ID] = n
	}
	return set, nil
}

// Load reads a nodes.json file at path and returns the decoded Set.
// The error wraps the underlying cause with the file path for context.
func Load(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Write encodes the node set as a nodes.json document on w.
// Output can be re-imported with [Read] for round-trip processing.
func Write(set Set, w io.Writer) error {
	doc := file{Total: len(set), Nodes: make([]*Node, 0, len(set))}
	for _, id := range slices.Sorted(maps.Keys(set)) {
		doc.Nodes = append(doc.Nodes, set[id])
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Save writes the node set to a nodes.json file at path.
func Save(set Set, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(set, f)
}

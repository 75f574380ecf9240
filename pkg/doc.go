// Package pkg provides the core libraries for depscope dependency analysis.
//
// # Overview
//
// Depscope downloads the node catalog of a package registry, normalizes the
// raw requirement-style dependency lines each node declares, and answers
// questions about them. The pkg directory is organized as:
//
//  1. [deps] - Classification and aggregation engine (the domain core)
//  2. [registry] - Node model, catalog persistence, and the API client
//  3. [attrs] - External CSV statistics attached to nodes
//  4. [series] - Cumulative dependency curve over popularity rank
//  5. [render/depgraph] - Graphviz usage-graph rendering
//  6. [snapshot] - Saved query reports
//  7. [cache], [httputil], [errors], [buildinfo] - Shared infrastructure
//
// # Architecture
//
// The typical data flow through depscope:
//
//	Registry API
//	     ↓
//	[registry] client (paged fetch, cached, retried)
//	     ↓
//	[deps] Classify / Compile (normalize every dependency line)
//	     ↓
//	[deps] Inspect / ResolveWildcard, [series], [render/depgraph]
//	     ↓
//	CLI reports, CSV/JSON exports, SVG graphs
//
// # Quick Start
//
// Load a catalog and inspect one dependency:
//
//	import (
//	    "github.com/matzehuels/depscope/pkg/deps"
//	    "github.com/matzehuels/depscope/pkg/registry"
//	)
//
//	set, _ := registry.Load("nodes.json")
//	agg := deps.Compile(set)
//	report := deps.Inspect(set, "torch")
//
// [deps]: https://pkg.go.dev/github.com/matzehuels/depscope/pkg/deps
// [registry]: https://pkg.go.dev/github.com/matzehuels/depscope/pkg/registry
// [attrs]: https://pkg.go.dev/github.com/matzehuels/depscope/pkg/attrs
// [series]: https://pkg.go.dev/github.com/matzehuels/depscope/pkg/series
// [render/depgraph]: https://pkg.go.dev/github.com/matzehuels/depscope/pkg/render/depgraph
// [snapshot]: https://pkg.go.dev/github.com/matzehuels/depscope/pkg/snapshot
// [cache]: https://pkg.go.dev/github.com/matzehuels/depscope/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/matzehuels/depscope/pkg/httputil
// [errors]: https://pkg.go.dev/github.com/matzehuels/depscope/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/depscope/pkg/buildinfo
package pkg

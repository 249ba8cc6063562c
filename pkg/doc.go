// Package pkg provides the libraries behind gdlkit, a toolkit for building
// graph documents in the Graph Description Language (GDL) read by VCG-style
// graph viewers.
//
// # Overview
//
// A GDL document is a tree: a graph holds nodes, edges and nested
// subgraphs, and every entity carries a fixed set of optional attributes.
// The viewer computes the layout; gdlkit only models the tree and writes it
// out. The pkg directory is organized into three areas:
//
//  1. [gdl] - The document model and its serializer
//  2. [io] - Declarative graph descriptions (JSON, YAML, TOML)
//  3. [pipeline] - Orchestration (describe → build → dump → preview)
//
// # Architecture
//
// The typical data flow through gdlkit:
//
//	Description file / URL / HTTP request body
//	         ↓
//	    [io] package (decode + validate the description)
//	         ↓
//	    [gdl] package (build the graph tree, write GDL text)
//	         ↓
//	    [render/nodelink] package (optional Graphviz preview)
//	         ↓
//	    .vcg / DOT / SVG / PDF / PNG output
//
// # Quick Start
//
// Build a graph by hand and write it:
//
//	b := gdl.NewBuilder()
//	g := b.NewGraph("main")
//	entry := g.NewNode("n1")
//	entry.SetLabel("Entry")
//	loop := g.NewAnonymousSubgraph()
//	e := g.NewEdge("n1", loop.Title())
//	e.SetKind(gdl.KindBackEdge)
//	if err := gdl.Dump(os.Stdout, g); err != nil {
//	    log.Fatal(err)
//	}
//
// Or start from a description file:
//
//	desc, _ := gdlio.Import("callgraph.yaml")
//	g, _ := gdlio.Build(desc, gdl.NewBuilder())
//	defer g.Free()
//
// # Main Packages
//
// ## Document Model
//
// [gdl] - Graphs, nodes and edges with per-attribute "set" flags, a 256-slot
// colour table, builder-scoped anonymous titles and the exact GDL writer.
//
// [io] - Description types and their JSON, YAML and TOML codecs. [io.Build]
// turns a description into a graph tree and [io.Describe] goes the other way.
//
// ## Previews
//
// [render/nodelink] - Converts a GDL tree to Graphviz DOT and renders SVG
// with Graphviz compiled to WebAssembly.
//
// [render] - Converts SVG to PDF and PNG.
//
// ## Infrastructure
//
// [pipeline] - The dump and render pipeline used by the CLI and the HTTP
// API, so both produce identical documents for the same description.
//
// [cache] - Content-addressed artifact cache with file, Redis and no-op
// backends.
//
// [store] - Document store for saved GDL documents, backed by memory, the
// filesystem or MongoDB.
//
// [httputil] - Fetching descriptions over HTTP with retries and an on-disk
// response cache.
//
// [observability] - Hooks for build, dump, render and cache events.
//
// [errors] - Coded errors shared by the CLI and the HTTP API.
//
// [buildinfo] - Version information set at link time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/gdl/...                # Specific package
//	go test -run Example                 # Examples only
//	GDLKIT_TEST_REDIS_URL=redis://localhost:6379 go test ./pkg/cache/...
//	GDLKIT_TEST_MONGO_URI=mongodb://localhost:27017 go test ./pkg/store/...
//
// [gdl]: https://pkg.go.dev/github.com/matzehuels/gdlkit/pkg/gdl
// [io]: https://pkg.go.dev/github.com/matzehuels/gdlkit/pkg/io
// [io.Build]: https://pkg.go.dev/github.com/matzehuels/gdlkit/pkg/io#Build
// [io.Describe]: https://pkg.go.dev/github.com/matzehuels/gdlkit/pkg/io#Describe
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/gdlkit/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/matzehuels/gdlkit/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/gdlkit/pkg/render/nodelink
// [cache]: https://pkg.go.dev/github.com/matzehuels/gdlkit/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/gdlkit/pkg/store
// [httputil]: https://pkg.go.dev/github.com/matzehuels/gdlkit/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/matzehuels/gdlkit/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/gdlkit/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/gdlkit/pkg/buildinfo
package pkg

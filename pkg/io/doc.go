// Package io reads and writes graph descriptions: a declarative JSON, YAML
// or TOML form of a [gdl.Graph] tree.
//
// # Format
//
// A description mirrors the document model. Keys are the attribute keywords
// of the output format; "node" and "edge" hold the graph-level node and edge
// defaults; "graphs" holds nested subgraphs:
//
//	title: main
//	orientation: left_to_right
//	node:
//	  shape: box
//	colors:
//	  - {index: 32, r: 240, g: 240, b: 240}
//	nodes:
//	  - {title: n1, label: Entry}
//	graphs:
//	  - title: main.0
//	    nodes:
//	      - {label: Exit}
//	edges:
//	  - {source: n1, target: main.0, kind: backedge}
//
// An attribute that is absent stays unset in the built graph and is not
// written. An attribute given as 0 or "" is set and is written. Entities
// without a title get a generated "anonymous.N" title from the builder
// passed to [Build].
//
// # Import
//
// [Import] reads a file and picks the decoder by extension; [ReadJSON],
// [ReadYAML] and [ReadTOML] decode from any reader. Decoders reject unknown
// keys. Decode failures carry the INVALID_FORMAT code from pkg/errors.
//
// # Build
//
// [Build] validates a description (titles, colour indices, edge kinds, bare
// words) and constructs the tree. Validation failures carry the
// INVALID_INPUT code and the position of the offending entry, so a caller
// handing untrusted input to Build never triggers a panic in pkg/gdl.
//
// # Export
//
// [Describe] turns a tree back into a description; [WriteJSON], [WriteYAML],
// [WriteTOML] and [Export] encode it. Build followed by Describe returns the
// original description with every title filled in.
//
// [gdl.Graph]: github.com/matzehuels/gdlkit/pkg/gdl.Graph
package io

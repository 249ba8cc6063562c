// Package gdl builds documents in the graph description language read by
// VCG-style graph viewers, and writes them out as text.
//
// # Overview
//
// A document is a tree of [Graph] values. Each graph holds an ordered list
// of [Node] values, an ordered list of [Edge] values and an ordered list of
// nested subgraphs, which are graphs themselves. The tree is built up by a
// caller, written once with [Graph.WriteTo] or [Dump], and thrown away.
// There is no reader: the format is write-only.
//
// # Attributes
//
// Every entity type declares a fixed set of optional attributes. Each
// attribute has a getter, a setter and a set-flag, queried with IsSet.
// Only attributes whose flag is set are written, so an explicit zero (for
// example a border width of 0) is distinguishable from "not specified":
//
//	n := g.NewNode("entry")
//	n.SetBorderWidth(0)
//	n.IsSet(gdl.NodeBorderWidth) // true
//	n.IsSet(gdl.NodeColor)       // false
//
// Graphs additionally carry a 256-slot colour table. Each slot has its own
// set-flag, and the table as a whole is written only once some slot has
// been set with [Graph.SetColorEntry].
//
// # Building
//
// Graphs, nodes and edges can be created unattached and linked later with
// [Graph.AddNode], [Graph.AddEdge] and [Graph.AddSubgraph], or created and
// linked in one call with [Graph.NewNode], [Graph.NewEdge] and
// [Graph.NewSubgraph]:
//
//	b := gdl.NewBuilder()
//	g := b.NewGraph("main")
//	g.NewNode("n1").SetLabel("Entry")
//	sub := g.NewSubgraph("main.0")
//	sub.NewAnonymousNode().SetLabel("Exit")
//	g.NewEdge("n1", "main.0").SetKind(gdl.KindBackEdge)
//
// Entities created without a title receive a generated one of the form
// "anonymous.N". The number comes from the [Builder] that created the
// entity; nodes and graphs share one sequence. The package-level
// constructors use a process-wide default builder.
//
// Titles are lookup keys within one graph: [Graph.FindNode],
// [Graph.FindEdge] and [Graph.FindSubgraph] scan direct children only and
// return the first match, or nil. Edge endpoints are plain titles and are
// never resolved, so an edge may point into another subgraph or at a node
// that does not exist.
//
// # Output
//
// The document is a nest of brace-delimited blocks with one attribute per
// line:
//
//	graph: {
//	title: "main"
//	node: {
//	label: "Entry"
//	title: "n1"
//	}
//	graph: {
//	title: "main.0"
//	node: {
//	label: "Exit"
//	title: "anonymous.0"
//	}
//	}
//	backedge: {
//	sourcename: "n1"
//	targetname: "main.0"
//	}
//	}
//
// Within a graph, nodes are written first, then subgraphs, then edges,
// regardless of how their insertions were interleaved. Quoted strings have a
// backslash put before every double quote and are otherwise copied byte for
// byte.
//
// A graph's node_alignment is written, between near_edges and orientation,
// when it is set. Classic GDL writers accepted it but never emitted it, so a
// graph that sets it produces one more line than theirs did.
//
// # Errors
//
// Caller bugs panic: a colour index outside [0,255], an undeclared
// [EdgeKind] at write time, attaching an entity that already has an owner,
// and any use of an entity after Free. A lookup miss is not an error and
// returns nil. [Graph.WriteTo] returns errors from the underlying writer and
// [ErrSubgraphCycle] when a graph has been attached below itself; its byte
// count is what the writer accepted.
//
// # Concurrency
//
// Trees are not safe for concurrent use. A [Builder] may be shared between
// goroutines building separate trees.
package gdl

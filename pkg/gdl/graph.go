package gdl

import "slices"

// Graph is a container of nodes, edges and nested subgraphs. Each of the
// three child sequences keeps insertion order, which is the order the
// children are written in.
//
// A graph owns its children. Node and subgraph parents are back-references
// only; freeing happens from the root down with [Graph.Free].
//
// A Graph is not safe for concurrent use.
type Graph struct {
	attrs  attrs
	colors *colorTable

	nodes     []*Node
	edges     []*Edge
	subgraphs []*Graph
	parent    *Graph

	builder *Builder
}

func newGraph(b *Builder, title string) *Graph {
	g := &Graph{
		attrs:   newAttrs("graph", int(graphAttrCount)),
		builder: b,
	}
	g.SetTitle(title)
	return g
}

// Parent returns the graph this one was added to as a subgraph, or nil for
// a root or unattached graph.
func (g *Graph) Parent() *Graph {
	g.attrs.live()
	return g.parent
}

// Builder returns the builder that created g.
func (g *Graph) Builder() *Builder {
	g.attrs.live()
	if g.builder == nil {
		return &defaultBuilder
	}
	return g.builder
}

// Nodes returns the direct child nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	g.attrs.live()
	return slices.Clone(g.nodes)
}

// Edges returns the direct child edges in insertion order.
func (g *Graph) Edges() []*Edge {
	g.attrs.live()
	return slices.Clone(g.edges)
}

// Subgraphs returns the direct child subgraphs in insertion order.
func (g *Graph) Subgraphs() []*Graph {
	g.attrs.live()
	return slices.Clone(g.subgraphs)
}

// AddNode appends n to g's nodes and makes g its parent.
// It panics if n already belongs to a graph.
func (g *Graph) AddNode(n *Node) {
	g.attrs.live()
	n.attrs.live()
	if n.parent != nil {
		panic("gdl: node " + n.Title() + " already belongs to a graph")
	}
	g.nodes = append(g.nodes, n)
	n.parent = g
}

// AddEdge appends e to g's edges.
// It panics if e already belongs to a graph.
func (g *Graph) AddEdge(e *Edge) {
	g.attrs.live()
	e.attrs.live()
	if e.owner != nil {
		panic("gdl: edge " + e.SourceName() + " -> " + e.TargetName() + " already belongs to a graph")
	}
	g.edges = append(g.edges, e)
	e.owner = g
}

// AddSubgraph appends sub to g's subgraphs and makes g its parent.
// It panics if sub already has a parent or is g itself.
//
// Attaching an ancestor of g is not rejected here; the resulting cycle is
// reported by the writer as [ErrSubgraphCycle].
func (g *Graph) AddSubgraph(sub *Graph) {
	g.attrs.live()
	sub.attrs.live()
	if sub == g {
		panic("gdl: graph " + g.Title() + " cannot be its own subgraph")
	}
	if sub.parent != nil {
		panic("gdl: graph " + sub.Title() + " already has a parent")
	}
	g.subgraphs = append(g.subgraphs, sub)
	sub.parent = g
}

// NewNode creates a node with the given title and appends it to g.
func (g *Graph) NewNode(title string) *Node {
	n := g.Builder().NewNode(title)
	g.AddNode(n)
	return n
}

// NewAnonymousNode creates a node with a generated title and appends it to g.
func (g *Graph) NewAnonymousNode() *Node {
	n := g.Builder().NewAnonymousNode()
	g.AddNode(n)
	return n
}

// NewEdge creates an edge from source to target and appends it to g.
func (g *Graph) NewEdge(source, target string) *Edge {
	e := NewEdge(source, target)
	g.AddEdge(e)
	return e
}

// NewSubgraph creates a graph with the given title and appends it to g.
func (g *Graph) NewSubgraph(title string) *Graph {
	sub := g.Builder().NewGraph(title)
	g.AddSubgraph(sub)
	return sub
}

// NewAnonymousSubgraph creates a graph with a generated title and appends it to g.
func (g *Graph) NewAnonymousSubgraph() *Graph {
	sub := g.Builder().NewAnonymousGraph()
	g.AddSubgraph(sub)
	return sub
}

// FindNode returns the first direct child node titled title, or nil.
// Nodes inside subgraphs are not searched.
func (g *Graph) FindNode(title string) *Node {
	g.attrs.live()
	for _, n := range g.nodes {
		if n.Title() == title {
			return n
		}
	}
	return nil
}

// FindEdge returns the first direct child edge from source to target, or nil.
func (g *Graph) FindEdge(source, target string) *Edge {
	g.attrs.live()
	for _, e := range g.edges {
		if e.SourceName() == source && e.TargetName() == target {
			return e
		}
	}
	return nil
}

// FindSubgraph returns the first direct child subgraph titled title, or nil.
func (g *Graph) FindSubgraph(title string) *Graph {
	g.attrs.live()
	for _, sub := range g.subgraphs {
		if sub.Title() == title {
			return sub
		}
	}
	return nil
}

// Free releases g and everything it owns: its nodes, then its edges, then
// its subgraphs depth-first. Neither g nor any of its descendants may be
// used afterwards; doing so panics.
func (g *Graph) Free() {
	g.attrs.live()
	g.free()
}

func (g *Graph) free() {
	g.attrs.free()
	for _, n := range g.nodes {
		n.Free()
	}
	for _, e := range g.edges {
		e.Free()
	}
	for _, sub := range g.subgraphs {
		// A subgraph already freed means the tree loops back on itself.
		if !sub.attrs.freed {
			sub.free()
		}
	}
	g.nodes, g.edges, g.subgraphs = nil, nil, nil
	g.colors = nil
	g.parent = nil
}

// IsSet reports whether attr has been assigned. For [GraphColorEntry] it
// reports whether any colour table slot has been written.
func (g *Graph) IsSet(attr GraphAttr) bool { return g.attrs.isSet(int(attr)) }

// ColorEntry returns slot i of the colour table and whether it was set.
// It panics if i is outside [0,255].
func (g *Graph) ColorEntry(i int) (RGB, bool) {
	g.attrs.live()
	if g.colors == nil {
		checkColorIndex(i)
		return RGB{}, false
	}
	return g.colors.get(i)
}

// SetColorEntry writes slot i of the colour table and marks both the slot
// and the table as set. It panics if i is outside [0,255].
func (g *Graph) SetColorEntry(i, r, gr, b int) {
	g.attrs.live()
	checkColorIndex(i)
	if g.colors == nil {
		g.colors = new(colorTable)
	}
	g.colors.put(i, RGB{R: r, G: gr, B: b})
	g.attrs.set |= 1 << uint(GraphColorEntry)
}

func (g *Graph) Color() string           { return g.attrs.str(int(GraphColor)) }
func (g *Graph) Folding() int            { return g.attrs.num(int(GraphFolding)) }
func (g *Graph) Label() string           { return g.attrs.str(int(GraphLabel)) }
func (g *Graph) LayoutAlgorithm() string { return g.attrs.str(int(GraphLayoutAlgorithm)) }
func (g *Graph) NearEdges() string       { return g.attrs.str(int(GraphNearEdges)) }
func (g *Graph) NodeAlignment() string   { return g.attrs.str(int(GraphNodeAlignment)) }
func (g *Graph) Orientation() string     { return g.attrs.str(int(GraphOrientation)) }
func (g *Graph) PortSharing() string     { return g.attrs.str(int(GraphPortSharing)) }
func (g *Graph) Shape() string           { return g.attrs.str(int(GraphShape)) }
func (g *Graph) Splines() string         { return g.attrs.str(int(GraphSplines)) }
func (g *Graph) Title() string           { return g.attrs.str(int(GraphTitle)) }
func (g *Graph) VerticalOrder() int      { return g.attrs.num(int(GraphVerticalOrder)) }
func (g *Graph) XSpace() int             { return g.attrs.num(int(GraphXSpace)) }
func (g *Graph) YSpace() int             { return g.attrs.num(int(GraphYSpace)) }
func (g *Graph) NodeBorderWidth() int    { return g.attrs.num(int(GraphNodeBorderWidth)) }
func (g *Graph) NodeColor() string       { return g.attrs.str(int(GraphNodeColor)) }
func (g *Graph) NodeShape() string       { return g.attrs.str(int(GraphNodeShape)) }
func (g *Graph) NodeTextColor() string   { return g.attrs.str(int(GraphNodeTextColor)) }
func (g *Graph) EdgeColor() string       { return g.attrs.str(int(GraphEdgeColor)) }
func (g *Graph) EdgeThickness() int      { return g.attrs.num(int(GraphEdgeThickness)) }

func (g *Graph) SetColor(v string)           { g.attrs.setStr(int(GraphColor), v) }
func (g *Graph) SetFolding(v int)            { g.attrs.setNum(int(GraphFolding), v) }
func (g *Graph) SetLabel(v string)           { g.attrs.setStr(int(GraphLabel), v) }
func (g *Graph) SetLayoutAlgorithm(v string) { g.attrs.setStr(int(GraphLayoutAlgorithm), v) }
func (g *Graph) SetNearEdges(v string)       { g.attrs.setStr(int(GraphNearEdges), v) }
func (g *Graph) SetNodeAlignment(v string)   { g.attrs.setStr(int(GraphNodeAlignment), v) }
func (g *Graph) SetOrientation(v string)     { g.attrs.setStr(int(GraphOrientation), v) }
func (g *Graph) SetPortSharing(v string)     { g.attrs.setStr(int(GraphPortSharing), v) }
func (g *Graph) SetShape(v string)           { g.attrs.setStr(int(GraphShape), v) }
func (g *Graph) SetSplines(v string)         { g.attrs.setStr(int(GraphSplines), v) }
func (g *Graph) SetTitle(v string)           { g.attrs.setStr(int(GraphTitle), v) }
func (g *Graph) SetVerticalOrder(v int)      { g.attrs.setNum(int(GraphVerticalOrder), v) }
func (g *Graph) SetXSpace(v int)             { g.attrs.setNum(int(GraphXSpace), v) }
func (g *Graph) SetYSpace(v int)             { g.attrs.setNum(int(GraphYSpace), v) }
func (g *Graph) SetNodeBorderWidth(v int)    { g.attrs.setNum(int(GraphNodeBorderWidth), v) }
func (g *Graph) SetNodeColor(v string)       { g.attrs.setStr(int(GraphNodeColor), v) }
func (g *Graph) SetNodeShape(v string)       { g.attrs.setStr(int(GraphNodeShape), v) }
func (g *Graph) SetNodeTextColor(v string)   { g.attrs.setStr(int(GraphNodeTextColor), v) }
func (g *Graph) SetEdgeColor(v string)       { g.attrs.setStr(int(GraphEdgeColor), v) }
func (g *Graph) SetEdgeThickness(v int)      { g.attrs.setNum(int(GraphEdgeThickness), v) }

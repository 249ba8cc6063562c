package io

// Description is the declarative form of a graph tree. The same structure
// describes the root graph and every subgraph.
//
// Every optional attribute is a pointer: nil means "not set" and the built
// graph leaves that attribute's flag clear, while a pointer to a zero value
// sets it explicitly. A nil Title asks for a generated "anonymous.N" title.
type Description struct {
	Title           *string `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Label           *string `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	Color           *string `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	Folding         *int    `json:"folding,omitempty" yaml:"folding,omitempty" toml:"folding,omitempty"`
	LayoutAlgorithm *string `json:"layout_algorithm,omitempty" yaml:"layout_algorithm,omitempty" toml:"layout_algorithm,omitempty"`
	NearEdges       *string `json:"near_edges,omitempty" yaml:"near_edges,omitempty" toml:"near_edges,omitempty"`
	NodeAlignment   *string `json:"node_alignment,omitempty" yaml:"node_alignment,omitempty" toml:"node_alignment,omitempty"`
	Orientation     *string `json:"orientation,omitempty" yaml:"orientation,omitempty" toml:"orientation,omitempty"`
	PortSharing     *string `json:"port_sharing,omitempty" yaml:"port_sharing,omitempty" toml:"port_sharing,omitempty"`
	Shape           *string `json:"shape,omitempty" yaml:"shape,omitempty" toml:"shape,omitempty"`
	Splines         *string `json:"splines,omitempty" yaml:"splines,omitempty" toml:"splines,omitempty"`
	VerticalOrder   *int    `json:"vertical_order,omitempty" yaml:"vertical_order,omitempty" toml:"vertical_order,omitempty"`
	XSpace          *int    `json:"xspace,omitempty" yaml:"xspace,omitempty" toml:"xspace,omitempty"`
	YSpace          *int    `json:"yspace,omitempty" yaml:"yspace,omitempty" toml:"yspace,omitempty"`

	// NodeDefaults and EdgeDefaults hold the "node." and "edge." prefixed
	// graph attributes that apply to all children.
	NodeDefaults *NodeDefaults `json:"node,omitempty" yaml:"node,omitempty" toml:"node,omitempty"`
	EdgeDefaults *EdgeDefaults `json:"edge,omitempty" yaml:"edge,omitempty" toml:"edge,omitempty"`

	Colors    []ColorDesc   `json:"colors,omitempty" yaml:"colors,omitempty" toml:"colors,omitempty"`
	Nodes     []NodeDesc    `json:"nodes,omitempty" yaml:"nodes,omitempty" toml:"nodes,omitempty"`
	Subgraphs []Description `json:"graphs,omitempty" yaml:"graphs,omitempty" toml:"graphs,omitempty"`
	Edges     []EdgeDesc    `json:"edges,omitempty" yaml:"edges,omitempty" toml:"edges,omitempty"`
}

// NodeDefaults are graph-level attributes applying to the graph's nodes.
type NodeDefaults struct {
	BorderWidth *int    `json:"borderwidth,omitempty" yaml:"borderwidth,omitempty" toml:"borderwidth,omitempty"`
	Color       *string `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	Shape       *string `json:"shape,omitempty" yaml:"shape,omitempty" toml:"shape,omitempty"`
	TextColor   *string `json:"textcolor,omitempty" yaml:"textcolor,omitempty" toml:"textcolor,omitempty"`
}

// EdgeDefaults are graph-level attributes applying to the graph's edges.
type EdgeDefaults struct {
	Color     *string `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	Thickness *int    `json:"thickness,omitempty" yaml:"thickness,omitempty" toml:"thickness,omitempty"`
}

// ColorDesc is one colour table slot.
type ColorDesc struct {
	Index int `json:"index" yaml:"index" toml:"index"`
	R     int `json:"r" yaml:"r" toml:"r"`
	G     int `json:"g" yaml:"g" toml:"g"`
	B     int `json:"b" yaml:"b" toml:"b"`
}

// NodeDesc describes a node. A nil Title asks for a generated title.
type NodeDesc struct {
	Title           *string `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Label           *string `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	BorderColor     *string `json:"bordercolor,omitempty" yaml:"bordercolor,omitempty" toml:"bordercolor,omitempty"`
	BorderWidth     *int    `json:"borderwidth,omitempty" yaml:"borderwidth,omitempty" toml:"borderwidth,omitempty"`
	Color           *string `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	HorizontalOrder *int    `json:"horizontal_order,omitempty" yaml:"horizontal_order,omitempty" toml:"horizontal_order,omitempty"`
	VerticalOrder   *int    `json:"vertical_order,omitempty" yaml:"vertical_order,omitempty" toml:"vertical_order,omitempty"`
}

// EdgeDesc describes an edge between two titles. Kind is an edge keyword
// such as "backedge"; empty means an ordinary edge.
type EdgeDesc struct {
	Source    string  `json:"source" yaml:"source" toml:"source"`
	Target    string  `json:"target" yaml:"target" toml:"target"`
	Kind      string  `json:"kind,omitempty" yaml:"kind,omitempty" toml:"kind,omitempty"`
	Label     *string `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	LineStyle *string `json:"linestyle,omitempty" yaml:"linestyle,omitempty" toml:"linestyle,omitempty"`
	Thickness *int    `json:"thickness,omitempty" yaml:"thickness,omitempty" toml:"thickness,omitempty"`
}

// Count returns the number of graphs (including d itself), nodes and edges
// in the whole tree.
func (d *Description) Count() (graphs, nodes, edges int) {
	graphs, nodes, edges = 1, len(d.Nodes), len(d.Edges)
	for i := range d.Subgraphs {
		g, n, e := d.Subgraphs[i].Count()
		graphs += g
		nodes += n
		edges += e
	}
	return graphs, nodes, edges
}

// TitleOrAnonymous returns the title, or "(anonymous)" when none is given.
func (d *Description) TitleOrAnonymous() string {
	if d.Title == nil {
		return "(anonymous)"
	}
	return *d.Title
}

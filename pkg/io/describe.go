package io

import (
	"fmt"

	"github.com/matzehuels/gdlkit/pkg/gdl"
)

// Describe converts a graph tree back into a description. Only attributes
// whose flag is set are carried over, and every entity keeps its title, so
// building the result reproduces g's document exactly.
//
// A tree in which a graph was attached below itself yields an error
// wrapping [gdl.ErrSubgraphCycle].
func Describe(g *gdl.Graph) (*Description, error) {
	return describe(g, make(map[*gdl.Graph]bool))
}

func describe(g *gdl.Graph, open map[*gdl.Graph]bool) (*Description, error) {
	if open[g] {
		return nil, fmt.Errorf("%w: graph %q contains itself", gdl.ErrSubgraphCycle, g.Title())
	}
	open[g] = true
	defer delete(open, g)

	d := &Description{Title: strPtr(g.Title())}

	d.Label = strIf(g.IsSet(gdl.GraphLabel), g.Label())
	d.Color = strIf(g.IsSet(gdl.GraphColor), g.Color())
	d.Folding = intIf(g.IsSet(gdl.GraphFolding), g.Folding())
	d.LayoutAlgorithm = strIf(g.IsSet(gdl.GraphLayoutAlgorithm), g.LayoutAlgorithm())
	d.NearEdges = strIf(g.IsSet(gdl.GraphNearEdges), g.NearEdges())
	d.NodeAlignment = strIf(g.IsSet(gdl.GraphNodeAlignment), g.NodeAlignment())
	d.Orientation = strIf(g.IsSet(gdl.GraphOrientation), g.Orientation())
	d.PortSharing = strIf(g.IsSet(gdl.GraphPortSharing), g.PortSharing())
	d.Shape = strIf(g.IsSet(gdl.GraphShape), g.Shape())
	d.Splines = strIf(g.IsSet(gdl.GraphSplines), g.Splines())
	d.VerticalOrder = intIf(g.IsSet(gdl.GraphVerticalOrder), g.VerticalOrder())
	d.XSpace = intIf(g.IsSet(gdl.GraphXSpace), g.XSpace())
	d.YSpace = intIf(g.IsSet(gdl.GraphYSpace), g.YSpace())

	nd := NodeDefaults{
		BorderWidth: intIf(g.IsSet(gdl.GraphNodeBorderWidth), g.NodeBorderWidth()),
		Color:       strIf(g.IsSet(gdl.GraphNodeColor), g.NodeColor()),
		Shape:       strIf(g.IsSet(gdl.GraphNodeShape), g.NodeShape()),
		TextColor:   strIf(g.IsSet(gdl.GraphNodeTextColor), g.NodeTextColor()),
	}
	if nd != (NodeDefaults{}) {
		d.NodeDefaults = &nd
	}
	ed := EdgeDefaults{
		Color:     strIf(g.IsSet(gdl.GraphEdgeColor), g.EdgeColor()),
		Thickness: intIf(g.IsSet(gdl.GraphEdgeThickness), g.EdgeThickness()),
	}
	if ed != (EdgeDefaults{}) {
		d.EdgeDefaults = &ed
	}

	if g.IsSet(gdl.GraphColorEntry) {
		for i := range gdl.ColorTableSize {
			if c, ok := g.ColorEntry(i); ok {
				d.Colors = append(d.Colors, ColorDesc{Index: i, R: c.R, G: c.G, B: c.B})
			}
		}
	}

	for _, n := range g.Nodes() {
		d.Nodes = append(d.Nodes, NodeDesc{
			Title:           strPtr(n.Title()),
			Label:           strIf(n.IsSet(gdl.NodeLabel), n.Label()),
			BorderColor:     strIf(n.IsSet(gdl.NodeBorderColor), n.BorderColor()),
			BorderWidth:     intIf(n.IsSet(gdl.NodeBorderWidth), n.BorderWidth()),
			Color:           strIf(n.IsSet(gdl.NodeColor), n.Color()),
			HorizontalOrder: intIf(n.IsSet(gdl.NodeHorizontalOrder), n.HorizontalOrder()),
			VerticalOrder:   intIf(n.IsSet(gdl.NodeVerticalOrder), n.VerticalOrder()),
		})
	}
	for _, sub := range g.Subgraphs() {
		sd, err := describe(sub, open)
		if err != nil {
			return nil, err
		}
		d.Subgraphs = append(d.Subgraphs, *sd)
	}
	for _, e := range g.Edges() {
		desc := EdgeDesc{
			Source:    e.SourceName(),
			Target:    e.TargetName(),
			Label:     strIf(e.IsSet(gdl.EdgeLabel), e.Label()),
			LineStyle: strIf(e.IsSet(gdl.EdgeLineStyle), e.LineStyle()),
			Thickness: intIf(e.IsSet(gdl.EdgeThickness), e.Thickness()),
		}
		if e.Kind() != gdl.KindEdge {
			desc.Kind = e.Kind().String()
		}
		d.Edges = append(d.Edges, desc)
	}
	return d, nil
}

func strPtr(s string) *string { return &s }

func strIf(set bool, s string) *string {
	if !set {
		return nil
	}
	return &s
}

func intIf(set bool, n int) *int {
	if !set {
		return nil
	}
	return &n
}

package io

import (
	"fmt"

	"github.com/matzehuels/gdlkit/pkg/errors"
	"github.com/matzehuels/gdlkit/pkg/gdl"
)

// Validate checks d for values the document model would panic on or that
// would corrupt the output: empty or control-character titles, colour
// indices outside [0,255], unknown edge kinds, and bare values that are not
// a single word. Errors carry the position of the offending entry, e.g.
// "graph.graphs[1].edges[0]".
func Validate(d *Description) error {
	return validateGraph(d, "graph")
}

// token is an optional bare attribute value and its keyword.
type token struct {
	name string
	v    *string
}

func validateGraph(d *Description, at string) error {
	if err := validateTitle(d.Title, at); err != nil {
		return err
	}
	bare := []token{
		{"color", d.Color},
		{"layout_algorithm", d.LayoutAlgorithm},
		{"near_edges", d.NearEdges},
		{"node_alignment", d.NodeAlignment},
		{"orientation", d.Orientation},
		{"port_sharing", d.PortSharing},
		{"shape", d.Shape},
		{"splines", d.Splines},
	}
	if nd := d.NodeDefaults; nd != nil {
		bare = append(bare,
			token{"node.color", nd.Color},
			token{"node.shape", nd.Shape},
			token{"node.textcolor", nd.TextColor},
		)
	}
	if ed := d.EdgeDefaults; ed != nil {
		bare = append(bare, token{"edge.color", ed.Color})
	}
	for _, b := range bare {
		if err := validateToken(b.name, b.v, at); err != nil {
			return err
		}
	}

	for i, c := range d.Colors {
		if err := errors.ValidateColorIndex(c.Index); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "%s.colors[%d]", at, i)
		}
	}
	for i, n := range d.Nodes {
		nat := fmt.Sprintf("%s.nodes[%d]", at, i)
		if err := validateTitle(n.Title, nat); err != nil {
			return err
		}
		if err := validateToken("bordercolor", n.BorderColor, nat); err != nil {
			return err
		}
		if err := validateToken("color", n.Color, nat); err != nil {
			return err
		}
	}
	for i := range d.Subgraphs {
		if err := validateGraph(&d.Subgraphs[i], fmt.Sprintf("%s.graphs[%d]", at, i)); err != nil {
			return err
		}
	}
	for i, e := range d.Edges {
		eat := fmt.Sprintf("%s.edges[%d]", at, i)
		if e.Source == "" || e.Target == "" {
			return errors.New(errors.ErrCodeInvalidInput, "%s: source and target are required", eat)
		}
		if e.Kind != "" {
			if _, ok := gdl.ParseEdgeKind(e.Kind); !ok {
				return errors.New(errors.ErrCodeInvalidInput, "%s: unknown edge kind %q", eat, e.Kind)
			}
		}
		if err := validateToken("linestyle", e.LineStyle, eat); err != nil {
			return err
		}
	}
	return nil
}

func validateTitle(title *string, at string) error {
	if title == nil {
		return nil
	}
	if err := errors.ValidateTitle(*title); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", at)
	}
	return nil
}

func validateToken(name string, v *string, at string) error {
	if v == nil {
		return nil
	}
	if err := errors.ValidateToken(name, *v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", at)
	}
	return nil
}

// Build validates d and constructs the graph tree it describes. Entities
// without a title are numbered by b; a nil b uses the default builder.
func Build(d *Description, b *gdl.Builder) (*gdl.Graph, error) {
	if err := Validate(d); err != nil {
		return nil, err
	}
	if b == nil {
		b = gdl.DefaultBuilder()
	}

	var g *gdl.Graph
	if d.Title != nil {
		g = b.NewGraph(*d.Title)
	} else {
		g = b.NewAnonymousGraph()
	}
	fill(g, d)
	return g, nil
}

// fill applies d's attributes and children to g. d has been validated.
func fill(g *gdl.Graph, d *Description) {
	setStr(d.Label, g.SetLabel)
	setStr(d.Color, g.SetColor)
	setInt(d.Folding, g.SetFolding)
	setStr(d.LayoutAlgorithm, g.SetLayoutAlgorithm)
	setStr(d.NearEdges, g.SetNearEdges)
	setStr(d.NodeAlignment, g.SetNodeAlignment)
	setStr(d.Orientation, g.SetOrientation)
	setStr(d.PortSharing, g.SetPortSharing)
	setStr(d.Shape, g.SetShape)
	setStr(d.Splines, g.SetSplines)
	setInt(d.VerticalOrder, g.SetVerticalOrder)
	setInt(d.XSpace, g.SetXSpace)
	setInt(d.YSpace, g.SetYSpace)
	if nd := d.NodeDefaults; nd != nil {
		setInt(nd.BorderWidth, g.SetNodeBorderWidth)
		setStr(nd.Color, g.SetNodeColor)
		setStr(nd.Shape, g.SetNodeShape)
		setStr(nd.TextColor, g.SetNodeTextColor)
	}
	if ed := d.EdgeDefaults; ed != nil {
		setStr(ed.Color, g.SetEdgeColor)
		setInt(ed.Thickness, g.SetEdgeThickness)
	}
	for _, c := range d.Colors {
		g.SetColorEntry(c.Index, c.R, c.G, c.B)
	}

	for _, nd := range d.Nodes {
		var n *gdl.Node
		if nd.Title != nil {
			n = g.NewNode(*nd.Title)
		} else {
			n = g.NewAnonymousNode()
		}
		setStr(nd.Label, n.SetLabel)
		setStr(nd.BorderColor, n.SetBorderColor)
		setInt(nd.BorderWidth, n.SetBorderWidth)
		setStr(nd.Color, n.SetColor)
		setInt(nd.HorizontalOrder, n.SetHorizontalOrder)
		setInt(nd.VerticalOrder, n.SetVerticalOrder)
	}

	for i := range d.Subgraphs {
		sd := &d.Subgraphs[i]
		var sub *gdl.Graph
		if sd.Title != nil {
			sub = g.NewSubgraph(*sd.Title)
		} else {
			sub = g.NewAnonymousSubgraph()
		}
		fill(sub, sd)
	}

	for _, ed := range d.Edges {
		e := g.NewEdge(ed.Source, ed.Target)
		if ed.Kind != "" {
			k, _ := gdl.ParseEdgeKind(ed.Kind)
			e.SetKind(k)
		}
		setStr(ed.Label, e.SetLabel)
		setStr(ed.LineStyle, e.SetLineStyle)
		setInt(ed.Thickness, e.SetThickness)
	}
}

func setStr(v *string, set func(string)) {
	if v != nil {
		set(*v)
	}
}

func setInt(v *int, set func(int)) {
	if v != nil {
		set(*v)
	}
}

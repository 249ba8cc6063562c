package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/gdlkit/pkg/gdl"
	"github.com/matzehuels/gdlkit/pkg/render"
)

// Options configures the preview.
type Options struct {
	// Detailed shows each node's title under its label when the two differ.
	Detailed bool

	// Layout is the Graphviz engine used by the Render functions
	// ("dot", "neato", "fdp", "circo", "twopi"). Empty means "dot".
	Layout string
}

var rankdirs = map[string]string{
	gdl.OrientationTopToBottom: "TB",
	gdl.OrientationLeftToRight: "LR",
	gdl.OrientationBottomToTop: "BT",
	gdl.OrientationRightToLeft: "RL",
}

var shapes = map[string]string{
	gdl.ShapeBox:      "box",
	gdl.ShapeRhomb:    "diamond",
	gdl.ShapeEllipse:  "ellipse",
	gdl.ShapeTriangle: "triangle",
}

var lineStyles = map[string]string{
	gdl.LineContinuous: "solid",
	gdl.LineDashed:     "dashed",
	gdl.LineDotted:     "dotted",
	gdl.LineInvisible:  "invis",
}

// ToDOT converts a graph tree to Graphviz DOT for previewing.
//
// Subgraphs become clusters. An edge endpoint that names a subgraph rather
// than a node is attached to an invisible anchor inside that cluster. Back
// edges are dashed and drawn against the rank direction; near edges do not
// constrain ranking. Numeric colours are resolved through the nearest
// enclosing colour table.
//
// ToDOT returns an error wrapping [gdl.ErrSubgraphCycle] if a graph was
// attached below itself.
func ToDOT(g *gdl.Graph, opts Options) (string, error) {
	w := &dotWriter{
		opts:     opts,
		open:     make(map[*gdl.Graph]bool),
		targeted: make(map[string]bool),
	}
	w.collectEndpoints(g)

	w.buf.WriteString("digraph G {\n")
	w.buf.WriteString("  compound=true;\n")
	w.buf.WriteString("  bgcolor=\"transparent\";\n")
	w.buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	if err := w.graph(g, nil, 1); err != nil {
		return "", err
	}
	w.buf.WriteString("}\n")
	return w.buf.String(), nil
}

type dotWriter struct {
	buf  bytes.Buffer
	opts Options

	open     map[*gdl.Graph]bool
	targeted map[string]bool
}

func (w *dotWriter) collectEndpoints(g *gdl.Graph) {
	if w.open[g] {
		return
	}
	w.open[g] = true
	defer delete(w.open, g)

	for _, e := range g.Edges() {
		w.targeted[e.SourceName()] = true
		w.targeted[e.TargetName()] = true
	}
	for _, sub := range g.Subgraphs() {
		w.collectEndpoints(sub)
	}
}

// graph writes g's attributes and children. scope lists the enclosing graphs
// innermost first, for colour lookup.
func (w *dotWriter) graph(g *gdl.Graph, scope []*gdl.Graph, depth int) error {
	if w.open[g] {
		return fmt.Errorf("%w: graph %q contains itself", gdl.ErrSubgraphCycle, g.Title())
	}
	w.open[g] = true
	defer delete(w.open, g)

	scope = append([]*gdl.Graph{g}, scope...)
	indent := strings.Repeat("  ", depth)

	var attrs []string
	if g.IsSet(gdl.GraphLabel) {
		attrs = append(attrs, "label="+dotQuote(g.Label()))
	} else if depth > 1 {
		attrs = append(attrs, "label="+dotQuote(g.Title()))
	}
	if g.IsSet(gdl.GraphOrientation) {
		if rd, ok := rankdirs[g.Orientation()]; ok && depth == 1 {
			attrs = append(attrs, "rankdir="+rd)
		}
	}
	if g.IsSet(gdl.GraphColor) {
		attrs = append(attrs, "style=filled", "fillcolor="+dotQuote(resolveColor(g.Color(), scope)))
	}
	if g.IsSet(gdl.GraphXSpace) {
		attrs = append(attrs, fmt.Sprintf("nodesep=%.2f", float64(g.XSpace())/72))
	}
	if g.IsSet(gdl.GraphYSpace) {
		attrs = append(attrs, fmt.Sprintf("ranksep=%.2f", float64(g.YSpace())/72))
	}
	for _, a := range attrs {
		fmt.Fprintf(&w.buf, "%s%s;\n", indent, a)
	}

	if defaults := nodeDefaults(g, scope); len(defaults) > 0 {
		fmt.Fprintf(&w.buf, "%snode [%s];\n", indent, strings.Join(defaults, ", "))
	}
	if defaults := edgeDefaults(g, scope); len(defaults) > 0 {
		fmt.Fprintf(&w.buf, "%sedge [%s];\n", indent, strings.Join(defaults, ", "))
	}

	for _, n := range g.Nodes() {
		fmt.Fprintf(&w.buf, "%s%s [%s];\n", indent, dotQuote(n.Title()), strings.Join(w.nodeAttrs(n, scope), ", "))
	}
	if depth > 1 && w.targeted[g.Title()] && g.FindNode(g.Title()) == nil {
		fmt.Fprintf(&w.buf, "%s%s [shape=point, width=0, style=invis, label=\"\"];\n", indent, dotQuote(g.Title()))
	}

	for _, sub := range g.Subgraphs() {
		fmt.Fprintf(&w.buf, "%ssubgraph %s {\n", indent, dotQuote("cluster_"+sub.Title()))
		if err := w.graph(sub, scope, depth+1); err != nil {
			return err
		}
		fmt.Fprintf(&w.buf, "%s}\n", indent)
	}

	for _, e := range g.Edges() {
		fmt.Fprintf(&w.buf, "%s%s -> %s", indent, dotQuote(e.SourceName()), dotQuote(e.TargetName()))
		if attrs := edgeAttrs(e, scope); len(attrs) > 0 {
			fmt.Fprintf(&w.buf, " [%s]", strings.Join(attrs, ", "))
		}
		w.buf.WriteString(";\n")
	}
	return nil
}

func nodeDefaults(g *gdl.Graph, scope []*gdl.Graph) []string {
	var attrs []string
	if g.IsSet(gdl.GraphNodeShape) {
		if s, ok := shapes[g.NodeShape()]; ok {
			attrs = append(attrs, "shape="+s)
		}
	}
	if g.IsSet(gdl.GraphNodeColor) {
		attrs = append(attrs, "fillcolor="+dotQuote(resolveColor(g.NodeColor(), scope)))
	}
	if g.IsSet(gdl.GraphNodeTextColor) {
		attrs = append(attrs, "fontcolor="+dotQuote(resolveColor(g.NodeTextColor(), scope)))
	}
	if g.IsSet(gdl.GraphNodeBorderWidth) {
		attrs = append(attrs, "penwidth="+strconv.Itoa(g.NodeBorderWidth()))
	}
	return attrs
}

func edgeDefaults(g *gdl.Graph, scope []*gdl.Graph) []string {
	var attrs []string
	if g.IsSet(gdl.GraphEdgeColor) {
		attrs = append(attrs, "color="+dotQuote(resolveColor(g.EdgeColor(), scope)))
	}
	if g.IsSet(gdl.GraphEdgeThickness) {
		attrs = append(attrs, "penwidth="+strconv.Itoa(g.EdgeThickness()))
	}
	return attrs
}

func (w *dotWriter) nodeAttrs(n *gdl.Node, scope []*gdl.Graph) []string {
	label := n.Title()
	if n.IsSet(gdl.NodeLabel) {
		label = n.Label()
		if w.opts.Detailed && label != n.Title() {
			label += "\n" + n.Title()
		}
	}
	attrs := []string{"label="+dotQuote(label)}
	if n.IsSet(gdl.NodeColor) {
		attrs = append(attrs, "fillcolor="+dotQuote(resolveColor(n.Color(), scope)))
	}
	if n.IsSet(gdl.NodeBorderColor) {
		attrs = append(attrs, "color="+dotQuote(resolveColor(n.BorderColor(), scope)))
	}
	if n.IsSet(gdl.NodeBorderWidth) {
		attrs = append(attrs, "penwidth="+strconv.Itoa(n.BorderWidth()))
	}
	return attrs
}

func edgeAttrs(e *gdl.Edge, scope []*gdl.Graph) []string {
	var attrs []string
	if e.IsSet(gdl.EdgeLabel) {
		attrs = append(attrs, "label="+dotQuote(e.Label()))
	}

	style := ""
	switch e.Kind() {
	case gdl.KindBackEdge:
		style = "dashed"
		attrs = append(attrs, "dir=back")
	case gdl.KindNearEdge, gdl.KindLeftNearEdge, gdl.KindRightNearEdge:
		attrs = append(attrs, "constraint=false")
	case gdl.KindBentNearEdge, gdl.KindLeftBentNearEdge, gdl.KindRightBentNearEdge:
		attrs = append(attrs, "constraint=false", "arrowhead=open")
	}
	if e.IsSet(gdl.EdgeLineStyle) {
		if s, ok := lineStyles[e.LineStyle()]; ok {
			style = s
		}
	}
	if style != "" {
		attrs = append(attrs, "style="+style)
	}
	if e.IsSet(gdl.EdgeThickness) {
		attrs = append(attrs, "penwidth="+strconv.Itoa(e.Thickness()))
	}
	return attrs
}

// resolveColor maps a numeric colour to "#rrggbb" using the innermost colour
// table that defines it. Names and unresolved numbers pass through.
func resolveColor(c string, scope []*gdl.Graph) string {
	i, err := strconv.Atoi(c)
	if err != nil || i < 0 || i >= gdl.ColorTableSize {
		return c
	}
	for _, g := range scope {
		if rgb, ok := g.ColorEntry(i); ok {
			return fmt.Sprintf("#%02x%02x%02x", clamp(rgb.R), clamp(rgb.G), clamp(rgb.B))
		}
	}
	return c
}

func clamp(v int) int {
	return min(max(v, 0), 255)
}

// dotQuote quotes s as a DOT string. Only double quotes and backslashes are
// escaped; a newline becomes Graphviz's centered line break. Every other
// rune, control characters included, is written as is.
func dotQuote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// RenderSVG renders DOT to SVG in-process with Graphviz.
func RenderSVG(ctx context.Context, dot string, opts Options) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	if opts.Layout != "" {
		gv.SetLayout(graphviz.Layout(opts.Layout))
	}

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one whose
// width and height match the viewBox, so the preview scales in a browser.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}

// RenderPDF renders DOT as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string, opts Options) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot, opts)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders DOT as PNG via SVG conversion at the given scale.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, opts Options, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot, opts)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}

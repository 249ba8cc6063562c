// Package render provides previews of GDL documents for environments without
// a GDL viewer.
//
// # Overview
//
// A GDL document is meant for a VCG-style viewer, which computes its own
// layout. For quick looks in a browser or a CI artifact, the [nodelink]
// subpackage converts the document tree to Graphviz DOT and lets Graphviz
// lay it out and draw it as SVG. This package converts that SVG to other
// formats.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// (from librsvg):
//
//	dot, err := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot, nodelink.Options{})
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// [nodelink]: github.com/matzehuels/gdlkit/pkg/render/nodelink
package render

// Package nodelink previews GDL documents as Graphviz node-link diagrams.
//
// # Overview
//
// GDL leaves layout to the viewer. For a preview without one, [ToDOT]
// translates the document tree into Graphviz DOT and [RenderSVG] lets
// Graphviz (compiled to WebAssembly and run in-process) lay it out:
//
//	Viewer:  Graph → gdl.Dump → .vcg → external viewer
//	Preview: Graph → ToDOT → DOT → RenderSVG → SVG
//
// The translation is approximate. Subgraphs become clusters, shapes and
// colours map to their Graphviz counterparts, back edges are dashed and
// drawn against the rank direction, and near edges do not constrain the
// ranking. Folding, port sharing and splines have no DOT equivalent and are
// ignored.
//
// # Layout Engines
//
// Options.Layout selects the Graphviz engine:
//
//   - dot: Hierarchical (default), closest to a VCG viewer's layout
//   - neato: Spring model
//   - fdp: Force-directed
//   - circo: Circular
//   - twopi: Radial
//
// For PDF or PNG output, use [RenderPDF] and [RenderPNG], which need
// rsvg-convert on PATH.
package nodelink

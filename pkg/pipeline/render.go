package pipeline

import (
	"context"

	"github.com/matzehuels/gdlkit/pkg/errors"
	gdlio "github.com/matzehuels/gdlkit/pkg/io"
	"github.com/matzehuels/gdlkit/pkg/render"
	"github.com/matzehuels/gdlkit/pkg/render/nodelink"
)

// Render produces the requested formats for a description whose serialized
// document is doc. DOT and the SVG preview are computed at most once.
func Render(ctx context.Context, desc *gdlio.Description, doc []byte, formats []string, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))
	var (
		dot string
		svg []byte
		err error
	)

	for _, format := range formats {
		if format == FormatGDL {
			artifacts[format] = doc
			continue
		}

		if dot == "" {
			if dot, err = ToDOT(desc, opts); err != nil {
				return nil, err
			}
		}
		if format == FormatDOT {
			artifacts[format] = []byte(dot)
			continue
		}

		if svg == nil {
			svg, err = nodelink.RenderSVG(ctx, dot, previewOptions(opts))
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render svg")
			}
		}

		var data []byte
		switch format {
		case FormatSVG:
			data = svg
		case FormatPDF:
			data, err = render.ToPDF(ctx, svg)
		case FormatPNG:
			data, err = render.ToPNG(ctx, svg, opts.Scale)
		default:
			return nil, ValidateFormat(format)
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// ToDOT builds desc and converts it to Graphviz DOT.
func ToDOT(desc *gdlio.Description, opts Options) (string, error) {
	g, err := Build(desc)
	if err != nil {
		return "", err
	}
	defer g.Free()

	dot, err := nodelink.ToDOT(g, previewOptions(opts))
	if err != nil {
		return "", graphError(err, "convert %s to dot", g.Title())
	}
	return dot, nil
}

func previewOptions(opts Options) nodelink.Options {
	return nodelink.Options{Detailed: opts.Detailed, Layout: opts.Layout}
}

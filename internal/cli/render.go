package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gdlkit/pkg/errors"
	"github.com/matzehuels/gdlkit/pkg/pipeline"
)

// renderCommand creates the render command for writing the document and its
// Graphviz previews.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		in         inputFlags
		formatsStr string
		output     string
	)
	opts := pipeline.Options{
		Layout: pipeline.DefaultLayout,
		Scale:  pipeline.DefaultScale,
	}

	cmd := &cobra.Command{
		Use:   "render [description]",
		Short: "Write the GDL document and Graphviz previews",
		Long: `Write the GDL document and Graphviz previews.

Formats:
  gdl   the GDL document (.vcg)
  dot   Graphviz DOT source of the preview
  svg   preview rendered with Graphviz
  pdf   preview converted with rsvg-convert
  png   preview converted with rsvg-convert, scaled by --scale

With a single format -o names the output file ("-" for stdout). With several
formats -o is a base path and each format gets its own extension.

Previews are cached; --refresh renders them again.`,
		Example: `  gdlkit render -f svg callgraph.yaml
  gdlkit render -f gdl,svg,png --layout neato -o out/callgraph graph.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if err := pipeline.ValidateLayout(opts.Layout); err != nil {
				return err
			}
			if output == stdinArg && len(opts.Formats) > 1 {
				return errors.New(errors.ErrCodeInvalidInput, "-o - needs a single format")
			}
			if cmd.Flags().Changed("scale") && !slices.Contains(opts.Formats, pipeline.FormatPNG) {
				printWarning(c.status(output), "--scale only affects png output")
			}
			opts.Refresh = in.refresh
			return c.runRender(cmd.Context(), args[0], in, opts, output)
		},
	}

	in.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): gdl (default), dot, svg, pdf, png (comma-separated)")
	cmd.Flags().StringVar(&opts.Layout, "layout", opts.Layout, "Graphviz layout engine: dot, neato, fdp, circo, twopi")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "show attributes in preview labels")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "png scale factor")
	cmd.Flags().BoolVar(&opts.Save, "save", false, "store the document")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, in inputFlags, opts pipeline.Options, output string) error {
	desc, err := c.loadDescription(ctx, input, in.stdinFormat, in.refresh)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, in.noCache, opts.Save)
	if err != nil {
		return err
	}
	defer runner.Close()

	w := c.status(output)
	var spinner *Spinner
	if opts.NeedsPreview() && output != stdinArg {
		spinner = newSpinner(ctx, c.stderr, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
		spinner.Start()
	}

	res, err := runner.Render(ctx, desc, opts)
	if spinner != nil {
		if err != nil && spinner.Cancelled() {
			spinner.Stop()
			return ctx.Err()
		}
		if err != nil {
			spinner.StopWithError("Render failed")
		} else {
			spinner.Stop()
		}
	}
	if err != nil {
		return err
	}

	paths, err := c.writeArtifacts(artifactWriteParams{
		artifacts: res.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
	})
	if err != nil {
		return err
	}

	printSuccess(w, "Rendered %s", StyleHighlight.Render(res.Title))
	for _, p := range paths {
		printFile(w, p)
	}
	printStats(w, res.Stats.GraphCount, res.Stats.NodeCount, res.Stats.EdgeCount, res.CacheInfo.DumpHit && res.CacheInfo.RenderHit)
	if res.DocumentID != "" {
		printKeyValue(w, "Document", res.DocumentID)
	}
	return nil
}

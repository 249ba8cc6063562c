package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gdlkit/pkg/pipeline"
)

// inputFlags are shared by commands that read a description.
type inputFlags struct {
	stdinFormat string // format of a description read from stdin
	refresh     bool   // bypass cached downloads and documents
	noCache     bool   // disable the artifact cache
}

func (f *inputFlags) register(cmd *cobra.Command) {
	f.registerSource(cmd)
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
}

// registerSource registers the flags that control reading the description.
func (f *inputFlags) registerSource(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.stdinFormat, "input-format", "json", "format of a description read from stdin: json, yaml, toml")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached downloads and documents")
}

// dumpCommand creates the dump command.
func (c *CLI) dumpCommand() *cobra.Command {
	var (
		in     inputFlags
		output string
		save   bool
	)

	cmd := &cobra.Command{
		Use:   "dump [description]",
		Short: "Write the GDL document for a graph description",
		Long: `Write the GDL document for a graph description.

The description is a JSON, YAML or TOML file, an http(s) URL, or "-" for
stdin. The document is written next to the configured output directory as
<name>.vcg unless -o names a file; "-o -" writes it to stdout.

With --save the document is also kept in the document store.`,
		Example: `  gdlkit dump callgraph.yaml
  gdlkit dump -o - https://example.com/graph.json
  cat graph.toml | gdlkit dump --input-format toml -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDump(cmd.Context(), args[0], in, output, save)
		},
	}

	in.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (- for stdout)")
	cmd.Flags().BoolVar(&save, "save", false, "store the document")

	return cmd
}

func (c *CLI) runDump(ctx context.Context, input string, in inputFlags, output string, save bool) error {
	desc, err := c.loadDescription(ctx, input, in.stdinFormat, in.refresh)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, in.noCache, save)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.Dump(ctx, desc, pipeline.Options{Save: save, Refresh: in.refresh})
	if err != nil {
		return err
	}

	path := c.outputPath(output, input, pipeline.FormatGDL)
	if err := c.writeFile(path, res.GDL); err != nil {
		return err
	}

	w := c.status(path)
	printSuccess(w, "Dumped %s", StyleHighlight.Render(res.Title))
	printFile(w, path)
	printStats(w, res.Stats.GraphCount, res.Stats.NodeCount, res.Stats.EdgeCount, res.CacheInfo.DumpHit)
	if res.DocumentID != "" {
		printKeyValue(w, "Document", res.DocumentID)
	}
	if input != stdinArg {
		printNextStep(w, "Open it in a viewer", appName+" view "+input)
	}
	return nil
}

// status returns the writer for status lines. They are dropped when the
// command's output goes to stdout.
func (c *CLI) status(output string) io.Writer {
	if output == stdinArg {
		return io.Discard
	}
	return c.stdout
}

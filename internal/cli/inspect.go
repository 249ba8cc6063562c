package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gdlkit/pkg/errors"
	"github.com/matzehuels/gdlkit/pkg/gdl"
	gdlio "github.com/matzehuels/gdlkit/pkg/io"
	"github.com/matzehuels/gdlkit/pkg/pipeline"
)

// inspectCommand creates the inspect command, which shows the graph tree a
// description builds.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		in          inputFlags
		interactive bool
		export      string
		output      string
	)

	cmd := &cobra.Command{
		Use:   "inspect [description]",
		Short: "Show the graph tree of a description",
		Long: `Show the graph tree of a description.

Prints every graph, node and edge in document order, with anonymous entities
under the titles they are written with. With --interactive the tree opens in
a browser that shows the GDL text of the selected entity.

With --export the built tree is written back as a description instead, with
every anonymous title resolved. -o writes it to a file whose extension picks
the encoding.`,
		Example: `  gdlkit inspect callgraph.json
  gdlkit inspect --export yaml callgraph.json
  gdlkit inspect -o resolved.toml callgraph.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if export != "" || output != "" {
				return c.runExport(cmd.Context(), args[0], in, export, output)
			}
			return c.runInspect(cmd.Context(), args[0], in, interactive)
		},
	}

	in.registerSource(cmd)
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse the tree interactively")
	cmd.Flags().StringVar(&export, "export", "", "print the resolved description: json, yaml, toml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the resolved description to a file")

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input string, in inputFlags, interactive bool) error {
	desc, err := c.loadDescription(ctx, input, in.stdinFormat, in.refresh)
	if err != nil {
		return err
	}
	g, err := pipeline.Build(desc)
	if err != nil {
		return err
	}
	defer g.Free()

	if interactive {
		p := tea.NewProgram(newBrowserModel(g), tea.WithContext(ctx), tea.WithAltScreen())
		_, err := p.Run()
		return err
	}

	fmt.Fprintln(c.stdout, graphTree(g))
	graphs, nodes, edges := desc.Count()
	printStats(c.stdout, graphs, nodes, edges, false)
	return nil
}

// runExport builds the description and writes the tree back out through
// [gdlio.Describe], so anonymous entities carry the titles they were given.
func (c *CLI) runExport(ctx context.Context, input string, in inputFlags, export, output string) error {
	desc, err := c.loadDescription(ctx, input, in.stdinFormat, in.refresh)
	if err != nil {
		return err
	}
	g, err := pipeline.Build(desc)
	if err != nil {
		return err
	}
	defer g.Free()

	resolved, err := gdlio.Describe(g)
	if err != nil {
		return errors.Wrap(errors.ErrCodeCycle, err, "describe %s", g.Title())
	}

	if output != "" {
		if err := gdlio.Export(resolved, output); err != nil {
			if errors.GetCode(err) != "" {
				return err
			}
			return errors.Wrap(errors.ErrCodeInternal, err, "export %s", output)
		}
		printSuccess(c.stdout, "Exported %s", StyleHighlight.Render(g.Title()))
		printFile(c.stdout, output)
		return nil
	}

	format, err := gdlio.ParseFormat(export)
	if err != nil {
		return err
	}
	return gdlio.Write(resolved, c.stdout, format)
}

// graphTree renders g and its children in document order.
func graphTree(g *gdl.Graph) *tree.Tree {
	t := tree.Root(graphLabel(g)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(StyleDim).
		RootStyle(StyleTitle)
	for _, n := range g.Nodes() {
		t.Child(nodeLabel(n))
	}
	for _, sub := range g.Subgraphs() {
		t.Child(graphTree(sub))
	}
	for _, e := range g.Edges() {
		t.Child(edgeLabel(e))
	}
	return t
}

func graphLabel(g *gdl.Graph) string {
	s := styleGraphKeyword.Render("graph") + " " + g.Title()
	if g.IsSet(gdl.GraphLabel) && g.Label() != g.Title() {
		s += StyleDim.Render(fmt.Sprintf(" %q", g.Label()))
	}
	return s
}

func nodeLabel(n *gdl.Node) string {
	s := styleNodeKeyword.Render("node") + " " + StyleValue.Render(n.Title())
	if n.IsSet(gdl.NodeLabel) && n.Label() != n.Title() {
		s += StyleDim.Render(fmt.Sprintf(" %q", n.Label()))
	}
	return s
}

func edgeLabel(e *gdl.Edge) string {
	s := fmt.Sprintf("%s %s %s %s", edgeKeyword(e.Kind()), e.SourceName(), StyleDim.Render(iconArrow), e.TargetName())
	if e.IsSet(gdl.EdgeLabel) {
		s += StyleDim.Render(fmt.Sprintf(" %q", e.Label()))
	}
	return s
}

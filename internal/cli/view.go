package cli

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gdlkit/pkg/errors"
	"github.com/matzehuels/gdlkit/pkg/pipeline"
)

// viewCommand creates the view command, which dumps a description to a
// temporary document and opens it in a VCG viewer.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		in     inputFlags
		viewer string
		keep   bool
	)

	cmd := &cobra.Command{
		Use:   "view [description]",
		Short: "Open the GDL document in a viewer",
		Long: `Open the GDL document in a viewer.

The document is written to a temporary .vcg file and the viewer is started
with its path as the last argument. The command waits for the viewer to exit
and then removes the file unless --keep is given.

The viewer defaults to the "viewer" config key (vcgview).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if viewer == "" {
				viewer = c.Config.Viewer
			}
			return c.runView(cmd.Context(), args[0], in, viewer, keep)
		},
	}

	in.register(cmd)
	cmd.Flags().StringVar(&viewer, "viewer", "", "viewer command (overrides config)")
	cmd.Flags().BoolVar(&keep, "keep", false, "keep the temporary document")

	return cmd
}

func (c *CLI) runView(ctx context.Context, input string, in inputFlags, viewer string, keep bool) error {
	argv := strings.Fields(viewer)
	if len(argv) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no viewer configured")
	}
	bin, err := exec.LookPath(argv[0])
	if err != nil {
		return errors.Wrap(errors.ErrCodeNotFound, err, "viewer %q (set it with --viewer or the viewer config key)", argv[0])
	}

	desc, err := c.loadDescription(ctx, input, in.stdinFormat, in.refresh)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, in.noCache, false)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.Dump(ctx, desc, pipeline.Options{Refresh: in.refresh})
	if err != nil {
		return err
	}

	path := filepath.Join(os.TempDir(), appName+"-"+uuid.NewString()+docExt)
	if err := os.WriteFile(path, res.GDL, 0o644); err != nil {
		return err
	}
	if !keep {
		defer os.Remove(path)
	}

	c.Logger.Debug("starting viewer", "viewer", bin, "path", path)
	cmd := exec.CommandContext(ctx, bin, append(argv[1:], path)...)
	cmd.Stdout = c.stderr
	cmd.Stderr = c.stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.Wrap(errors.ErrCodeInternal, err, "viewer %s", argv[0])
	}

	printSuccess(c.stdout, "Viewed %s", StyleHighlight.Render(res.Title))
	if keep {
		printFile(c.stdout, path)
	}
	return nil
}

package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gdlkit/internal/api"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
		noStore bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API.

Routes:
  POST /v1/dump              description in, GDL document out
  POST /v1/render?format=svg description in, document or preview out
  GET  /v1/documents         stored documents, newest first
  GET  /v1/documents/{id}    one stored document
  GET  /healthz              liveness and build information

The address, request timeout and body limit come from the [server] config
section. The server stops gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			return c.runServe(cmd.Context(), addr, noCache, noStore)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "run without a document store")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache, noStore bool) error {
	runner, err := c.newRunner(ctx, noCache, !noStore)
	if err != nil {
		return err
	}
	defer runner.Close()

	srv := api.New(runner, c.Logger, api.Options{
		MaxBodyBytes: c.Config.Server.MaxBodyBytes,
		Timeout:      c.Config.Server.Timeout.Duration,
	})
	printInfo(c.stdout, "Serving on %s", StyleHighlight.Render(addr))
	return srv.ListenAndServe(ctx, addr)
}

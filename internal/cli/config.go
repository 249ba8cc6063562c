package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// configCommand creates the config inspection command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the active configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the active configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Config.Write(c.stdout)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the path of the loaded config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.Config.Path == "" {
				printInfo(c.stdout, "No config file found, using defaults")
				return nil
			}
			fmt.Fprintln(c.stdout, c.Config.Path)
			return nil
		},
	})

	return cmd
}

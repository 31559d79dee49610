package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build <package>",
		Short: "Build a source dependency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := c.app.Build(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if result.CacheHit {
				cmd.Printf("%s %s (cached) %s\n", result.Record.Name, result.Record.Version, result.ArtifactPath)
				return nil
			}
			cmd.Printf("%s %s %s\n", result.Record.Name, result.Record.Version, result.ArtifactPath)
			return nil
		},
	}
}

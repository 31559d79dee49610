package commands

import (
	"maps"
	"slices"

	"github.com/spf13/cobra"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install [environments...]",
		Short: "Solve and install environments into the workspace",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			installed, err := c.app.Install(cmd.Context(), args)
			if err != nil {
				return err
			}

			for _, name := range slices.Sorted(maps.Keys(installed)) {
				result := installed[name]
				cmd.Printf("%s: %d packages installed into %s\n", name, result.Installed, result.Prefix)
			}
			return nil
		},
	}
}

package commands

import (
	"maps"
	"slices"

	"github.com/spf13/cobra"
)

func (c *CLI) newSolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "solve [environments...]",
		Short: "Resolve environments without installing them",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			solved, err := c.app.Solve(cmd.Context(), args)
			if err != nil {
				return err
			}

			for _, name := range slices.Sorted(maps.Keys(solved)) {
				cmd.Printf("%s (%d packages)\n", name, len(solved[name]))
				for _, rec := range solved[name] {
					cmd.Printf("  %s %s %s\n", rec.Name, rec.Version, rec.Build)
				}
			}
			return nil
		},
	}
}

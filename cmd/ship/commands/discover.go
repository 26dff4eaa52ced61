package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newDiscoverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "discover <script.py>",
		Short: "Print the hidden imports a packaging run would add",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			imports := c.components.Discoverer.Discover(cmd.Context(), args[0])
			if len(imports) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No hidden imports found.")
				return nil
			}
			for _, name := range imports {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

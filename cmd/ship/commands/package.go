package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (c *CLI) newPackageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "package [engine invocation...]",
		Short: "Run a packaging invocation through the build cache",
		Long: `Run a packaging engine invocation, serving the output from the build
cache when the script and invocation are unchanged. On a miss the
script is scanned for hidden imports before the engine runs, and the
fresh output is cached for next time.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}

			output, _ := cmd.Flags().GetString("output")
			yes, _ := cmd.Flags().GetBool("yes")
			invocation := joinInvocation(args)

			if c.components.Packager.WillOverwrite(invocation, output) && !yes {
				if !confirm(cmd, "A previous build is in the output directory, overwrite?") {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			result, err := c.components.Packager.Package(cmd.Context(), invocation, output)
			if err != nil {
				return err
			}

			if result.CacheHit {
				fmt.Fprintf(cmd.OutOrStdout(), "Reused cached build in %s\n", result.OutputDir)
				return nil
			}
			if len(result.HiddenImports) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Added %d hidden imports\n", len(result.HiddenImports))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Packaged into %s\n", result.OutputDir)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "Directory to deliver the build into (default from configuration)")
	cmd.Flags().BoolP("yes", "y", false, "Overwrite existing output without asking")
	// Everything after the first positional belongs to the engine, not
	// to ship; "--onefile" must reach the invocation untouched.
	cmd.Flags().SetInterspersed(false)
	return cmd
}

// joinInvocation reassembles argv into the invocation string the cache
// keys on. Arguments with spaces are re-quoted so the signature is
// stable however the shell tokenized them.
func joinInvocation(args []string) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		if strings.ContainsAny(arg, " \t") {
			parts[i] = `"` + arg + `"`
		} else {
			parts[i] = arg
		}
	}
	return strings.Join(parts, " ")
}

func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", prompt)
	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}

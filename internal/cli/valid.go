package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewValidCommand creates the valid command.
func NewValidCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "valid <zone>...",
		Short: "Check timezone identifiers",
		Long:  "Check timezone identifiers. The exit status is 1 if any of them is invalid.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			invalid := 0
			for _, name := range args {
				state := "valid"
				if !rootOpts.resolver.IsValidIdentifier(name) {
					state = "invalid"
					invalid++
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", name, state)
			}
			if invalid > 0 {
				return fmt.Errorf("%d of %d timezones invalid", invalid, len(args))
			}
			return nil
		},
	}
}

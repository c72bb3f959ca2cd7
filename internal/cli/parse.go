package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <date> <time> [zone]",
		Short: "Parse a wall-clock time",
		Long: `Parse "YYYY/MM/DD HH:MM:SS [zone]" into an instant.

Without a zone the default zone is used. The date separator may also be '-'
or '.'. Arguments are joined with spaces, so quoting is optional.`,
		Example: `  zotime parse 2015/03/08 01:59:59 America/Los_Angeles
  zotime --zone Europe/Moscow parse "2015/03/08 01:59:59"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			i, ok := rootOpts.builder.Parse(text)
			if !ok {
				rootOpts.logger.Debug("parse failed", "text", text)
				return fmt.Errorf("cannot parse %q", text)
			}
			printInstant(cmd.OutOrStdout(), i)
			return nil
		},
	}
}

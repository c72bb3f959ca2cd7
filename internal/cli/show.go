package cli

import (
	"github.com/spf13/cobra"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <epoch>",
		Short: "Show an epoch in a timezone and in UTC",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := parseSeconds(args[0])
			if err != nil {
				return err
			}
			i, err := rootOpts.builder.New(seconds, rootOpts.Zone)
			if err != nil {
				return err
			}
			printInstant(cmd.OutOrStdout(), i)
			return nil
		},
	}
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <epoch> <seconds>",
		Short: "Add elapsed seconds to an epoch",
		Long: `Add elapsed seconds to an epoch and show the wall clock before and after.

Seconds may be negative or fractional. Crossing a DST transition changes the
offset of the result, never the elapsed time.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := parseSeconds(args[0])
			if err != nil {
				return err
			}
			delta, err := parseSeconds(args[1])
			if err != nil {
				return err
			}
			i, err := rootOpts.builder.New(seconds, rootOpts.Zone)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			field(w, "zone", i.Zone())
			field(w, "before", describeLocal(i.Local()))
			i.Add(delta)
			field(w, "after", describeLocal(i.Local()))
			field(w, "utc", i.UTC())
			field(w, "raw", formatSeconds(i.Seconds()))
			return nil
		},
	}
}

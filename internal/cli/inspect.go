package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ngrash/zotime/tzif"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	var printV1 bool

	cmd := &cobra.Command{
		Use:   "inspect <tzif file>",
		Short: "Print the contents of a TZif file",
		Long: `Print the header, footer, abbreviations and transitions of a TZif file
such as /usr/share/zoneinfo/Europe/Berlin. The file is validated first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			r := bytes.NewReader(b)
			data, err := tzif.DecodeData(r)
			if err != nil {
				return fmt.Errorf("decoding %s: %w", args[0], err)
			}
			if err := tzif.Validate(data); err != nil {
				return fmt.Errorf("invalid TZif file %s: %w", args[0], err)
			}
			rootOpts.logger.Debug("decoded", "file", args[0], "version", data.Version, "size", len(b))
			return printData(cmd.OutOrStdout(), rootOpts, data, r, printV1)
		},
	}

	cmd.Flags().BoolVar(&printV1, "v1", false, "always print the v1 header")

	return cmd
}

func printData(w io.Writer, opts *RootOptions, d tzif.Data, rest *bytes.Reader, printV1 bool) error {
	if d.Version == tzif.V1 || printV1 {
		printHeader(w, "Header v1", d.V1Header)
	}
	if d.Version > tzif.V1 {
		printHeader(w, "Header", d.V2Header)
		fmt.Fprintln(w, "Footer")
		fmt.Fprintf(w, "  TZString = %s\n", d.V2Footer.TZString)
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Abbreviations = %v\n", d.Abbreviations())
	fmt.Fprintln(w)

	ts := d.Transitions()
	fmt.Fprintf(w, "Transitions (%d)\n", len(ts))
	for _, t := range ts {
		at, err := opts.builder.FromUnix(t.At, "UTC")
		if err != nil {
			return err
		}
		dst := ""
		if t.Dst {
			dst = "  DST"
		}
		fmt.Fprintf(w, "  %s  %s  %s%s\n", at, formatOffset(int(t.Utoff)), t.Abbrev, dst)
	}

	if rest.Len() > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "remaining data: %d bytes\n", rest.Len())
	}
	return nil
}

func printHeader(w io.Writer, title string, h tzif.Header) {
	fmt.Fprintln(w, title)
	fmt.Fprintf(w, "  %-8s = %v\n", "version", h.Version)
	fmt.Fprintf(w, "  %-8s = %d\n", "isutcnt", h.Isutcnt)
	fmt.Fprintf(w, "  %-8s = %d\n", "isstdcnt", h.Isstdcnt)
	fmt.Fprintf(w, "  %-8s = %d\n", "leapcnt", h.Leapcnt)
	fmt.Fprintf(w, "  %-8s = %d\n", "timecnt", h.Timecnt)
	fmt.Fprintf(w, "  %-8s = %d\n", "typecnt", h.Typecnt)
	fmt.Fprintf(w, "  %-8s = %d\n", "charcnt", h.Charcnt)
	fmt.Fprintln(w)
}

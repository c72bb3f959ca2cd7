package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/ngrash/zotime/instant"
)

func field(w io.Writer, label string, value any) {
	fmt.Fprintf(w, "%-7s %v\n", label+":", value)
}

// describeLocal formats l with its offset and DST flag, e.g.
// "2007/10/31 23:25:00 PDT (UTC-07:00, DST)".
func describeLocal(l instant.Local) string {
	s := fmt.Sprintf("%s (UTC%s", l, formatOffset(l.Offset))
	if l.DST {
		s += ", DST"
	}
	return s + ")"
}

func printInstant(w io.Writer, i *instant.Instant) {
	field(w, "zone", i.Zone())
	field(w, "local", describeLocal(i.Local()))
	field(w, "utc", i.UTC())
	field(w, "raw", formatSeconds(i.Seconds()))
}

// formatOffset formats seconds east of UTC as ±HH:MM.
func formatOffset(seconds int) string {
	sign := '+'
	if seconds < 0 {
		sign = '-'
		seconds = -seconds
	}
	return fmt.Sprintf("%c%02d:%02d", sign, seconds/3600, seconds/60%60)
}

func formatSeconds(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func parseSeconds(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid seconds %q", s)
	}
	return f, nil
}

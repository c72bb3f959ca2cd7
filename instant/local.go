package instant

import (
	"fmt"
	"time"

	"github.com/ngrash/zotime/internal/unixtime"
	"github.com/ngrash/zotime/tz"
)

// Local is a wall-clock view of an Instant in some zone. It is derived on
// demand and never stored.
type Local struct {
	Year       int
	Month      time.Month
	Day        int
	Hour       int
	Minute     int
	Second     int
	Nanosecond int

	// Offset in seconds east of UTC.
	Offset int
	DST    bool
	Abbrev string

	// Unix is the absolute time of the view in whole seconds.
	Unix int64
}

func newLocal(sec int64, nsec int32, off tz.Offset) Local {
	y, mo, d, h, mi, s := unixtime.ToDateTime(sec + int64(off.Seconds))
	return Local{
		Year:       y,
		Month:      time.Month(mo),
		Day:        d,
		Hour:       h,
		Minute:     mi,
		Second:     s,
		Nanosecond: int(nsec),
		Offset:     off.Seconds,
		DST:        off.DST,
		Abbrev:     off.Abbrev,
		Unix:       sec,
	}
}

// String formats the view as "2006/01/02 15:04:05 MST".
func (l Local) String() string {
	return fmt.Sprintf("%04d/%02d/%02d %02d:%02d:%02d %s", l.Year, l.Month, l.Day, l.Hour, l.Minute, l.Second, l.Abbrev)
}

// Time returns the view as a time.Time in a fixed zone named after the
// abbreviation.
func (l Local) Time() time.Time {
	return time.Date(l.Year, l.Month, l.Day, l.Hour, l.Minute, l.Second, l.Nanosecond, time.FixedZone(l.Abbrev, l.Offset))
}
